// Package services holds the domain services of booking and dispatch:
//   - AgentDirectory: eligible agents of a center and distance ranking
//   - OrderDispatcher: picks the nearest idle agent and binds it to an order
//
// Both are stateless and only operate on aggregates handed to them. Loading
// and locking agents is the caller's job.
package services
