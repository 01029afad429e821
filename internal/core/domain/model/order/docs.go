// Package order implements the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: aggregate root holding the customer, center, assigned agent,
//     snapshot-priced items and status
//   - Item: an order line with its unit price frozen at checkout
//   - Status: the lifecycle state machine
//   - PaymentMethod: cash or online, which decides the initial status and
//     whether a successful dispatch advances the order to Assigned
//   - domain events raised on every state change
//
// Key business rules:
//   - total amount equals the sum of quantity * price over the items and never
//     changes after creation
//   - an assigned agent always belongs to the order's center
//   - completed and cancelled orders accept no further transitions
//   - confirming payment of an already confirmed order is a no-op
package order
