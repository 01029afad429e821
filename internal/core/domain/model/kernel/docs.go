// Package kernel provides the primitives shared by every aggregate of the
// booking and dispatch domain:
//   - UUID: identifier value object
//   - Location: a validated latitude/longitude pair in degrees
//   - Distance: the single great-circle (haversine) distance function
//   - DomainEvent: the contract for events raised by aggregates
//
// All values are immutable and safe for concurrent use.
package kernel
