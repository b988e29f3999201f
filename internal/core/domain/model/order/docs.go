// Package order provides the Order aggregate and its status machine.
//
// The package includes:
//   - Order: the authoritative booking record with trip type, schedule,
//     descriptive details and the optional assigned driver
//   - Status: the closed lifecycle enumeration with one transition table
//     per trip type (one-way and round-trip)
//   - Driver and Schedule: value objects attached to an order
//   - StatusChanged: the event recorded on every actual status change
//
// Key business rules:
//   - Next never produces Cancelled; cancellation is a separate request
//   - terminal statuses (CarDelivered, Cancelled) make Advance and Cancel no-ops
//   - a status outside the enumeration is an InvalidStateError and is never
//     replaced by a default
//   - progress comparisons (AtLeast) are false whenever Cancelled is involved
package order
