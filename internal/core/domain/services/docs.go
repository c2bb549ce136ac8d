// Package services provides domain services that coordinate business rules
// spanning the Order aggregate and the location registry.
//
// The package includes:
//   - EligibilityChecker: decides whether an order may start work at a
//     location, based on the entry-stage gate and upstream progress
//   - QueueManager: sorts location queues and renumbers non-rush positions
//   - AdmissionService: auto-enqueues newly eligible order-location rows
//
// All three are pure: they operate on aggregates and location snapshots
// passed in by the application layer and hold no state of their own.
package services
