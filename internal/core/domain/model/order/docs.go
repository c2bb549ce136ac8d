// Package order contains the Order aggregate: the manufacturing order
// itself plus one LocationProgress entity per selected production location.
// The aggregate owns the per-location state machine (NotStarted, InQueue,
// InProgress, Paused, Done), the completed-quantity bookkeeping, the rush
// and global-queue-position flags feeding queue ordering, and the shipping
// fields. Eligibility (gating) and queue ordering live in the domain
// services package; they operate on this aggregate but hold no state of
// their own.
package order
