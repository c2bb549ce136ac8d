package order

import (
	"shopfloor/internal/pkg/errs"
)

// Status represents the lifecycle state of an order at one production
// location. It implements a state machine with defined transitions:
//
//	NotStarted ──> InQueue ──> InProgress ──> Done
//	     │                      ^       │
//	     └──────────────────────┤       v
//	                            └──── Paused
//
// NotStarted may transition straight to InProgress for stages that bypass
// the queue. Done is terminal. Status is a value object that validates
// transitions and provides string representations for persistence and
// display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// NotStarted is the initial status of every order-location.
	// Work has not been admitted to the stage's queue yet.
	NotStarted

	// InQueue indicates the order is waiting in the stage's queue.
	InQueue

	// InProgress indicates work is actively running at the stage.
	InProgress

	// Paused indicates work at the stage is temporarily suspended.
	Paused

	// Done indicates the stage finished this order. Terminal.
	Done
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		NotStarted: "NotStarted",
		InQueue:    "InQueue",
		InProgress: "InProgress",
		Paused:     "Paused",
		Done:       "Done",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		NotStarted: "NotStarted",
		InQueue:    "InQueue",
		InProgress: "InProgress",
		Paused:     "Paused",
		Done:       "Done",
	}
}

// Validate checks if the Status value is valid. Unknown (0) and any other
// values are invalid. Used to vet Status values read from persistence.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errs.NewValueIsOutOfRangeError("status", int(s), int(NotStarted), int(Done)))
	}
	return nil
}

// String returns the human-readable name of the status. Implements
// fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Enqueue transitions the status to InQueue.
//
// Valid transitions:
//   - NotStarted -> InQueue (queue admission)
//
// Returns (InQueue, nil) on a valid transition, or (0, InvalidTransition)
// otherwise.
func (s Status) Enqueue() (Status, error) {
	if s != NotStarted {
		return 0, errs.NewInvalidTransitionError("enqueue", s.String())
	}
	return InQueue, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - InQueue -> InProgress (work picked up from the queue)
//   - NotStarted -> InProgress (stages that bypass the queue)
//   - Paused -> InProgress (resume)
//
// Returns (InProgress, nil) on a valid transition, or (0, InvalidTransition)
// otherwise.
func (s Status) Start() (Status, error) {
	if s != InQueue && s != NotStarted && s != Paused {
		return 0, errs.NewInvalidTransitionError("start", s.String())
	}
	return InProgress, nil
}

// Pause transitions the status to Paused.
//
// Valid transitions:
//   - InProgress -> Paused
//
// Returns (Paused, nil) on a valid transition, or (0, InvalidTransition)
// otherwise.
func (s Status) Pause() (Status, error) {
	if s != InProgress {
		return 0, errs.NewInvalidTransitionError("pause", s.String())
	}
	return Paused, nil
}

// Finish transitions the status to Done.
//
// Valid transitions:
//   - InProgress -> Done
//   - Paused -> Done
//
// Done is terminal; no further transitions are allowed. Returns (Done, nil)
// on a valid transition, or (0, InvalidTransition) otherwise.
func (s Status) Finish() (Status, error) {
	if s != InProgress && s != Paused {
		return 0, errs.NewInvalidTransitionError("finish", s.String())
	}
	return Done, nil
}

// CanTrackQuantity reports whether completed-quantity updates are permitted
// in this status. Quantities are tracked only while work is running or
// suspended.
func (s Status) CanTrackQuantity() bool {
	return s == InProgress || s == Paused
}
