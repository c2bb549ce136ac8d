package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is. Every typed error
// in this package unwraps to exactly one of these.
var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrBlocked             = errors.New("blocked")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrQuantityOutOfRange  = errors.New("quantity out of range")
)

// sanitize collapses whitespace (including newlines) into single spaces so
// error messages stay on one log line.
func sanitize(value any) string {
	return strings.Join(strings.Fields(fmt.Sprintf("%s", value)), " ")
}

// ObjectNotFoundError reports that a lookup by identifier failed.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying error.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed or otherwise unacceptable value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an
// underlying error.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError
// wrapping an underlying error.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitizeValue(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// sanitizeValue keeps non-string values formatted with %v while collapsing
// whitespace in strings.
func sanitizeValue(value any) any {
	if s, ok := value.(string); ok {
		return sanitize(s)
	}
	return value
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying error.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports a non-positive or otherwise corrupt
// aggregate version loaded from storage.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping
// an underlying error.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidTransitionError reports an action that is not permitted from the
// current lifecycle status.
type InvalidTransitionError struct {
	Action string
	Status string
	Cause  error
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// action attempted from the given status.
func NewInvalidTransitionError(action, status string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, Status: status}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError
// wrapping an underlying error.
func NewInvalidTransitionErrorWithCause(action, status string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, Status: status, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: cannot %s from status %s (cause: %s)",
			ErrInvalidTransition, e.Action, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s: cannot %s from status %s", ErrInvalidTransition, e.Action, e.Status)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// BlockedError reports a gating denial. It is an expected, recoverable
// condition: the operation becomes valid once the prerequisite clears.
type BlockedError struct {
	Reason string
}

// NewBlockedError creates a BlockedError carrying the human-readable reason
// for the denial.
func NewBlockedError(reason string) *BlockedError {
	return &BlockedError{Reason: reason}
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBlocked, e.Reason)
}

func (e *BlockedError) Unwrap() error {
	return ErrBlocked
}

// ConcurrencyConflictError reports a lost optimistic-concurrency race on an
// aggregate. Safe to retry.
type ConcurrencyConflictError struct {
	ParamName string
	ID        any
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the
// aggregate identified by id.
func NewConcurrencyConflictError(paramName string, id any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrConcurrencyConflict, e.ParamName, sanitize(e.ID))
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// QuantityOutOfRangeError reports a completed quantity outside the effective
// [0, max] bound of an order-location.
type QuantityOutOfRangeError struct {
	ParamName string
	Value     any
	Max       any
}

// NewQuantityOutOfRangeError creates a QuantityOutOfRangeError for the given
// value and effective maximum.
func NewQuantityOutOfRangeError(paramName string, value, maxValue any) *QuantityOutOfRangeError {
	return &QuantityOutOfRangeError{ParamName: paramName, Value: value, Max: maxValue}
}

func (e *QuantityOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %v is %s, max value is %v",
		ErrQuantityOutOfRange, sanitizeValue(e.Value), e.ParamName, e.Max)
}

func (e *QuantityOutOfRangeError) Unwrap() error {
	return ErrQuantityOutOfRange
}
