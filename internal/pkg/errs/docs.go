// Package errs provides standardized error types for the workflow engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// The taxonomy covers both generic validation failures (required, invalid,
// out of range, not found) and the workflow-specific conditions: invalid
// status transitions, gating denials (Blocked, which is expected and
// recoverable), optimistic-concurrency losses (retryable), and
// completed-quantity bound violations.
package errs
