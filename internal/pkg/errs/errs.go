package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel for lookups that found nothing.
	ErrObjectNotFound = errors.New("object not found")
	// ErrValueIsInvalid is the sentinel for values that fail a business rule.
	ErrValueIsInvalid = errors.New("value is invalid")
	// ErrValueIsOutOfRange is the sentinel for values outside an allowed range.
	ErrValueIsOutOfRange = errors.New("value is out of range")
	// ErrValueIsRequired is the sentinel for missing mandatory values.
	ErrValueIsRequired = errors.New("value is required")
	// ErrInvalidState is the sentinel for values outside a known enumeration.
	// It signals corrupted data upstream and is never recovered from by guessing.
	ErrInvalidState = errors.New("invalid state")
	// ErrRemoteWrite is the sentinel for rejected writes to the authoritative order store.
	ErrRemoteWrite = errors.New("remote write failed")
	// ErrLocalSync is the sentinel for mirror writes that failed after the remote write committed.
	ErrLocalSync = errors.New("local sync failed")
)

// ObjectNotFoundError reports that an object identified by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that violates a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
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

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError reports a state value that is not part of a known enumeration.
type InvalidStateError struct {
	ParamName string
	Value     any
}

// NewInvalidStateError creates an InvalidStateError for value.
func NewInvalidStateError(paramName string, value any) *InvalidStateError {
	return &InvalidStateError{
		ParamName: paramName,
		Value:     value,
	}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %v is not a known %s", ErrInvalidState, sanitize(e.Value), e.ParamName)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// RemoteWriteError reports that the authoritative order store rejected a write.
// Nothing downstream of the failed write has been applied.
type RemoteWriteError struct {
	OrderID string
	Cause   error
}

// NewRemoteWriteError creates a RemoteWriteError for orderID wrapping cause.
func NewRemoteWriteError(orderID string, cause error) *RemoteWriteError {
	return &RemoteWriteError{
		OrderID: orderID,
		Cause:   cause,
	}
}

func (e *RemoteWriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %s (cause: %v)", ErrRemoteWrite, e.OrderID, e.Cause)
	}
	return fmt.Sprintf("%s: order %s", ErrRemoteWrite, e.OrderID)
}

func (e *RemoteWriteError) Unwrap() error {
	return ErrRemoteWrite
}

// LocalSyncError reports that a correlated mirror record could not be written
// after the remote write had already been committed.
type LocalSyncError struct {
	OrderID       string
	TransactionID string
	Cause         error
}

// NewLocalSyncError creates a LocalSyncError wrapping cause.
func NewLocalSyncError(orderID, transactionID string, cause error) *LocalSyncError {
	return &LocalSyncError{
		OrderID:       orderID,
		TransactionID: transactionID,
		Cause:         cause,
	}
}

func (e *LocalSyncError) Error() string {
	msg := fmt.Sprintf("%s: order %s", ErrLocalSync, e.OrderID)
	if e.TransactionID != "" {
		msg += ", transaction " + e.TransactionID
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *LocalSyncError) Unwrap() error {
	return ErrLocalSync
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
