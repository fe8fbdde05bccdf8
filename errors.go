package tank

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrConnectString is returned when a connection URL does not match any
	// registered driver or cannot be parsed.
	ErrConnectString = errors.New("tank: invalid connection string")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("tank: entity not found")

	// ErrTxDone is returned when using a transaction that was already
	// committed or rolled back.
	ErrTxDone = errors.New("tank: transaction has already been finalized")
)

// sqlPreviewLimit caps how much statement text error messages carry.
const sqlPreviewLimit = 500

func sqlPreview(sql string) string {
	if len(sql) > sqlPreviewLimit {
		return sql[:sqlPreviewLimit] + "..."
	}
	return sql
}

// IOError represents a failure talking to the database outside of statement
// preparation and execution, such as opening a connection.
type IOError struct {
	Op  string // Operation that failed (e.g., "connect", "close")
	Err error  // Underlying driver error
}

// Error returns the error string.
func (e *IOError) Error() string {
	return fmt.Sprintf("tank: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError returns a new IOError for the given operation.
func NewIOError(op string, err error) *IOError {
	return &IOError{Op: op, Err: err}
}

// IsIOError returns true if the error is an IOError.
func IsIOError(err error) bool {
	if err == nil {
		return false
	}
	var e *IOError
	return errors.As(err, &e)
}

// PrepareError represents a statement preparation failure.
type PrepareError struct {
	SQL string // Statement that failed to prepare, truncated
	Err error  // Underlying driver error
}

// Error returns the error string.
func (e *PrepareError) Error() string {
	return fmt.Sprintf("tank: preparing %q: %v", sqlPreview(e.SQL), e.Err)
}

// Unwrap returns the underlying error.
func (e *PrepareError) Unwrap() error {
	return e.Err
}

// NewPrepareError returns a new PrepareError for the given statement.
func NewPrepareError(sql string, err error) *PrepareError {
	return &PrepareError{SQL: sqlPreview(sql), Err: err}
}

// IsPrepareError returns true if the error is a PrepareError.
func IsPrepareError(err error) bool {
	if err == nil {
		return false
	}
	var e *PrepareError
	return errors.As(err, &e)
}

// BindError represents a parameter binding failure.
type BindError struct {
	Index int   // 0-based position of the offending parameter, -1 if unknown
	Err   error // Underlying error
}

// Error returns the error string.
func (e *BindError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("tank: binding parameter %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("tank: binding parameters: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *BindError) Unwrap() error {
	return e.Err
}

// NewBindError returns a new BindError for the given parameter position.
func NewBindError(index int, err error) *BindError {
	return &BindError{Index: index, Err: err}
}

// IsBindError returns true if the error is a BindError.
func IsBindError(err error) bool {
	if err == nil {
		return false
	}
	var e *BindError
	return errors.As(err, &e)
}

// ExecuteError represents a statement execution failure.
type ExecuteError struct {
	SQL string // Statement that failed, truncated
	Err error  // Underlying driver error
}

// Error returns the error string.
func (e *ExecuteError) Error() string {
	return fmt.Sprintf("tank: executing %q: %v", sqlPreview(e.SQL), e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecuteError) Unwrap() error {
	return e.Err
}

// NewExecuteError returns a new ExecuteError for the given statement.
func NewExecuteError(sql string, err error) *ExecuteError {
	return &ExecuteError{SQL: sqlPreview(sql), Err: err}
}

// IsExecuteError returns true if the error is an ExecuteError.
func IsExecuteError(err error) bool {
	if err == nil {
		return false
	}
	var e *ExecuteError
	return errors.As(err, &e)
}

// DecodeError represents a failure turning a fetched column into a Go value.
type DecodeError struct {
	Field  string // Column or struct field being decoded
	Target string // Go type the value was decoded into
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("tank: decoding %q into %s: %v", e.Field, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError returns a new DecodeError for the given field.
func NewDecodeError(field, target string, err error) *DecodeError {
	return &DecodeError{Field: field, Target: target, Err: err}
}

// IsDecodeError returns true if the error is a DecodeError.
func IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	var e *DecodeError
	return errors.As(err, &e)
}

// ConversionError represents a value that cannot be represented in the
// requested type, such as a narrowing numeric conversion.
type ConversionError struct {
	From string // Source type or value description
	To   string // Requested type
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("tank: cannot convert %s to %s", e.From, e.To)
}

// NewConversionError returns a new ConversionError.
func NewConversionError(from, to string) *ConversionError {
	return &ConversionError{From: from, To: to}
}

// IsConversionError returns true if the error is a ConversionError.
func IsConversionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConversionError
	return errors.As(err, &e)
}

// ContractError represents an API misuse or a violated operation guarantee,
// such as finalizing a transaction twice or a delete-one that did not
// remove exactly one row.
type ContractError struct {
	msg string
}

// Error returns the error string.
func (e *ContractError) Error() string {
	return fmt.Sprintf("tank: contract violation: %s", e.msg)
}

// NewContractError returns a new ContractError with the given message.
func NewContractError(format string, args ...any) *ContractError {
	return &ContractError{msg: fmt.Sprintf(format, args...)}
}

// IsContractError returns true if the error is a ContractError.
func IsContractError(err error) bool {
	if err == nil {
		return false
	}
	var e *ContractError
	return errors.As(err, &e)
}

// NotFoundError represents an error when an entity is not found.
type NotFoundError struct {
	label string
	id    any // Optional: the key that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("tank: %s not found (key=%v)", e.label, e.id)
	}
	return fmt.Sprintf("tank: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the key that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given entity type.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the key that was
// searched for.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
