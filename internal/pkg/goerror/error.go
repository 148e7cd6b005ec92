// Package goerror defines the structured error carried from usecases to the
// HTTP layer, where it is translated into a status code and a JSON envelope.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by repositories when a unique constraint is hit.
	ErrConflict = errors.New("resource conflict")
)

// Type classifies errors into high-level buckets.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "validation"
	case TypeBusiness:
		return "business"
	case TypeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Code is a stable identifier mapped to an HTTP status code.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeTooManyRequest
	CodeUnauthorized
	CodeForbidden
	CodeTimeout
	CodeUnavailable
)

var codeNames = map[Code]string{
	CodeInternal:       "internal",
	CodeInvalidFormat:  "invalid_format",
	CodeInvalidInput:   "invalid_input",
	CodeNotFound:       "not_found",
	CodeConflict:       "conflict",
	CodeTooManyRequest: "too_many_requests",
	CodeUnauthorized:   "unauthorized",
	CodeForbidden:      "forbidden",
	CodeTimeout:        "timeout",
	CodeUnavailable:    "unavailable",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[CodeInternal]
}

var codeStatuses = map[Code]int{
	CodeInvalidFormat:  http.StatusBadRequest,
	CodeInvalidInput:   http.StatusBadRequest,
	CodeNotFound:       http.StatusNotFound,
	CodeConflict:       http.StatusConflict,
	CodeTooManyRequest: http.StatusTooManyRequests,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeTimeout:        http.StatusRequestTimeout,
	CodeUnavailable:    http.StatusServiceUnavailable,
}

// Error wraps an optional cause with a user-facing message, a type, a code
// and, for validation failures, a field to reason map.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	return e.errType.String() + " error"
}

// String is the verbose form used in logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string { return e.msg }
func (e *Error) Type() Type { return e.errType }
func (e *Error) Code() Code { return e.code }
func (e *Error) Fields() map[string]string { return e.fields }
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the code to an HTTP status. Unknown codes are 500.
func (e *Error) StatusCode() int {
	if status, ok := codeStatuses[e.code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewServer hides err behind a generic message. The cause stays reachable
// through errors.Unwrap for logging.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewBusiness reports a rule violation with a message safe to show callers.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput builds a validation error. When err is nil the variadic
// kv pairs become the field map, e.g. NewInvalidInput(nil, "email", "already used").
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	}

	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}

	return &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat reports a body or query that could not be parsed.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 && msgs[0] != "" {
		msg = msgs[0]
	}
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}
