package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the closed set of caller-facing failure categories.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindMissingField
	KindInvalidTimeWindow
	KindSlotAlreadyBooked
	KindInvalidStatus
	KindInvalidQuantity
	KindServiceNotFound
	KindValidation
	KindConflict
	KindRateLimited
	KindUnavailable

	kindCount
)

var kindNames = [kindCount]string{
	KindInternal:          "internal_error",
	KindUnauthenticated:   "unauthenticated",
	KindForbidden:         "forbidden",
	KindNotFound:          "not_found",
	KindMissingField:      "missing_field",
	KindInvalidTimeWindow: "invalid_time_window",
	KindSlotAlreadyBooked: "slot_already_booked",
	KindInvalidStatus:     "invalid_status",
	KindInvalidQuantity:   "invalid_quantity",
	KindServiceNotFound:   "service_not_found",
	KindValidation:        "validation_failed",
	KindConflict:          "conflict",
	KindRateLimited:       "rate_limited",
	KindUnavailable:       "unavailable",
}

// statusByKind must hold an entry for every Kind.
var statusByKind = map[Kind]int{
	KindInternal:          http.StatusInternalServerError,
	KindUnauthenticated:   http.StatusUnauthorized,
	KindForbidden:         http.StatusForbidden,
	KindNotFound:          http.StatusNotFound,
	KindMissingField:      http.StatusBadRequest,
	KindInvalidTimeWindow: http.StatusBadRequest,
	KindSlotAlreadyBooked: http.StatusConflict,
	KindInvalidStatus:     http.StatusBadRequest,
	KindInvalidQuantity:   http.StatusBadRequest,
	KindServiceNotFound:   http.StatusBadRequest,
	KindValidation:        http.StatusBadRequest,
	KindConflict:          http.StatusConflict,
	KindRateLimited:       http.StatusTooManyRequests,
	KindUnavailable:       http.StatusServiceUnavailable,
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Status returns the HTTP status for the kind, 500 for anything unknown.
func (k Kind) Status() int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is a typed failure that the transport layer renders as-is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Code: kind.String(), Message: message}
}

// WithCode overrides the stable error code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

func (e *Error) WithFields(fields ...FieldError) *Error {
	e.Fields = append(e.Fields, fields...)
	return e
}

func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func Validation(message string) *Error      { return New(KindValidation, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }

func NotFound(entity string) *Error {
	return New(KindNotFound, entity+" not found").WithCode(entity + "_not_found")
}

// MissingFields reports every absent field at once.
func MissingFields(names ...string) *Error {
	e := New(KindMissingField, "missing required fields: "+strings.Join(names, ", "))
	for _, n := range names {
		e.Fields = append(e.Fields, FieldError{Field: n, Error: "is required"})
	}
	return e
}

// KindOf returns the kind carried by err, KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
