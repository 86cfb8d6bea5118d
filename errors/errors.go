package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	NotFound            = ApiError{http.StatusNotFound, errors.New("not found")}
	Unauthorized        = ApiError{http.StatusUnauthorized, errors.New("unauthorized")}
	BadRequest          = ApiError{http.StatusBadRequest, errors.New("bad request")}
	ConstraintViolation = ApiError{http.StatusUnprocessableEntity, errors.New("constraint violation")}
	Unavailable         = ApiError{http.StatusServiceUnavailable, errors.New("service unavailable")}
	InternalServerError = ApiError{http.StatusInternalServerError, errors.New("internal server error")}
)

// NetworkFailure covers transport errors and timeouts. It carries no
// status code because no response was received.
var NetworkFailure = errors.New("network failure")

// MalformedToken means the locally held token could not be decoded. It is
// handled the same way as an expired session.
var MalformedToken = errors.New("malformed token")

var NoSession = errors.New("no session")

type ApiError struct {
	Code int
	Err  error
}

func (a ApiError) Unwrap() error {
	return a.Err
}

func (a ApiError) Error() string {
	return a.Err.Error()
}

// FromStatusCode maps a remote API response code to one of the sentinel
// errors above. The message, when present, is preserved so it can be
// surfaced to the user verbatim.
func FromStatusCode(code int, message string) error {
	var sentinel ApiError
	switch {
	case code == http.StatusUnauthorized:
		sentinel = Unauthorized
	case code == http.StatusNotFound:
		sentinel = NotFound
	case code == http.StatusBadRequest:
		sentinel = BadRequest
	case code == http.StatusUnprocessableEntity:
		sentinel = ConstraintViolation
	case code == http.StatusServiceUnavailable:
		sentinel = Unavailable
	default:
		sentinel = InternalServerError
	}
	if message == "" {
		return sentinel
	}
	return ApiError{sentinel.Code, fmt.Errorf("%s: %w", message, sentinel.Err)}
}

func Code(err error) int {
	var apiErr ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

func IsNotFound(err error) bool {
	return Code(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	return Code(err) == http.StatusUnauthorized || errors.Is(err, MalformedToken) || errors.Is(err, NoSession)
}

// MissingFieldsError is raised locally, before any network call, when a
// create payload cannot be assembled from the current draft.
type MissingFieldsError struct {
	Fields []string
}

func (m *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(m.Fields, ", "))
}

func MissingFields(fields ...string) error {
	return &MissingFieldsError{Fields: fields}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}
