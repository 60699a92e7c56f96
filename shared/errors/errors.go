package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func newf(status int, format string, args ...any) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf(format, args...), StatusCode: status}
}

func NotFound(format string, args ...any) error {
	return newf(http.StatusNotFound, format, args...)
}

func Validation(format string, args ...any) error {
	return newf(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return newf(http.StatusUnauthorized, format, args...)
}

func Conflict(format string, args ...any) error {
	return newf(http.StatusConflict, format, args...)
}

// StatusCode returns the http status carried by err, 500 for untyped errors.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func hasStatus(err error, status int) bool {
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.StatusCode == status
}

func IsNotFound(err error) bool     { return hasStatus(err, http.StatusNotFound) }
func IsValidation(err error) bool   { return hasStatus(err, http.StatusBadRequest) }
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }
func IsConflict(err error) bool     { return hasStatus(err, http.StatusConflict) }
