package apierr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound covers fields, crops, seasons and recommendations referenced
// by an id that does not exist.
func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

// Validation covers malformed input and cross-entity mismatches, such as
// a recommendation that does not belong to the stated field.
func Validation(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// Inconsistency covers records referencing data that has since been
// deleted. Surfaced to the caller, never skipped.
func Inconsistency(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}
