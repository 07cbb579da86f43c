package web

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is used to pass an error during the request through the application
// with web specific context. Status decides the response code, Fields carry
// per-field validation messages.
type Error struct {
	Err    error
	Status int
	Fields []FieldError
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers or repositories encounter expected
// errors.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (err *Error) Error() string {
	return err.Err.Error()
}

// IsRequestError checks err (and its wrap chain) for *Error.
func IsRequestError(err error) bool {
	var re *Error
	return errors.As(err, &re)
}

// GetRequestError returns a copy of the RequestError pointer.
func GetRequestError(err error) *Error {
	var re *Error
	if !errors.As(err, &re) {
		return nil
	}
	return re
}
