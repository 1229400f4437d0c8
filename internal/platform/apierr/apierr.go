package apierr

import (
	"errors"
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

// From extracts the first *Error in err's chain. Anything else is reported
// as an internal error; the original cause is kept for logging.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		if ae.Status == 0 {
			return &Error{Status: http.StatusInternalServerError, Code: ae.Code, Err: ae.Err}
		}
		return ae
	}
	return &Error{Status: http.StatusInternalServerError, Code: "internal", Err: err}
}

// HasStatus reports whether err carries the given HTTP status.
func HasStatus(err error, status int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae != nil && ae.Status == status
}

// HasCode reports whether err carries the given machine code.
func HasCode(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae != nil && ae.Code == code
}
