package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error carrying the HTTP status the handler layer should
// answer with. Err may be nil for statuses defined to carry an empty body,
// like the 501 for an unparseable form.
type Error struct {
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d", e.Status)
	}

	return fmt.Sprintf("%d: %s", e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an [Error] from its arguments: an int becomes the status, a
// string or error becomes the wrapped error. Defaults to a 500.
func E(args ...any) *Error {
	ret := &Error{
		Status: http.StatusInternalServerError,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			ret.Err = errors.New(arg)
		case error:
			ret.Err = arg
		case int:
			ret.Status = arg
		}
	}

	return ret
}
