package errors

import (
	"fmt"
	"net/http"
)

// Error is the typed error every service operation returns. Code doubles as
// the HTTP status the controllers answer with.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidation reports missing or invalid caller input. Recoverable by
// re-prompting the user.
func NewValidation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NewNotFound reports a row that does not exist or belongs to another user.
// The two cases are deliberately indistinguishable to the caller.
func NewNotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// NewUnavailable reports a product that is inactive at the time of a cart
// mutation or a checkout price read.
func NewUnavailable(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// NewState reports an invalid lifecycle transition, such as paying an order
// twice or checking out an empty cart.
func NewState(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// NewPersistence wraps a store failure. The failed operation guarantees it
// left no partial state behind, so the caller may retry it wholesale.
func NewPersistence(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}
