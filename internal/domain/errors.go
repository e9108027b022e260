package domain

import "errors"

var (
	ErrInvalidOption         = errors.New("invalid option")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrIncompleteSelection   = errors.New("incomplete selection")
	ErrIndexOutOfRange       = errors.New("index out of range")
	ErrValidationFailed      = errors.New("validation failed")
	ErrOrderSubmissionFailed = errors.New("order submission failed")

	ErrInvalidTransition = errors.New("invalid transition")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoSelection       = errors.New("no product selection open")
	ErrProductNotFound   = errors.New("product not found")
	ErrSessionNotFound   = errors.New("session not found")
)

// ValidationError reports the first customer field that failed its format rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
