package service

import "errors"

// ValidationError is a client-correctable input problem. Handlers map it
// to HTTP 400 with the message as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ErrSignature marks a webhook payload whose signature did not verify.
var ErrSignature = errors.New("webhook signature verification failed")

// ErrProvider marks an upstream payment-provider failure. Detail stays in
// the server logs; clients get a generic message.
var ErrProvider = errors.New("payment provider request failed")
