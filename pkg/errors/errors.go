package errors

import "github.com/flaboy/pin/usererrors"

// Checkout会话相关错误
var (
	ErrSessionRequired   = usererrors.New("checkout.session_required", "Checkout session id is required")
	ErrSessionNotFound   = usererrors.New("checkout.session_not_found", "Checkout session not found")
	ErrAlreadySubmitted  = usererrors.New("checkout.already_submitted", "Payment is already being processed")
	ErrAttemptTerminated = usererrors.New("checkout.attempt_terminated", "This checkout attempt has finished, start a new one")
)
