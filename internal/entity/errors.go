package entity

import "errors"

// Domain errors
var (
	// Form errors
	ErrFormNotFound   = errors.New("form not found")
	ErrFormInactive   = errors.New("form is not active")
	ErrFormEmpty      = errors.New("form has no prompts")
	ErrPromptNotFound = errors.New("prompt not found")

	// Response errors
	ErrResponseNotFound = errors.New("response not found")
	ErrNoOutput         = errors.New("response has no generated output")

	// Conversation session errors
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionCompleted      = errors.New("session is already completed")
	ErrInvalidSessionState   = errors.New("operation not allowed in current session state")
	ErrAnswerNotSaved        = errors.New("answer could not be saved")
	ErrValidationUnavailable = errors.New("answer validation unavailable")
	ErrOutputGeneration      = errors.New("output generation failed")

	// Request validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
