package openai

import "fmt"

// ProviderError is a transport- or provider-level failure: network error,
// timeout, or a non-2xx status from the completions endpoint. It is never
// retried at this layer.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProtocolError is a well-formed HTTP response whose body does not carry a
// usable completion (no choices, empty content).
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("llm protocol error: %s", e.Reason)
}
