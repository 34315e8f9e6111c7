package contract

import (
	"errors"
	"fmt"
)

var (
	ErrModelInvoke       = errors.New("model invoke failed")
	ErrSchemaViolation   = errors.New("model response violates schema")
	ErrPromptMissing     = errors.New("required prompt is missing")
	ErrValidation        = errors.New("validation failed")
	ErrConfiguration     = errors.New("configuration error")
	ErrIndexBuild        = errors.New("guest index build failed")
	ErrUnsupportedCity   = errors.New("city is not supported")
	ErrProviderHTTP      = errors.New("provider returned non-success status")
	ErrMalformedResponse = errors.New("malformed provider response")
)

// ProviderError carries the raw body of a non-2xx provider response so the
// tool surface can relay it verbatim.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider=%s status=%d", ErrProviderHTTP, e.Provider, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return ErrProviderHTTP
}

// MalformedError names the payload path that could not be read.
type MalformedError struct {
	Provider string
	Path     string
	Reason   string
}

func (e *MalformedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: provider=%s path=%s is missing", ErrMalformedResponse, e.Provider, e.Path)
	}
	return fmt.Sprintf("%s: provider=%s path=%s %s", ErrMalformedResponse, e.Provider, e.Path, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedResponse
}
