package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrMissingCredential  = errors.New("api key not found")
	ErrEmptyResult        = errors.New("empty result")
	ErrContextInvalidated = errors.New("extension context invalidated")
	ErrUnknownAction      = errors.New("unknown action")
)

// RelayErrorKind classifies relay failures for logs and metrics.
// It never changes the reply shape.
type RelayErrorKind string

const (
	KindConfig    RelayErrorKind = "config"
	KindTransport RelayErrorKind = "transport"
	KindEmpty     RelayErrorKind = "empty"
)

// RelayError represents a failed relay request
type RelayError struct {
	Kind   RelayErrorKind
	Action Action
	Err    error
}

func (e *RelayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("relay %s [%s] failed", e.Action, e.Kind)
	}
	return e.Err.Error()
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// ProviderError is a structured error returned by the generative API
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "API request failed"
}

// PageError represents a failure loading or extracting a page
type PageError struct {
	Source string
	Op     string
	Err    error
}

func (e *PageError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("page %s [%s]: %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("page %s: %v", e.Op, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
