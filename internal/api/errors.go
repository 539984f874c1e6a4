package api

import (
	"errors"
	"fmt"
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindNetwork covers DNS, connect, timeout and read failures.
	KindNetwork Kind = iota + 1
	// KindStatus is a non-200 HTTP status.
	KindStatus
	// KindProvider is an HTTP 200 whose body carries a non-200 code.
	KindProvider
	// KindMalformed is a body that is not JSON or lacks the expected fields.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindProvider:
		return "provider"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ProviderError is the only error type returned by Client methods.
// Message is the Russian text shown in logs and safe to show to users.
type ProviderError struct {
	Kind       Kind
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a *ProviderError of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == kind
}

func networkError(endpoint string, err error) *ProviderError {
	return &ProviderError{
		Kind:     KindNetwork,
		Endpoint: endpoint,
		Message:  fmt.Sprintf("Ошибка сети: %v", err),
		Err:      err,
	}
}

func statusError(endpoint string, code int) *ProviderError {
	return &ProviderError{
		Kind:       KindStatus,
		Endpoint:   endpoint,
		StatusCode: code,
		Message:    fmt.Sprintf("Неожиданная ошибка: API вернул статус %d", code),
		Err:        fmt.Errorf("unexpected HTTP status %d", code),
	}
}

func providerError(endpoint string, code int, status string) *ProviderError {
	if status == "" {
		status = "Unknown error"
	}
	return &ProviderError{
		Kind:       KindProvider,
		Endpoint:   endpoint,
		StatusCode: code,
		Message:    fmt.Sprintf("Ошибка API: %s", status),
		Err:        fmt.Errorf("provider code %d: %s", code, status),
	}
}

func malformedError(endpoint string, err error) *ProviderError {
	return &ProviderError{
		Kind:     KindMalformed,
		Endpoint: endpoint,
		Message:  fmt.Sprintf("Неожиданная ошибка: %v", err),
		Err:      err,
	}
}
