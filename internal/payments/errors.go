package payments

import (
	"errors"
	"fmt"
	"net/http"
)

// Typed errors shared by both payment paths. Each carries the HTTP
// status handlers should answer with and a stable type tag for the
// JSON error body.

type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ProviderError wraps a rejection from a payment backend. The
// provider's message is passed through verbatim.
type ProviderError struct {
	Message    string
	StatusCode int
}

func (e *ProviderError) Error() string { return e.Message }

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

type SignatureError struct {
	Reason string
}

func (e *SignatureError) Error() string { return e.Reason }

// HTTPStatus maps an error to the response status: 503 for missing
// configuration, 400 for bad input, 404 for missing references, 401
// for webhook signature failures, the provider's own status (or 500)
// for provider rejections.
func HTTPStatus(err error) int {
	var cfg *ConfigurationError
	var val *ValidationError
	var prov *ProviderError
	var nf *NotFoundError
	var sig *SignatureError

	switch {
	case errors.As(err, &cfg):
		return http.StatusServiceUnavailable
	case errors.As(err, &val):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &sig):
		return http.StatusUnauthorized
	case errors.As(err, &prov):
		if prov.StatusCode > 0 {
			return prov.StatusCode
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ErrorType is the machine-readable tag returned next to the message.
func ErrorType(err error) string {
	var cfg *ConfigurationError
	var val *ValidationError
	var prov *ProviderError
	var nf *NotFoundError
	var sig *SignatureError

	switch {
	case errors.As(err, &cfg):
		return "configuration_error"
	case errors.As(err, &val):
		return "validation_error"
	case errors.As(err, &nf):
		return "not_found"
	case errors.As(err, &sig):
		return "signature_error"
	case errors.As(err, &prov):
		return "provider_error"
	default:
		return "internal_error"
	}
}

func providerErr(status int, format string, args ...any) *ProviderError {
	return &ProviderError{Message: fmt.Sprintf(format, args...), StatusCode: status}
}
