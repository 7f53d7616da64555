package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
)

// ErrorType is the cause of a failed request.
type ErrorType int

const (
	// ErrTypeTimeout indicates the request did not complete in time
	ErrTypeTimeout ErrorType = iota
	// ErrTypeTransport indicates a network-level failure (DNS, refused, reset, open breaker)
	ErrTypeTransport
	// ErrTypeDecode indicates a response body that could not be parsed
	ErrTypeDecode
	// ErrTypeStatus indicates a non-2xx HTTP status
	ErrTypeStatus
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeDecode:
		return "Decode Error"
	case ErrTypeStatus:
		return "Status Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// RequestError describes a failed outbound request.
type RequestError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (ErrTypeStatus only)
	URL        string    // Request URL without query string
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether another attempt may succeed
}

// Error implements the error interface
func (e *RequestError) Error() string {
	prefix := e.Type.String()
	if e.URL != "" {
		prefix = fmt.Sprintf("%s (%s)", prefix, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *RequestError) Unwrap() error {
	return e.Err
}

// ClassifyTransportError turns an http.Client error into a *RequestError.
func ClassifyTransportError(err error, rawURL string) *RequestError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &RequestError{
			Type:      ErrTypeTimeout,
			Message:   "request timed out",
			URL:       rawURL,
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &RequestError{
			Type:      ErrTypeTransport,
			Message:   fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			URL:       rawURL,
			Err:       err,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyTransportError(urlErr.Err, rawURL)
	}

	return &RequestError{
		Type:      ErrTypeTransport,
		Message:   "request failed",
		URL:       rawURL,
		Err:       err,
		Retryable: true,
	}
}

// NewStatusError creates an error for a non-2xx response.
func NewStatusError(statusCode int, rawURL string) *RequestError {
	retryable := statusCode >= 500 || statusCode == http.StatusTooManyRequests
	return &RequestError{
		Type:       ErrTypeStatus,
		Message:    fmt.Sprintf("unexpected status %d %s", statusCode, http.StatusText(statusCode)),
		StatusCode: statusCode,
		URL:        rawURL,
		Retryable:  retryable,
	}
}

// NewDecodeError creates an error for an unparseable body.
func NewDecodeError(message, rawURL string, err error) *RequestError {
	return &RequestError{
		Type:      ErrTypeDecode,
		Message:   message,
		URL:       rawURL,
		Err:       err,
		Retryable: false,
	}
}

func asRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// IsTimeout reports whether err is a timed out request.
func IsTimeout(err error) bool {
	reqErr, ok := asRequestError(err)
	return ok && reqErr.Type == ErrTypeTimeout
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	reqErr, ok := asRequestError(err)
	return ok && reqErr.Type == ErrTypeTransport
}

// IsDecode reports whether err is a body decoding failure.
func IsDecode(err error) bool {
	reqErr, ok := asRequestError(err)
	return ok && reqErr.Type == ErrTypeDecode
}

// IsStatus reports whether err is a non-2xx response.
func IsStatus(err error) bool {
	reqErr, ok := asRequestError(err)
	return ok && reqErr.Type == ErrTypeStatus
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if reqErr, ok := asRequestError(err); ok {
		return reqErr.StatusCode
	}
	return 0
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if reqErr, ok := asRequestError(err); ok {
		return reqErr.Retryable
	}
	return false
}
