package kitsu

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error
type Kind int

const (
	// KindInvalidURL means the request target could not be built
	KindInvalidURL Kind = iota + 1
	// KindTransport means the HTTP exchange did not complete
	KindTransport
	// KindBadRequest means the API answered 400
	KindBadRequest
	// KindUnauthorized means the API answered 401
	KindUnauthorized
	// KindUnexpectedStatus means the API answered with another non-200 status
	KindUnexpectedStatus
	// KindDecode means a 200 body could not be decoded
	KindDecode
)

// Sentinel errors, one per Kind. Match with errors.Is.
var (
	ErrInvalidURL       = errors.New("invalid request url")
	ErrTransport        = errors.New("transport failure")
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("invalid response body")
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "INVALID_URL"
	case KindTransport:
		return "TRANSPORT"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindUnexpectedStatus:
		return "UNEXPECTED_STATUS"
	case KindDecode:
		return "DECODE"
	default:
		return "UNKNOWN"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidURL:
		return ErrInvalidURL
	case KindTransport:
		return ErrTransport
	case KindBadRequest:
		return ErrBadRequest
	case KindUnauthorized:
		return ErrUnauthorized
	case KindUnexpectedStatus:
		return ErrUnexpectedStatus
	case KindDecode:
		return ErrDecode
	default:
		return nil
	}
}

// RawResponse is a fully read HTTP response
type RawResponse struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Error is returned by every request operation
type Error struct {
	Kind Kind
	// URL is the request target, or the raw string that failed to parse
	URL string
	// Err is the underlying cause; nil for status errors
	Err error
	// Response is set for BadRequest, Unauthorized and UnexpectedStatus
	Response *RawResponse
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Response != nil:
		return fmt.Sprintf("kitsu: %s: GET %s: status %d", e.Kind.sentinel(), e.URL, e.Response.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("kitsu: %s: %s: %v", e.Kind.sentinel(), e.URL, e.Err)
	default:
		return fmt.Sprintf("kitsu: %s: %s", e.Kind.sentinel(), e.URL)
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's Kind
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// StatusCode returns the HTTP status, or 0 when no response was received
func (e *Error) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// IsUnauthorized checks if the API rejected the request as unauthorized
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindUnauthorized
}

// IsNotFound checks if the API answered 404
func (e *Error) IsNotFound() bool {
	return e.StatusCode() == http.StatusNotFound
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr.Kind == kind
	}
	return false
}

// classifyStatus maps a completed exchange to nil (200) or a status error
func classifyStatus(target string, raw *RawResponse) error {
	switch raw.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return &Error{Kind: KindBadRequest, URL: target, Response: raw}
	case http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, URL: target, Response: raw}
	default:
		return &Error{Kind: KindUnexpectedStatus, URL: target, Response: raw}
	}
}

func invalidURLError(target string, err error) error {
	return &Error{Kind: KindInvalidURL, URL: target, Err: err}
}

func transportError(target string, err error) error {
	return &Error{Kind: KindTransport, URL: target, Err: err}
}

func decodeError(target string, err error) error {
	return &Error{Kind: KindDecode, URL: target, Err: err}
}
