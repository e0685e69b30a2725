package alerts

import (
	"errors"
	"fmt"
)

const (
	msgNoContent  = "No content received from proxy."
	msgBadDataURI = "Invalid Data URI received from proxy."
	msgBadXML     = "Failed to parse RSS feed from proxy (XML error)."
)

// TransportError means the GET itself failed or returned a non-2xx status.
// StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// EnvelopeError means the proxy's JSON envelope or its data URI was unusable.
type EnvelopeError struct {
	Msg string
	Err error
}

func (e *EnvelopeError) Error() string {
	return e.Msg
}

func (e *EnvelopeError) Unwrap() error {
	return e.Err
}

// ParseError means the feed text was not well-formed XML.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind names the failure class of err for logs and metrics.
func Kind(err error) string {
	var transportErr *TransportError
	var envelopeErr *EnvelopeError
	var parseErr *ParseError
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &envelopeErr):
		return "envelope"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "unknown"
	}
}
