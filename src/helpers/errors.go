package helpers

import (
	"fmt"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ClientError struct {
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// NotAuthenticatedError - a protected operation was attempted with no live
// session. Recoverable by logging in.
type NotAuthenticatedError struct{ ClientError }

func NewNotAuthenticatedError() *NotAuthenticatedError {
	return &NotAuthenticatedError{ClientError{Message: "not authenticated: log in first"}}
}

// AuthenticationFailedError - the server rejected the login. The session
// stays logged out.
type AuthenticationFailedError struct{ ClientError }

func NewAuthenticationFailedError(serverMessage string) *AuthenticationFailedError {
	msg := "login rejected by server"
	if serverMessage != "" {
		msg = fmt.Sprintf("login rejected by server: %s", serverMessage)
	}
	return &AuthenticationFailedError{ClientError{Message: msg}}
}

// SessionExpiredError - keep-alive found the session invalid; it has been
// forced to logged out.
type SessionExpiredError struct{ ClientError }

func NewSessionExpiredError() *SessionExpiredError {
	return &SessionExpiredError{ClientError{Message: "session expired"}}
}

// EnvelopeError - the XML envelope reported a non-OK result.
type EnvelopeError struct {
	ClientError
	Result string
}

func NewEnvelopeError(result, serverMessage string) *EnvelopeError {
	msg := fmt.Sprintf("server returned result %q", result)
	if serverMessage != "" {
		msg = fmt.Sprintf("server returned result %q: %s", result, serverMessage)
	}
	return &EnvelopeError{ClientError: ClientError{Message: msg}, Result: result}
}

// ValidationError - a request was rejected locally before any network call.
type ValidationError struct{ ClientError }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{ClientError{Message: fmt.Sprintf(format, args...)}}
}

// TransportError - an opaque network-layer failure, passed through unchanged.
type TransportError struct{ ClientError }

func NewTransportError(cause error) *TransportError {
	return &TransportError{ClientError{Message: "transport failure", Cause: cause}}
}

// -----------------------------------------------------------------------------

// RecordDecodeError - one field of one record failed to parse. Contained to
// that record; never aborts a batch.
type RecordDecodeError struct {
	ClientError
	Field string
}

func NewRecordDecodeError(field, value string, cause error) *RecordDecodeError {
	return &RecordDecodeError{
		ClientError: ClientError{Message: fmt.Sprintf("cannot decode field %q from %q", field, value), Cause: cause},
		Field:       field,
	}
}

// MalformedStreamError - the binary stream violated its framing; the whole
// decode aborts and nothing is returned.
type MalformedStreamError struct {
	ClientError
	Reason string
}

func NewMalformedStreamError(format string, args ...interface{}) *MalformedStreamError {
	reason := fmt.Sprintf(format, args...)
	return &MalformedStreamError{
		ClientError: ClientError{Message: fmt.Sprintf("malformed price stream: %s", reason)},
		Reason:      reason,
	}
}

// TruncatedStreamError - the binary stream ended before a field it promised.
type TruncatedStreamError struct{ ClientError }

func NewTruncatedStreamError(need int, have int) *TruncatedStreamError {
	return &TruncatedStreamError{ClientError{
		Message: fmt.Sprintf("truncated price stream: need %d more byte(s), have %d", need, have),
	}}
}
