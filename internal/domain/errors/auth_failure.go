package errors

import "net/http"

// AuthFailureReason records why an authentication attempt was rejected.
// The reason is for internal logging and metrics only; it must never reach
// the caller, which always sees the generic ErrInvalidCredentials shape.
type AuthFailureReason string

const (
	// AuthFailureUserNotFound means no credential exists for the username.
	AuthFailureUserNotFound AuthFailureReason = "user_not_found"
	// AuthFailureBadPassword means the credential exists but the password
	// did not verify.
	AuthFailureBadPassword AuthFailureReason = "bad_password"
)

// AuthFailure is the expected outcome of a failed login attempt. It is a
// result value rather than an exceptional condition, but modeled as an error
// so it flows through the usual error-handling path.
type AuthFailure struct {
	Reason AuthFailureReason
}

// NewAuthFailure creates an AuthFailure with the given internal reason.
func NewAuthFailure(reason AuthFailureReason) *AuthFailure {
	return &AuthFailure{Reason: reason}
}

// Error implements the error interface. The message is identical for every
// reason to prevent username enumeration.
func (e *AuthFailure) Error() string {
	return ErrInvalidCredentials.Message()
}

// Is lets errors.Is(err, ErrInvalidCredentials) match any AuthFailure.
func (e *AuthFailure) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// HTTPCode returns the HTTP status code
func (e *AuthFailure) HTTPCode() int {
	return http.StatusUnauthorized
}

// ErrorCode returns the business error code
func (e *AuthFailure) ErrorCode() string {
	return ErrInvalidCredentials.ErrorCode()
}

// Message returns the user-friendly error message
func (e *AuthFailure) Message() string {
	return ErrInvalidCredentials.Message()
}

// Details returns detailed error information. Always empty: the rejection
// reason stays internal.
func (e *AuthFailure) Details() string {
	return ""
}

// SessionInvalidReason records why a session token was rejected.
type SessionInvalidReason string

const (
	// SessionNotFound means no session exists for the token.
	SessionNotFound SessionInvalidReason = "not_found"
	// SessionExpired means the session existed but its expiry has passed.
	// The expired record is deleted as a side effect of validation.
	SessionExpired SessionInvalidReason = "expired"
)

// SessionInvalid is the expected outcome of validating a missing or expired
// session token. Both reasons produce the same caller-visible effect:
// treat the request as logged out.
type SessionInvalid struct {
	Reason SessionInvalidReason
}

// NewSessionInvalid creates a SessionInvalid with the given internal reason.
func NewSessionInvalid(reason SessionInvalidReason) *SessionInvalid {
	return &SessionInvalid{Reason: reason}
}

// Error implements the error interface.
func (e *SessionInvalid) Error() string {
	return ErrSessionInvalid.Message()
}

// Is lets errors.Is(err, ErrSessionInvalid) match any SessionInvalid.
func (e *SessionInvalid) Is(target error) bool {
	return target == ErrSessionInvalid
}

// HTTPCode returns the HTTP status code
func (e *SessionInvalid) HTTPCode() int {
	return http.StatusUnauthorized
}

// ErrorCode returns the business error code
func (e *SessionInvalid) ErrorCode() string {
	return ErrSessionInvalid.ErrorCode()
}

// Message returns the user-friendly error message
func (e *SessionInvalid) Message() string {
	return ErrSessionInvalid.Message()
}

// Details returns detailed error information. Always empty.
func (e *SessionInvalid) Details() string {
	return ""
}
