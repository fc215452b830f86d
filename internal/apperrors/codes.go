package apperrors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication and authorization outcomes. These codes are stable:
// clients rely on them to decide between a re-login prompt and an
// insufficient-permission message.
const (
	// ErrCodeInvalidCredentials is the normalized login failure.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeUnauthorized indicates a missing credential on a protected operation.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeTokenExpired indicates a well-signed token past its expiry.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates a malformed or badly signed token.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeForbidden indicates an authenticated caller without the required role.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Resource and input errors.
const (
	// ErrCodeNotFound indicates the requested resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates a uniqueness conflict.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeInvalidInput indicates a request that failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Server-side errors.
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
