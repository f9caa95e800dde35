package gateway

import "fmt"

// ErrorCode identifies a classified gateway failure.
type ErrorCode string

const (
	CodeInvalidRequest ErrorCode = "invalid_request"
	CodeRateLimited    ErrorCode = "rate_limited"
	CodeUnauthorized   ErrorCode = "unauthorized"
	CodeUpstreamError  ErrorCode = "upstream_error"
	CodeUnknownSession ErrorCode = "unknown_session"
)

// Error is a classified gateway failure. Message is safe to show to API
// clients; Details carries upstream diagnostics and may be empty.
type Error struct {
	Code    ErrorCode
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

func invalidRequest(message string) *Error {
	return &Error{Code: CodeInvalidRequest, Message: message}
}

func rateLimited(details string) *Error {
	return &Error{
		Code:    CodeRateLimited,
		Message: "API rate limit exceeded. Please try again later.",
		Details: details,
	}
}

func unauthorized(details string) *Error {
	return &Error{
		Code:    CodeUnauthorized,
		Message: "Invalid API key",
		Details: details,
	}
}

func upstream(details string) *Error {
	return &Error{
		Code:    CodeUpstreamError,
		Message: "Failed to get response from AI",
		Details: details,
	}
}
