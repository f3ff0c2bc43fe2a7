// Package domain contains the core domain types for the notes translator.
package domain

// Request is the input to the notes translator.
type Request struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

// Response is the output from the notes translator.
// Exactly one of (Text, HTML) or (Category, Error) is populated.
type Response struct {
	Text     string        `json:"text,omitempty"`
	HTML     string        `json:"html,omitempty"`
	Category ErrorCategory `json:"category,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// ErrorCategory is the user-facing class of a failed translation.
type ErrorCategory string

const (
	ValidationError    ErrorCategory = "ValidationError"
	ConfigurationError ErrorCategory = "ConfigurationError"
	AuthError          ErrorCategory = "AuthError"
	QuotaError         ErrorCategory = "QuotaError"
	ContentPolicyError ErrorCategory = "ContentPolicyError"
	UnknownError       ErrorCategory = "UnknownError"
)

// Canonical failure messages.
const (
	MsgInputRequired     = "text and style required"
	MsgMissingCredential = "missing credential"
	MsgInvalidCredential = "invalid credential"
	MsgQuotaExceeded     = "quota exceeded"
	MsgBlockedBySafety   = "response blocked by safety policy"
)

// Message returns the canonical message for categories that have one.
// UnknownError has none; it carries the upstream message instead.
func (c ErrorCategory) Message() string {
	switch c {
	case ValidationError:
		return MsgInputRequired
	case ConfigurationError:
		return MsgMissingCredential
	case AuthError:
		return MsgInvalidCredential
	case QuotaError:
		return MsgQuotaExceeded
	case ContentPolicyError:
		return MsgBlockedBySafety
	}
	return ""
}

// Result is the outcome of a single translation: either a success carrying
// the generated text, or a failure carrying a category and message.
type Result struct {
	Text     string
	Category ErrorCategory
	Message  string
}

// Success wraps generated text.
func Success(text string) Result {
	return Result{Text: text}
}

// Failure wraps a classified error.
func Failure(category ErrorCategory, message string) Result {
	return Result{Category: category, Message: message}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Category == ""
}
