// Package generator defines the text-generation collaborator and the
// classified error it reports.
package generator

import (
	"context"
	"strings"

	"github.com/pricofy/notes-translator/internal/domain"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Error is a generation failure already classified where the upstream
// response was known.
type Error struct {
	Category domain.ErrorCategory
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Category)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// rule maps message fragments to a category. Rules are checked in order.
type rule struct {
	category  domain.ErrorCategory
	fragments []string
}

var rules = []rule{
	{
		category: domain.AuthError,
		fragments: []string{
			"api key not valid",
			"api_key_invalid",
			"invalid api key",
			"invalid credential",
			"unauthenticated",
			"permission denied",
		},
	},
	{
		category: domain.QuotaError,
		fragments: []string{
			"quota",
			"rate limit",
			"resource_exhausted",
			"resource has been exhausted",
			"too many requests",
		},
	},
	{
		category:  domain.ContentPolicyError,
		fragments: []string{"safety", "blocked"},
	},
}

// Classify derives a category from an upstream error message. The first
// matching rule wins; unmatched messages are UnknownError. This is the
// fallback for errors that reach the handler unclassified.
func Classify(message string) domain.ErrorCategory {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, f := range r.fragments {
			if strings.Contains(lower, f) {
				return r.category
			}
		}
	}
	return domain.UnknownError
}
