// Package handler turns a translation request into a classified result.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pricofy/notes-translator/internal/domain"
	"github.com/pricofy/notes-translator/internal/generator"
	"github.com/pricofy/notes-translator/internal/prompt"
	"github.com/pricofy/notes-translator/internal/render"
)

// Logger is the diagnostic sink for raw generator errors.
type Logger interface {
	Printf(format string, v ...any)
}

// Deps are the collaborators of a Handler.
type Deps struct {
	Generator generator.Generator
	// Credential is the API key the generator was built with. Only its
	// presence is checked here.
	Credential string
	// MaxInputTokens caps the estimated size of the notes. 0 disables it.
	MaxInputTokens int
	Logger         Logger
}

// Handler validates requests, builds the prompt, calls the generator once
// and classifies the outcome. It holds no per-request state and is safe for
// concurrent use.
type Handler struct {
	d Deps
}

var errInputRequired = errors.New(domain.MsgInputRequired)

// New creates a Handler. A nil Logger logs to the standard logger.
func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	return &Handler{d: d}
}

// Translate rewrites the notes in req in the requested style.
func (h *Handler) Translate(ctx context.Context, req domain.Request) domain.Result {
	if err := validateRequest(req); err != nil {
		return domain.Failure(domain.ValidationError, err.Error())
	}
	if strings.TrimSpace(h.d.Credential) == "" {
		return domain.Failure(domain.ConfigurationError, domain.MsgMissingCredential)
	}
	if h.d.Generator == nil {
		return domain.Failure(domain.ConfigurationError, "generator not configured")
	}

	tokens := prompt.EstimateTokens(req.Text)
	if !prompt.WithinBudget(req.Text, h.d.MaxInputTokens) {
		return domain.Failure(domain.ValidationError,
			fmt.Sprintf("text exceeds %d token limit", h.d.MaxInputTokens))
	}

	text, err := h.d.Generator.Generate(ctx, prompt.Build(req.Style, req.Text))
	if err != nil {
		h.d.Logger.Printf("request %s: generate failed (style=%q tokens=%d): %v",
			RequestID(ctx), req.Style, tokens, err)
		return classify(err)
	}

	h.d.Logger.Printf("request %s: translated (style=%q tokens=%d)", RequestID(ctx), req.Style, tokens)
	return domain.Success(text)
}

// Handle processes a translation request and folds every outcome into the
// Response. The error return is always nil; failures travel in the body.
func (h *Handler) Handle(ctx context.Context, req domain.Request) (*domain.Response, error) {
	return ToResponse(h.Translate(ctx, req)), nil
}

// ToResponse converts a Result to its wire shape. Successful text is also
// rendered to HTML; failure messages never are.
func ToResponse(res domain.Result) *domain.Response {
	if !res.OK() {
		return &domain.Response{Category: res.Category, Error: res.Message}
	}
	return &domain.Response{Text: res.Text, HTML: render.HTML(res.Text)}
}

// StatusCode maps a failure category to the HTTP status used by the HTTP
// facing transports. An empty category is success.
func StatusCode(category domain.ErrorCategory) int {
	switch category {
	case "":
		return http.StatusOK
	case domain.ValidationError:
		return http.StatusBadRequest
	case domain.ConfigurationError:
		return http.StatusInternalServerError
	case domain.AuthError:
		return http.StatusUnauthorized
	case domain.QuotaError:
		return http.StatusTooManyRequests
	case domain.ContentPolicyError:
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

// validateRequest checks the request is valid.
func validateRequest(req domain.Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return errInputRequired
	}
	if !domain.IsValidStyle(req.Style) {
		return errInputRequired
	}
	return nil
}

// classify prefers the category the generator assigned and falls back to
// matching the error message.
func classify(err error) domain.Result {
	var genErr *generator.Error
	if errors.As(err, &genErr) && genErr.Category != "" && genErr.Category != domain.UnknownError {
		return domain.Failure(genErr.Category, genErr.Category.Message())
	}

	category := generator.Classify(err.Error())
	if category == domain.UnknownError {
		return domain.Failure(domain.UnknownError, err.Error())
	}
	return domain.Failure(category, category.Message())
}

type requestIDKey struct{}

// WithRequestID attaches a request id used in log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id attached to ctx, or "-".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return "-"
}
