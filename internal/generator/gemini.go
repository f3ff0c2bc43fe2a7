package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pricofy/notes-translator/internal/domain"
)

const (
	// DefaultGeminiBaseURL is the public Generative Language API endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultGeminiModel is used when no model is configured.
	DefaultGeminiModel = "gemini-1.5-flash"

	// DefaultGeminiTimeout bounds a single generateContent call.
	DefaultGeminiTimeout = 60 * time.Second

	generatePath = "/v1beta/models/{model}:generateContent"
)

// finish reasons that mean the candidate was withheld by a content filter
var blockedFinishReasons = map[string]bool{
	"SAFETY":             true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
}

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Gemini calls the generateContent endpoint of the Gemini API.
type Gemini struct {
	apiKey string
	model  string
	http   *resty.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Details []struct {
		Reason string `json:"reason"`
	} `json:"details"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// NewGemini creates a Gemini client. Empty fields take the package defaults.
func NewGemini(cfg GeminiConfig) *Gemini {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultGeminiTimeout
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Gemini{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		http:   c,
	}
}

// Model returns the configured model identifier.
func (g *Gemini) Model() string {
	return g.model
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	var out generateResponse
	var apiErr errorEnvelope
	resp, err := g.http.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", g.apiKey).
		SetPathParam("model", g.model).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post(generatePath)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.IsError() {
		return "", classifyStatus(resp.StatusCode(), apiErr.Error, resp.String())
	}

	return extractText(out)
}

// classifyStatus turns a non-2xx response into an error. Auth and quota
// failures come back as *Error; anything else is left for the message rules.
func classifyStatus(code int, e apiError, body string) error {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = abbreviate(strings.TrimSpace(body), 512)
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	upstream := fmt.Errorf("gemini status %d: %s", code, msg)

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden,
		e.Status == "UNAUTHENTICATED" || e.Status == "PERMISSION_DENIED",
		e.hasReason("API_KEY_INVALID"):
		return &Error{Category: domain.AuthError, Message: msg, Err: upstream}
	case code == http.StatusTooManyRequests, e.Status == "RESOURCE_EXHAUSTED":
		return &Error{Category: domain.QuotaError, Message: msg, Err: upstream}
	}
	return upstream
}

func extractText(out generateResponse) (string, error) {
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", &Error{
			Category: domain.ContentPolicyError,
			Message:  "prompt blocked: " + out.PromptFeedback.BlockReason,
		}
	}
	if len(out.Candidates) == 0 {
		return "", errors.New("gemini: empty response")
	}

	cand := out.Candidates[0]
	if blockedFinishReasons[cand.FinishReason] {
		return "", &Error{
			Category: domain.ContentPolicyError,
			Message:  "candidate blocked: " + cand.FinishReason,
		}
	}

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini: empty response")
	}
	return sb.String(), nil
}

func (e apiError) hasReason(reason string) bool {
	for _, d := range e.Details {
		if d.Reason == reason {
			return true
		}
	}
	return false
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
