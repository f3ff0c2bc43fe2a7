package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pricofy/notes-translator/internal/domain"
	"github.com/pricofy/notes-translator/internal/generator"
	"github.com/pricofy/notes-translator/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockTranslator implements Translator for testing
type MockTranslator struct {
	TranslateFunc func(ctx context.Context, req domain.Request) domain.Result
	Requests      []domain.Request
	RequestIDs    []string
}

func (m *MockTranslator) Translate(ctx context.Context, req domain.Request) domain.Result {
	m.Requests = append(m.Requests, req)
	m.RequestIDs = append(m.RequestIDs, handler.RequestID(ctx))
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, req)
	}
	return domain.Success("ok")
}

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(context.Context, string) (string, error) {
	return s.text, s.err
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) domain.Response {
	t.Helper()
	var resp domain.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	s := New(&MockTranslator{}, nil)

	w := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestStyles(t *testing.T) {
	s := New(&MockTranslator{}, &domain.StyleSelector{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/styles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Styles   []string `json:"styles"`
		Selected string   `json:"selected"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Styles) != 7 {
		t.Errorf("got %d styles, want 7", len(body.Styles))
	}
	if body.Selected != "Gen Z" {
		t.Errorf("selected = %q, want Gen Z", body.Selected)
	}
}

func TestSelectStyle(t *testing.T) {
	sel := &domain.StyleSelector{}
	s := New(&MockTranslator{}, sel)

	tests := []struct {
		name     string
		body     any
		status   int
		selected string
	}{
		{"valid style", map[string]string{"style": "Shakespeare"}, http.StatusOK, "Shakespeare"},
		{"unknown style keeps selection", map[string]string{"style": "Klingon"}, http.StatusBadRequest, "Shakespeare"},
		{"malformed body", "{not json", http.StatusBadRequest, "Shakespeare"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s.Handler(), http.MethodPut, "/styles/selected", tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if sel.Current() != tt.selected {
				t.Errorf("selected = %q, want %q", sel.Current(), tt.selected)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		gen      stubGenerator
		body     any
		status   int
		category domain.ErrorCategory
		html     string
	}{
		{
			name:   "success renders html",
			gen:    stubGenerator{text: "Hello **world**\n* item one"},
			body:   map[string]string{"text": "notes", "style": "Pirate"},
			status: http.StatusOK,
			html:   "Hello <strong>world</strong>\n• item one",
		},
		{
			name:     "empty text",
			gen:      stubGenerator{text: "unused"},
			body:     map[string]string{"text": "", "style": "Pirate"},
			status:   http.StatusBadRequest,
			category: domain.ValidationError,
		},
		{
			name:     "empty style rejected at boundary",
			gen:      stubGenerator{text: "unused"},
			body:     map[string]string{"text": "notes", "style": ""},
			status:   http.StatusBadRequest,
			category: domain.ValidationError,
		},
		{
			name:     "malformed body",
			gen:      stubGenerator{text: "unused"},
			body:     "{",
			status:   http.StatusBadRequest,
			category: domain.ValidationError,
		},
		{
			name:     "quota",
			gen:      stubGenerator{err: errors.New("quota exceeded for project")},
			body:     map[string]string{"text": "notes", "style": "Rap"},
			status:   http.StatusTooManyRequests,
			category: domain.QuotaError,
		},
		{
			name:     "auth",
			gen:      stubGenerator{err: &generator.Error{Category: domain.AuthError}},
			body:     map[string]string{"text": "notes", "style": "Rap"},
			status:   http.StatusUnauthorized,
			category: domain.AuthError,
		},
		{
			name:     "safety",
			gen:      stubGenerator{err: errors.New("SAFETY")},
			body:     map[string]string{"text": "notes", "style": "Rap"},
			status:   http.StatusUnprocessableEntity,
			category: domain.ContentPolicyError,
		},
		{
			name:     "unknown",
			gen:      stubGenerator{err: errors.New("network down")},
			body:     map[string]string{"text": "notes", "style": "Rap"},
			status:   http.StatusBadGateway,
			category: domain.UnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.New(handler.Deps{Generator: tt.gen, Credential: "key", Logger: discardLogger{}})
			s := New(h, nil)

			w := doJSON(t, s.Handler(), http.MethodPost, "/translate", tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			resp := decodeResponse(t, w)
			if resp.Category != tt.category {
				t.Errorf("category = %q, want %q", resp.Category, tt.category)
			}
			if resp.HTML != tt.html {
				t.Errorf("html = %q, want %q", resp.HTML, tt.html)
			}
		})
	}
}

func TestTranslate_MissingCredential(t *testing.T) {
	h := handler.New(handler.Deps{Generator: stubGenerator{text: "x"}, Logger: discardLogger{}})
	s := New(h, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/translate", map[string]string{"text": "notes", "style": "Yoda"})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Category != domain.ConfigurationError || resp.Error != "missing credential" {
		t.Errorf("resp = %+v, want ConfigurationError", resp)
	}
}

func TestTranslate_DefaultsToSelectedStyle(t *testing.T) {
	sel := &domain.StyleSelector{}
	if err := sel.Select("Victorian Era"); err != nil {
		t.Fatal(err)
	}
	mock := &MockTranslator{}
	s := New(mock, sel)

	w := doJSON(t, s.Handler(), http.MethodPost, "/translate", map[string]string{"text": "notes"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(mock.Requests) != 1 || mock.Requests[0].Style != "Victorian Era" {
		t.Errorf("requests = %+v, want style Victorian Era", mock.Requests)
	}
}

func TestRequestID(t *testing.T) {
	mock := &MockTranslator{}
	s := New(mock, nil)

	// Caller-supplied id is propagated
	req := httptest.NewRequest(http.MethodPost, "/translate", bytes.NewBufferString(`{"text":"n","style":"Yoda"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "caller-id")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "caller-id" {
		t.Errorf("%s = %q, want caller-id", RequestIDHeader, got)
	}
	if mock.RequestIDs[0] != "caller-id" {
		t.Errorf("context request id = %q, want caller-id", mock.RequestIDs[0])
	}

	// Otherwise one is generated
	w = doJSON(t, s.Handler(), http.MethodPost, "/translate", map[string]string{"text": "n", "style": "Yoda"})
	id := w.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated request id %q is not a UUID: %v", id, err)
	}
	if mock.RequestIDs[1] != id {
		t.Errorf("context request id = %q, want %q", mock.RequestIDs[1], id)
	}
}
