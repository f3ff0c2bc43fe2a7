// Package server exposes the translation handler over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pricofy/notes-translator/internal/domain"
	"github.com/pricofy/notes-translator/internal/handler"
)

// RequestIDHeader carries the per-request id in and out.
const RequestIDHeader = "X-Request-ID"

// Translator is the part of handler.Handler the server needs.
type Translator interface {
	Translate(ctx context.Context, req domain.Request) domain.Result
}

// Server is the HTTP transport for the translator.
type Server struct {
	translator Translator
	selector   *domain.StyleSelector
	router     *gin.Engine
}

type translateRequest struct {
	Text  string  `json:"text"`
	Style *string `json:"style"`
}

type selectRequest struct {
	Style string `json:"style"`
}

// New creates a Server. The selector supplies the style for requests that
// omit one.
func New(t Translator, selector *domain.StyleSelector) *Server {
	if selector == nil {
		selector = &domain.StyleSelector{}
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	s := &Server{
		translator: t,
		selector:   selector,
		router:     router,
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/styles", s.handleStyles)
	router.PUT("/styles/selected", s.handleSelectStyle)
	router.POST("/translate", s.handleTranslate)

	return s
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStyles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"styles":   domain.Styles(),
		"selected": s.selector.Current(),
	})
}

func (s *Server) handleSelectStyle(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.selector.Select(req.Style); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": s.selector.Current()})
}

func (s *Server) handleTranslate(c *gin.Context) {
	var body translateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, &domain.Response{
			Category: domain.ValidationError,
			Error:    "invalid request body",
		})
		return
	}

	style := s.selector.Current()
	if body.Style != nil {
		style = *body.Style
	}
	// The handler validates again; rejecting here keeps unknown labels
	// out of the log.
	if !domain.IsValidStyle(style) {
		c.JSON(http.StatusBadRequest, &domain.Response{
			Category: domain.ValidationError,
			Error:    domain.MsgInputRequired,
		})
		return
	}

	res := s.translator.Translate(c.Request.Context(), domain.Request{Text: body.Text, Style: style})
	c.JSON(handler.StatusCode(res.Category), handler.ToResponse(res))
}

// requestID tags each request with an id, reusing the caller's when given.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(handler.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
