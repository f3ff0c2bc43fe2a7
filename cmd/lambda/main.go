// Package main is the entry point for the notes translator Lambda function.
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/pricofy/notes-translator/internal/config"
	"github.com/pricofy/notes-translator/internal/domain"
	"github.com/pricofy/notes-translator/internal/generator"
	"github.com/pricofy/notes-translator/internal/handler"
)

// app holds everything built once per cold start.
type app struct {
	handler *handler.Handler
	warmer  *Warmer
}

func main() {
	log.SetPrefix("[TRANSLATOR] ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.APIKey == "" {
		log.Printf("GEMINI_API_KEY is not set; translations will fail with %s", domain.ConfigurationError)
	}
	log.Printf("starting (environment=%s model=%s)", cfg.Environment, cfg.Model)

	a := &app{
		handler: newHandler(cfg),
		warmer:  NewWarmer(cfg.FunctionName, nil),
	}
	lambda.Start(a.handleRequest)
}

func newHandler(cfg config.Config) *handler.Handler {
	gen := generator.NewGemini(generator.GeminiConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	return handler.New(handler.Deps{
		Generator:      gen,
		Credential:     cfg.APIKey,
		MaxInputTokens: cfg.MaxInputTokens,
		Logger:         log.Default(),
	})
}

func (a *app) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return a.warmer.Handle(ctx, warmup)
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		ctx = handler.WithRequestID(ctx, lc.AwsRequestID)
	}

	if IsFunctionURLEvent(event) {
		return a.handleFunctionURL(ctx, event)
	}

	// Direct invocation
	var req domain.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}
	return a.handler.Handle(ctx, req)
}
