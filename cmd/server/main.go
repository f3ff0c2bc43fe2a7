// Package main runs the notes translator as a plain HTTP server, for local
// development and self-hosting outside Lambda.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pricofy/notes-translator/internal/config"
	"github.com/pricofy/notes-translator/internal/domain"
	"github.com/pricofy/notes-translator/internal/generator"
	"github.com/pricofy/notes-translator/internal/handler"
	"github.com/pricofy/notes-translator/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetPrefix("[TRANSLATOR] ")

	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	if cfg.APIKey == "" {
		log.Printf("GEMINI_API_KEY is not set; translations will fail with %s", domain.ConfigurationError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

// parseConfig loads the environment and applies flag overrides.
func parseConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The HTTP server port")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	gen := generator.NewGemini(generator.GeminiConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	h := handler.New(handler.Deps{
		Generator:      gen,
		Credential:     cfg.APIKey,
		MaxInputTokens: cfg.MaxInputTokens,
		Logger:         log.Default(),
	})
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(h, &domain.StyleSelector{}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (environment=%s model=%s)", srv.Addr, cfg.Environment, gen.Model())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Printf("shutting down")
	return srv.Shutdown(shutdownCtx)
}
