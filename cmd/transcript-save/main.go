// Package main saves an AI chat transcript through the feature layer API.
//
// It reads a transcript as JSON ({"messages": [{"role": ..., "content": ...}]})
// from stdin or a file and posts it to the transcripts resource.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/forgestack/feature_layer/internal/app/domain/transcript"
	"github.com/forgestack/feature_layer/internal/config"
	"github.com/forgestack/feature_layer/pkg/feature"
	"github.com/forgestack/feature_layer/pkg/logger"
)

func main() {
	file := flag.String("file", "", "Transcript JSON file (defaults to stdin)")
	title := flag.String("title", "", "Transcript title (derived from the first user message when empty)")
	provider := flag.String("provider", "", "AI provider name (inferred from configured API keys when empty)")
	model := flag.String("model", "", "Model name recorded with the transcript")
	token := flag.String("token", "", "Bearer token for the API")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.NewDefault("transcript-save")

	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}

	if err := run(cfg, baseURL, *file, *title, *provider, *model, *token); err != nil {
		log.WithError(err).Error("save transcript")
		os.Exit(1)
	}
}

func run(cfg config.Config, baseURL, file, title, provider, model, token string) error {
	var in io.Reader = os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		in = f
	}

	var payload struct {
		Title    string               `json:"title"`
		Provider string               `json:"provider"`
		Model    string               `json:"model"`
		Messages []transcript.Message `json:"messages"`
	}
	if err := json.NewDecoder(in).Decode(&payload); err != nil {
		return fmt.Errorf("decode transcript: %w", err)
	}

	if title != "" {
		payload.Title = title
	}
	if provider != "" {
		payload.Provider = provider
	}
	if model != "" {
		payload.Model = model
	}
	if payload.Provider == "" {
		payload.Provider = inferProvider(cfg)
	}

	client, err := feature.NewClient[transcript.Transcript](feature.ClientConfig{
		BaseURL:   baseURL,
		Resource:  "transcripts",
		AuthToken: token,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ctrl := feature.NewController[transcript.Transcript](feature.NewStore[transcript.Transcript](), client)
	saved, err := ctrl.Create(ctx, payload)
	if err != nil {
		return err
	}

	fmt.Printf("saved transcript %s (%q, %d messages)\n", saved.ID, saved.Title, len(saved.Messages))
	return nil
}

// inferProvider guesses the provider from which API key is configured. The
// keys are never sent anywhere; they only label the transcript.
func inferProvider(cfg config.Config) string {
	switch {
	case cfg.AnthropicAPIKey != "":
		return "anthropic"
	case cfg.OpenAIAPIKey != "":
		return "openai"
	}
	return ""
}
