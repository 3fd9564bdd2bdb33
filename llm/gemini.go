// Package llm adapts Google Gemini to the extraction engine's Completer interface.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
)

const (
	// DefaultModel is the generation model used for field extraction
	DefaultModel = "gemini-3-pro-preview"

	maxRetries     = 3
	initialBackoff = time.Second

	// Free-tier friendly defaults
	defaultRateLimit = 50.0 / 60.0 // ~0.83 requests per second
	defaultBurst     = 5
)

// GeminiCompleter generates extraction completions with Gemini.
// The model is configured to return JSON so responses parse directly.
// Safe for concurrent use; requests share one rate limiter.
type GeminiCompleter struct {
	model   *genai.GenerativeModel
	limiter *rate.Limiter
}

// GeminiOption configures a GeminiCompleter
type GeminiOption func(*geminiConfig)

type geminiConfig struct {
	modelName string
	rps       float64
	burst     int
}

// WithModel overrides the generation model name
func WithModel(name string) GeminiOption {
	return func(cfg *geminiConfig) {
		cfg.modelName = name
	}
}

// WithRateLimit overrides the request rate limit
func WithRateLimit(requestsPerSecond float64, burst int) GeminiOption {
	return func(cfg *geminiConfig) {
		cfg.rps = requestsPerSecond
		cfg.burst = burst
	}
}

// NewGeminiCompleter wraps an existing genai client. The caller keeps
// ownership of the client and is responsible for closing it.
func NewGeminiCompleter(client *genai.Client, opts ...GeminiOption) *GeminiCompleter {
	cfg := geminiConfig{
		modelName: DefaultModel,
		rps:       defaultRateLimit,
		burst:     defaultBurst,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	model := client.GenerativeModel(cfg.modelName)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.SetTemperature(0.1)

	return &GeminiCompleter{
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(cfg.rps), cfg.burst),
	}
}

// Complete sends the prompt to Gemini and returns the raw text response.
// Transient failures are retried with exponential backoff.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
		}

		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			continue
		}

		text := extractText(resp)
		if text == "" {
			lastErr = fmt.Errorf("empty response from model")
			continue
		}

		return text, nil
	}

	return "", fmt.Errorf("failed to generate content after %d attempts: %w", maxRetries, lastErr)
}

// extractText collects the text parts of the first candidate and strips
// markdown fences in case the model wrapped its JSON anyway.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	clean := strings.TrimSpace(sb.String())
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
