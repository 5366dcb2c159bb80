package coach

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jsphweid/fretnot/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrNotConfigured means no API key was supplied, so there is nothing to call.
var ErrNotConfigured = errors.New("coach: GEMINI_API_KEY is not set")

// Generator turns a prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	maxRetries  int
	backoff     time.Duration
	logger      *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, cfg config.CoachConfig, logger *zap.Logger) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.Backoff,
		logger:      logger,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, g.maxRetries, g.backoff, g.logger, func(ctx context.Context) (string, error) {
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature: genai.Ptr(g.temperature),
		})
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	})
}

// withRetry calls fn up to maxRetries times, doubling the delay after each
// failure. Cancellation of the parent context is never retried.
func withRetry(ctx context.Context, maxRetries int, backoff time.Duration, logger *zap.Logger, fn func(context.Context) (string, error)) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("coach: request canceled: %w", err)
		}

		text, err := fn(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", fmt.Errorf("coach: request canceled: %w", ctx.Err())
		}
		if !retryable(err) {
			return "", fmt.Errorf("coach: request failed: %w", err)
		}

		logger.Warn("gemini request failed",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err))

		if attempt == maxRetries-1 {
			break
		}
		if err := sleepWithContext(ctx, backoff*time.Duration(1<<attempt)); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("coach: request failed after %d attempts: %w", maxRetries, lastErr)
}

// retryable reports whether another attempt could succeed. API errors are
// only retried when throttled, timed out or failing server side; a bad key or
// a malformed request fails the same way every time.
func retryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return true
	}
	return apiErr.Code == http.StatusTooManyRequests ||
		apiErr.Code == http.StatusRequestTimeout ||
		apiErr.Code >= http.StatusInternalServerError
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("coach: request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
