package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/fadilmartias/skillmatch/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// maxEmbeddingChars keeps each document under the provider's input limit.
const maxEmbeddingChars = 10000

type GeminiServiceInterface interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

type GeminiService struct {
	Client            *genai.Client
	Model             string
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	BreakerCooldown   time.Duration
	logger            *zap.Logger
	consecutiveErrors atomic.Int32
	circuitBreakerMax int32
	openedAt          atomic.Int64
	now               func() time.Time
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		Model:             cfg.EmbeddingModel,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		RequestTimeout:    60 * time.Second,
		BreakerCooldown:   time.Minute,
		logger:            logger,
		circuitBreakerMax: 5,
		now:               time.Now,
	}, nil
}

// GenerateEmbeddings embeds all texts in one request. Texts must be
// non-empty; the result has one vector per text, in order.
func (s *GeminiService) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, fmt.Errorf("text %d for embedding cannot be empty", i)
		}
		contents[i] = genai.NewContentFromText(truncateUTF8(trimmed, maxEmbeddingChars), genai.RoleUser)
	}

	if err := s.allowRequest(); err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Debug("retrying embedding request",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
			)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.Client.Models.EmbedContent(timeoutCtx, s.Model, contents, nil)
		if err == nil {
			s.ResetCircuitBreaker()
			return validateEmbeddingResponse(result, len(texts))
		}

		lastErr = err
		if !isRetryableError(err) {
			s.recordFailure()
			return nil, fmt.Errorf("generate embeddings failed: %w", err)
		}
		s.logger.Debug("retryable embedding error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure()
	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateEmbeddings: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	return delay - jitter/2 + time.Duration(float64(jitter)*0.5)
}

// allowRequest fails fast while the breaker is open. Once BreakerCooldown has
// passed since it opened, one request goes through half-open; its failure
// restarts the cooldown and its success closes the breaker.
func (s *GeminiService) allowRequest() error {
	n := s.consecutiveErrors.Load()
	if n < s.circuitBreakerMax {
		return nil
	}
	opened := s.openedAt.Load()
	now := s.clock()
	if now.Sub(time.Unix(0, opened)) >= s.BreakerCooldown && s.openedAt.CompareAndSwap(opened, now.UnixNano()) {
		s.logger.Info("circuit breaker half-open, trying embedding provider", zap.Int32("consecutive_errors", n))
		return nil
	}
	return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", n)
}

func (s *GeminiService) recordFailure() {
	if s.consecutiveErrors.Add(1) >= s.circuitBreakerMax {
		s.openedAt.Store(s.clock().UnixNano())
	}
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.consecutiveErrors.Store(0)
	s.openedAt.Store(0)
}

func (s *GeminiService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// truncateUTF8 cuts s to at most limit bytes without splitting a rune.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) != want {
		return nil, fmt.Errorf("got %d embeddings for %d texts", len(resp.Embeddings), want)
	}

	out := make([][]float32, want)
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}
		for j, val := range emb.Values {
			if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
				return nil, fmt.Errorf("invalid embedding value at %d/%d: %v", i, j, val)
			}
		}
		out[i] = emb.Values
	}
	return out, nil
}
