package ocr

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// RateLimitConfig holds rate limiting configuration for provider calls.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// Burst is the maximum burst size.
	Burst int
}

// DefaultRateLimit is a conservative default, well below the quotas of
// the cloud providers, so bulk ingestion of scanned documents does not
// trip them.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 5.0, Burst: 5}

// rateLimitBackoff is the pause imposed after a provider rate limit error.
const rateLimitBackoff = 30 * time.Second

// limitedService wraps an OCR service with a token bucket plus a backoff
// window after provider rate limit responses.
type limitedService struct {
	inner   driven.OCRService
	bucket  *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// WithRateLimit wraps an OCR service with rate limiting.
// Zero or negative config fields fall back to DefaultRateLimit.
// A nil service passes through unchanged.
func WithRateLimit(inner driven.OCRService, cfg RateLimitConfig) driven.OCRService {
	if inner == nil {
		return nil
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRateLimit.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimit.Burst
	}
	return &limitedService{
		inner:   inner,
		bucket:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		backoff: rateLimitBackoff,
	}
}

// Recognise waits for rate limit clearance, then delegates.
// A domain.ErrRateLimited from the provider sets the backoff window for
// subsequent calls; the error itself propagates to the caller untouched.
func (s *limitedService) Recognise(ctx context.Context, image []byte) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}

	text, err := s.inner.Recognise(ctx, image)
	if err != nil && errors.Is(err, domain.ErrRateLimited) {
		s.mu.Lock()
		s.retryAt = time.Now().Add(s.backoff)
		s.mu.Unlock()
	}
	return text, err
}

// Provider identifies the wrapped provider.
func (s *limitedService) Provider() domain.OCRProvider {
	return s.inner.Provider()
}

// Close releases the wrapped service.
func (s *limitedService) Close() error {
	return s.inner.Close()
}

// wait blocks for any active backoff window, then for the token bucket.
func (s *limitedService) wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if until := time.Until(retryAt); until > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(until):
		}
	}
	return s.bucket.Wait(ctx)
}
