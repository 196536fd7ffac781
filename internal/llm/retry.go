package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return retry(ctx, r.config, func() (*Response, error) {
		return r.inner.Generate(ctx, req)
	})
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// RetryImageProvider applies the same retry policy to image generation.
type RetryImageProvider struct {
	inner  ImageProvider
	config RetryConfig
}

// WithImageRetry wraps an ImageProvider with retry logic.
func WithImageRetry(p ImageProvider, cfg RetryConfig) ImageProvider {
	return &RetryImageProvider{inner: p, config: cfg}
}

func (r *RetryImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	return retry(ctx, r.config, func() (*ImageResponse, error) {
		return r.inner.GenerateImage(ctx, req)
	})
}

func (r *RetryImageProvider) ModelID() string {
	return r.inner.ModelID()
}

func retry[T any](ctx context.Context, cfg RetryConfig, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	invalidRetried := false
	attempts := max(cfg.MaxAttempts, 1)

	for attempt := range attempts {
		resp, err := call()
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) {
			return zero, err
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff(cfg, attempt, err)):
		}
	}

	return zero, lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrImagesUnsupported) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// Invalid response gets one retry.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limits, outages and network errors are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func backoff(cfg RetryConfig, attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

// TimeoutProvider bounds every Generate call, retries included.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p so each call runs under a deadline. A zero timeout
// returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}

// TimeoutImageProvider bounds every GenerateImage call, retries included.
type TimeoutImageProvider struct {
	inner   ImageProvider
	timeout time.Duration
}

// WithImageTimeout is the ImageProvider counterpart of WithTimeout.
func WithImageTimeout(p ImageProvider, d time.Duration) ImageProvider {
	if d <= 0 {
		return p
	}
	return &TimeoutImageProvider{inner: p, timeout: d}
}

func (t *TimeoutImageProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.GenerateImage(ctx, req)
}

func (t *TimeoutImageProvider) ModelID() string {
	return t.inner.ModelID()
}
