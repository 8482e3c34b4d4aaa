package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// delay is the wait before retry number attempt (0-based). A vendor
// Retry-After wins over the exponential schedule. Jitter is ±20%.
func (c RetryConfig) delay(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	d := float64(c.InitialWait)
	for range attempt {
		d *= c.Multiplier
	}
	if c.MaxWait > 0 {
		d = min(d, float64(c.MaxWait))
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

// retryProvider re-sends requests that failed for transient reasons.
type retryProvider struct {
	Provider
	cfg RetryConfig
	log *slog.Logger
}

// WithRetry retries unavailable and rate-limited calls up to
// MaxAttempts in total. Invalid output is retried once; truncation and
// cancellation are final.
func WithRetry(cfg RetryConfig, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return func(p Provider) Provider {
		return &retryProvider{Provider: p, cfg: cfg, log: logger}
	}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	for attempt := 0; ; attempt++ {
		resp, err := r.Provider.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		again := false
		switch kind, ok := KindOf(err); {
		case ctx.Err() != nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		case !ok:
			again = true
		case kind == KindInvalidOutput:
			again = !invalidSeen
			invalidSeen = true
		case kind != KindTruncated:
			again = true
		}
		if !again || attempt+1 >= r.cfg.MaxAttempts {
			return nil, err
		}

		wait := r.cfg.delay(attempt, err)
		r.log.Debug("llm retry", "provider", r.Name(), "attempt", attempt+1, "wait", wait, "error", err)
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}
