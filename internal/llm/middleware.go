package llm

import (
	"context"
	"time"
)

// Middleware wraps a Provider with extra behavior.
type Middleware func(Provider) Provider

// Chain wraps base so that the first middleware runs outermost.
func Chain(base Provider, mws ...Middleware) Provider {
	p := base
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			p = mws[i](p)
		}
	}
	return p
}

type timeoutProvider struct {
	Provider
	limit time.Duration
}

// WithTimeout puts a deadline on each call, retries included when it
// wraps WithRetry. A non-positive limit is a no-op.
func WithTimeout(limit time.Duration) Middleware {
	return func(p Provider) Provider {
		if limit <= 0 {
			return p
		}
		return &timeoutProvider{Provider: p, limit: limit}
	}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}
