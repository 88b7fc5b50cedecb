package notify

import (
	"context"

	"git.home.luguber.info/inful/blogindex/internal/retry"
)

// RetryingPublisher retries a failed Publish according to a retry.Policy.
type RetryingPublisher struct {
	next   Publisher
	policy retry.Policy
}

// WithRetry wraps next. A policy without retries returns next unchanged.
func WithRetry(next Publisher, policy retry.Policy) Publisher {
	if policy.MaxRetries == 0 {
		return next
	}
	return &RetryingPublisher{next: next, policy: policy}
}

func (p *RetryingPublisher) Publish(ctx context.Context, event Event) error {
	return p.policy.Do(ctx, func(ctx context.Context) error {
		return p.next.Publish(ctx, event)
	})
}

func (p *RetryingPublisher) Close() error { return p.next.Close() }
