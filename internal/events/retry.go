package events

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
	"git.home.luguber.info/inful/llmstxt/internal/retry"
)

// RetryingPublisher retries failed publishes following a backoff policy.
type RetryingPublisher struct {
	next   Publisher
	policy retry.Policy
	logger *slog.Logger
}

func NewRetryingPublisher(next Publisher, policy retry.Policy, logger *slog.Logger) *RetryingPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingPublisher{next: next, policy: policy, logger: logger}
}

func (p *RetryingPublisher) Publish(ctx context.Context, event ArtifactsRebuilt) error {
	return p.policy.Do(ctx, func(attempt int) error {
		err := p.next.Publish(ctx, event)
		if err != nil && attempt < p.policy.MaxRetries {
			p.logger.Debug("Publish failed, retrying",
				logfields.Reason(event.Reason),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", p.policy.Delay(attempt+1)),
				logfields.Error(err))
		}
		return err
	})
}

func (p *RetryingPublisher) Close() error { return p.next.Close() }
