package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/llmstxt/internal/retry"
)

var (
	_ Publisher = NoopPublisher{}
	_ Publisher = (*NATSPublisher)(nil)
	_ Publisher = (*RetryingPublisher)(nil)
)

func TestNoopPublisher(t *testing.T) {
	p := NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), ArtifactsRebuilt{Reason: "watch"}))
	assert.NoError(t, p.Close())
}

func TestArtifactsRebuilt_JSONShape(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b, err := json.Marshal(ArtifactsRebuilt{
		Reason:    "startup",
		Pages:     3,
		Artifacts: 5,
		Paths:     []string{"/llms.txt"},
		Timestamp: ts,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reason":"startup","pages":3,"artifacts":5,"paths":["/llms.txt"],"timestamp":"2026-01-02T03:04:05Z"}`, string(b))
}

func TestNewNATSPublisher_RequiresURL(t *testing.T) {
	_, err := NewNATSPublisher(NATSConfig{})
	assert.ErrorContains(t, err, "nats url is required")
}

func TestNewNATSPublisher_UnreachableServer(t *testing.T) {
	_, err := NewNATSPublisher(NATSConfig{URL: "nats://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.ErrorContains(t, err, "failed to connect to NATS")
}

type flakyPublisher struct {
	failures int
	calls    int
	closed   bool
}

func (f *flakyPublisher) Publish(context.Context, ArtifactsRebuilt) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("broker unavailable")
	}
	return nil
}

func (f *flakyPublisher) Close() error {
	f.closed = true
	return nil
}

func TestRetryingPublisher(t *testing.T) {
	policy := retry.NewPolicy(retry.BackoffFixed, time.Millisecond, time.Millisecond, 2)

	t.Run("recovers within retries", func(t *testing.T) {
		next := &flakyPublisher{failures: 2}
		p := NewRetryingPublisher(next, policy, nil)
		require.NoError(t, p.Publish(context.Background(), ArtifactsRebuilt{Reason: "watch"}))
		assert.Equal(t, 3, next.calls)
	})

	t.Run("gives up after retries", func(t *testing.T) {
		next := &flakyPublisher{failures: 5}
		p := NewRetryingPublisher(next, policy, nil)
		require.EqualError(t, p.Publish(context.Background(), ArtifactsRebuilt{}), "broker unavailable")
		assert.Equal(t, 3, next.calls)
	})

	t.Run("close is forwarded", func(t *testing.T) {
		next := &flakyPublisher{}
		require.NoError(t, NewRetryingPublisher(next, policy, nil).Close())
		assert.True(t, next.closed)
	})
}
