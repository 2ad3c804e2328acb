// Package events publishes notifications after each artifact (re)assembly.
package events

import (
	"context"
	"time"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "llmstxt.artifacts.rebuilt"

// ArtifactsRebuilt is published after every successful assembly pass.
type ArtifactsRebuilt struct {
	Reason     string    `json:"reason"`
	Pages      int       `json:"pages"`
	Artifacts  int       `json:"artifacts"`
	Paths      []string  `json:"paths"`
	SourceHash string    `json:"source_hash,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers rebuild notifications.
type Publisher interface {
	Publish(ctx context.Context, event ArtifactsRebuilt) error
	Close() error
}

// NoopPublisher drops every event (default when no broker is configured).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ArtifactsRebuilt) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }
