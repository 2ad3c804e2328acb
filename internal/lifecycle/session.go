package lifecycle

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/llmstxt/internal/llms"
)

// Pass is the outcome of one assembly pass.
type Pass struct {
	Artifacts []llms.Artifact
	// Committed runs once the result is cached and the session lock is released.
	Committed func()
}

// ComputeFunc runs one full assembly pass. Reason says what triggered it.
type ComputeFunc func(ctx context.Context, reason string) (Pass, error)

// Session caches the latest assembly result. At most one pass runs at a time;
// callers arriving during a pass wait for it and share its result.
type Session struct {
	compute ComputeFunc

	mu         sync.Mutex
	artifacts  []llms.Artifact
	valid      bool
	generation uint64
}

func NewSession(compute ComputeFunc) *Session {
	return &Session{compute: compute}
}

// GetOrCompute returns the cached artifacts, running a pass only when nothing valid is cached.
// A failed pass caches nothing.
func (s *Session) GetOrCompute(ctx context.Context, reason string) ([]llms.Artifact, error) {
	return s.run(ctx, reason, false)
}

// Recompute discards the cache and runs a fresh pass.
func (s *Session) Recompute(ctx context.Context, reason string) ([]llms.Artifact, error) {
	return s.run(ctx, reason, true)
}

// Invalidate drops the cache; the next GetOrCompute runs a pass.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = false
	s.artifacts = nil
}

// Cached returns the current result without computing.
func (s *Session) Cached() ([]llms.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifacts, s.valid
}

// Generation counts successful passes.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Session) run(ctx context.Context, reason string, force bool) ([]llms.Artifact, error) {
	pass, err := s.pass(ctx, reason, force)
	if err != nil {
		return nil, err
	}
	if pass.Committed != nil {
		pass.Committed()
	}
	return pass.Artifacts, nil
}

// pass returns the cached result, or computes and caches a new one, under the lock.
// A cached result carries no Committed callback.
func (s *Session) pass(ctx context.Context, reason string, force bool) (Pass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if force {
		s.valid = false
		s.artifacts = nil
	}
	if s.valid {
		return Pass{Artifacts: s.artifacts}, nil
	}
	pass, err := s.compute(ctx, reason)
	if err != nil {
		return Pass{}, err
	}
	s.artifacts = pass.Artifacts
	s.valid = true
	s.generation++
	return pass, nil
}
