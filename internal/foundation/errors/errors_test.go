package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapError(cause, CategoryFileSystem, "failed to write artifact").
		WithContext("path", "/llms.txt").
		Fatal().
		Build()

	assert.Equal(t, CategoryFileSystem, err.Category())
	assert.Equal(t, SeverityFatal, err.Severity())
	assert.Equal(t, "failed to write artifact", err.Message())
	assert.Same(t, cause, err.Cause())
	assert.Equal(t, ErrorContext{"path": "/llms.txt"}, err.Context())
	assert.True(t, err.IsFatal())
	assert.Equal(t, "[filesystem] failed to write artifact: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestBuilder_DefaultsAndReuse(t *testing.T) {
	b := NewError(CategoryTransform, "hook failed")
	first := b.Build()
	assert.Equal(t, SeverityError, first.Severity())
	assert.Nil(t, first.Context())
	assert.Equal(t, "[transform] hook failed", first.Error())

	b.WithContext("artifact", "/guide.md")
	assert.Nil(t, first.Context())
	assert.Equal(t, ErrorContext{"artifact": "/guide.md"}, b.Build().Context())
}

func TestContextIsCopied(t *testing.T) {
	err := NewError(CategoryConfig, "bad").WithContext("k", "v").Build()
	ctx := err.Context()
	ctx["k"] = "changed"
	assert.Equal(t, "v", err.Context()["k"])
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClassifiedError
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"config", ConfigError("x").Build(), CategoryConfig, SeverityFatal},
		{"validation", ValidationError("x").Build(), CategoryValidation, SeverityFatal},
		{"not found", NotFoundError("x").Build(), CategoryNotFound, SeverityInfo},
		{"transform", TransformError("x").Build(), CategoryTransform, SeverityError},
		{"runtime", RuntimeError("x").Build(), CategoryRuntime, SeverityFatal},
		{"internal", InternalError("x").Build(), CategoryInternal, SeverityFatal},
		{"warning", NewError(CategoryDiscovery, "x").Warning().Build(), CategoryDiscovery, SeverityWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category())
			assert.Equal(t, tt.severity, tt.err.Severity())
		})
	}
}

func TestChainHelpers(t *testing.T) {
	inner := ConfigError("missing hostname").Build()
	wrapped := fmt.Errorf("loading: %w", inner)

	require.True(t, IsClassified(wrapped))
	c, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, c)
	assert.True(t, HasCategory(wrapped, CategoryConfig))
	assert.False(t, HasCategory(wrapped, CategoryRuntime))

	plain := errors.New("plain")
	assert.False(t, IsClassified(plain))
	assert.False(t, HasCategory(plain, CategoryConfig))
}

func TestIs(t *testing.T) {
	a := NotFoundError("no page").Build()
	b := NotFoundError("no page").WithContext("route", "/x").Build()
	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, NotFoundError("other").Build())
	assert.NotErrorIs(t, a, errors.New("no page"))
}
