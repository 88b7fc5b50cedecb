package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "blogindex.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.Equal(t, "[config:fatal] invalid configuration", err.Error())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "blogindex.yaml", file)
	})

	t.Run("Wrapped cause stays visible", func(t *testing.T) {
		err := WrapError(fs.ErrNotExist, CategoryFileSystem, "read source document").Build()

		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "read source document")
		assert.Contains(t, err.Error(), fs.ErrNotExist.Error())
	})

	t.Run("Detection through fmt wrapping", func(t *testing.T) {
		inner := DocsError("parse failed").Build()
		wrapped := fmt.Errorf("run: %w", inner)

		assert.True(t, IsClassified(wrapped))
		assert.True(t, HasCategory(wrapped, CategoryDocs))
		assert.Equal(t, CategoryDocs, GetCategory(wrapped))
		assert.Equal(t, SeverityError, GetSeverity(wrapped))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		plain := errors.New("boom")

		assert.False(t, IsClassified(plain))
		assert.Equal(t, CategoryInternal, GetCategory(plain))
		assert.Equal(t, SeverityError, GetSeverity(plain))
	})

	t.Run("WithContext does not mutate the receiver", func(t *testing.T) {
		base := BuildError("write index").Build()
		derived := base.WithContext("path", "public/blog_data.json")

		_, ok := base.Context().Get("path")
		assert.False(t, ok)
		got, _ := derived.Context().GetString("path")
		assert.Equal(t, "public/blog_data.json", got)
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := ValidationError("bad extension").Build()
		b := ValidationError("bad extension").WithContext("value", "txt").Build()
		c := ConfigError("bad extension").Build()

		assert.True(t, errors.Is(a, b))
		assert.False(t, errors.Is(a, c))
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
		{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
		{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
		{"DocsError", DocsError("test"), CategoryDocs, SeverityError},
		{"BuildError", BuildError("test"), CategoryBuild, SeverityFatal},
		{"NotifyError", NotifyError("test"), CategoryNotify, SeverityWarning},
		{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			assert.Equal(t, tt.category, err.Category())
			assert.Equal(t, tt.severity, err.Severity())
			assert.Equal(t, tt.severity == SeverityFatal, err.IsFatal())
		})
	}
}

func TestErrorContextMerge(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	assert.Equal(t, ErrorContext{"key1": "value1", "key2": "value2", "shared": "overridden"}, merged)
	assert.Equal(t, ctx2, ErrorContext(nil).Merge(ctx2))
	assert.Equal(t, ctx1, ctx1.Merge(nil))
}
