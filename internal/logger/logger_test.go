package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/rankedversus/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logger.Level{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warning": logger.WARN,
		" warn ":  logger.WARN,
		"Error":   logger.ERROR,
		"bogus":   logger.INFO,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestLogger_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("dropped")
	log.WithPrefix("walk").WithFields(map[string]any{"user": "abc", "after": 7}).Warn("page %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "[walk]")
	assert.Contains(t, out, "page 2")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "after=7 user=abc"), out)
}

func TestLogger_DerivedDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = parent.WithField("child", true)

	parent.Info("parent line")
	assert.NotContains(t, buf.String(), "child=true")
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, logger.Default(), logger.FromContext(ctx))

	l := logger.Discard()
	assert.Same(t, l, logger.FromContext(logger.NewContext(ctx, l)))
}
