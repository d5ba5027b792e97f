package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

func TestLoggerFromContextAddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(zap.NewNop()) })

	ctx := observability.WithRequestID(context.Background(), "req-1")
	observability.LoggerFromContext(ctx).Info("hello")
	observability.LoggerFromContext(context.Background()).Info("no id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(zap.NewNop()) })

	observability.WithFields(zap.String("component", "server")).Info("starting")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "server", entries[0].ContextMap()["component"])
}

func TestInitRejectsBadSettings(t *testing.T) {
	_, err := observability.Init("loud", "json")
	assert.Error(t, err)

	_, err = observability.Init("info", "xml")
	assert.Error(t, err)
}
