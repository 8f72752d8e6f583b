package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/aretw0/draftkit/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	hooks.OnTrigger(ctx, &domain.TriggerEvent{Source: domain.SourceTyping, Transform: "set-block-type", Name: "header-one"})
	hooks.OnTrigger(ctx, &domain.TriggerEvent{Source: domain.SourceTyping, Transform: "set-block-type", Name: "header-one"})
	hooks.OnTransformError(ctx, &domain.TriggerEvent{Source: domain.SourcePaste, Transform: "split-and-set-block-type"})
	hooks.OnSave(ctx, &domain.SaveEvent{Bytes: 120, Explicit: true})
	hooks.OnSave(ctx, &domain.SaveEvent{Err: errors.New("boom")})
	hooks.OnRestore(ctx, &domain.RestoreEvent{Found: false})
	hooks.OnRestore(ctx, &domain.RestoreEvent{Found: true, Err: errors.New("bad json")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Triggers.WithLabelValues("typing", "set-block-type", "header-one")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransformErrors.WithLabelValues("paste", "split-and-set-block-type")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Saves.WithLabelValues("true", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Saves.WithLabelValues("false", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restores.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restores.WithLabelValues("discarded")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SavedBytes))

	t.Run("Double registration fails", func(t *testing.T) {
		_, err := observability.NewMetrics(reg)
		assert.Error(t, err)
	})
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hooks := observability.LoggingHooks(logger)
	hooks.OnTrigger(context.Background(), &domain.TriggerEvent{Source: domain.SourceTyping, Marker: "# ", Name: "header-one"})
	hooks.OnSave(context.Background(), &domain.SaveEvent{Key: "editorContent", Bytes: 10})

	out := buf.String()
	assert.Contains(t, out, "msg=trigger")
	assert.Contains(t, out, "name=header-one")
	assert.Contains(t, out, "key=editorContent")
}
