package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/draftkit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	Triggers        *prometheus.CounterVec
	TransformErrors *prometheus.CounterVec
	Saves           *prometheus.CounterVec
	SavedBytes      prometheus.Histogram
	Restores        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Triggers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "draftkit_triggers_total",
				Help: "Total number of transforms fired by markers, pastes and key commands",
			},
			[]string{"source", "transform", "name"},
		),
		TransformErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "draftkit_transform_errors_total",
				Help: "Total number of transforms rejected by the document engine",
			},
			[]string{"source", "transform"},
		),
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "draftkit_saves_total",
				Help: "Total number of document writes",
			},
			[]string{"explicit", "status"},
		),
		SavedBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "draftkit_saved_bytes",
				Help:    "Size of persisted documents",
				Buckets: prometheus.ExponentialBuckets(64, 4, 8),
			},
		),
		Restores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "draftkit_restores_total",
				Help: "Total number of mounts by outcome",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.Triggers, m.TransformErrors, m.Saves, m.SavedBytes, m.Restores} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrigger: func(ctx context.Context, e *domain.TriggerEvent) {
			m.Triggers.WithLabelValues(string(e.Source), e.Transform, e.Name).Inc()
		},
		OnTransformError: func(ctx context.Context, e *domain.TriggerEvent) {
			m.TransformErrors.WithLabelValues(string(e.Source), e.Transform).Inc()
		},
		OnSave: func(ctx context.Context, e *domain.SaveEvent) {
			status := "ok"
			if e.Err != nil {
				status = "error"
			}
			explicit := "false"
			if e.Explicit {
				explicit = "true"
			}
			m.Saves.WithLabelValues(explicit, status).Inc()
			if e.Err == nil {
				m.SavedBytes.Observe(float64(e.Bytes))
			}
		},
		OnRestore: func(ctx context.Context, e *domain.RestoreEvent) {
			outcome := "restored"
			switch {
			case e.Err != nil:
				outcome = "discarded"
			case !e.Found:
				outcome = "empty"
			}
			m.Restores.WithLabelValues(outcome).Inc()
		},
	}
}

// LoggingHooks returns lifecycle hooks writing one log line per event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrigger: func(ctx context.Context, e *domain.TriggerEvent) {
			logger.InfoContext(ctx, "trigger",
				"source", e.Source,
				"marker", e.Marker,
				"transform", e.Transform,
				"name", e.Name,
			)
		},
		OnTransformError: func(ctx context.Context, e *domain.TriggerEvent) {
			logger.WarnContext(ctx, "transform_error", "source", e.Source, "transform", e.Transform, "error", e.Err)
		},
		OnSave: func(ctx context.Context, e *domain.SaveEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "save", "key", e.Key, "explicit", e.Explicit, "error", e.Err)
				return
			}
			logger.DebugContext(ctx, "save", "key", e.Key, "bytes", e.Bytes, "explicit", e.Explicit)
		},
		OnRestore: func(ctx context.Context, e *domain.RestoreEvent) {
			logger.InfoContext(ctx, "restore", "key", e.Key, "found", e.Found, "blocks", e.Blocks, "error", e.Err)
		},
	}
}
