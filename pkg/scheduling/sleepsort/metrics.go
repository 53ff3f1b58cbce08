package sleepsort

import (
	"context"
	"iter"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/sleepflow/pkg/common/validation"
	"github.com/vnykmshr/sleepflow/pkg/metrics"
)

var _ metrics.Instrumentable = (*MetricsScheduler[uint])(nil)

// MetricsScheduler wraps a Scheduler with Prometheus metrics collection.
// The registry and enabled state in effect when Schedule is called apply to
// that batch until it resolves.
type MetricsScheduler[T Value] struct {
	base     *scheduler[T]
	name     string
	registry atomic.Pointer[metrics.Registry]
	enabled  atomic.Bool
}

// NewWithMetrics creates a scheduler with default configuration and metrics enabled.
func NewWithMetrics[T Value](name string) Scheduler[T] {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics[T](Config{}, name, config)
}

// NewWithConfigAndMetrics creates a scheduler with custom config and metrics.
// It panics if the configuration is invalid; use NewWithConfigAndMetricsSafe to get an error instead.
func NewWithConfigAndMetrics[T Value](cfg Config, name string, metricsConfig metrics.Config) Scheduler[T] {
	s, err := NewWithConfigAndMetricsSafe[T](cfg, name, metricsConfig)
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithConfigAndMetricsSafe creates a metrics-enabled scheduler with validation
// that returns an error instead of panicking. Schedulers whose configs name the
// same registry share its collectors, told apart by the scheduler_name label.
func NewWithConfigAndMetricsSafe[T Value](cfg Config, name string, metricsConfig metrics.Config) (Scheduler[T], error) {
	if !metricsConfig.Enabled {
		return NewWithConfigSafe[T](cfg)
	}
	if err := validation.ValidateNotEmpty(moduleName, "metrics name", name); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	base, err := newScheduler[T](cfg)
	if err != nil {
		return nil, err
	}

	ms := &MetricsScheduler[T]{base: base, name: name}
	ms.registry.Store(metrics.NewRegistryFromConfig(metricsConfig))
	ms.enabled.Store(true)
	return ms, nil
}

// instrument chains metrics recording in front of the configured hooks.
func (ms *MetricsScheduler[T]) instrument(r *metrics.Registry, h hooks) hooks {
	onBatchStart, onTaskFire, onBatchComplete := h.onBatchStart, h.onTaskFire, h.onBatchComplete

	return hooks{
		onBatchStart: func(size int) {
			r.BatchesScheduled.WithLabelValues(ms.name).Inc()
			r.TasksPending.WithLabelValues(ms.name).Add(float64(size))
			if onBatchStart != nil {
				onBatchStart(size)
			}
		},
		onTaskFire: func(delay, lateness time.Duration) {
			r.CallbacksInvoked.WithLabelValues(ms.name).Inc()
			r.CallbackLateness.WithLabelValues(ms.name).Observe(max(lateness, 0).Seconds())
			if onTaskFire != nil {
				onTaskFire(delay, lateness)
			}
		},
		onBatchComplete: func(result BatchResult) {
			r.TasksPending.WithLabelValues(ms.name).Sub(float64(result.Size))
			r.BatchDuration.WithLabelValues(ms.name).Observe(result.Elapsed.Seconds())
			if result.Err != nil {
				r.BatchesCanceled.WithLabelValues(ms.name).Inc()
			} else {
				r.BatchesCompleted.WithLabelValues(ms.name).Inc()
			}
			if onBatchComplete != nil {
				onBatchComplete(result)
			}
		},
	}
}

// Schedule starts a batch on the wrapped scheduler.
func (ms *MetricsScheduler[T]) Schedule(ctx context.Context, values iter.Seq[T], cb Callback[T]) *Batch {
	h := ms.base.config.hooks()
	if ms.enabled.Load() {
		h = ms.instrument(ms.registry.Load(), h)
	}
	return ms.base.schedule(ctx, values, cb, h)
}

// Sort schedules the values and waits for the batch to resolve.
func (ms *MetricsScheduler[T]) Sort(ctx context.Context, values iter.Seq[T], cb Callback[T]) error {
	return ms.Schedule(ctx, values, cb).Wait()
}

// Delay returns the wrapped scheduler's delay for v.
func (ms *MetricsScheduler[T]) Delay(v T) time.Duration {
	return ms.base.Delay(v)
}

// EnableMetrics enables metrics collection. Batches already running keep
// the registry they started with.
func (ms *MetricsScheduler[T]) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil {
		ms.registry.Store(metrics.NewRegistryFromConfig(config))
	}
	ms.enabled.Store(config.Enabled)
	return nil
}

// DisableMetrics disables metrics collection for batches scheduled afterwards.
func (ms *MetricsScheduler[T]) DisableMetrics() {
	ms.enabled.Store(false)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ms *MetricsScheduler[T]) MetricsEnabled() bool {
	return ms.enabled.Load()
}
