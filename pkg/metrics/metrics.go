package metrics

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultNamespace = "sleepflow"
	subsystem        = "sleepsort"
)

// Registry holds all metric instances for sleepflow components.
type Registry struct {
	// Batch Metrics
	BatchesScheduled *prometheus.CounterVec
	BatchesCompleted *prometheus.CounterVec
	BatchesCanceled  *prometheus.CounterVec
	BatchDuration    *prometheus.HistogramVec

	// Task Metrics
	TasksPending     *prometheus.GaugeVec
	CallbacksInvoked *prometheus.CounterVec
	CallbackLateness *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by sleepflow components.
var DefaultRegistry *Registry

// Collectors can be registered on a Registerer only once, so every
// (registerer, namespace, labels) combination maps to a single Registry.
type registryKey struct {
	reg       prometheus.Registerer
	namespace string
	labels    string
}

var (
	registriesMu sync.Mutex
	registries   = make(map[registryKey]*Registry)
)

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry returns the metrics registry for the given Prometheus registerer,
// registering its collectors on first use.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return registryFor(reg, defaultNamespace, nil)
}

// NewRegistryFromConfig returns the registry honoring the namespace and constant
// labels of cfg. A nil cfg.Registry falls back to prometheus.DefaultRegisterer.
// Configs naming the same registerer, namespace and labels share one Registry.
func NewRegistryFromConfig(cfg Config) *Registry {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}
	return registryFor(reg, namespace, cfg.Labels)
}

func registryFor(reg prometheus.Registerer, namespace string, labels prometheus.Labels) *Registry {
	key := registryKey{reg: reg, namespace: namespace, labels: labelsKey(labels)}

	registriesMu.Lock()
	defer registriesMu.Unlock()
	if r, ok := registries[key]; ok {
		return r
	}
	r := newRegistry(reg, namespace, labels)
	registries[key] = r
	return r
}

func labelsKey(labels prometheus.Labels) string {
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(labels)) {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(labels[name])
		b.WriteByte(',')
	}
	return b.String()
}

func newRegistry(reg prometheus.Registerer, namespace string, labels prometheus.Labels) *Registry {
	factory := promauto.With(reg)
	byScheduler := []string{"scheduler_name"}

	return &Registry{
		BatchesScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   subsystem,
				Name:        "batches_scheduled_total",
				Help:        "Total number of batches scheduled",
				ConstLabels: labels,
			},
			byScheduler,
		),

		BatchesCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   subsystem,
				Name:        "batches_completed_total",
				Help:        "Total number of batches whose every callback fired",
				ConstLabels: labels,
			},
			byScheduler,
		),

		BatchesCanceled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   subsystem,
				Name:        "batches_canceled_total",
				Help:        "Total number of batches canceled before completion",
				ConstLabels: labels,
			},
			byScheduler,
		),

		BatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   subsystem,
				Name:        "batch_duration_seconds",
				Help:        "Time from batch construction until it resolved",
				Buckets:     prometheus.ExponentialBuckets(0.001, 4, 10),
				ConstLabels: labels,
			},
			byScheduler,
		),

		TasksPending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   subsystem,
				Name:        "tasks_pending",
				Help:        "Number of scheduled tasks whose batch has not resolved",
				ConstLabels: labels,
			},
			byScheduler,
		),

		CallbacksInvoked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   subsystem,
				Name:        "callbacks_invoked_total",
				Help:        "Total number of callback invocations",
				ConstLabels: labels,
			},
			byScheduler,
		),

		CallbackLateness: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   subsystem,
				Name:        "callback_lateness_seconds",
				Help:        "Delay between a task's planned fire time and its callback invocation",
				Buckets:     prometheus.ExponentialBuckets(0.00005, 2, 14),
				ConstLabels: labels,
			},
			byScheduler,
		),
	}
}
