// Package metrics provides Prometheus instrumentation for sleepflow components.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	sorter := sleepsort.NewWithMetrics[uint32]("report_sorter")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	sorter := sleepsort.NewWithConfigAndMetrics[uint32](
//		sleepsort.Config{Unit: 10 * time.Millisecond},
//		"custom_sorter",
//		metrics.Config{Enabled: true, Registry: registry},
//	)
//
// # Available Metrics
//
//   - sleepflow_sleepsort_batches_scheduled_total: Batches handed to Schedule
//   - sleepflow_sleepsort_batches_completed_total: Batches whose every callback fired
//   - sleepflow_sleepsort_batches_canceled_total: Batches resolved as canceled
//   - sleepflow_sleepsort_batch_duration_seconds: Construction-to-resolution time
//   - sleepflow_sleepsort_tasks_pending: Tasks of unresolved batches
//   - sleepflow_sleepsort_callbacks_invoked_total: Callback invocations
//   - sleepflow_sleepsort_callback_lateness_seconds: Fire time minus planned fire time
//
// Every metric carries a scheduler_name label. Config.Namespace replaces the
// "sleepflow" prefix and Config.Labels become constant labels.
//
// Callback lateness is the useful one when tuning the delay unit: two values
// sort reliably only while their gap stays well above the observed lateness.
package metrics
