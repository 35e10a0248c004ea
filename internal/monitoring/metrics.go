// Package monitoring records per-stage run metrics and traces.
//
// A MetricsCollector keeps an in-memory record of every stage it times and
// mirrors it into a Prometheus registry (stage duration histogram, rows
// counter, dropped-rows gauge) that can be written to a node-exporter
// textfile at the end of a run.
package monitoring

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Namespace prefixes every exported metric.
const Namespace = "medalprep"

// OperationMetrics represents the metrics of one pipeline stage.
type OperationMetrics struct {
	Duration      time.Duration `json:"duration"`
	RowsProcessed int64         `json:"rows_processed"`
	MemoryUsed    int64         `json:"memory_used"`
	Operation     string        `json:"operation"`
	Failed        bool          `json:"failed"`
}

// MetricsCollector collects and stores metrics for pipeline stages.
type MetricsCollector struct {
	mu      sync.RWMutex
	metrics []OperationMetrics
	enabled bool

	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	rows     *prometheus.CounterVec
	failures *prometheus.CounterVec
	dropped  *prometheus.GaugeVec
	tracer   trace.Tracer
}

// NewMetricsCollector creates a new metrics collector with its own registry.
func NewMetricsCollector(enabled bool) *MetricsCollector {
	mc := &MetricsCollector{
		metrics:  make([]OperationMetrics, 0),
		enabled:  enabled,
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rows_total",
			Help:      "Rows produced by each pipeline stage.",
		}, []string{"stage"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "stage_failures_total",
			Help:      "Pipeline stages that returned an error.",
		}, []string{"stage"}),
		dropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "dropped_rows",
			Help:      "Rows removed by a filtering stage in the last run.",
		}, []string{"stage"}),
		tracer: otel.Tracer("github.com/paveg/medalprep"),
	}
	mc.registry.MustRegister(mc.duration, mc.rows, mc.failures, mc.dropped)
	return mc
}

// IsEnabled returns whether metrics collection is enabled.
func (mc *MetricsCollector) IsEnabled() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.enabled
}

// SetEnabled enables or disables metrics collection.
func (mc *MetricsCollector) SetEnabled(enabled bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.enabled = enabled
}

// Registry exposes the Prometheus registry backing the collector.
func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// RecordOperation runs fn inside a span named after operation and records its
// duration and the row count it reports. The span is started even when
// collection is disabled.
func (mc *MetricsCollector) RecordOperation(
	ctx context.Context, operation string, fn func(ctx context.Context) (int, error),
) error {
	ctx, span := mc.tracer.Start(ctx, operation)
	defer span.End()

	if !mc.IsEnabled() {
		_, err := fn(ctx)
		markSpan(span, 0, err)
		return err
	}

	var memBefore runtime.MemStats
	runtime.ReadMemStats(&memBefore)
	start := time.Now()

	rows, err := fn(ctx)

	duration := time.Since(start)
	var memAfter runtime.MemStats
	runtime.ReadMemStats(&memAfter)

	markSpan(span, rows, err)

	mc.duration.WithLabelValues(operation).Observe(duration.Seconds())
	mc.rows.WithLabelValues(operation).Add(float64(rows))
	if err != nil {
		mc.failures.WithLabelValues(operation).Inc()
	}

	metrics := OperationMetrics{
		Duration:      duration,
		RowsProcessed: int64(rows),
		MemoryUsed:    int64(memAfter.TotalAlloc - memBefore.TotalAlloc), //nolint:gosec // monotonic counter delta
		Operation:     operation,
		Failed:        err != nil,
	}

	mc.mu.Lock()
	mc.metrics = append(mc.metrics, metrics)
	mc.mu.Unlock()

	return err
}

func markSpan(span trace.Span, rows int, err error) {
	span.SetAttributes(attribute.Int("rows", rows))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// RecordDropped sets the number of rows a stage removed.
func (mc *MetricsCollector) RecordDropped(operation string, n int) {
	if !mc.IsEnabled() {
		return
	}
	mc.dropped.WithLabelValues(operation).Set(float64(n))
}

// GetMetrics returns a copy of all collected metrics.
func (mc *MetricsCollector) GetMetrics() []OperationMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	result := make([]OperationMetrics, len(mc.metrics))
	copy(result, mc.metrics)
	return result
}

// Clear removes all collected metrics.
func (mc *MetricsCollector) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.metrics = mc.metrics[:0]
}

// GetSummary returns a summary of collected metrics.
func (mc *MetricsCollector) GetSummary() MetricsSummary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if len(mc.metrics) == 0 {
		return MetricsSummary{}
	}

	var totalDuration time.Duration
	var totalMemory int64
	var totalRows int64
	operationCounts := make(map[string]int)

	for _, metric := range mc.metrics {
		totalDuration += metric.Duration
		totalMemory += metric.MemoryUsed
		totalRows += metric.RowsProcessed
		operationCounts[metric.Operation]++
	}

	return MetricsSummary{
		TotalOperations: len(mc.metrics),
		TotalDuration:   totalDuration,
		TotalMemory:     totalMemory,
		TotalRows:       totalRows,
		OperationCounts: operationCounts,
		AverageDuration: totalDuration / time.Duration(len(mc.metrics)),
	}
}

// MetricsSummary provides aggregate statistics for collected metrics.
type MetricsSummary struct {
	TotalOperations int            `json:"total_operations"`
	TotalDuration   time.Duration  `json:"total_duration"`
	TotalMemory     int64          `json:"total_memory"`
	TotalRows       int64          `json:"total_rows"`
	OperationCounts map[string]int `json:"operation_counts"`
	AverageDuration time.Duration  `json:"average_duration"`
}

// WriteTextfile writes the registry in the Prometheus text format to path,
// atomically replacing any previous file.
func (mc *MetricsCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, mc.registry)
}
