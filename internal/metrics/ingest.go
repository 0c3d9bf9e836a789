package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Ingestion Prometheus metrics.
var (
	IngestRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_records_total",
			Help:      "Ingested records by kind and result",
		},
		[]string{"kind", "result"}, // result: inserted / skipped / failed
	)

	IngestChunkDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_chunk_duration_seconds",
			Help:      "Wall-clock time per ingestion chunk",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)
)

var ingestMetricsRegistered bool

// RegisterIngestMetrics registers Prometheus ingestion metrics. Must be called once from main.
func RegisterIngestMetrics() {
	if ingestMetricsRegistered {
		return
	}
	prometheus.MustRegister(IngestRecordsTotal)
	prometheus.MustRegister(IngestChunkDuration)
	ingestMetricsRegistered = true
}

// IngestRecorder adapts the ingestion collectors to the pipeline.
type IngestRecorder struct{}

// ObserveChunk records one processed chunk.
func (IngestRecorder) ObserveChunk(kind string, inserted, skipped, failed int, d time.Duration) {
	IngestRecordsTotal.WithLabelValues(kind, "inserted").Add(float64(inserted))
	IngestRecordsTotal.WithLabelValues(kind, "skipped").Add(float64(skipped))
	IngestRecordsTotal.WithLabelValues(kind, "failed").Add(float64(failed))
	IngestChunkDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// PushIngestMetrics sends the ingestion collectors to a Pushgateway. Batch runs
// exit before any scrape, so the CLI pushes instead of serving /metrics.
func PushIngestMetrics(ctx context.Context, gatewayURL, job string) error {
	err := push.New(gatewayURL, job).
		Collector(IngestRecordsTotal).
		Collector(IngestChunkDuration).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push ingest metrics: %w", err)
	}
	return nil
}
