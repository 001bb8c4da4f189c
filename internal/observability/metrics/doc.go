// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (headline fetches, ingestion, enrichment)
//   - Ingestion queue metrics
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newspulse/internal/observability/metrics"
//
//	func ingestBatch(category string) {
//	    start := time.Now()
//	    // ... ingest articles ...
//	    metrics.RecordIngestBatch(category, time.Since(start))
//	}
package metrics
