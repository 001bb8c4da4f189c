package postgres

import (
	"time"

	"newspulse/internal/observability/metrics"
)

// observe records the duration of one query under the given operation label.
// 使い方: defer observe("insert_article")()
func observe(operation string) func() {
	start := time.Now()
	return func() { metrics.RecordDBQuery(operation, time.Since(start)) }
}
