package db

import (
	"time"

	"github.com/postboard-app/postboard/backend/internal/observability/metrics"
)

// ObserveQuery records duration for every query and counts failures.
// Not-found outcomes are not failures; callers pass nil for them.
func ObserveQuery(operation, table string, start time.Time, err error) {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}
