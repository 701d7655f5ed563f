package postgres

import (
	"log/slog"
	"time"

	"github.com/baharkarakas/tours-backend/internal/metrics"
)

// timeQuery records elapsed time on read paths, both as a histogram sample
// and as a debug log line. Diagnostic only; failures of the query itself are
// reported through the normal error return.
func timeQuery(entity, op string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		metrics.QueryDuration.WithLabelValues(entity, op).Observe(d.Seconds())
		slog.Debug("query", "entity", entity, "op", op, "elapsed_ms", d.Milliseconds())
	}
}
