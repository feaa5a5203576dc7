package storage

import (
	"context"

	"github.com/admarket/clocksim/internal/report"
)

// Storage is the interface for recording comparison reports.
type Storage interface {
	// StoreReport records one clock-vs-VCG comparison report.
	StoreReport(ctx context.Context, r *report.Report) error

	// Close flushes and releases the sink.
	Close() error
}
