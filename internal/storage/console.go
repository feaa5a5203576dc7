package storage

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/admarket/clocksim/internal/report"
	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by pretty-printing reports.
type ConsoleStorage struct {
	w      io.Writer
	mu     sync.Mutex
	logger *zap.Logger
}

// NewConsoleStorage creates a console sink writing to stdout.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		w:      os.Stdout,
		logger: logger,
	}
}

// StoreReport renders the comparison tables. The mutex keeps concurrent
// trial workers from interleaving their tables.
func (c *ConsoleStorage) StoreReport(ctx context.Context, r *report.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	r.RenderConsole(c.w)
	ReportsStoredTotal.WithLabelValues("console").Inc()

	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
