package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/admarket/clocksim/internal/report"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// JSONLStorage implements Storage by appending one JSON document per
// report to a file.
type JSONLStorage struct {
	file   *os.File
	enc    *json.Encoder
	mu     sync.Mutex
	logger *zap.Logger
}

// NewJSONLStorage creates a JSON-lines sink at the given path.
func NewJSONLStorage(path string, logger *zap.Logger) (*JSONLStorage, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create jsonl file: %w", err)
	}

	logger.Info("jsonl-storage-initialized", zap.String("path", path))

	return &JSONLStorage{
		file:   file,
		enc:    json.NewEncoder(file),
		logger: logger,
	}, nil
}

// StoreReport appends the report as one JSON line.
func (s *JSONLStorage) StoreReport(ctx context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.enc.Encode(r)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", r.ID, err)
	}

	ReportsStoredTotal.WithLabelValues("jsonl").Inc()

	return nil
}

// Close closes the underlying file.
func (s *JSONLStorage) Close() error {
	s.logger.Info("closing-jsonl-storage")
	return s.file.Close()
}
