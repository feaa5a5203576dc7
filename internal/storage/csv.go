package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/admarket/clocksim/internal/auction"
	"github.com/admarket/clocksim/internal/report"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// csvRow flattens one slot of a report into a CSV record.
type csvRow struct {
	ReportID        string  `csv:"report_id"`
	Trial           uint64  `csv:"trial"`
	Slot            int     `csv:"slot"`
	CTR             float64 `csv:"ctr"`
	Advertiser      int     `csv:"advertiser"`
	Value           float64 `csv:"value"`
	ClockPrice      float64 `csv:"clock_price"`
	VCGPrice        float64 `csv:"vcg_price"`
	Payment         float64 `csv:"payment"`
	Utility         float64 `csv:"utility"`
	ClockRevenue    float64 `csv:"clock_revenue"`
	VCGRevenue      float64 `csv:"vcg_revenue"`
	AllocationMatch bool    `csv:"allocation_match"`
	PriceMatch      bool    `csv:"price_match"`
}

// CSVStorage implements Storage by appending one row per slot as each
// report arrives, so an interrupted batch keeps every stored report and
// memory stays flat across trials.
type CSVStorage struct {
	file        *os.File
	mu          sync.Mutex
	wroteHeader bool
	rows        int
	logger      *zap.Logger
}

// NewCSVStorage creates a CSV sink writing to the given path.
func NewCSVStorage(path string, logger *zap.Logger) (*CSVStorage, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	logger.Info("csv-storage-initialized", zap.String("path", path))

	return &CSVStorage{
		file:   file,
		logger: logger,
	}, nil
}

// StoreReport writes the report's slot rows, emitting the header before
// the first row.
func (s *CSVStorage) StoreReport(ctx context.Context, r *report.Report) error {
	rows := make([]csvRow, 0, len(r.Slots))
	for _, row := range r.Slots {
		flat := csvRow{
			ReportID:        r.ID,
			Trial:           r.Trial,
			Slot:            row.Slot,
			CTR:             row.CTR,
			Advertiser:      row.Advertiser,
			ClockPrice:      row.ClockPrice,
			VCGPrice:        row.VCGPrice,
			ClockRevenue:    r.ClockRevenue,
			VCGRevenue:      r.VCGRevenue,
			AllocationMatch: r.AllocationMatch,
			PriceMatch:      r.PriceMatch,
		}

		if row.Advertiser != auction.Unassigned {
			flat.Value = row.Value
			flat.Payment = row.Payment
			flat.Utility = row.Utility
		}

		rows = append(rows, flat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.wroteHeader {
		err = gocsv.MarshalWithoutHeaders(&rows, s.file)
	} else {
		err = gocsv.Marshal(&rows, s.file)
	}
	if err != nil {
		return fmt.Errorf("append csv rows: %w", err)
	}

	s.wroteHeader = true
	s.rows += len(rows)

	ReportsStoredTotal.WithLabelValues("csv").Inc()

	return nil
}

// Close closes the underlying file.
func (s *CSVStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("csv-storage-closed",
		zap.String("path", s.file.Name()),
		zap.Int("rows", s.rows))

	return s.file.Close()
}
