// Package app orchestrates the trade-log import and dashboard reporting
// flows on top of the ports interfaces.
package app

import (
	"context"
	"fmt"
	"time"

	"tradenexus/internal/csvparse"
	"tradenexus/internal/domain"
	"tradenexus/internal/ledger"
	"tradenexus/internal/metrics"
	"tradenexus/internal/ports"
)

// ImportService runs the CSV → ledger → replace-import pipeline for one
// symbol at a time.
type ImportService struct {
	logger  ports.Logger
	repo    ports.TradeLogRepository
	builder *ledger.Builder
	session ports.SessionChecker
}

// NewImportService creates a new import service instance.
func NewImportService(
	logger ports.Logger,
	repo ports.TradeLogRepository,
	builder *ledger.Builder,
	session ports.SessionChecker,
) (*ImportService, error) {
	if logger == nil || repo == nil || builder == nil || session == nil {
		return nil, fmt.Errorf("missing required dependencies for ImportService")
	}
	return &ImportService{logger: logger, repo: repo, builder: builder, session: session}, nil
}

// ImportResult reports the outcome of one symbol's import.
type ImportResult struct {
	Symbol domain.Symbol
	Count  int   // Records written on success
	Err    error // Failure reason; nil on success
}

// ImportCSV replaces the symbol's stored ledger with the records derived
// from csvText and returns the number written.
//
// The replace is not atomic: a failure mid-import can leave the symbol
// partially loaded, and re-running the import is the recovery procedure.
func (s *ImportService) ImportCSV(ctx context.Context, symbol domain.Symbol, csvText string) (int, error) {
	if !s.session.HasSession(ctx) {
		return 0, fmt.Errorf("import requires an authenticated session: %w", ports.ErrPermissionDenied)
	}
	if !symbol.IsValid() {
		return 0, fmt.Errorf("cannot import unsupported symbol %q: %w", symbol, ports.ErrInvalidRequest)
	}

	start := time.Now()
	rows := csvparse.Parse(csvText)
	records := s.builder.Build(ctx, rows)

	if err := s.repo.ReplaceAll(ctx, symbol, records); err != nil {
		metrics.ImportsTotal.WithLabelValues(string(symbol), "failure").Inc()
		return 0, fmt.Errorf("failed to import trade logs for %s: %w", symbol, err)
	}

	metrics.ImportsTotal.WithLabelValues(string(symbol), "success").Inc()
	metrics.ImportedRows.WithLabelValues(string(symbol)).Add(float64(len(records)))
	metrics.ImportDuration.WithLabelValues(string(symbol)).Observe(time.Since(start).Seconds())

	s.logger.Info(ctx, "Trade logs imported", map[string]interface{}{
		"symbol":  symbol,
		"csvRows": len(rows),
		"records": len(records),
	})
	return len(records), nil
}

// ImportAll imports each provided symbol independently; one symbol's
// failure never stops the others. Results come back in the platform's
// symbol display order.
func (s *ImportService) ImportAll(ctx context.Context, csvBySymbol map[domain.Symbol]string) []ImportResult {
	results := make([]ImportResult, 0, len(csvBySymbol))
	for _, symbol := range domain.AllSymbols() {
		csvText, ok := csvBySymbol[symbol]
		if !ok {
			continue
		}
		count, err := s.ImportCSV(ctx, symbol, csvText)
		if err != nil {
			s.logger.Error(ctx, err, "Symbol import failed", map[string]interface{}{"symbol": symbol})
		}
		results = append(results, ImportResult{Symbol: symbol, Count: count, Err: err})
	}
	return results
}
