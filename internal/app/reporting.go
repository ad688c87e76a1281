package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"tradenexus/internal/analytics"
	"tradenexus/internal/domain"
	"tradenexus/internal/metrics"
	"tradenexus/internal/ports"
)

// SymbolReport is one symbol's dashboard payload: the trailing-window chart
// plus full-history statistics. Err records an isolated load failure; the
// chart and stats are then empty placeholders, never nil.
type SymbolReport struct {
	Symbol domain.Symbol
	Chart  *analytics.WindowChart
	Stats  *domain.SymbolStats
	Err    error
}

// DashboardReport is the full dashboard payload across all symbols.
type DashboardReport struct {
	Symbols  map[domain.Symbol]*SymbolReport
	Platform domain.PlatformStats
}

// ReportingService assembles dashboard reports from the aggregator.
type ReportingService struct {
	logger     ports.Logger
	aggregator *analytics.Aggregator
	session    ports.SessionChecker
}

// NewReportingService creates a new reporting service instance.
func NewReportingService(
	logger ports.Logger,
	aggregator *analytics.Aggregator,
	session ports.SessionChecker,
) (*ReportingService, error) {
	if logger == nil || aggregator == nil || session == nil {
		return nil, fmt.Errorf("missing required dependencies for ReportingService")
	}
	return &ReportingService{logger: logger, aggregator: aggregator, session: session}, nil
}

// LoadDashboard loads every symbol's chart and statistics concurrently and
// combines them into platform-wide aggregates. A failure loading one symbol
// is isolated: that symbol comes back with empty data and its Err set while
// the others load normally.
func (s *ReportingService) LoadDashboard(ctx context.Context) (*DashboardReport, error) {
	if !s.session.HasSession(ctx) {
		return nil, fmt.Errorf("dashboard requires an authenticated session: %w", ports.ErrPermissionDenied)
	}

	timer := prometheus.NewTimer(metrics.DashboardLoadDuration)
	defer timer.ObserveDuration()

	symbols := domain.AllSymbols()
	reports := make(map[domain.Symbol]*SymbolReport, len(symbols))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, symbol := range symbols {
		wg.Add(1)
		go func(sym domain.Symbol) {
			defer wg.Done()
			report := s.loadSymbol(ctx, sym)
			mu.Lock()
			reports[sym] = report
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	stats := make([]*domain.SymbolStats, 0, len(symbols))
	for _, symbol := range symbols {
		stats = append(stats, reports[symbol].Stats)
	}

	return &DashboardReport{
		Symbols:  reports,
		Platform: analytics.Combine(stats),
	}, nil
}

// loadSymbol fetches one symbol's window chart and full-history stats.
// Failures are converted into empty placeholder data so the dashboard can
// render the remaining symbols.
func (s *ReportingService) loadSymbol(ctx context.Context, symbol domain.Symbol) *SymbolReport {
	report := &SymbolReport{Symbol: symbol}

	chart, err := s.aggregator.WindowStats(ctx, symbol)
	if err == nil {
		report.Chart = chart
		report.Stats, err = s.aggregator.FullStats(ctx, symbol)
	}
	if err != nil {
		s.logger.Error(ctx, err, "Failed to load symbol report", map[string]interface{}{"symbol": symbol})
		metrics.SymbolLoadFailures.WithLabelValues(string(symbol)).Inc()
		report.Err = err
	}

	if report.Chart == nil {
		report.Chart = &analytics.WindowChart{Series: []domain.ChartPoint{}, ReturnPercent: "0.00"}
	}
	if report.Stats == nil {
		report.Stats = &domain.SymbolStats{WinRateText: "0.0", TotalPNLPercent: "0.00"}
	}
	return report
}
