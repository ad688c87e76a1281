// Package analytics derives chart series and summary statistics from a
// symbol's stored trade-log ledger.
package analytics

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"tradenexus/internal/domain"
	"tradenexus/internal/ports"
)

const (
	// DefaultSampleSize is the target number of chart points per window.
	DefaultSampleSize = 50
	// DefaultMonthsBack is the trailing window length for chart displays.
	DefaultMonthsBack = 3
	// DefaultInitialBalance anchors the total-pnl-percent calculation.
	DefaultInitialBalance = 1000.0
)

// Config holds configuration for the aggregator.
type Config struct {
	InitialBalance float64 // <= 0 falls back to DefaultInitialBalance
	SampleSize     int     // <= 0 falls back to DefaultSampleSize
	MonthsBack     int     // <= 0 falls back to DefaultMonthsBack
	Logger         ports.Logger
}

// Aggregator computes time-windowed chart series and full-history summary
// statistics from the trade-log store. All methods are read-only.
type Aggregator struct {
	repo           ports.TradeLogRepository
	initialBalance float64
	sampleSize     int
	monthsBack     int
	logger         ports.Logger
}

// NewAggregator creates a new performance aggregator.
func NewAggregator(repo ports.TradeLogRepository, cfg Config) (*Aggregator, error) {
	if repo == nil {
		return nil, fmt.Errorf("trade log repository is required for aggregator: %w", ports.ErrConfigurationError)
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for aggregator: %w", ports.ErrConfigurationError)
	}

	a := &Aggregator{
		repo:           repo,
		initialBalance: cfg.InitialBalance,
		sampleSize:     cfg.SampleSize,
		monthsBack:     cfg.MonthsBack,
		logger:         cfg.Logger,
	}
	if a.initialBalance <= 0 {
		a.initialBalance = DefaultInitialBalance
	}
	if a.sampleSize <= 0 {
		a.sampleSize = DefaultSampleSize
	}
	if a.monthsBack <= 0 {
		a.monthsBack = DefaultMonthsBack
	}
	return a, nil
}

// WindowChart is the down-sampled chart series for a trailing window of a
// symbol's ledger, plus the window-wide aggregates the dashboard renders
// next to it.
type WindowChart struct {
	Series        []domain.ChartPoint
	CumulativePNL float64 // pnl accumulated across the entire window
	ReturnPercent string  // window return vs its starting balance, two decimals
}

// WindowStats computes the chart series for the trailing window ending at
// the symbol's most recent trade date. A symbol with no data yields an
// empty series, not an error; the presentation layer omits the chart.
func (a *Aggregator) WindowStats(ctx context.Context, symbol domain.Symbol) (*WindowChart, error) {
	latest, err := a.repo.QueryLatestDate(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve latest trade date for %s: %w", symbol, err)
	}
	if latest.IsZero() {
		a.logger.Debug(ctx, "No trade data for symbol, returning empty chart", map[string]interface{}{"symbol": symbol})
		return emptyWindowChart(), nil
	}

	start := latest.AddDate(0, -a.monthsBack, 0)
	records, err := a.repo.QueryRange(ctx, symbol, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s window from %s: %w", symbol, start.Format(domain.TradeDateLayout), err)
	}
	return a.buildChart(records), nil
}

// buildChart down-samples the ordered window records into ~sampleSize chart
// points. The stride starts at index 0 and the true last record is always
// present even when the record count is not a multiple of the step.
func (a *Aggregator) buildChart(records []*domain.TradeLog) *WindowChart {
	if len(records) == 0 {
		return emptyWindowChart()
	}

	// The window's starting balance is the first record's balance before any
	// windowed trade is applied. Every Change value in the series is
	// measured against it, giving a zero-based chart independent of the
	// absolute account size at window start.
	startingBalance := records[0].BalanceBefore

	step := len(records) / a.sampleSize
	if step < 1 {
		step = 1
	}

	series := make([]domain.ChartPoint, 0, a.sampleSize+1)
	cumulativePNL := 0.0
	lastSampled := -1

	for i, rec := range records {
		cumulativePNL += rec.PNL
		if i%step != 0 {
			continue
		}
		series = append(series, chartPoint(rec, startingBalance, cumulativePNL))
		lastSampled = i
	}
	if last := len(records) - 1; lastSampled != last {
		series = append(series, chartPoint(records[last], startingBalance, cumulativePNL))
	}

	return &WindowChart{
		Series:        series,
		CumulativePNL: cumulativePNL,
		ReturnPercent: formatReturnPercent(series[len(series)-1].Balance, startingBalance),
	}
}

// FullStats computes summary statistics over a symbol's complete history.
func (a *Aggregator) FullStats(ctx context.Context, symbol domain.Symbol) (*domain.SymbolStats, error) {
	records, err := a.repo.QueryAll(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to load full history for %s: %w", symbol, err)
	}
	return a.computeStats(records), nil
}

func (a *Aggregator) computeStats(records []*domain.TradeLog) *domain.SymbolStats {
	stats := &domain.SymbolStats{
		WinRateText:     "0.0",
		TotalPNLPercent: "0.00",
	}
	if len(records) == 0 {
		return stats
	}

	for _, rec := range records {
		stats.TotalTrades++
		// Strictly positive pnl counts as a win; a zero-pnl trade stays in
		// the denominator but is neither win nor loss.
		if rec.PNL > 0 {
			stats.WinningTrades++
		}
		stats.TotalPNL += rec.PNL
	}

	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades) * 100
	stats.WinRateText = strconv.FormatFloat(stats.WinRate, 'f', 1, 64)
	stats.TotalPNLPercent = strconv.FormatFloat(stats.TotalPNL/a.initialBalance*100, 'f', 2, 64)
	stats.StartedDate = records[0].TradeDate.Format(domain.TradeDateLayout)
	return stats
}

// Combine folds per-symbol summaries into platform-wide aggregates. The
// combined win rate is the trade-count-weighted average of the per-symbol
// rates, "0.0" when there are no trades across all symbols.
func Combine(stats []*domain.SymbolStats) domain.PlatformStats {
	combined := domain.PlatformStats{WinRateText: "0.0"}
	weightedRate := 0.0

	for _, s := range stats {
		if s == nil {
			continue
		}
		combined.TotalPNL += s.TotalPNL
		combined.TotalTrades += s.TotalTrades
		weightedRate += s.WinRate * float64(s.TotalTrades)
	}
	if combined.TotalTrades > 0 {
		combined.WinRate = weightedRate / float64(combined.TotalTrades)
		combined.WinRateText = strconv.FormatFloat(combined.WinRate, 'f', 1, 64)
	}
	return combined
}

func chartPoint(rec *domain.TradeLog, startingBalance, cumulativePNL float64) domain.ChartPoint {
	balance := rec.BalanceAfter()
	return domain.ChartPoint{
		Time:          rec.TradeDate.Format("01/02/06"),
		Balance:       balance,
		Change:        balance - startingBalance,
		PNL:           rec.PNL,
		CumulativePNL: math.Round(cumulativePNL*100) / 100,
	}
}

func emptyWindowChart() *WindowChart {
	return &WindowChart{Series: []domain.ChartPoint{}, ReturnPercent: "0.00"}
}

func formatReturnPercent(lastBalance, startingBalance float64) string {
	if startingBalance == 0 {
		return "0.00"
	}
	return strconv.FormatFloat((lastBalance-startingBalance)/startingBalance*100, 'f', 2, 64)
}
