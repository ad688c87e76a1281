// Package ledger turns parsed CSV rows into persist-ready trade-log records
// with a running account balance.
package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"tradenexus/internal/csvparse"
	"tradenexus/internal/domain"
	"tradenexus/internal/ports"
)

// DefaultInitialBalance is the account balance assumed before the first
// trade of a symbol's history.
const DefaultInitialBalance = 1000.0

// Config holds configuration for the ledger builder.
type Config struct {
	// InitialBalance is the balance before the first trade. Values <= 0
	// fall back to DefaultInitialBalance.
	InitialBalance float64
	Logger         ports.Logger
}

// Builder computes the running-balance ledger for one symbol's trade rows.
type Builder struct {
	initialBalance float64
	logger         ports.Logger
}

// NewBuilder creates a new ledger builder.
func NewBuilder(cfg Config) (*Builder, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for ledger builder: %w", ports.ErrConfigurationError)
	}
	initial := cfg.InitialBalance
	if initial <= 0 {
		initial = DefaultInitialBalance
	}
	return &Builder{initialBalance: initial, logger: cfg.Logger}, nil
}

// Build converts rows into trade-log records in input order.
//
// Precondition: rows are already in chronological trade order. Row order is
// authoritative; records are never re-sorted by date, since multiple trades
// can share a date and their intra-day sequence would be unrecoverable.
//
// Rows missing a date, pnl, or price are skipped (order size alone is not
// required). Unparsable pnl/price default to 0 and order size to 1. A row
// whose date cannot be normalized to a calendar date is skipped with a
// warning.
func (b *Builder) Build(ctx context.Context, rows []csvparse.RawRow) []*domain.TradeLog {
	records := make([]*domain.TradeLog, 0, len(rows))
	cumulativePNL := 0.0

	for _, row := range rows {
		if row.Date == "" || row.PNL == "" || row.Price == "" {
			continue
		}

		iso := csvparse.NormalizeDate(row.Date)
		tradeDate, err := time.Parse(domain.TradeDateLayout, iso)
		if err != nil {
			b.logger.Warn(ctx, "Skipping trade row with unparsable date", map[string]interface{}{"date": row.Date})
			continue
		}

		// BalanceBefore must be fixed before this row's own pnl joins the
		// accumulator; swapping these two steps corrupts every downstream
		// balance display.
		records = append(records, &domain.TradeLog{
			TradeDate:     tradeDate,
			PNL:           parseFloatOr(row.PNL, 0),
			OrderSize:     parseFloatOr(row.OrderSize, 1),
			Price:         parseFloatOr(row.Price, 0),
			BalanceBefore: b.initialBalance + cumulativePNL,
		})
		cumulativePNL += records[len(records)-1].PNL
	}
	return records
}

// InitialBalance returns the configured pre-history account balance.
func (b *Builder) InitialBalance() float64 {
	return b.initialBalance
}

func parseFloatOr(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
