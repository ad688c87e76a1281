package ports

import (
	"context"
	"time"

	"tradenexus/internal/domain"
)

// TradeLogRepository defines the interface for storing and retrieving a
// symbol's trade-log ledger. The store behaves as an append log per symbol,
// sorted by trade date and then insertion order.
type TradeLogRepository interface {
	// ReplaceAll deletes every existing record for the symbol, then inserts
	// records in insertion-order-preserving batches. The operation is a
	// two-phase, non-transactional replace: a delete failure is logged and
	// does not abort the inserts, while a failed insert batch aborts the
	// remaining batches and propagates. Previously committed batches are not
	// rolled back; re-running the full import is the recovery procedure.
	ReplaceAll(ctx context.Context, symbol domain.Symbol, records []*domain.TradeLog) error
	// QueryRange retrieves all records with trade date >= from, ascending.
	QueryRange(ctx context.Context, symbol domain.Symbol, from time.Time) ([]*domain.TradeLog, error)
	// QueryAll retrieves the full history ascending, paging internally until
	// a short page signals end-of-data.
	QueryAll(ctx context.Context, symbol domain.Symbol) ([]*domain.TradeLog, error)
	// QueryLatestDate returns the most recent trade date for the symbol.
	// Returns the zero time with a nil error when the symbol has no records.
	QueryLatestDate(ctx context.Context, symbol domain.Symbol) (time.Time, error)
}
