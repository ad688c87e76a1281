package domain

import "time"

// TradeDateLayout is the canonical ISO form trade dates are stored in.
const TradeDateLayout = "2006-01-02"

// TradeLog is one persisted, normalized trade. Records for a symbol form an
// append log ordered by TradeDate and then insertion order; BalanceBefore is
// the account balance immediately before this trade's PNL is applied, so for
// the full ordered history balanceBefore_0 equals the initial balance and
// balanceBefore_i == balanceBefore_{i-1} + pnl_{i-1}.
type TradeLog struct {
	ID            int64     // Store-assigned identifier (0 until persisted)
	TradeDate     time.Time // Calendar date of the trade
	PNL           float64   // Signed profit/loss realized by this trade
	OrderSize     float64   // Contract/lot count (1 when unparsable at import)
	Price         float64   // Execution price (0 when unparsable at import)
	BalanceBefore float64   // Account balance before this trade settled
}

// BalanceAfter returns the account balance immediately after this trade settled.
func (t *TradeLog) BalanceAfter() float64 {
	return t.BalanceBefore + t.PNL
}
