package domain

// ChartPoint is one down-sampled point of a performance chart series.
// Derived on demand from stored trade logs, never persisted.
type ChartPoint struct {
	Time          string  // Display date, MM/DD/YY
	Balance       float64 // Account balance after this trade settled
	Change        float64 // Balance minus the window's starting balance
	PNL           float64 // This trade's own profit/loss
	CumulativePNL float64 // Sum of pnl across the window up to this trade
}

// SymbolStats summarizes a symbol's complete trade history.
// WinRate and TotalPnlPercent carry both the numeric value and the
// presentation string the dashboard renders directly.
type SymbolStats struct {
	TotalTrades     int
	WinningTrades   int
	WinRate         float64 // Percent, 0 when no trades
	WinRateText     string  // One decimal place, e.g. "50.0"
	TotalPNL        float64
	TotalPNLPercent string // Two decimal places, e.g. "6.00"
	StartedDate     string // ISO date of the earliest trade, "" when empty
}

// PlatformStats combines every symbol's summary into platform-wide totals.
// WinRate is the trade-count-weighted average of the per-symbol rates.
type PlatformStats struct {
	TotalPNL    float64
	TotalTrades int
	WinRate     float64
	WinRateText string // One decimal place, "0.0" when no trades anywhere
}

// ContactMessage is a contact-form submission forwarded to the
// notification service.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}
