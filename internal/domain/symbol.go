package domain

import "fmt"

// Symbol identifies one of the supported futures instruments.
// The set is closed: each symbol maps to exactly one trade-log table.
type Symbol string

const (
	SymbolM2K Symbol = "M2K" // Micro E-mini Russell 2000
	SymbolMES Symbol = "MES" // Micro E-mini S&P 500
	SymbolMNQ Symbol = "MNQ" // Micro E-mini Nasdaq-100
)

// AllSymbols returns every supported symbol in display order.
func AllSymbols() []Symbol {
	return []Symbol{SymbolM2K, SymbolMES, SymbolMNQ}
}

// TableName returns the storage table holding this symbol's trade logs.
func (s Symbol) TableName() string {
	switch s {
	case SymbolM2K:
		return "trade_logs_m2k"
	case SymbolMES:
		return "trade_logs_mes"
	case SymbolMNQ:
		return "trade_logs_mnq"
	default:
		return ""
	}
}

// IsValid reports whether s is one of the supported symbols.
func (s Symbol) IsValid() bool {
	return s.TableName() != ""
}

// ParseSymbol converts a raw string into a Symbol, rejecting anything
// outside the supported set.
func ParseSymbol(raw string) (Symbol, error) {
	s := Symbol(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unsupported symbol %q", raw)
	}
	return s, nil
}
