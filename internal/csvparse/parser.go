// Package csvparse turns raw trade-log CSV text into normalized rows.
//
// The input format is deliberately loose: the first line is a header whose
// content is never validated, fields may be quoted to contain literal commas,
// and malformed lines are dropped rather than reported. Ingestion is
// best-effort by design.
package csvparse

import "strings"

// RawRow is one accepted CSV line, with the first four fields mapped
// positionally. It exists only during parsing; the ledger builder turns
// accepted rows into persistable records.
type RawRow struct {
	Date      string // Free-text date, expected DD-Mon-YY (e.g. "24-Jan-22")
	PNL       string // Decimal string, signed
	OrderSize string // Decimal string, contract/lot count
	Price     string // Decimal string, execution price
}

// Parse splits CSV text into trade rows. Line 0 is discarded as a header.
// A line is accepted only if it yields at least four fields and a non-empty
// date field; anything else (blank lines, short rows) is silently skipped.
// The whole input is buffered; the returned slice preserves line order.
func Parse(csvText string) []RawRow {
	lines := strings.Split(csvText, "\n")
	rows := make([]RawRow, 0, len(lines))

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		fields := splitLine(line)
		if len(fields) < 4 || fields[0] == "" {
			continue
		}
		rows = append(rows, RawRow{
			Date:      fields[0],
			PNL:       fields[1],
			OrderSize: fields[2],
			Price:     fields[3],
		})
	}
	return rows
}

// splitLine performs a quote-aware comma split. A double quote toggles an
// "inside literal" mode during which commas are not separators; the quote
// characters themselves are stripped and every field is trimmed.
func splitLine(line string) []string {
	fields := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
