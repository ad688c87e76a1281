package csvparse

import "strings"

// monthNumbers maps the three-letter English month abbreviations used by the
// trade-log export to their two-digit month numbers.
var monthNumbers = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

// NormalizeDate converts a DD-Mon-YY date string (e.g. "24-Jan-22") into ISO
// YYYY-MM-DD form. Input that does not split into exactly three
// hyphen-separated parts is returned unchanged; callers must treat such a
// value as invalid.
//
// Two lenient defaults mirror the legacy importer: an unrecognized month
// abbreviation maps to January, and a two-digit year is always prefixed with
// "20" (no windowing against the current date).
// TODO: confirm with the product owner that both defaults are intended
// rather than edge-case bugs inherited from the original export tooling.
func NormalizeDate(raw string) string {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return raw
	}

	day := parts[0]
	for len(day) < 2 {
		day = "0" + day
	}

	month, ok := monthNumbers[parts[1]]
	if !ok {
		month = "01"
	}

	year := parts[2]
	if len(year) == 2 {
		year = "20" + year
	}

	return year + "-" + month + "-" + day
}
