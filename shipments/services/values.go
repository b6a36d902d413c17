package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// CoerceQuantity turns whatever the spreadsheet holds in a quantity cell into
// a non-negative decimal. Thousands separators and unit suffixes are
// stripped; anything unparseable (including the literal "nan"/"None" pandas
// leaves behind in exported data) becomes zero. Never returns an error: one
// bad cell must not abort an extraction pass.
func CoerceQuantity(raw string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(strings.TrimSpace(raw), "")
	switch cleaned {
	case "", "-", ".":
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// deliveryLayouts covers the formats excelize hands back for date cells,
// depending on how the workbook cell was formatted.
var deliveryLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
}

// excel serial day 0 is 1899-12-30 in the 1900 date system
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.Local)

// ParseCellTime parses a spreadsheet datetime cell. Unformatted date cells
// come through as raw serial numbers, formatted ones as strings; both are
// accepted. Unparseable or empty values yield nil rather than an error.
func ParseCellTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range deliveryLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t
		}
	}
	// Excel serial number fallback: whole days by calendar arithmetic, the
	// fraction as time of day.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		days := int(serial)
		frac := serial - float64(days)
		t := excelEpoch.AddDate(0, 0, days).Add(time.Duration(frac * float64(24*time.Hour)))
		return &t
	}
	return nil
}
