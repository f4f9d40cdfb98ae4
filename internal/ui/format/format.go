// Package format turns numbers and dates into the strings shown in tables,
// tooltips and summaries.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency renders v as dollars with thousands separators: -$1,234.56.
func Currency(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + group(intPart) + "." + frac
}

// Percent renders a margin with one decimal place.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

// Number renders v with two decimals, for JSON-free display.
func Number(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func Date(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
