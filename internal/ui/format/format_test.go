package format

import (
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5.5, "$5.50"},
		{999.999, "$1,000.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-42.1, "-$42.10"},
		{-123456, "-$123,456.00"},
		{-0.001, "$0.00"},
	}

	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercentAndNumber(t *testing.T) {
	if got := Percent(-12.345); got != "-12.3" {
		t.Errorf("Percent(-12.345) = %q", got)
	}
	if got := Number(3.14159); got != "3.14" {
		t.Errorf("Number(3.14159) = %q", got)
	}
}

func TestDate(t *testing.T) {
	ts := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	if got := Date(ts); got != "2024-03-09 12:00" {
		t.Errorf("Date() = %q", got)
	}
}
