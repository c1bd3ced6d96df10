package utils

import (
	"testing"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1050, "10.50"},
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{99, "0.99"},
		{123456, "1234.56"},
		{-1050, "-10.50"},
	}

	for _, c := range cases {
		if got := FormatPrice(c.in); got != c.want {
			t.Errorf("FormatPrice(%d) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestPriceToMinorUnits(t *testing.T) {
	if got := PriceToMinorUnits(10.50); got != 1050 {
		t.Errorf("PriceToMinorUnits(10.50) = %d, want 1050", got)
	}
	if got := PriceToMinorUnits(0.1 + 0.2); got != 30 {
		t.Errorf("PriceToMinorUnits(0.3) = %d, want 30", got)
	}
}
