package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.005, -1.01},
		{189.999, 190},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(decimal.NewFromInt(1), decimal.NewFromInt(3)); got != 33.33 {
		t.Errorf("Percent(1,3) = %v", got)
	}
	if got := Percent(decimal.NewFromInt(5), decimal.Zero); got != 0 {
		t.Errorf("Percent(5,0) = %v", got)
	}
}

func TestEpochFormatting(t *testing.T) {
	if got := EpochDate(1710513000); got != "2024-03-15" {
		t.Errorf("EpochDate = %q", got)
	}
	if got := EpochRFC3339(1710513000); got != "2024-03-15T14:30:00Z" {
		t.Errorf("EpochRFC3339 = %q", got)
	}
	if got := EpochRFC3339(0); got != "" {
		t.Errorf("EpochRFC3339(0) = %q", got)
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  brk-b "); got != "BRK-B" {
		t.Errorf("NormalizeTicker = %q", got)
	}
}
