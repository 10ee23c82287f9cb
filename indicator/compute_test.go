package indicator

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"sma_20", "rsi", "macd"}},
		{"   ", []string{"sma_20", "rsi", "macd"}},
		{"rsi", []string{"rsi"}},
		{" sma_5 , ema_10,,vwap ", []string{"sma_5", "ema_10", "vwap"}},
	}
	for _, tt := range tests {
		if got := ParseNames(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseNames(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompute_SkipsUnknownNames(t *testing.T) {
	bars := closeBars(wave(60)...)
	got := Compute(bars, []string{"sma_5", "bogus", "sma_x", "ema_0", "sma_", "rsi"})

	if len(got) != 2 {
		t.Fatalf("got keys %v, want sma_5 and rsi", keys(got))
	}
	if _, ok := got["sma_5"]; !ok {
		t.Error("missing sma_5")
	}
	if _, ok := got["rsi"]; !ok {
		t.Error("missing rsi")
	}
}

func TestCompute_DropsWarmUp(t *testing.T) {
	bars := closeBars(10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20)
	got := Compute(bars, []string{"sma_5"})

	pts := got["sma_5"].([]Point)
	if len(pts) != 7 {
		t.Fatalf("got %d points, want 7", len(pts))
	}
	if pts[0].Time != bars[4].Time {
		t.Errorf("first point at %v, want %v", pts[0].Time, bars[4].Time)
	}
	assertClose(t, "first", pts[0].Value, 12, 0)
	assertClose(t, "last", pts[6].Value, 18, 0)
}

func TestCompute_ShortSeriesYieldsEmptyList(t *testing.T) {
	bars := closeBars(1, 2, 3)
	got := Compute(bars, []string{"sma_20", "bbands"})

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"bbands":[],"sma_20":[]}` {
		t.Errorf("unexpected encoding %s", raw)
	}
}

func TestCompute_MACDHistogramConsistent(t *testing.T) {
	bars := closeBars(wave(120)...)
	pts := Compute(bars, []string{"macd"})["macd"].([]MACDPoint)

	if len(pts) != len(bars) {
		t.Fatalf("got %d points, want %d", len(pts), len(bars))
	}
	for _, p := range pts {
		if p.Histogram != round(p.MACD-p.Signal, 4) {
			t.Fatalf("%v: histogram %v, macd %v, signal %v", p.Time, p.Histogram, p.MACD, p.Signal)
		}
	}
}

func TestCompute_Rounding(t *testing.T) {
	// Closes 1, 2, 2: SMA(3) = 5/3
	bars := closeBars(1, 2, 2)
	pts := Compute(bars, []string{"sma_3"})["sma_3"].([]Point)
	if len(pts) != 1 || pts[0].Value != 1.67 {
		t.Fatalf("got %+v, want a single 1.67", pts)
	}
}

func TestCompute_DailyTimeEncoding(t *testing.T) {
	bars := closeBars(1, 2)
	raw, err := json.Marshal(Compute(bars, []string{"vwap"}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"time":"2024-01-02"`) {
		t.Errorf("expected calendar date in %s", raw)
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
