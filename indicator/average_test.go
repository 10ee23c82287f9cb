package indicator

import (
	"fmt"
	"testing"
)

func TestSMA_TenToTwenty(t *testing.T) {
	// Closes 10..20, SMA(5):
	// index 4: mean(10..14) = 12
	// index 10: mean(16..20) = 18
	values := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	sma := SMA(values, 5)

	for i := 0; i < 4; i++ {
		assertNaN(t, fmt.Sprintf("SMA(5)[%d]", i), sma[i])
	}
	assertClose(t, "SMA(5) first", sma[4], 12.0, 1e-12)
	assertClose(t, "SMA(5) last", sma[10], 18.0, 1e-12)
}

func TestSMA_OutputLength(t *testing.T) {
	values := wave(40)
	for _, p := range []int{1, 2, 5, 20, 40, 41, 60} {
		got := countDefined(SMA(values, p))
		want := len(values) - p + 1
		if want < 0 {
			want = 0
		}
		if got != want {
			t.Errorf("period %d: %d defined values, want %d", p, got, want)
		}
	}
}

func TestSMA_InvalidPeriod(t *testing.T) {
	if got := countDefined(SMA([]float64{1, 2, 3}, 0)); got != 0 {
		t.Errorf("period 0 produced %d values", got)
	}
}

func TestEMA_SeededWithFirstValue(t *testing.T) {
	// EMA(3): k = 2/(3+1) = 0.5
	// 100 -> 100
	// 102 -> 102*0.5 + 100*0.5 = 101
	// 104 -> 104*0.5 + 101*0.5 = 102.5
	// 103 -> 103*0.5 + 102.5*0.5 = 102.75
	// 105 -> 105*0.5 + 102.75*0.5 = 103.875
	ema := EMA([]float64{100, 102, 104, 103, 105}, 3)
	expected := []float64{100, 101, 102.5, 102.75, 103.875}

	for i, want := range expected {
		assertClose(t, fmt.Sprintf("EMA(3)[%d]", i), ema[i], want, 1e-12)
	}
}

func TestEMA_Deterministic(t *testing.T) {
	values := wave(50)
	a, b := EMA(values, 12), EMA(values, 12)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEMA_Empty(t *testing.T) {
	if got := EMA(nil, 10); len(got) != 0 {
		t.Errorf("expected empty output, got %v", got)
	}
}
