package indicator

import (
	"math"
	"testing"
	"time"

	"stockplatform/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func dailyBar(i int, high, low, close float64, volume int64) model.Bar {
	return model.Bar{
		Time:   model.NewBarTime(day0.AddDate(0, 0, i), false),
		Open:   close,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}
}

func closeBars(values ...float64) []model.Bar {
	bars := make([]model.Bar, len(values))
	for i, v := range values {
		bars[i] = dailyBar(i, v+0.5, v-0.5, v, 1000)
	}
	return bars
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f, diff=%.6f)", label, got, want, tol, math.Abs(got-want))
	}
}

func assertNaN(t *testing.T, label string, got float64) {
	t.Helper()
	if !math.IsNaN(got) {
		t.Errorf("%s: got %.6f, want NaN", label, got)
	}
}

func countDefined(values []float64) int {
	n := 0
	for _, v := range values {
		if defined(v) {
			n++
		}
	}
	return n
}

// wave is a deterministic, non-trivial price path.
func wave(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 10*math.Sin(float64(i)/3) + float64(i%7) - 0.25*float64(i%4)
	}
	return out
}
