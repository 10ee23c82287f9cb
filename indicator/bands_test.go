package indicator

import "testing"

func TestBollinger_HandCalculated(t *testing.T) {
	// Window [1,2,3]: mean 2, sample std 1 -> 4 / 2 / 0
	// Window [2,3,4]: mean 3, sample std 1 -> 5 / 3 / 1
	upper, middle, lower := Bollinger([]float64{1, 2, 3, 4, 5}, 3, 2)

	assertNaN(t, "upper[1]", upper[1])
	assertClose(t, "upper[2]", upper[2], 4, 1e-12)
	assertClose(t, "middle[2]", middle[2], 2, 1e-12)
	assertClose(t, "lower[2]", lower[2], 0, 1e-12)
	assertClose(t, "upper[3]", upper[3], 5, 1e-12)
	assertClose(t, "lower[3]", lower[3], 1, 1e-12)
}

func TestBollinger_Ordering(t *testing.T) {
	values := wave(150)
	for _, mult := range []float64{0, 0.5, 2, 3} {
		upper, middle, lower := Bollinger(values, 20, mult)
		for i := range values {
			if !defined(upper[i], middle[i], lower[i]) {
				continue
			}
			if upper[i] < middle[i] || middle[i] < lower[i] {
				t.Fatalf("mult %.1f index %d: %v / %v / %v not ordered", mult, i, upper[i], middle[i], lower[i])
			}
		}
	}
}

func TestBollinger_WarmUp(t *testing.T) {
	upper, _, _ := Bollinger(wave(30), 20, 2)
	if got := countDefined(upper); got != 11 {
		t.Errorf("got %d defined points, want 11", got)
	}
}
