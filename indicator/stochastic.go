package indicator

const (
	DefaultStochK = 14
	DefaultStochD = 3
)

// Stochastic returns %K and %D.
//
//	%K = 100 * (close - lowest low) / (highest high - lowest low)
//	%D = mean of the trailing dPeriod %K values
//
// A window whose high and low coincide has no range and %K is NaN there. %D
// is only defined when all of its %K inputs are.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) (k, d []float64) {
	n := len(closes)
	k = nanSeries(n)
	d = nanSeries(n)
	if kPeriod < 1 || dPeriod < 1 {
		return k, d
	}

	for i := kPeriod - 1; i < n; i++ {
		lowest, highest := lows[i], highs[i]
		for j := i - kPeriod + 1; j < i; j++ {
			if lows[j] < lowest {
				lowest = lows[j]
			}
			if highs[j] > highest {
				highest = highs[j]
			}
		}
		span := highest - lowest
		if span == 0 {
			continue
		}
		k[i] = 100 * (closes[i] - lowest) / span
	}

	for i := dPeriod - 1; i < n; i++ {
		window := k[i-dPeriod+1 : i+1]
		if !defined(window...) {
			continue
		}
		d[i] = mean(window)
	}
	return k, d
}
