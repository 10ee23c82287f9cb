package indicator

const (
	DefaultBollingerPeriod = 20
	DefaultBollingerStdDev = 2.0
)

// Bollinger returns upper, middle and lower bands. The middle band is the SMA
// and the envelope is mult sample standard deviations of the same window.
func Bollinger(closes []float64, period int, mult float64) (upper, middle, lower []float64) {
	middle = SMA(closes, period)
	std := rollingStd(closes, period)

	upper = nanSeries(len(closes))
	lower = nanSeries(len(closes))
	for i := range closes {
		if !defined(middle[i], std[i]) {
			continue
		}
		upper[i] = middle[i] + mult*std[i]
		lower[i] = middle[i] - mult*std[i]
	}
	return upper, middle, lower
}
