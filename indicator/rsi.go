package indicator

// RSI computes the relative strength index from trailing simple means of gains
// and losses. The first close has no predecessor and contributes a zero move,
// so the first defined value sits at index period-1.
//
// A window without losses yields 100, including a completely flat window.
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSeries(n)
	if period < 1 || n < period {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		switch {
		case delta > 0:
			gains[i] = delta
		case delta < 0:
			losses[i] = -delta
		}
	}

	for i := period - 1; i < n; i++ {
		avgGain := mean(gains[i-period+1 : i+1])
		avgLoss := mean(losses[i-period+1 : i+1])
		if avgLoss == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
