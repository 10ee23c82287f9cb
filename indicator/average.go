package indicator

import "math"

// SMA returns the arithmetic mean of the trailing period values. The first
// period-1 entries are NaN. Each window is summed from scratch so long series
// do not accumulate drift.
func SMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period < 1 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		out[i] = mean(values[i-period+1 : i+1])
	}
	return out
}

// EMA returns the exponentially weighted mean with smoothing 2/(period+1),
// seeded with the first value rather than an SMA of the first window:
//
//	ema[0] = v[0]
//	ema[t] = v[t]*k + ema[t-1]*(1-k)
func EMA(values []float64, period int) []float64 {
	if period < 1 {
		return nanSeries(len(values))
	}
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	k := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// rollingStd is the sample (n-1) standard deviation of each trailing window.
func rollingStd(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period < 2 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		m := mean(window)
		var ss float64
		for _, v := range window {
			ss += (v - m) * (v - m)
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
