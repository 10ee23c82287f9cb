package indicator

import "stockplatform/model"

// VWAP is the running volume-weighted typical price from the first bar of the
// series. It is undefined while cumulative volume is zero.
func VWAP(bars []model.Bar) []float64 {
	out := nanSeries(len(bars))

	var cumPV, cumVol float64
	for i, b := range bars {
		typical := (b.High + b.Low + b.Close) / 3
		vol := float64(b.Volume)
		cumPV += typical * vol
		cumVol += vol
		if cumVol == 0 {
			continue
		}
		out[i] = cumPV / cumVol
	}
	return out
}
