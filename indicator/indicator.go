// Package indicator computes technical indicators over a price series.
//
// Every transform takes whole series and returns a slice aligned with its
// input. Indices whose value is undefined (warm-up, flat range, zero volume)
// hold NaN; the point builders in compute.go drop them, so API output never
// contains null-filled entries.
package indicator

import (
	"math"

	"stockplatform/model"
)

// Point is a single-valued indicator sample.
type Point struct {
	Time  model.BarTime `json:"time"`
	Value float64       `json:"value"`
}

type MACDPoint struct {
	Time      model.BarTime `json:"time"`
	MACD      float64       `json:"macd"`
	Signal    float64       `json:"signal"`
	Histogram float64       `json:"histogram"`
}

type BandPoint struct {
	Time   model.BarTime `json:"time"`
	Upper  float64       `json:"upper"`
	Middle float64       `json:"middle"`
	Lower  float64       `json:"lower"`
}

type StochPoint struct {
	Time model.BarTime `json:"time"`
	K    float64       `json:"k"`
	D    float64       `json:"d"`
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// defined reports whether every value is a finite number.
func defined(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func closes(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func highs(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

func lows(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

func volumes(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = float64(b.Volume)
	}
	return out
}
