package indicator

import (
	"strconv"
	"strings"

	"stockplatform/model"
)

// DefaultSet is used when a request names no indicators.
const DefaultSet = "sma_20,rsi,macd"

const DefaultRSIPeriod = 14

// ParseNames splits a comma separated indicator list, trimming blanks.
func ParseNames(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		csv = DefaultSet
	}
	parts := strings.Split(csv, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// Compute evaluates each named indicator over bars. Recognised names are
// sma_<n>, ema_<n>, rsi, macd, bbands, vwap and stoch; anything else,
// including a malformed period, is skipped.
func Compute(bars []model.Bar, names []string) map[string]any {
	result := make(map[string]any, len(names))
	closing := closes(bars)

	for _, name := range names {
		switch {
		case strings.HasPrefix(name, "sma_"):
			if p, ok := periodOf(name); ok {
				result[name] = points(bars, SMA(closing, p), 2)
			}
		case strings.HasPrefix(name, "ema_"):
			if p, ok := periodOf(name); ok {
				result[name] = points(bars, EMA(closing, p), 2)
			}
		case name == "rsi":
			result[name] = points(bars, RSI(closing, DefaultRSIPeriod), 2)
		case name == "macd":
			line, sig, _ := MACD(closing, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
			result[name] = macdPoints(bars, line, sig)
		case name == "bbands":
			upper, middle, lower := Bollinger(closing, DefaultBollingerPeriod, DefaultBollingerStdDev)
			result[name] = bandPoints(bars, upper, middle, lower)
		case name == "vwap":
			result[name] = points(bars, VWAP(bars), 2)
		case name == "stoch":
			k, d := Stochastic(highs(bars), lows(bars), closing, DefaultStochK, DefaultStochD)
			result[name] = stochPoints(bars, k, d)
		}
	}
	return result
}

func periodOf(name string) (int, bool) {
	_, raw, found := strings.Cut(name, "_")
	if !found {
		return 0, false
	}
	p, err := strconv.Atoi(raw)
	if err != nil || p < 1 {
		return 0, false
	}
	return p, true
}

func points(bars []model.Bar, values []float64, places int) []Point {
	out := make([]Point, 0, len(values))
	for i, v := range values {
		if !defined(v) {
			continue
		}
		out = append(out, Point{Time: bars[i].Time, Value: round(v, places)})
	}
	return out
}

// macdPoints derives the histogram from the rounded line and signal so the
// emitted triple is self-consistent.
func macdPoints(bars []model.Bar, line, sig []float64) []MACDPoint {
	out := make([]MACDPoint, 0, len(line))
	for i := range line {
		if !defined(line[i], sig[i]) {
			continue
		}
		m, s := round(line[i], 4), round(sig[i], 4)
		out = append(out, MACDPoint{
			Time:      bars[i].Time,
			MACD:      m,
			Signal:    s,
			Histogram: round(m-s, 4),
		})
	}
	return out
}

func bandPoints(bars []model.Bar, upper, middle, lower []float64) []BandPoint {
	out := make([]BandPoint, 0, len(middle))
	for i := range middle {
		if !defined(upper[i], middle[i], lower[i]) {
			continue
		}
		out = append(out, BandPoint{
			Time:   bars[i].Time,
			Upper:  round(upper[i], 2),
			Middle: round(middle[i], 2),
			Lower:  round(lower[i], 2),
		})
	}
	return out
}

func stochPoints(bars []model.Bar, k, d []float64) []StochPoint {
	out := make([]StochPoint, 0, len(k))
	for i := range k {
		if !defined(k[i], d[i]) {
			continue
		}
		out = append(out, StochPoint{Time: bars[i].Time, K: round(k[i], 2), D: round(d[i], 2)})
	}
	return out
}
