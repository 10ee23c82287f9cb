package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockplatform/cache"
	"stockplatform/customerrors"
	"stockplatform/model"
	"stockplatform/util"
)

const (
	quoteTTL = 15 * time.Second
	ohlcTTL  = 60 * time.Second

	DefaultRange = "1M"
)

// RangeSpec is the lookback and sampling interval a UI range maps to.
type RangeSpec struct {
	Range    model.YahooTimeRange
	Interval model.YahooInterval
}

var rangeSpecs = map[string]RangeSpec{
	"1D":  {model.Range1d, model.Interval5m},
	"1W":  {model.Range5d, model.Interval15m},
	"1M":  {model.Range1mo, model.Interval1d},
	"3M":  {model.Range3mo, model.Interval1d},
	"6M":  {model.Range6mo, model.Interval1d},
	"1Y":  {model.Range1y, model.Interval1d},
	"5Y":  {model.Range5y, model.Interval1wk},
	"MAX": {model.RangeMax, model.Interval1mo},
}

// ResolveRange maps a range name to its spec. Unknown names fall back to 1M.
func ResolveRange(name string) (string, RangeSpec) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if spec, ok := rangeSpecs[key]; ok {
		return key, spec
	}
	return DefaultRange, rangeSpecs[DefaultRange]
}

type MarketService interface {
	GetQuote(ctx context.Context, symbol string) (*model.Quote, error)
	GetOHLC(ctx context.Context, symbol, rangeName string) (*model.OHLCResponse, error)
	GetBars(ctx context.Context, symbol, rangeName string) (*model.PriceSeries, error)
}

type MarketServiceImpl struct {
	charts ChartSource
	quotes QuoteSource
	store  cache.Store
}

func NewMarketService(charts ChartSource, quotes QuoteSource, store cache.Store) MarketService {
	return &MarketServiceImpl{
		charts: charts,
		quotes: quotes,
		store:  store,
	}
}

func (s *MarketServiceImpl) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	symbol = util.NormalizeTicker(symbol)
	key := "quote:" + symbol
	if cached, ok := cache.Lookup[model.Quote](s.store, key, quoteTTL); ok {
		return &cached, nil
	}

	raw, err := s.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	quote := toQuote(symbol, raw)
	s.store.Set(key, quote)
	return &quote, nil
}

// toQuote expects a non-nil RegularMarketPrice; the client guarantees it.
func toQuote(symbol string, raw *model.YahooQuote) model.Quote {
	price := *raw.RegularMarketPrice
	prevClose := price
	if raw.RegularMarketPreviousClose != nil {
		prevClose = *raw.RegularMarketPreviousClose
	}

	change := util.Round2(price - prevClose)
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = util.Round2(change / prevClose * 100)
	}

	quote := model.Quote{
		Symbol:        symbol,
		Name:          raw.ShortName,
		Price:         price,
		PreviousClose: prevClose,
		Change:        change,
		ChangePercent: changePercent,
		High:          raw.RegularMarketDayHigh,
		Low:           raw.RegularMarketDayLow,
		Volume:        raw.RegularMarketVolume,
	}

	switch {
	case raw.MarketState == "PRE" && raw.PreMarketPrice != nil:
		setExtended(&quote, "Pre-Market", raw.PreMarketPrice, raw.PreMarketChange, raw.PreMarketChangePercent)
	case raw.MarketState != "REGULAR" && raw.PostMarketPrice != nil:
		setExtended(&quote, "After Hours", raw.PostMarketPrice, raw.PostMarketChange, raw.PostMarketChangePercent)
	}
	return quote
}

func setExtended(q *model.Quote, label string, price, change, changePercent *float64) {
	q.ExtLabel = &label
	q.ExtPrice = roundedPtr(price)
	q.ExtChange = roundedPtr(change)
	q.ExtChangePercent = roundedPtr(changePercent)
}

func roundedPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := util.Round2(*v)
	return &r
}

// GetBars returns the series for a UI range. The series may be empty.
func (s *MarketServiceImpl) GetBars(ctx context.Context, symbol, rangeName string) (*model.PriceSeries, error) {
	symbol = util.NormalizeTicker(symbol)
	name, spec := ResolveRange(rangeName)
	key := fmt.Sprintf("ohlc:%s:%s", symbol, name)
	if cached, ok := cache.Lookup[model.PriceSeries](s.store, key, ohlcTTL); ok {
		return &cached, nil
	}

	series, err := s.charts.GetPriceSeries(ctx, symbol, spec.Range, spec.Interval)
	if err != nil {
		return nil, err
	}
	s.store.Set(key, *series)
	return series, nil
}

func (s *MarketServiceImpl) GetOHLC(ctx context.Context, symbol, rangeName string) (*model.OHLCResponse, error) {
	series, err := s.GetBars(ctx, symbol, rangeName)
	if err != nil {
		return nil, err
	}
	if len(series.Bars) == 0 {
		return nil, fmt.Errorf("ohlc %s: %w", util.NormalizeTicker(symbol), customerrors.ErrNoData)
	}

	bars := make([]model.Bar, len(series.Bars))
	for i, b := range series.Bars {
		bars[i] = model.Bar{
			Time:   b.Time,
			Open:   util.Round2(b.Open),
			High:   util.Round2(b.High),
			Low:    util.Round2(b.Low),
			Close:  util.Round2(b.Close),
			Volume: b.Volume,
		}
	}
	return &model.OHLCResponse{
		Bars:     bars,
		Interval: string(series.Interval),
	}, nil
}
