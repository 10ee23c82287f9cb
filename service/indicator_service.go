package service

import (
	"context"
	"fmt"

	"stockplatform/customerrors"
	"stockplatform/indicator"
	"stockplatform/util"
)

type IndicatorService interface {
	GetIndicators(ctx context.Context, symbol, rangeName, names string) (map[string]any, error)
}

type IndicatorServiceImpl struct {
	market MarketService
}

func NewIndicatorService(market MarketService) IndicatorService {
	return &IndicatorServiceImpl{market: market}
}

// GetIndicators computes the comma separated indicator list over the bars
// of rangeName. A blank list means indicator.DefaultSet.
func (s *IndicatorServiceImpl) GetIndicators(ctx context.Context, symbol, rangeName, names string) (map[string]any, error) {
	series, err := s.market.GetBars(ctx, symbol, rangeName)
	if err != nil {
		return nil, err
	}
	if len(series.Bars) == 0 {
		return nil, fmt.Errorf("indicators %s: %w", util.NormalizeTicker(symbol), customerrors.ErrNoData)
	}
	return indicator.Compute(series.Bars, indicator.ParseNames(names)), nil
}
