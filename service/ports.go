package service

import (
	"context"

	"stockplatform/model"
)

// The service layer depends on these narrow views of the upstream clients
// so tests can substitute fakes.

type ChartSource interface {
	GetPriceSeries(ctx context.Context, symbol string, timeRange model.YahooTimeRange, interval model.YahooInterval) (*model.PriceSeries, error)
}

type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (*model.YahooQuote, error)
}

type SummarySource interface {
	GetQuoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]any, error)
}

type NewsSource interface {
	GetNews(ctx context.Context, symbol string, count int) ([]model.YahooNews, error)
}

type EdgarSource interface {
	CompanyTickers(ctx context.Context) (map[string]int64, error)
	Submissions(ctx context.Context, cik int64) (*model.EdgarSubmissions, error)
	CompanyFacts(ctx context.Context, cik int64) (*model.EdgarCompanyFacts, error)
}
