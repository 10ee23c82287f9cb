package service

import (
	"context"
	"strings"
	"sync"

	"stockplatform/client"
	"stockplatform/customerrors"
	"stockplatform/model"
)

func ptr(v float64) *float64 { return &v }

type fakeCharts struct {
	series map[string]*model.PriceSeries
	err    error
	calls  int
	last   [2]string
}

func (f *fakeCharts) GetPriceSeries(ctx context.Context, symbol string, r model.YahooTimeRange, i model.YahooInterval) (*model.PriceSeries, error) {
	f.calls++
	f.last = [2]string{string(r), string(i)}
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.series[symbol]
	if !ok {
		return nil, customerrors.ErrSymbolNotFound
	}
	cp := *s
	cp.Range, cp.Interval, cp.Intraday = r, i, i.IsIntraday()
	return &cp, nil
}

type fakeQuotes struct {
	quotes map[string]model.YahooQuote
	calls  int
}

func (f *fakeQuotes) GetQuote(ctx context.Context, symbol string) (*model.YahooQuote, error) {
	f.calls++
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, customerrors.ErrSymbolNotFound
	}
	return &q, nil
}

type fakeSummary struct {
	modules map[string]any
	err     error
}

func (f *fakeSummary) GetQuoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.modules, nil
}

type fakeNews struct {
	items []model.YahooNews
	err   error
}

func (f *fakeNews) GetNews(ctx context.Context, symbol string, count int) ([]model.YahooNews, error) {
	return f.items, f.err
}

type fakeEdgar struct {
	tickers     map[string]int64
	tickersErr  error
	tickerCalls int
	subs        *model.EdgarSubmissions
	facts       *model.EdgarCompanyFacts
}

func (f *fakeEdgar) CompanyTickers(ctx context.Context) (map[string]int64, error) {
	f.tickerCalls++
	return f.tickers, f.tickersErr
}

func (f *fakeEdgar) Submissions(ctx context.Context, cik int64) (*model.EdgarSubmissions, error) {
	return f.subs, nil
}

func (f *fakeEdgar) CompanyFacts(ctx context.Context, cik int64) (*model.EdgarCompanyFacts, error) {
	return f.facts, nil
}

// stubQuotes serves normalized quotes to the portfolio and agent services.
type stubQuotes struct {
	quotes map[string]model.Quote
}

func (s *stubQuotes) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	q, ok := s.quotes[symbol]
	if !ok {
		return nil, customerrors.Upstream("yahoo", 500, nil)
	}
	return &q, nil
}

type memRepo struct {
	mu       sync.Mutex
	holdings []model.Holding
	saves    int
}

func (r *memRepo) Load(ctx context.Context) ([]model.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Holding{}, r.holdings...), nil
}

func (r *memRepo) Save(ctx context.Context, holdings []model.Holding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.holdings = append([]model.Holding{}, holdings...)
	return nil
}

type fakeCompleter struct {
	mu       sync.Mutex
	requests []client.CompletionRequest
	failOn   string
}

func (f *fakeCompleter) Provider() string { return "fake" }

func (f *fakeCompleter) Complete(ctx context.Context, req client.CompletionRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.failOn != "" && strings.Contains(req.System, f.failOn) {
		return "", customerrors.Upstream("fake", 529, nil)
	}
	return "reply to: " + req.Prompt, nil
}

func (f *fakeCompleter) find(substr string) (client.CompletionRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if strings.Contains(r.System, substr) {
			return r, true
		}
	}
	return client.CompletionRequest{}, false
}
