package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"stockplatform/customerrors"
	"stockplatform/model"
	"stockplatform/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMarket struct {
	quote *model.Quote
	ohlc  *model.OHLCResponse
	err   error
	rng   string
}

func (f *fakeMarket) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	return f.quote, f.err
}

func (f *fakeMarket) GetOHLC(ctx context.Context, symbol, rangeName string) (*model.OHLCResponse, error) {
	f.rng = rangeName
	return f.ohlc, f.err
}

func (f *fakeMarket) GetBars(ctx context.Context, symbol, rangeName string) (*model.PriceSeries, error) {
	return nil, f.err
}

type fakeIndicators struct {
	out   map[string]any
	err   error
	names string
}

func (f *fakeIndicators) GetIndicators(ctx context.Context, symbol, rangeName, names string) (map[string]any, error) {
	f.names = names
	return f.out, f.err
}

type fakeFundamentals struct {
	overview  *model.CompanyOverview
	err       error
	statement string
	period    string
	earnings  service.Result[[]model.EarningsEntry]
}

func (f *fakeFundamentals) Overview(ctx context.Context, symbol string) (*model.CompanyOverview, error) {
	return f.overview, f.err
}

func (f *fakeFundamentals) Financials(ctx context.Context, symbol, statement, period string) (*model.FinancialData, error) {
	f.statement, f.period = statement, period
	if statement != "income" && statement != "balance" && statement != "cashflow" {
		return nil, customerrors.ErrInvalidStatement
	}
	empty := model.EmptyFinancials()
	return &empty, f.err
}

func (f *fakeFundamentals) Earnings(ctx context.Context, symbol string) service.Result[[]model.EarningsEntry] {
	return f.earnings
}

func (f *fakeFundamentals) Recommendations(ctx context.Context, symbol string) service.Result[model.Recommendations] {
	return service.Result[model.Recommendations]{Data: model.Recommendations{Recent: []model.RecommendationEntry{}}, Status: service.StatusEmpty}
}

type fakeFilings struct {
	period string
}

func (f *fakeFilings) ResolveCIK(ctx context.Context, symbol string) (int64, error) {
	return 320193, nil
}

func (f *fakeFilings) RefreshCIKMap(ctx context.Context) error {
	return nil
}

func (f *fakeFilings) SecFilings(ctx context.Context, symbol string) service.Result[model.SecFilings] {
	return service.Result[model.SecFilings]{
		Data:   model.SecFilings{Filings: []model.SecFiling{}},
		Status: service.StatusError,
		Err:    customerrors.Upstream("sec", 503, nil),
	}
}

func (f *fakeFilings) SecFinancials(ctx context.Context, symbol, period string) service.Result[model.FinancialData] {
	f.period = period
	return service.Result[model.FinancialData]{Data: model.EmptyFinancials(), Status: service.StatusEmpty}
}

type fakeNewsService struct{}

func (fakeNewsService) News(ctx context.Context, symbol string) service.Result[[]model.NewsItem] {
	return service.Result[[]model.NewsItem]{
		Data:   []model.NewsItem{{Title: "Apple beats", Link: "https://example.com/a"}},
		Status: service.StatusOK,
	}
}

// memPortfolio keeps holdings in insertion order and prices nothing.
type memPortfolio struct {
	holdings []model.Holding
}

func (m *memPortfolio) find(ticker string) int {
	for i, h := range m.holdings {
		if h.Ticker == strings.ToUpper(ticker) {
			return i
		}
	}
	return -1
}

func (m *memPortfolio) List(ctx context.Context) (*model.Portfolio, error) {
	out := make([]model.EnrichedHolding, 0, len(m.holdings))
	for _, h := range m.holdings {
		out = append(out, model.EnrichedHolding{Ticker: h.Ticker, Shares: h.Shares, BuyPrice: h.BuyPrice, BuyDate: h.BuyDate})
	}
	return &model.Portfolio{Holdings: out}, nil
}

func (m *memPortfolio) Summary(ctx context.Context) (*model.PortfolioSummary, error) {
	return &model.PortfolioSummary{Allocation: []model.Allocation{}}, nil
}

func (m *memPortfolio) Get(ctx context.Context, ticker string) (*model.EnrichedHolding, error) {
	i := m.find(ticker)
	if i < 0 {
		return nil, customerrors.WithDetail(customerrors.ErrHoldingNotFound, "%s not found in portfolio", strings.ToUpper(ticker))
	}
	h := m.holdings[i]
	return &model.EnrichedHolding{Ticker: h.Ticker, Shares: h.Shares, BuyPrice: h.BuyPrice, BuyDate: h.BuyDate}, nil
}

func (m *memPortfolio) Add(ctx context.Context, req model.HoldingRequest) error {
	ticker := strings.ToUpper(req.Ticker)
	if m.find(ticker) >= 0 {
		return customerrors.WithDetail(customerrors.ErrHoldingExists, "%s already in portfolio. Use PUT to update.", ticker)
	}
	m.holdings = append(m.holdings, model.Holding{Ticker: ticker, Shares: req.Shares, BuyPrice: req.BuyPrice, BuyDate: req.BuyDate})
	return nil
}

func (m *memPortfolio) Update(ctx context.Context, ticker string, req model.HoldingRequest) error {
	i := m.find(ticker)
	if i < 0 {
		return customerrors.WithDetail(customerrors.ErrHoldingNotFound, "%s not found in portfolio", strings.ToUpper(ticker))
	}
	m.holdings[i].Shares, m.holdings[i].BuyPrice, m.holdings[i].BuyDate = req.Shares, req.BuyPrice, req.BuyDate
	return nil
}

func (m *memPortfolio) Delete(ctx context.Context, ticker string) error {
	i := m.find(ticker)
	if i < 0 {
		return customerrors.WithDetail(customerrors.ErrHoldingNotFound, "%s not found in portfolio", strings.ToUpper(ticker))
	}
	m.holdings = append(m.holdings[:i], m.holdings[i+1:]...)
	return nil
}

type fakeAgent struct {
	err error
}

func (f *fakeAgent) Ask(ctx context.Context, req model.AskRequest) (*model.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.ChatMessage{ID: "id-1", Role: "agent", Content: "echo: " + req.Message, Timestamp: 1700000000000}, nil
}

func (f *fakeAgent) Analyze(ctx context.Context, req model.AnalyzeRequest) ([]model.AnalystReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.AnalystReport, 0, len(req.Analysts))
	for _, a := range req.Analysts {
		out = append(out, model.AnalystReport{Analyst: a, Analysis: fmt.Sprintf("%s on %s: Hold", a, req.Ticker)})
	}
	return out, nil
}

func (f *fakeAgent) Personas() []model.Persona {
	return []model.Persona{{Key: "buffett", Name: "Warren Buffett", Style: "Value"}}
}

// newTestAPI mounts gin and huma controllers the way the router does.
func newTestAPI(register func(api *gin.RouterGroup, humaAPI huma.API)) *gin.Engine {
	r := gin.New()
	humaAPI := humagin.New(r, huma.DefaultConfig("test", "1.0.0"))
	register(r.Group("/api"), humaAPI)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
