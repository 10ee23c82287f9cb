package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"stockplatform/customerrors"
	"stockplatform/middleware"
	"stockplatform/model"
	"stockplatform/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"
)

func marketRouter(m *fakeMarket, ind *fakeIndicators) *gin.Engine {
	return newTestAPI(func(api *gin.RouterGroup, _ huma.API) {
		NewMarketController(m, ind).RegisterRoutes(api)
	})
}

func TestGetQuote(t *testing.T) {
	r := marketRouter(&fakeMarket{quote: &model.Quote{Symbol: "AAPL", Price: 190.5}}, &fakeIndicators{})

	w := do(r, http.MethodGet, "/api/quote/aapl", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var q model.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatal(err)
	}
	if q.Symbol != "AAPL" || q.Price != 190.5 {
		t.Errorf("quote = %+v", q)
	}
}

func TestMarketErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		path    string
		status  int
		message string
	}{
		{"unknown symbol", customerrors.ErrSymbolNotFound, "/api/quote/zzzz", http.StatusNotFound, "Symbol ZZZZ not found"},
		{"empty series", customerrors.ErrNoData, "/api/ohlc/msft", http.StatusNotFound, "No data for MSFT"},
		{"provider down", customerrors.Upstream("yahoo", 500, nil), "/api/quote/msft", http.StatusBadGateway, "Upstream data provider failed"},
		{"bug", errors.New("boom"), "/api/indicators/msft", http.StatusInternalServerError, "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := marketRouter(&fakeMarket{err: tt.err}, &fakeIndicators{err: tt.err})
			w := do(r, http.MethodGet, tt.path, "")
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			var resp model.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Success || resp.Error != tt.message {
				t.Errorf("response = %+v, want error %q", resp, tt.message)
			}
		})
	}
}

func TestOHLCPassesRange(t *testing.T) {
	m := &fakeMarket{ohlc: &model.OHLCResponse{Bars: []model.Bar{}, Interval: "5m"}}
	r := marketRouter(m, &fakeIndicators{})

	w := do(r, http.MethodGet, "/api/ohlc/AAPL?range=1D", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if m.rng != "1D" {
		t.Errorf("range = %q", m.rng)
	}
}

func TestIndicatorsPassesNames(t *testing.T) {
	ind := &fakeIndicators{out: map[string]any{"rsi": []any{}}}
	r := marketRouter(&fakeMarket{}, ind)

	w := do(r, http.MethodGet, "/api/indicators/AAPL?range=1Y&indicators=rsi,vwap", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ind.names != "rsi,vwap" {
		t.Errorf("names = %q", ind.names)
	}
}

func fundamentalsRouter(f *fakeFundamentals, sec *fakeFilings) *gin.Engine {
	return newTestAPI(func(api *gin.RouterGroup, _ huma.API) {
		NewFundamentalsController(f, sec).RegisterRoutes(api)
		NewNewsController(fakeNewsService{}).RegisterRoutes(api)
	})
}

func TestFinancialsQuery(t *testing.T) {
	f := &fakeFundamentals{}
	r := fundamentalsRouter(f, &fakeFilings{})

	w := do(r, http.MethodGet, "/api/fundamentals/AAPL/financials", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if f.statement != "income" || f.period != "" {
		t.Errorf("statement, period = %q, %q", f.statement, f.period)
	}

	w = do(r, http.MethodGet, "/api/fundamentals/AAPL/financials?statement=ratios", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid statement status = %d", w.Code)
	}
}

func TestListingEndpointsAlwaysAnswer200(t *testing.T) {
	f := &fakeFundamentals{earnings: service.Result[[]model.EarningsEntry]{Data: []model.EarningsEntry{}, Status: service.StatusEmpty}}
	r := fundamentalsRouter(f, &fakeFilings{})

	tests := []struct {
		path   string
		status string
		body   string
	}{
		{"/api/fundamentals/AAPL/earnings", "empty", "[]"},
		{"/api/fundamentals/AAPL/sec-filings", "error", `{"filings":[]}`},
		{"/api/fundamentals/AAPL/sec-financials", "empty", `{"columns":[],"rows":[]}`},
		{"/api/fundamentals/AAPL/recommendations", "empty", `{"summary":{"strongBuy":0,"buy":0,"hold":0,"sell":0,"strongSell":0},"recent":[]}`},
		{"/api/news/AAPL", "ok", `[{"title":"Apple beats","publisher":"","link":"https://example.com/a","publishedAt":"","thumbnail":""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if got := w.Header().Get(middleware.DataStatusHeader); got != tt.status {
				t.Errorf("data status = %q, want %q", got, tt.status)
			}
			if w.Body.String() != tt.body {
				t.Errorf("body = %s, want %s", w.Body, tt.body)
			}
		})
	}
}

func TestSecFinancialsPeriod(t *testing.T) {
	sec := &fakeFilings{}
	r := fundamentalsRouter(&fakeFundamentals{}, sec)

	if w := do(r, http.MethodGet, "/api/fundamentals/AAPL/sec-financials?period=quarterly", ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if sec.period != "quarterly" {
		t.Errorf("period = %q", sec.period)
	}

	w := do(r, http.MethodGet, "/api/fundamentals/AAPL/sec-financials?period=weekly", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
