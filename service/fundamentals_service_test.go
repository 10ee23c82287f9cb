package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"stockplatform/cache"
	"stockplatform/customerrors"
)

func summaryFromJSON(t *testing.T, raw string) *fakeSummary {
	t.Helper()
	var modules map[string]any
	if err := json.Unmarshal([]byte(raw), &modules); err != nil {
		t.Fatal(err)
	}
	return &fakeSummary{modules: modules}
}

func TestOverview(t *testing.T) {
	src := summaryFromJSON(t, `{
		"price": {"maxAge": 1, "shortName": "Apple Inc.", "regularMarketPrice": {"raw": 190.5, "fmt": "190.50"}, "marketCap": {"raw": 2950000000000, "fmt": "2.95T"}},
		"assetProfile": {"sector": "Technology", "longBusinessSummary": "Makes phones."},
		"summaryDetail": {"trailingPE": {"raw": 29.6, "fmt": "29.60"}, "forwardPE": {}, "averageVolume": {"raw": 55000000}},
		"defaultKeyStatistics": {"trailingEps": {"raw": 6.43}}
	}`)
	svc := NewFundamentalsService(src, cache.NewMemoryStore())

	ov, err := svc.Overview(context.Background(), "aapl")
	if err != nil {
		t.Fatal(err)
	}
	if ov.Symbol != "AAPL" || ov.Name != "Apple Inc." || ov.Price != 190.5 {
		t.Errorf("identity %+v", ov)
	}
	if ov.Sector != "Technology" || ov.Industry != "N/A" {
		t.Errorf("sector/industry %q %q", ov.Sector, ov.Industry)
	}
	if ov.MarketCap != 2950000000000 || ov.AvgVolume != 55000000 {
		t.Errorf("marketCap %d avgVolume %d", ov.MarketCap, ov.AvgVolume)
	}
	if ov.PE == nil || *ov.PE != 29.6 || ov.ForwardPE != nil || ov.EPS == nil || *ov.EPS != 6.43 || ov.Beta != nil {
		t.Errorf("ratios %+v", ov)
	}
}

func TestOverview_NoPriceIsNotFound(t *testing.T) {
	src := summaryFromJSON(t, `{"price": {"shortName": "Ghost"}}`)
	svc := NewFundamentalsService(src, cache.NewMemoryStore())

	if _, err := svc.Overview(context.Background(), "GHST"); !errors.Is(err, customerrors.ErrSymbolNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestFinancials(t *testing.T) {
	src := summaryFromJSON(t, `{"incomeStatementHistory": {"maxAge": 86400, "incomeStatementHistory": [
		{"endDate": {"raw": 1696032000, "fmt": "2023-09-30"}, "totalRevenue": {"raw": 383285000000}, "netIncome": {"raw": 96995000000}, "ebit": {}},
		{"endDate": {"raw": 1664064000, "fmt": "2022-09-24"}, "totalRevenue": {"raw": 394328000000}}
	]}}`)
	svc := NewFundamentalsService(src, cache.NewMemoryStore())

	data, err := svc.Financials(context.Background(), "AAPL", "income", "")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(data.Columns, ",") != "2023-09-30,2022-09-24" {
		t.Fatalf("columns %v", data.Columns)
	}
	labels := []string{}
	for _, r := range data.Rows {
		labels = append(labels, r.Label)
	}
	if strings.Join(labels, "|") != "Total Revenue|EBIT|Net Income" {
		t.Fatalf("labels %v", labels)
	}
	revenue := data.Rows[0].Values
	if *revenue["2023-09-30"] != 383285000000 || *revenue["2022-09-24"] != 394328000000 {
		t.Errorf("revenue %v", revenue)
	}
	net := data.Rows[2].Values
	if net["2022-09-24"] != nil {
		t.Error("missing cell should be null")
	}
	if v, ok := data.Rows[1].Values["2023-09-30"]; !ok || v != nil {
		t.Error("empty provider value should be a present null cell")
	}
}

func TestFinancials_Validation(t *testing.T) {
	svc := NewFundamentalsService(&fakeSummary{}, cache.NewMemoryStore())

	if _, err := svc.Financials(context.Background(), "AAPL", "dividends", "annual"); !errors.Is(err, customerrors.ErrInvalidStatement) {
		t.Errorf("statement err = %v", err)
	}
	if _, err := svc.Financials(context.Background(), "AAPL", "income", "weekly"); !errors.Is(err, customerrors.ErrInvalidPeriod) {
		t.Errorf("period err = %v", err)
	}

	data, err := svc.Financials(context.Background(), "AAPL", "balance", "quarterly")
	if err != nil || len(data.Columns) != 0 || data.Rows == nil {
		t.Errorf("missing module should give empty statement, got %+v %v", data, err)
	}
}

func TestEarnings(t *testing.T) {
	src := summaryFromJSON(t, `{"earningsHistory": {"history": [
		{"quarter": {"raw": 1696032000, "fmt": "2023-09-30"}, "epsActual": {"raw": 1.46}, "epsEstimate": {"raw": 1.39}, "surprisePercent": {"raw": 0.0504}},
		{"quarter": {"raw": 1703980800, "fmt": "2023-12-31"}, "epsActual": {"raw": 2.18}, "epsEstimate": {}}
	]}}`)
	res := NewFundamentalsService(src, cache.NewMemoryStore()).Earnings(context.Background(), "AAPL")

	if res.Status != StatusOK || len(res.Data) != 2 {
		t.Fatalf("result %+v", res)
	}
	first := res.Data[0]
	if first.Date != "2023-09-30" || *first.EpsActual != 1.46 || *first.EpsEstimate != 1.39 || *first.Surprise != 0.0504 {
		t.Errorf("first %+v", first)
	}
	if res.Data[1].EpsEstimate != nil || res.Data[1].Surprise != nil {
		t.Errorf("second %+v", res.Data[1])
	}
}

func TestEarnings_StatusPolicy(t *testing.T) {
	failing := NewFundamentalsService(&fakeSummary{err: customerrors.Upstream("yahoo", 503, nil)}, cache.NewMemoryStore())
	res := failing.Earnings(context.Background(), "AAPL")
	if res.Status != StatusError || res.Err == nil || res.Data == nil || len(res.Data) != 0 {
		t.Errorf("upstream failure %+v", res)
	}

	unknown := NewFundamentalsService(&fakeSummary{err: customerrors.ErrSymbolNotFound}, cache.NewMemoryStore())
	if res := unknown.Earnings(context.Background(), "NOPE"); res.Status != StatusEmpty || res.Err != nil {
		t.Errorf("unknown symbol %+v", res)
	}
}

func TestRecommendations(t *testing.T) {
	var history []string
	// 12 grade changes listed newest first, one day apart from 2024-01-01.
	for i := 11; i >= 0; i-- {
		history = append(history, fmt.Sprintf(`{"epochGradeDate": %d, "firm": "Firm%d", "toGrade": "Buy", "fromGrade": "Hold", "action": "up"}`, 1704067200+i*86400, i))
	}
	src := summaryFromJSON(t, `{
		"recommendationTrend": {"trend": [
			{"period": "0m", "strongBuy": 11, "buy": 21, "hold": 6, "sell": 0, "strongSell": 0},
			{"period": "-1m", "strongBuy": 10, "buy": 20, "hold": 7, "sell": 1, "strongSell": 0}
		]},
		"upgradeDowngradeHistory": {"history": [`+strings.Join(history, ",")+`]}
	}`)
	res := NewFundamentalsService(src, cache.NewMemoryStore()).Recommendations(context.Background(), "AAPL")

	if res.Status != StatusOK {
		t.Fatalf("status %s", res.Status)
	}
	if s := res.Data.Summary; s.StrongBuy != 11 || s.Buy != 21 || s.Hold != 6 {
		t.Errorf("summary %+v", s)
	}
	recent := res.Data.Recent
	if len(recent) != 10 {
		t.Fatalf("recent len %d", len(recent))
	}
	if recent[0].Date != "2024-01-03" || recent[0].Firm != "Firm2" || recent[9].Date != "2024-01-12" || recent[9].Firm != "Firm11" {
		t.Errorf("recent window %+v ... %+v", recent[0], recent[9])
	}
}

func TestRecommendations_Empty(t *testing.T) {
	src := summaryFromJSON(t, `{}`)
	res := NewFundamentalsService(src, cache.NewMemoryStore()).Recommendations(context.Background(), "AAPL")
	if res.Status != StatusEmpty || res.Data.Recent == nil || len(res.Data.Recent) != 0 {
		t.Errorf("result %+v", res)
	}
}
