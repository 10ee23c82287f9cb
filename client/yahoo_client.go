package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"stockplatform/customerrors"
	"stockplatform/metrics"
	"stockplatform/middleware"
	"stockplatform/model"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	yahooProvider  = "yahoo"
	yahooBaseURL   = "https://query1.finance.yahoo.com"
	yahooCookieURL = "https://fc.yahoo.com"
	browserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type YahooOptions struct {
	BaseURL   string
	CookieURL string
	Limiter   *rate.Limiter
	Metrics   *metrics.Metrics
}

// YahooClient talks to the unofficial Yahoo Finance JSON API. The quote and
// quoteSummary endpoints need a session cookie plus a matching crumb, which
// is fetched lazily and refreshed once when Yahoo rejects it.
type YahooClient struct {
	client    *resty.Client
	cookieURL string
	crumb     string
	mu        sync.RWMutex
	logger    zerolog.Logger
}

func NewYahooClient(opts YahooOptions) *YahooClient {
	if opts.BaseURL == "" {
		opts.BaseURL = yahooBaseURL
	}
	if opts.CookieURL == "" {
		opts.CookieURL = yahooCookieURL
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(10 * time.Second).
		SetHeaders(map[string]string{
			"Accept":          "application/json",
			"Accept-Encoding": "gzip, deflate, br",
			"User-Agent":      browserAgent,
		})

	client.OnAfterResponse(middleware.DecompressMiddleware)
	instrument(client, yahooProvider, opts.Limiter, opts.Metrics)

	return &YahooClient{
		client:    client,
		cookieURL: opts.CookieURL,
		logger:    log.With().Str("component", "yahoo_client").Logger(),
	}
}

// GetPriceSeries fetches a chart and converts it to bars. Rows where any of
// open/high/low/close is null are skipped; a null volume counts as zero.
func (y *YahooClient) GetPriceSeries(ctx context.Context, symbol string, timeRange model.YahooTimeRange, interval model.YahooInterval) (*model.PriceSeries, error) {
	resp, err := y.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":    string(timeRange),
			"interval": string(interval),
		}).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, customerrors.Upstream(yahooProvider, 0, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("chart %s: %w", symbol, customerrors.ErrSymbolNotFound)
	}
	if !resp.IsSuccess() {
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), nil)
	}

	var chart model.YahooChartResponse
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), fmt.Errorf("decode chart: %w", err))
	}
	if e := chart.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("chart %s: %w", symbol, customerrors.ErrSymbolNotFound)
		}
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), fmt.Errorf("%s: %s", e.Code, e.Description))
	}

	series := &model.PriceSeries{
		Symbol:   strings.ToUpper(symbol),
		Range:    timeRange,
		Interval: interval,
		Intraday: interval.IsIntraday(),
		Bars:     []model.Bar{},
	}
	if len(chart.Chart.Result) == 0 {
		return series, nil
	}

	series.Bars = buildBars(chart.Chart.Result[0], series.Intraday)
	return series, nil
}

func buildBars(result model.ChartResult, intraday bool) []model.Bar {
	bars := make([]model.Bar, 0, len(result.Timestamp))
	if len(result.Indicators.Quote) == 0 {
		return bars
	}

	loc := exchangeLocation(result.Meta)
	q := result.Indicators.Quote[0]
	for i, ts := range result.Timestamp {
		open, high, low, close := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		if open == nil || high == nil || low == nil || close == nil {
			continue
		}
		var volume int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			volume = *q.Volume[i]
		}
		bars = append(bars, model.Bar{
			Time:   model.NewBarTime(time.Unix(ts, 0).In(loc), intraday),
			Open:   *open,
			High:   *high,
			Low:    *low,
			Close:  *close,
			Volume: volume,
		})
	}
	return bars
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

// exchangeLocation prefers the IANA zone Yahoo reports and falls back to the
// fixed offset when the zone database is unavailable.
func exchangeLocation(meta model.ChartMeta) *time.Location {
	if meta.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(meta.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	return time.FixedZone(meta.ExchangeTimezoneName, meta.GmtOffset)
}

// GetQuote returns the v7 quote for symbol. A missing regular market price
// means Yahoo does not know the symbol.
func (y *YahooClient) GetQuote(ctx context.Context, symbol string) (*model.YahooQuote, error) {
	resp, err := y.withCrumb(ctx, func(crumb string) (*resty.Response, error) {
		return y.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"symbols": symbol,
				"crumb":   crumb,
			}).
			Get("/v7/finance/quote")
	})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), nil)
	}

	var quote model.YahooQuoteResponse
	if err := json.Unmarshal(resp.Body(), &quote); err != nil {
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), fmt.Errorf("decode quote: %w", err))
	}
	results := quote.QuoteResponse.Result
	if len(results) == 0 || results[0].RegularMarketPrice == nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, customerrors.ErrSymbolNotFound)
	}
	return &results[0], nil
}

// GetQuoteSummary returns the requested quoteSummary modules keyed by name.
// Modules Yahoo has no data for are simply absent from the map.
func (y *YahooClient) GetQuoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]any, error) {
	resp, err := y.withCrumb(ctx, func(crumb string) (*resty.Response, error) {
		return y.client.R().
			SetContext(ctx).
			SetPathParam("symbol", symbol).
			SetQueryParams(map[string]string{
				"modules": strings.Join(modules, ","),
				"crumb":   crumb,
			}).
			Get("/v10/finance/quoteSummary/{symbol}")
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("quoteSummary %s: %w", symbol, customerrors.ErrSymbolNotFound)
	}
	if !resp.IsSuccess() {
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), nil)
	}

	var summary model.YahooQuoteSummaryResponse
	if err := json.Unmarshal(resp.Body(), &summary); err != nil {
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), fmt.Errorf("decode quoteSummary: %w", err))
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary %s: %w", symbol, customerrors.ErrSymbolNotFound)
	}
	return summary.QuoteSummary.Result[0], nil
}

// GetNews returns up to count news items Yahoo associates with symbol.
func (y *YahooClient) GetNews(ctx context.Context, symbol string, count int) ([]model.YahooNews, error) {
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":           symbol,
			"quotesCount": "0",
			"newsCount":   strconv.Itoa(count),
		}).
		Get("/v1/finance/search")
	if err != nil {
		return nil, customerrors.Upstream(yahooProvider, 0, err)
	}
	if !resp.IsSuccess() {
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), nil)
	}

	var search model.YahooSearchResponse
	if err := json.Unmarshal(resp.Body(), &search); err != nil {
		return nil, customerrors.Upstream(yahooProvider, resp.StatusCode(), fmt.Errorf("decode search: %w", err))
	}
	return search.News, nil
}

func (y *YahooClient) withCrumb(ctx context.Context, call func(crumb string) (*resty.Response, error)) (*resty.Response, error) {
	crumb := y.getStoredCrumb()
	if crumb == "" {
		if err := y.refreshCrumb(ctx); err != nil {
			return nil, err
		}
		crumb = y.getStoredCrumb()
	}

	resp, err := call(crumb)
	if err == nil && (resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden) {
		y.logger.Info().Int("status", resp.StatusCode()).Msg("Yahoo rejected crumb, refreshing session")
		if err := y.refreshCrumb(ctx); err != nil {
			return nil, err
		}
		resp, err = call(y.getStoredCrumb())
	}
	if err != nil {
		return nil, customerrors.Upstream(yahooProvider, 0, err)
	}
	return resp, nil
}

func (y *YahooClient) getStoredCrumb() string {
	y.mu.RLock()
	defer y.mu.RUnlock()
	return y.crumb
}

// refreshCrumb visits the cookie host to obtain a session cookie (the jar
// keeps it) and then asks for a crumb bound to that session.
func (y *YahooClient) refreshCrumb(ctx context.Context) error {
	y.mu.Lock()
	defer y.mu.Unlock()

	if _, err := y.client.R().SetContext(ctx).Get(y.cookieURL); err != nil {
		return customerrors.Upstream(yahooProvider, 0, fmt.Errorf("session cookie: %w", err))
	}

	resp, err := y.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/v1/test/getcrumb")
	if err != nil {
		return customerrors.Upstream(yahooProvider, 0, fmt.Errorf("crumb: %w", err))
	}
	crumb := strings.TrimSpace(resp.String())
	if !resp.IsSuccess() || crumb == "" {
		return customerrors.Upstream(yahooProvider, resp.StatusCode(), fmt.Errorf("crumb unavailable"))
	}

	y.crumb = crumb
	return nil
}
