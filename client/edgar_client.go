package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stockplatform/customerrors"
	"stockplatform/metrics"
	"stockplatform/model"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	secProvider      = "sec"
	secTickersURL    = "https://www.sec.gov/files/company_tickers.json"
	secDataURL       = "https://data.sec.gov"
	secArchivesURL   = "https://www.sec.gov/Archives/edgar/data"
	DefaultUserAgent = "StockPlatform admin@stockplatform.dev"
)

type EdgarOptions struct {
	TickersURL string
	DataURL    string
	UserAgent  string
	Limiter    *rate.Limiter
	Metrics    *metrics.Metrics
}

// EdgarClient reads SEC EDGAR's public JSON. SEC rejects requests without a
// descriptive User-Agent that includes a contact address.
type EdgarClient struct {
	client     *resty.Client
	tickersURL string
}

func NewEdgarClient(opts EdgarOptions) *EdgarClient {
	if opts.TickersURL == "" {
		opts.TickersURL = secTickersURL
	}
	if opts.DataURL == "" {
		opts.DataURL = secDataURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := resty.New().
		SetBaseURL(opts.DataURL).
		SetTimeout(15*time.Second).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json")

	instrument(client, secProvider, opts.Limiter, opts.Metrics)

	return &EdgarClient{client: client, tickersURL: opts.TickersURL}
}

// CompanyTickers downloads the ticker to CIK table. Tickers are upper-cased.
func (e *EdgarClient) CompanyTickers(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := e.client.R().SetContext(ctx).Get(e.tickersURL)
	if err != nil {
		return nil, customerrors.Upstream(secProvider, 0, err)
	}
	if !resp.IsSuccess() {
		return nil, customerrors.Upstream(secProvider, resp.StatusCode(), nil)
	}

	var rows map[string]model.CompanyTicker
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, customerrors.Upstream(secProvider, resp.StatusCode(), fmt.Errorf("decode company tickers: %w", err))
	}

	ciks := make(map[string]int64, len(rows))
	for _, row := range rows {
		ciks[strings.ToUpper(row.Ticker)] = row.CikStr
	}
	return ciks, nil
}

// Submissions returns the filing index of a company, or nil when SEC has no
// document for the CIK.
func (e *EdgarClient) Submissions(ctx context.Context, cik int64) (*model.EdgarSubmissions, error) {
	var subs model.EdgarSubmissions
	found, err := e.getJSON(ctx, fmt.Sprintf("/submissions/CIK%010d.json", cik), &subs)
	if err != nil || !found {
		return nil, err
	}
	return &subs, nil
}

// CompanyFacts returns all XBRL facts of a company, or nil when SEC has none.
func (e *EdgarClient) CompanyFacts(ctx context.Context, cik int64) (*model.EdgarCompanyFacts, error) {
	var facts model.EdgarCompanyFacts
	found, err := e.getJSON(ctx, fmt.Sprintf("/api/xbrl/companyfacts/CIK%010d.json", cik), &facts)
	if err != nil || !found {
		return nil, err
	}
	return &facts, nil
}

func (e *EdgarClient) getJSON(ctx context.Context, path string, out any) (bool, error) {
	resp, err := e.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return false, customerrors.Upstream(secProvider, 0, err)
	}
	if !resp.IsSuccess() {
		return false, nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return false, customerrors.Upstream(secProvider, resp.StatusCode(), fmt.Errorf("decode %s: %w", path, err))
	}
	return true, nil
}

// FilingURL is the archive location of a filing's primary document.
func FilingURL(cik int64, accession, document string) string {
	return fmt.Sprintf("%s/%d/%s/%s", secArchivesURL, cik, strings.ReplaceAll(accession, "-", ""), document)
}
