package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"stockplatform/cache"
	"stockplatform/client"
	"stockplatform/customerrors"
	"stockplatform/model"
	"stockplatform/util"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	cikMapKey      = "edgar:cik_map"
	cikMapTTL      = 24 * time.Hour
	submissionsTTL = 600 * time.Second
	factsTTL       = 3600 * time.Second

	filingScanLimit = 100
	maxFilings      = 20
	maxFactColumns  = 8
)

var filingForms = map[string]bool{
	"10-K":   true,
	"10-Q":   true,
	"8-K":    true,
	"10-K/A": true,
	"10-Q/A": true,
}

// conceptLabels is ordered: it fixes the row order and decides which of two
// concepts sharing a label is preferred.
var conceptLabels = []struct {
	concept string
	label   string
}{
	{"Revenues", "Revenue"},
	{"RevenueFromContractWithCustomerExcludingAssessedTax", "Revenue"},
	{"NetIncomeLoss", "Net Income"},
	{"Assets", "Total Assets"},
	{"Liabilities", "Total Liabilities"},
	{"StockholdersEquity", "Stockholders' Equity"},
	{"EarningsPerShareBasic", "EPS (Basic)"},
	{"EarningsPerShareDiluted", "EPS (Diluted)"},
	{"NetCashProvidedByOperatingActivities", "Operating Cash Flow"},
	{"LongTermDebt", "Long-Term Debt"},
}

type FilingsService interface {
	ResolveCIK(ctx context.Context, symbol string) (int64, error)
	RefreshCIKMap(ctx context.Context) error
	SecFilings(ctx context.Context, symbol string) Result[model.SecFilings]
	SecFinancials(ctx context.Context, symbol, period string) Result[model.FinancialData]
}

type FilingsServiceImpl struct {
	edgar  EdgarSource
	store  cache.Store
	loadMu sync.Mutex
	logger zerolog.Logger
}

func NewFilingsService(edgar EdgarSource, store cache.Store) FilingsService {
	return &FilingsServiceImpl{
		edgar:  edgar,
		store:  store,
		logger: log.With().Str("component", "filings_service").Logger(),
	}
}

// RefreshCIKMap downloads the ticker table and replaces the cached copy.
func (s *FilingsServiceImpl) RefreshCIKMap(ctx context.Context) error {
	ciks, err := s.edgar.CompanyTickers(ctx)
	if err != nil {
		return err
	}
	s.store.Set(cikMapKey, ciks)
	s.logger.Info().Int("tickers", len(ciks)).Msg("CIK map refreshed")
	return nil
}

func (s *FilingsServiceImpl) cikMap(ctx context.Context) (map[string]int64, error) {
	if ciks, ok := cache.Lookup[map[string]int64](s.store, cikMapKey, cikMapTTL); ok {
		return ciks, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if ciks, ok := cache.Lookup[map[string]int64](s.store, cikMapKey, cikMapTTL); ok {
		return ciks, nil
	}
	if err := s.RefreshCIKMap(ctx); err != nil {
		return nil, err
	}
	ciks, _ := cache.Lookup[map[string]int64](s.store, cikMapKey, cikMapTTL)
	return ciks, nil
}

func (s *FilingsServiceImpl) ResolveCIK(ctx context.Context, symbol string) (int64, error) {
	ciks, err := s.cikMap(ctx)
	if err != nil {
		return 0, err
	}
	symbol = util.NormalizeTicker(symbol)
	cik, ok := ciks[symbol]
	if !ok {
		return 0, fmt.Errorf("%s: %w", symbol, customerrors.ErrCikNotFound)
	}
	return cik, nil
}

func (s *FilingsServiceImpl) submissions(ctx context.Context, cik int64) (*model.EdgarSubmissions, error) {
	key := fmt.Sprintf("edgar:subs:%d", cik)
	if cached, ok := cache.Lookup[model.EdgarSubmissions](s.store, key, submissionsTTL); ok {
		return &cached, nil
	}
	subs, err := s.edgar.Submissions(ctx, cik)
	if err != nil || subs == nil {
		return nil, err
	}
	s.store.Set(key, *subs)
	return subs, nil
}

func (s *FilingsServiceImpl) companyFacts(ctx context.Context, cik int64) (*model.EdgarCompanyFacts, error) {
	key := fmt.Sprintf("edgar:facts:%d", cik)
	if cached, ok := cache.Lookup[model.EdgarCompanyFacts](s.store, key, factsTTL); ok {
		return &cached, nil
	}
	facts, err := s.edgar.CompanyFacts(ctx, cik)
	if err != nil || facts == nil {
		return nil, err
	}
	s.store.Set(key, *facts)
	return facts, nil
}

// SecFilings lists up to 20 periodic and current reports found among the
// 100 most recent filings.
func (s *FilingsServiceImpl) SecFilings(ctx context.Context, symbol string) Result[model.SecFilings] {
	out := model.SecFilings{Filings: []model.SecFiling{}}

	cik, err := s.ResolveCIK(ctx, symbol)
	if errors.Is(err, customerrors.ErrCikNotFound) {
		return emptyResult(out)
	}
	if err != nil {
		return failedResult(out, err, "sec-filings", symbol)
	}

	subs, err := s.submissions(ctx, cik)
	if err != nil {
		return failedResult(out, err, "sec-filings", symbol)
	}
	if subs == nil {
		return emptyResult(out)
	}

	out.Filings = recentFilings(cik, subs.Filings.Recent)
	if len(out.Filings) == 0 {
		return emptyResult(out)
	}
	return okResult(out)
}

func recentFilings(cik int64, recent model.RecentFilings) []model.SecFiling {
	filings := []model.SecFiling{}
	n := min(len(recent.Form), filingScanLimit)
	for i := 0; i < n; i++ {
		if !filingForms[recent.Form[i]] {
			continue
		}
		if i >= len(recent.AccessionNumber) || i >= len(recent.PrimaryDocument) || i >= len(recent.FilingDate) {
			break
		}
		description := ""
		if i < len(recent.PrimaryDocDescription) {
			description = recent.PrimaryDocDescription[i]
		}
		filings = append(filings, model.SecFiling{
			Form:        recent.Form[i],
			Date:        recent.FilingDate[i],
			Description: description,
			URL:         client.FilingURL(cik, recent.AccessionNumber[i], recent.PrimaryDocument[i]),
		})
		if len(filings) >= maxFilings {
			break
		}
	}
	return filings
}

// SecFinancials builds a statement from XBRL facts. period must already be
// "annual" or "quarterly".
func (s *FilingsServiceImpl) SecFinancials(ctx context.Context, symbol, period string) Result[model.FinancialData] {
	empty := model.EmptyFinancials()

	cik, err := s.ResolveCIK(ctx, symbol)
	if errors.Is(err, customerrors.ErrCikNotFound) {
		return emptyResult(empty)
	}
	if err != nil {
		return failedResult(empty, err, "sec-financials", symbol)
	}

	facts, err := s.companyFacts(ctx, cik)
	if err != nil {
		return failedResult(empty, err, "sec-financials", symbol)
	}
	if facts == nil {
		return emptyResult(empty)
	}

	data := extractFinancials(facts, period)
	if len(data.Columns) == 0 {
		return emptyResult(data)
	}
	return okResult(data)
}

// extractFinancials keys annual values by fiscal year and quarterly values
// by the YYYY-MM of the period end. When several facts share a key the last
// one listed wins.
func extractFinancials(facts *model.EdgarCompanyFacts, period string) model.FinancialData {
	usGaap := facts.Facts["us-gaap"]
	if len(usGaap) == 0 {
		return model.EmptyFinancials()
	}

	form := "10-K"
	if period == "quarterly" {
		form = "10-Q"
	}

	byLabel := map[string]map[string]float64{}
	periods := map[string]bool{}
	for _, cl := range conceptLabels {
		if len(byLabel[cl.label]) > 0 {
			continue
		}
		concept, ok := usGaap[cl.concept]
		if !ok {
			continue
		}
		entries := concept.Units["USD"]
		if len(entries) == 0 {
			entries = concept.Units["USD/shares"]
		}

		values := map[string]float64{}
		for _, e := range entries {
			if e.Form != form || e.End == "" || e.Fy == nil || e.Val == nil {
				continue
			}
			key := strconv.Itoa(*e.Fy)
			if period == "quarterly" {
				key = e.End[:min(7, len(e.End))]
			}
			values[key] = *e.Val
		}
		if len(values) == 0 {
			continue
		}
		byLabel[cl.label] = values
		for k := range values {
			periods[k] = true
		}
	}

	if len(periods) == 0 {
		return model.EmptyFinancials()
	}

	columns := make([]string, 0, len(periods))
	for k := range periods {
		columns = append(columns, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(columns)))
	if len(columns) > maxFactColumns {
		columns = columns[:maxFactColumns]
	}

	data := model.FinancialData{Columns: columns, Rows: []model.FinancialRow{}}
	seen := map[string]bool{}
	for _, cl := range conceptLabels {
		values, ok := byLabel[cl.label]
		if !ok || seen[cl.label] {
			continue
		}
		seen[cl.label] = true

		row := model.FinancialRow{Label: cl.label, Values: make(map[string]*float64, len(columns))}
		for _, col := range columns {
			if v, ok := values[col]; ok {
				row.Values[col] = &v
			} else {
				row.Values[col] = nil
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}
