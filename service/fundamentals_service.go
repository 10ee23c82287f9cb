package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"stockplatform/cache"
	"stockplatform/customerrors"
	"stockplatform/model"
	"stockplatform/util"
)

const (
	overviewTTL = 300 * time.Second

	maxRecentRatings = 10
)

type statementField struct {
	key   string
	label string
}

type statementSpec struct {
	annualModule    string
	quarterlyModule string
	listKey         string
	fields          []statementField
}

var statements = map[string]statementSpec{
	"income": {
		annualModule:    "incomeStatementHistory",
		quarterlyModule: "incomeStatementHistoryQuarterly",
		listKey:         "incomeStatementHistory",
		fields: []statementField{
			{"totalRevenue", "Total Revenue"},
			{"costOfRevenue", "Cost Of Revenue"},
			{"grossProfit", "Gross Profit"},
			{"researchDevelopment", "Research Development"},
			{"sellingGeneralAdministrative", "Selling General Administrative"},
			{"totalOperatingExpenses", "Total Operating Expenses"},
			{"operatingIncome", "Operating Income"},
			{"interestExpense", "Interest Expense"},
			{"incomeBeforeTax", "Income Before Tax"},
			{"incomeTaxExpense", "Income Tax Expense"},
			{"ebit", "EBIT"},
			{"netIncome", "Net Income"},
			{"netIncomeApplicableToCommonShares", "Net Income Applicable To Common Shares"},
		},
	},
	"balance": {
		annualModule:    "balanceSheetHistory",
		quarterlyModule: "balanceSheetHistoryQuarterly",
		listKey:         "balanceSheetStatements",
		fields: []statementField{
			{"cash", "Cash"},
			{"shortTermInvestments", "Short Term Investments"},
			{"netReceivables", "Net Receivables"},
			{"inventory", "Inventory"},
			{"totalCurrentAssets", "Total Current Assets"},
			{"propertyPlantEquipment", "Property Plant Equipment"},
			{"goodWill", "Good Will"},
			{"totalAssets", "Total Assets"},
			{"accountsPayable", "Accounts Payable"},
			{"totalCurrentLiabilities", "Total Current Liabilities"},
			{"longTermDebt", "Long Term Debt"},
			{"totalLiab", "Total Liabilities"},
			{"totalStockholderEquity", "Total Stockholder Equity"},
		},
	},
	"cashflow": {
		annualModule:    "cashflowStatementHistory",
		quarterlyModule: "cashflowStatementHistoryQuarterly",
		listKey:         "cashflowStatements",
		fields: []statementField{
			{"netIncome", "Net Income"},
			{"depreciation", "Depreciation"},
			{"changeToNetincome", "Change To Net Income"},
			{"changeToAccountReceivables", "Change To Account Receivables"},
			{"changeToInventory", "Change To Inventory"},
			{"totalCashFromOperatingActivities", "Total Cash From Operating Activities"},
			{"capitalExpenditures", "Capital Expenditures"},
			{"totalCashflowsFromInvestingActivities", "Total Cash From Investing Activities"},
			{"dividendsPaid", "Dividends Paid"},
			{"repurchaseOfStock", "Repurchase Of Stock"},
			{"totalCashFromFinancingActivities", "Total Cash From Financing Activities"},
			{"changeInCash", "Change In Cash"},
		},
	},
}

// ResolvePeriod accepts "annual" and "quarterly"; blank means annual.
func ResolvePeriod(period string) (string, error) {
	switch period {
	case "", "annual":
		return "annual", nil
	case "quarterly":
		return "quarterly", nil
	}
	return "", fmt.Errorf("period %q: %w", period, customerrors.ErrInvalidPeriod)
}

type FundamentalsService interface {
	Overview(ctx context.Context, symbol string) (*model.CompanyOverview, error)
	Financials(ctx context.Context, symbol, statement, period string) (*model.FinancialData, error)
	Earnings(ctx context.Context, symbol string) Result[[]model.EarningsEntry]
	Recommendations(ctx context.Context, symbol string) Result[model.Recommendations]
}

type FundamentalsServiceImpl struct {
	summaries SummarySource
	store     cache.Store
}

func NewFundamentalsService(summaries SummarySource, store cache.Store) FundamentalsService {
	return &FundamentalsServiceImpl{
		summaries: summaries,
		store:     store,
	}
}

func (s *FundamentalsServiceImpl) Overview(ctx context.Context, symbol string) (*model.CompanyOverview, error) {
	symbol = util.NormalizeTicker(symbol)
	key := "overview:" + symbol
	if cached, ok := cache.Lookup[model.CompanyOverview](s.store, key, overviewTTL); ok {
		return &cached, nil
	}

	summary, err := s.summaries.GetQuoteSummary(ctx, symbol, "price", "assetProfile", "summaryDetail", "defaultKeyStatistics")
	if err != nil {
		return nil, err
	}

	var (
		price   model.SummaryPrice
		profile model.SummaryProfile
		detail  model.SummaryDetail
		stats   model.KeyStatistics
	)
	decodeModule(summary, "price", &price)
	decodeModule(summary, "assetProfile", &profile)
	decodeModule(summary, "summaryDetail", &detail)
	decodeModule(summary, "defaultKeyStatistics", &stats)

	if price.RegularMarketPrice.Raw == nil {
		return nil, fmt.Errorf("overview %s: %w", symbol, customerrors.ErrSymbolNotFound)
	}

	marketCap := intOf(detail.MarketCap)
	if marketCap == 0 {
		marketCap = intOf(price.MarketCap)
	}

	overview := model.CompanyOverview{
		Symbol:           symbol,
		Name:             price.ShortName,
		Sector:           stringOr(profile.Sector, "N/A"),
		Industry:         stringOr(profile.Industry, "N/A"),
		Description:      profile.LongBusinessSummary,
		MarketCap:        marketCap,
		PE:               detail.TrailingPE.Raw,
		ForwardPE:        detail.ForwardPE.Raw,
		EPS:              stats.TrailingEps.Raw,
		DividendYield:    detail.DividendYield.Raw,
		Beta:             detail.Beta.Raw,
		FiftyTwoWeekHigh: detail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekLow:  detail.FiftyTwoWeekLow.Raw,
		AvgVolume:        intOf(detail.AverageVolume),
		Price:            *price.RegularMarketPrice.Raw,
	}
	s.store.Set(key, overview)
	return &overview, nil
}

// Financials lays a statement out with one column per reporting period
// (newest first) and one row per line item present in any period.
func (s *FundamentalsServiceImpl) Financials(ctx context.Context, symbol, statement, period string) (*model.FinancialData, error) {
	spec, ok := statements[statement]
	if !ok {
		return nil, customerrors.ErrInvalidStatement
	}
	period, err := ResolvePeriod(period)
	if err != nil {
		return nil, err
	}

	module := spec.annualModule
	if period == "quarterly" {
		module = spec.quarterlyModule
	}

	symbol = util.NormalizeTicker(symbol)
	summary, err := s.summaries.GetQuoteSummary(ctx, symbol, module)
	if errors.Is(err, customerrors.ErrSymbolNotFound) {
		empty := model.EmptyFinancials()
		return &empty, nil
	}
	if err != nil {
		return nil, err
	}

	periods := statementPeriods(summary, module, spec.listKey)
	if len(periods) == 0 {
		empty := model.EmptyFinancials()
		return &empty, nil
	}
	return buildStatement(periods, spec.fields), nil
}

// statementPeriods digs module.listKey out of the summary. The module map
// also carries scalar bookkeeping keys such as maxAge, so it is walked by
// hand rather than decoded as a whole.
func statementPeriods(summary map[string]any, module, listKey string) []map[string]any {
	body, ok := summary[module].(map[string]any)
	if !ok {
		return nil
	}
	list, ok := body[listKey].([]any)
	if !ok {
		return nil
	}
	periods := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if p, ok := item.(map[string]any); ok {
			periods = append(periods, p)
		}
	}
	return periods
}

func buildStatement(periods []map[string]any, fields []statementField) *model.FinancialData {
	data := model.EmptyFinancials()
	for _, p := range periods {
		end, _ := yahooValue(p["endDate"])
		data.Columns = append(data.Columns, end.Fmt)
	}

	for _, f := range fields {
		present := false
		values := make(map[string]*float64, len(periods))
		for i, p := range periods {
			v, ok := yahooValue(p[f.key])
			if ok {
				present = true
			}
			values[data.Columns[i]] = v.Raw
		}
		if present {
			data.Rows = append(data.Rows, model.FinancialRow{Label: f.label, Values: values})
		}
	}
	return &data
}

func (s *FundamentalsServiceImpl) Earnings(ctx context.Context, symbol string) Result[[]model.EarningsEntry] {
	symbol = util.NormalizeTicker(symbol)
	entries := []model.EarningsEntry{}

	summary, err := s.summaries.GetQuoteSummary(ctx, symbol, "earningsHistory")
	if errors.Is(err, customerrors.ErrSymbolNotFound) {
		return emptyResult(entries)
	}
	if err != nil {
		return failedResult(entries, err, "earnings", symbol)
	}

	var history model.EarningsHistory
	decodeModule(summary, "earningsHistory", &history)
	for _, h := range history.History {
		entries = append(entries, model.EarningsEntry{
			Date:        h.Quarter.Fmt,
			EpsActual:   h.EpsActual.Raw,
			EpsEstimate: h.EpsEstimate.Raw,
			Surprise:    h.SurprisePercent.Raw,
		})
	}
	if len(entries) == 0 {
		return emptyResult(entries)
	}
	return okResult(entries)
}

// Recommendations reports the current analyst consensus and the ten most
// recent rating changes, oldest first.
func (s *FundamentalsServiceImpl) Recommendations(ctx context.Context, symbol string) Result[model.Recommendations] {
	symbol = util.NormalizeTicker(symbol)
	recs := model.Recommendations{Recent: []model.RecommendationEntry{}}

	summary, err := s.summaries.GetQuoteSummary(ctx, symbol, "recommendationTrend", "upgradeDowngradeHistory")
	if errors.Is(err, customerrors.ErrSymbolNotFound) {
		return emptyResult(recs)
	}
	if err != nil {
		return failedResult(recs, err, "recommendations", symbol)
	}

	var trend model.RecommendationTrend
	hasTrend := decodeModule(summary, "recommendationTrend", &trend) && len(trend.Trend) > 0
	if hasTrend {
		latest := trend.Trend[0]
		recs.Summary = model.RecommendationSummary{
			StrongBuy:  latest.StrongBuy,
			Buy:        latest.Buy,
			Hold:       latest.Hold,
			Sell:       latest.Sell,
			StrongSell: latest.StrongSell,
		}
	}

	var history model.UpgradeDowngradeHistory
	decodeModule(summary, "upgradeDowngradeHistory", &history)
	changes := history.History
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].EpochGradeDate < changes[j].EpochGradeDate
	})
	if len(changes) > maxRecentRatings {
		changes = changes[len(changes)-maxRecentRatings:]
	}
	for _, c := range changes {
		recs.Recent = append(recs.Recent, model.RecommendationEntry{
			Date:      util.EpochDate(c.EpochGradeDate),
			Firm:      c.Firm,
			ToGrade:   c.ToGrade,
			FromGrade: c.FromGrade,
			Action:    c.Action,
		})
	}

	if !hasTrend && len(recs.Recent) == 0 {
		return emptyResult(recs)
	}
	return okResult(recs)
}
