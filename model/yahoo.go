package model

type YahooTimeRange string

type YahooInterval string

const (
	Range1d  YahooTimeRange = "1d"
	Range5d  YahooTimeRange = "5d"
	Range1mo YahooTimeRange = "1mo"
	Range3mo YahooTimeRange = "3mo"
	Range6mo YahooTimeRange = "6mo"
	Range1y  YahooTimeRange = "1y"
	Range2y  YahooTimeRange = "2y"
	Range5y  YahooTimeRange = "5y"
	Range10y YahooTimeRange = "10y"
	RangeYtd YahooTimeRange = "ytd"
	RangeMax YahooTimeRange = "max"
)

const (
	Interval1m  YahooInterval = "1m"
	Interval2m  YahooInterval = "2m"
	Interval5m  YahooInterval = "5m"
	Interval15m YahooInterval = "15m"
	Interval30m YahooInterval = "30m"
	Interval60m YahooInterval = "60m"
	Interval90m YahooInterval = "90m"
	Interval1h  YahooInterval = "1h"
	Interval1d  YahooInterval = "1d"
	Interval1wk YahooInterval = "1wk"
	Interval1mo YahooInterval = "1mo"
)

// IsIntraday reports whether the interval samples more than once per session.
func (i YahooInterval) IsIntraday() bool {
	switch i {
	case Interval1m, Interval2m, Interval5m, Interval15m, Interval30m,
		Interval60m, Interval90m, Interval1h:
		return true
	}
	return false
}

// YahooChartResponse is the top-level container of /v8/finance/chart
type YahooChartResponse struct {
	Chart ChartData `json:"chart"`
}

type ChartData struct {
	Result []ChartResult `json:"result"`
	Error  *YahooError   `json:"error"`
}

type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ChartResult struct {
	Meta       ChartMeta       `json:"meta"`
	Timestamp  []int64         `json:"timestamp"`
	Indicators ChartIndicators `json:"indicators"`
}

type ChartMeta struct {
	Symbol               string  `json:"symbol"`
	Currency             string  `json:"currency"`
	ExchangeTimezoneName string  `json:"exchangeTimezoneName"`
	GmtOffset            int     `json:"gmtoffset"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
	DataGranularity      string  `json:"dataGranularity"`
}

type ChartIndicators struct {
	Quote []ChartQuote `json:"quote"`
}

// ChartQuote columns are nullable: Yahoo emits null for halted intervals.
type ChartQuote struct {
	Low    []*float64 `json:"low"`
	High   []*float64 `json:"high"`
	Open   []*float64 `json:"open"`
	Volume []*int64   `json:"volume"`
	Close  []*float64 `json:"close"`
}

// YahooQuoteResponse is the container of /v7/finance/quote
type YahooQuoteResponse struct {
	QuoteResponse struct {
		Result []YahooQuote `json:"result"`
		Error  *YahooError  `json:"error"`
	} `json:"quoteResponse"`
}

type YahooQuote struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  string   `json:"shortName"`
	MarketState                string   `json:"marketState"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	RegularMarketDayHigh       float64  `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64  `json:"regularMarketDayLow"`
	RegularMarketVolume        int64    `json:"regularMarketVolume"`
	PreMarketPrice             *float64 `json:"preMarketPrice"`
	PreMarketChange            *float64 `json:"preMarketChange"`
	PreMarketChangePercent     *float64 `json:"preMarketChangePercent"`
	PostMarketPrice            *float64 `json:"postMarketPrice"`
	PostMarketChange           *float64 `json:"postMarketChange"`
	PostMarketChangePercent    *float64 `json:"postMarketChangePercent"`
}

// YahooQuoteSummaryResponse is the container of /v10/finance/quoteSummary.
// Modules are kept raw; each service decodes only the modules it asked for.
type YahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]any `json:"result"`
		Error  *YahooError      `json:"error"`
	} `json:"quoteSummary"`
}

// YahooValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper.
type YahooValue struct {
	Raw *float64 `mapstructure:"raw" json:"raw"`
	Fmt string   `mapstructure:"fmt" json:"fmt"`
}

type YahooSearchResponse struct {
	News []YahooNews `json:"news"`
}

type YahooNews struct {
	UUID                string `json:"uuid"`
	Title               string `json:"title"`
	Publisher           string `json:"publisher"`
	Link                string `json:"link"`
	ProviderPublishTime int64  `json:"providerPublishTime"`
	Thumbnail           *struct {
		Resolutions []struct {
			URL    string `json:"url"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"resolutions"`
	} `json:"thumbnail"`
}

// --- quoteSummary modules (decoded with mapstructure) ---

type SummaryPrice struct {
	ShortName          string     `mapstructure:"shortName"`
	LongName           string     `mapstructure:"longName"`
	RegularMarketPrice YahooValue `mapstructure:"regularMarketPrice"`
	MarketCap          YahooValue `mapstructure:"marketCap"`
}

type SummaryProfile struct {
	Sector              string `mapstructure:"sector"`
	Industry            string `mapstructure:"industry"`
	LongBusinessSummary string `mapstructure:"longBusinessSummary"`
}

type SummaryDetail struct {
	TrailingPE       YahooValue `mapstructure:"trailingPE"`
	ForwardPE        YahooValue `mapstructure:"forwardPE"`
	DividendYield    YahooValue `mapstructure:"dividendYield"`
	Beta             YahooValue `mapstructure:"beta"`
	FiftyTwoWeekHigh YahooValue `mapstructure:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  YahooValue `mapstructure:"fiftyTwoWeekLow"`
	AverageVolume    YahooValue `mapstructure:"averageVolume"`
	MarketCap        YahooValue `mapstructure:"marketCap"`
}

type KeyStatistics struct {
	TrailingEps YahooValue `mapstructure:"trailingEps"`
}

type EarningsHistory struct {
	History []struct {
		Quarter         YahooValue `mapstructure:"quarter"`
		EpsActual       YahooValue `mapstructure:"epsActual"`
		EpsEstimate     YahooValue `mapstructure:"epsEstimate"`
		SurprisePercent YahooValue `mapstructure:"surprisePercent"`
	} `mapstructure:"history"`
}

type RecommendationTrend struct {
	Trend []struct {
		Period     string `mapstructure:"period"`
		StrongBuy  int    `mapstructure:"strongBuy"`
		Buy        int    `mapstructure:"buy"`
		Hold       int    `mapstructure:"hold"`
		Sell       int    `mapstructure:"sell"`
		StrongSell int    `mapstructure:"strongSell"`
	} `mapstructure:"trend"`
}

type GradeChange struct {
	EpochGradeDate int64  `mapstructure:"epochGradeDate"`
	Firm           string `mapstructure:"firm"`
	ToGrade        string `mapstructure:"toGrade"`
	FromGrade      string `mapstructure:"fromGrade"`
	Action         string `mapstructure:"action"`
}

type UpgradeDowngradeHistory struct {
	History []GradeChange `mapstructure:"history"`
}
