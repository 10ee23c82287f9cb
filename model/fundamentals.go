package model

// --- FUNDAMENTALS ---

// CompanyOverview nullable ratios stay nil when the provider omits them.
type CompanyOverview struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	Sector           string   `json:"sector"`
	Industry         string   `json:"industry"`
	Description      string   `json:"description"`
	MarketCap        int64    `json:"marketCap"`
	PE               *float64 `json:"pe"`
	ForwardPE        *float64 `json:"forwardPe"`
	EPS              *float64 `json:"eps"`
	DividendYield    *float64 `json:"dividendYield"`
	Beta             *float64 `json:"beta"`
	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow"`
	AvgVolume        int64    `json:"avgVolume"`
	Price            float64  `json:"price"`
}

type FinancialRow struct {
	Label  string              `json:"label"`
	Values map[string]*float64 `json:"values"`
}

// FinancialData is a statement laid out as columns (periods, newest first)
// and labelled rows.
type FinancialData struct {
	Columns []string       `json:"columns"`
	Rows    []FinancialRow `json:"rows"`
}

func EmptyFinancials() FinancialData {
	return FinancialData{Columns: []string{}, Rows: []FinancialRow{}}
}

type EarningsEntry struct {
	Date        string   `json:"date"`
	EpsActual   *float64 `json:"epsActual"`
	EpsEstimate *float64 `json:"epsEstimate"`
	Surprise    *float64 `json:"surprise"`
}

type RecommendationSummary struct {
	StrongBuy  int `json:"strongBuy"`
	Buy        int `json:"buy"`
	Hold       int `json:"hold"`
	Sell       int `json:"sell"`
	StrongSell int `json:"strongSell"`
}

type RecommendationEntry struct {
	Date      string `json:"date"`
	Firm      string `json:"firm"`
	ToGrade   string `json:"toGrade"`
	FromGrade string `json:"fromGrade"`
	Action    string `json:"action"`
}

type Recommendations struct {
	Summary RecommendationSummary `json:"summary"`
	Recent  []RecommendationEntry `json:"recent"`
}

type SecFiling struct {
	Form        string `json:"form"`
	Date        string `json:"date"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type SecFilings struct {
	Filings []SecFiling `json:"filings"`
}

// --- Query Structs ---

type FinancialsQuery struct {
	Statement string `form:"statement"`
	Period    string `form:"period"`
}
