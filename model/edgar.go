package model

// --- SEC EDGAR wire types ---

// CompanyTicker is one value of www.sec.gov/files/company_tickers.json,
// which is an object keyed by row number.
type CompanyTicker struct {
	CikStr int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

type EdgarSubmissions struct {
	Cik     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// RecentFilings is column oriented: index i of every slice describes filing i.
type RecentFilings struct {
	AccessionNumber       []string `json:"accessionNumber"`
	FilingDate            []string `json:"filingDate"`
	Form                  []string `json:"form"`
	PrimaryDocument       []string `json:"primaryDocument"`
	PrimaryDocDescription []string `json:"primaryDocDescription"`
}

type EdgarCompanyFacts struct {
	Cik        int64                              `json:"cik"`
	EntityName string                             `json:"entityName"`
	Facts      map[string]map[string]EdgarConcept `json:"facts"`
}

type EdgarConcept struct {
	Label string                 `json:"label"`
	Units map[string][]EdgarFact `json:"units"`
}

type EdgarFact struct {
	End   string   `json:"end"`
	Val   *float64 `json:"val"`
	Fy    *int     `json:"fy"`
	Fp    string   `json:"fp"`
	Form  string   `json:"form"`
	Filed string   `json:"filed"`
}
