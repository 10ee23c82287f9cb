package model

// --- MARKET ---

// Bar is one OHLCV sample. Series are ordered by time ascending.
type Bar struct {
	Time   BarTime `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Quote is a point-in-time snapshot. Ext* fields are only set when the
// provider reports a pre-market or after-hours print.
type Quote struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name,omitempty"`
	Price            float64  `json:"price"`
	PreviousClose    float64  `json:"previousClose"`
	Change           float64  `json:"change"`
	ChangePercent    float64  `json:"changePercent"`
	High             float64  `json:"high"`
	Low              float64  `json:"low"`
	Volume           int64    `json:"volume"`
	ExtPrice         *float64 `json:"extPrice,omitempty"`
	ExtChange        *float64 `json:"extChange,omitempty"`
	ExtChangePercent *float64 `json:"extChangePercent,omitempty"`
	ExtLabel         *string  `json:"extLabel,omitempty"`
}

type OHLCResponse struct {
	Bars     []Bar  `json:"bars"`
	Interval string `json:"interval"`
}

// PriceSeries is a fetched chart along with the sampling it was requested with.
type PriceSeries struct {
	Symbol   string
	Range    YahooTimeRange
	Interval YahooInterval
	Intraday bool
	Bars     []Bar
}

type NewsItem struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt"`
	Thumbnail   string `json:"thumbnail"`
}

// --- Query Structs ---

type SymbolUri struct {
	Symbol string `uri:"symbol" binding:"required"`
}

type RangeQuery struct {
	Range      string `form:"range"`
	Indicators string `form:"indicators"`
}
