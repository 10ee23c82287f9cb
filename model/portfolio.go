package model

// --- PORTFOLIO ---

// Holding is the persisted position. Ticker is the natural key.
type Holding struct {
	Ticker   string  `bson:"_id" json:"ticker"`
	Shares   float64 `bson:"shares" json:"shares"`
	BuyPrice float64 `bson:"buyPrice" json:"buyPrice"`
	BuyDate  string  `bson:"buyDate" json:"buyDate"`
}

type HoldingRequest struct {
	Ticker   string  `json:"ticker,omitempty" example:"AAPL" doc:"Ignored on update; the path ticker wins"`
	Shares   float64 `json:"shares" example:"10"`
	BuyPrice float64 `json:"buyPrice" example:"150.25"`
	BuyDate  string  `json:"buyDate,omitempty" example:"2024-01-15"`
}

// EnrichedHolding is a Holding priced at the latest quote.
type EnrichedHolding struct {
	Ticker             string  `json:"ticker"`
	Shares             float64 `json:"shares"`
	BuyPrice           float64 `json:"buyPrice"`
	BuyDate            string  `json:"buyDate"`
	CurrentPrice       float64 `json:"currentPrice"`
	Value              float64 `json:"value"`
	Cost               float64 `json:"cost"`
	Gain               float64 `json:"gain"`
	GainPercent        float64 `json:"gainPercent"`
	DailyChange        float64 `json:"dailyChange"`
	DailyChangePercent float64 `json:"dailyChangePercent"`
}

type Portfolio struct {
	Holdings []EnrichedHolding `json:"holdings"`
}

type Allocation struct {
	Ticker  string  `json:"ticker"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

type PortfolioSummary struct {
	TotalValue       float64      `json:"totalValue"`
	TotalCost        float64      `json:"totalCost"`
	TotalGain        float64      `json:"totalGain"`
	TotalGainPercent float64      `json:"totalGainPercent"`
	DailyChange      float64      `json:"dailyChange"`
	Allocation       []Allocation `json:"allocation"`
}

// --- Huma Structs ---

type PortfolioOutput struct {
	Body Portfolio
}

type PortfolioSummaryOutput struct {
	Body PortfolioSummary
}

type HoldingOutput struct {
	Body EnrichedHolding
}

type AddHoldingInput struct {
	Body HoldingRequest
}

type UpdateHoldingInput struct {
	Ticker string `path:"ticker" example:"AAPL"`
	Body   HoldingRequest
}

type TickerInput struct {
	Ticker string `path:"ticker" example:"AAPL"`
}
