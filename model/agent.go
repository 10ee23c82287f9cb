package model

// --- AGENT ---

type AskRequest struct {
	Message string `json:"message" example:"Is AAPL overbought?"`
	Ticker  string `json:"ticker" example:"AAPL"`
}

type AnalyzeRequest struct {
	Ticker   string   `json:"ticker" example:"AAPL"`
	Analysts []string `json:"analysts,omitempty" example:"buffett,micha"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type AnalystReport struct {
	Analyst  string `json:"analyst"`
	Style    string `json:"style"`
	Analysis string `json:"analysis"`
}

// Persona is one entry of the analyst catalogue. Technical personas receive
// the moving-average and volume context and a larger reply budget.
type Persona struct {
	Key       string `yaml:"key"`
	Name      string `yaml:"name"`
	Style     string `yaml:"style"`
	Prompt    string `yaml:"prompt"`
	Technical bool   `yaml:"technical"`
}

// --- Huma Structs ---

type AskInput struct {
	Body AskRequest
}

type ChatOutput struct {
	Body ChatMessage
}

type AnalyzeInput struct {
	Body AnalyzeRequest
}

type AnalyzeOutput struct {
	Body []AnalystReport
}

type AnalystInfo struct {
	Key   string `json:"key" example:"buffett"`
	Name  string `json:"name" example:"Warren Buffett"`
	Style string `json:"style"`
}

type AnalystsOutput struct {
	Body []AnalystInfo
}
