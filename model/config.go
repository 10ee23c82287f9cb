package model

// --- SYSTEM CONFIG ---

// EnvConfig holds process settings. It is decoded from the JSON `config`
// variable first and then overridden key by key from the environment.
type EnvConfig struct {
	Port            string   `json:"port"`
	Environment     string   `json:"environment"`
	LogLevel        string   `json:"logLevel"`
	FrontendUrls    []string `json:"frontendUrls"`
	RateLimiter     bool     `json:"rateLimiter"`
	AnthropicApiKey string   `json:"anthropicApiKey"`
	AnthropicModel  string   `json:"anthropicModel"`
	OpenAIApiKey    string   `json:"openaiApiKey"`
	OpenAIModel     string   `json:"openaiModel"`
	LLMProvider     string   `json:"llmProvider"`
	PortfolioStore  string   `json:"portfolioStore"`
	PortfolioFile   string   `json:"portfolioFile"`
	SqlitePath      string   `json:"sqlitePath"`
	MongoUri        string   `json:"mongoUri"`
	MongoDatabase   string   `json:"mongoDatabase"`
	RedisUrl        string   `json:"redisUrl"`
	SecUserAgent    string   `json:"secUserAgent"`
	OutboundRPS     float64  `json:"outboundRps"`
	OutboundBurst   int      `json:"outboundBurst"`
	CikRefreshCron  string   `json:"cikRefreshCron"`
}

func (c *EnvConfig) IsProduction() bool {
	return c.Environment == "production"
}

// RuntimeConfig is the part of the configuration that middleware reads on
// every request and that can be swapped without a restart.
type RuntimeConfig struct {
	FrontendUrls []string `json:"frontendUrls"`
	RateLimiter  bool     `json:"rateLimiter"`
}

func (c *EnvConfig) Runtime() *RuntimeConfig {
	return &RuntimeConfig{
		FrontendUrls: c.FrontendUrls,
		RateLimiter:  c.RateLimiter,
	}
}

// --- Huma Structs ---

type RuntimeConfigOutput struct {
	Body RuntimeConfig
}
