package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"stockplatform/model"

	"github.com/joho/godotenv"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"

	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

type SystemConfigs struct {
	Config *model.EnvConfig
}

// LoadConfigs reads .env (if present), then the optional JSON document in
// the `config` variable, then individual variables, which win.
func LoadConfigs() (*SystemConfigs, error) {
	godotenv.Load()

	envCfg := defaults()
	if rawJson := os.Getenv("config"); rawJson != "" {
		if err := json.Unmarshal([]byte(rawJson), envCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	if err := applyEnv(envCfg); err != nil {
		return nil, err
	}
	if err := validate(envCfg); err != nil {
		return nil, err
	}

	return &SystemConfigs{
		Config: envCfg,
	}, nil
}

func defaults() *model.EnvConfig {
	return &model.EnvConfig{
		Port:           "8080",
		Environment:    "development",
		LogLevel:       "info",
		LLMProvider:    ProviderAnthropic,
		PortfolioStore: StoreJSON,
		PortfolioFile:  "data/portfolio.json",
		SqlitePath:     "data/portfolio.db",
		MongoDatabase:  "stockplatform",
		OutboundRPS:    10,
		OutboundBurst:  20,
		CikRefreshCron: "@daily",
	}
}

func applyEnv(cfg *model.EnvConfig) error {
	strs := map[string]*string{
		"PORT":              &cfg.Port,
		"ENVIRONMENT":       &cfg.Environment,
		"LOG_LEVEL":         &cfg.LogLevel,
		"ANTHROPIC_API_KEY": &cfg.AnthropicApiKey,
		"ANTHROPIC_MODEL":   &cfg.AnthropicModel,
		"OPENAI_API_KEY":    &cfg.OpenAIApiKey,
		"OPENAI_MODEL":      &cfg.OpenAIModel,
		"LLM_PROVIDER":      &cfg.LLMProvider,
		"PORTFOLIO_STORE":   &cfg.PortfolioStore,
		"PORTFOLIO_FILE":    &cfg.PortfolioFile,
		"SQLITE_PATH":       &cfg.SqlitePath,
		"MONGO_URI":         &cfg.MongoUri,
		"MONGO_DATABASE":    &cfg.MongoDatabase,
		"REDIS_URL":         &cfg.RedisUrl,
		"SEC_USER_AGENT":    &cfg.SecUserAgent,
		"CIK_REFRESH_CRON":  &cfg.CikRefreshCron,
	}
	for name, dst := range strs {
		if v, ok := lookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := lookupEnv("FRONTEND_URLS"); ok {
		cfg.FrontendUrls = splitList(v)
	}
	if v, ok := lookupEnv("RATE_LIMITER"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMITER: %w", err)
		}
		cfg.RateLimiter = b
	}
	if v, ok := lookupEnv("OUTBOUND_RPS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("OUTBOUND_RPS: %w", err)
		}
		cfg.OutboundRPS = f
	}
	if v, ok := lookupEnv("OUTBOUND_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OUTBOUND_BURST: %w", err)
		}
		cfg.OutboundBurst = n
	}
	return nil
}

// lookupEnv treats a variable that is set but blank, as in `RATE_LIMITER=`
// lines of .env files, as unset.
func lookupEnv(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

func validate(cfg *model.EnvConfig) error {
	cfg.LLMProvider = strings.ToLower(cfg.LLMProvider)
	cfg.PortfolioStore = strings.ToLower(cfg.PortfolioStore)

	switch cfg.LLMProvider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderAnthropic, ProviderOpenAI, cfg.LLMProvider)
	}

	switch cfg.PortfolioStore {
	case StoreJSON, StoreSQLite:
	case StoreMongo:
		if cfg.MongoUri == "" {
			return fmt.Errorf("PORTFOLIO_STORE=mongo requires MONGO_URI")
		}
	default:
		return fmt.Errorf("PORTFOLIO_STORE must be one of json, sqlite, mongo; got %q", cfg.PortfolioStore)
	}
	return nil
}

// LLMKey returns the API key of the selected provider and the name of the
// variable it comes from, for error messages.
func (s *SystemConfigs) LLMKey() (key, setting string) {
	if s.Config.LLMProvider == ProviderOpenAI {
		return s.Config.OpenAIApiKey, "OPENAI_API_KEY"
	}
	return s.Config.AnthropicApiKey, "ANTHROPIC_API_KEY"
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type ConfigManager struct {
	value atomic.Value
}

func NewConfigManager(initial *model.RuntimeConfig) *ConfigManager {
	cm := &ConfigManager{}
	cm.value.Store(initial)
	return cm
}

func (cm *ConfigManager) GetConfig() *model.RuntimeConfig {
	return cm.value.Load().(*model.RuntimeConfig)
}

func (cm *ConfigManager) UpdateConfig(newCfg *model.RuntimeConfig) {
	cm.value.Store(newCfg)
}

// Reload re-reads .env and the environment and swaps in the runtime part.
// Settings that need new connections (stores, keys) still require a restart.
func (cm *ConfigManager) Reload() (*model.RuntimeConfig, error) {
	sysConfigs, err := LoadConfigs()
	if err != nil {
		return nil, err
	}
	runtimeCfg := sysConfigs.Config.Runtime()
	cm.UpdateConfig(runtimeCfg)
	return runtimeCfg, nil
}
