package config

import (
	"reflect"
	"strings"
	"testing"

	"stockplatform/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"config", "PORT", "ENVIRONMENT", "LOG_LEVEL", "FRONTEND_URLS", "RATE_LIMITER",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL", "LLM_PROVIDER",
		"PORTFOLIO_STORE", "PORTFOLIO_FILE", "SQLITE_PATH", "MONGO_URI", "MONGO_DATABASE",
		"REDIS_URL", "SEC_USER_AGENT", "OUTBOUND_RPS", "OUTBOUND_BURST", "CIK_REFRESH_CRON",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfigs_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("PORTFOLIO_STORE", "json")
	t.Setenv("PORT", "8080")
	t.Setenv("OUTBOUND_RPS", "10")
	t.Setenv("OUTBOUND_BURST", "20")
	t.Setenv("RATE_LIMITER", "false")
	t.Setenv("CIK_REFRESH_CRON", "@daily")
	t.Setenv("PORTFOLIO_FILE", "data/portfolio.json")

	cfg, err := LoadConfigs()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Config.Port != "8080" || cfg.Config.PortfolioFile != "data/portfolio.json" || cfg.Config.OutboundBurst != 20 {
		t.Errorf("config %+v", cfg.Config)
	}
	if key, setting := cfg.LLMKey(); key != "" || setting != "ANTHROPIC_API_KEY" {
		t.Errorf("LLMKey = %q, %q", key, setting)
	}
}

func TestLoadConfigs_BlankValuesKeepDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfigs()
	if err != nil {
		t.Fatal(err)
	}
	want := defaults()
	if !reflect.DeepEqual(cfg.Config, want) {
		t.Errorf("config = %+v, want %+v", cfg.Config, want)
	}

	// A blank variable must not clobber a value from the JSON document.
	t.Setenv("config", `{"port":"9000","outboundBurst":3}`)
	t.Setenv("PORT", "  ")
	cfg, err = LoadConfigs()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Config.Port != "9000" || cfg.Config.OutboundBurst != 3 || cfg.Config.OutboundRPS != 10 {
		t.Errorf("config = %+v", cfg.Config)
	}
}

func TestLoadConfigs_JSONThenEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("config", `{"port":"9000","frontendUrls":["http://a"],"openaiApiKey":"sk-json","llmProvider":"openai","portfolioStore":"sqlite","outboundRps":5,"outboundBurst":5}`)
	t.Setenv("PORT", "9100")
	t.Setenv("FRONTEND_URLS", "http://localhost:5173, http://localhost:3000,")
	t.Setenv("RATE_LIMITER", "true")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("PORTFOLIO_STORE", "sqlite")
	t.Setenv("OUTBOUND_RPS", "2.5")
	t.Setenv("OUTBOUND_BURST", "4")

	cfg, err := LoadConfigs()
	if err != nil {
		t.Fatal(err)
	}
	c := cfg.Config
	if c.Port != "9100" {
		t.Errorf("Port = %q, env should win over JSON", c.Port)
	}
	if !reflect.DeepEqual(c.FrontendUrls, []string{"http://localhost:5173", "http://localhost:3000"}) {
		t.Errorf("FrontendUrls = %v", c.FrontendUrls)
	}
	if !c.RateLimiter || c.OutboundRPS != 2.5 || c.OutboundBurst != 4 {
		t.Errorf("limits %+v", c)
	}
	if c.LLMProvider != ProviderOpenAI {
		t.Errorf("LLMProvider = %q", c.LLMProvider)
	}
	if key, setting := cfg.LLMKey(); key != "sk-json" || setting != "OPENAI_API_KEY" {
		t.Errorf("LLMKey = %q, %q", key, setting)
	}
}

func TestLoadConfigs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad json", map[string]string{"config": "{"}, "config JSON"},
		{"bad provider", map[string]string{"LLM_PROVIDER": "cohere", "PORTFOLIO_STORE": "json"}, "LLM_PROVIDER"},
		{"mongo without uri", map[string]string{"LLM_PROVIDER": "anthropic", "PORTFOLIO_STORE": "mongo"}, "MONGO_URI"},
		{"bad store", map[string]string{"LLM_PROVIDER": "anthropic", "PORTFOLIO_STORE": "csv"}, "PORTFOLIO_STORE"},
		{"bad bool", map[string]string{"RATE_LIMITER": "sometimes"}, "RATE_LIMITER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfigs()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestConfigManager(t *testing.T) {
	cm := NewConfigManager(&model.RuntimeConfig{RateLimiter: false})
	cm.UpdateConfig(&model.RuntimeConfig{RateLimiter: true, FrontendUrls: []string{"http://x"}})
	if got := cm.GetConfig(); !got.RateLimiter || got.FrontendUrls[0] != "http://x" {
		t.Errorf("GetConfig = %+v", got)
	}
}

func TestConfigManagerReload(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("PORTFOLIO_STORE", "json")
	t.Setenv("RATE_LIMITER", "true")
	t.Setenv("FRONTEND_URLS", "http://app.test")

	cm := NewConfigManager(&model.RuntimeConfig{})
	got, err := cm.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if !got.RateLimiter || !reflect.DeepEqual(got.FrontendUrls, []string{"http://app.test"}) {
		t.Errorf("reloaded = %+v", got)
	}
	if cm.GetConfig() != got {
		t.Error("manager does not serve the reloaded config")
	}

	t.Setenv("RATE_LIMITER", "sometimes")
	if _, err := cm.Reload(); err == nil {
		t.Fatal("expected parse error")
	}
	if !cm.GetConfig().RateLimiter {
		t.Error("failed reload replaced the config")
	}
}
