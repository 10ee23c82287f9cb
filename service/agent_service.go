package service

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"stockplatform/client"
	"stockplatform/customerrors"
	"stockplatform/model"
	"stockplatform/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed personas.yaml
var personasYAML []byte

const (
	askSystemPrompt = "You are Engelus, the AI stock analyst assistant for EngeluStocks. " +
		"You provide concise, insightful analysis of stocks based on the live quote data provided. " +
		"Be helpful, professional, and data-driven. Keep responses focused and under 200 words. " +
		"Reply in the same language the user writes in — if they write in Hebrew, respond in Hebrew; " +
		"if they write in English, respond in English."

	askMaxTokens       = 1024
	personaMaxTokens   = 512
	technicalMaxTokens = 1024
	analystConcurrency = 3
)

// LoadPersonas parses the embedded analyst catalogue.
func LoadPersonas() ([]model.Persona, error) {
	var personas []model.Persona
	if err := yaml.Unmarshal(personasYAML, &personas); err != nil {
		return nil, fmt.Errorf("failed to parse personas: %w", err)
	}
	return personas, nil
}

type AgentService interface {
	Ask(ctx context.Context, req model.AskRequest) (*model.ChatMessage, error)
	Analyze(ctx context.Context, req model.AnalyzeRequest) ([]model.AnalystReport, error)
	Personas() []model.Persona
}

type AgentServiceImpl struct {
	completer    client.Completer
	market       MarketService
	fundamentals FundamentalsService
	personas     []model.Persona
	byKey        map[string]model.Persona
	newID        func() string
	now          func() time.Time
	logger       zerolog.Logger
}

// NewAgentService builds the agent. A nil completer means no LLM key was
// configured; every call then fails with ErrMissingAPIKey.
func NewAgentService(completer client.Completer, market MarketService, fundamentals FundamentalsService, personas []model.Persona) AgentService {
	byKey := make(map[string]model.Persona, len(personas))
	for _, p := range personas {
		byKey[p.Key] = p
	}
	return &AgentServiceImpl{
		completer:    completer,
		market:       market,
		fundamentals: fundamentals,
		personas:     personas,
		byKey:        byKey,
		newID:        uuid.NewString,
		now:          time.Now,
		logger:       log.With().Str("component", "agent_service").Logger(),
	}
}

func (s *AgentServiceImpl) Personas() []model.Persona {
	return s.personas
}

func (s *AgentServiceImpl) Ask(ctx context.Context, req model.AskRequest) (*model.ChatMessage, error) {
	if s.completer == nil {
		return nil, customerrors.ErrMissingAPIKey
	}

	system := askSystemPrompt + "\n\nCurrent market data:\n" + s.quoteContext(ctx, req.Ticker)
	content, err := s.completer.Complete(ctx, client.CompletionRequest{
		System:    system,
		Prompt:    req.Message,
		MaxTokens: askMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &model.ChatMessage{
		ID:        s.newID(),
		Role:      "agent",
		Content:   content,
		Timestamp: s.now().UnixMilli(),
	}, nil
}

// Analyze asks each requested persona for a verdict. Unknown persona keys
// are skipped. Replies keep the request order; if any persona fails the
// whole batch fails.
func (s *AgentServiceImpl) Analyze(ctx context.Context, req model.AnalyzeRequest) ([]model.AnalystReport, error) {
	if s.completer == nil {
		return nil, customerrors.ErrMissingAPIKey
	}

	keys := req.Analysts
	if len(keys) == 0 {
		for _, p := range s.personas {
			keys = append(keys, p.Key)
		}
	}

	selected := make([]model.Persona, 0, len(keys))
	technical := false
	for _, k := range keys {
		p, ok := s.byKey[k]
		if !ok {
			s.logger.Debug().Str("analyst", k).Msg("Skipping unknown analyst")
			continue
		}
		selected = append(selected, p)
		technical = technical || p.Technical
	}
	if len(selected) == 0 {
		return []model.AnalystReport{}, nil
	}

	ticker := util.NormalizeTicker(req.Ticker)
	dataContext := "Market Data:\n" + s.quoteContext(ctx, ticker) + "\n" + s.overviewContext(ctx, ticker)
	technicalContext := ""
	if technical {
		technicalContext = s.technicalContext(ctx, ticker)
	}

	return runBounded(ctx, len(selected), analystConcurrency, func(ctx context.Context, i int) (model.AnalystReport, error) {
		p := selected[i]
		promptCtx, maxTokens, wordLimit := dataContext, personaMaxTokens, "under 200 words"
		if p.Technical {
			promptCtx, maxTokens, wordLimit = dataContext+technicalContext, technicalMaxTokens, "under 400 words"
		}

		system := fmt.Sprintf("%s\n\n%s\n\nKeep your analysis concise (%s). Give a clear verdict: Buy, Hold, or Sell.", p.Prompt, promptCtx, wordLimit)
		content, err := s.completer.Complete(ctx, client.CompletionRequest{
			System:    system,
			Prompt:    fmt.Sprintf("Analyze %s for me.", ticker),
			MaxTokens: maxTokens,
		})
		if err != nil {
			return model.AnalystReport{}, fmt.Errorf("analyst %s: %w", p.Key, err)
		}
		return model.AnalystReport{
			Analyst:  p.Name,
			Style:    p.Style,
			Analysis: content,
		}, nil
	})
}

func (s *AgentServiceImpl) quoteContext(ctx context.Context, ticker string) string {
	quote, err := s.market.GetQuote(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", ticker).Msg("Quote unavailable for agent context")
		return fmt.Sprintf("Could not fetch live data for %s.", util.NormalizeTicker(ticker))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Live quote for %s:\n", quote.Symbol)
	fmt.Fprintf(&b, "  Price: $%s\n", num(quote.Price))
	fmt.Fprintf(&b, "  Change: %s (%s%%)\n", num(quote.Change), num(quote.ChangePercent))
	fmt.Fprintf(&b, "  Day High: $%s\n", num(quote.High))
	fmt.Fprintf(&b, "  Day Low: $%s\n", num(quote.Low))
	fmt.Fprintf(&b, "  Volume: %s\n", groupThousands(quote.Volume))
	return b.String()
}

func (s *AgentServiceImpl) overviewContext(ctx context.Context, ticker string) string {
	ov, err := s.fundamentals.Overview(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", ticker).Msg("Overview unavailable for agent context")
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", stringOr(ov.Name, ticker))
	fmt.Fprintf(&b, "Sector: %s\n", ov.Sector)
	fmt.Fprintf(&b, "Market Cap: $%s\n", groupThousands(ov.MarketCap))
	fmt.Fprintf(&b, "P/E: %s\n", optNum(ov.PE))
	fmt.Fprintf(&b, "EPS: %s\n", optNum(ov.EPS))
	fmt.Fprintf(&b, "52W High: $%s\n", optNum(ov.FiftyTwoWeekHigh))
	fmt.Fprintf(&b, "52W Low: $%s\n", optNum(ov.FiftyTwoWeekLow))
	return b.String()
}

// technicalContext summarises a year of daily bars: trailing moving
// averages, the 20 day range and the volume trend.
func (s *AgentServiceImpl) technicalContext(ctx context.Context, ticker string) string {
	series, err := s.market.GetBars(ctx, ticker, "1Y")
	if err != nil || len(series.Bars) == 0 {
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", ticker).Msg("Bars unavailable for technical context")
		}
		return ""
	}
	return describeTechnicals(series.Bars)
}

func describeTechnicals(bars []model.Bar) string {
	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = float64(b.Volume)
	}
	current := closes[len(closes)-1]

	var b strings.Builder
	b.WriteString("\nTechnical Data:\n")
	fmt.Fprintf(&b, "  Current Price: $%.2f\n", current)
	for _, p := range []int{20, 50} {
		if len(closes) >= p {
			sma := mean(closes[len(closes)-p:])
			fmt.Fprintf(&b, "  SMA %d: $%.2f (%s)\n", p, sma, aboveBelow(current, sma))
		}
	}
	if len(closes) >= 150 {
		sma := mean(closes[len(closes)-150:])
		diff := (current - sma) / sma * 100
		fmt.Fprintf(&b, "  SMA 150: $%.2f (%s by %.1f%%)\n", sma, aboveBelow(current, sma), math.Abs(diff))
	}

	recent := closes[max(0, len(closes)-20):]
	high, low := recent[0], recent[0]
	for _, c := range recent {
		high = math.Max(high, c)
		low = math.Min(low, c)
	}
	fmt.Fprintf(&b, "  20-Day High: $%.2f\n", high)
	fmt.Fprintf(&b, "  20-Day Low: $%.2f\n", low)

	avg20 := mean(volumes[max(0, len(volumes)-20):])
	avg50 := avg20
	if len(volumes) >= 50 {
		avg50 = mean(volumes[len(volumes)-50:])
	}
	fmt.Fprintf(&b, "  Avg Volume 20D: %s\n", groupThousands(int64(avg20)))
	fmt.Fprintf(&b, "  Avg Volume 50D: %s\n", groupThousands(int64(avg50)))

	ratio := 1.0
	if avg50 > 0 {
		ratio = avg20 / avg50
	}
	trend := "stable"
	if ratio > 1.1 {
		trend = "increasing"
	} else if ratio < 0.9 {
		trend = "decreasing"
	}
	fmt.Fprintf(&b, "  Volume Trend: %s\n", trend)
	return b.String()
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func aboveBelow(current, level float64) string {
	if current > level {
		return "above"
	}
	return "below"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optNum(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return num(*v)
}

// groupThousands renders n with comma separators, e.g. 1234567 as 1,234,567.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
