package service

import (
	"context"
	"sync"

	"stockplatform/customerrors"
	"stockplatform/model"
	"stockplatform/repository"
	"stockplatform/util"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// enrichConcurrency bounds the quote calls made while pricing a portfolio.
const enrichConcurrency = 4

type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (*model.Quote, error)
}

type PortfolioService interface {
	List(ctx context.Context) (*model.Portfolio, error)
	Summary(ctx context.Context) (*model.PortfolioSummary, error)
	Get(ctx context.Context, ticker string) (*model.EnrichedHolding, error)
	Add(ctx context.Context, req model.HoldingRequest) error
	Update(ctx context.Context, ticker string, req model.HoldingRequest) error
	Delete(ctx context.Context, ticker string) error
}

// PortfolioServiceImpl serialises every load-modify-save cycle on mu.
// Pricing happens after the lock is released.
type PortfolioServiceImpl struct {
	repo   repository.HoldingRepository
	quotes QuoteProvider
	mu     sync.Mutex
	logger zerolog.Logger
}

func NewPortfolioService(repo repository.HoldingRepository, quotes QuoteProvider) PortfolioService {
	return &PortfolioServiceImpl{
		repo:   repo,
		quotes: quotes,
		logger: log.With().Str("component", "portfolio_service").Logger(),
	}
}

func (s *PortfolioServiceImpl) load(ctx context.Context) ([]model.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Load(ctx)
}

func (s *PortfolioServiceImpl) List(ctx context.Context) (*model.Portfolio, error) {
	holdings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	enriched, err := s.enrichAll(ctx, holdings)
	if err != nil {
		return nil, err
	}
	return &model.Portfolio{Holdings: enriched}, nil
}

func (s *PortfolioServiceImpl) Get(ctx context.Context, ticker string) (*model.EnrichedHolding, error) {
	ticker = util.NormalizeTicker(ticker)
	holdings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(holdings, ticker)
	if idx < 0 {
		return nil, notFound(ticker)
	}
	enriched := s.enrich(ctx, holdings[idx])
	return &enriched, nil
}

func (s *PortfolioServiceImpl) Summary(ctx context.Context) (*model.PortfolioSummary, error) {
	portfolio, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(portfolio.Holdings), nil
}

func summarize(holdings []model.EnrichedHolding) *model.PortfolioSummary {
	totalValue := decimal.Zero
	totalCost := decimal.Zero
	dailyChange := decimal.Zero
	for _, h := range holdings {
		totalValue = totalValue.Add(decimal.NewFromFloat(h.Value))
		totalCost = totalCost.Add(decimal.NewFromFloat(h.Cost))
		dailyChange = dailyChange.Add(decimal.NewFromFloat(h.DailyChange).Mul(decimal.NewFromFloat(h.Shares)))
	}
	totalGain := totalValue.Sub(totalCost).Round(2)

	allocation := make([]model.Allocation, 0, len(holdings))
	for _, h := range holdings {
		allocation = append(allocation, model.Allocation{
			Ticker:  h.Ticker,
			Value:   h.Value,
			Percent: util.Percent(decimal.NewFromFloat(h.Value), totalValue),
		})
	}

	return &model.PortfolioSummary{
		TotalValue:       totalValue.Round(2).InexactFloat64(),
		TotalCost:        totalCost.Round(2).InexactFloat64(),
		TotalGain:        totalGain.InexactFloat64(),
		TotalGainPercent: util.Percent(totalGain, totalCost),
		DailyChange:      dailyChange.Round(2).InexactFloat64(),
		Allocation:       allocation,
	}
}

func (s *PortfolioServiceImpl) Add(ctx context.Context, req model.HoldingRequest) error {
	ticker := util.NormalizeTicker(req.Ticker)
	if ticker == "" {
		return customerrors.WithDetail(customerrors.ErrInvalidRequest, "ticker is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	holdings, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if indexOf(holdings, ticker) >= 0 {
		return customerrors.WithDetail(customerrors.ErrHoldingExists, "%s already in portfolio. Use PUT to update.", ticker)
	}

	holdings = append(holdings, model.Holding{
		Ticker:   ticker,
		Shares:   req.Shares,
		BuyPrice: req.BuyPrice,
		BuyDate:  req.BuyDate,
	})
	if err := s.repo.Save(ctx, holdings); err != nil {
		return err
	}
	s.logger.Info().Str("ticker", ticker).Msg("Holding added")
	return nil
}

// Update overwrites shares, buy price and buy date. The ticker in req is
// ignored.
func (s *PortfolioServiceImpl) Update(ctx context.Context, ticker string, req model.HoldingRequest) error {
	ticker = util.NormalizeTicker(ticker)

	s.mu.Lock()
	defer s.mu.Unlock()

	holdings, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(holdings, ticker)
	if idx < 0 {
		return notFound(ticker)
	}

	holdings[idx].Shares = req.Shares
	holdings[idx].BuyPrice = req.BuyPrice
	holdings[idx].BuyDate = req.BuyDate
	return s.repo.Save(ctx, holdings)
}

func (s *PortfolioServiceImpl) Delete(ctx context.Context, ticker string) error {
	ticker = util.NormalizeTicker(ticker)

	s.mu.Lock()
	defer s.mu.Unlock()

	holdings, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(holdings, ticker)
	if idx < 0 {
		return notFound(ticker)
	}

	holdings = append(holdings[:idx], holdings[idx+1:]...)
	if err := s.repo.Save(ctx, holdings); err != nil {
		return err
	}
	s.logger.Info().Str("ticker", ticker).Msg("Holding removed")
	return nil
}

func (s *PortfolioServiceImpl) enrichAll(ctx context.Context, holdings []model.Holding) ([]model.EnrichedHolding, error) {
	return runBounded(ctx, len(holdings), enrichConcurrency, func(ctx context.Context, i int) (model.EnrichedHolding, error) {
		return s.enrich(ctx, holdings[i]), nil
	})
}

// enrich prices a holding. A failed quote prices it at zero rather than
// failing the whole portfolio.
func (s *PortfolioServiceImpl) enrich(ctx context.Context, h model.Holding) model.EnrichedHolding {
	var out model.EnrichedHolding
	if err := copier.Copy(&out, &h); err != nil {
		s.logger.Warn().Err(err).Str("symbol", h.Ticker).Msg("Holding copy failed")
	}

	price, prevClose := 0.0, 0.0
	quote, err := s.quotes.GetQuote(ctx, h.Ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", h.Ticker).Msg("Quote failed, pricing holding at 0")
	} else {
		price, prevClose = quote.Price, quote.PreviousClose
	}

	shares := decimal.NewFromFloat(h.Shares)
	current := decimal.NewFromFloat(price)
	value := shares.Mul(current).Round(2)
	cost := shares.Mul(decimal.NewFromFloat(h.BuyPrice)).Round(2)
	gain := value.Sub(cost).Round(2)

	out.CurrentPrice = price
	out.Value = value.InexactFloat64()
	out.Cost = cost.InexactFloat64()
	out.Gain = gain.InexactFloat64()
	out.GainPercent = util.Percent(gain, cost)

	if prevClose != 0 {
		prev := decimal.NewFromFloat(prevClose)
		daily := current.Sub(prev).Round(2)
		out.DailyChange = daily.InexactFloat64()
		out.DailyChangePercent = util.Percent(daily, prev)
	}
	return out
}

func indexOf(holdings []model.Holding, ticker string) int {
	for i, h := range holdings {
		if h.Ticker == ticker {
			return i
		}
	}
	return -1
}

func notFound(ticker string) error {
	return customerrors.WithDetail(customerrors.ErrHoldingNotFound, "%s not found in portfolio", ticker)
}
