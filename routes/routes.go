package routes

import (
	"context"
	"fmt"
	"time"

	"stockplatform/cache"
	"stockplatform/client"
	"stockplatform/config"
	"stockplatform/controller"
	"stockplatform/database"
	"stockplatform/metrics"
	"stockplatform/middleware"
	"stockplatform/repository"
	"stockplatform/scheduler"
	"stockplatform/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	inboundRate  = rate.Limit(5)
	inboundBurst = 15
	inboundIdle  = 10 * time.Minute
)

// App is the wired server together with what has to be released on
// shutdown.
type App struct {
	Router    *gin.Engine
	Scheduler *scheduler.Scheduler
	closers   []func(context.Context) error
}

// Close stops the scheduler and disconnects the stores in reverse order of
// opening.
func (a *App) Close(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("Error while closing resource")
		}
	}
}

func SetupRouter(ctx context.Context, cfg *config.SystemConfigs, cm *config.ConfigManager, version string) (*App, error) {
	app := &App{}
	checks := map[string]controller.HealthCheck{}
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// --- 1. Clients ---
	var store cache.Store = cache.NewMemoryStore(cache.WithMetrics(m))
	if cfg.Config.RedisUrl != "" {
		rdb, err := database.InitRedis(ctx, cfg.Config.RedisUrl)
		if err != nil {
			app.Close(ctx)
			return nil, err
		}
		app.closers = append(app.closers, func(context.Context) error { return rdb.Close() })
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		store = cache.NewRedisStore(rdb, m)
	}

	outbound := client.NewOutboundLimiter(cfg.Config.OutboundRPS, cfg.Config.OutboundBurst)
	yahooClient := client.NewYahooClient(client.YahooOptions{
		Limiter: outbound,
		Metrics: m,
	})
	edgarClient := client.NewEdgarClient(client.EdgarOptions{
		UserAgent: cfg.Config.SecUserAgent,
		Limiter:   outbound,
		Metrics:   m,
	})
	completer := newCompleter(cfg, outbound, m)

	// --- 2. Repositories ---
	holdingRepo, err := newHoldingRepository(ctx, cfg, app, checks)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}

	// --- 3. Services ---
	marketSvc := service.NewMarketService(yahooClient, yahooClient, store)
	indicatorSvc := service.NewIndicatorService(marketSvc)
	fundamentalsSvc := service.NewFundamentalsService(yahooClient, store)
	filingsSvc := service.NewFilingsService(edgarClient, store)
	newsSvc := service.NewNewsService(yahooClient)
	portfolioSvc := service.NewPortfolioService(holdingRepo, marketSvc)

	personas, err := service.LoadPersonas()
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	agentSvc := service.NewAgentService(completer, marketSvc, fundamentalsSvc, personas)

	app.Scheduler = scheduler.NewScheduler(ctx, filingsSvc)
	if err := app.Scheduler.RegisterAll(cfg.Config.CikRefreshCron); err != nil {
		app.Scheduler = nil
		app.Close(ctx)
		return nil, err
	}

	// --- 4. Routes & Controllers ---
	r := gin.New()
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.ZerologMiddleware())
	r.Use(middleware.MetricsMiddleware(m))
	r.Use(middleware.CORS(cm))
	r.Use(middleware.RateLimiter(cm, cache.NewLimiterCache(inboundRate, inboundBurst, inboundIdle), m))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	humaAPI := humagin.New(r, huma.DefaultConfig("Stock Platform API", version))

	api := r.Group("/api")
	{
		// Health Check
		controller.NewHealthController(checks).RegisterRoutes(api)

		// Quotes, OHLC and indicators
		controller.NewMarketController(marketSvc, indicatorSvc).RegisterRoutes(api)

		// Fundamentals and SEC filings
		controller.NewFundamentalsController(fundamentalsSvc, filingsSvc).RegisterRoutes(api)

		// News
		controller.NewNewsController(newsSvc).RegisterRoutes(api)
	}

	// Typed operations, documented at /openapi.json
	controller.NewPortfolioController(portfolioSvc).RegisterRoutes(humaAPI)
	key, setting := cfg.LLMKey()
	controller.NewAgentController(agentSvc, setting, key != "").RegisterRoutes(humaAPI)
	controller.NewConfigController(cm).RegisterRoutes(humaAPI)

	app.Router = r
	return app, nil
}

// newCompleter returns nil when the selected provider has no key, which the
// agent service reports as a configuration error.
func newCompleter(cfg *config.SystemConfigs, outbound *rate.Limiter, m *metrics.Metrics) client.Completer {
	key, setting := cfg.LLMKey()
	if key == "" {
		log.Warn().Str("setting", setting).Msg("LLM key missing, agent endpoints will fail")
		return nil
	}

	if cfg.Config.LLMProvider == config.ProviderOpenAI {
		return client.NewOpenAIClient(client.OpenAIOptions{
			APIKey:  key,
			Model:   cfg.Config.OpenAIModel,
			Metrics: m,
		})
	}
	return client.NewAnthropicClient(client.AnthropicOptions{
		APIKey:  key,
		Model:   cfg.Config.AnthropicModel,
		Limiter: outbound,
		Metrics: m,
	})
}

func newHoldingRepository(ctx context.Context, cfg *config.SystemConfigs, app *App, checks map[string]controller.HealthCheck) (repository.HoldingRepository, error) {
	switch cfg.Config.PortfolioStore {
	case config.StoreSQLite:
		db, err := database.OpenSQLite(cfg.Config.SqlitePath)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func(context.Context) error { return db.Close() })
		checks["sqlite"] = db.PingContext
		return repository.NewSqliteHoldingRepository(ctx, db)

	case config.StoreMongo:
		mongoClient, db, err := database.InitMongoClient(ctx, cfg.Config.MongoUri, cfg.Config.MongoDatabase)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, mongoClient.Disconnect)
		checks["mongo"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
		return repository.NewMongoHoldingRepository(db), nil

	case config.StoreJSON:
		return repository.NewJsonHoldingRepository(cfg.Config.PortfolioFile), nil
	}
	return nil, fmt.Errorf("unknown portfolio store %q", cfg.Config.PortfolioStore)
}
