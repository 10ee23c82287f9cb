package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
	_ "time/tzdata"

	"stockplatform/config"
	"stockplatform/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stockplatform",
		Short:         "Stock market data, portfolio and analyst API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("stockplatform", version)
		},
	})

	return rootCmd
}

func serve() error {
	sysConfigs, err := config.LoadConfigs()
	if err != nil {
		log.Error().Err(err).Msg("Error loading configuration")
		return err
	}
	configureLogger(sysConfigs)

	if sysConfigs.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cm := config.NewConfigManager(sysConfigs.Config.Runtime())
	app, err := routes.SetupRouter(ctx, sysConfigs, cm, version)
	if err != nil {
		log.Error().Err(err).Msg("Error wiring server")
		return err
	}
	go reloadOnHangup(ctx, cm)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + sysConfigs.Config.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", sysConfigs.Config.Port).Str("store", sysConfigs.Config.PortfolioStore).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	app.Scheduler.Start()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server failed to start")
			app.Close(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	app.Close(shutdownCtx)
	return err
}

// reloadOnHangup re-reads the environment on SIGHUP and swaps the settings
// middleware consults per request.
func reloadOnHangup(ctx context.Context, cm *config.ConfigManager) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			runtimeCfg, err := cm.Reload()
			if err != nil {
				log.Error().Err(err).Msg("Config reload failed, keeping current settings")
				continue
			}
			log.Info().Bool("rateLimiter", runtimeCfg.RateLimiter).Strs("frontendUrls", runtimeCfg.FrontendUrls).Msg("Config reloaded")
		}
	}
}

func configureLogger(sysConfigs *config.SystemConfigs) {
	level, err := zerolog.ParseLevel(sysConfigs.Config.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !sysConfigs.Config.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.With().Logger()
}
