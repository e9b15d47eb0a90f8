package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"gifticon-keeper/internal/config"
	"gifticon-keeper/internal/domain/ports/adapter"
	"gifticon-keeper/internal/domain/recommend"
	scanadapter "gifticon-keeper/internal/infra/adapters/scan"
	"gifticon-keeper/internal/infra/adapters/telegram"
	pg "gifticon-keeper/internal/infra/db/postgres"
	"gifticon-keeper/internal/infra/logging"
	"gifticon-keeper/internal/infra/metrics"
	red "gifticon-keeper/internal/infra/redis"
	"gifticon-keeper/internal/infra/sched"
	"gifticon-keeper/internal/infra/web"
	"gifticon-keeper/internal/infra/worker"
	"gifticon-keeper/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable development mode (console logs, relaxed validation)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	logger.Info().Bool("dev", cfg.Runtime.Dev).Msg("starting gifticon-keeper")

	metrics.MustRegister()

	// Storage
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = redisClient.Close() }()

	gifticonRepo := pg.NewPostgresGifticonRepo(pool)
	sentLog := pg.NewNotificationLogRepo(pool)
	settingsRepo := red.NewSettingsRepo(redisClient)
	dismissStore := red.NewDismissStore(redisClient, cfg.Redis.TTL)

	newID := func() string { return ulid.Make().String() }
	engine := recommend.NewEngine(nil, newID)

	// Notifier selection: Telegram when a bot token is configured.
	var notifier adapter.Notifier
	if cfg.Bot.Token != "" {
		tg, err := telegram.NewNotifier(&cfg.Bot)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram notifier init failed")
		}
		notifier = tg
		logger.Info().Msg("expiry alerts via Telegram")
	} else {
		notifier = telegram.NewNoopNotifier()
		logger.Warn().Msg("no bot token configured, expiry alerts are logged only")
	}

	gifUC := usecase.NewGifticonUseCase(gifticonRepo, settingsRepo, cfg.Recommend.ExpiryThresholdDays, newID, nil, logger)
	recUC := usecase.NewRecommendationUseCase(gifticonRepo, dismissStore, engine, logger)
	notifUC := usecase.NewNotificationUseCase(gifticonRepo, sentLog, notifier, cfg.Recommend.ExpiryThresholdDays, nil, logger)
	statsUC := usecase.NewStatsUseCase(gifticonRepo)

	// Scanner selection: every configured provider joins the fallback chain.
	var scanUC *usecase.ScanUseCase
	scanner := buildScanner(ctx, &cfg.Scan, cfg.Runtime.Dev, logger)
	if scanner != nil {
		scanPool := worker.NewPool(cfg.Scan.Workers)
		scanPool.Start(ctx)
		defer scanPool.Stop()
		limiter := red.NewRateLimiter(redisClient, cfg.Scan.RatePerMin, time.Minute)
		scanUC = usecase.NewScanUseCase(scanner, scanPool, limiter, logger)
	} else {
		logger.Warn().Msg("no scan provider configured, image scan endpoint disabled")
	}

	// Background workers
	go func() {
		w := sched.NewNotificationWorker(cfg.Scheduler.NotifyInterval, notifUC, logger)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("notification worker stopped")
		}
	}()
	go func() {
		w := sched.NewStatsWorker(cfg.Scheduler.StatsInterval, statsUC, logger)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("stats worker stopped")
		}
	}()

	// HTTP
	auth := web.NewAuthManager(cfg.Web.JWTSecret, cfg.Web.SecureCookie, cfg.Web.CookieDomain, 24*time.Hour)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Web.Port),
		Handler: web.NewServer(gifUC, recUC, scanUC, auth, logger).Routes(),
	}
	go func() {
		logger.Info().Int("port", cfg.Web.Port).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
	cancel()
	logger.Info().Msg("bye")
}

// buildScanner assembles the extraction chain from configured providers.
// Order matters: OpenAI answers first, Gemini picks up its failures.
func buildScanner(ctx context.Context, cfg *config.ScanConfig, dev bool, logger *zerolog.Logger) adapter.GifticonScanner {
	var scanners []adapter.GifticonScanner
	if cfg.OpenAIKey != "" {
		s, err := scanadapter.NewOpenAIScanner(cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai scanner init failed")
		}
		scanners = append(scanners, s)
		logger.Info().Str("model", cfg.OpenAIModel).Msg("scan provider: openai")
	}
	if cfg.GeminiKey != "" {
		s, err := scanadapter.NewGeminiScanner(ctx, cfg.GeminiKey, cfg.GeminiURL, cfg.GeminiModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini scanner init failed")
		}
		scanners = append(scanners, s)
		logger.Info().Str("model", cfg.GeminiModel).Msg("scan provider: gemini")
	}
	switch len(scanners) {
	case 0:
		if dev {
			logger.Info().Msg("scan provider: noop (dev mode)")
			return scanadapter.NewNoopScanner()
		}
		return nil
	case 1:
		return scanners[0]
	default:
		return scanadapter.NewMultiScanner(scanners...)
	}
}
