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

	"lucky-numbers-platform/internal/config"
	"lucky-numbers-platform/internal/domain/ports/adapter"
	"lucky-numbers-platform/internal/infra/adapters/generator"
	"lucky-numbers-platform/internal/infra/api"
	pg "lucky-numbers-platform/internal/infra/db/postgres"
	"lucky-numbers-platform/internal/infra/logging"
	"lucky-numbers-platform/internal/infra/metrics"
	red "lucky-numbers-platform/internal/infra/redis"
	"lucky-numbers-platform/internal/infra/web"
	"lucky-numbers-platform/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	go pg.ReportPoolStats(ctx, pool, 30*time.Second)

	// ---- Redis (rate limiting; the site still works without it) ----
	var limiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set, redemption rate limiting disabled")
	}

	// ---- Repositories ----
	codeRepo := pg.NewAccessCodeRepo(pool)
	customerRepo := pg.NewCustomerRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Number source ----
	local := generator.NewLocalSampler(nil)
	var source adapter.NumberSource = local
	switch cfg.Generator.Source {
	case "gemini":
		gem, err := generator.NewGeminiSource(ctx, cfg.Generator.GeminiKey, cfg.Generator.GeminiURL, cfg.Generator.Model)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini source")
		}
		source = generator.NewFallbackSource(gem, local, logger)
	case "openai":
		oa, err := generator.NewOpenAISource(cfg.Generator.OpenAIKey, cfg.Generator.Model)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai source")
		}
		source = generator.NewFallbackSource(oa, local, logger)
	}
	logger.Info().Str("source", source.Name()).Msg("number source ready")

	// ---- Use cases ----
	redemptionUC := usecase.NewRedemptionUseCase(codeRepo, source, logger)
	issuanceUC := usecase.NewIssuanceUseCase(customerRepo, codeRepo, txManager, logger)
	statsUC := usecase.NewStatsUseCase(customerRepo, codeRepo, logger)

	// ---- Admin server ----
	auth := web.NewAuthManager(cfg.Admin.JWTSecret, cfg.Admin.Passphrase, !cfg.Runtime.Dev, cfg.Admin.SessionTTL)
	adminMux := http.NewServeMux()
	web.NewServer(issuanceUC, statsUC, auth, logger).RegisterRoutes(adminMux)
	adminSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Admin.Port),
		Handler: adminMux,
	}

	// ---- Public site ----
	site := api.NewServer(redemptionUC, limiter, cfg.RateLimit.RedeemPerMinute, cfg.Site.PriceBRL, logger)
	siteSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Site.Port),
		Handler: site.Router(),
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info().Int("port", cfg.Admin.Port).Msg("admin server listening")
		errCh <- adminSrv.ListenAndServe()
	}()
	go func() {
		logger.Info().Int("port", cfg.Site.Port).Msg("site listening")
		errCh <- siteSrv.ListenAndServe()
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = siteSrv.Shutdown(shutdownCtx)
	_ = adminSrv.Shutdown(shutdownCtx)
}
