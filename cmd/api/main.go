package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/newcodes7/smalltown-crawler/internal/adapter/postgres"
	redisadapter "github.com/newcodes7/smalltown-crawler/internal/adapter/redis"
	"github.com/newcodes7/smalltown-crawler/internal/browser"
	"github.com/newcodes7/smalltown-crawler/internal/delivery/http/handler"
	"github.com/newcodes7/smalltown-crawler/internal/delivery/http/router"
	"github.com/newcodes7/smalltown-crawler/internal/repository"
	"github.com/newcodes7/smalltown-crawler/internal/scheduler"
	"github.com/newcodes7/smalltown-crawler/internal/strategy"
	"github.com/newcodes7/smalltown-crawler/internal/usecase"
	"github.com/newcodes7/smalltown-crawler/pkg/config"
	"github.com/newcodes7/smalltown-crawler/pkg/logger"
	"github.com/newcodes7/smalltown-crawler/pkg/metrics"
)

func main() {
	// --- Configuration ---
	_ = godotenv.Load()
	cfg := config.Load()

	// --- Logger ---
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	slog.Info("logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()

	ctx := context.Background()

	// --- PostgreSQL ---
	pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	dbpool, err := pgxpool.New(ctx, pgConnString)
	if err != nil {
		slog.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	// --- Redis (optional link cache) ---
	var linkCache repository.LinkCacheRepository
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Warn("Redis unavailable, dedup runs without link cache", "error", err)
	} else {
		linkCache = redisadapter.NewLinkCacheRepo(rdb)
		slog.Info("Redis connection established")
	}

	// --- Repositories ---
	orgRepo := postgres.NewOrganizationRepo(dbpool)
	articleRepo := postgres.NewArticleRepo(dbpool)

	// --- Browser sessions ---
	browsers := browser.NewChromeManager(browser.Options{
		Headless:   cfg.BrowserHeadless,
		NavTimeout: cfg.BrowserNavTimeout,
		UserAgent:  cfg.BrowserUserAgent,
		WindowSize: cfg.BrowserWindowSize,
	})

	// --- Extraction strategies ---
	selector, err := strategy.NewSelector(
		strategy.NewDefaultStrategy(),
		strategy.NewMediumStrategy(),
		strategy.NewTistoryStrategy(),
	)
	if err != nil {
		slog.Error("strategy registry misconfigured", "error", err)
		os.Exit(1)
	}

	// --- Use cases ---
	crawler := usecase.NewCrawlerUseCase(orgRepo, articleRepo, linkCache, browsers, selector, usecase.Options{
		Enabled:      cfg.CrawlEnabled,
		Workers:      cfg.CrawlWorkers,
		JobTimeout:   cfg.CrawlJobTimeout,
		LinkCacheTTL: cfg.LinkCacheTTL,
	})

	// --- Scheduler ---
	sched := scheduler.New(crawler, cfg.CrawlCronSpec)
	if cfg.CrawlEnabled {
		if err := sched.Start(); err != nil {
			slog.Error("unable to start scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	} else {
		slog.Info("crawling disabled, scheduler not started")
	}

	// --- HTTP server ---
	apiHandler := handler.NewHandler(crawler)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Minute, // crawl-all responses can take a while
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("could not listen on port", "port", cfg.ServerPort, "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
