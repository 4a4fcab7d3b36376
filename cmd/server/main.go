package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/McSimik/inf-search/internal/index"
	"github.com/McSimik/inf-search/internal/ingest"
	"github.com/McSimik/inf-search/internal/search"
	"github.com/McSimik/inf-search/internal/server"
	"github.com/McSimik/inf-search/pkg/config"
	"github.com/McSimik/inf-search/pkg/health"
	"github.com/McSimik/inf-search/pkg/logger"
	"github.com/McSimik/inf-search/pkg/metrics"
	"github.com/McSimik/inf-search/pkg/postgres"
	pkgredis "github.com/McSimik/inf-search/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting search service", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	idx := index.New()

	var queryCache *search.QueryCache
	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, query caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			queryCache = search.NewQueryCache(redisClient, cfg.Redis.CacheTTL)
			slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	engine := search.NewEngine(idx, queryCache, m)

	if cfg.Ingest.CSVPath != "" {
		loader := ingest.NewCSVLoader(cfg.Ingest.CSVPath, cfg.Ingest.CSVMaxRows, cfg.Ingest.CSVSep())
		indexed, err := loader.LoadInto(ctx, engine)
		if err != nil {
			slog.Error("csv preload failed", "path", cfg.Ingest.CSVPath, "error", err)
			os.Exit(1)
		}
		slog.Info("csv preload complete", "indexed", indexed)
	}

	var pgClient *postgres.Client
	if cfg.Ingest.PostgresEnabled {
		pgClient, err = postgres.New(cfg.Postgres)
		if err != nil {
			slog.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer pgClient.Close()

		source := ingest.NewPostgresSource(pgClient, cfg.Ingest.PostgresTable)
		indexed, err := source.LoadInto(ctx, engine)
		if err != nil {
			slog.Error("postgres preload failed", "error", err)
			os.Exit(1)
		}
		slog.Info("postgres preload complete", "indexed", indexed)
	}

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d documents, %d terms", engine.DocCount(), idx.TermCount()),
		}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusUp, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	if pgClient != nil {
		checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
			if err := pgClient.DB.PingContext(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}

	h := server.New(engine, queryCache, cfg.Search.DefaultLimit, cfg.Search.MaxResults)
	srv := server.NewServer(cfg.Server, h, checker, m)

	var shutdownMetrics func(context.Context) error
	if cfg.Metrics.Enabled {
		shutdownMetrics = metrics.StartServer(cfg.Metrics.Port)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Ingest.KafkaEnabled {
		source := ingest.NewKafkaSource(cfg.Kafka, engine)
		g.Go(func() error {
			return source.Run(gctx)
		})
		slog.Info("kafka document source started", "topic", cfg.Kafka.DocumentTopic)
	}

	g.Go(func() error {
		slog.Info("search service listening", "addr", srv.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if shutdownMetrics != nil {
			if err := shutdownMetrics(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown error", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("service error", "error", err)
		os.Exit(1)
	}
	slog.Info("search service stopped")
}
