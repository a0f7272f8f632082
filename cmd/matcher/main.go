// cmd/matcher/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"internmatch/internal/analyzer"
	"internmatch/internal/apply"
	commonaws "internmatch/internal/common/aws"
	"internmatch/internal/common/config"
	"internmatch/internal/common/database"
	"internmatch/internal/common/logger"
	"internmatch/internal/common/observability"
	"internmatch/internal/profile"
	"internmatch/internal/recommender"
	"internmatch/internal/store"
)

// application holds the wired services the external transport mounts on.
type application struct {
	Engine  *recommender.Engine
	Search  *store.SearchStore
	Profile *profile.Service
	Apply   *apply.Service
}

// Components reports which services came up, for the readiness endpoint.
func (a *application) Components() map[string]bool {
	return map[string]bool{
		"engine":  a.Engine != nil,
		"search":  a.Search != nil,
		"profile": a.Profile != nil,
		"apply":   a.Apply != nil,
	}
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting matcher...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("matcher")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Stores ---
	studentStore := store.NewStudentStore(pg.DB, log)
	postingStore := store.NewPostingStore(pg.DB, log)
	searchStore := store.NewSearchStore(esClient.Client, cfg.Search.Index, cfg.Search.PageSize, log)
	cacheTTL := config.CacheTTL(cfg.Engine.CacheTTLSeconds)
	cache := store.NewCache(redis.Client, cacheTTL, cacheTTL, log)

	// --- Recommendation Engine ---
	opts := recommender.DefaultOptions()
	if cfg.Engine.MinSkillsMatch > 0 {
		opts.MinSkillsScore = cfg.Engine.MinSkillsMatch
	}
	if cfg.Engine.MinOverallScore > 0 {
		opts.MinMatchScore = cfg.Engine.MinOverallScore
	}
	if cfg.Engine.DefaultLimit > 0 {
		opts.DefaultLimit = cfg.Engine.DefaultLimit
	}
	if cfg.Engine.TrendingWindowDays > 0 {
		opts.TrendingWindow = time.Duration(cfg.Engine.TrendingWindowDays) * 24 * time.Hour
	}

	engine := recommender.NewEngine(
		recommender.WeightsFromConfig(cfg.Engine), opts,
		studentStore, postingStore, postingStore, cache, log,
	)

	// --- Resume Analyzer ---
	resumeAnalyzer := analyzer.New(analyzer.DefaultVocabulary(), cfg.Analyzer.MaxKeywords, log)
	profileService := profile.NewService(resumeAnalyzer, analyzer.NewExtractorRegistry(), studentStore, cache, log)

	// --- Application Workflow ---
	var publisher apply.Publisher = apply.NoopPublisher{}
	if cfg.Notifications.SNS.Enabled {
		snsClient, err := commonaws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		publisher = apply.NewSNSPublisher(snsClient, cfg.Notifications.SNS.TopicARN, log)
		zapLog.Info("SNS publisher enabled", zap.String("topicArn", cfg.Notifications.SNS.TopicARN))
	}
	applyService := apply.NewService(studentStore, postingStore, postingStore, cache, publisher, log)

	// The request transport mounts on these services externally; the
	// binary owns wiring and the health/metrics endpoint.
	app := &application{
		Engine:  engine,
		Search:  searchStore,
		Profile: profileService,
		Apply:   applyService,
	}

	zapLog.Info("Engine, analyzer and application workflow initialized")

	// --- Health & Metrics Server ---
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		status := "ready"
		code := http.StatusOK
		if err := pg.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     status,
			"components": app.Components(),
			"time":       time.Now().Format(time.RFC3339),
		})
	})
	http.Handle("/metrics", promhttp.Handler())

	// nil handler serves DefaultServeMux, which also carries pprof.
	srv := &http.Server{Addr: cfg.Metrics.Address}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Health/Metrics server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Matcher stopped gracefully")
}
