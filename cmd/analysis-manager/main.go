// cmd/analysis-manager/main.go
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

	"analysis-workers/internal/common/camunda"
	"analysis-workers/internal/common/config"
	"analysis-workers/internal/common/database"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/common/observability"
	"analysis-workers/internal/consensus"
	"analysis-workers/internal/history"
	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/notify"
	"analysis-workers/internal/pipeline"
	"analysis-workers/internal/processing"
	"analysis-workers/internal/reasoning"

	"analysis-workers/internal/workers/analysis/benchmarking"
	"analysis-workers/internal/workers/analysis/core"
	"analysis-workers/internal/workers/analysis/culture"
	"analysis-workers/internal/workers/analysis/engagement"
	"analysis-workers/internal/workers/analysis/performance"
	"analysis-workers/internal/workers/analysis/skills"
)

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
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting analysis manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("analysis-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.Timeout),
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
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
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init AWS notification clients (optional) ---
	var emailSender notify.EmailSender
	var eventPublisher notify.EventPublisher
	if cfg.Integrations.AWS.SES.Enabled {
		sesSender, err := notify.NewSESReportSender(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("failed to create SES client", zap.Error(err))
		}
		emailSender = sesSender
	}
	if cfg.Integrations.AWS.SNS.Enabled {
		snsPublisher, err := notify.NewSNSEventPublisher(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("failed to create SNS client", zap.Error(err))
		}
		eventPublisher = snsPublisher
	}

	// --- Assemble the analysis pipeline ---
	providers := make([]consensus.Provider, 0, len(cfg.Providers))
	for _, providerCfg := range cfg.Providers {
		providers = append(providers, consensus.NewHTTPProvider(providerCfg))
		zapLog.Info("provider registered",
			zap.String("name", providerCfg.Name),
			zap.Float64("weight", providerCfg.Weight),
		)
	}

	store := knowledge.DefaultStore()
	if err := knowledge.WarmCache(ctx, redis.Client, store); err != nil {
		zapLog.Warn("knowledge cache warm-up failed", zap.Error(err))
	}

	cache := consensus.NewResponseCache(redis.Client, time.Duration(cfg.Consensus.CacheTTL)*time.Second)
	caller := consensus.NewCaller(providers, cfg.Consensus.Strategy, cfg.Consensus.MinConfidence, cache, log)

	orchestrator := pipeline.NewOrchestrator(
		store,
		processing.NewProcessor(log),
		reasoning.NewEngine(log),
		caller,
		log,
	)

	deps := core.Dependencies{
		Orchestrator:  orchestrator,
		History:       history.NewStore(pg.DB, log),
		Indexer:       history.NewIndexer(esClient.Client, cfg.History.ResultIndex, log),
		Notifier:      notify.NewNotifier(emailSender, eventPublisher, cfg.Integrations.AWS.SES.FromEmail, cfg.Integrations.AWS.SNS.TopicARN, log),
		Observability: obs,
		Logger:        log,
	}

	// --- Register the analysis workers ---
	var workers []*camunda.CamundaWorker
	register := func(taskType string, handler *core.Handler) {
		if w := startWorker(zeebeClient, taskType, cfg, handler, zapLog); w != nil {
			workers = append(workers, w)
		}
	}
	register(skills.TaskType, skills.NewHandler(core.LoadConfig(cfg, skills.TaskType), deps))
	register(performance.TaskType, performance.NewHandler(core.LoadConfig(cfg, performance.TaskType), deps))
	register(benchmarking.TaskType, benchmarking.NewHandler(core.LoadConfig(cfg, benchmarking.TaskType), deps))
	register(culture.TaskType, culture.NewHandler(core.LoadConfig(cfg, culture.TaskType), deps))
	register(engagement.TaskType, engagement.NewHandler(core.LoadConfig(cfg, engagement.TaskType), deps))

	zapLog.Info("All analysis workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := zeebeClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Analysis manager stopped gracefully")
}

func startWorker(client *camunda.Client, taskType string, cfg *config.Config, handler *core.Handler, log *zap.Logger) *camunda.CamundaWorker {
	if !config.IsWorkerEnabled(cfg, taskType) {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}
	wcfg := config.GetWorkerConfig(cfg, taskType)

	w := camunda.NewWorker(
		client.GetClient(),
		taskType,
		wcfg.MaxJobsActive,
		config.GetDuration(wcfg.Timeout),
		handler,
		log,
	)

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return w
}
