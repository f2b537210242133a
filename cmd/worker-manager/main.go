// cmd/worker-manager/main.go
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

	"heloc-workers/internal/common/camunda"
	"heloc-workers/internal/common/config"
	"heloc-workers/internal/common/database"
	"heloc-workers/internal/common/logger"
	"heloc-workers/internal/common/observability"
	"heloc-workers/internal/wizard"
	"heloc-workers/pkg/registry"

	// Survey Workers (2)
	ass "heloc-workers/internal/workers/survey/advance-survey-step"
	vsd "heloc-workers/internal/workers/survey/validate-survey-data"

	// Matching & Calculators (2)
	cq "heloc-workers/internal/workers/calculators/compute-quote"
	sp "heloc-workers/internal/workers/matching/score-partners"

	// Lead Workers (4)
	cpr "heloc-workers/internal/workers/lead/check-priority-routing"
	clr "heloc-workers/internal/workers/lead/create-lead-record"
	ilr "heloc-workers/internal/workers/lead/index-lead-record"
	sn "heloc-workers/internal/workers/lead/send-notification"

	// Integration Workers (2)
	rs "heloc-workers/internal/workers/auth/resolve-session"
	clc "heloc-workers/internal/workers/crm/crm-lead-create"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Validate the activity registry ---
	reg, err := registry.LoadRegistry(cfg.Survey.RegistryPath)
	if err != nil {
		zapLog.Fatal("registry load failed", zap.Error(err))
	}
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("registry validation failed", zap.Error(err))
	}
	zapLog.Info("Activity registry validated", zap.Int("activities", len(reg.Activities)))

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	var activeWorkers []*camunda.CamundaWorker
	startWorker := func(taskType string, wcfg config.WorkerConfig, handlerFunc camunda.HandlerFunc) {
		w := camunda.NewWorker(
			zeebeClient,
			taskType,
			wcfg.MaxJobsActive,
			time.Duration(wcfg.Timeout)*time.Millisecond,
			handlerFunc,
			zapLog,
		)
		activeWorkers = append(activeWorkers, w)
	}

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

	// --- START: Register Workers ---

	// --- 1. Survey Workers (2) ---
	if cfg.Workers[ass.TaskType].Enabled {
		sessionTTL := time.Duration(cfg.Survey.SessionTTL) * time.Minute
		store := wizard.NewStore(redis.Client, sessionTTL)
		handler := ass.NewHandler(
			&ass.Config{
				SessionTTL: sessionTTL,
				Timeout:    time.Duration(cfg.Workers[ass.TaskType].Timeout) * time.Millisecond,
			},
			store, log,
		)
		startWorker(ass.TaskType, cfg.Workers[ass.TaskType], handler.Handle)
	}

	if cfg.Workers[vsd.TaskType].Enabled {
		handler, err := vsd.NewHandler(
			&vsd.Config{
				Timeout: time.Duration(cfg.Workers[vsd.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create validate-survey-data handler", zap.Error(err))
		}
		startWorker(vsd.TaskType, cfg.Workers[vsd.TaskType], handler.Handle)
	}

	// --- 2. Matching & Calculator Workers (2) ---
	if cfg.Workers[sp.TaskType].Enabled {
		handler := sp.NewHandler(
			&sp.Config{
				TopPartnersLimit: cfg.Survey.TopPartnersLimit,
				Timeout:          time.Duration(cfg.Workers[sp.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(sp.TaskType, cfg.Workers[sp.TaskType], handler.Handle)
	}

	if cfg.Workers[cq.TaskType].Enabled {
		handler := cq.NewHandler(
			&cq.Config{
				Timeout: time.Duration(cfg.Workers[cq.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(cq.TaskType, cfg.Workers[cq.TaskType], handler.Handle)
	}

	// --- 3. Lead Workers (4) ---
	if cfg.Workers[clr.TaskType].Enabled {
		handler := clr.NewHandler(
			&clr.Config{
				Timeout: time.Duration(cfg.Workers[clr.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(clr.TaskType, cfg.Workers[clr.TaskType], handler.Handle)
	}

	if cfg.Workers[cpr.TaskType].Enabled {
		handler := cpr.NewHandler(
			&cpr.Config{
				Timeout:            time.Duration(cfg.Workers[cpr.TaskType].Timeout) * time.Millisecond,
				CacheTTL:           30 * time.Minute,
				HighScoreThreshold: 115,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(cpr.TaskType, cfg.Workers[cpr.TaskType], handler.Handle)
	}

	if cfg.Workers[ilr.TaskType].Enabled {
		handler := ilr.NewHandler(
			&ilr.Config{
				IndexName: cfg.Database.Elasticsearch.LeadIndex,
				Timeout:   time.Duration(cfg.Workers[ilr.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		startWorker(ilr.TaskType, cfg.Workers[ilr.TaskType], handler.Handle)
	}

	if cfg.Workers[sn.TaskType].Enabled {
		handler, err := sn.NewHandler(
			&sn.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				AWSRegion:    cfg.Notifications.AWS.Region,
				Timeout:      time.Duration(cfg.Workers[sn.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		startWorker(sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle)
	}

	// --- 4. Integration Workers (2) ---
	if cfg.Workers[clc.TaskType].Enabled {
		crmConfig := clc.DefaultConfig()
		crmConfig.Timeout = time.Duration(cfg.Workers[clc.TaskType].Timeout) * time.Millisecond
		crmConfig.MaxJobsActive = cfg.Workers[clc.TaskType].MaxJobsActive
		crmConfig.ZohoAPIKey = cfg.Integrations.Zoho.APIKey
		crmConfig.ZohoOAuthToken = cfg.Integrations.Zoho.AuthToken

		handler, err := clc.NewHandler(crmConfig, log)
		if err != nil {
			zapLog.Fatal("failed to create crm-lead-create handler", zap.Error(err))
		}
		startWorker(clc.TaskType, cfg.Workers[clc.TaskType], handler.Handle)
	}

	if cfg.Workers[rs.TaskType].Enabled {
		handler := rs.NewHandler(
			&rs.Config{
				BaseURL:  cfg.UserAPI.BaseURL,
				Timeout:  time.Duration(cfg.UserAPI.Timeout) * time.Millisecond,
				TokenTTL: time.Duration(cfg.UserAPI.TokenTTL) * time.Minute,
			},
			redis.Client, log,
		)
		startWorker(rs.TaskType, cfg.Workers[rs.TaskType], handler.Handle)
	}

	zapLog.Info("All workers registered successfully")

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

			if err := pg.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"reason": "postgres unreachable",
				})
				return
			}

			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"reason": "zeebe broker unreachable",
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

	for _, w := range activeWorkers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
