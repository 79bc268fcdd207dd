package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mdelgado-io/platformforge/internal/api"
	"github.com/mdelgado-io/platformforge/internal/config"
	"github.com/mdelgado-io/platformforge/internal/events"
	"github.com/mdelgado-io/platformforge/internal/notify"
	"github.com/mdelgado-io/platformforge/internal/orchestrator"
	"github.com/mdelgado-io/platformforge/internal/platform"
	"github.com/mdelgado-io/platformforge/internal/storage/postgres"
)

// persistingRunner wraps the orchestrator runner so every run, however it
// arrived, gets persisted and announced.
type persistingRunner struct {
	inner     *orchestrator.Runner
	store     *postgres.Client
	publisher *notify.Publisher
}

func (r *persistingRunner) Run(ctx context.Context, plan *orchestrator.Plan) (*orchestrator.RunResult, error) {
	result, err := r.inner.Run(ctx, plan)

	if r.store != nil && result != nil {
		summary, mErr := json.Marshal(result)
		if mErr == nil {
			if sErr := r.store.SaveRun(result.RunID, result.Completed, len(result.Components),
				len(result.Warnings), summary, result.StartedAt, result.FinishedAt); sErr != nil {
				log.Printf("failed to persist run %s: %v", result.RunID, sErr)
			}
		}
	}

	if r.publisher != nil {
		if pErr := r.publisher.PublishRunResult(result); pErr != nil {
			log.Printf("failed to publish run %s: %v", result.RunID, pErr)
		}
	}

	return result, err
}

func main() {
	configPath := flag.String("config", "platformforge.yaml", "path to service config")
	flag.Parse()

	cfg, err := config.LoadServiceConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	password := config.MustResolveSecret("PLATFORM_API_PASSWORD")
	if password == "" {
		log.Fatal("PLATFORM_API_PASSWORD is required")
	}

	client, err := platform.NewHTTPClient(platform.Options{
		BaseURL:   cfg.Platform.BaseURL,
		AccountID: cfg.Platform.AccountID,
		Username:  cfg.Platform.Username,
		Password:  password,
	})
	if err != nil {
		log.Fatalf("failed to create platform client: %v", err)
	}

	api.InitAuth()
	api.InitTLS()
	api.InitMetrics()
	api.InitAlerts()
	api.SetAccountID(cfg.Platform.AccountID)

	var store *postgres.Client
	if cfg.Storage.PostgresURL != "" {
		store, err = postgres.New(cfg.Platform.AccountID, cfg.Storage.PostgresURL)
		if err != nil {
			log.Printf("postgres unavailable, continuing without run storage: %v", err)
			api.SetPostgresState(false, true)
		} else {
			events.SetPostgresClient(store)
			api.SetPostgresState(true, false)
			defer store.Close()
		}
	} else {
		api.SetPostgresState(false, true)
	}

	runner := orchestrator.NewRunner(client)
	runner.SetRecoveryWindow(cfg.RecoveryWindow())

	wrapped := &persistingRunner{inner: runner, store: store}

	if cfg.Notify.BrokerURL != "" {
		hostname, _ := os.Hostname()
		broker := notify.NewClient(cfg.Notify.BrokerURL, "platformforge-"+hostname)
		connected := broker.StartWithRetry(cfg.Notify.BrokerURL)
		api.SetNotifyState(connected, true)

		publisher := notify.NewPublisher(broker, cfg.Notify.TopicPrefix)
		publisher.Start()
		wrapped.publisher = publisher

		listener := notify.NewCommandListener(broker, wrapped, publisher)
		if connected {
			if err := listener.Listen(); err != nil {
				log.Printf("failed to subscribe to build commands: %v", err)
			}
		}
	} else {
		api.SetNotifyState(false, true)
	}

	server := api.NewServer(wrapped)
	if store != nil {
		server.SetRunStore(store)
	}

	api.SetOrchestratorReady(true)
	api.StartAlertMonitor(30 * time.Second)

	events.Emit("info", "system.startup", "platformforge starting", map[string]interface{}{
		"account_id": cfg.Platform.AccountID,
		"port":       cfg.ServerPort(),
		"pid":        os.Getpid(),
	})

	if err := server.ListenAndServe(cfg.ServerPort()); err != nil {
		log.Fatalf("api server failed: %v", err)
	}
}
