package api

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mdelgado-io/platformforge/internal/events"
	"github.com/mdelgado-io/platformforge/internal/orchestrator"
	"github.com/mdelgado-io/platformforge/internal/version"
)

// Metrics state
var (
	metricsState = &MetricsState{}
)

// MetricsState holds runtime metrics for the /metrics endpoint.
type MetricsState struct {
	mu              sync.RWMutex
	startTime       time.Time
	accountID       string
	runsTotal       int64
	runsFailed      int64
	componentsBuilt int64
}

// InitMetrics initializes the metrics system. Must be called at startup.
func InitMetrics() {
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	metricsState.startTime = time.Now()
}

// SetAccountID sets the platform account ID used in metric labels.
func SetAccountID(id string) {
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	metricsState.accountID = id
}

// GetAccountID returns the current account ID.
func GetAccountID() string {
	metricsState.mu.RLock()
	defer metricsState.mu.RUnlock()
	return metricsState.accountID
}

// RecordRun folds one run result into the counters. Components in created
// or recovered state count as built.
func RecordRun(result *orchestrator.RunResult) {
	if result == nil {
		return
	}

	built := 0
	for _, c := range result.Components {
		if c.Succeeded() {
			built++
		}
	}

	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	metricsState.runsTotal++
	if !result.Completed {
		metricsState.runsFailed++
	}
	metricsState.componentsBuilt += int64(built)
}

// metricsHandler returns Prometheus-compatible metrics in text format.
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Gather metrics
	metricsState.mu.RLock()
	startTime := metricsState.startTime
	accountID := metricsState.accountID
	runsTotal := metricsState.runsTotal
	runsFailed := metricsState.runsFailed
	componentsBuilt := metricsState.componentsBuilt
	metricsState.mu.RUnlock()

	uptime := time.Since(startTime).Seconds()
	eventsTotal := events.TotalCount()

	readiness.mu.RLock()
	orchestratorReady := readiness.orchestratorReady
	notifyConnected := readiness.notifyConnected
	postgresConnected := readiness.postgresConnected
	readiness.mu.RUnlock()

	wsClients := events.SubscriberCount()

	readyVal := 0
	if orchestratorReady {
		readyVal = 1
	}

	notifyConnectedVal := 0
	if notifyConnected {
		notifyConnectedVal = 1
	}

	postgresConnectedVal := 0
	if postgresConnected {
		postgresConnectedVal = 1
	}

	// Get hostname for instance label
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	// Build Prometheus text format response
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	// Helper to write metric with optional labels
	writeMetric := func(name, mtype, help string, value interface{}, labels string) {
		fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		fmt.Fprintf(w, "# TYPE %s %s\n", name, mtype)
		if labels != "" {
			fmt.Fprintf(w, "%s{%s} %v\n", name, labels, value)
		} else {
			fmt.Fprintf(w, "%s %v\n", name, value)
		}
	}

	// Common labels
	labels := fmt.Sprintf(`account="%s",instance="%s",version="%s"`, accountID, hostname, version.Version)

	writeMetric("platformforge_uptime_seconds", "gauge",
		"Number of seconds since the service started", uptime, labels)

	writeMetric("platformforge_ready", "gauge",
		"Whether the orchestrator is ready (1) or not (0)", readyVal, labels)

	writeMetric("platformforge_runs_total", "counter",
		"Total number of build runs executed since startup", runsTotal, labels)

	writeMetric("platformforge_runs_failed_total", "counter",
		"Total number of build runs that failed since startup", runsFailed, labels)

	writeMetric("platformforge_components_built_total", "counter",
		"Total number of components created or recovered since startup", componentsBuilt, labels)

	writeMetric("platformforge_events_total", "counter",
		"Total number of events emitted since startup", eventsTotal, labels)

	writeMetric("platformforge_notify_connected", "gauge",
		"Whether the notify broker is connected (1) or not (0)", notifyConnectedVal, labels)

	writeMetric("platformforge_postgres_connected", "gauge",
		"Whether PostgreSQL is connected (1) or not (0)", postgresConnectedVal, labels)

	writeMetric("platformforge_ws_clients", "gauge",
		"Number of active WebSocket client connections", wsClients, labels)
}
