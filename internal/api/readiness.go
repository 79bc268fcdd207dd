package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// readinessState tracks whether the service and its dependencies are ready
// to accept build requests. Optional dependencies degrade the checks without
// failing readiness.
type readinessState struct {
	mu                sync.RWMutex
	orchestratorReady bool
	notifyConnected   bool
	notifyOptional    bool
	postgresConnected bool
	postgresOptional  bool
}

var readiness = &readinessState{
	notifyOptional:   true,
	postgresOptional: true,
}

// SetOrchestratorReady marks the orchestrator as ready (or not).
func SetOrchestratorReady(ready bool) {
	readiness.mu.Lock()
	defer readiness.mu.Unlock()
	readiness.orchestratorReady = ready
}

// SetNotifyState records the notify broker connection state. optional marks
// the broker as a soft dependency that never fails readiness.
func SetNotifyState(connected, optional bool) {
	readiness.mu.Lock()
	defer readiness.mu.Unlock()
	readiness.notifyConnected = connected
	readiness.notifyOptional = optional
}

// SetPostgresState records the Postgres connection state. optional marks the
// database as a soft dependency that never fails readiness.
func SetPostgresState(connected, optional bool) {
	readiness.mu.Lock()
	defer readiness.mu.Unlock()
	readiness.postgresConnected = connected
	readiness.postgresOptional = optional
}

// Check is the status of one dependency in the readiness response.
type Check struct {
	Status   string `json:"status"`
	Optional bool   `json:"optional,omitempty"`
}

type ReadinessResponse struct {
	Ready       bool             `json:"ready"`
	Checks      map[string]Check `json:"checks"`
	NotReadyMsg string           `json:"message,omitempty"`
}

func dependencyCheck(connected, optional bool) Check {
	switch {
	case connected:
		return Check{Status: "ok", Optional: optional}
	case optional:
		return Check{Status: "unavailable", Optional: true}
	default:
		return Check{Status: "not_ready"}
	}
}

// readyHandler reports readiness: 200 when all required dependencies are up,
// 503 otherwise. Optional dependencies are reported but never gate.
func readyHandler(w http.ResponseWriter, r *http.Request) {
	readiness.mu.RLock()
	orchestratorReady := readiness.orchestratorReady
	notifyConnected := readiness.notifyConnected
	notifyOptional := readiness.notifyOptional
	postgresConnected := readiness.postgresConnected
	postgresOptional := readiness.postgresOptional
	readiness.mu.RUnlock()

	resp := ReadinessResponse{
		Checks: map[string]Check{
			"notify":   dependencyCheck(notifyConnected, notifyOptional),
			"postgres": dependencyCheck(postgresConnected, postgresOptional),
		},
	}

	var reasons []string
	if orchestratorReady {
		resp.Checks["orchestrator"] = Check{Status: "ok"}
	} else {
		resp.Checks["orchestrator"] = Check{Status: "not_ready"}
		reasons = append(reasons, "orchestrator not ready")
	}
	if !notifyConnected && !notifyOptional {
		reasons = append(reasons, "notify broker not connected")
	}
	if !postgresConnected && !postgresOptional {
		reasons = append(reasons, "postgres not connected")
	}

	resp.Ready = len(reasons) == 0
	if !resp.Ready {
		resp.NotReadyMsg = strings.Join(reasons, "; ")
	}

	w.Header().Set("Content-Type", "application/json")
	if !resp.Ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
