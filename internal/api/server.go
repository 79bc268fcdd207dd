package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/mdelgado-io/platformforge/internal/events"
	"github.com/mdelgado-io/platformforge/internal/orchestrator"
	"github.com/mdelgado-io/platformforge/internal/storage/postgres"
)

const maxPlanBytes = 4 << 20

// PlanRunner executes a build plan and reports the outcome.
type PlanRunner interface {
	Run(ctx context.Context, plan *orchestrator.Plan) (*orchestrator.RunResult, error)
}

// RunStore is the slice of the Postgres client the API reads from. Nil when
// run storage is not configured; history endpoints degrade accordingly.
type RunStore interface {
	QueryRuns(limit int) ([]postgres.RunRow, error)
	Query(runID string, limit int) ([]postgres.EventRow, error)
}

// Server exposes the build orchestrator over HTTP.
type Server struct {
	runner PlanRunner
	store  RunStore
}

// NewServer creates a server around the given runner. Run storage is wired
// separately via SetRunStore.
func NewServer(runner PlanRunner) *Server {
	return &Server{runner: runner}
}

// SetRunStore attaches the persistent run store used by /runs and /events.
func (s *Server) SetRunStore(store RunStore) {
	s.store = store
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Hostname  string `json:"hostname"`
	Timestamp string `json:"ts"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	resp := HealthResponse{
		Status:    "ok",
		Service:   "platformforge",
		Hostname:  host,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

// buildHandler accepts a build plan and executes it synchronously. The
// response is the full run result; a failed run still returns the result so
// callers can see which component stopped it.
func (s *Server) buildHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPlanBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	plan, err := orchestrator.ParsePlan(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	events.Emit("info", "operator.build", "", map[string]interface{}{
		"components": len(plan.Components),
	})

	result, runErr := s.runner.Run(r.Context(), plan)
	RecordRun(result)
	if runErr != nil {
		details := map[string]interface{}{}
		if result != nil {
			details["run_id"] = result.RunID
		}
		SendAlert(AlertRunFailed, SeverityWarning, runErr.Error(), details)
	}

	w.Header().Set("Content-Type", "application/json")
	if runErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
	_ = json.NewEncoder(w).Encode(result)
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// eventsHandler returns recent events. When run storage is configured the
// query hits Postgres and honors run_id and limit; otherwise it falls back
// to the in-memory ring buffer.
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run_id")
	limit := queryInt(r, "limit")

	w.Header().Set("Content-Type", "application/json")

	if s.store != nil {
		rows, err := s.store.Query(runID, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "event query failed")
			return
		}
		_ = json.NewEncoder(w).Encode(rows)
		return
	}

	recent := events.RecentEvents(limit)
	if runID != "" {
		filtered := recent[:0]
		for _, e := range recent {
			if id, _ := e.Fields["run_id"].(string); id == runID {
				filtered = append(filtered, e)
			}
		}
		recent = filtered
	}
	_ = json.NewEncoder(w).Encode(recent)
}

// runsHandler returns the run history from Postgres, newest first.
func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run storage not configured")
		return
	}

	runs, err := s.store.QueryRuns(queryInt(r, "limit"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "run query failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(runs)
}

// Routes builds the HTTP mux. Health, readiness and metrics stay open;
// everything touching plans, runs or events requires a role.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", readyHandler)
	mux.HandleFunc("/metrics", metricsHandler)
	mux.HandleFunc("/tools/build", RequireAnyRole(s.buildHandler))
	mux.HandleFunc("/events", RequireAnyRole(s.eventsHandler))
	mux.HandleFunc("/runs", RequireAnyRole(s.runsHandler))
	mux.HandleFunc("/ws/events", wsEventsHandler)
	return mux
}

// ListenAndServe starts the API server on the given port, with TLS when
// configured. It blocks until the server exits.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg := LoadTLSConfig(); cfg != nil {
		srv.TLSConfig = cfg
		log.Printf("API listening on %s (TLS)", addr)
		return srv.ListenAndServeTLS("", "")
	}

	log.Printf("API listening on %s", addr)
	return srv.ListenAndServe()
}

// Start starts the API server in a goroutine.
// Errors are logged but do not stop the caller.
func (s *Server) Start(port int) {
	go func() {
		if err := s.ListenAndServe(port); err != nil && err != http.ErrServerClosed {
			log.Printf("api server error: %v", err)
		}
	}()
}
