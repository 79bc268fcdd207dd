package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"
)

// Alert severity levels
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Alert event types
const (
	AlertNotifyDisconnected  = "notify_disconnected"
	AlertPostgresUnavailable = "postgres_unavailable"
	AlertRunFailed           = "run_failed"
)

// AlertPayload is the JSON structure sent to the webhook.
type AlertPayload struct {
	AccountID string                 `json:"account_id"`
	Event     string                 `json:"event"`
	Timestamp string                 `json:"timestamp"`
	Severity  string                 `json:"severity"`
	Message   string                 `json:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// AlertConfig holds alert configuration.
type AlertConfig struct {
	WebhookURL              string
	NotifyDisconnectDelay   time.Duration // How long notify must be disconnected before alerting
	PostgresDisconnectDelay time.Duration // How long Postgres must be disconnected before alerting
}

var (
	alertConfig = &AlertConfig{
		NotifyDisconnectDelay:   30 * time.Second,
		PostgresDisconnectDelay: 5 * time.Second,
	}
	alertMu sync.Mutex

	// Track connection state for alerting
	notifyDisconnectedSince time.Time
	notifyAlertSent         bool
	postgresDisconnectedAt  time.Time
	postgresAlertSent       bool
	lastKnownNotifyState    bool
	lastKnownPostgresState  bool
	alertMonitorInitialized bool
)

// InitAlerts initializes the alert system from environment variables.
func InitAlerts() {
	alertMu.Lock()
	defer alertMu.Unlock()

	alertConfig.WebhookURL = os.Getenv("PLATFORMFORGE_ALERT_WEBHOOK_URL")

	// Optional: custom notify disconnect delay
	if delayStr := os.Getenv("PLATFORMFORGE_NOTIFY_ALERT_DELAY"); delayStr != "" {
		if d, err := time.ParseDuration(delayStr); err == nil {
			alertConfig.NotifyDisconnectDelay = d
		}
	}

	// Optional: custom Postgres disconnect delay
	if delayStr := os.Getenv("PLATFORMFORGE_POSTGRES_ALERT_DELAY"); delayStr != "" {
		if d, err := time.ParseDuration(delayStr); err == nil {
			alertConfig.PostgresDisconnectDelay = d
		}
	}

	if alertConfig.WebhookURL != "" {
		log.Printf("Alerts enabled: webhook URL configured (notify_delay=%s, pg_delay=%s)",
			alertConfig.NotifyDisconnectDelay, alertConfig.PostgresDisconnectDelay)
	}

	// Initialize state tracking
	lastKnownNotifyState = true   // Assume connected at start
	lastKnownPostgresState = true // Assume connected at start
	alertMonitorInitialized = true
}

// GetAlertWebhookURL returns the configured webhook URL (for testing).
func GetAlertWebhookURL() string {
	alertMu.Lock()
	defer alertMu.Unlock()
	return alertConfig.WebhookURL
}

// SendAlert sends an alert to the configured webhook (best-effort, non-blocking).
func SendAlert(event, severity, message string, details map[string]interface{}) {
	alertMu.Lock()
	webhookURL := alertConfig.WebhookURL
	alertMu.Unlock()

	if webhookURL == "" {
		// No webhook configured, log instead
		log.Printf("[ALERT] %s severity=%s msg=%q details=%v", event, severity, message, details)
		return
	}

	accountID := GetAccountID()
	if accountID == "" {
		accountID = "unknown"
	}

	payload := AlertPayload{
		AccountID: accountID,
		Event:     event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Severity:  severity,
		Message:   message,
		Details:   details,
	}

	// Send asynchronously to avoid blocking
	go sendWebhook(webhookURL, payload)
}

// sendWebhook performs the actual HTTP POST (runs in goroutine).
func sendWebhook(url string, payload AlertPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("alert: failed to marshal payload: %v", err)
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("alert: webhook POST failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("alert: webhook returned status %d", resp.StatusCode)
	}
}

// CheckAndAlertNotify checks the notify broker state and sends an alert if
// disconnected too long. Should be called periodically or on state change.
func CheckAndAlertNotify(connected bool) {
	alertMu.Lock()
	defer alertMu.Unlock()

	if !alertMonitorInitialized {
		return
	}

	now := time.Now()

	if connected {
		// Reset disconnect tracking
		if !lastKnownNotifyState && notifyAlertSent {
			// Was disconnected and alerted, now recovered - send recovery alert
			go SendAlert(AlertNotifyDisconnected, SeverityInfo, "notify broker connection restored", map[string]interface{}{
				"recovered_at": now.UTC().Format(time.RFC3339),
			})
		}
		notifyDisconnectedSince = time.Time{}
		notifyAlertSent = false
		lastKnownNotifyState = true
		return
	}

	// Not connected
	if lastKnownNotifyState {
		// Just became disconnected
		notifyDisconnectedSince = now
	}
	lastKnownNotifyState = false

	// Check if disconnected long enough to alert
	if !notifyAlertSent && !notifyDisconnectedSince.IsZero() {
		disconnectedDuration := now.Sub(notifyDisconnectedSince)
		if disconnectedDuration >= alertConfig.NotifyDisconnectDelay {
			notifyAlertSent = true
			go SendAlert(AlertNotifyDisconnected, SeverityWarning,
				"notify broker disconnected",
				map[string]interface{}{
					"disconnected_since":   notifyDisconnectedSince.UTC().Format(time.RFC3339),
					"disconnected_seconds": int(disconnectedDuration.Seconds()),
				})
		}
	}
}

// CheckAndAlertPostgres checks Postgres state and sends alert if unavailable.
func CheckAndAlertPostgres(connected bool) {
	alertMu.Lock()
	defer alertMu.Unlock()

	if !alertMonitorInitialized {
		return
	}

	now := time.Now()

	if connected {
		// Reset tracking
		if !lastKnownPostgresState && postgresAlertSent {
			// Was disconnected and alerted, now recovered
			go SendAlert(AlertPostgresUnavailable, SeverityInfo, "PostgreSQL connection restored", map[string]interface{}{
				"recovered_at": now.UTC().Format(time.RFC3339),
			})
		}
		postgresDisconnectedAt = time.Time{}
		postgresAlertSent = false
		lastKnownPostgresState = true
		return
	}

	// Not connected
	if lastKnownPostgresState {
		// Just became disconnected
		postgresDisconnectedAt = now
	}
	lastKnownPostgresState = false

	// Check if disconnected long enough to alert
	if !postgresAlertSent && !postgresDisconnectedAt.IsZero() {
		disconnectedDuration := now.Sub(postgresDisconnectedAt)
		if disconnectedDuration >= alertConfig.PostgresDisconnectDelay {
			postgresAlertSent = true
			go SendAlert(AlertPostgresUnavailable, SeverityCritical,
				"PostgreSQL unavailable",
				map[string]interface{}{
					"disconnected_since":   postgresDisconnectedAt.UTC().Format(time.RFC3339),
					"disconnected_seconds": int(disconnectedDuration.Seconds()),
				})
		}
	}
}

// StartAlertMonitor starts a background goroutine that periodically checks connection states.
func StartAlertMonitor(checkInterval time.Duration) {
	go func() {
		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()

		for range ticker.C {
			// Read current state
			readiness.mu.RLock()
			notifyConnected := readiness.notifyConnected
			postgresConnected := readiness.postgresConnected
			readiness.mu.RUnlock()

			// Check and alert
			CheckAndAlertNotify(notifyConnected)
			CheckAndAlertPostgres(postgresConnected)
		}
	}()
}
