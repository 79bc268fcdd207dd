package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// EventRow represents an event stored in Postgres.
type EventRow struct {
	EventID   int64                  `json:"event_id"`
	Timestamp time.Time              `json:"ts"`
	Level     string                 `json:"level"`
	Event     string                 `json:"event"`
	Message   *string                `json:"msg,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	AccountID string                 `json:"account_id"`
	RunID     *string                `json:"run_id,omitempty"`
}

// RunRow represents a completed run's audit record.
type RunRow struct {
	RunID      string    `json:"run_id"`
	AccountID  string    `json:"account_id"`
	Completed  bool      `json:"completed"`
	Components int       `json:"components"`
	Warnings   int       `json:"warnings"`
	Summary    []byte    `json:"summary,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Client manages the Postgres connection for run and event storage.
type Client struct {
	db        *sql.DB
	accountID string
}

// New creates a Postgres client. The connection string comes from connStr
// when non-empty, otherwise from the standard PG* environment variables.
func New(accountID, connStr string) (*Client, error) {
	if connStr == "" {
		connStr = envConnString()
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	client := &Client{db: db, accountID: accountID}
	if err := client.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return client, nil
}

func envConnString() string {
	host := getEnv("PGHOST", "127.0.0.1")
	port := getEnv("PGPORT", "5432")
	user := getEnv("PGUSER", "platformforge")
	dbname := getEnv("PGDATABASE", "platformforge")
	password := os.Getenv("PGPASSWORD")

	if password != "" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
		host, port, user, dbname)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func (c *Client) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			event_id   BIGSERIAL PRIMARY KEY,
			ts         TIMESTAMPTZ NOT NULL,
			level      TEXT NOT NULL,
			event      TEXT NOT NULL,
			msg        TEXT,
			fields     JSONB,
			account_id TEXT NOT NULL,
			run_id     TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts DESC);
		CREATE INDEX IF NOT EXISTS idx_events_run_id ON events(run_id);

		CREATE TABLE IF NOT EXISTS runs (
			run_id      TEXT PRIMARY KEY,
			account_id  TEXT NOT NULL,
			completed   BOOLEAN NOT NULL,
			components  INTEGER NOT NULL,
			warnings    INTEGER NOT NULL,
			summary     JSONB,
			started_at  TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	`
	_, err := c.db.Exec(query)
	return err
}

// Append inserts an event into the database.
func (c *Client) Append(ts time.Time, level, event, msg string, fields map[string]interface{}, runID string) error {
	var fieldsJSON []byte
	var err error
	if fields != nil {
		fieldsJSON, err = json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to marshal fields: %w", err)
		}
	}

	var msgPtr *string
	if msg != "" {
		msgPtr = &msg
	}

	var runPtr *string
	if runID != "" {
		runPtr = &runID
	}

	query := `
		INSERT INTO events (ts, level, event, msg, fields, account_id, run_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = c.db.Exec(query, ts, level, event, msgPtr, fieldsJSON, c.accountID, runPtr)
	return err
}

// SaveRun records a run's outcome. Summary is the JSON-encoded run result.
func (c *Client) SaveRun(runID string, completed bool, components, warnings int, summary []byte, startedAt, finishedAt time.Time) error {
	query := `
		INSERT INTO runs (run_id, account_id, completed, components, warnings, summary, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (run_id) DO NOTHING
	`
	_, err := c.db.Exec(query, runID, c.accountID, completed, components, warnings, summary, startedAt, finishedAt)
	return err
}

// QueryRuns returns the most recent runs, newest first.
func (c *Client) QueryRuns(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	query := `
		SELECT run_id, account_id, completed, components, warnings, summary, started_at, finished_at
		FROM runs
		WHERE account_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`
	rows, err := c.db.Query(query, c.accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		var summary []byte
		if err := rows.Scan(&r.RunID, &r.AccountID, &r.Completed, &r.Components, &r.Warnings, &summary, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		r.Summary = summary
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Query returns the last N events from the database in descending order by
// timestamp. When runID is non-empty only that run's events are returned.
func (c *Client) Query(runID string, limit int) ([]EventRow, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 10000 {
		limit = 10000
	}

	query := `
		SELECT event_id, ts, level, event, msg, fields, account_id, run_id
		FROM events
		WHERE account_id = $1 AND ($2 = '' OR run_id = $2)
		ORDER BY ts DESC
		LIMIT $3
	`
	rows, err := c.db.Query(query, c.accountID, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []EventRow
	for rows.Next() {
		var e EventRow
		var fieldsJSON []byte
		var msg, run sql.NullString

		if err := rows.Scan(&e.EventID, &e.Timestamp, &e.Level, &e.Event, &msg, &fieldsJSON, &e.AccountID, &run); err != nil {
			return nil, err
		}

		if msg.Valid {
			e.Message = &msg.String
		}
		if run.Valid {
			e.RunID = &run.String
		}
		if len(fieldsJSON) > 0 {
			if err := json.Unmarshal(fieldsJSON, &e.Fields); err != nil {
				return nil, fmt.Errorf("failed to unmarshal fields: %w", err)
			}
		}

		events = append(events, e)
	}

	return events, rows.Err()
}

// Close closes the database connection.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
