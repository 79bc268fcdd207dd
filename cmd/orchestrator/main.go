package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mdelgado-io/platformforge/internal/config"
	"github.com/mdelgado-io/platformforge/internal/orchestrator"
	"github.com/mdelgado-io/platformforge/internal/platform"
)

type LogLine struct {
	Timestamp string                 `json:"ts"`
	Level     string                 `json:"level"`
	Event     string                 `json:"event"`
	Message   string                 `json:"msg,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

func logEvent(level, event, msg string, fields map[string]interface{}) {
	line := LogLine{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Event:     event,
		Message:   msg,
		Fields:    fields,
	}
	b, _ := json.Marshal(line)
	fmt.Fprintln(os.Stderr, string(b))
}

func main() {
	planPath := flag.String("plan", "", "path to build plan JSON")
	baseURL := flag.String("base-url", os.Getenv("PLATFORM_BASE_URL"), "platform API base URL")
	accountID := flag.String("account", os.Getenv("PLATFORM_ACCOUNT_ID"), "platform account ID")
	username := flag.String("user", os.Getenv("PLATFORM_USERNAME"), "platform API username")
	recoveryWindow := flag.Duration("recovery-window", 0, "create-failure recovery lookback (default 60s)")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	if *planPath == "" {
		log.Fatal("usage: orchestrator -plan <plan.json>")
	}

	password := config.MustResolveSecret("PLATFORM_API_PASSWORD")

	client, err := platform.NewHTTPClient(platform.Options{
		BaseURL:   *baseURL,
		AccountID: *accountID,
		Username:  *username,
		Password:  password,
	})
	if err != nil {
		log.Fatalf("failed to create platform client: %v", err)
	}

	plan, err := orchestrator.LoadPlan(*planPath)
	if err != nil {
		log.Fatalf("failed to load plan: %v", err)
	}

	hostname, _ := os.Hostname()
	logEvent("info", "system.startup", "orchestrator starting", map[string]interface{}{
		"service":    "orchestrator",
		"hostname":   hostname,
		"pid":        os.Getpid(),
		"plan":       *planPath,
		"components": len(plan.Components),
	})

	runner := orchestrator.NewRunner(client)
	runner.SetRecoveryWindow(*recoveryWindow)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, runErr := runner.Run(ctx, plan)

	// The result goes to stdout so it can be piped; logs stay on stderr.
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	fmt.Println(string(out))

	if runErr != nil {
		logEvent("error", "system.shutdown", runErr.Error(), map[string]interface{}{
			"run_id": result.RunID,
		})
		os.Exit(1)
	}

	logEvent("info", "system.shutdown", "run completed", map[string]interface{}{
		"run_id":     result.RunID,
		"components": len(result.Components),
	})
}
