package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadPlan loads a build plan from a JSON file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes and validates a build plan.
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan JSON: %w", err)
	}

	if plan.Version != 1 {
		return nil, fmt.Errorf("unsupported plan version: %d", plan.Version)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return &plan, nil
}
