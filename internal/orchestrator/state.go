package orchestrator

// ComponentState represents the lifecycle state of a component within a run.
type ComponentState string

const (
	ComponentStatePending   ComponentState = "pending"
	ComponentStateBuilding  ComponentState = "building"
	ComponentStateCreated   ComponentState = "created"
	ComponentStateRecovered ComponentState = "recovered"
	ComponentStateFailed    ComponentState = "failed"
	ComponentStateSkipped   ComponentState = "skipped"
)

// ComponentStatus tracks the outcome of one component in a run.
type ComponentStatus struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	State       ComponentState `json:"state"`
	ComponentID string         `json:"component_id,omitempty"`
	Document    string         `json:"xml,omitempty"`
	Error       string         `json:"error,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// Succeeded reports whether the component ended up existing on the platform.
func (s *ComponentStatus) Succeeded() bool {
	return s.State == ComponentStateCreated || s.State == ComponentStateRecovered
}
