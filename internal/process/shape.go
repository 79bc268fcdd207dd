// Package process builds process component documents from ordered shape
// configurations. Shapes are laid out in a linear flow; positions and
// connections are computed, never supplied by the caller.
package process

import "fmt"

// ShapeType identifies a node kind in the process flow.
type ShapeType string

const (
	ShapeStart       ShapeType = "start"
	ShapeStop        ShapeType = "stop"
	ShapeReturn      ShapeType = "return"
	ShapeMessage     ShapeType = "message"
	ShapeMap         ShapeType = "map"
	ShapeConnector   ShapeType = "connector"
	ShapeProcessCall ShapeType = "processcall"
	ShapeDecision    ShapeType = "decision"
	ShapeBranch      ShapeType = "branch"
	ShapeNote        ShapeType = "note"
)

// Shape is one node in a process's visual flow.
type Shape struct {
	Type      ShapeType         `json:"type" yaml:"type"`
	Name      string            `json:"name" yaml:"name"`
	UserLabel string            `json:"userlabel,omitempty" yaml:"userlabel,omitempty"`
	Config    map[string]string `json:"config,omitempty" yaml:"config,omitempty"`
}

// Get returns a config value, or "" when absent.
func (s Shape) Get(key string) string {
	if s.Config == nil {
		return ""
	}
	return s.Config[key]
}

// Config describes a complete process component.
type Config struct {
	Name                  string  `json:"name" yaml:"name"`
	FolderName            string  `json:"folder_name,omitempty" yaml:"folder_name,omitempty"`
	Description           string  `json:"description,omitempty" yaml:"description,omitempty"`
	Shapes                []Shape `json:"shapes" yaml:"shapes"`
	AllowSimultaneous     bool    `json:"allow_simultaneous,omitempty" yaml:"allow_simultaneous,omitempty"`
	EnableUserLog         bool    `json:"enable_user_log,omitempty" yaml:"enable_user_log,omitempty"`
	ProcessLogOnErrorOnly bool    `json:"process_log_on_error_only,omitempty" yaml:"process_log_on_error_only,omitempty"`
	PurgeDataImmediately  bool    `json:"purge_data_immediately,omitempty" yaml:"purge_data_immediately,omitempty"`
	UpdateRunDates        bool    `json:"update_run_dates,omitempty" yaml:"update_run_dates,omitempty"`
	Workload              string  `json:"workload,omitempty" yaml:"workload,omitempty"`
}

// ValidateShapes enforces the linear flow invariants: at least one shape,
// first is start, last is stop or return, names unique within the process.
func ValidateShapes(shapes []Shape) error {
	if len(shapes) == 0 {
		return fmt.Errorf("at least one shape is required")
	}
	if shapes[0].Type != ShapeStart {
		return fmt.Errorf("first shape must be %q, got %q", ShapeStart, shapes[0].Type)
	}
	last := shapes[len(shapes)-1].Type
	if last != ShapeStop && last != ShapeReturn {
		return fmt.Errorf("last shape must be %q or %q, got %q", ShapeStop, ShapeReturn, last)
	}

	seen := make(map[string]struct{}, len(shapes))
	for _, s := range shapes {
		if s.Name == "" {
			return fmt.Errorf("shape of type %q has no name", s.Type)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate shape name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
