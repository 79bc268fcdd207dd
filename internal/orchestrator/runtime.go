package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mdelgado-io/platformforge/internal/assemble"
	"github.com/mdelgado-io/platformforge/internal/events"
	"github.com/mdelgado-io/platformforge/internal/platform"
	"github.com/mdelgado-io/platformforge/internal/process"
	"github.com/mdelgado-io/platformforge/internal/resolve"
)

// DefaultRecoveryWindow bounds how far back the recovery query looks for a
// component whose create request failed after the platform applied it.
const DefaultRecoveryWindow = 60 * time.Second

// shapeRefs maps reference keys in shape configs to the component type they
// resolve against and the ID key the builder reads.
var shapeRefs = []struct {
	refKey string
	idKey  string
	ctype  string
}{
	{"map_ref", "map_id", "transform.map"},
	{"connector_ref", "connector_id", "connector-settings"},
	{"connection_ref", "connector_id", "connector-settings"},
	{"subprocess_ref", "process_id", "process"},
	{"process_ref", "process_id", "process"},
}

// Runner executes build plans against the platform. Components are built
// strictly one at a time; the registry that carries names to IDs lives for
// exactly one run.
type Runner struct {
	client         platform.Client
	assembler      *assemble.Assembler
	recoveryWindow time.Duration
	now            func() time.Time
}

// NewRunner creates a runner with the default recovery window.
func NewRunner(client platform.Client) *Runner {
	return &Runner{
		client:         client,
		assembler:      assemble.New(),
		recoveryWindow: DefaultRecoveryWindow,
		now:            time.Now,
	}
}

// SetRecoveryWindow overrides the recovery lookback. Non-positive values
// keep the default.
func (r *Runner) SetRecoveryWindow(d time.Duration) {
	if d > 0 {
		r.recoveryWindow = d
	}
}

// RunResult is the outcome of one plan execution.
type RunResult struct {
	RunID      string            `json:"run_id"`
	Completed  bool              `json:"completed"`
	Components []ComponentStatus `json:"components"`
	Warnings   []string          `json:"warnings,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Run executes the plan: sorts components dependencies-first, then builds
// and creates each in turn. The first component failure aborts the run;
// remaining components are marked skipped. The returned result is non-nil
// even when err is not.
func (r *Runner) Run(ctx context.Context, plan *Plan) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: r.now().UTC(),
	}

	r.emit("info", "run.started", "", map[string]interface{}{
		"run_id":     result.RunID,
		"components": len(plan.Components),
	})

	// Plans arriving through ParsePlan are already validated; direct callers
	// get the same structural errors instead of a confusing cycle report.
	if err := plan.Validate(); err != nil {
		result.FinishedAt = r.now().UTC()
		r.emit("error", "run.failed", err.Error(), map[string]interface{}{"run_id": result.RunID})
		return result, err
	}

	ordered, err := SortComponents(plan.Components)
	if err != nil {
		result.FinishedAt = r.now().UTC()
		r.emit("error", "run.failed", err.Error(), map[string]interface{}{"run_id": result.RunID})
		return result, err
	}

	registry := NewRegistry()
	resolver := resolve.New(r.client, registry)

	var fatal error
	for _, comp := range ordered {
		if fatal != nil {
			result.Components = append(result.Components, ComponentStatus{
				Name:  comp.Name,
				Type:  comp.Type,
				State: ComponentStateSkipped,
			})
			r.emit("info", "component.skipped", "", map[string]interface{}{
				"run_id":    result.RunID,
				"component": comp.Name,
			})
			continue
		}

		status := r.buildComponent(ctx, resolver, registry, plan, comp, result.RunID)
		result.Components = append(result.Components, status)
		result.Warnings = append(result.Warnings, status.Warnings...)

		if !status.Succeeded() {
			fatal = fmt.Errorf("component %q: %s", comp.Name, status.Error)
		}
	}

	result.FinishedAt = r.now().UTC()
	if fatal != nil {
		r.emit("error", "run.failed", fatal.Error(), map[string]interface{}{"run_id": result.RunID})
		return result, fmt.Errorf("run %s failed: %w", result.RunID, fatal)
	}

	result.Completed = true
	r.emit("info", "run.completed", "", map[string]interface{}{
		"run_id":     result.RunID,
		"components": len(result.Components),
	})
	return result, nil
}

// buildComponent takes one component through resolve, assemble, create and,
// when the create fails, the recovery query.
func (r *Runner) buildComponent(ctx context.Context, resolver *resolve.Resolver, registry *Registry, plan *Plan, comp ComponentSpec, runID string) ComponentStatus {
	status := ComponentStatus{
		Name:  comp.Name,
		Type:  comp.Type,
		State: ComponentStateBuilding,
	}
	r.emit("info", "component.building", "", map[string]interface{}{
		"run_id":    runID,
		"component": comp.Name,
		"type":      comp.Type,
	})

	def := comp.Definition
	if def.Process != nil {
		resolved, err := r.resolveProcessRefs(ctx, resolver, def.Process, runID)
		if err != nil {
			status.State = ComponentStateFailed
			status.Error = err.Error()
			r.emitFailed(runID, comp.Name, status.Error)
			return status
		}
		def.Process = resolved
	}

	folderName := def.FolderName()
	if folderName == "" {
		folderName = plan.FolderName
	}
	folderID, warning, err := resolver.Folder(ctx, folderName)
	if err != nil {
		status.State = ComponentStateFailed
		status.Error = err.Error()
		r.emitFailed(runID, comp.Name, status.Error)
		return status
	}
	if warning != "" {
		status.Warnings = append(status.Warnings, warning)
		r.emit("warn", "folder.unresolved", warning, map[string]interface{}{
			"run_id":    runID,
			"component": comp.Name,
			"folder":    folderName,
		})
	}

	document, err := r.assembler.Build(def, folderID)
	if err != nil {
		status.State = ComponentStateFailed
		status.Error = err.Error()
		r.emitFailed(runID, comp.Name, status.Error)
		return status
	}
	status.Document = document

	platformType := assemble.PlatformType(comp.Type)
	meta, err := r.client.CreateComponent(ctx, document)
	if err != nil {
		recovered, recErr := r.recover(ctx, def.Name(), platformType, runID, err)
		if recErr != nil {
			status.State = ComponentStateFailed
			status.Error = recErr.Error()
			r.emitFailed(runID, comp.Name, status.Error)
			return status
		}
		meta = recovered
		status.State = ComponentStateRecovered
		r.emit("warn", "component.recovered", "", map[string]interface{}{
			"run_id":       runID,
			"component":    comp.Name,
			"component_id": meta.ID,
		})
	} else {
		status.State = ComponentStateCreated
		r.emit("info", "component.created", "", map[string]interface{}{
			"run_id":       runID,
			"component":    comp.Name,
			"component_id": meta.ID,
		})
	}

	status.ComponentID = meta.ID
	// References in later components use the platform component name; the
	// plan key is registered too so either spelling resolves.
	registry.Register(def.Name(), meta.ID, platformType)
	if comp.Name != def.Name() {
		registry.Register(comp.Name, meta.ID, platformType)
	}
	return status
}

// recover checks whether a failed create nonetheless landed: a component of
// the same name and type modified within the recovery window. Exactly one
// match means the create succeeded and only the response was lost; anything
// else keeps the original failure.
func (r *Runner) recover(ctx context.Context, name, platformType, runID string, createErr error) (platform.ComponentMetadata, error) {
	r.emit("warn", "platform.recovery", createErr.Error(), map[string]interface{}{
		"run_id":    runID,
		"component": name,
	})

	matches, err := r.client.QueryComponents(ctx, platform.ComponentQuery{
		Name:          name,
		Type:          platformType,
		ModifiedSince: r.now().Add(-r.recoveryWindow),
	})
	if err != nil {
		return platform.ComponentMetadata{}, fmt.Errorf("create failed (%v); recovery query failed: %w", createErr, err)
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return platform.ComponentMetadata{}, fmt.Errorf("create failed: %w", createErr)
	default:
		return platform.ComponentMetadata{}, fmt.Errorf(
			"create failed (%v); recovery found %d recent components named %q, cannot pick one",
			createErr, len(matches), name)
	}
}

// resolveProcessRefs returns a copy of cfg with every *_ref key in shape
// configs replaced by the corresponding *_id. The input config is never
// mutated; plans stay reusable across runs.
func (r *Runner) resolveProcessRefs(ctx context.Context, resolver *resolve.Resolver, cfg *process.Config, runID string) (*process.Config, error) {
	out := *cfg
	out.Shapes = make([]process.Shape, len(cfg.Shapes))

	for i, shape := range cfg.Shapes {
		copied := shape
		if len(shape.Config) > 0 {
			copied.Config = make(map[string]string, len(shape.Config))
			for k, v := range shape.Config {
				copied.Config[k] = v
			}
		}

		for _, ref := range shapeRefs {
			name, ok := copied.Config[ref.refKey]
			if !ok || name == "" {
				continue
			}
			id, err := resolver.Component(ctx, name, ref.ctype)
			if err != nil {
				r.emit("error", "reference.failed", err.Error(), map[string]interface{}{
					"run_id":    runID,
					"shape":     copied.Name,
					"reference": name,
				})
				return nil, fmt.Errorf("shape %q: resolving %s %q: %w", copied.Name, ref.refKey, name, err)
			}
			copied.Config[ref.idKey] = id
			delete(copied.Config, ref.refKey)
			r.emit("info", "reference.resolved", "", map[string]interface{}{
				"run_id":       runID,
				"shape":        copied.Name,
				"reference":    name,
				"component_id": id,
			})
		}

		out.Shapes[i] = copied
	}

	return &out, nil
}

func (r *Runner) emitFailed(runID, name, msg string) {
	r.emit("error", "component.failed", msg, map[string]interface{}{
		"run_id":    runID,
		"component": name,
	})
}

func (r *Runner) emit(level, name, msg string, fields map[string]interface{}) {
	events.Emit(level, name, msg, fields)
}
