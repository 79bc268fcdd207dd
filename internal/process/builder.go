package process

import (
	"fmt"
	"strconv"

	"github.com/mdelgado-io/platformforge/internal/layout"
	"github.com/mdelgado-io/platformforge/internal/xmlgen"
)

// Builder renders process components. It holds only the layout calculator;
// builds are pure functions of their input.
type Builder struct {
	layout *layout.Calculator
}

// NewBuilder creates a process builder with default canvas geometry.
func NewBuilder() *Builder {
	return &Builder{layout: layout.NewCalculator()}
}

// Build produces the complete process component document. folderID may be
// empty, in which case the platform places the component in the account root.
func (b *Builder) Build(cfg Config, folderID string) (string, error) {
	inner, err := b.BuildObject(cfg)
	if err != nil {
		return "", err
	}

	return xmlgen.Wrap(xmlgen.Envelope{
		Name:        cfg.Name,
		Type:        "process",
		FolderName:  cfg.FolderName,
		FolderID:    folderID,
		Description: cfg.Description,
	}, inner), nil
}

// BuildObject renders the inner process element without the component
// envelope.
func (b *Builder) BuildObject(cfg Config) (*xmlgen.Element, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("process name is required")
	}
	if err := ValidateShapes(cfg.Shapes); err != nil {
		return nil, fmt.Errorf("process %q: %w", cfg.Name, err)
	}

	workload := xmlgen.NormalizeEnumLower(cfg.Workload, "general", "general", "low_latency", "bronze")

	points := b.layout.Linear(len(cfg.Shapes))
	shapesElem := xmlgen.NewElement("shapes")
	for i, shape := range cfg.Shapes {
		next := ""
		if i < len(cfg.Shapes)-1 {
			next = cfg.Shapes[i+1].Name
		}
		elem, err := b.buildShape(shape, points[i], next)
		if err != nil {
			return nil, fmt.Errorf("process %q: %w", cfg.Name, err)
		}
		shapesElem.Child(elem)
	}

	proc := xmlgen.NewElement("process").
		Attr("xmlns", "").
		Attr("allowSimultaneous", xmlgen.BoolToken(cfg.AllowSimultaneous)).
		Attr("enableUserLog", xmlgen.BoolToken(cfg.EnableUserLog)).
		Attr("processLogOnErrorOnly", xmlgen.BoolToken(cfg.ProcessLogOnErrorOnly)).
		Attr("purgeDataImmediately", xmlgen.BoolToken(cfg.PurgeDataImmediately)).
		Attr("updateRunDates", xmlgen.BoolToken(cfg.UpdateRunDates)).
		Attr("workload", workload).
		Child(shapesElem)

	return proc, nil
}

// buildShape renders one shape with its configuration block and, when a next
// shape exists, a single outgoing dragpoint. Note shapes are canvas
// annotations and never carry dragpoints.
func (b *Builder) buildShape(shape Shape, pt layout.Point, next string) (*xmlgen.Element, error) {
	cfgElem, hasDragpoints, err := b.buildShapeConfig(shape)
	if err != nil {
		return nil, err
	}

	elem := xmlgen.NewElement("shape").
		Attr("image", string(shape.Type)).
		Attr("name", shape.Name).
		Attr("shapetype", string(shape.Type)).
		Attr("userlabel", labelOrDefault(shape)).
		Attr("x", formatCoord(pt.X)).
		Attr("y", formatCoord(pt.Y)).
		Child(cfgElem)

	if next != "" && hasDragpoints {
		drag := b.layout.DragPoint(pt)
		elem.Child(xmlgen.NewElement("dragpoints").Child(
			xmlgen.NewElement("dragpoint").
				Attr("name", shape.Name+".dragpoint1").
				Attr("toShape", next).
				Attr("x", formatCoord(drag.X)).
				Attr("y", formatCoord(drag.Y)),
		))
	}

	return elem, nil
}

// buildShapeConfig dispatches on shape type. The second return value reports
// whether the shape participates in the flow (and thus may carry dragpoints).
func (b *Builder) buildShapeConfig(shape Shape) (*xmlgen.Element, bool, error) {
	cfg := xmlgen.NewElement("configuration")

	switch shape.Type {
	case ShapeStart:
		cfg.Child(xmlgen.NewElement("noaction"))
		return cfg, true, nil

	case ShapeStop:
		cont := shape.Get("continue")
		if cont == "" {
			cont = "true"
		}
		cfg.Child(xmlgen.NewElement("stop").
			Attr("continue", xmlgen.BoolToken(xmlgen.ParseBoolToken(cont))))
		return cfg, false, nil

	case ShapeReturn:
		cfg.Child(xmlgen.NewElement("returndocuments").
			Attr("label", shape.Get("label")))
		return cfg, false, nil

	case ShapeMap:
		mapID := shape.Get("map_id")
		if mapID == "" {
			return nil, false, missingField(shape, "map_id")
		}
		cfg.Child(xmlgen.NewElement("map").Attr("mapId", mapID))
		return cfg, true, nil

	case ShapeMessage:
		text := shape.Get("message_text")
		if text == "" {
			return nil, false, missingField(shape, "message_text")
		}
		cfg.Child(xmlgen.NewElement("message").
			Attr("combined", "false").
			Child(xmlgen.TextElement("msgText", text)))
		return cfg, true, nil

	case ShapeConnector:
		connectorID := shape.Get("connector_id")
		if connectorID == "" {
			return nil, false, missingField(shape, "connector_id")
		}
		operation := shape.Get("operation")
		if operation == "" {
			return nil, false, missingField(shape, "operation")
		}
		cfg.Child(xmlgen.NewElement("connectoraction").
			Attr("connectorId", connectorID).
			Attr("actionType", operation).
			AttrIf("objectType", shape.Get("object_type")))
		return cfg, true, nil

	case ShapeProcessCall:
		processID := shape.Get("process_id")
		if processID == "" {
			return nil, false, missingField(shape, "process_id")
		}
		cfg.Child(xmlgen.NewElement("processcall").
			Attr("processId", processID).
			Attr("waitForExecution", "true"))
		return cfg, true, nil

	case ShapeDecision:
		expr := shape.Get("expression")
		if expr == "" {
			return nil, false, missingField(shape, "expression")
		}
		cfg.Child(xmlgen.NewElement("decision").Attr("expression", expr))
		return cfg, true, nil

	case ShapeBranch:
		count := shape.Get("branch_count")
		if count == "" {
			count = "2"
		}
		if _, err := strconv.Atoi(count); err != nil {
			return nil, false, fmt.Errorf("branch shape %q: branch_count %q is not a number", shape.Name, count)
		}
		cfg.Child(xmlgen.NewElement("branch").Attr("branchCount", count))
		return cfg, true, nil

	case ShapeNote:
		cfg.Child(xmlgen.NewElement("note").
			AttrIf("createdBy", shape.Get("created_by")).
			Child(xmlgen.TextElement("noteText", shape.Get("note_text"))))
		return cfg, false, nil

	default:
		return nil, false, fmt.Errorf("unsupported shape type %q for shape %q", shape.Type, shape.Name)
	}
}

func missingField(shape Shape, field string) error {
	return fmt.Errorf("%s shape %q: missing required field %q", shape.Type, shape.Name, field)
}

func labelOrDefault(shape Shape) string {
	if shape.UserLabel != "" {
		return shape.UserLabel
	}
	switch shape.Type {
	case ShapeStart:
		return "Start"
	case ShapeStop:
		return "Stop"
	case ShapeReturn:
		return "Return Documents"
	case ShapeMap:
		return "Map"
	case ShapeMessage:
		return "Message"
	case ShapeConnector:
		return "Connector"
	case ShapeProcessCall:
		return "Process Call"
	case ShapeDecision:
		return "Decision"
	case ShapeBranch:
		return "Branch"
	case ShapeNote:
		return "Note"
	default:
		return ""
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
