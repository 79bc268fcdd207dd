// Package assemble turns a typed component definition into the XML document
// the platform accepts. It owns the type dispatch table; builders stay
// ignorant of each other.
package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mdelgado-io/platformforge/internal/connection"
	"github.com/mdelgado-io/platformforge/internal/process"
	"github.com/mdelgado-io/platformforge/internal/tradingpartner"
)

// Component type names accepted in plans. PlatformType maps them to the
// Component API's type strings.
const (
	TypeProcess        = "process"
	TypeTradingPartner = "tradingpartner"
	TypeConnection     = "connection"
)

// Definition is the typed payload for one component. Exactly one of the
// config fields must be set, matching Type.
type Definition struct {
	Type           string                 `json:"type" yaml:"type"`
	Process        *process.Config        `json:"process,omitempty" yaml:"process,omitempty"`
	TradingPartner *tradingpartner.Config `json:"trading_partner,omitempty" yaml:"trading_partner,omitempty"`
	Connection     *connection.Config     `json:"connection,omitempty" yaml:"connection,omitempty"`
}

// Assembler renders component documents. The dispatch table is built at
// construction; there is no package-level mutable state.
type Assembler struct {
	process *process.Builder
	partner *tradingpartner.Builder
	conn    *connection.Builder
	types   map[string]func(Definition, string) (string, error)
}

// New creates an assembler with all builders wired.
func New() *Assembler {
	a := &Assembler{
		process: process.NewBuilder(),
		partner: tradingpartner.NewBuilder(),
		conn:    connection.NewBuilder(),
	}
	a.types = map[string]func(Definition, string) (string, error){
		TypeProcess:        a.buildProcess,
		TypeTradingPartner: a.buildTradingPartner,
		TypeConnection:     a.buildConnection,
	}
	return a
}

// SupportedTypes returns the accepted component type names, sorted.
func (a *Assembler) SupportedTypes() []string {
	names := make([]string, 0, len(a.types))
	for name := range a.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlatformType maps a plan component type to the Component API type string
// used in metadata queries.
func PlatformType(componentType string) string {
	if componentType == TypeConnection {
		return "connector-settings"
	}
	return componentType
}

// Build renders the document for def, placing it in folderID (empty means
// account root).
func (a *Assembler) Build(def Definition, folderID string) (string, error) {
	build, ok := a.types[strings.ToLower(def.Type)]
	if !ok {
		return "", fmt.Errorf("unsupported component type %q (supported: %s)",
			def.Type, strings.Join(a.SupportedTypes(), ", "))
	}
	return build(def, folderID)
}

// FolderName returns the folder the definition asks for, or "".
func (d Definition) FolderName() string {
	switch {
	case d.Process != nil:
		return d.Process.FolderName
	case d.TradingPartner != nil:
		return d.TradingPartner.FolderName
	case d.Connection != nil:
		return d.Connection.FolderName
	}
	return ""
}

// Name returns the component name from the typed config, or "".
func (d Definition) Name() string {
	switch {
	case d.Process != nil:
		return d.Process.Name
	case d.TradingPartner != nil:
		return d.TradingPartner.Name
	case d.Connection != nil:
		return d.Connection.Name
	}
	return ""
}

func (a *Assembler) buildProcess(def Definition, folderID string) (string, error) {
	if def.Process == nil {
		return "", fmt.Errorf("component type %q requires a process config", def.Type)
	}
	return a.process.Build(*def.Process, folderID)
}

func (a *Assembler) buildTradingPartner(def Definition, folderID string) (string, error) {
	if def.TradingPartner == nil {
		return "", fmt.Errorf("component type %q requires a trading_partner config", def.Type)
	}
	return a.partner.Build(*def.TradingPartner, folderID)
}

func (a *Assembler) buildConnection(def Definition, folderID string) (string, error) {
	if def.Connection == nil {
		return "", fmt.Errorf("component type %q requires a connection config", def.Type)
	}
	return a.conn.Build(*def.Connection, folderID)
}
