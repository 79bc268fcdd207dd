package events

import "fmt"

var allowedEvents = map[string]struct{}{
	// run
	"run.started":   {},
	"run.completed": {},
	"run.failed":    {},

	// component
	"component.building":  {},
	"component.created":   {},
	"component.recovered": {},
	"component.failed":    {},
	"component.skipped":   {},

	// resolve
	"reference.resolved": {},
	"reference.failed":   {},
	"folder.resolved":    {},
	"folder.unresolved":  {},

	// platform
	"platform.request":  {},
	"platform.error":    {},
	"platform.recovery": {},

	// operator
	"operator.build":  {},
	"operator.replan": {},

	// system
	"system.startup":  {},
	"system.shutdown": {},
	"system.error":    {},
}

func Validate(event string) error {
	if _, ok := allowedEvents[event]; !ok {
		return fmt.Errorf("unknown event: %s", event)
	}
	return nil
}
