// Package version provides build and version information for Platform Forge.
package version

// Version is the current release version of Platform Forge.
// This can be overridden at build time using:
//
//	go build -ldflags "-X github.com/mdelgado-io/platformforge/internal/version.Version=x.y.z"
var Version = "1.0.0"
