// Package version holds semdiff's build-time version string.
package version

// Version is overridden at build time via -ldflags
// "-X github.com/semdiff/semdiff/internal/pkg/version.Version=...".
var Version = "dev"
