// Package version provides build version information for the application.
package version

// Version is the build version string, set by ldflags during build.
// Format: vX.Y.Z or vX.Y.Z-dev for development builds.
var Version = "v1.1.0"

// BuildTime is the build timestamp, set by ldflags during build.
var BuildTime = "unknown"
