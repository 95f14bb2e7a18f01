package cli

import (
	"strings"
	"testing"
)

// TestRootVersionPropagated verifies the root command surfaces whatever
// version main propagates, so there is a single source for the version
// string.
func TestRootVersionPropagated(t *testing.T) {
	oldVersion, oldBuildTime := Version, BuildTime
	defer func() { Version, BuildTime = oldVersion, oldBuildTime }()

	Version = "v9.9.9"
	BuildTime = "2026-08-25T00:00:00Z"

	cmd := NewRootCmd()

	if !strings.Contains(cmd.Version, "v9.9.9") {
		t.Errorf("rootCmd.Version = %q, want the propagated version", cmd.Version)
	}
	if !strings.Contains(cmd.Version, "2026-08-25T00:00:00Z") {
		t.Errorf("rootCmd.Version = %q, want the propagated build time", cmd.Version)
	}
}
