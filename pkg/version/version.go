// Package version exposes build metadata injected via -ldflags.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Set at build time with -ldflags "-X github.com/rshade/countrydex/pkg/version.version=...".
//
//nolint:gochecknoglobals // Overwritten by the linker.
var (
	version = "0.1.0"
	commit  = "none"
)

// GetVersion returns the semantic version of the running binary.
func GetVersion() string {
	return version
}

// GetCommit returns the VCS revision the binary was built from.
func GetCommit() string {
	return commit
}

// UserAgent returns the User-Agent header sent with outbound requests.
func UserAgent() string {
	return "countrydex/" + version
}

// Satisfies reports whether v satisfies the semver constraint expression.
func Satisfies(v, constraint string) (bool, error) {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", v, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(parsed), nil
}
