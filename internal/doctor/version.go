package doctor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionRe = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?`)

// ExtractVersion returns the first version-looking token in the output of a
// `--version` call, e.g. "2.43.0" from "git version 2.43.0".
func ExtractVersion(output string) string {
	return strings.TrimPrefix(versionRe.FindString(output), "v")
}

// AtLeast reports whether version is greater than or equal to floor.
// A leading "v" is tolerated on both sides.
func AtLeast(version, floor string) (bool, error) {
	v, err := parseSemver(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	f, err := parseSemver(floor)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", floor, err)
	}
	return !v.LessThan(f), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}
