package indexer

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

// VersionLatest is the sentinel meaning "whatever version resolves".
const VersionLatest = "latest"

// versionPattern is the accepted grammar: MAJOR.MINOR.PATCH with an optional
// alpha/beta/rc pre-release tag, dot before the number optional.
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-((?:alpha|beta|rc)\.?\d+))?$`)

// reportedVersionPattern extracts the first bare version triple from a
// version-report, tolerating a leading program name and trailing noise.
var reportedVersionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Version is a parsed pagefind version.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
}

// String renders the version back to its canonical text form.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// IsVersionString reports whether s matches the accepted version grammar.
func IsVersionString(s string) bool {
	return versionPattern.MatchString(s)
}

// ParseVersion parses a version string, rejecting anything outside the
// grammar (v-prefixes, missing segments, unsupported pre-release labels).
func ParseVersion(s string) (Version, error) {
	if !versionPattern.MatchString(s) {
		return Version{}, fmt.Errorf("invalid version %q: expected MAJOR.MINOR.PATCH with optional -alpha.N/-beta.N/-rc.N", s)
	}
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version{
		Major:      sv.Major(),
		Minor:      sv.Minor(),
		Patch:      sv.Patch(),
		Prerelease: sv.Prerelease(),
	}, nil
}

// compareTriple orders two versions by their numeric triple only. Pre-release
// tags do not participate in compatibility ordering.
func compareTriple(a, b Version) int {
	pairs := [3][2]uint64{
		{a.Major, b.Major},
		{a.Minor, b.Minor},
		{a.Patch, b.Patch},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// CheckCompatibility applies the version policy against a discovered binary
// version. A major mismatch or an older discovered version aborts; a newer
// one only logs a warning.
func CheckCompatibility(log zerolog.Logger, discovered, required string) error {
	d, err := ParseVersion(discovered)
	if err != nil {
		return err
	}
	r, err := ParseVersion(required)
	if err != nil {
		return err
	}

	if d.Major != r.Major {
		return fmt.Errorf("pagefind major version %d does not match required major version %d", d.Major, r.Major)
	}
	switch compareTriple(d, r) {
	case -1:
		return fmt.Errorf("pagefind version %s is older than required version %s", discovered, required)
	case 1:
		log.Warn().Msgf("pagefind version %s is newer than configured version %s", discovered, required)
	}
	return nil
}

// parseReportedVersion pulls the version triple out of `pagefind --version`
// output.
func parseReportedVersion(output string) (string, error) {
	match := reportedVersionPattern.FindString(output)
	if match == "" {
		return "", fmt.Errorf("could not parse version from: %s", output)
	}
	return match, nil
}
