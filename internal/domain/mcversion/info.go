package mcversion

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Info is the version information read from a runtime. It is immutable.
type Info struct {
	name          string
	releaseTarget string
}

// NewInfo builds Info. An empty releaseTarget falls back to name.
func NewInfo(name, releaseTarget string) Info {
	if releaseTarget == "" {
		releaseTarget = name
	}

	return Info{
		name:          name,
		releaseTarget: releaseTarget,
	}
}

// Name returns the self-reported display version, e.g. 1.18-rc3.
func (i Info) Name() string {
	return i.name
}

// ReleaseTarget returns the release family, e.g. 1.17.
func (i Info) ReleaseTarget() string {
	return i.releaseTarget
}

// AtLeast reports whether the release target is not older than minimum.
// Both values are compared as semantic versions; pre-release suffixes such as
// -rc3 order before the release itself. Values that are not versions never satisfy.
func (i Info) AtLeast(minimum string) bool {
	have, ok := Canonical(i.releaseTarget)
	if !ok {
		return false
	}

	want, ok := Canonical(minimum)
	if !ok {
		return false
	}

	return semver.Compare(have, want) >= 0
}

// Canonical converts a game version such as 1.19, 1.19.4 or 1.18-rc3 into a
// canonical semantic version (v1.19.0, v1.19.4, v1.18.0-rc3).
func Canonical(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}

	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}

	core, pre, hasPre := strings.Cut(v, "-")

	canonical := semver.Canonical(core)
	if canonical == "" {
		return "", false
	}

	if hasPre {
		canonical += "-" + pre
	}

	if !semver.IsValid(canonical) {
		return "", false
	}

	return canonical, true
}
