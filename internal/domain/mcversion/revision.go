package mcversion

import "fmt"

// Revision identifies a server build by its major and minor game version and
// the release number of the server internals (the 3 in R3).
type Revision struct {
	// Major is the major game version, always 1 so far.
	Major int
	// Minor is the minor game version (19 for 1.19.x).
	Minor int
	// Release is the internals revision within the minor version.
	Release int
}

// Less reports whether r orders before other on (Major, Minor, Release).
func (r Revision) Less(other Revision) bool {
	if r.Major != other.Major {
		return r.Major < other.Major
	}

	if r.Minor != other.Minor {
		return r.Minor < other.Minor
	}

	return r.Release < other.Release
}

// Token renders the revision the way versioned server packages name it, e.g. v1_16_R3.
func (r Revision) Token() string {
	return fmt.Sprintf("v%d_%d_R%d", r.Major, r.Minor, r.Release)
}

// String returns a short human form, e.g. 1.19 R3.
func (r Revision) String() string {
	return fmt.Sprintf("%d.%d R%d", r.Major, r.Minor, r.Release)
}
