package probe

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/oshokin/mc-version-probe/internal/domain/mcversion"
)

var (
	// ErrMalformedVersion matches every failure to read a raw server version.
	ErrMalformedVersion = errors.New("malformed server version")
	// ErrFormat is returned by splitters when the raw version has no revision in it.
	ErrFormat = fmt.Errorf("%w: no revision found", ErrMalformedVersion)
)

// Splitter decomposes a raw server version into segments.
// Valid input yields at least [major, minor, releaseToken].
type Splitter interface {
	Split(raw string) ([]string, error)
}

// revisionPattern finds v1_19_R3 (package form) or 1.19.3-R3 (display form).
var revisionPattern = regexp.MustCompile(`v?(\d+)[._](\d+)(?:[._]\d+)?[-_]([A-Za-z]\w*)`)

// RevisionSplitter is the default Splitter. It accepts the bare revision token
// (v1_19_R3), a package ending with it (org.bukkit.craftbukkit.v1_19_R3) and
// version strings embedding the display form (git-Paper-1 (MC: 1.19.3-R3)).
type RevisionSplitter struct{}

// Split returns [major, minor, releaseToken] of the first revision found in raw.
func (RevisionSplitter) Split(raw string) ([]string, error) {
	match := revisionPattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrFormat, raw)
	}

	return match[1:], nil
}

// ParseError is returned when a segment of the raw version is not numeric where it must be.
type ParseError struct {
	// Raw is the raw version string being parsed.
	Raw string
	// Segment names the offending segment (major, minor or release).
	Segment string
	// Value is the offending segment value.
	Value string
	// Err is the underlying conversion error, if any.
	Err error
}

// Error implements error.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s segment %q of %q is not numeric", ErrMalformedVersion, e.Segment, e.Value, e.Raw)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes ErrMalformedVersion and the conversion error.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedVersion}
	}

	return []error{ErrMalformedVersion, e.Err}
}

// ParseRevision splits raw with s and reads the revision numbers from the segments.
// The release number is the single digit after the release prefix letter (R3 → 3).
func ParseRevision(s Splitter, raw string) (mcversion.Revision, error) {
	if s == nil {
		s = RevisionSplitter{}
	}

	segments, err := s.Split(raw)
	if err != nil {
		return mcversion.Revision{}, err
	}

	if len(segments) < 3 {
		return mcversion.Revision{}, fmt.Errorf("%w: %q has %d segments", ErrFormat, raw, len(segments))
	}

	major, err := strconv.Atoi(strings.TrimPrefix(segments[0], "v"))
	if err != nil {
		return mcversion.Revision{}, &ParseError{Raw: raw, Segment: "major", Value: segments[0], Err: err}
	}

	minor, err := strconv.Atoi(segments[1])
	if err != nil {
		return mcversion.Revision{}, &ParseError{Raw: raw, Segment: "minor", Value: segments[1], Err: err}
	}

	token := segments[2]
	if len(token) < 2 || token[1] < '0' || token[1] > '9' {
		return mcversion.Revision{}, &ParseError{Raw: raw, Segment: "release", Value: token}
	}

	return mcversion.Revision{
		Major:   major,
		Minor:   minor,
		Release: int(token[1] - '0'),
	}, nil
}
