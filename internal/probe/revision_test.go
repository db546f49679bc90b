package probe

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mc-version-probe/internal/domain/mcversion"
)

// fixedSplitter returns canned segments.
type fixedSplitter []string

func (f fixedSplitter) Split(string) ([]string, error) { return f, nil }

// TestParseRevision_Forms covers the accepted raw version shapes.
func TestParseRevision_Forms(t *testing.T) {
	t.Parallel()

	cases := map[string]mcversion.Revision{
		"v1_19_R3":                        {Major: 1, Minor: 19, Release: 3},
		"org.bukkit.craftbukkit.v1_16_R3": {Major: 1, Minor: 16, Release: 3},
		"git-Paper-1 (MC: 1.19.3-R2)":     {Major: 1, Minor: 19, Release: 2},
		"1.18.2-R3":                       {Major: 1, Minor: 18, Release: 3},
		"1.20.1-R0.1-SNAPSHOT":            {Major: 1, Minor: 20, Release: 0},
	}
	for raw, want := range cases {
		got, err := ParseRevision(nil, raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
}

// TestParseRevision_Malformed asserts format and parse failures.
func TestParseRevision_Malformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "1.19.4", "Paper (MC: 1.19.4)", "v1_xx_R3", "garbage"} {
		_, err := ParseRevision(RevisionSplitter{}, raw)
		require.ErrorIs(t, err, ErrFormat, raw)
		require.ErrorIs(t, err, ErrMalformedVersion, raw)
	}

	var parseErr *ParseError

	_, err := ParseRevision(nil, "v1_19_Rx")
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "release", parseErr.Segment)
	require.ErrorIs(t, err, ErrMalformedVersion)

	_, err = ParseRevision(nil, "v1_99999999999999999999_R3")
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "minor", parseErr.Segment)

	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr))
}

// TestParseRevision_CustomSplitter checks the segment contract for injected splitters.
func TestParseRevision_CustomSplitter(t *testing.T) {
	t.Parallel()

	got, err := ParseRevision(fixedSplitter{"v1", "19", "R3"}, "ignored")
	require.NoError(t, err)
	require.Equal(t, mcversion.Revision{Major: 1, Minor: 19, Release: 3}, got)

	_, err = ParseRevision(fixedSplitter{"v1", "19"}, "ignored")
	require.ErrorIs(t, err, ErrFormat)

	var parseErr *ParseError

	_, err = ParseRevision(fixedSplitter{"v1", "nineteen", "R3"}, "ignored")
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "minor", parseErr.Segment)

	_, err = ParseRevision(fixedSplitter{"vX", "19", "R3"}, "ignored")
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "major", parseErr.Segment)

	_, err = ParseRevision(fixedSplitter{"v1", "19", "R"}, "ignored")
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "release", parseErr.Segment)
}
