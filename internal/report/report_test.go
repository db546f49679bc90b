package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func testResult() *Result {
	return &Result{
		Name:          "1.18-rc3",
		ReleaseTarget: "1.18",
		Revision:      "1.18 R1",
		Accessor:      "getName",
	}
}

// TestWrite_Text checks the line-oriented report.
func TestWrite_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, testResult(), FormatText))
	require.Equal(t, "name: 1.18-rc3\nrelease_target: 1.18\nrevision: 1.18 R1\naccessor: getName\n", buf.String())
}

// TestWrite_JSON decodes the JSON report back, since protojson output spacing is not stable.
func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, testResult(), FormatJSON))

	decoded := new(structpb.Struct)
	require.NoError(t, protojson.Unmarshal(buf.Bytes(), decoded))

	fields := decoded.AsMap()
	require.Equal(t, "1.18-rc3", fields["name"])
	require.Equal(t, "1.18", fields["release_target"])
	require.Equal(t, "1.18 R1", fields["revision"])
	require.Equal(t, "getName", fields["accessor"])
}

// TestParseFormat maps flag values and rejects unknown ones.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	_, err = ParseFormat("yaml")
	require.ErrorIs(t, err, ErrUnknownFormat)

	require.ErrorIs(t, Write(new(bytes.Buffer), testResult(), Format("xml")), ErrUnknownFormat)
}
