package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/mc-version-probe/internal/report"
	"github.com/oshokin/mc-version-probe/internal/service/prober"
)

// TestProbe_RecordedBuilds runs the CLI service against recorded server builds.
func TestProbe_RecordedBuilds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		snapshot      string
		name          string
		releaseTarget string
		revision      string
		accessor      string
	}{
		{"paper-1.16.5.yaml", "1.16.5", "1.16.5", "1.16 R3", "getName"},
		{"spigot-1.18-rc3.yaml", "1.18-rc3", "1.18", "1.18 R1", "getName"},
		{"spigot-1.19.3.yaml", "1.19.3", "1.19.3", "1.19 R2", "getName"},
		{"spigot-1.19.4.yaml", "1.19.4", "1.19.4", "1.19 R3", "c"},
		{"paper-1.20.1.yaml", "1.20.1", "1.20.1", "1.20 R1", "c"},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.snapshot, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			options := &prober.Options{
				SnapshotPath: filepath.Join("testdata", tc.snapshot),
				Format:       string(report.FormatJSON),
			}

			require.NoError(t, prober.Run(context.Background(), options, &out))

			decoded := new(structpb.Struct)
			require.NoError(t, protojson.Unmarshal(out.Bytes(), decoded))

			fields := decoded.AsMap()
			require.Equal(t, tc.name, fields["name"])
			require.Equal(t, tc.releaseTarget, fields["release_target"])
			require.Equal(t, tc.revision, fields["revision"])
			require.Equal(t, tc.accessor, fields["accessor"])
		})
	}
}

// TestProbe_RequireGate rejects builds older than the required release target.
func TestProbe_RequireGate(t *testing.T) {
	t.Parallel()

	options := &prober.Options{
		SnapshotPath: filepath.Join("testdata", "spigot-1.18-rc3.yaml"),
		Require:      "1.18",
	}

	require.NoError(t, prober.Run(context.Background(), options, new(bytes.Buffer)))

	options.Require = "1.19.4"
	require.ErrorIs(t, prober.Run(context.Background(), options, new(bytes.Buffer)), prober.ErrRequirementNotMet)
}
