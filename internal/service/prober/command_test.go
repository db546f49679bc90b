package prober

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mc-version-probe/internal/config"
	"github.com/oshokin/mc-version-probe/internal/probe"
	"github.com/oshokin/mc-version-probe/internal/report"
)

const modernSnapshot = `
raw_version: v1_19_R3
classes:
  - package: net.minecraft
    name: MinecraftVersion
    methods:
      c:
        returns: "1.19.4"
`

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestRun_Text probes a snapshot and writes the text report.
func TestRun_Text(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		SnapshotPath: writeFile(t, "build.yaml", modernSnapshot),
	}, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "name: 1.19.4\n")
	require.Contains(t, out.String(), "release_target: 1.19.4\n")
	require.Contains(t, out.String(), "accessor: c\n")
}

// TestRun_RawVersionOverride selects the legacy accessor for an overridden revision.
func TestRun_RawVersionOverride(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		SnapshotPath: writeFile(t, "build.yaml", modernSnapshot),
		RawVersion:   "v1_19_R2",
	}, &out)

	var reflErr *probe.ReflectionError

	require.ErrorAs(t, err, &reflErr)
	require.Equal(t, "net.minecraft.MinecraftVersion.getName", reflErr.Symbol)
	require.Empty(t, out.String())
}

// TestRun_Require enforces the minimum release target after writing the report.
func TestRun_Require(t *testing.T) {
	t.Parallel()

	snapshotPath := writeFile(t, "build.yaml", modernSnapshot)

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{SnapshotPath: snapshotPath, Require: "1.19"}, &out))

	out.Reset()

	err := Run(context.Background(), &Options{SnapshotPath: snapshotPath, Require: "1.20"}, &out)
	require.ErrorIs(t, err, ErrRequirementNotMet)
	require.NotEmpty(t, out.String())
}

// TestRun_ConfigOverrides applies accessor symbols from the settings file.
func TestRun_ConfigOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Accessors.RenamedName = "b"
	cfg.Accessors.ReleaseTarget = "getTarget"

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))

	snapshotPath := writeFile(t, "build.yaml", `
raw_version: v1_20_R1
classes:
  - package: net.minecraft
    name: MinecraftVersion
    methods:
      b: {returns: "1.20.1"}
      getTarget: {returns: "1.20"}
`)

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath:   cfgPath,
		SnapshotPath: snapshotPath,
		Format:       string(report.FormatText),
	}, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "name: 1.20.1\n")
	require.Contains(t, out.String(), "release_target: 1.20\n")
}

// TestRun_InvalidInput covers missing inputs and bad flags.
func TestRun_InvalidInput(t *testing.T) {
	t.Parallel()

	snapshotPath := writeFile(t, "build.yaml", modernSnapshot)

	err := Run(context.Background(), new(Options), new(bytes.Buffer))
	require.ErrorIs(t, err, errSnapshotRequired)

	err = Run(context.Background(), &Options{SnapshotPath: snapshotPath, Format: "xml"}, new(bytes.Buffer))
	require.ErrorIs(t, err, report.ErrUnknownFormat)

	noVersion := writeFile(t, "build.yaml", "classes:\n  - name: MinecraftVersion\n")
	err = Run(context.Background(), &Options{SnapshotPath: noVersion}, new(bytes.Buffer))
	require.ErrorIs(t, err, errRawVersionRequired)

	err = Run(context.Background(), &Options{SnapshotPath: snapshotPath, RawVersion: "latest"}, new(bytes.Buffer))
	require.ErrorIs(t, err, probe.ErrMalformedVersion)

	err = Run(context.Background(), &Options{
		SnapshotPath: snapshotPath,
		ConfigPath:   filepath.Join(t.TempDir(), "missing.yaml"),
	}, new(bytes.Buffer))
	require.Error(t, err)
}

// TestAccessor prints the accessor selected for a raw version.
func TestAccessor(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, Accessor(context.Background(), &AccessorOptions{RawVersion: "1.19.3-R3"}, &out))
	require.Equal(t, "c\n", out.String())

	out.Reset()

	require.NoError(t, Accessor(context.Background(), &AccessorOptions{RawVersion: "v1_18_R2"}, &out))
	require.Equal(t, "getName\n", out.String())

	err := Accessor(context.Background(), &AccessorOptions{RawVersion: "1.19.4"}, &out)
	require.ErrorIs(t, err, probe.ErrFormat)
}
