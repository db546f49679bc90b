package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/mc-version-probe/internal/config"
	"github.com/oshokin/mc-version-probe/internal/report"
	"github.com/oshokin/mc-version-probe/internal/service/prober"
	"github.com/oshokin/mc-version-probe/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// snapshotPath stores the path to the recorded runtime build.
	snapshotPath string
	// outputFormat selects the report encoding.
	outputFormat string
	// requireVersion is the minimum accepted release target.
	requireVersion string

	// rootCmd probes a recorded runtime build for its version.
	rootCmd = &cobra.Command{
		Use:   "mcprobe [raw-version]",
		Short: "Read the version and release target of a game server runtime.",
		Long: `Probe a recorded server runtime build for its display version and release target.

The display version accessor depends on the server revision: builds up to 1.19.3
expose getName, 1.19.4 and newer expose the obfuscated accessor c. The release
target is optional and falls back to the display version when the build lacks it.

The raw version (e.g. v1_19_R3) is read from the snapshot unless given as argument.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var rawVersion string
			if len(args) > 0 {
				rawVersion = args[0]
			}

			options := &prober.Options{
				ConfigPath:   configPath,
				SnapshotPath: snapshotPath,
				RawVersion:   rawVersion,
				Format:       outputFormat,
				Require:      requireVersion,
			}

			return prober.Run(ctx, options, cmd.OutOrStdout())
		},
	}

	// accessorCmd prints the accessor selected for a raw version.
	accessorCmd = &cobra.Command{
		Use:   "accessor <raw-version>",
		Short: "Print the display version accessor used by a server revision.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := &prober.AccessorOptions{
				ConfigPath: configPath,
				RawVersion: args[0],
			}

			return prober.Accessor(cmd.Context(), options, cmd.OutOrStdout())
		},
	}
)

// Execute runs the mcprobe CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+" if present)")

	rootCmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "path to the recorded runtime build (YAML)")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", string(report.FormatText), "report format: text or json")
	rootCmd.Flags().StringVar(&requireVersion, "require", "", "fail when the release target is older than this version")

	if err := rootCmd.MarkFlagRequired("snapshot"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(accessorCmd)
}
