package prober

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/mc-version-probe/internal/config"
	"github.com/oshokin/mc-version-probe/internal/logger"
	"github.com/oshokin/mc-version-probe/internal/probe"
	"github.com/oshokin/mc-version-probe/internal/report"
	"github.com/oshokin/mc-version-probe/internal/symbol/snapshot"
)

// Options controls a probe run.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// SnapshotPath specifies the recorded runtime build to probe.
	SnapshotPath string
	// RawVersion overrides the raw server version recorded in the snapshot.
	RawVersion string
	// Format selects the report encoding (text or json).
	Format string
	// Require is the minimum release target; an older runtime fails the run.
	Require string
}

// AccessorOptions controls an accessor lookup.
type AccessorOptions struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// RawVersion is the raw server version to select the accessor for.
	RawVersion string
}

var (
	// ErrRequirementNotMet is returned when the probed release target is older than required.
	ErrRequirementNotMet = errors.New("release target requirement not met")

	// errSnapshotRequired is returned when no snapshot path is given.
	errSnapshotRequired = errors.New("snapshot path must be provided")
	// errRawVersionRequired is returned when neither the options nor the snapshot carry a raw version.
	errRawVersionRequired = errors.New("raw server version must be provided")
)

// Run probes the snapshot and writes the report to out.
func Run(ctx context.Context, opts *Options, out io.Writer) error {
	ctx = logger.WithName(ctx, "mcprobe")

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	if opts.SnapshotPath == "" {
		return errSnapshotRequired
	}

	runtime, err := snapshot.Load(opts.SnapshotPath)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	rawVersion := runtime.RawVersion
	if opts.RawVersion != "" {
		rawVersion = opts.RawVersion
	}

	if rawVersion == "" {
		return errRawVersionRequired
	}

	p, err := probe.New(ctx, runtime, rawVersion, runtime.Instance(), probe.FromConfig(cfg))
	if err != nil {
		return fmt.Errorf("probe runtime: %w", err)
	}

	logger.InfoKV(ctx, "Runtime probed",
		"snapshot", opts.SnapshotPath,
		"name", p.Name(),
		"release_target", p.ReleaseTarget(),
		"release_target_found", p.ReleaseTargetFound())

	result := &report.Result{
		Name:          p.Name(),
		ReleaseTarget: p.ReleaseTarget(),
		Revision:      p.Revision().String(),
		Accessor:      p.Accessor(),
	}

	if err = report.Write(out, result, format); err != nil {
		return err
	}

	if opts.Require != "" && !p.Info().AtLeast(opts.Require) {
		return fmt.Errorf("%w: %s is older than %s", ErrRequirementNotMet, p.ReleaseTarget(), opts.Require)
	}

	return nil
}

// Accessor writes the display version accessor selected for a raw version.
func Accessor(ctx context.Context, opts *AccessorOptions, out io.Writer) error {
	ctx = logger.WithName(ctx, "mcprobe")

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	accessor, revision, err := probe.AccessorSymbol(opts.RawVersion, probe.FromConfig(cfg))
	if err != nil {
		return fmt.Errorf("select accessor: %w", err)
	}

	logger.DebugKV(ctx, "Accessor selected", "raw_version", opts.RawVersion, "revision", revision.String())

	if _, err = fmt.Fprintln(out, accessor); err != nil {
		return fmt.Errorf("write accessor: %w", err)
	}

	return nil
}

// loadConfig reads the settings and applies the configured log level.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// Validated by config.Load.
	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	return cfg, nil
}
