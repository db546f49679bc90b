package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/mc-version-probe/internal/config"
	"github.com/oshokin/mc-version-probe/internal/domain/mcversion"
	"github.com/oshokin/mc-version-probe/internal/logger"
	"github.com/oshokin/mc-version-probe/internal/symbol"
)

const (
	// ModernPackage holds the version class since 1.17.
	ModernPackage = "net.minecraft"
	// legacyPackagePrefix prefixes the versioned package used before 1.17.
	legacyPackagePrefix = "net.minecraft.server."
	// firstModernMinor is the first minor version using ModernPackage.
	firstModernMinor = 17
)

// ErrUnexpectedResult is returned when an accessor yields something other than a non-empty string.
var ErrUnexpectedResult = errors.New("accessor did not return a non-empty string")

// NameAccessor identifies which display version accessor a runtime build exposes.
type NameAccessor int

const (
	// LegacyNameAccessor is the plain accessor of builds up to 1.19.3.
	LegacyNameAccessor NameAccessor = iota
	// RenamedNameAccessor is the obfuscated accessor of 1.19.4 and newer.
	RenamedNameAccessor
)

// String implements fmt.Stringer.
func (a NameAccessor) String() string {
	if a == RenamedNameAccessor {
		return "renamed"
	}

	return "legacy"
}

// SelectNameAccessor picks the display version accessor for a revision.
// Builds before 1.19 R3 keep the legacy accessor; 1.19 R3 (1.19.4) and newer use the renamed one.
func SelectNameAccessor(r mcversion.Revision) NameAccessor {
	if r.Minor < 19 || (r.Minor == 19 && r.Release < 3) {
		return LegacyNameAccessor
	}

	return RenamedNameAccessor
}

// RuntimePackage returns the package holding the version class for a revision.
func RuntimePackage(r mcversion.Revision) string {
	if r.Minor < firstModernMinor {
		return legacyPackagePrefix + r.Token()
	}

	return ModernPackage
}

// ReflectionError is returned when the display version accessor cannot be resolved or invoked.
type ReflectionError struct {
	// Symbol is the qualified name of the accessor, e.g. net.minecraft.MinecraftVersion.c.
	Symbol string
	// Err is the resolver failure.
	Err error
}

// Error implements error.
func (e *ReflectionError) Error() string {
	return fmt.Sprintf("%s() method: %v", e.Symbol, e.Err)
}

// Unwrap returns the resolver failure.
func (e *ReflectionError) Unwrap() error {
	return e.Err
}

// Option customizes a probe.
type Option func(*options)

type options struct {
	pkg           string
	class         string
	legacyName    string
	renamedName   string
	releaseTarget string
	splitter      Splitter
}

// WithPackage pins the package of the version class instead of deriving it from the revision.
func WithPackage(pkg string) Option {
	return func(o *options) {
		o.pkg = pkg
	}
}

// WithClass overrides the simple name of the version class.
func WithClass(name string) Option {
	return func(o *options) {
		if name != "" {
			o.class = name
		}
	}
}

// WithAccessors overrides accessor symbols; empty values keep the defaults.
func WithAccessors(legacyName, renamedName, releaseTarget string) Option {
	return func(o *options) {
		if legacyName != "" {
			o.legacyName = legacyName
		}

		if renamedName != "" {
			o.renamedName = renamedName
		}

		if releaseTarget != "" {
			o.releaseTarget = releaseTarget
		}
	}
}

// WithSplitter replaces the raw version splitter.
func WithSplitter(s Splitter) Option {
	return func(o *options) {
		if s != nil {
			o.splitter = s
		}
	}
}

// FromConfig applies the runtime and accessor settings of cfg.
func FromConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}

		WithPackage(cfg.Runtime.Package)(o)
		WithClass(cfg.Runtime.Class)(o)
		WithAccessors(cfg.Accessors.LegacyName, cfg.Accessors.RenamedName, cfg.Accessors.ReleaseTarget)(o)
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		class:         config.DefaultClass,
		legacyName:    config.DefaultLegacyNameAccessor,
		renamedName:   config.DefaultRenamedNameAccessor,
		releaseTarget: config.DefaultReleaseTargetAccessor,
		splitter:      RevisionSplitter{},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// symbolFor maps a NameAccessor to its configured symbol.
func (o *options) symbolFor(a NameAccessor) string {
	if a == RenamedNameAccessor {
		return o.renamedName
	}

	return o.legacyName
}

// AccessorSymbol returns the symbol of the display version accessor for rawVersion.
func AccessorSymbol(rawVersion string, opts ...Option) (string, mcversion.Revision, error) {
	o := newOptions(opts)

	revision, err := ParseRevision(o.splitter, rawVersion)
	if err != nil {
		return "", mcversion.Revision{}, err
	}

	return o.symbolFor(SelectNameAccessor(revision)), revision, nil
}

// VersionProbe holds the version information read from a runtime object.
// It is fully computed by New and read-only afterwards.
type VersionProbe struct {
	revision           mcversion.Revision
	pkg                string
	accessor           string
	info               mcversion.Info
	releaseTargetFound bool
}

// New probes instance for its display version and release target.
//
// The display version accessor is chosen from the revision in rawVersion; failing to
// parse rawVersion or to call the accessor fails the probe. The release target is
// best effort: when the runtime does not expose it, the display version is used.
func New(
	ctx context.Context,
	resolver symbol.Resolver,
	rawVersion string,
	instance any,
	opts ...Option,
) (*VersionProbe, error) {
	o := newOptions(opts)
	ctx = logger.WithKV(logger.WithName(ctx, "probe"), "raw_version", rawVersion)

	revision, err := ParseRevision(o.splitter, rawVersion)
	if err != nil {
		return nil, err
	}

	pkg := o.pkg
	if pkg == "" {
		pkg = RuntimePackage(revision)
	}

	accessor := o.symbolFor(SelectNameAccessor(revision))

	logger.DebugKV(ctx, "Resolving display version", "revision", revision.String(), "package", pkg, "accessor", accessor)

	class, err := resolver.ClassByName(pkg, o.class)
	if err != nil {
		return nil, &ReflectionError{Symbol: symbol.QualifiedName(pkg, o.class, accessor), Err: err}
	}

	name, err := call(resolver, class, accessor, instance)
	if err != nil {
		return nil, &ReflectionError{Symbol: symbol.QualifiedName(pkg, o.class, accessor), Err: err}
	}

	target := resolveReleaseTarget(ctx, resolver, class, o.releaseTarget, instance)

	return &VersionProbe{
		revision:           revision,
		pkg:                pkg,
		accessor:           accessor,
		info:               mcversion.NewInfo(name, target.orElse(name)),
		releaseTargetFound: target.found,
	}, nil
}

// Name returns the display version, e.g. 1.18-rc3.
func (p *VersionProbe) Name() string {
	return p.info.Name()
}

// ReleaseTarget returns the release family, or Name when the runtime does not expose it.
func (p *VersionProbe) ReleaseTarget() string {
	return p.info.ReleaseTarget()
}

// Info returns the probed version information.
func (p *VersionProbe) Info() mcversion.Info {
	return p.info
}

// Revision returns the parsed server revision.
func (p *VersionProbe) Revision() mcversion.Revision {
	return p.revision
}

// Package returns the package the version class was resolved in.
func (p *VersionProbe) Package() string {
	return p.pkg
}

// Accessor returns the symbol the display version was read through.
func (p *VersionProbe) Accessor() string {
	return p.accessor
}

// ReleaseTargetFound reports whether the runtime exposed its release target.
func (p *VersionProbe) ReleaseTargetFound() bool {
	return p.releaseTargetFound
}

// lookup is the outcome of an optional accessor: found with a value, or unavailable.
type lookup struct {
	value string
	found bool
}

// orElse returns the found value or fallback.
func (l lookup) orElse(fallback string) string {
	if l.found {
		return l.value
	}

	return fallback
}

// resolveReleaseTarget reads the release target accessor. It never fails.
func resolveReleaseTarget(
	ctx context.Context,
	resolver symbol.Resolver,
	class symbol.Class,
	accessor string,
	instance any,
) lookup {
	target, err := call(resolver, class, accessor, instance)
	if err != nil {
		logger.DebugKV(ctx, "Release target unavailable, using display version", "accessor", accessor, "reason", err)

		return lookup{}
	}

	return lookup{value: target, found: true}
}

// call resolves and invokes a zero-argument string accessor.
func call(resolver symbol.Resolver, class symbol.Class, accessor string, instance any) (string, error) {
	method, err := resolver.Method(class, accessor)
	if err != nil {
		return "", err
	}

	result, err := resolver.Invoke(method, instance)
	if err != nil {
		return "", err
	}

	s, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrUnexpectedResult, result)
	}

	if s == "" {
		return "", fmt.Errorf("%w: got empty string", ErrUnexpectedResult)
	}

	return s, nil
}
