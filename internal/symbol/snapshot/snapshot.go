package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/mc-version-probe/internal/symbol"
)

// Runtime is a recorded runtime build. It resolves symbols against the
// recorded classes and replays the recorded results on invocation.
type Runtime struct {
	// RawVersion is the server revision string reported by the build.
	RawVersion string `yaml:"raw_version"`
	// Classes lists the recorded classes.
	Classes []Class `yaml:"classes"`

	// instance is the handle passed to the probe as the runtime object.
	instance *Instance
}

// Class is a recorded runtime class.
type Class struct {
	// Package is the logical package of the class.
	Package string `yaml:"package"`
	// Name is the simple name of the class.
	Name string `yaml:"name"`
	// Methods maps method symbols to their recorded behavior.
	Methods map[string]Method `yaml:"methods"`
}

// Method is the recorded behavior of a zero-argument method.
type Method struct {
	// Returns is the value returned by the method.
	Returns any `yaml:"returns"`
	// Fails, when set, is the failure raised by the method instead.
	Fails string `yaml:"fails"`
}

// Instance is the runtime object handle of a snapshot.
type Instance struct {
	runtime *Runtime
}

var (
	// errNoClasses is returned for a snapshot without classes.
	errNoClasses = errors.New("snapshot declares no classes")
	// errUnnamedClass is returned for a class without a simple name.
	errUnnamedClass = errors.New("snapshot class has no name")
	// errForeignHandle is returned when a handle was produced by another snapshot.
	errForeignHandle = errors.New("handle does not belong to this snapshot")
)

// Load reads a snapshot from a YAML file.
func Load(path string) (*Runtime, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	return Parse(contents)
}

// Parse decodes a snapshot from YAML.
func Parse(data []byte) (*Runtime, error) {
	rt := new(Runtime)
	if err := yaml.Unmarshal(data, rt); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if len(rt.Classes) == 0 {
		return nil, errNoClasses
	}

	for i := range rt.Classes {
		if rt.Classes[i].Name == "" {
			return nil, fmt.Errorf("class #%d: %w", i, errUnnamedClass)
		}
	}

	rt.instance = &Instance{runtime: rt}

	return rt, nil
}

// Instance returns the runtime object handle to probe.
func (rt *Runtime) Instance() *Instance {
	return rt.instance
}

// classHandle is the symbol.Class handed out by a Runtime.
type classHandle struct {
	runtime *Runtime
	class   *Class
}

func (c *classHandle) Package() string { return c.class.Package }
func (c *classHandle) Name() string    { return c.class.Name }

// methodHandle is the symbol.Method handed out by a Runtime.
type methodHandle struct {
	class  *classHandle
	symbol string
	method Method
}

func (m *methodHandle) Class() symbol.Class { return m.class } //nolint:ireturn // Handles are opaque by contract.
func (m *methodHandle) Name() string        { return m.symbol }

// ClassByName resolves a recorded class.
//
//nolint:ireturn // Handles are opaque by contract.
func (rt *Runtime) ClassByName(pkg, simpleName string) (symbol.Class, error) {
	for i := range rt.Classes {
		if rt.Classes[i].Package == pkg && rt.Classes[i].Name == simpleName {
			return &classHandle{runtime: rt, class: &rt.Classes[i]}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", symbol.ErrClassNotFound, symbol.QualifiedName(pkg, simpleName))
}

// Method resolves a recorded method.
//
//nolint:ireturn // Handles are opaque by contract.
func (rt *Runtime) Method(handle symbol.Class, name string) (symbol.Method, error) {
	c, ok := handle.(*classHandle)
	if !ok || c.runtime != rt {
		return nil, fmt.Errorf("%w: %w", symbol.ErrClassNotFound, errForeignHandle)
	}

	m, ok := c.class.Methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", symbol.ErrMethodNotFound, symbol.QualifiedName(c.class.Package, c.class.Name, name))
	}

	return &methodHandle{class: c, symbol: name, method: m}, nil
}

// Invoke replays the recorded result of the method.
func (rt *Runtime) Invoke(handle symbol.Method, instance any) (any, error) {
	m, ok := handle.(*methodHandle)
	if !ok || m.class.runtime != rt {
		return nil, fmt.Errorf("%w: %w", symbol.ErrInvocation, errForeignHandle)
	}

	qualified := symbol.QualifiedName(m.class.class.Package, m.class.class.Name, m.symbol)

	if inst, ok := instance.(*Instance); !ok || inst == nil || inst.runtime != rt {
		return nil, fmt.Errorf("%w: %s called on %T", symbol.ErrInvocation, qualified, instance)
	}

	if m.method.Fails != "" {
		return nil, fmt.Errorf("%w: %s: %s", symbol.ErrInvocation, qualified, m.method.Fails)
	}

	return m.method.Returns, nil
}
