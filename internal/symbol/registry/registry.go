package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/oshokin/mc-version-probe/internal/symbol"
)

// errorType is the reflect type of the error interface.
//
//nolint:gochecknoglobals // Computed once, read only.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// errForeignHandle is returned when a handle was produced by another resolver.
var errForeignHandle = errors.New("handle does not belong to this registry")

// Registry resolves symbols against Go types registered under logical package names.
//
// Method symbols are matched against exported Go methods: first verbatim, then with
// the first letter upper-cased (getName → GetName). Symbols that cannot be derived
// this way, such as obfuscated ones, are declared with Map.
type Registry struct {
	// mu protects classes and aliases; types may be registered from init functions.
	mu sync.RWMutex
	// classes maps qualified class names to registered classes.
	classes map[string]*class
	// aliases maps qualified method symbols to Go method names.
	aliases map[string]string
}

// class is the Class handle handed out by a Registry.
type class struct {
	owner *Registry
	pkg   string
	name  string
	typ   reflect.Type
}

func (c *class) Package() string { return c.pkg }
func (c *class) Name() string    { return c.name }

// method is the Method handle handed out by a Registry.
type method struct {
	class        *class
	symbol       string
	fn           reflect.Method
	returnsError bool
}

func (m *method) Class() symbol.Class { return m.class } //nolint:ireturn // Handles are opaque by contract.
func (m *method) Name() string        { return m.symbol }

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		classes: make(map[string]*class),
		aliases: make(map[string]string),
	}
}

// Register adds the type of sample as a class named after the Go type.
// Pass a pointer to include pointer receiver methods.
func (r *Registry) Register(pkg string, sample any) {
	typ := reflect.TypeOf(sample)
	name := typ.Name()

	if typ.Kind() == reflect.Pointer {
		name = typ.Elem().Name()
	}

	r.RegisterAs(pkg, name, sample)
}

// RegisterAs adds the type of sample as a class with an explicit simple name.
func (r *Registry) RegisterAs(pkg, simpleName string, sample any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.classes[symbol.QualifiedName(pkg, simpleName)] = &class{
		owner: r,
		pkg:   pkg,
		name:  simpleName,
		typ:   reflect.TypeOf(sample),
	}
}

// Map declares that the method symbol of a registered class is implemented by goMethod.
func (r *Registry) Map(pkg, simpleName, methodSymbol, goMethod string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	qualified := symbol.QualifiedName(pkg, simpleName)
	if _, ok := r.classes[qualified]; !ok {
		return fmt.Errorf("%w: %s", symbol.ErrClassNotFound, qualified)
	}

	r.aliases[symbol.QualifiedName(pkg, simpleName, methodSymbol)] = goMethod

	return nil
}

// ClassByName resolves a registered class.
//
//nolint:ireturn // Handles are opaque by contract.
func (r *Registry) ClassByName(pkg, simpleName string) (symbol.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qualified := symbol.QualifiedName(pkg, simpleName)

	c, ok := r.classes[qualified]
	if !ok {
		return nil, fmt.Errorf("%w: %s", symbol.ErrClassNotFound, qualified)
	}

	return c, nil
}

// Method resolves a zero-argument method returning a value and optionally an error.
//
//nolint:ireturn // Handles are opaque by contract.
func (r *Registry) Method(handle symbol.Class, name string) (symbol.Method, error) {
	c, ok := handle.(*class)
	if !ok || c.owner != r {
		return nil, fmt.Errorf("%w: %w", symbol.ErrClassNotFound, errForeignHandle)
	}

	qualified := symbol.QualifiedName(c.pkg, c.name, name)

	fn, ok := r.lookup(c, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", symbol.ErrMethodNotFound, qualified)
	}

	// The receiver is the first input.
	if fn.Type.NumIn() != 1 {
		return nil, fmt.Errorf("%w: %s takes %d arguments", symbol.ErrMethodNotFound, qualified, fn.Type.NumIn()-1)
	}

	returnsError := false

	switch fn.Type.NumOut() {
	case 1:
	case 2:
		if fn.Type.Out(1) != errorType {
			return nil, fmt.Errorf("%w: %s second result is not an error", symbol.ErrMethodNotFound, qualified)
		}

		returnsError = true
	default:
		return nil, fmt.Errorf("%w: %s returns %d values", symbol.ErrMethodNotFound, qualified, fn.Type.NumOut())
	}

	return &method{
		class:        c,
		symbol:       name,
		fn:           fn,
		returnsError: returnsError,
	}, nil
}

// Invoke calls the method on instance. Panics and returned errors become symbol.ErrInvocation.
func (r *Registry) Invoke(handle symbol.Method, instance any) (result any, err error) {
	m, ok := handle.(*method)
	if !ok || m.class.owner != r {
		return nil, fmt.Errorf("%w: %w", symbol.ErrInvocation, errForeignHandle)
	}

	qualified := symbol.QualifiedName(m.class.pkg, m.class.name, m.symbol)

	recv, ok := receiver(m.class.typ, instance)
	if !ok {
		return nil, fmt.Errorf("%w: %s called on %T", symbol.ErrInvocation, qualified, instance)
	}

	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("%w: %s panicked: %v", symbol.ErrInvocation, qualified, p)
		}
	}()

	out := m.fn.Func.Call([]reflect.Value{recv})

	if m.returnsError && !out[1].IsNil() {
		//nolint:forcetypeassert // Checked against errorType in Method.
		return nil, fmt.Errorf("%w: %s: %w", symbol.ErrInvocation, qualified, out[1].Interface().(error))
	}

	return out[0].Interface(), nil
}

// lookup finds the Go method implementing a symbol.
func (r *Registry) lookup(c *class, name string) (reflect.Method, bool) {
	r.mu.RLock()
	alias, hasAlias := r.aliases[symbol.QualifiedName(c.pkg, c.name, name)]
	r.mu.RUnlock()

	if hasAlias {
		return c.typ.MethodByName(alias)
	}

	if fn, ok := c.typ.MethodByName(name); ok {
		return fn, true
	}

	return c.typ.MethodByName(exported(name))
}

// receiver adapts instance to the registered type, dereferencing pointers to value types.
func receiver(typ reflect.Type, instance any) (reflect.Value, bool) {
	v := reflect.ValueOf(instance)

	switch {
	case !v.IsValid():
		return reflect.Value{}, false
	case v.Type() == typ:
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return reflect.Value{}, false
		}

		return v, true
	case v.Kind() == reflect.Pointer && !v.IsNil() && v.Type().Elem() == typ:
		return v.Elem(), true
	default:
		return reflect.Value{}, false
	}
}

// exported upper-cases the first letter of name.
func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
