package symbol

import "errors"

var (
	// ErrClassNotFound is returned when no class has the requested name.
	ErrClassNotFound = errors.New("class not found")
	// ErrMethodNotFound is returned when the class has no usable method with the requested name.
	ErrMethodNotFound = errors.New("method not found")
	// ErrInvocation is returned when calling a method fails inside the runtime.
	ErrInvocation = errors.New("invocation failed")
)

// Class is an opaque handle to a runtime class.
type Class interface {
	// Package returns the logical package of the class.
	Package() string
	// Name returns the simple name of the class.
	Name() string
}

// Method is an opaque handle to a zero-argument method of a Class.
type Method interface {
	// Class returns the class declaring the method.
	Class() Class
	// Name returns the symbol the method was resolved by.
	Name() string
}

// Resolver finds and invokes runtime symbols by logical name.
type Resolver interface {
	// ClassByName resolves a class, failing with ErrClassNotFound.
	ClassByName(pkg, simpleName string) (Class, error)
	// Method resolves a method on class, failing with ErrMethodNotFound.
	Method(class Class, name string) (Method, error)
	// Invoke calls method on instance, failing with ErrInvocation.
	Invoke(method Method, instance any) (any, error)
}

// QualifiedName joins a package, a class and optional member into a dotted name.
func QualifiedName(pkg, class string, member ...string) string {
	name := class
	if pkg != "" {
		name = pkg + "." + class
	}

	for _, m := range member {
		name += "." + m
	}

	return name
}
