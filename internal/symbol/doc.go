// Package symbol defines the capability used to reach into a host runtime
// by logical names: find a class, find a method on it, invoke the method.
//
// Implementations live in the registry (Go reflection) and snapshot
// (recorded YAML runtime builds) subpackages.
package symbol
