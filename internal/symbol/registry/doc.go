// Package registry implements symbol.Resolver over Go types using reflection.
//
// Runtimes embedded in the same process register their version types under
// logical package names; obfuscated accessor symbols are mapped onto exported
// Go methods with Map.
package registry
