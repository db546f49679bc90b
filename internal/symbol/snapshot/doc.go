// Package snapshot implements symbol.Resolver over a YAML recording of a runtime build.
//
// A snapshot lists the classes of the build and, for each method symbol, either
// the value it returns or the failure it raises. It lets version probes run
// offline against known server builds.
package snapshot
