// Package probe reads the display version and release target of a game
// server runtime whose accessor names change between builds.
//
// The display version accessor is chosen from the server revision (getName up
// to 1.19.3, the obfuscated c from 1.19.4) and called through a symbol.Resolver.
// The release target accessor is optional and falls back to the display version.
package probe
