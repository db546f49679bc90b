// Package mcversion contains the domain types produced by a version probe.
//
// Revision is the parsed server revision (1.19 R3) and Info is the immutable
// pair of display name and release target read from the runtime.
package mcversion
