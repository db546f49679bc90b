// Package config loads, validates and saves mcprobe settings in YAML format.
//
// Settings name the runtime class that exposes version information and the
// accessor symbols used for it across runtime builds.
package config
