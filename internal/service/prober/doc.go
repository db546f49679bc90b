// Package prober runs version probes for the mcprobe CLI.
//
// It loads settings and a recorded runtime snapshot, probes it and writes the
// report, optionally enforcing a minimum release target.
package prober
