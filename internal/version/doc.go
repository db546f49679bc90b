// Package version exposes build metadata of the mcprobe binary.
//
// Version, Commit and BuildTime are injected via Go ldflags. When Version is
// left at its default, the module version recorded by the Go toolchain is used.
package version
