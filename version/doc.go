// Package version reports the sporeplan build version.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/sporeplan/version.Version=1.0.0"
//
// Without ldflags the module version and VCS stamp embedded by the Go
// toolchain are used.
package version
