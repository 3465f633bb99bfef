// Package version carries the build version, overridable via ldflags.
package version

var Version = "dev"
