// Package version records build metadata injected at link time.
package version

// Version is the release version, overridden via -ldflags at build time.
var Version = "dev"

// Commit is the git commit hash the binary was built from.
var Commit = "unknown"

// Date is the build timestamp.
var Date = "unknown"
