// Package buildinfo exposes the version stamped into the binary at build
// time. All three variables default to development placeholders and are
// overridden with -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/specatlas/specatlas/pkg/buildinfo.Version=v0.3.0"
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the build information for the version command.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra SetVersionTemplate string.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
