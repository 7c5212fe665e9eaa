package app

import "fmt"

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/Eiad-Soufan/bm-requests-frontend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for `portal version` and
// the User-Agent header.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// UserAgent appends the version to the configured product name.
func UserAgent(product string) string {
	if product == "" {
		product = "bmportal-cli"
	}
	return product + "/" + Version
}
