// Package version carries the build metadata of the gocrane binary.
package version

import "fmt"

// Set at build time with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/alexiusacademia/gocrane/internal/version.Version=0.2.0 \
//	  -X github.com/alexiusacademia/gocrane/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	Author = "Alexius Academia"
	Year   = "2025"
)

// String is the one-line version banner
func String() string {
	s := "gocrane v" + Version
	if GitCommit != "unknown" {
		s += fmt.Sprintf(" (%s, built %s)", GitCommit, BuildTime)
	}
	return s
}
