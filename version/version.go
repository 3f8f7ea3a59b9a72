package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/partgen/errors"
)

// Build information. These variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/teranos/partgen/version.CommitHash=$(git rev-parse HEAD)"
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	Release    bool   `json:"release"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Release:    IsRelease(Version),
	}
}

// IsRelease reports whether v is a semantic version without a prerelease tag.
func IsRelease(v string) bool {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return false
	}
	return ver.Prerelease() == ""
}

// Satisfies checks the version against a semver constraint such as ">= 1.2".
// Non-semver builds never satisfy a constraint.
func (i Info) Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, errors.Wrapf(err, "invalid version constraint %s", constraint)
	}
	ver, err := semver.NewVersion(i.Version)
	if err != nil {
		return false, nil
	}
	return c.Check(ver), nil
}

// String returns a human-readable version string
func (i Info) String() string {
	s := fmt.Sprintf("partgen %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
	if i.Version != "dev" && !i.Release {
		s += " [pre-release]"
	}
	return s
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
