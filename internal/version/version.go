package version

import (
	"os/exec"
	"strings"
)

var (
	Version = "2.0.0"
	Commit  = "unknown"
	Date    = "unknown"
)

type gitRunner func(args ...string) (string, error)

// Resolve returns the release version, extended with git describe output
// when running from a source checkout that has moved past the release tag.
func Resolve() string {
	return buildVersion(Version, gitOutput)
}

func buildVersion(base string, git gitRunner) string {
	if base == "" {
		base = "0.0.0"
	}

	// Outside a checkout, or exactly on the release tag, the plain base
	// version is the whole story.
	if _, err := git("rev-parse", "--git-dir"); err != nil {
		return base
	}
	if _, err := git("describe", "--tags", "--exact-match"); err == nil {
		return base
	}

	desc, err := git("describe", "--tags", "--dirty", "--always")
	if err != nil {
		return base
	}

	suffix := strings.TrimPrefix(desc, "v"+base+"-")
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}

func gitOutput(args ...string) (string, error) {
	out, err := exec.Command("git", args...).Output()
	return strings.TrimSpace(string(out)), err
}
