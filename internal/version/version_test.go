package version

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// gitStub answers the three git invocations buildVersion makes. A nil
// error on repoErr simulates running inside a checkout.
type gitStub struct {
	repoErr  error
	exact    string
	exactErr error
	describe string
	descErr  error
}

func (g gitStub) run(args ...string) (string, error) {
	switch {
	case len(args) > 0 && args[0] == "rev-parse":
		return ".git", g.repoErr
	case slices.Contains(args, "--exact-match"):
		return g.exact, g.exactErr
	default:
		return g.describe, g.descErr
	}
}

func TestBuildVersion(t *testing.T) {
	t.Parallel()

	noTag := errors.New("no tag matches")
	notARepo := errors.New("not a git repository")

	tests := []struct {
		name string
		base string
		git  gitStub
		want string
	}{
		{
			name: "exactly on release tag",
			base: "2.0.0",
			git:  gitStub{exact: "v2.0.0"},
			want: "2.0.0",
		},
		{
			name: "commits after tag",
			base: "2.0.0",
			git:  gitStub{exactErr: noTag, describe: "v2.0.0-5-g1f2e3d"},
			want: "2.0.0-5-g1f2e3d",
		},
		{
			name: "dirty working tree",
			base: "2.0.0",
			git:  gitStub{exactErr: noTag, describe: "v2.0.0-5-g1f2e3d-dirty"},
			want: "2.0.0-5-g1f2e3d-dirty",
		},
		{
			name: "no tags at all",
			base: "2.0.0",
			git:  gitStub{exactErr: noTag, describe: "1f2e3d"},
			want: "2.0.0-1f2e3d",
		},
		{
			name: "not a repo",
			base: "2.0.0",
			git:  gitStub{repoErr: notARepo},
			want: "2.0.0",
		},
		{
			name: "empty base falls back to zero",
			base: "",
			git:  gitStub{repoErr: notARepo},
			want: "0.0.0",
		},
		{
			name: "describe fails",
			base: "2.0.0",
			git:  gitStub{exactErr: noTag, descErr: errors.New("describe failed")},
			want: "2.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, buildVersion(tt.base, tt.git.run))
		})
	}
}
