package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultModelDirFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		goos    string
		home    string
		xdg     string
		want    string
		wantErr bool
	}{
		{
			name: "linux honors XDG_DATA_HOME",
			goos: "linux",
			home: "/home/dev",
			xdg:  "/tmp/xdg-data",
			want: "/tmp/xdg-data/taltext/models",
		},
		{
			name: "linux defaults to .local/share",
			goos: "linux",
			home: "/home/dev",
			want: "/home/dev/.local/share/taltext/models",
		},
		{
			name: "darwin uses Application Support",
			goos: "darwin",
			home: "/Users/dev",
			want: "/Users/dev/Library/Application Support/taltext/models",
		},
		{
			name: "windows uses AppData Local",
			goos: "windows",
			home: `C:\Users\dev`,
			want: filepath.Join(`C:\Users\dev`, "AppData", "Local", "taltext", "models"),
		},
		{
			name:    "unsupported platform",
			goos:    "plan9",
			home:    "/home/dev",
			wantErr: true,
		},
		{
			name:    "empty home",
			goos:    "linux",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir, err := DefaultModelDirFor(tt.goos, tt.home, tt.xdg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, dir)
		})
	}
}

func TestResolveModelDirOverrideWins(t *testing.T) {
	t.Parallel()

	dir, err := ResolveModelDir("/opt/models/")
	require.NoError(t, err)
	require.Equal(t, "/opt/models", dir)
}
