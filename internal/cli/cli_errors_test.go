package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandLineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "misspelled subcommand",
			args:    []string{"badcmd"},
			wantErr: "unknown command",
		},
		{
			name:    "unknown flag on root",
			args:    []string{"--badflag"},
			wantErr: "unknown flag",
		},
		{
			name:    "unknown flag on subcommand",
			args:    []string{"serve", "--bogus"},
			wantErr: "unknown flag",
		},
		{
			name:    "no input argument",
			args:    []string{},
			wantErr: "accepts 1 arg(s)",
		},
		{
			name:    "two input arguments",
			args:    []string{"a.wav", "b.wav"},
			wantErr: "accepts 1 arg(s)",
		},
		{
			name:    "input does not exist",
			args:    []string{"/no/such/file.wav"},
			wantErr: "input not found",
		},
		{
			name:    "config file does not exist",
			args:    []string{"serve", "--config", "/no/such/config.yaml"},
			wantErr: "open config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runCommand(t, tt.args)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTranscribeUnknownEngine(t *testing.T) {
	t.Parallel()

	path := writeDummyAudio(t, t.TempDir(), "sample.wav")

	_, _, err := runCommand(t, []string{"--engine", "turbo", path})
	require.ErrorContains(t, err, `unknown engine "turbo"`)
}

func TestTranscribeUnknownModelName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDummyAudio(t, dir, "sample.wav")

	_, _, err := runCommand(t, []string{"--model", "gigantic", "--model-dir", dir, path})
	require.ErrorContains(t, err, "unknown model")
}

func TestTranscribeMissingModelWithoutAutoDownload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDummyAudio(t, dir, "sample.wav")

	_, _, err := runCommand(t, []string{"--auto-download=false", "--model-dir", dir, path})
	require.ErrorContains(t, err, "taltext setup --model large")
}

func TestSetupRejectsNonexistentCustomModelPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, _, err := runCommand(t, []string{"setup", "--model-dir", dir, "--model", filepath.Join(dir, "weights", "model.bin")})
	require.ErrorContains(t, err, "custom model path does not exist")
}

func TestVersionOutput(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--version"}, {"version"}} {
		stdout, _, err := runCommand(t, args)
		require.NoError(t, err)
		require.Truef(t, strings.HasPrefix(stdout, "taltext v"), "expected version prefix, got: %s", stdout)
	}
}
