package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	for _, flag := range []string{"model", "model-dir", "language", "auto-download", "engine", "output", "verbose", "json", "no-progress"} {
		require.NotNilf(t, cmd.Flags().Lookup(flag), "flag --%s should be registered", flag)
	}
	require.NotNil(t, cmd.Flags().ShorthandLookup("o"))

	defaults := map[string]string{
		"model":         "large",
		"language":      "sv",
		"auto-download": "true",
		"engine":        "whisper",
	}
	for name, want := range defaults {
		require.Equal(t, want, cmd.Flags().Lookup(name).DefValue)
	}

	subs := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		subs = append(subs, sub.Name())
	}
	require.Subset(t, subs, []string{"serve", "setup", "models", "version"})
}

func TestRootHelpListsSubcommands(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, []string{"--help"})
	require.NoError(t, err)
	for _, sub := range []string{"serve", "setup", "models", "version"} {
		require.Contains(t, stdout, sub)
	}
}

func TestSubcommandHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"serve", "--help"}, want: "Run the web UI"},
		{args: []string{"setup", "--help"}, want: "Download and verify a KBLab whisper model"},
		{args: []string{"models", "--help"}, want: "List known models"},
	}

	for _, tt := range tests {
		stdout, _, err := runCommand(t, tt.args)
		require.NoError(t, err)
		require.Contains(t, stdout, tt.want)
	}
}

func TestSanitizeLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "sv"},
		{input: "  ", want: "sv"},
		{input: "SV", want: "sv"},
		{input: " En ", want: "en"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, sanitizeLanguage(tt.input))
	}
}
