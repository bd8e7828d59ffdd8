package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taltext/taltext/internal/transcribe"
)

func runCommand(t *testing.T, args []string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

type stubEngine struct {
	text   string
	err    error
	closed bool
}

func (s *stubEngine) Transcribe(_ context.Context, _ transcribe.Request) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubEngine) Close() error {
	s.closed = true
	return nil
}

// writeDummyAudio creates a file that passes the extension check. The
// content is never decoded in tests that stub the transcribe seam.
func writeDummyAudio(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF0000WAVE"), 0o644))
	return path
}
