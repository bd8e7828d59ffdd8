package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoaderRejectsUnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hej"), 0o644))

	loader := &Loader{}
	_, err := loader.Load(context.Background(), path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoaderRejectsMissingFile(t *testing.T) {
	t.Parallel()

	loader := &Loader{}
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}

func TestLoaderDecodesWAVNatively(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "speech.wav")
	writeWAV(t, path, TargetSampleRate, 1, []int{100, 200, 300, 400})

	loader := &Loader{}
	clip, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, path, clip.Path)
	require.Equal(t, TargetSampleRate, clip.SampleRate)
	require.Len(t, clip.Samples, 4)
}

func TestLoaderRejectsEmptyWAV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.wav")
	writeWAV(t, path, TargetSampleRate, 1, nil)

	loader := &Loader{}
	_, err := loader.Load(context.Background(), path)
	require.ErrorIs(t, err, ErrEmptyAudio)
}

func TestLoaderFFmpegMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "music.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really mp3"), 0o644))

	loader := &Loader{FFmpegPath: filepath.Join(t.TempDir(), "no-such-ffmpeg")}
	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), FFmpegEnv)
}

func TestLoaderDecodesViaFFmpeg(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}

	path := filepath.Join(t.TempDir(), "via-ffmpeg.wav")
	writeWAV(t, path, 8000, 1, []int{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000})

	clip, err := decodeWithFFmpeg(context.Background(), "ffmpeg", path)
	require.NoError(t, err)
	require.Equal(t, TargetSampleRate, clip.SampleRate)
	require.NotEmpty(t, clip.Samples)
}

func TestClipDuration(t *testing.T) {
	t.Parallel()

	clip := &Clip{Samples: make([]float32, TargetSampleRate*2), SampleRate: TargetSampleRate}
	require.Equal(t, "2s", clip.Duration().String())

	empty := &Clip{}
	require.Zero(t, empty.Duration())
}

func TestIsSupported(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want bool
	}{
		{"clip.wav", true},
		{"CLIP.WAV", true},
		{"tal.mp3", true},
		{"tal.m4a", true},
		{"tal.flac", true},
		{"tal.ogg", true},
		{"tal.aac", true},
		{"tal.txt", false},
		{"tal.opus", false},
		{"tal", false},
	}

	for _, tc := range cases {
		require.Equalf(t, tc.want, IsSupported(tc.path), "path %q", tc.path)
	}
}
