package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// FFmpegEnv names the environment variable that overrides the ffmpeg binary
// used for decoding.
const FFmpegEnv = "TALTEXT_FFMPEG"

// Loader decodes audio files into Clips.
type Loader struct {
	// FFmpegPath overrides the ffmpeg binary. Empty means $TALTEXT_FFMPEG,
	// then "ffmpeg" from PATH.
	FFmpegPath string
	Logger     *zap.Logger
}

func (l *Loader) Load(ctx context.Context, path string) (*Clip, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if !IsSupported(path) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, NormalizeExt(path), strings.Join(SupportedExtensions(), ", "))
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat audio file: %w", err)
	}

	if NormalizeExt(path) == ".wav" {
		clip, err := decodeWAVFile(path)
		if err == nil {
			if len(clip.Samples) == 0 {
				return nil, fmt.Errorf("%s: %w", path, ErrEmptyAudio)
			}
			logger.Debug("decoded wav natively", zap.String("path", path), zap.Duration("duration", clip.Duration()))
			return clip, nil
		}
		logger.Debug("native wav decode failed, falling back to ffmpeg", zap.String("path", path), zap.Error(err))
	}

	ffmpegPath, err := l.resolveFFmpeg()
	if err != nil {
		return nil, err
	}

	clip, err := decodeWithFFmpeg(ctx, ffmpegPath, path)
	if err != nil {
		return nil, err
	}
	if len(clip.Samples) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyAudio)
	}

	logger.Debug("decoded audio via ffmpeg", zap.String("path", path), zap.Duration("duration", clip.Duration()))
	return clip, nil
}

// FFmpegAvailable reports whether the loader can reach an ffmpeg binary.
func (l *Loader) FFmpegAvailable() bool {
	_, err := l.resolveFFmpeg()
	return err == nil
}

func (l *Loader) resolveFFmpeg() (string, error) {
	candidate := l.FFmpegPath
	if candidate == "" {
		candidate = os.Getenv(FFmpegEnv)
	}
	if candidate == "" {
		candidate = "ffmpeg"
	}

	resolved, err := exec.LookPath(candidate)
	if err != nil {
		return "", fmt.Errorf("ffmpeg is required to decode compressed audio, install it or set %s: %w", FFmpegEnv, err)
	}
	return resolved, nil
}
