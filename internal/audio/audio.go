// Package audio loads audio files into the mono 16 kHz float32 stream the
// speech models consume. Plain PCM wav files are parsed natively; compressed
// formats are decoded by shelling out to ffmpeg.
package audio

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// TargetSampleRate is the sample rate whisper models expect.
const TargetSampleRate = 16000

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyAudio        = errors.New("audio stream contains no samples")
)

var supportedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".aac":  true,
}

// Clip is a decoded audio file, mono at SampleRate.
type Clip struct {
	Path       string
	Samples    []float32
	SampleRate int
}

func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Samples)) / float64(c.SampleRate) * float64(time.Second))
}

// IsSupported reports whether path carries one of the recognized audio
// extensions.
func IsSupported(path string) bool {
	return supportedExtensions[NormalizeExt(path)]
}

// NormalizeExt returns the lowercased extension of path, dot included.
func NormalizeExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
