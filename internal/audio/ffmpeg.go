package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// decodeWithFFmpeg shells out to ffmpeg and reads raw float32 PCM from its
// stdout, already downmixed and resampled.
func decodeWithFFmpeg(ctx context.Context, ffmpegPath, path string) (*Clip, error) {
	args := []string{
		"-nostdin", "-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "f32le",
		"-ac", "1",
		"-ar", strconv.Itoa(TargetSampleRate),
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return nil, fmt.Errorf("ffmpeg decode %s: %w: %s", path, err, detail)
		}
		return nil, fmt.Errorf("ffmpeg decode %s: %w", path, err)
	}

	samples, err := samplesFromF32LE(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode %s: %w", path, err)
	}

	return &Clip{Path: path, Samples: samples, SampleRate: TargetSampleRate}, nil
}

// samplesFromF32LE reinterprets little-endian float32 PCM bytes.
func samplesFromF32LE(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("raw pcm stream truncated at %d bytes", len(data))
	}

	samples := make([]float32, len(data)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples, nil
}
