package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// decodeWAVFile reads a PCM wav file natively and converts it to mono
// float32 at TargetSampleRate. Compressed or exotic wav variants fail here
// and are retried through ffmpeg by the Loader.
func decodeWAVFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("parse wav %s: not a valid wav file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("decode wav %s: invalid channel count %d", path, channels)
	}

	samples := normalizeSamples(buf.Data, buf.SourceBitDepth)
	if channels > 1 {
		samples = downmix(samples, channels)
	}

	if rate := buf.Format.SampleRate; rate != TargetSampleRate {
		samples = resampleLinear(samples, rate, TargetSampleRate)
	}

	return &Clip{Path: path, Samples: samples, SampleRate: TargetSampleRate}, nil
}

// normalizeSamples scales integer PCM into [-1, 1]. 8-bit wav stores
// unsigned samples, everything wider is signed.
func normalizeSamples(data []int, bitDepth int) []float32 {
	out := make([]float32, len(data))
	switch bitDepth {
	case 8:
		for i, v := range data {
			out[i] = (float32(v) - 128.0) / 128.0
		}
	case 24:
		for i, v := range data {
			out[i] = float32(v) / 8388608.0
		}
	case 32:
		for i, v := range data {
			out[i] = float32(v) / 2147483648.0
		}
	default:
		for i, v := range data {
			out[i] = float32(v) / 32768.0
		}
	}
	return out
}

// downmix averages interleaved channels into mono.
func downmix(samples []float32, channels int) []float32 {
	frames := len(samples) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += samples[i*channels+c]
		}
		out[i] = sum / float32(channels)
	}
	return out
}

// resampleLinear converts between sample rates with linear interpolation.
func resampleLinear(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		return in
	}

	outLen := int(float64(len(in)) * float64(to) / float64(from))
	if outLen == 0 {
		return nil
	}

	out := make([]float32, outLen)
	ratio := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = in[idx]*(1-frac) + in[idx+1]*frac
	}
	return out
}
