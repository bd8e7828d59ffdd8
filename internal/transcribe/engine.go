// Package transcribe turns decoded audio into Swedish text. The default
// engine runs a whisper.cpp model in-process; an alternative engine forwards
// audio to any endpoint speaking the OpenAI audio API.
package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/taltext/taltext/internal/audio"
)

// DefaultLanguage is what the KBLab models are trained for.
const DefaultLanguage = "sv"

type Request struct {
	Samples    []float32
	SampleRate int
	Language   string
}

type Engine interface {
	Transcribe(ctx context.Context, req Request) (string, error)
	Close() error
}

// Result is the outcome of transcribing one source file.
type Result struct {
	Source  string
	Text    string
	Elapsed time.Duration
}

// File decodes path with loader and runs it through engine. Elapsed covers
// decode plus inference.
func File(ctx context.Context, engine Engine, loader *audio.Loader, path, language string) (Result, error) {
	start := time.Now()

	clip, err := loader.Load(ctx, path)
	if err != nil {
		return Result{}, err
	}

	text, err := engine.Transcribe(ctx, Request{
		Samples:    clip.Samples,
		SampleRate: clip.SampleRate,
		Language:   language,
	})
	if err != nil {
		return Result{}, fmt.Errorf("transcribe %s: %w", path, err)
	}

	return Result{Source: path, Text: text, Elapsed: time.Since(start)}, nil
}
