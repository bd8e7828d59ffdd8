package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"go.uber.org/zap"

	"github.com/taltext/taltext/internal/audio"
)

// WhisperEngine runs a whisper.cpp model in-process. The model handle is
// loaded once and reused across calls; whisper contexts are not safe for
// concurrent use, so Transcribe serializes callers.
type WhisperEngine struct {
	mu     sync.Mutex
	model  whisper.Model
	logger *zap.Logger
}

type WhisperConfig struct {
	ModelPath string
	Logger    *zap.Logger
}

func NewWhisperEngine(cfg WhisperConfig) (*WhisperEngine, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("model path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	model, err := whisper.New(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model %s: %w", cfg.ModelPath, err)
	}

	logger.Debug("whisper model loaded", zap.String("path", cfg.ModelPath))
	return &WhisperEngine{model: model, logger: logger}, nil
}

func (e *WhisperEngine) Transcribe(ctx context.Context, req Request) (string, error) {
	if len(req.Samples) == 0 {
		return "", errors.New("no audio samples")
	}
	if req.SampleRate != audio.TargetSampleRate {
		return "", fmt.Errorf("whisper expects %d Hz input, got %d", audio.TargetSampleRate, req.SampleRate)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model == nil {
		return "", errors.New("engine is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	wctx, err := e.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("create whisper context: %w", err)
	}

	language := req.Language
	if language == "" {
		language = DefaultLanguage
	}
	if err := wctx.SetLanguage(language); err != nil {
		return "", fmt.Errorf("set language %q: %w", language, err)
	}
	wctx.SetTranslate(false)

	if err := wctx.Process(req.Samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("process audio: %w", err)
	}

	var segments []string
	for {
		segment, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read segment: %w", err)
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			segments = append(segments, text)
		}
	}

	return strings.Join(segments, " "), nil
}

func (e *WhisperEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.model == nil {
		return nil
	}

	err := e.model.Close()
	e.model = nil
	return err
}
