package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultOpenAIModel = openai.Whisper1

// OpenAIEngine forwards audio to a hosted transcription endpoint. Any server
// speaking the OpenAI audio API works through BaseURL, so this also covers
// self-hosted whisper gateways.
type OpenAIEngine struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

func NewOpenAIEngine(cfg OpenAIConfig) (*OpenAIEngine, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, errors.New("an API key or a base URL is required for the openai engine")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		logger: logger,
	}, nil
}

func (e *OpenAIEngine) Transcribe(ctx context.Context, req Request) (string, error) {
	if len(req.Samples) == 0 {
		return "", errors.New("no audio samples")
	}

	wavPath := filepath.Join(os.TempDir(), "taltext-"+uuid.NewString()+".wav")
	if err := writePCM16WAV(wavPath, req.Samples, req.SampleRate); err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	e.logger.Debug("sending audio to transcription endpoint", zap.String("model", e.model), zap.Int("samples", len(req.Samples)))

	resp, err := e.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    e.model,
		FilePath: wavPath,
		Language: req.Language,
	})
	if err != nil {
		return "", fmt.Errorf("remote transcription: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

func (e *OpenAIEngine) Close() error {
	return nil
}

// writePCM16WAV encodes float32 samples as a mono 16-bit PCM wav file.
func writePCM16WAV(path string, samples []float32, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		}
		if s < -1 {
			s = -1
		}
		data[i] = int(s * 32767)
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}

	return f.Close()
}
