package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/taltext/taltext/internal/download"
	"github.com/taltext/taltext/internal/models"
	"github.com/taltext/taltext/internal/transcribe"
)

func (a *appState) runTranscribe(ctx context.Context, input string) error {
	engineFn := a.engineFn
	if engineFn == nil {
		engineFn = a.buildEngine
	}

	input = filepath.Clean(input)
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input not found: %w", err)
	}

	engine, err := engineFn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			a.log().Warn("failed to close engine", zap.Error(cerr))
		}
	}()

	if info.IsDir() {
		return a.transcribeDirectory(ctx, engine, input)
	}
	return a.transcribeSingle(ctx, engine, input)
}

func (a *appState) transcribeSingle(ctx context.Context, engine transcribe.Engine, path string) error {
	transcribeFn := a.transcribeFn
	if transcribeFn == nil {
		transcribeFn = a.transcribeFile
	}

	result, err := transcribeFn(ctx, engine, path)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.outWriter(), result.Text)

	if a.output != "" {
		dest := resolveOutputPath(a.output, path)
		if err := writeTranscript(dest, result.Text); err != nil {
			return err
		}
		fmt.Fprintf(a.outWriter(), "Transcription saved to: %s\n", dest)
	}
	return nil
}

func (a *appState) transcribeDirectory(ctx context.Context, engine transcribe.Engine, dir string) error {
	transcribeFn := a.transcribeFn
	if transcribeFn == nil {
		transcribeFn = a.transcribeFile
	}

	files, err := listAudioFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no audio files found in %s (supported: %s)", dir, supportedList())
	}

	if a.output != "" {
		if err := os.MkdirAll(a.output, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", a.output, err)
		}
	}

	fmt.Fprintf(a.outWriter(), "Found %d audio files to transcribe.\n", len(files))

	failures := 0
	for i, file := range files {
		fmt.Fprintf(a.outWriter(), "[%d/%d] %s\n", i+1, len(files), filepath.Base(file))

		result, err := transcribeFn(ctx, engine, file)
		if err != nil {
			failures++
			a.log().Error("transcription failed", zap.String("file", file), zap.Error(err))
			fmt.Fprintf(a.outWriter(), "  error: %v\n", err)
			continue
		}

		if a.output != "" {
			dest := filepath.Join(a.output, transcriptFileName(file))
			if err := writeTranscript(dest, result.Text); err != nil {
				failures++
				a.log().Error("failed to save transcript", zap.String("file", file), zap.Error(err))
				fmt.Fprintf(a.outWriter(), "  error: %v\n", err)
				continue
			}
			fmt.Fprintf(a.outWriter(), "  saved: %s\n", dest)
		} else {
			fmt.Fprintln(a.outWriter(), result.Text)
		}
	}

	if failures > 0 {
		a.log().Warn("batch finished with failures",
			zap.Int("total", len(files)),
			zap.Int("failed", failures))
	}
	if failures == len(files) {
		return fmt.Errorf("all %d files failed to transcribe", len(files))
	}
	return nil
}

func (a *appState) buildEngine(ctx context.Context) (transcribe.Engine, error) {
	switch a.engineName {
	case "", "whisper":
		modelPath, err := a.ensureModelAvailable(ctx)
		if err != nil {
			return nil, err
		}
		done := startSpinner(a.progressEnabled(), "Loading model")
		engine, err := transcribe.NewWhisperEngine(transcribe.WhisperConfig{
			ModelPath: modelPath,
			Logger:    a.log(),
		})
		done()
		return engine, err
	case "openai":
		return transcribe.NewOpenAIEngine(transcribe.OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: a.openAIBaseURL,
			Model:   a.openAIModel,
			Logger:  a.log(),
		})
	default:
		return nil, fmt.Errorf("unknown engine %q (available: whisper, openai)", a.engineName)
	}
}

func (a *appState) ensureModelAvailable(ctx context.Context) (string, error) {
	modelDir, err := a.modelStorageDir()
	if err != nil {
		return "", err
	}

	resolved, err := models.Resolve(a.model, modelDir)
	if err != nil {
		return "", err
	}
	if !resolved.NeedsDownload {
		a.log().Debug("model is available locally", zap.String("path", resolved.Path))
		return resolved.Path, nil
	}
	if !a.autoDownload {
		return "", fmt.Errorf("model %s is not downloaded (run `taltext setup --model %s` or enable --auto-download)", resolved.Name, resolved.Name)
	}

	a.log().Info("downloading model",
		zap.String("model", resolved.Name),
		zap.String("url", resolved.URL))
	err = download.DownloadFile(ctx, download.Options{
		URL:            resolved.URL,
		Destination:    resolved.Path,
		ExpectedSHA256: resolved.SHA256,
		ChecksumURL:    resolved.SHA256URL,
		NoProgress:     !a.progressEnabled(),
		Logger:         a.log(),
	})
	if err != nil {
		return "", fmt.Errorf("download model %s: %w", resolved.Name, err)
	}
	return resolved.Path, nil
}

func (a *appState) transcribeFile(ctx context.Context, engine transcribe.Engine, path string) (transcribe.Result, error) {
	a.log().Info("transcribing", zap.String("file", path))

	done := startSpinner(a.progressEnabled(), "Transcribing")
	result, err := transcribe.File(ctx, engine, a.loader(), path, a.language)
	done()
	if err != nil {
		return transcribe.Result{}, err
	}

	a.log().Info("transcription finished",
		zap.String("file", path),
		zap.Duration("elapsed", result.Elapsed.Round(time.Millisecond)))
	return result, nil
}
