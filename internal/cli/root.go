package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/taltext/taltext/internal/audio"
	"github.com/taltext/taltext/internal/logging"
	"github.com/taltext/taltext/internal/models"
	"github.com/taltext/taltext/internal/platform"
	"github.com/taltext/taltext/internal/transcribe"
	"github.com/taltext/taltext/internal/version"
)

// appState carries flag values and shared dependencies across the root
// command and its subcommands. The engineFn and transcribeFn seams let
// tests run the full command wiring without loading model weights.
type appState struct {
	verbose      bool
	jsonLogs     bool
	noProgress   bool
	model        string
	modelDir     string
	language     string
	autoDownload bool

	engineName    string
	openAIBaseURL string
	openAIModel   string

	output    string
	uploadDir string

	logger *zap.Logger
	out    io.Writer

	engineFn     func(ctx context.Context) (transcribe.Engine, error)
	transcribeFn func(ctx context.Context, engine transcribe.Engine, path string) (transcribe.Result, error)
}

func NewRootCmd() *cobra.Command {
	app := &appState{
		model:        models.DefaultModel,
		language:     transcribe.DefaultLanguage,
		autoDownload: true,
		engineName:   "whisper",
		out:          os.Stdout,
	}
	app.engineFn = app.buildEngine
	app.transcribeFn = app.transcribeFile

	cmd := &cobra.Command{
		Use:           "taltext <audio-file-or-directory>",
		Short:         "Transcribe Swedish speech to text with KBLab whisper models",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return app.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTranscribe(cmd.Context(), args[0])
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	bindGlobalFlags(cmd, app)
	bindModelFlags(cmd, app)
	bindEngineFlags(cmd, app)
	cmd.Flags().StringVarP(&app.output, "output", "o", "", "Output file (single input) or directory (batch input)")

	cmd.AddCommand(
		newServeCmd(app),
		newSetupCmd(app),
		newModelsCmd(app),
		newVersionCmd(),
	)

	return cmd
}

// init runs once per invocation before any RunE.
func (a *appState) init() error {
	logger, err := logging.New(logging.Options{Verbose: a.verbose, JSON: a.jsonLogs})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.logger = logger
	a.language = sanitizeLanguage(a.language)
	return nil
}

func bindGlobalFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.verbose, "verbose", app.verbose, "Verbose log output")
	cmd.Flags().BoolVar(&app.jsonLogs, "json", app.jsonLogs, "Log as JSON instead of console lines")
	cmd.Flags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Suppress spinners and progress bars")
}

func bindModelFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.model, "model", app.model, "Model name (tiny|base|small|medium|large), hub id, or model file path")
	cmd.Flags().StringVar(&app.modelDir, "model-dir", app.modelDir, "Model storage directory")
	cmd.Flags().BoolVar(&app.autoDownload, "auto-download", app.autoDownload, "Download missing models on demand")
}

func bindEngineFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.language, "language", app.language, "Language code passed to the model")
	cmd.Flags().StringVar(&app.engineName, "engine", app.engineName, "Transcription engine: whisper|openai")
	cmd.Flags().StringVar(&app.openAIBaseURL, "openai-base-url", app.openAIBaseURL, "Base URL for the openai engine (any OpenAI-compatible endpoint)")
	cmd.Flags().StringVar(&app.openAIModel, "openai-model", app.openAIModel, "Remote model name for the openai engine")
}

func (a *appState) modelStorageDir() (string, error) {
	dir, err := platform.ResolveModelDir(a.modelDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}
	return dir, nil
}

func (a *appState) loader() *audio.Loader {
	return &audio.Loader{Logger: a.log()}
}

func (a *appState) log() *zap.Logger {
	if a.logger != nil {
		return a.logger
	}
	return zap.NewNop()
}

func (a *appState) progressEnabled() bool {
	return !a.noProgress && term.IsTerminal(int(os.Stderr.Fd()))
}

func (a *appState) outWriter() io.Writer {
	if a.out != nil {
		return a.out
	}
	return os.Stdout
}

func sanitizeLanguage(input string) string {
	lang := strings.ToLower(strings.TrimSpace(input))
	if lang == "" {
		return transcribe.DefaultLanguage
	}
	return lang
}
