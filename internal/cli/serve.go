package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/taltext/taltext/internal/logging"
	"github.com/taltext/taltext/internal/transcribe"
	"github.com/taltext/taltext/internal/web"
)

// serveConfig mirrors the optional YAML config file for the serve command.
// Flags set explicitly on the command line win over config file values.
type serveConfig struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Model struct {
		Name string `yaml:"name"`
		Dir  string `yaml:"dir"`
	} `yaml:"model"`
	Language  string `yaml:"language"`
	UploadDir string `yaml:"upload_dir"`
	LogLevel  string `yaml:"log_level"`
}

func loadServeConfig(path string) (serveConfig, error) {
	var cfg serveConfig

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func applyServeConfig(cmd *cobra.Command, app *appState, cfg serveConfig, host *string, port *int) {
	flags := cmd.Flags()
	if cfg.Server.Host != "" && !flags.Changed("host") {
		*host = cfg.Server.Host
	}
	if cfg.Server.Port != 0 && !flags.Changed("port") {
		*port = cfg.Server.Port
	}
	if cfg.Model.Name != "" && !flags.Changed("model") {
		app.model = cfg.Model.Name
	}
	if cfg.Model.Dir != "" && !flags.Changed("model-dir") {
		app.modelDir = cfg.Model.Dir
	}
	if cfg.Language != "" && !flags.Changed("language") {
		app.language = sanitizeLanguage(cfg.Language)
	}
	if cfg.UploadDir != "" {
		app.uploadDir = cfg.UploadDir
	}
}

func newServeCmd(app *appState) *cobra.Command {
	var (
		host       string
		port       int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI for browser-based transcription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				cfg, err := loadServeConfig(configPath)
				if err != nil {
					return err
				}
				applyServeConfig(cmd, app, cfg, &host, &port)

				if cfg.LogLevel != "" && !cmd.Flags().Changed("verbose") {
					logger, err := logging.New(logging.Options{Level: cfg.LogLevel, JSON: app.jsonLogs})
					if err != nil {
						return fmt.Errorf("initialize logger: %w", err)
					}
					app.logger = logger
				}
			}
			return app.runServe(cmd.Context(), host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "Host interface to bind")
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (0 picks a free port)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	bindGlobalFlags(cmd, app)
	bindModelFlags(cmd, app)
	bindEngineFlags(cmd, app)

	return cmd
}

func (a *appState) runServe(ctx context.Context, host string, port int) error {
	engineFn := a.engineFn
	if engineFn == nil {
		engineFn = a.buildEngine
	}

	if port == 0 {
		free, err := web.FindFreePort(host, web.DefaultCandidates())
		if err != nil {
			return fmt.Errorf("find free port: %w", err)
		}
		port = free
	}

	server := web.NewServer(web.Config{
		Language:  a.language,
		UploadDir: a.uploadDir,
		Loader:    a.loader(),
		Logger:    a.log(),
	})
	server.StartLoading(func() (transcribe.Engine, error) {
		return engineFn(ctx)
	})

	fmt.Fprintf(a.outWriter(), "Listening on http://%s:%d\n", displayHost(host), port)
	a.log().Info("web server starting", zap.String("host", host), zap.Int("port", port))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(net.JoinHostPort(host, strconv.Itoa(port)))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		a.log().Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		a.log().Info("shutting down", zap.String("reason", "context canceled"))
	}
	return server.Shutdown()
}

// displayHost rewrites wildcard binds to something a browser can open.
func displayHost(host string) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		return "localhost"
	}
	return host
}
