package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taltext/taltext/internal/download"
	"github.com/taltext/taltext/internal/models"
)

func newSetupCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Download and verify a KBLab whisper model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd, app)
		},
	}

	bindGlobalFlags(cmd, app)
	bindModelFlags(cmd, app)

	return cmd
}

func runSetup(cmd *cobra.Command, app *appState) error {
	modelDir, err := app.modelStorageDir()
	if err != nil {
		return err
	}

	resolved, err := models.Resolve(app.model, modelDir)
	if err != nil {
		return err
	}
	if resolved.IsCustomPath {
		return fmt.Errorf("setup requires a named model, not a file path (%s)", resolved.Path)
	}

	expected := resolved.SHA256
	if expected == "" && resolved.SHA256URL != "" {
		expected, err = download.ResolveExpectedChecksum(cmd.Context(), resolved.SHA256URL, filepath.Base(resolved.Path), nil)
		if err != nil {
			return fmt.Errorf("resolve checksum for model %s: %w", resolved.Name, err)
		}
	}

	// Weights already on disk count only if they verify; a corrupt file
	// gets replaced by a fresh download.
	if !resolved.NeedsDownload {
		verifyErr := download.VerifyFileChecksum(resolved.Path, expected)
		if verifyErr == nil {
			app.log().Info("model verified", zap.String("model", resolved.Name), zap.String("path", resolved.Path))
			fmt.Fprintf(cmd.OutOrStdout(), "Model %s is already installed at %s\n", resolved.Name, resolved.Path)
			return nil
		}
		app.log().Warn("stored model failed verification, downloading a fresh copy",
			zap.String("model", resolved.Name), zap.Error(verifyErr))
	}

	app.log().Info("downloading model", zap.String("model", resolved.Name), zap.String("url", resolved.URL))
	err = download.DownloadFile(cmd.Context(), download.Options{
		URL:            resolved.URL,
		Destination:    resolved.Path,
		ExpectedSHA256: expected,
		ChecksumURL:    resolved.SHA256URL,
		NoProgress:     !app.progressEnabled(),
		Logger:         app.log(),
	})
	if err != nil {
		return fmt.Errorf("download model %s: %w", resolved.Name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Installed model %s at %s\n", resolved.Name, resolved.Path)
	return nil
}
