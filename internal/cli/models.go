package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taltext/taltext/internal/models"
	"github.com/taltext/taltext/internal/platform"
)

func newModelsCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List known models and their download state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modelDir, err := platform.ResolveModelDir(app.modelDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model directory: %s\n\n", modelDir)

			for _, model := range models.All() {
				marker := " "
				if model.Name == models.DefaultModel {
					marker = "*"
				}

				status := "not downloaded"
				if _, err := os.Stat(filepath.Join(modelDir, model.FileName)); err == nil {
					status = "downloaded"
				}

				fmt.Fprintf(out, "%s %-8s %-28s %s\n", marker, model.Name, model.HubID, status)
			}
			return nil
		},
	}

	bindModelFlags(cmd, app)

	return cmd
}
