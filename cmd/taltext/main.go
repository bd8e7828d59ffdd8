package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/taltext/taltext/internal/cli"
)

// Fragments of cobra's own argument and flag errors. Only those warrant
// pointing the user at --help; runtime failures do not.
var usageHintMarkers = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"accepts ",
	"requires at least",
	"requires at most",
	"requires between",
	"required flag",
	"missing required",
}

func main() {
	// Optional .env with OPENAI_API_KEY and friends.
	_ = godotenv.Load()

	root := cli.NewRootCmd()
	err := root.Execute()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, err)
	if shouldPrintUsageHint(err) {
		fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", helpHintTarget(root, os.Args[1:]))
	}
	os.Exit(1)
}

func shouldPrintUsageHint(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	return slices.ContainsFunc(usageHintMarkers, func(marker string) bool {
		return strings.Contains(message, marker)
	})
}

// helpHintTarget picks the command path to suggest --help for. Subcommand
// errors point at the subcommand, everything else at the root.
func helpHintTarget(root *cobra.Command, args []string) string {
	if root == nil {
		return "taltext"
	}
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return root.CommandPath()
	}
	if found, _, err := root.Find(args); err == nil && found != nil {
		return found.CommandPath()
	}
	return root.CommandPath()
}
