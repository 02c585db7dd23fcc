package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "fintrack",
		Short:   "Personal expense and budget tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "tracker directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newShellCommand(&dir),
		newListCommand(&dir),
		newBudgetCommand(&dir),
		newImportCommand(&dir),
		newLogCommand(&dir),
	)

	return rootCmd
}
