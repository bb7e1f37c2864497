package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

var removeCmd = &cobra.Command{
	Use:   "remove <pattern>",
	Short: "Remove files matching a glob pattern from the index",
	Long: `Remove deletes the index documents and stored blobs derived from
every file matching the glob pattern. The source files themselves are
left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, cleanup, err := newRunner(args[0], "")
		if err != nil {
			return err
		}
		defer cleanup()
		return runner.Run(cmd.Context(), domain.ActionRemove)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
