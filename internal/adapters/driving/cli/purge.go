package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

var purgeForce bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove all indexed content and stored blobs",
	Long: `Purge drains every document from the search index and deletes all
stored blobs. Requires --force.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !purgeForce {
			return errors.New("refusing to purge without --force")
		}
		runner, cleanup, err := newRunner("", "")
		if err != nil {
			return err
		}
		defer cleanup()
		if err := runner.Run(cmd.Context(), domain.ActionRemoveAll); err != nil {
			return err
		}
		cmd.Println("Index and blob storage purged")
		return nil
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeForce, "force", false, "confirm the purge")
	rootCmd.AddCommand(purgeCmd)
}
