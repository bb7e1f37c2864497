package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/services"
)

var (
	ingestCategory string
	ingestWatch    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <pattern>",
	Short: "Index files matching a glob pattern",
	Long: `Ingest parses, splits and indexes every file matching the glob
pattern. Directories matched by the pattern are descended into.
Unchanged files (by content fingerprint) are skipped. With --watch the
command keeps running and re-ingests on filesystem changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := args[0]
		runner, cleanup, err := newRunner(pattern, ingestCategory)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		if err := runner.Setup(ctx); err != nil {
			return err
		}
		if err := runner.Run(ctx, domain.ActionAdd); err != nil {
			return err
		}
		status := runner.Status()
		cmd.Printf("Processed %d files (%d skipped, %d failed)\n",
			status.FilesProcessed, status.FilesSkipped, status.ErrorCount)

		if !ingestWatch {
			return nil
		}
		watcher := services.NewWatcher(runner, watchRoot(pattern), 0)
		cmd.Printf("Watching %s for changes, press Ctrl-C to stop\n", watchRoot(pattern))
		return watcher.Watch(ctx)
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCategory, "category", "", "category recorded on every indexed document")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "keep running and re-ingest on filesystem changes")
	rootCmd.AddCommand(ingestCmd)
}
