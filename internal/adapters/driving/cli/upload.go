package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

var (
	uploadOID    string
	uploadGroups []string
	uploadReset  bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Manage single-file uploads",
}

var uploadAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Index a single file, optionally scoped to an owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uploader, cleanup, err := newUploader()
		if err != nil {
			return err
		}
		defer cleanup()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		file := &domain.File{Content: f, Name: args[0]}
		if uploadOID != "" {
			file.ACLs = map[string][]string{"oids": {uploadOID}}
		}
		if len(uploadGroups) > 0 {
			if file.ACLs == nil {
				file.ACLs = map[string][]string{}
			}
			file.ACLs["groups"] = uploadGroups
		}
		if err := uploader.AddFile(cmd.Context(), file); err != nil {
			return err
		}
		cmd.Printf("Indexed %s\n", file.Filename())
		return nil
	},
}

var uploadRemoveCmd = &cobra.Command{
	Use:   "remove <filename>",
	Short: "Remove an uploaded file's index content",
	Long: `Remove deletes the index documents derived from an uploaded file.
With --oid only documents owned exclusively by that principal are
removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uploader, cleanup, err := newUploader()
		if err != nil {
			return err
		}
		defer cleanup()
		return uploader.RemoveFile(cmd.Context(), args[0], uploadOID)
	},
}

var uploadReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Reconfigure and trigger the scheduled indexer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		uploader, cleanup, err := newUploader()
		if err != nil {
			return err
		}
		defer cleanup()
		return uploader.RerunIndexer(cmd.Context(), uploadReset)
	},
}

func init() {
	uploadAddCmd.Flags().StringVar(&uploadOID, "oid", "", "owner principal id recorded on the documents")
	uploadAddCmd.Flags().StringSliceVar(&uploadGroups, "groups", nil, "group principal ids recorded on the documents")
	uploadRemoveCmd.Flags().StringVar(&uploadOID, "oid", "", "only remove documents owned exclusively by this principal")
	uploadReindexCmd.Flags().BoolVar(&uploadReset, "reset", false, "reset the indexer's state before running")
	uploadCmd.AddCommand(uploadAddCmd, uploadRemoveCmd, uploadReindexCmd)
	rootCmd.AddCommand(uploadCmd)
}
