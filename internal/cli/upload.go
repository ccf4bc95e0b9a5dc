// upload.go implements the "aegis upload" command for document ingestion.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document to the knowledge base",
	Long: `Submit a document to the backend for ingestion. The backend
indexes it and makes it available to subsequent questions.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	cfg, client, err := loadClient()
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "POST %s/upload-document/\n", cfg.Backend.BaseURL)
	}

	result, err := client.UploadDocument(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("uploading document: %w", err)
	}

	if result.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s.\n", result.Filename)
	}
	return nil
}
