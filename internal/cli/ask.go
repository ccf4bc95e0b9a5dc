// ask.go implements the "aegis ask" command for one-shot questions.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a one-shot question",
	Long: `Submit a single question to the backend and print the answer.
No transcript is kept; use the interactive mode for a conversation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(args[0])
	if question == "" {
		return fmt.Errorf("question is empty")
	}

	cfg, client, err := loadClient()
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "POST %s/query/\n", cfg.Backend.BaseURL)
	}

	answer, err := client.AskQuestion(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("asking question: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
