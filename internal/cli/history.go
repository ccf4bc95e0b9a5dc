// history.go implements the "aegis history" command for the event log.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aegis-dev/aegis/internal/log"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent session events",
	Long:  `Print the most recent events from the .aegis/log.jsonl event log.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of events to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	logger, err := log.NewLogger(workDir)
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		return fmt.Errorf("reading event log: %w", err)
	}
	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No events recorded yet.")
		return nil
	}

	start := 0
	if historyLimit > 0 && len(events) > historyLimit {
		start = len(events) - historyLimit
	}

	for _, e := range events[start:] {
		line := fmt.Sprintf("%s  %s", e.Time.Local().Format("2006-01-02 15:04:05"), e.Event)
		switch {
		case e.Filename != "":
			line += "  " + e.Filename
		case e.Recipient != "":
			line += "  " + e.Recipient
		case e.Question != "":
			line += "  " + e.Question
		}
		if e.Error != "" {
			line += "  (" + e.Error + ")"
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
