package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"movex/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent operations",
	Long: `Show recent operations, newest first.

Examples:
  movex history
  movex history --limit 50
  movex history --failed`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum entries to show")
	historyCmd.Flags().Bool("failed", false, "Show only failed operations")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	failedOnly, _ := cmd.Flags().GetBool("failed")

	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), history.Filter{Limit: limit, FailedOnly: failedOnly})
	if err != nil {
		return err
	}

	if jsonOutput {
		printHistoryJSON(entries)
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No history yet")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := "ok"
		if !e.OK {
			status = "failed"
		}
		rows = append(rows, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Strategy,
			e.Source,
			e.Destination,
			status,
		})
	}
	fmt.Println(renderTable([]string{"WHEN", "STRATEGY", "SOURCE", "DESTINATION", "STATUS"}, rows))
	return nil
}

func printHistoryJSON(entries []history.Entry) {
	type entryJSON struct {
		Source      string    `json:"source"`
		Destination string    `json:"destination"`
		Strategy    string    `json:"strategy"`
		Backend     string    `json:"backend,omitempty"`
		OK          bool      `json:"ok"`
		Error       string    `json:"error,omitempty"`
		DurationMS  int64     `json:"duration_ms"`
		CreatedAt   time.Time `json:"created_at"`
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON{
			Source:      e.Source,
			Destination: e.Destination,
			Strategy:    e.Strategy,
			Backend:     e.Backend,
			OK:          e.OK,
			Error:       e.Error,
			DurationMS:  e.DurationMS,
			CreatedAt:   e.CreatedAt,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		slog.Error("marshal history", "err", err)
		return
	}
	fmt.Println(string(data))
}
