package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"movex/internal/batch"
	"movex/internal/executor"
	"movex/internal/history"
	"movex/internal/plan"
	"movex/internal/probe"
	"movex/internal/progress"
	"movex/internal/tui"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <source>...",
	Short: "Process many files with shared settings",
	Long: `Process many files with shared settings.

Sources may be files, directories, or glob patterns (including **). Pass
"-" to read newline-separated paths from stdin. Every output keeps its
source's stem; only the directory and extension change.

A failing file is reported and skipped; the rest of the batch continues.

Examples:
  movex batch ./recordings --to mp3 --to-dir ./out
  movex batch '**/*.heic' --to jpg --to-dir ./converted
  find . -name '*.wav' | movex batch - --to flac --to-dir ./flac`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatchCmd,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().String("to", "", "Destination extension, e.g. mp3")
	batchCmd.Flags().String("to-dir", ".", "Destination directory")
	batchCmd.Flags().BoolP("recursive", "r", false, "Recurse into directories")
	batchCmd.Flags().Bool("move", false, "Remove each source after success")
	batchCmd.Flags().Bool("overwrite", false, "Replace existing destinations")
	batchCmd.Flags().Bool("backup", false, "Move existing destinations aside first")
	batchCmd.MarkFlagsMutuallyExclusive("overwrite", "backup")
	registerOptionFlags(batchCmd)
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	toExt, _ := cmd.Flags().GetString("to")
	toDir, _ := cmd.Flags().GetString("to-dir")
	move, _ := cmd.Flags().GetBool("move")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	backup, _ := cmd.Flags().GetBool("backup")

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	sources, err := batch.CollectSources(args, recursive, os.Stdin)
	if err != nil {
		return err
	}

	req := batch.Request{
		Sources:   sources,
		Target:    batch.Target{DestDir: toDir, ToExt: plan.CanonicalExt(toExt)},
		Move:      move,
		Backup:    backup,
		Overwrite: overwrite,
		Options:   opts,
	}

	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	res, err := runBatch(cmd, req, store)
	if err != nil {
		return err
	}
	return reportBatch(res)
}

// runBatch picks the rendering mode: a live view on a terminal, plain
// console lines when piped, nothing under --json.
func runBatch(cmd *cobra.Command, req batch.Request, store *history.Store) (*batch.Result, error) {
	run := func(ctx context.Context, sink progress.Sink) (*batch.Result, error) {
		ex := executor.New(probe.FFprobe{}, sink, slog.Default())
		runner := batch.NewRunner(ex, slog.Default())
		if store != nil {
			runner.OnResult(func(p *plan.Plan, source string, err error, elapsed time.Duration) {
				recordEntry(ctx, store, p, source, req.Target.DestForSource(source), err, elapsed)
			})
		}
		return runner.Run(ctx, req)
	}

	ctx := cmd.Context()
	if !jsonOutput && isatty.IsTerminal(os.Stderr.Fd()) {
		var res *batch.Result
		err := tui.RunBatch(ctx, len(req.Sources), func(ctx context.Context, sink progress.Sink) error {
			var runErr error
			res, runErr = run(ctx, sink)
			return runErr
		})
		return res, err
	}

	var sink progress.Sink = progress.Discard
	if !jsonOutput {
		sink = progress.NewConsoleSink(os.Stderr)
	}
	return run(ctx, sink)
}

func reportBatch(res *batch.Result) error {
	if jsonOutput {
		printBatchJSON(res)
	} else {
		if len(res.Failures) > 0 {
			rows := make([][]string, 0, len(res.Failures))
			for _, f := range res.Failures {
				rows = append(rows, []string{f.Source, f.Err.Error()})
			}
			fmt.Println(renderTable([]string{"SOURCE", "ERROR"}, rows))
		}
		fmt.Printf("%d succeeded, %d failed, %d total\n", res.Succeeded, res.Failed, res.Total)
	}

	if res.Failed > 0 {
		return fmt.Errorf("%d of %d operations failed", res.Failed, res.Total)
	}
	return nil
}

func printBatchJSON(res *batch.Result) {
	type failureJSON struct {
		Source string `json:"source"`
		Error  string `json:"error"`
	}
	out := struct {
		Total     int           `json:"total"`
		Succeeded int           `json:"succeeded"`
		Failed    int           `json:"failed"`
		Failures  []failureJSON `json:"failures"`
	}{
		Total:     res.Total,
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Failures:  []failureJSON{},
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, failureJSON{Source: f.Source, Error: f.Err.Error()})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		slog.Error("marshal batch summary", "err", err)
		return
	}
	fmt.Println(string(data))
}
