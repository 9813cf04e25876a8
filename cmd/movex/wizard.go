package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"movex/internal/backend"
	"movex/internal/executor"
	"movex/internal/plan"
	"movex/internal/probe"
	"movex/internal/progress"
	"movex/internal/tui"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Build one operation interactively",
	Long: `Build one operation interactively.

The wizard asks for source and destination (offering recently used paths),
whether to keep the source, and what to do when the destination exists,
then shows the plan and executes on confirmation.`,
	Args: cobra.NoArgs,
	RunE: runWizardCmd,
}

func init() {
	rootCmd.AddCommand(wizardCmd)
	registerOptionFlags(wizardCmd)
}

func runWizardCmd(cmd *cobra.Command, args []string) error {
	var recent []string
	store := openHistory()
	if store != nil {
		defer store.Close()
		paths, err := store.RecentPaths(cmd.Context(), 10)
		if err != nil {
			slog.Warn("loading recent paths failed", "err", err)
		} else {
			recent = paths
		}
	}

	answers, err := tui.RunWizard(recent)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Println("Aborted")
		return nil
	}
	if err != nil {
		return err
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	p, err := plan.Build(answers.Source, answers.Destination, answers.Move, answers.Backup, opts)
	if err != nil {
		return err
	}

	fmt.Println(plan.RenderText(p, answers.Overwrite, backend.Preview(p)))

	ex := executor.New(probe.FFprobe{}, progress.NewConsoleSink(os.Stderr), slog.Default())
	start := time.Now()
	execErr := ex.Execute(cmd.Context(), p, answers.Overwrite)
	if store != nil {
		recordEntry(cmd.Context(), store, p, answers.Source, answers.Destination, execErr, time.Since(start))
	}
	return execErr
}
