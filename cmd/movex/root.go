package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"movex/internal/backend"
	"movex/internal/executor"
	"movex/internal/plan"
	"movex/internal/probe"
	"movex/internal/progress"
)

var version = "dev"

var (
	configPath  string
	profileName string
	jsonOutput  bool
	logLevel    string
	noHistory   bool
)

var rootCmd = &cobra.Command{
	Use:   "movex <source> <destination>",
	Short: "Move, copy, and convert files with the right tool",
	Long: `movex - move, copy, and convert files

Every operation is planned first: matching extensions become a rename or
copy, differing extensions become a conversion through ImageMagick, ffmpeg,
or LibreOffice. Use --dry-run to inspect the plan without touching anything.

Examples:
  movex photo.jpeg photo.jpg            # rename or copy
  movex clip.mov clip.mp4               # convert via ffmpeg
  movex scan.pdf scan.png --dry-run     # show the plan only
  movex report.docx report.pdf          # convert via LibreOffice`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runRootCmd,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/movex/config.toml)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Named config profile")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record operations in history")

	rootCmd.Flags().Bool("move", false, "Remove the source after success")
	rootCmd.Flags().Bool("overwrite", false, "Replace an existing destination")
	rootCmd.Flags().Bool("backup", false, "Move an existing destination aside first")
	rootCmd.Flags().Bool("dry-run", false, "Show the plan without executing")
	rootCmd.MarkFlagsMutuallyExclusive("overwrite", "backup")
	registerOptionFlags(rootCmd)

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("movex {{.Version}}\n")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging()
	}
}

func setupLogging() {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	move, _ := cmd.Flags().GetBool("move")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	backup, _ := cmd.Flags().GetBool("backup")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	p, err := plan.Build(args[0], args[1], move, backup, opts)
	if err != nil {
		return err
	}

	preview := backend.Preview(p)
	if jsonOutput {
		out, err := plan.RenderJSON(p, overwrite, preview)
		if err != nil {
			return err
		}
		fmt.Println(out)
	} else {
		fmt.Println(plan.RenderText(p, overwrite, preview))
	}
	if dryRun {
		return nil
	}

	var sink progress.Sink = progress.Discard
	if !jsonOutput {
		sink = progress.NewConsoleSink(os.Stderr)
	}
	ex := executor.New(probe.FFprobe{}, sink, slog.Default())

	start := time.Now()
	execErr := ex.Execute(cmd.Context(), p, overwrite)

	if store := openHistory(); store != nil {
		defer store.Close()
		recordEntry(cmd.Context(), store, p, args[0], args[1], execErr, time.Since(start))
	}
	return execErr
}
