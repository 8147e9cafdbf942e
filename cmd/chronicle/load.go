package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"chronicle-hq/chronicle/pkg/cli"
)

var loadFlags struct {
	strict      bool
	progress    bool
	diagnostics bool
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the game folder and report the world",
	Long: `Load the base game folder and the configured mods, build the world and
print a summary of what was found.

Documents that fail to parse are discarded and reported; the rest of the
world still loads. When snapshots are enabled the world is saved to SQLite,
and exported as JSON when snapshot.json_path is set.

Exit codes:
  0  loaded
  1  load failed
  2  configuration error
  3  --strict and the load produced diagnostics

Examples:
  # Load using chronicle.yaml
  chronicle load

  # Load a folder with two mods, in order
  chronicle load -g /games/ck2 --mod a.mod --mod b.mod

  # Print every diagnostic and fail if there are any
  chronicle load --diagnostics --strict`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolVar(&loadFlags.strict, "strict", false, "exit with code 3 when the load produces diagnostics")
	loadCmd.Flags().BoolVar(&loadFlags.progress, "progress", false, "show a progress bar while parsing")
	loadCmd.Flags().BoolVar(&loadFlags.diagnostics, "diagnostics", false, "print every diagnostic to stderr")
}

func runLoad(cmd *cobra.Command, args []string) error {
	f, err := formatter()
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	if loadFlags.progress {
		a.loader.WithProgress(cli.LoaderProgress(cli.NewProgressReporter(cmd.ErrOrStderr())))
	}

	w, result, err := a.loader.Load(ctx)
	if err != nil {
		return cli.NewCommandError("load", err)
	}
	if err := a.persist(ctx, w, result); err != nil {
		return cli.NewCommandError("load", err)
	}

	if loadFlags.diagnostics || verbose {
		for _, d := range result.Diagnostics {
			fmt.Fprintln(cmd.ErrOrStderr(), d)
		}
	}
	if err := f.FormatTo(cmd.OutOrStdout(), newLoadSummary(w, result)); err != nil {
		return err
	}
	if a.cfg.Snapshot.Enabled && verbose {
		if info, err := os.Stat(a.cfg.Snapshot.Path); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Snapshot database: %s (%s)\n", a.cfg.Snapshot.Path, humanize.Bytes(uint64(info.Size())))
		}
	}

	if loadFlags.strict && len(result.Diagnostics) > 0 {
		return &cli.DiagnosticsError{Count: len(result.Diagnostics), Failed: len(result.FailedFiles)}
	}
	return nil
}
