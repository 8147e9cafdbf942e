package main

import (
	"github.com/spf13/cobra"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/snapshot"
)

var exportFlags struct {
	out      string
	compress bool
	run      string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the world as JSON",
	Long: `Load the game folder and write the flattened world as JSON: the run,
titles by tier, provinces with their neighbours, religions, cultures,
dynasties and every diagnostic.

With --run the world is read back from the snapshot database instead of
loading the game folder; "latest" picks the newest run.

Examples:
  # Write to stdout
  chronicle export

  # Write an xz-compressed file
  chronicle export --out world.json.xz --compress

  # Export a stored run
  chronicle export --run latest --out world.json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.out, "out", "-", "output file, - for stdout")
	exportCmd.Flags().BoolVar(&exportFlags.compress, "compress", false, "xz-compress the output")
	exportCmd.Flags().StringVar(&exportFlags.run, "run", "", "export a stored run (id or latest) instead of loading")
	exportCmd.Flags().StringVar(&snapshotFlags.db, "db", "", "snapshot database for --run (default: snapshot.path)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	var snap *snapshot.Snapshot
	if exportFlags.run != "" {
		store, err := openStore()
		if err != nil {
			return cli.NewCommandError("export", err)
		}
		defer store.Close()

		if snap, err = loadRun(ctx, store, exportFlags.run); err != nil {
			return cli.NewCommandError("export", err)
		}
	} else {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		w, result, err := a.loader.Load(ctx)
		if err != nil {
			return cli.NewCommandError("export", err)
		}
		snap = snapshot.Build(w, result)
	}

	if exportFlags.out == "" || exportFlags.out == "-" {
		if err := snapshot.WriteJSON(cmd.OutOrStdout(), snap, exportFlags.compress); err != nil {
			return cli.NewCommandError("export", err)
		}
		return nil
	}
	if err := snapshot.WriteJSONFile(exportFlags.out, snap, exportFlags.compress); err != nil {
		return cli.NewCommandError("export", err)
	}
	return nil
}
