package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/snapshot"
)

var snapshotFlags struct {
	db    string
	limit int
	keep  int
	run   string
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Query the snapshot database",
	Long: `Query and maintain the SQLite database of loaded worlds.

Subcommands:
  list        - List stored runs, newest first
  prune       - Delete all but the newest runs
  neighbours  - Print the neighbours of a province in a stored run

The database path comes from --db, or snapshot.path in the configuration.`,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs",
	Args:  cobra.NoArgs,
	RunE:  listRuns,
}

var snapshotPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest runs",
	Args:  cobra.NoArgs,
	RunE:  pruneRuns,
}

var snapshotNeighboursCmd = &cobra.Command{
	Use:   "neighbours PROVINCE",
	Short: "Print the neighbours of a province",
	Long: `Print the ids of the provinces adjacent to PROVINCE in a stored run.

Examples:
  chronicle snapshot neighbours 1
  chronicle snapshot neighbours 1 --run 5f1c...`,
	Args: cobra.ExactArgs(1),
	RunE: printNeighbours,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotListCmd, snapshotPruneCmd, snapshotNeighboursCmd)

	snapshotCmd.PersistentFlags().StringVar(&snapshotFlags.db, "db", "", "snapshot database (default: snapshot.path)")
	snapshotListCmd.Flags().IntVar(&snapshotFlags.limit, "limit", 20, "max runs, 0 for all")
	snapshotPruneCmd.Flags().IntVar(&snapshotFlags.keep, "keep", 10, "number of newest runs to keep")
	snapshotNeighboursCmd.Flags().StringVar(&snapshotFlags.run, "run", "latest", "run id or latest")
}

// openStore opens the database named by --db, falling back to the
// configured snapshot path. Without --db the configuration must load.
func openStore() (*snapshot.Store, error) {
	path := snapshotFlags.db
	level := "info"
	if verbose {
		level = "debug"
	}
	logger, err := newLogger(loggingConfig(level))
	if err != nil {
		return nil, err
	}
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Snapshot.Path
	}
	return snapshot.Open(&snapshot.Config{Path: path, WALMode: true}, logger)
}

// resolveRun maps "latest" to the id of the newest run.
func resolveRun(ctx context.Context, store *snapshot.Store, run string) (string, error) {
	if run != "latest" {
		return run, nil
	}
	latest, err := store.Latest(ctx)
	if err != nil {
		return "", err
	}
	return latest.ID, nil
}

func loadRun(ctx context.Context, store *snapshot.Store, run string) (*snapshot.Snapshot, error) {
	id, err := resolveRun(ctx, store, run)
	if err != nil {
		return nil, err
	}
	return store.Load(ctx, id)
}

// runTable lists runs as rows.
type runTable []snapshot.Run

func (r runTable) Table() cli.Table {
	t := cli.Table{Headers: []string{"RUN", "STARTED", "STATUS", "FILES", "FAILED", "DIAGNOSTICS", "VERSION"}}
	for _, run := range r {
		t.Rows = append(t.Rows, []string{
			run.ID,
			humanize.Time(run.StartedAt),
			run.Status,
			strconv.Itoa(run.Files),
			strconv.Itoa(run.FailedFiles),
			humanize.Comma(int64(run.Diagnostics)),
			shortVersion(run.Version),
		})
	}
	return t
}

func shortVersion(v string) string {
	if len(v) > 12 {
		return v[:12]
	}
	return v
}

func listRuns(cmd *cobra.Command, args []string) error {
	f, err := formatter()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return cli.NewCommandError("snapshot list", err)
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), snapshotFlags.limit)
	if err != nil {
		return cli.NewCommandError("snapshot list", err)
	}
	return f.FormatTo(cmd.OutOrStdout(), runTable(runs))
}

func pruneRuns(cmd *cobra.Command, args []string) error {
	if snapshotFlags.keep < 0 {
		return cli.NewConfigError("keep", "must be >= 0")
	}
	store, err := openStore()
	if err != nil {
		return cli.NewCommandError("snapshot prune", err)
	}
	defer store.Close()

	n, err := store.Prune(cmd.Context(), snapshotFlags.keep)
	if err != nil {
		return cli.NewCommandError("snapshot prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %s run(s)\n", humanize.Comma(n))
	return nil
}

func printNeighbours(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return cli.NewConfigError("province", fmt.Sprintf("%q is not a province id", args[0]))
	}
	f, err := formatter()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return cli.NewCommandError("snapshot neighbours", err)
	}
	defer store.Close()

	run, err := resolveRun(cmd.Context(), store, snapshotFlags.run)
	if err != nil {
		return cli.NewCommandError("snapshot neighbours", err)
	}
	ids, err := store.Neighbours(cmd.Context(), run, id)
	if err != nil {
		return cli.NewCommandError("snapshot neighbours", err)
	}
	return f.FormatTo(cmd.OutOrStdout(), neighbourTable(ids))
}

type neighbourTable []int

func (n neighbourTable) Table() cli.Table {
	t := cli.Table{Headers: []string{"PROVINCE"}}
	for _, id := range n {
		t.Rows = append(t.Rows, []string{strconv.Itoa(id)})
	}
	return t
}
