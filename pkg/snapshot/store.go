package snapshot

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"chronicle-hq/chronicle/pkg/config"
	"chronicle-hq/chronicle/pkg/telemetry/logging"
)

// ErrNotFound is returned when a run is not in the store.
var ErrNotFound = stderrors.New("snapshot not found")

// Config contains configuration for the snapshot store.
type Config struct {
	// Path is the database file path.
	Path string

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Path:        config.DefaultSnapshotPath,
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// Store keeps snapshots of loaded worlds in SQLite, one run per load.
type Store struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger
}

// Open opens or creates the database at cfg.Path and applies the schema.
func Open(cfg *Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Path == "" {
		return nil, storageError("open", fmt.Errorf("db path cannot be empty"))
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	logger = logging.OrDefault(logger).With("component", "snapshot.store")

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageError("open", err)
		}
	}

	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return nil, storageError("open", err)
	}
	// Pragmas are per connection; one connection keeps them in force.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, config: cfg, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("Snapshot store opened",
		"path", cfg.Path,
		"driver", driverName,
		"wal_mode", cfg.WALMode,
	)
	return s, nil
}

func (s *Store) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return storageError("enable_wal", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return storageError("set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return storageError("create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return storageError("insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return storageError("get_schema_version", err)
	}
	if version != SchemaVersion {
		return storageError("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// Save writes a snapshot in one transaction. A run id already stored is an
// error.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("save", err)
	}
	defer tx.Rollback()

	if err := saveRows(ctx, tx, snap); err != nil {
		return storageError("save", err)
	}
	if err := tx.Commit(); err != nil {
		return storageError("save", err)
	}

	s.logger.Info("Snapshot saved",
		"run_id", snap.Run.ID,
		"version", snap.Run.Version,
		"titles", len(snap.Titles),
		"provinces", len(snap.Provinces),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// insert prepares one statement inside tx and runs it for every row.
func insert(ctx context.Context, tx *sql.Tx, query string, n int, args func(i int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := range n {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return nil
}

func saveRows(ctx context.Context, tx *sql.Tx, snap *Snapshot) error {
	r := snap.Run
	id := r.ID
	_, err := tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, version, status, started_at_ms, duration_ms, files, failed_files, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Version, r.Status, r.StartedAt.UnixMilli(), r.DurationMS, r.Files, r.FailedFiles, r.Diagnostics)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err := insert(ctx, tx, `
		INSERT INTO titles (run_id, id, tier, parent, culture, religion, capital, county_province, titular, color, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, len(snap.Titles), func(i int) []any {
		t := snap.Titles[i]
		return []any{id, t.ID, t.Tier, t.Parent, t.Culture, t.Religion, t.Capital, t.CountyProvince, t.Titular, t.Color, t.Source}
	}); err != nil {
		return fmt.Errorf("insert titles: %w", err)
	}

	if err := insert(ctx, tx, `
		INSERT INTO provinces (run_id, id, name, title, culture, religion, terrain, coastal, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, len(snap.Provinces), func(i int) []any {
		p := snap.Provinces[i]
		return []any{id, p.ID, p.Name, p.Title, p.Culture, p.Religion, p.Terrain, p.Coastal, p.Source}
	}); err != nil {
		return fmt.Errorf("insert provinces: %w", err)
	}

	var edges [][2]int
	for _, p := range snap.Provinces {
		for _, n := range p.Neighbours {
			if p.ID < n {
				edges = append(edges, [2]int{p.ID, n})
			}
		}
	}
	if err := insert(ctx, tx, `INSERT INTO adjacencies (run_id, from_id, to_id) VALUES (?, ?, ?)`,
		len(edges), func(i int) []any {
			return []any{id, edges[i][0], edges[i][1]}
		}); err != nil {
		return fmt.Errorf("insert adjacencies: %w", err)
	}

	if err := insert(ctx, tx, `
		INSERT INTO religions (run_id, name, group_name, parent, reformed, source)
		VALUES (?, ?, ?, ?, ?, ?)`, len(snap.Religions), func(i int) []any {
		r := snap.Religions[i]
		return []any{id, r.Name, r.Group, r.Parent, r.Reformed, r.Source}
	}); err != nil {
		return fmt.Errorf("insert religions: %w", err)
	}

	if err := insert(ctx, tx, `
		INSERT INTO cultures (run_id, name, group_name, parent, source)
		VALUES (?, ?, ?, ?, ?)`, len(snap.Cultures), func(i int) []any {
		c := snap.Cultures[i]
		return []any{id, c.Name, c.Group, c.Parent, c.Source}
	}); err != nil {
		return fmt.Errorf("insert cultures: %w", err)
	}

	if err := insert(ctx, tx, `
		INSERT INTO dynasties (run_id, id, name, culture, source)
		VALUES (?, ?, ?, ?, ?)`, len(snap.Dynasties), func(i int) []any {
		d := snap.Dynasties[i]
		return []any{id, d.ID, d.Name, d.Culture, d.Source}
	}); err != nil {
		return fmt.Errorf("insert dynasties: %w", err)
	}

	if err := insert(ctx, tx, `
		INSERT INTO diagnostics (run_id, seq, type, message, file, line, col)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, len(snap.Diagnostics), func(i int) []any {
		d := snap.Diagnostics[i]
		return []any{id, i, d.Type, d.Message, d.File, d.Line, d.Column}
	}); err != nil {
		return fmt.Errorf("insert diagnostics: %w", err)
	}
	return nil
}

const selectRuns = `
SELECT run_id, version, status, started_at_ms, duration_ms, files, failed_files, diagnostics
FROM runs`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	var startedMS int64
	err := row.Scan(&r.ID, &r.Version, &r.Status, &startedMS, &r.DurationMS, &r.Files, &r.FailedFiles, &r.Diagnostics)
	r.StartedAt = time.UnixMilli(startedMS).UTC()
	return r, err
}

// Runs returns up to limit stored runs, newest first. A limit of zero or
// less returns all of them.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := selectRuns + " ORDER BY started_at_ms DESC, run_id"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("runs", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, storageError("runs", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("runs", err)
	}
	return runs, nil
}

// Latest returns the newest run.
func (s *Store) Latest(ctx context.Context) (*Run, error) {
	runs, err := s.Runs(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return &runs[0], nil
}

// LatestVersion returns the newest run with the given content version.
func (s *Store) LatestVersion(ctx context.Context, version string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+" WHERE version = ? ORDER BY started_at_ms DESC LIMIT 1", version)
	r, err := scanRun(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageError("latest_version", err)
	}
	return &r, nil
}

// Load reads back the snapshot of a run.
func (s *Store) Load(ctx context.Context, runID string) (*Snapshot, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, selectRuns+" WHERE run_id = ?", runID))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageError("load", err)
	}
	snap := &Snapshot{Run: r}

	err = query(ctx, s.db, `
		SELECT id, tier, parent, culture, religion, capital, county_province, titular, color, source
		FROM titles WHERE run_id = ? ORDER BY id`, runID, func(rows *sql.Rows) error {
		var t Title
		if err := rows.Scan(&t.ID, &t.Tier, &t.Parent, &t.Culture, &t.Religion, &t.Capital,
			&t.CountyProvince, &t.Titular, &t.Color, &t.Source); err != nil {
			return err
		}
		snap.Titles = append(snap.Titles, t)
		return nil
	})
	if err != nil {
		return nil, storageError("load_titles", err)
	}
	// Stored by id; restore tier order.
	slices.SortStableFunc(snap.Titles, func(a, b Title) int {
		return tierRank(a.Tier) - tierRank(b.Tier)
	})

	neighbours := make(map[int][]int)
	err = query(ctx, s.db, `SELECT from_id, to_id FROM adjacencies WHERE run_id = ? ORDER BY from_id, to_id`,
		runID, func(rows *sql.Rows) error {
			var a, b int
			if err := rows.Scan(&a, &b); err != nil {
				return err
			}
			neighbours[a] = append(neighbours[a], b)
			neighbours[b] = append(neighbours[b], a)
			return nil
		})
	if err != nil {
		return nil, storageError("load_adjacencies", err)
	}

	err = query(ctx, s.db, `
		SELECT id, name, title, culture, religion, terrain, coastal, source
		FROM provinces WHERE run_id = ? ORDER BY id`, runID, func(rows *sql.Rows) error {
		var p Province
		if err := rows.Scan(&p.ID, &p.Name, &p.Title, &p.Culture, &p.Religion, &p.Terrain, &p.Coastal, &p.Source); err != nil {
			return err
		}
		if n := neighbours[p.ID]; len(n) > 0 {
			slices.Sort(n)
			p.Neighbours = n
		}
		snap.Provinces = append(snap.Provinces, p)
		return nil
	})
	if err != nil {
		return nil, storageError("load_provinces", err)
	}

	err = query(ctx, s.db, `
		SELECT name, group_name, parent, reformed, source
		FROM religions WHERE run_id = ? ORDER BY name`, runID, func(rows *sql.Rows) error {
		var r Religion
		if err := rows.Scan(&r.Name, &r.Group, &r.Parent, &r.Reformed, &r.Source); err != nil {
			return err
		}
		snap.Religions = append(snap.Religions, r)
		return nil
	})
	if err != nil {
		return nil, storageError("load_religions", err)
	}

	err = query(ctx, s.db, `
		SELECT name, group_name, parent, source
		FROM cultures WHERE run_id = ? ORDER BY name`, runID, func(rows *sql.Rows) error {
		var c Culture
		if err := rows.Scan(&c.Name, &c.Group, &c.Parent, &c.Source); err != nil {
			return err
		}
		snap.Cultures = append(snap.Cultures, c)
		return nil
	})
	if err != nil {
		return nil, storageError("load_cultures", err)
	}

	err = query(ctx, s.db, `
		SELECT id, name, culture, source
		FROM dynasties WHERE run_id = ? ORDER BY id`, runID, func(rows *sql.Rows) error {
		var d Dynasty
		if err := rows.Scan(&d.ID, &d.Name, &d.Culture, &d.Source); err != nil {
			return err
		}
		snap.Dynasties = append(snap.Dynasties, d)
		return nil
	})
	if err != nil {
		return nil, storageError("load_dynasties", err)
	}

	err = query(ctx, s.db, `
		SELECT type, message, file, line, col
		FROM diagnostics WHERE run_id = ? ORDER BY seq`, runID, func(rows *sql.Rows) error {
		var d Diagnostic
		if err := rows.Scan(&d.Type, &d.Message, &d.File, &d.Line, &d.Column); err != nil {
			return err
		}
		snap.Diagnostics = append(snap.Diagnostics, d)
		return nil
	})
	if err != nil {
		return nil, storageError("load_diagnostics", err)
	}

	return snap, nil
}

// Neighbours returns the ids adjacent to province id in a run, ascending.
func (s *Store) Neighbours(ctx context.Context, runID string, id int) ([]int, error) {
	var ids []int
	err := query(ctx, s.db, `
		SELECT to_id FROM adjacencies WHERE run_id = ?1 AND from_id = ?2
		UNION
		SELECT from_id FROM adjacencies WHERE run_id = ?1 AND to_id = ?2
		ORDER BY 1`, runID, func(rows *sql.Rows) error {
		var n int
		if err := rows.Scan(&n); err != nil {
			return err
		}
		ids = append(ids, n)
		return nil
	}, id)
	if err != nil {
		return nil, storageError("neighbours", err)
	}
	return ids, nil
}

// Prune deletes every run except the newest keep, returning the number of
// runs deleted.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageError("prune", err)
	}
	defer tx.Rollback()

	var stale []any
	rows, err := tx.QueryContext(ctx, `
		SELECT run_id FROM runs ORDER BY started_at_ms DESC, run_id LIMIT -1 OFFSET ?`, keep)
	if err != nil {
		return 0, storageError("prune", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, storageError("prune", err)
		}
		stale = append(stale, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, storageError("prune", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	in := strings.TrimSuffix(strings.Repeat("?,", len(stale)), ",")
	for _, table := range runTables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE run_id IN (%s)", table, in), stale...); err != nil {
			return 0, storageError("prune", fmt.Errorf("%s: %w", table, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, storageError("prune", err)
	}

	s.logger.Info("Snapshots pruned", "deleted", len(stale), "kept", keep)
	return int64(len(stale)), nil
}

// Close releases the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return storageError("close", err)
	}
	return nil
}

// query runs q with runID and extra arguments, calling fn for each row.
func query(ctx context.Context, db *sql.DB, q, runID string, fn func(*sql.Rows) error, extra ...any) error {
	rows, err := db.QueryContext(ctx, q, append([]any{runID}, extra...)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func tierRank(tier string) int {
	switch tier {
	case "empire":
		return 0
	case "kingdom":
		return 1
	case "duchy":
		return 2
	case "county":
		return 3
	default:
		return 4
	}
}
