package snapshot

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the snapshot tables. Every row belongs to one run.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    version TEXT NOT NULL,
    status TEXT NOT NULL,
    started_at_ms INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    files INTEGER NOT NULL,
    failed_files INTEGER NOT NULL,
    diagnostics INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS titles (
    run_id TEXT NOT NULL,
    id TEXT NOT NULL,
    tier TEXT NOT NULL,
    parent TEXT,
    culture TEXT,
    religion TEXT,
    capital INTEGER,
    county_province INTEGER,
    titular BOOLEAN NOT NULL,
    color TEXT,
    source TEXT,
    PRIMARY KEY (run_id, id)
);

CREATE TABLE IF NOT EXISTS provinces (
    run_id TEXT NOT NULL,
    id INTEGER NOT NULL,
    name TEXT,
    title TEXT NOT NULL,
    culture TEXT,
    religion TEXT,
    terrain TEXT,
    coastal BOOLEAN NOT NULL,
    source TEXT,
    PRIMARY KEY (run_id, id)
);

-- Undirected edges, stored once with from_id < to_id
CREATE TABLE IF NOT EXISTS adjacencies (
    run_id TEXT NOT NULL,
    from_id INTEGER NOT NULL,
    to_id INTEGER NOT NULL,
    PRIMARY KEY (run_id, from_id, to_id)
);

CREATE TABLE IF NOT EXISTS religions (
    run_id TEXT NOT NULL,
    name TEXT NOT NULL,
    group_name TEXT NOT NULL,
    parent TEXT,
    reformed TEXT,
    source TEXT,
    PRIMARY KEY (run_id, name)
);

CREATE TABLE IF NOT EXISTS cultures (
    run_id TEXT NOT NULL,
    name TEXT NOT NULL,
    group_name TEXT NOT NULL,
    parent TEXT,
    source TEXT,
    PRIMARY KEY (run_id, name)
);

CREATE TABLE IF NOT EXISTS dynasties (
    run_id TEXT NOT NULL,
    id INTEGER NOT NULL,
    name TEXT,
    culture TEXT,
    source TEXT,
    PRIMARY KEY (run_id, id)
);

CREATE TABLE IF NOT EXISTS diagnostics (
    run_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    file TEXT,
    line INTEGER,
    col INTEGER,
    PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at_ms);
CREATE INDEX IF NOT EXISTS idx_runs_version ON runs(version);
CREATE INDEX IF NOT EXISTS idx_diagnostics_type ON diagnostics(run_id, type);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion returns the newest recorded schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

// runTables lists the tables holding per-run rows, runs last.
var runTables = []string{"titles", "provinces", "adjacencies", "religions", "cultures", "dynasties", "diagnostics", "runs"}
