// Package snapshot persists loaded worlds.
//
// A Snapshot flattens a loader.World into plain records: titles with their
// parent ids, provinces with their neighbour ids, religions, cultures,
// dynasties and the load's diagnostics. Snapshots are stored in SQLite, one
// run per load, or exported as JSON, optionally xz compressed.
//
// The store uses the pure Go modernc.org/sqlite driver. Building with the
// cgo_sqlite tag switches to github.com/mattn/go-sqlite3.
//
//	store, err := snapshot.Open(&snapshot.Config{Path: "data/chronicle.db", WALMode: true}, logger)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//	err = store.Save(ctx, snapshot.Build(world, result))
package snapshot
