// Package loader reads a game folder and its mods into a linked World.
//
// # Document order
//
// Documents are the files of the known game folders (landed titles,
// religions, cultures, dynasties, province history, localisation) and the
// map descriptor. The base game's documents are sorted by relative path.
// Each mod is then applied in configured order: its replace_path folders
// drop every earlier document below them, a document with the same
// relative path takes the earlier one's place, and new documents are
// appended. Options.Documents replaces discovery with an explicit list.
//
// # Loading
//
// Documents are parsed concurrently, then applied one at a time in document
// order, so a later definition replaces an earlier one with the same key.
// A document that fails to parse is discarded whole and reported in
// LoadResult. After every document is applied, references are linked,
// titular titles are marked, counties are linked to provinces and the
// province adjacency graph is resolved.
//
// Basic usage:
//
//	l := loader.New(loader.Options{GameDir: "/games/ck2"}, logger)
//	world, result, err := l.Load(ctx)
//	if err != nil {
//		return err
//	}
//	for _, d := range result.Diagnostics {
//		fmt.Println(d)
//	}
//
// # Reloading
//
// Watcher reloads after changes under the watched folders settle, and
// Scheduler reloads on a cron schedule. Either calls Load again; the world
// returned by Loader.World is replaced only when a load completes.
package loader
