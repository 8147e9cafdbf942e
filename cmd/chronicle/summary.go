package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/loader"
)

// loadSummary is what the load command reports.
type loadSummary struct {
	RunID       string         `json:"run_id"`
	Version     string         `json:"version"`
	Status      string         `json:"status"`
	Documents   int            `json:"documents"`
	FailedFiles []string       `json:"failed_files,omitempty"`
	Diagnostics map[string]int `json:"diagnostics"`
	Entities    map[string]int `json:"entities"`
	Edges       int            `json:"edges"`
	Coastal     int            `json:"coastal"`
	Titular     int            `json:"titular"`
	Counties    int            `json:"counties"`
	Linked      int            `json:"linked"`
	DurationMS  int64          `json:"duration_ms"`
}

func newLoadSummary(w *loader.World, result *loader.LoadResult) loadSummary {
	diags := make(map[string]int)
	for t, n := range result.Errors.CountByType() {
		diags[string(t)] = n
	}
	return loadSummary{
		RunID:       result.RunID.String(),
		Version:     result.Version,
		Status:      result.Status(),
		Documents:   result.FileCount,
		FailedFiles: result.FailedFiles,
		Diagnostics: diags,
		Entities:    w.Stats(),
		Edges:       result.Adjacency.Edges,
		Coastal:     result.Adjacency.Coastal,
		Titular:     result.Titular,
		Counties:    result.Counties,
		Linked:      result.Linked,
		DurationMS:  result.Duration.Milliseconds(),
	}
}

// Table renders the summary as FIELD/VALUE rows, entity counts and
// diagnostics sorted by name.
func (s loadSummary) Table() cli.Table {
	count := func(n int) string { return humanize.Comma(int64(n)) }

	t := cli.Table{Headers: []string{"FIELD", "VALUE"}}
	add := func(k, v string) { t.Rows = append(t.Rows, []string{k, v}) }

	add("run", s.RunID)
	add("version", s.Version)
	add("status", s.Status)
	add("documents", count(s.Documents))
	if len(s.FailedFiles) > 0 {
		add("failed", strings.Join(s.FailedFiles, ", "))
	}
	for _, k := range slices.Sorted(maps.Keys(s.Entities)) {
		add(k, count(s.Entities[k]))
	}
	add("adjacency_edges", count(s.Edges))
	add("coastal", count(s.Coastal))
	add("titular", count(s.Titular))
	add("counties_linked", count(s.Counties))
	add("references_linked", count(s.Linked))
	for _, k := range slices.Sorted(maps.Keys(s.Diagnostics)) {
		add("diagnostics."+k, count(s.Diagnostics[k]))
	}
	add("duration", fmt.Sprintf("%dms", s.DurationMS))
	return t
}
