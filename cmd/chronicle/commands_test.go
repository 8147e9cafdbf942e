package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/pdx/ast"
)

func TestSelectTags(t *testing.T) {
	values := []ast.Value{
		&ast.Group{ID: "k_wessex"},
		&ast.Int{Key: "capital", Value: 7},
		&ast.Group{ID: "d_kent"},
	}

	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{"all", nil, []string{"k_wessex", "capital", "d_kent"}},
		{"one", []string{"d_kent"}, []string{"d_kent"}},
		{"keeps document order", []string{"d_kent", "k_wessex"}, []string{"k_wessex", "d_kent"}},
		{"none", []string{"e_britannia"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, v := range selectTags(values, tt.tags) {
				got = append(got, v.Tag())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("selectTags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadSummaryTable(t *testing.T) {
	s := loadSummary{
		RunID:       "run-1",
		Version:     "abc",
		Status:      "partial",
		Documents:   1200,
		FailedFiles: []string{"a.txt", "b.txt"},
		Diagnostics: map[string]int{"unknown_reference": 3, "syntax": 2},
		Entities:    map[string]int{"titles": 2500, "cultures": 40},
		Edges:       7,
		DurationMS:  1500,
	}

	want := [][]string{
		{"run", "run-1"},
		{"version", "abc"},
		{"status", "partial"},
		{"documents", "1,200"},
		{"failed", "a.txt, b.txt"},
		{"cultures", "40"},
		{"titles", "2,500"},
		{"adjacency_edges", "7"},
		{"coastal", "0"},
		{"titular", "0"},
		{"counties_linked", "0"},
		{"references_linked", "0"},
		{"diagnostics.syntax", "2"},
		{"diagnostics.unknown_reference", "3"},
		{"duration", "1500ms"},
	}
	got := s.Table()
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Errorf("Table().Rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"FIELD", "VALUE"}, got.Headers); diff != "" {
		t.Errorf("Table().Headers mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTable(t *testing.T) {
	runs := runTable{{
		ID:          "run-1",
		Version:     "0123456789abcdef",
		Status:      "success",
		StartedAt:   time.Now().Add(-2 * time.Hour),
		Files:       10,
		FailedFiles: 0,
		Diagnostics: 1234,
	}}

	got := runs.Table().Rows
	want := [][]string{{"run-1", "2 hours ago", "success", "10", "0", "1,234", "0123456789ab"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Table().Rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNeighbourTable(t *testing.T) {
	var tab cli.Tabular = neighbourTable{2, 30}
	want := cli.Table{Headers: []string{"PROVINCE"}, Rows: [][]string{{"2"}, {"30"}}}
	if diff := cmp.Diff(want, tab.Table()); diff != "" {
		t.Errorf("Table() mismatch (-want +got):\n%s", diff)
	}
}
