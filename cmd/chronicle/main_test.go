package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chronicle-hq/chronicle/pkg/cli"
	"chronicle-hq/chronicle/pkg/snapshot"
)

// execute runs the root command with args and returns what it wrote to
// stdout. Flag variables are reset first; cobra keeps them between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

// executeContext is execute with a parent context for the command.
func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	cfgFile, verbose, outputFormat, gameDir, modFiles = "", false, "text", "", nil
	loadFlags.strict, loadFlags.progress, loadFlags.diagnostics = false, false, false
	inspectFlags.tags, inspectFlags.maxSize = nil, 32*1024*1024
	exportFlags.out, exportFlags.compress, exportFlags.run = "-", false, ""
	snapshotFlags.db, snapshotFlags.limit, snapshotFlags.keep, snapshotFlags.run = "", 20, 10, "latest"
	watchFlags.files, watchFlags.schedule = true, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeGame(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

var smallGame = map[string]string{
	"common/landed_titles/titles.txt": `
k_wessex = {
	d_somerset = {
		c_somerset = { b_taunton = { } }
	}
}
`,
	"common/dynasties/dynasties.txt": `100 = { name = "Wessex" culture = saxon }`,
}

func TestLoadCommand_JSON(t *testing.T) {
	dir := writeGame(t, smallGame)

	out, err := execute(t, "load", "-g", dir, "-o", "json")
	if err != nil {
		t.Fatalf("load error = %v", err)
	}

	var got loadSummary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Documents != 2 {
		t.Errorf("Documents = %d, want 2", got.Documents)
	}
	if got.Entities["titles"] != 4 {
		t.Errorf("Entities[titles] = %d, want 4", got.Entities["titles"])
	}
	if got.Diagnostics["unknown_reference"] != 1 {
		t.Errorf("Diagnostics = %v, want one unknown_reference", got.Diagnostics)
	}
	if len(got.Version) != 64 {
		t.Errorf("Version = %q, want a 64 character hash", got.Version)
	}
}

func TestLoadCommand_Strict(t *testing.T) {
	dir := writeGame(t, smallGame)

	_, err := execute(t, "load", "-g", dir, "--strict")
	var derr *cli.DiagnosticsError
	if !errors.As(err, &derr) {
		t.Fatalf("load --strict error = %v, want DiagnosticsError", err)
	}
	if derr.Count != 1 {
		t.Errorf("Count = %d, want 1", derr.Count)
	}
	if code := cli.ExitCode(err); code != cli.ExitDiagnostics {
		t.Errorf("ExitCode = %d, want %d", code, cli.ExitDiagnostics)
	}
}

func TestLoadCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no game dir", []string{"load"}, cli.ExitConfig},
		{"bad output", []string{"load", "-g", t.TempDir(), "-o", "xml"}, cli.ExitConfig},
		{"missing game dir", []string{"load", "-g", filepath.Join(t.TempDir(), "absent")}, cli.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHRONICLE_GAME_DIR", "")
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code := cli.ExitCode(err); code != tt.code {
				t.Errorf("ExitCode(%v) = %d, want %d", err, code, tt.code)
			}
		})
	}
}

func TestSnapshotCommands(t *testing.T) {
	dir := writeGame(t, smallGame)
	db := filepath.Join(t.TempDir(), "chronicle.db")
	t.Setenv("CHRONICLE_SNAPSHOT_ENABLED", "true")
	t.Setenv("CHRONICLE_SNAPSHOT_PATH", db)

	for i := 0; i < 2; i++ {
		if _, err := execute(t, "load", "-g", dir); err != nil {
			t.Fatalf("load %d error = %v", i, err)
		}
	}

	out, err := execute(t, "snapshot", "list", "--db", db, "-o", "csv")
	if err != nil {
		t.Fatalf("snapshot list error = %v", err)
	}
	// Header plus one run: the second load had the same content.
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 2 {
		t.Errorf("snapshot list = %q, want a header and one run", out)
	}

	out, err = execute(t, "export", "--run", "latest", "--db", db)
	if err != nil {
		t.Fatalf("export --run latest error = %v", err)
	}
	snap, err := snapshot.ReadJSON(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if len(snap.Titles) != 4 || snap.Titles[0].ID != "k_wessex" {
		t.Errorf("exported titles = %+v, want 4 starting with k_wessex", snap.Titles)
	}

	out, err = execute(t, "snapshot", "prune", "--db", db, "--keep", "0")
	if err != nil {
		t.Fatalf("snapshot prune error = %v", err)
	}
	if !strings.Contains(out, "Pruned 1 run(s)") {
		t.Errorf("prune output = %q", out)
	}
}

func TestInspectCommand(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"titles.txt": "k_wessex = { color = { 10 20 30 } }\nd_kent = { capital = 7 }\n",
	})
	path := filepath.Join(dir, "titles.txt")

	out, err := execute(t, "inspect", path, "--tag", "d_kent")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if !strings.Contains(out, "d_kent") || strings.Contains(out, "k_wessex") {
		t.Errorf("inspect --tag d_kent = %q", out)
	}
	if !strings.Contains(out, "capital = 7") {
		t.Errorf("inspect output = %q, want capital = 7", out)
	}

	if _, err := execute(t, "inspect", filepath.Join(dir, "absent.txt")); err == nil {
		t.Error("inspect of a missing file: expected error")
	}
}
