package loader

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"chronicle-hq/chronicle/pkg/config"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/telemetry/logging"
	"chronicle-hq/chronicle/pkg/telemetry/metrics"
	"chronicle-hq/chronicle/pkg/telemetry/tracing"
)

func load(t *testing.T, opts Options) (*Loader, *World, *LoadResult) {
	t.Helper()
	l := New(opts, logging.Discard())
	w, result, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return l, w, result
}

func rels(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Rel)
	}
	return out
}

func TestLoader_Load(t *testing.T) {
	l, w, result := load(t, newGame(t, nil))

	if l.World() != w {
		t.Error("World() does not return the loaded world")
	}
	if l.LastResult() != result {
		t.Error("LastResult() does not return the load result")
	}

	wantDocs := []string{
		"common/cultures/00_cultures.txt",
		"common/dynasties/00_dynasties.txt",
		"common/landed_titles/00_titles.txt",
		"common/religions/00_religions.txt",
		"history/provinces/1 - York.txt",
		"history/provinces/2 - Lincoln.txt",
		"history/provinces/30 - Sea.txt",
		"localisation/text.csv",
		"map/default.map",
	}
	if diff := cmp.Diff(wantDocs, rels(result.Documents)); diff != "" {
		t.Errorf("Documents mismatch (-want +got):\n%s", diff)
	}
	if result.FileCount != len(wantDocs) {
		t.Errorf("FileCount = %d, want %d", result.FileCount, len(wantDocs))
	}
	if len(result.FailedFiles) != 0 {
		t.Errorf("FailedFiles = %v, want none", result.FailedFiles)
	}
	if result.Status() != StatusSuccess {
		t.Errorf("Status() = %q, want %q", result.Status(), StatusSuccess)
	}

	if got := w.Titles.Len(); got != 7 {
		t.Errorf("Titles.Len() = %d, want 7", got)
	}
	titular, _ := w.Titles.Lookup("d_titular")
	if titular == nil || !titular.IsTitular {
		t.Errorf("d_titular not marked titular")
	}
	if result.Titular != 1 {
		t.Errorf("Titular = %d, want 1", result.Titular)
	}

	// Province 30 has no title and is not registered.
	if got := w.Provinces.SortedKeys(); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Provinces = %v, want [1 2]", got)
	}
	york, _ := w.Provinces.Get(1)
	county, _ := w.Titles.Lookup("c_york")
	if york.County != county || county.CountyID != 1 {
		t.Errorf("c_york not linked to province 1")
	}
	if result.Counties != 2 {
		t.Errorf("Counties = %d, want 2", result.Counties)
	}

	cathar, _ := w.Religions.Get("cathar")
	catholic, _ := w.Religions.Get("catholic")
	if cathar.Parent != catholic {
		t.Errorf("cathar.Parent = %v, want catholic", cathar.Parent)
	}
	norse, _ := w.Cultures.Get("norse")
	saxon, _ := w.Cultures.Get("saxon")
	if norse.Parent != saxon {
		t.Errorf("norse.Parent = %v, want saxon", norse.Parent)
	}
	godwin, _ := w.Dynasties.Get(1)
	if godwin.Culture != saxon {
		t.Errorf("dynasty 1 culture = %v, want saxon", godwin.Culture)
	}
	if result.Linked != 3 {
		t.Errorf("Linked = %d, want 3", result.Linked)
	}
	if got := len(result.Errors.ByType(errors.ErrorTypeUnknownReference)); got != 2 {
		t.Errorf("unknown_reference diagnostics = %d, want 2: %v", got, result.Diagnostics)
	}

	if !york.IsAdjacent(2) {
		t.Error("province 1 not adjacent to 2")
	}
	if !york.IsCoastal {
		t.Error("province 1 not coastal")
	}
	if result.Adjacency.Edges != 1 || result.Adjacency.Coastal != 1 {
		t.Errorf("Adjacency = %+v, want 1 edge and 1 coastal", result.Adjacency)
	}

	if got := w.Localisation.Text("c_york"); got != "York" {
		t.Errorf("Localisation.Text(c_york) = %q, want York", got)
	}
	if w.Map == nil || !w.Map.IsSea(35) {
		t.Errorf("map not loaded: %+v", w.Map)
	}

	if len(result.Diagnostics) != result.Errors.Count() {
		t.Errorf("len(Diagnostics) = %d, want %d", len(result.Diagnostics), result.Errors.Count())
	}
	if len(result.Version) != 64 {
		t.Errorf("Version = %q, want 64 hex digits", result.Version)
	}
}

func TestLoader_Load_Overwrite(t *testing.T) {
	opts := newGame(t, map[string]string{
		"common/cultures/01_more.txt": "germanic = { saxon = { } }\n",
	})
	_, w, result := load(t, opts)

	if got := len(result.Errors.ByType(errors.ErrorTypeDuplicateOverwrite)); got != 2 {
		t.Errorf("duplicate_overwrite diagnostics = %d, want 2: %v", got, result.Diagnostics)
	}
	saxon, _ := w.Cultures.Get("saxon")
	if filepath.Base(saxon.Source) != "01_more.txt" {
		t.Errorf("saxon.Source = %q, want the later document", saxon.Source)
	}
	// norse still comes from the first document and links to the new saxon.
	norse, _ := w.Cultures.Get("norse")
	if norse.Parent != saxon {
		t.Errorf("norse.Parent = %v, want the later saxon", norse.Parent)
	}
}

func TestLoader_Load_FailedDocumentDiscarded(t *testing.T) {
	opts := newGame(t, map[string]string{
		"common/cultures/01_broken.txt": "celtic = { irish = { } \nwelsh = { color = { 1 2 } }\n",
	})
	_, w, result := load(t, opts)

	if len(result.FailedFiles) != 1 || filepath.Base(result.FailedFiles[0]) != "01_broken.txt" {
		t.Fatalf("FailedFiles = %v, want [01_broken.txt]", result.FailedFiles)
	}
	if result.Status() != StatusPartial {
		t.Errorf("Status() = %q, want %q", result.Status(), StatusPartial)
	}
	if !result.Errors.HasErrorType(errors.ErrorTypeSyntax) {
		t.Errorf("no syntax diagnostic: %v", result.Diagnostics)
	}
	if w.CultureGroups.Has("celtic") || w.Cultures.Has("irish") {
		t.Error("records of the failed document were applied")
	}
	if !w.Cultures.Has("saxon") {
		t.Error("other documents not applied")
	}
}

func TestLoader_Load_ModOverlay(t *testing.T) {
	opts := newGame(t, nil)
	mods := filepath.Join(filepath.Dir(opts.GameDir), "mods")
	writeTree(t, mods, map[string]string{
		"mod/better.mod": `
name = "Better Britain"
path = "mod/better"
replace_path = "history/provinces"
`,
		"mod/better/history/provinces/1 - York.txt":    "title = c_york\nculture = norse\n",
		"mod/better/common/cultures/00_cultures.txt":   "germanic = { saxon = { } norse = { } anglo = { } }\n",
		"mod/better/common/dynasties/10_dynasties.txt": "3 = { name = \"Wessex\" culture = anglo }\n",
	})
	opts.Mods = []string{filepath.Join(mods, "mod", "better.mod")}

	_, w, result := load(t, opts)

	wantDocs := []string{
		"common/cultures/00_cultures.txt",
		"common/dynasties/00_dynasties.txt",
		"common/landed_titles/00_titles.txt",
		"common/religions/00_religions.txt",
		"localisation/text.csv",
		"map/default.map",
		"common/dynasties/10_dynasties.txt",
		"history/provinces/1 - York.txt",
	}
	if diff := cmp.Diff(wantDocs, rels(result.Documents)); diff != "" {
		t.Errorf("Documents mismatch (-want +got):\n%s", diff)
	}
	if got := result.Documents[0].Layer; got != "Better Britain" {
		t.Errorf("overridden document layer = %q, want Better Britain", got)
	}
	if got := result.Documents[1].Layer; got != "" {
		t.Errorf("base document layer = %q, want empty", got)
	}

	if got := w.Provinces.SortedKeys(); !slices.Equal(got, []int{1}) {
		t.Errorf("Provinces = %v, want [1]", got)
	}
	york, _ := w.Provinces.Get(1)
	if york.Culture != "norse" {
		t.Errorf("province 1 culture = %q, want norse", york.Culture)
	}
	if !w.Cultures.Has("anglo") {
		t.Error("mod culture missing")
	}
	norse, _ := w.Cultures.Get("norse")
	if norse.Parent != nil {
		t.Errorf("norse.Parent = %v, want nil after override", norse.Parent)
	}
	if len(w.Mods) != 1 || w.Mods[0].Name != "Better Britain" {
		t.Errorf("Mods = %v", w.Mods)
	}

	// The adjacency pair to province 2 now names an unknown province.
	if !result.Errors.HasErrorType(errors.ErrorTypeUnresolvedAdjacency) {
		t.Errorf("no unresolved_adjacency diagnostic: %v", result.Diagnostics)
	}
}

func TestLoader_Load_ExplicitDocuments(t *testing.T) {
	opts := newGame(t, nil)
	opts.Documents = []string{
		"common/cultures/00_cultures.txt",
		"common/dynasties/00_dynasties.txt",
		"unknown/thing.txt",
	}
	_, w, result := load(t, opts)

	if result.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", result.FileCount)
	}
	if len(result.FailedFiles) != 1 || filepath.Base(result.FailedFiles[0]) != "thing.txt" {
		t.Errorf("FailedFiles = %v, want [thing.txt]", result.FailedFiles)
	}
	if w.Titles.Len() != 0 || w.Cultures.Len() != 2 || w.Dynasties.Len() != 2 {
		t.Errorf("Stats() = %v", w.Stats())
	}
}

func TestLoader_Load_Version(t *testing.T) {
	opts := newGame(t, nil)
	l := New(opts, logging.Discard())

	_, first, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	_, second, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first.Version != second.Version {
		t.Errorf("Version changed without input changes: %s != %s", first.Version, second.Version)
	}
	if first.RunID == second.RunID {
		t.Error("RunID reused across runs")
	}

	writeTree(t, opts.GameDir, map[string]string{
		"history/provinces/2 - Lincoln.txt": "title = c_lincoln\nculture = norse\n",
	})
	_, third, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if third.Version == first.Version {
		t.Error("Version unchanged after a document changed")
	}

	if err := os.WriteFile(opts.SetupLog, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	_, fourth, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if fourth.Version == third.Version {
		t.Error("Version unchanged after the setup log changed")
	}
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Run("missing game dir", func(t *testing.T) {
		l := New(Options{GameDir: filepath.Join(t.TempDir(), "missing")}, logging.Discard())
		_, result, err := l.Load(context.Background())

		var le *LoadError
		if !stderrors.As(err, &le) {
			t.Fatalf("Load() error = %v, want *LoadError", err)
		}
		if l.World() != nil {
			t.Error("World() set after a failed load")
		}
		if l.LastResult() != result || result == nil {
			t.Error("LastResult() not recorded for a failed load")
		}
	})

	t.Run("missing mod descriptor", func(t *testing.T) {
		opts := newGame(t, nil)
		opts.Mods = []string{filepath.Join(t.TempDir(), "nope.mod")}
		_, _, err := New(opts, logging.Discard()).Load(context.Background())
		var le *LoadError
		if !stderrors.As(err, &le) {
			t.Fatalf("Load() error = %v, want *LoadError", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		l := New(newGame(t, nil), logging.Discard())
		if _, _, err := l.Load(context.Background()); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		previous := l.World()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := l.Load(ctx)
		if !stderrors.Is(err, context.Canceled) {
			t.Fatalf("Load() error = %v, want context.Canceled", err)
		}
		if l.World() != previous {
			t.Error("World() replaced by a cancelled load")
		}
	})
}

func TestLoader_Load_Telemetry(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(&config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "loader",
	}, reg)
	exporter := tracetest.NewInMemoryExporter()

	l := New(newGame(t, nil), logging.Discard()).
		WithMetrics(collector).
		WithTracer(tracing.NewWithExporter(exporter))
	if _, _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if n, err := testutil.GatherAndCount(reg, "test_loader_runs_total"); err != nil || n != 1 {
		t.Errorf("runs_total series = %d, %v, want 1", n, err)
	}
	if n, err := testutil.GatherAndCount(reg, "test_loader_documents_total"); err != nil || n == 0 {
		t.Errorf("documents_total series = %d, %v, want > 0", n, err)
	}

	var loads, docs int
	for _, s := range exporter.GetSpans() {
		switch s.Name {
		case "loader.load":
			loads++
		case "loader.document":
			docs++
		}
	}
	if loads != 1 || docs != 9 {
		t.Errorf("spans: %d loader.load, %d loader.document, want 1 and 9", loads, docs)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Dir = "/games/ck2"
	cfg.Game.Mods = []string{"/mods/a.mod"}
	cfg.Game.SetupLog = "/logs/setup.log"
	cfg.Loader.Workers = 3

	got := OptionsFromConfig(cfg)
	want := Options{
		GameDir:     "/games/ck2",
		Mods:        []string{"/mods/a.mod"},
		SetupLog:    "/logs/setup.log",
		Workers:     3,
		MaxFileSize: config.DefaultMaxFileSize,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OptionsFromConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadError(t *testing.T) {
	cause := os.ErrNotExist
	err := &LoadError{FilePath: "a.txt", Message: "file not found", Cause: cause}

	if want := `failed to load "a.txt": file not found: file does not exist`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is(err, os.ErrNotExist) = false, want true")
	}

	d := asDiagnostic("a.txt", err)
	if d.Type != errors.ErrorTypeIO || d.Location.File != "a.txt" {
		t.Errorf("asDiagnostic() = %+v", d)
	}
}

func TestLoader_WithProgress(t *testing.T) {
	var calls [][2]int
	l := New(newGame(t, nil), logging.Discard()).WithProgress(func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	_, result, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(calls) != result.FileCount {
		t.Fatalf("progress calls = %d, want %d", len(calls), result.FileCount)
	}
	for i, c := range calls {
		if c != [2]int{i + 1, result.FileCount} {
			t.Errorf("call %d = %v, want [%d %d]", i, c, i+1, result.FileCount)
		}
	}
}
