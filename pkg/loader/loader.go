package loader

import (
	"bytes"
	"context"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"chronicle-hq/chronicle/pkg/adjacency"
	"chronicle-hq/chronicle/pkg/config"
	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/linker"
	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/lexer"
	"chronicle-hq/chronicle/pkg/readers"
	"chronicle-hq/chronicle/pkg/telemetry/logging"
	"chronicle-hq/chronicle/pkg/telemetry/metrics"
	"chronicle-hq/chronicle/pkg/telemetry/tracing"
)

// Load status labels.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)

// Options selects what a Loader reads.
type Options struct {
	// GameDir is the base game folder
	GameDir string

	// Mods are mod descriptor paths, in load order
	Mods []string

	// Documents, when set, replaces folder discovery with an explicit
	// ordered list of paths relative to GameDir
	Documents []string

	// SetupLog is the game's setup.log, source of the neighbour listings
	SetupLog string

	// Workers bounds the number of documents parsed concurrently
	Workers int

	// MaxFileSize is the largest document accepted, in bytes
	MaxFileSize int64
}

// OptionsFromConfig builds loader options from the game and loader sections.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		GameDir:     cfg.Game.Dir,
		Mods:        cfg.Game.Mods,
		Documents:   cfg.Game.Documents,
		SetupLog:    cfg.Game.SetupLog,
		Workers:     cfg.Loader.Workers,
		MaxFileSize: cfg.Loader.MaxFileSize,
	}
}

// LoadResult describes one load run.
type LoadResult struct {
	// RunID identifies the run in logs, metrics and snapshots
	RunID uuid.UUID

	// Version is a content hash over the ordered documents and auxiliary
	// files; two runs over identical input share it
	Version string

	// Documents is the ordered document list the run applied
	Documents []Document

	// Diagnostics holds one summary line per entry of Errors
	Diagnostics []string

	// Errors holds every diagnostic of the run, failed documents included
	Errors *errors.ErrorList

	// FileCount is the number of documents considered
	FileCount int

	// FailedFiles lists the documents that were discarded
	FailedFiles []string

	Adjacency adjacency.Report
	Titular   int
	Counties  int
	Linked    int

	StartedAt time.Time
	Duration  time.Duration
}

// Status returns the metric label for the run.
func (r *LoadResult) Status() string {
	if len(r.FailedFiles) > 0 {
		return StatusPartial
	}
	return StatusSuccess
}

// Loader reads the game folder and mods into a World. Loads are serialized;
// the current World is swapped atomically once a load completes, so readers
// never see a partially applied one.
type Loader struct {
	opts     Options
	logger   *slog.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	progress func(done, total int)

	mu    sync.Mutex
	world atomic.Pointer[World]
	last  atomic.Pointer[LoadResult]
}

// New creates a loader. A nil logger uses slog.Default().
func New(opts Options, logger *slog.Logger) *Loader {
	if opts.Workers < 1 {
		opts.Workers = config.DefaultWorkers()
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = config.DefaultMaxFileSize
	}
	return &Loader{
		opts:   opts,
		logger: logging.OrDefault(logger),
		tracer: tracing.Noop(),
	}
}

// WithMetrics records load and document metrics to c.
func (l *Loader) WithMetrics(c *metrics.Collector) *Loader {
	l.metrics = c
	return l
}

// WithTracer records spans to t.
func (l *Loader) WithTracer(t *tracing.Tracer) *Loader {
	if t != nil {
		l.tracer = t
	}
	return l
}

// WithProgress calls fn after each document is parsed, with the number
// parsed so far and the total. Calls are serialized and done increases by
// one each time.
func (l *Loader) WithProgress(fn func(done, total int)) *Loader {
	l.progress = fn
	return l
}

// Options returns the options the loader was created with.
func (l *Loader) Options() Options {
	return l.opts
}

// World returns the world of the last successful load, or nil.
func (l *Loader) World() *World {
	return l.world.Load()
}

// LastResult returns the result of the last load, successful or not.
func (l *Loader) LastResult() *LoadResult {
	return l.last.Load()
}

// parsed is the outcome of reading one document, before it is applied.
type parsed struct {
	titles       *readers.TitleDocument
	religions    []*entity.ReligionGroup
	cultures     []*entity.CultureGroup
	dynasties    []*entity.Dynasty
	province     *entity.Province
	mapData      *entity.Map
	localisation []entity.LocalisationEntry

	digest [32]byte
	err    error
}

// Load reads every document, applies them in order, links references and
// resolves adjacency. Document failures are collected in the result and do
// not fail the load; an error is returned only when the document list cannot
// be built or ctx is cancelled. The previous World stays current on error.
func (l *Loader) Load(ctx context.Context) (*World, *LoadResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := &LoadResult{
		RunID:     uuid.New(),
		Errors:    errors.NewErrorList(),
		StartedAt: time.Now(),
	}
	ctx = logging.WithRunID(ctx, result.RunID.String())
	ctx, span := l.tracer.Start(ctx, "loader.load")
	defer span.End()

	w, err := l.load(ctx, result)
	result.Duration = time.Since(result.StartedAt)
	result.Diagnostics = result.Errors.Strings()
	l.last.Store(result)

	if err != nil {
		tracing.SetError(span, err)
		l.metrics.RecordLoad(StatusError, result.Duration, result.FileCount, len(result.FailedFiles))
		l.logger.ErrorContext(ctx, "Load failed",
			"game_dir", l.opts.GameDir,
			"error", err,
		)
		return nil, result, err
	}

	for _, e := range result.Errors.Errors {
		l.metrics.RecordDiagnostic(string(e.Type))
	}
	for kind, n := range w.Stats() {
		l.metrics.SetEntities(kind, n)
	}
	l.metrics.RecordLoad(result.Status(), result.Duration, result.FileCount, len(result.FailedFiles))
	tracing.Load(span, result.RunID.String(), result.FileCount, len(result.FailedFiles), result.Errors.Count())

	l.world.Store(w)

	l.logger.InfoContext(ctx, "Load complete",
		"version", result.Version,
		"documents", result.FileCount,
		"failed", len(result.FailedFiles),
		"diagnostics", result.Errors.Count(),
		"titles", w.Titles.Len(),
		"provinces", w.Provinces.Len(),
		"edges", result.Adjacency.Edges,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return w, result, nil
}

func (l *Loader) load(ctx context.Context, result *LoadResult) (*World, error) {
	mods, roots, err := readMods(l.opts.Mods, l.opts.MaxFileSize)
	if err != nil {
		return nil, err
	}
	ls := layers(l.opts.GameDir, mods, roots)

	var docs []Document
	if len(l.opts.Documents) > 0 {
		if err := checkDir(l.opts.GameDir); err != nil {
			return nil, err
		}
		docs = explicit(l.opts.GameDir, l.opts.Documents)
	} else {
		docs, err = discover(ls)
		if err != nil {
			return nil, err
		}
	}
	result.Documents = docs
	result.FileCount = len(docs)

	l.logger.DebugContext(ctx, "Documents resolved",
		"documents", len(docs),
		"mods", len(mods),
		"workers", l.opts.Workers,
	)

	results, err := l.parseAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	w := NewWorld()
	w.Mods = mods
	for i, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := &results[i]
		if p.err != nil {
			l.discard(ctx, d, p.err, result)
			continue
		}
		l.apply(ctx, w, p, result)
	}

	lr := linker.LinkReligions(w.Religions)
	lr.Add(linker.LinkCultureParents(w.Cultures))
	lr.Add(linker.LinkDynastyCultures(w.Dynasties, w.Cultures))
	result.Linked = lr.Linked
	result.Errors.Merge(lr.Unresolved)

	result.Titular = w.Titles.MarkTitular()
	result.Counties = w.Titles.LinkCounties(w.Provinces)

	aux := l.resolveAdjacency(ctx, w, ls, result)
	result.Version = version(docs, results, aux)
	return w, nil
}

// parseAll reads the documents concurrently. Each result lands at its
// document's index, so applying them stays in document order.
func (l *Loader) parseAll(ctx context.Context, docs []Document) ([]parsed, error) {
	out := make([]parsed, len(docs))

	var progressMu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)
	for i, d := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = l.parseDocument(gctx, d)

			if l.progress != nil {
				progressMu.Lock()
				done++
				l.progress(done, len(docs))
				progressMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Loader) parseDocument(ctx context.Context, d Document) parsed {
	start := time.Now()
	_, span := l.tracer.Start(ctx, "loader.document")
	defer span.End()

	var p parsed
	count, err := l.readDocument(d, &p)
	if err != nil {
		p.err = err
		tracing.SetError(span, err)
		l.metrics.RecordDocument(d.Kind.String(), "failed", time.Since(start))
		return p
	}

	tracing.Document(span, d.Rel, d.Kind.String(), count)
	l.metrics.RecordDocument(d.Kind.String(), "ok", time.Since(start))
	return p
}

// readDocument dispatches d to its reader and returns the number of
// top-level records read.
func (l *Loader) readDocument(d Document, p *parsed) (int, error) {
	if d.Kind == KindUnknown {
		return 0, &LoadError{FilePath: d.Path, Message: "no reader for document"}
	}

	data, err := readFile(d.Path, l.opts.MaxFileSize)
	if err != nil {
		return 0, err
	}
	p.digest = blake3.Sum256(data)

	if d.Kind == KindLocalisation {
		p.localisation, err = readers.ReadLocalisation(bytes.NewReader(data), d.Path)
		return len(p.localisation), err
	}

	c, err := lexer.New(d.Path, data)
	if err != nil {
		return 0, withSource(err, data)
	}

	var n int
	switch d.Kind {
	case KindTitles:
		p.titles, err = readers.ReadTitles(c, d.Path)
		if err == nil {
			n = len(p.titles.Titles)
		}
	case KindReligions:
		p.religions, err = readers.ReadReligions(c, d.Path)
		n = len(p.religions)
	case KindCultures:
		p.cultures, err = readers.ReadCultures(c, d.Path)
		n = len(p.cultures)
	case KindDynasties:
		p.dynasties, err = readers.ReadDynasties(c, d.Path)
		n = len(p.dynasties)
	case KindProvince:
		p.province, err = readers.ReadProvince(c, d.Path)
		n = 1
	case KindMap:
		p.mapData, err = readers.ReadMap(c, d.Path)
		n = 1
	}
	if err != nil {
		return 0, withSource(err, data)
	}
	return n, nil
}

// withSource attaches the surrounding source lines to a diagnostic.
func withSource(err error, data []byte) error {
	var de *errors.Error
	if stderrors.As(err, &de) {
		errors.AddContextToError(de, lexer.Decode(data))
	}
	return err
}

// discard records a failed document. Nothing it produced is applied.
func (l *Loader) discard(ctx context.Context, d Document, err error, result *LoadResult) {
	result.FailedFiles = append(result.FailedFiles, d.Path)
	result.Errors.Add(asDiagnostic(d.Path, err))
	l.logger.WarnContext(logging.WithDocument(ctx, d.Rel), "Document failed",
		"path", d.Path,
		"kind", d.Kind.String(),
		"error", err,
	)
}

// apply registers the records of one document. Records replacing earlier
// ones with the same key are reported as duplicate_overwrite diagnostics.
func (l *Loader) apply(ctx context.Context, w *World, p *parsed, result *LoadResult) {
	overwrite := func(source, format string, args ...any) {
		e := errors.New(errors.ErrorTypeDuplicateOverwrite, ast.Location{File: source}, format, args...)
		result.Errors.Add(e)
		l.logger.DebugContext(ctx, "Definition replaced", "source", source, "detail", e.Message)
	}

	if p.titles != nil {
		for _, t := range p.titles.Titles {
			if old := w.Titles.Insert(t); old != nil {
				overwrite(t.Source, "title %q redefined, replacing the definition from %s", t.ID, old.Source)
			}
		}
	}

	for _, g := range p.religions {
		if old, ok := w.ReligionGroups.Put(g.Name, g); ok {
			overwrite(g.Source, "religion group %q redefined, replacing the definition from %s", g.Name, old.Source)
		}
		for _, r := range g.Religions.Values() {
			if old, ok := w.Religions.Put(r.Name, r); ok {
				overwrite(r.Source, "religion %q redefined, replacing the definition from %s", r.Name, old.Source)
			}
		}
	}

	for _, g := range p.cultures {
		if old, ok := w.CultureGroups.Put(g.Name, g); ok {
			overwrite(g.Source, "culture group %q redefined, replacing the definition from %s", g.Name, old.Source)
		}
		for _, c := range g.Cultures.Values() {
			if old, ok := w.Cultures.Put(c.Name, c); ok {
				overwrite(c.Source, "culture %q redefined, replacing the definition from %s", c.Name, old.Source)
			}
		}
	}

	for _, d := range p.dynasties {
		if old, ok := w.Dynasties.Put(d.ID, d); ok {
			overwrite(d.Source, "dynasty %d redefined, replacing the definition from %s", d.ID, old.Source)
		}
	}

	if pr := p.province; pr != nil {
		if pr.Title == "" {
			l.logger.DebugContext(ctx, "Province without title skipped", "id", pr.ID, "source", pr.Source)
		} else if old, ok := w.Provinces.Put(pr.ID, pr); ok {
			overwrite(pr.Source, "province %d redefined, replacing the definition from %s", pr.ID, old.Source)
		}
	}

	if p.mapData != nil {
		if w.Map != nil {
			overwrite(p.mapData.Source, "map descriptor redefined, replacing the definition from %s", w.Map.Source)
		}
		w.Map = p.mapData
	}

	for _, e := range p.localisation {
		w.Localisation.Put(e)
	}
}

// auxFile is an auxiliary input read during adjacency resolution.
type auxFile struct {
	rel    string
	digest [32]byte
}

// resolveAdjacency reads the adjacency pairs named by the map descriptor and
// the setup.log listings, then merges both into the province graph. Missing
// or unreadable sources are diagnostics; adjacency runs with what is left.
func (l *Loader) resolveAdjacency(ctx context.Context, w *World, ls []layer, result *LoadResult) []auxFile {
	in := adjacency.Input{Provinces: w.Provinces}.WithMap(w.Map)
	var aux []auxFile

	if w.Map != nil && w.Map.Adjacencies != "" {
		rel := path.Join("map", lexer.Unquote(w.Map.Adjacencies))
		if p, ok := resolveAux(ls, rel); ok {
			data, err := l.readAux(ctx, p, result)
			if err == nil {
				aux = append(aux, auxFile{rel: rel, digest: blake3.Sum256(data)})
				pairs, err := adjacency.ParsePairs(bytes.NewReader(data), p)
				if err != nil {
					l.auxFailed(ctx, p, err, result)
				}
				in.Pairs = pairs
			}
		} else {
			result.Errors.Add(errors.New(errors.ErrorTypeIO, ast.Location{File: w.Map.Source},
				"adjacency file %q not found", rel))
		}
	}

	if l.opts.SetupLog != "" {
		data, err := l.readAux(ctx, l.opts.SetupLog, result)
		if err == nil {
			aux = append(aux, auxFile{rel: "setup.log", digest: blake3.Sum256(data)})
			listings, err := adjacency.ParseListing(bytes.NewReader(data), l.opts.SetupLog)
			if err != nil {
				l.auxFailed(ctx, l.opts.SetupLog, err, result)
			}
			in.Listings = listings
		}
	}

	result.Adjacency = adjacency.Resolve(in)
	result.Errors.Merge(result.Adjacency.Warnings)
	return aux
}

func (l *Loader) readAux(ctx context.Context, p string, result *LoadResult) ([]byte, error) {
	data, err := readFile(p, 0)
	if err != nil {
		l.auxFailed(ctx, p, err, result)
	}
	return data, err
}

func (l *Loader) auxFailed(ctx context.Context, p string, err error, result *LoadResult) {
	result.Errors.Add(asDiagnostic(p, err))
	l.logger.WarnContext(ctx, "Adjacency source failed", "path", p, "error", err)
}

// version hashes the ordered document paths and contents, followed by the
// auxiliary files.
func version(docs []Document, results []parsed, aux []auxFile) string {
	h := blake3.New()
	for i, d := range docs {
		fmt.Fprintf(h, "%s\x00", d.Rel)
		h.Write(results[i].digest[:])
	}
	for _, a := range aux {
		fmt.Fprintf(h, "%s\x00", a.rel)
		h.Write(a.digest[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
