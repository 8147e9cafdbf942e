package snapshot

import (
	"fmt"
	"image/color"
	"time"

	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/loader"
)

// Run describes the load a snapshot was taken from.
type Run struct {
	ID          string    `json:"run_id"`
	Version     string    `json:"version"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
	Files       int       `json:"files"`
	FailedFiles int       `json:"failed_files"`
	Diagnostics int       `json:"diagnostics"`
}

// Title is a flattened landed title.
type Title struct {
	ID             string `json:"id"`
	Tier           string `json:"tier"`
	Parent         string `json:"parent,omitempty"`
	Culture        string `json:"culture,omitempty"`
	Religion       string `json:"religion,omitempty"`
	Capital        int    `json:"capital"`
	CountyProvince int    `json:"county_province"`
	Titular        bool   `json:"titular"`
	Color          string `json:"color"`
	Source         string `json:"source"`
}

// Province is a flattened province with its neighbour ids.
type Province struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Culture    string `json:"culture,omitempty"`
	Religion   string `json:"religion,omitempty"`
	Terrain    string `json:"terrain,omitempty"`
	Coastal    bool   `json:"coastal"`
	Neighbours []int  `json:"neighbours,omitempty"`
	Source     string `json:"source"`
}

// Religion is a flattened religion.
type Religion struct {
	Name     string `json:"name"`
	Group    string `json:"group"`
	Parent   string `json:"parent,omitempty"`
	Reformed string `json:"reformed,omitempty"`
	Source   string `json:"source"`
}

// Culture is a flattened culture.
type Culture struct {
	Name   string `json:"name"`
	Group  string `json:"group"`
	Parent string `json:"parent,omitempty"`
	Source string `json:"source"`
}

// Dynasty is a flattened dynasty.
type Dynasty struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Culture string `json:"culture,omitempty"`
	Source  string `json:"source"`
}

// Diagnostic is one load diagnostic.
type Diagnostic struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// Snapshot is the persisted form of a loaded world. Records are ordered by
// key so two snapshots of the same world are equal.
type Snapshot struct {
	Run         Run          `json:"run"`
	Titles      []Title      `json:"titles"`
	Provinces   []Province   `json:"provinces"`
	Religions   []Religion   `json:"religions"`
	Cultures    []Culture    `json:"cultures"`
	Dynasties   []Dynasty    `json:"dynasties"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Build flattens a loaded world and its load result.
func Build(w *loader.World, result *loader.LoadResult) *Snapshot {
	s := &Snapshot{
		Run: Run{
			ID:          result.RunID.String(),
			Version:     result.Version,
			Status:      result.Status(),
			StartedAt:   result.StartedAt.UTC().Truncate(time.Millisecond),
			DurationMS:  result.Duration.Milliseconds(),
			Files:       result.FileCount,
			FailedFiles: len(result.FailedFiles),
			Diagnostics: result.Errors.Count(),
		},
	}

	for _, tier := range entity.Tiers {
		reg := w.Titles.Tier(tier)
		for _, id := range reg.SortedKeys() {
			t, _ := reg.Get(id)
			s.Titles = append(s.Titles, Title{
				ID:             t.ID,
				Tier:           t.Tier.String(),
				Parent:         t.ParentID(),
				Culture:        t.Culture,
				Religion:       t.Religion,
				Capital:        t.Capital,
				CountyProvince: t.CountyID,
				Titular:        t.IsTitular,
				Color:          hexColor(t.Color),
				Source:         t.Source,
			})
		}
	}

	for _, id := range w.Provinces.SortedKeys() {
		p, _ := w.Provinces.Get(id)
		s.Provinces = append(s.Provinces, Province{
			ID:         p.ID,
			Name:       p.Name,
			Title:      p.Title,
			Culture:    p.Culture,
			Religion:   p.Religion,
			Terrain:    p.Terrain,
			Coastal:    p.IsCoastal,
			Neighbours: nilIfEmpty(p.AdjacentIDs()),
			Source:     p.Source,
		})
	}

	for _, name := range w.Religions.SortedKeys() {
		r, _ := w.Religions.Get(name)
		s.Religions = append(s.Religions, Religion{
			Name:     r.Name,
			Group:    r.GroupName(),
			Parent:   r.ParentID,
			Reformed: r.ReformedID,
			Source:   r.Source,
		})
	}

	for _, name := range w.Cultures.SortedKeys() {
		c, _ := w.Cultures.Get(name)
		s.Cultures = append(s.Cultures, Culture{
			Name:   c.Name,
			Group:  c.GroupName(),
			Parent: c.ParentID,
			Source: c.Source,
		})
	}

	for _, id := range w.Dynasties.SortedKeys() {
		d, _ := w.Dynasties.Get(id)
		s.Dynasties = append(s.Dynasties, Dynasty{
			ID:      d.ID,
			Name:    d.Name,
			Culture: d.CultureID,
			Source:  d.Source,
		})
	}

	for _, e := range result.Errors.Errors {
		s.Diagnostics = append(s.Diagnostics, Diagnostic{
			Type:    string(e.Type),
			Message: e.Message,
			File:    e.Location.File,
			Line:    e.Location.Line,
			Column:  e.Location.Column,
		})
	}
	return s
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func nilIfEmpty(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	return ids
}
