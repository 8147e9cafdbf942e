// Package adjacency merges the province neighbour graph from its two
// sources: the explicit pairs of map/adjacencies.csv and the per-province
// neighbour listings the game writes to setup.log.
//
// Neither source is complete or symmetric on its own. Every edge is added in
// both directions, so the merged graph is.
package adjacency

import (
	"slices"

	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/registry"
)

// Input is everything Resolve reads. Provinces are mutated in place.
type Input struct {
	Provinces   *registry.Registry[int, *entity.Province]
	SeaZones    []entity.SeaZone
	MajorRivers []int
	Pairs       []Pair
	Listings    []Listing
}

// WithMap takes the sea zones and major rivers from m.
func (in Input) WithMap(m *entity.Map) Input {
	if m != nil {
		in.SeaZones = m.SeaZones
		in.MajorRivers = m.MajorRivers
	}
	return in
}

// Report summarizes a Resolve run.
type Report struct {
	Edges    int // new undirected edges
	Coastal  int // provinces newly flagged coastal
	Warnings []*errors.Error
}

type resolver struct {
	in     Input
	report Report
}

// Resolve adds the edges of in.Pairs, then those of in.Listings, to the
// provinces. A listing candidate inside a sea zone marks the source province
// coastal instead of adding an edge, and major river crossings are skipped.
// Listings whose source is itself a sea province are ignored. Ids that name
// no province are reported as warnings and skipped.
func Resolve(in Input) Report {
	r := &resolver{in: in}

	for _, p := range in.Pairs {
		from, okFrom := r.province(p.From, p.Location)
		to, okTo := r.province(p.To, p.Location)
		if okFrom && okTo {
			r.connect(from, to)
		}
	}

	for _, l := range in.Listings {
		if r.isSea(l.From) {
			continue
		}
		from, ok := r.province(l.From, l.Location)
		if !ok {
			continue
		}
		for _, id := range l.Candidates {
			switch {
			case slices.Contains(in.MajorRivers, id):
			case r.isSea(id):
				if !from.IsCoastal {
					from.IsCoastal = true
					r.report.Coastal++
				}
			default:
				if to, ok := r.province(id, l.Location); ok {
					r.connect(from, to)
				}
			}
		}
	}

	return r.report
}

func (r *resolver) province(id int, loc ast.Location) (*entity.Province, bool) {
	p, ok := r.in.Provinces.Get(id)
	if !ok {
		r.report.Warnings = append(r.report.Warnings,
			errors.New(errors.ErrorTypeUnresolvedAdjacency, loc, "unknown province id %d", id))
	}
	return p, ok
}

func (r *resolver) connect(a, b *entity.Province) {
	if a.Connect(b) {
		r.report.Edges++
	}
}

func (r *resolver) isSea(id int) bool {
	for _, z := range r.in.SeaZones {
		if z.Contains(id) {
			return true
		}
	}
	return false
}
