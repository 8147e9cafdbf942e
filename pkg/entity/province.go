package entity

import (
	"slices"

	"chronicle-hq/chronicle/pkg/pdx/ast"
)

// Settlement is a barony holding inside a province ("b_york = castle").
type Settlement struct {
	Title string
	Type  string
}

// Province is a map province, identified by the number its history file is
// named with ("123 - York.txt").
type Province struct {
	ID             int
	Name           string
	Title          string
	Culture        string
	Religion       string
	Terrain        string
	MaxSettlements int
	Settlements    []Settlement
	History        []*ast.Event

	// Set by post-load passes
	County    *Title
	IsCoastal bool
	adjacent  map[int]*Province

	Misc   []ast.Value
	Source string
}

// NewProvince creates an empty province.
func NewProvince(id int, name, source string) *Province {
	return &Province{
		ID:     id,
		Name:   name,
		Source: source,
	}
}

// Connect records p and other as neighbours of each other. A province is
// never its own neighbour. It returns false when nothing changed.
func (p *Province) Connect(other *Province) bool {
	if other == nil || other.ID == p.ID {
		return false
	}
	if p.adjacent == nil {
		p.adjacent = make(map[int]*Province)
	}
	if other.adjacent == nil {
		other.adjacent = make(map[int]*Province)
	}
	_, had := p.adjacent[other.ID]
	p.adjacent[other.ID] = other
	other.adjacent[p.ID] = p
	return !had
}

// IsAdjacent reports whether id is a neighbour of p.
func (p *Province) IsAdjacent(id int) bool {
	_, ok := p.adjacent[id]
	return ok
}

// AdjacentIDs returns the ids of p's neighbours in ascending order.
func (p *Province) AdjacentIDs() []int {
	ids := make([]int, 0, len(p.adjacent))
	for id := range p.adjacent {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Neighbours returns p's neighbours ordered by id.
func (p *Province) Neighbours() []*Province {
	out := make([]*Province, 0, len(p.adjacent))
	for _, id := range p.AdjacentIDs() {
		out = append(out, p.adjacent[id])
	}
	return out
}

// HistoryAt returns the history entries dated on or before d, in date order.
func (p *Province) HistoryAt(d ast.Date) []*ast.Event {
	events := slices.Clone(p.History)
	ast.SortEvents(events)
	n := 0
	for n < len(events) && !d.Before(events[n].Date) {
		n++
	}
	return events[:n]
}
