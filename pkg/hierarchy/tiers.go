package hierarchy

import (
	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/registry"
)

// Tiers holds one registry of titles per tier.
type Tiers struct {
	registries map[entity.Tier]*registry.Registry[string, *entity.Title]
}

// NewTiers creates five empty tier registries.
func NewTiers() *Tiers {
	t := &Tiers{registries: make(map[entity.Tier]*registry.Registry[string, *entity.Title], len(entity.Tiers))}
	for _, tier := range entity.Tiers {
		t.registries[tier] = registry.New[string, *entity.Title]()
	}
	return t
}

// Tier returns the registry of one tier.
func (t *Tiers) Tier(tier entity.Tier) *registry.Registry[string, *entity.Title] {
	return t.registries[tier]
}

// Empires returns the empire registry.
func (t *Tiers) Empires() *registry.Registry[string, *entity.Title] {
	return t.registries[entity.TierEmpire]
}

// Kingdoms returns the kingdom registry.
func (t *Tiers) Kingdoms() *registry.Registry[string, *entity.Title] {
	return t.registries[entity.TierKingdom]
}

// Duchies returns the duchy registry.
func (t *Tiers) Duchies() *registry.Registry[string, *entity.Title] {
	return t.registries[entity.TierDuchy]
}

// Counties returns the county registry.
func (t *Tiers) Counties() *registry.Registry[string, *entity.Title] {
	return t.registries[entity.TierCounty]
}

// Baronies returns the barony registry.
func (t *Tiers) Baronies() *registry.Registry[string, *entity.Title] {
	return t.registries[entity.TierBarony]
}

// Lookup finds a title by id in the tier its prefix names.
func (t *Tiers) Lookup(id string) (*entity.Title, bool) {
	tier, ok := entity.TierOf(id)
	if !ok {
		return nil, false
	}
	return t.registries[tier].Get(id)
}

// Len returns the number of titles across all tiers.
func (t *Tiers) Len() int {
	n := 0
	for _, r := range t.registries {
		n += r.Len()
	}
	return n
}

// All returns every title, empires first, each tier in insertion order.
func (t *Tiers) All() []*entity.Title {
	out := make([]*entity.Title, 0, t.Len())
	for _, tier := range entity.Tiers {
		out = append(out, t.registries[tier].Values()...)
	}
	return out
}

// Insert adds title to the registry of its tier.
//
// A title already registered under the same id is discarded and returned:
// the last definition loaded wins, including its own sub-titles. Children
// still pointing at the discarded title lose their parent, and any title in
// a higher tier that lists the id among its sub-titles has that edge
// removed, so no id is a sub-title of two parents.
func (t *Tiers) Insert(title *entity.Title) (replaced *entity.Title) {
	reg := t.registries[title.Tier]

	if old, ok := reg.Get(title.ID); ok && old != title {
		replaced = old
		reg.Delete(title.ID)
		for _, child := range old.SubTitles.Values() {
			if child.Parent == old {
				child.Parent = nil
			}
		}
	}

	for _, tier := range entity.Tiers {
		if tier <= title.Tier {
			continue
		}
		for _, higher := range t.registries[tier].Values() {
			if sub, ok := higher.SubTitles.Get(title.ID); ok && sub != title {
				higher.SubTitles.Delete(title.ID)
			}
		}
	}

	reg.Put(title.ID, title)
	return replaced
}

// MarkTitular flags every county, duchy, kingdom and empire without
// sub-titles as titular, and clears the flag on the others. It returns the
// number of titular titles.
func (t *Tiers) MarkTitular() int {
	n := 0
	for _, tier := range []entity.Tier{entity.TierCounty, entity.TierDuchy, entity.TierKingdom, entity.TierEmpire} {
		for _, title := range t.registries[tier].Values() {
			title.IsTitular = title.SubTitles.Len() == 0
			if title.IsTitular {
				n++
			}
		}
	}
	return n
}

// LinkCounties sets each county's province id and capital from the province
// whose title it is, and points the province back at the county. Counties
// without a province are left unchanged. It returns the number linked.
func (t *Tiers) LinkCounties(provinces *registry.Registry[int, *entity.Province]) int {
	byTitle := make(map[string]*entity.Province, provinces.Len())
	for _, p := range provinces.Values() {
		if _, seen := byTitle[p.Title]; !seen {
			byTitle[p.Title] = p
		}
	}

	n := 0
	for _, county := range t.Counties().Values() {
		p, ok := byTitle[county.ID]
		if !ok {
			continue
		}
		county.CountyID = p.ID
		county.Capital = p.ID
		p.County = county
		n++
	}
	return n
}
