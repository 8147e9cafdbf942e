package loader

import (
	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/hierarchy"
	"chronicle-hq/chronicle/pkg/registry"
)

// World is the fully linked game state produced by one load. It is not
// modified after Load returns; a reload builds a new World.
type World struct {
	Titles         *hierarchy.Tiers
	Provinces      *registry.Registry[int, *entity.Province]
	ReligionGroups *registry.Registry[string, *entity.ReligionGroup]
	Religions      *registry.Registry[string, *entity.Religion]
	CultureGroups  *registry.Registry[string, *entity.CultureGroup]
	Cultures       *registry.Registry[string, *entity.Culture]
	Dynasties      *registry.Registry[int, *entity.Dynasty]
	Map            *entity.Map
	Localisation   *entity.Localisation
	Mods           []*entity.Mod
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		Titles:         hierarchy.NewTiers(),
		Provinces:      registry.New[int, *entity.Province](),
		ReligionGroups: registry.New[string, *entity.ReligionGroup](),
		Religions:      registry.New[string, *entity.Religion](),
		CultureGroups:  registry.New[string, *entity.CultureGroup](),
		Cultures:       registry.New[string, *entity.Culture](),
		Dynasties:      registry.New[int, *entity.Dynasty](),
		Localisation:   entity.NewLocalisation(),
	}
}

// Stats returns entity counts keyed by kind, as reported by metrics and the
// CLI summary.
func (w *World) Stats() map[string]int {
	if w == nil {
		return nil
	}
	return map[string]int{
		"titles":          w.Titles.Len(),
		"provinces":       w.Provinces.Len(),
		"religion_groups": w.ReligionGroups.Len(),
		"religions":       w.Religions.Len(),
		"culture_groups":  w.CultureGroups.Len(),
		"cultures":        w.Cultures.Len(),
		"dynasties":       w.Dynasties.Len(),
		"localisation":    w.Localisation.Len(),
	}
}
