package entity

import (
	"slices"

	"chronicle-hq/chronicle/pkg/pdx/ast"
)

// SeaZone is an inclusive range of province ids that are sea tiles.
type SeaZone struct {
	Start int
	End   int
}

// Contains reports whether id falls within the zone.
func (z SeaZone) Contains(id int) bool {
	return id >= z.Start && id <= z.End
}

// Map is the map descriptor (map/default.map). The file fields name the
// other map files relative to the map folder.
type Map struct {
	MaxProvinces int

	Definitions       string
	Provinces         string
	Positions         string
	Terrain           string
	Rivers            string
	TerrainDefinition string
	Heightmap         string
	TreeDefinition    string
	Continent         string
	Adjacencies       string
	Climate           string
	Region            string
	Static            string

	SeaZones     []SeaZone
	MajorRivers  []int
	OceanRegions [][]int
	Tree         []int

	Misc   []ast.Value
	Source string
}

// IsSea reports whether id lies in any sea zone.
func (m *Map) IsSea(id int) bool {
	if m == nil {
		return false
	}
	for _, z := range m.SeaZones {
		if z.Contains(id) {
			return true
		}
	}
	return false
}

// IsMajorRiver reports whether id is a major river crossing.
func (m *Map) IsMajorRiver(id int) bool {
	if m == nil {
		return false
	}
	return slices.Contains(m.MajorRivers, id)
}
