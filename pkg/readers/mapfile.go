package readers

import (
	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

// ReadMap reads map/default.map.
func ReadMap(c parser.Cursor, source string) (*entity.Map, error) {
	m := &entity.Map{Source: source}
	files := map[string]*string{
		"definitions":        &m.Definitions,
		"provinces":          &m.Provinces,
		"positions":          &m.Positions,
		"terrain":            &m.Terrain,
		"rivers":             &m.Rivers,
		"terrain_definition": &m.TerrainDefinition,
		"heightmap":          &m.Heightmap,
		"tree_definition":    &m.TreeDefinition,
		"continent":          &m.Continent,
		"adjacencies":        &m.Adjacencies,
		"climate":            &m.Climate,
		"region":             &m.Region,
		"static":             &m.Static,
	}

	err := eachTopLevel(c, func(tag string) error {
		if handled, err := stringFields(c, tag, files); handled {
			return err
		}

		loc := c.Location()
		var err error
		switch tag {
		case "max_provinces":
			m.MaxProvinces, err = readInt(c, tag)
		case "sea_zones":
			var ids []int
			if ids, err = readInts(c); err != nil {
				return err
			}
			if len(ids) < 2 {
				return errors.New(errors.ErrorTypeMalformedScalar, loc, "sea_zones needs a start and an end id, got %d", len(ids))
			}
			m.SeaZones = append(m.SeaZones, entity.SeaZone{Start: ids[0], End: ids[1]})
		case "ocean_region":
			var region []int
			if region, err = readOceanRegion(c, tag); err == nil {
				m.OceanRegions = append(m.OceanRegions, region)
			}
		case "tree":
			var ids []int
			ids, err = readInts(c)
			m.Tree = append(m.Tree, ids...)
		case "major_rivers":
			var ids []int
			ids, err = readInts(c)
			m.MajorRivers = append(m.MajorRivers, ids...)
		default:
			err = keep(c, tag, &m.Misc)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// readOceanRegion accepts both "ocean_region = { 1 2 }" and the block form
// "ocean_region = { sea_zones = { 1 2 } }", collecting every id listed.
func readOceanRegion(c parser.Cursor, tag string) ([]int, error) {
	if c.NextIsList() {
		return readInts(c)
	}
	v, err := parser.ParseValue(c, tag)
	if err != nil {
		return nil, err
	}
	var ids []int
	_ = ast.Walk(v, func(n ast.Value, _ int) error {
		if l, ok := n.(*ast.IntList); ok {
			for _, id := range l.Items {
				ids = append(ids, int(id))
			}
		}
		return nil
	})
	return ids, nil
}
