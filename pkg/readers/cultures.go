package readers

import (
	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

// ReadCultures reads a culture document. Every top-level block is a group;
// every block inside a group that is not a group field is a culture.
func ReadCultures(c parser.Cursor, source string) ([]*entity.CultureGroup, error) {
	var groups []*entity.CultureGroup
	err := eachTopLevel(c, func(tag string) error {
		if !c.NextIsBracketed() {
			return c.SkipValue()
		}
		g, err := readCultureGroup(c, tag, source)
		if err != nil {
			return err
		}
		groups = append(groups, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func readCultureGroup(c parser.Cursor, name, source string) (*entity.CultureGroup, error) {
	g := entity.NewCultureGroup(name, source)
	err := eachField(c, func(tag string) error {
		switch tag {
		case "graphical_culture":
			var err error
			g.GraphicalCulture, err = readString(c)
			return err
		case "second_graphical_culture":
			return c.SkipValue()
		}

		if !c.NextIsBracketed() || c.NextIsList() {
			return keep(c, tag, &g.Misc)
		}
		cul, err := readCulture(c, tag, g, source)
		if err != nil {
			return err
		}
		g.Cultures.Put(cul.Name, cul)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func readCulture(c parser.Cursor, name string, g *entity.CultureGroup, source string) (*entity.Culture, error) {
	cul := entity.NewCulture(name, g, source)
	bools := map[string]*bool{
		"prefix":                   &cul.IsPrefix,
		"horde":                    &cul.Horde,
		"founder_named_dynasties":  &cul.FounderNamedDynasties,
		"dynasty_title_names":      &cul.DynastyTitleNames,
		"dukes_called_kings":       &cul.DukesCalledKings,
		"baron_titles_hidden":      &cul.BaronTitlesHidden,
		"count_titles_hidden":      &cul.CountTitlesHidden,
		"disinherit_from_blinding": &cul.DisinheritFromBlinding,
		"used_for_random":          &cul.UsedForRandom,
	}
	ints := map[string]*int{
		"pat_grf_name_chance": &cul.PaternalGrandfatherChance,
		"mat_grf_name_chance": &cul.MaternalGrandfatherChance,
		"father_name_chance":  &cul.FatherChance,
		"pat_grm_name_chance": &cul.PaternalGrandmotherChance,
		"mat_grm_name_chance": &cul.MaternalGrandmotherChance,
		"mother_name_chance":  &cul.MotherChance,
	}
	strs := map[string]*string{
		"parent":                   &cul.ParentID,
		"graphical_culture":        &cul.GraphicalCulture,
		"second_graphical_culture": &cul.SecondGraphicalCulture,
		"graphical_unit_culture":   &cul.GraphicalUnitCulture,
		"grammar_transform":        &cul.GrammarTransform,
		"modifier":                 &cul.Modifier,
		"from_dynasty_prefix":      &cul.FromDynastyPrefix,
		"bastard_dynasty_prefix":   &cul.BastardDynastyPrefix,
		"male_patronym":            &cul.MalePatronym,
		"female_patronym":          &cul.FemalePatronym,
	}

	err := eachField(c, func(tag string) error {
		if handled, err := boolFields(c, tag, bools); handled {
			return err
		}
		if handled, err := intFields(c, tag, ints); handled {
			return err
		}
		if handled, err := stringFields(c, tag, strs); handled {
			return err
		}

		var err error
		switch tag {
		case "color":
			cul.Color, err = readColour(c, tag)
		case "male_names":
			cul.MaleNames, err = readNames(c)
		case "female_names":
			cul.FemaleNames, err = readNames(c)
		default:
			err = keep(c, tag, &cul.Misc)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return cul, nil
}
