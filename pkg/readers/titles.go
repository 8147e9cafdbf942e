package readers

import (
	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/hierarchy"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

// TitleDocument is the result of reading one landed titles file.
type TitleDocument struct {
	// Titles in completion order: every title follows its sub-titles, ready
	// for hierarchy.Tiers.Insert.
	Titles []*entity.Title
	// Skipped counts top-level entries without a title prefix.
	Skipped int
}

// ReadTitles reads a landed titles document. Titles nest lexically; the
// nesting becomes Parent and SubTitles.
func ReadTitles(c parser.Cursor, source string) (*TitleDocument, error) {
	doc := &TitleDocument{}
	var anc hierarchy.Ancestry

	err := eachTopLevel(c, func(tag string) error {
		if !entity.IsTitleID(tag) || !c.NextIsBracketed() {
			doc.Skipped++
			return c.SkipValue()
		}
		return readTitle(c, tag, source, &anc, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func readTitle(c parser.Cursor, id, source string, anc *hierarchy.Ancestry, doc *TitleDocument) error {
	t, ok := entity.NewTitle(id, source)
	if !ok {
		e := errors.New(errors.ErrorTypeMalformedScalar, c.Location(), "title id %q has no tier prefix", id)
		e.Tag = id
		return e
	}
	anc.Attach(t)

	bools := map[string]*bool{
		"rebel":                     &t.Rebel,
		"landless":                  &t.Landless,
		"primary":                   &t.Primary,
		"tribe":                     &t.Tribe,
		"pirate":                    &t.Pirate,
		"short_name":                &t.ShortName,
		"location_ruler_title":      &t.LocationRulerTitle,
		"caliphate":                 &t.Caliphate,
		"holy_order":                &t.HolyOrder,
		"independent":               &t.Independent,
		"mercenary":                 &t.Mercenary,
		"duchy_revokation":          &t.DuchyRevokation,
		"dynasty_title_names":       &t.DynastyTitleNames,
		"creation_requires_capital": &t.CreationRequiresCapital,
		"purple_born_heirs":         &t.PurpleBornHeirs,
		"has_top_de_jure_capital":   &t.HasTopDeJureCapital,
		"top_de_jure_capital":       &t.TopDeJureCapital,
		"pentarchy":                 &t.Pentarchy,
		"used_for_dynasty_names":    &t.UsedForDynastyNames,
		"assimilate":                &t.Assimilate,
	}
	strs := map[string]*string{
		"culture":           &t.Culture,
		"religion":          &t.Religion,
		"controls_religion": &t.ControlsReligion,
		"modifier":          &t.Modifier,
		"title":             &t.Name,
		"title_female":      &t.FemaleName,
		"foa":               &t.Foa,
		"title_prefix":      &t.TitlePrefix,
	}

	anc.Push(t)
	err := eachField(c, func(tag string) error {
		if handled, err := boolFields(c, tag, bools); handled {
			return err
		}
		if handled, err := stringFields(c, tag, strs); handled {
			return err
		}

		var err error
		switch tag {
		case "color":
			t.Color, err = readColour(c, tag)
		case "color2":
			t.Color2, err = readColour(c, tag)
			t.TwoColors = true
		case "capital":
			t.Capital, err = readInt(c, tag)
		case "dignity":
			t.Dignity, err = readInt(c, tag)
		case "strength_growth_per_century":
			t.StrengthGrowthPerCentury, err = readFloat(c, tag)
		case "holy_site":
			var religion string
			if religion, err = readString(c); err == nil {
				t.AddHolySite(religion)
			}
		case "allow":
			err = readBlock(c, tag, &t.Allow, &t.Misc)
		case "gain_effect":
			err = readBlock(c, tag, &t.GainEffect, &t.Misc)
		case "pagan_coa":
			err = readBlock(c, tag, &t.PaganCoA, &t.Misc)
		default:
			if entity.IsTitleID(tag) && c.NextIsBracketed() {
				return readTitle(c, tag, source, anc, doc)
			}
			err = keep(c, tag, &t.Misc)
		}
		return err
	})
	anc.Pop()
	if err != nil {
		return err
	}

	doc.Titles = append(doc.Titles, t)
	return nil
}
