package readers

import (
	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

// ReadReligions reads a religion document. Every top-level block is a
// group; every block inside a group that is not a group field is a religion.
func ReadReligions(c parser.Cursor, source string) ([]*entity.ReligionGroup, error) {
	var groups []*entity.ReligionGroup
	err := eachTopLevel(c, func(tag string) error {
		if !c.NextIsBracketed() {
			return c.SkipValue()
		}
		g, err := readReligionGroup(c, tag, source)
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

func readReligionGroup(c parser.Cursor, name, source string) (*entity.ReligionGroup, error) {
	g := entity.NewReligionGroup(name, source)
	bools := map[string]*bool{
		"has_coa_on_barony_only": &g.CoAOnBaronyOnly,
		"playable":               &g.Playable,
		"pacifist":               &g.Pacifist,
		"ai_peaceful":            &g.AIPeaceful,
		"hostile_within_group":   &g.HostileWithinGroup,
	}

	err := eachField(c, func(tag string) error {
		if handled, err := boolFields(c, tag, bools); handled {
			return err
		}

		var err error
		switch tag {
		case "graphical_culture":
			g.GraphicalCulture, err = readString(c)
		case "crusade_cb":
			g.CrusadeCB, err = readString(c)
		case "male_names":
			g.MaleNames, err = readNames(c)
		case "female_names":
			g.FemaleNames, err = readNames(c)
		case "ai_convert_same_group":
			g.AIConvertSameGroup, err = readInt(c, tag)
		case "ai_convert_other_group":
			g.AIConvertOtherGroup, err = readInt(c, tag)
		default:
			if !c.NextIsBracketed() || c.NextIsList() {
				return keep(c, tag, &g.Misc)
			}
			var r *entity.Religion
			if r, err = readReligion(c, tag, g, source); err == nil {
				g.Religions.Put(r.Name, r)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func readReligion(c parser.Cursor, name string, g *entity.ReligionGroup, source string) (*entity.Religion, error) {
	r := entity.NewReligion(name, g, source)
	bools := map[string]*bool{
		"investiture":                &r.Investiture,
		"can_excommunicate":          &r.CanExcommunicate,
		"can_grant_divorce":          &r.CanGrantDivorce,
		"can_grant_claim":            &r.CanGrantClaim,
		"can_call_crusade":           &r.CanCallCrusade,
		"can_have_antipopes":         &r.CanHaveAntipopes,
		"can_hold_temples":           &r.CanHoldTemples,
		"can_retire_to_monastery":    &r.CanRetireToMonastery,
		"priests_can_marry":          &r.PriestsCanMarry,
		"priests_can_inherit":        &r.PriestsCanInherit,
		"autocephaly":                &r.Autocephaly,
		"defensive_attrition":        &r.DefensiveAttrition,
		"allow_viking_invasion":      &r.AllowVikingInvasion,
		"allow_looting":              &r.AllowLooting,
		"allow_rivermovement":        &r.AllowRiverMovement,
		"female_temple_holders":      &r.FemaleTempleHolders,
		"peace_prestige_loss":        &r.PeacePrestigeLoss,
		"raised_vassal_opinion_loss": &r.RaisedVassalOpinionLoss,
		"reformer_head_of_religion":  &r.ReformerHeadOfReligion,
		"has_heir_designation":       &r.HasHeirDesignation,
		"matrilineal_marriages":      &r.MatrilinealMarriages,
		"pre_reformed":               &r.PreReformed,
		"pacifist":                   &r.Pacifist,
		"feminist":                   &r.Feminist,
		"divine_blood":               &r.DivineBlood,
	}
	ints := map[string]*int{
		"icon":                          &r.Icon,
		"heresy_icon":                   &r.HeresyIcon,
		"max_wives":                     &r.MaxWives,
		"max_consorts":                  &r.MaxConsorts,
		"religious_clothing_head":       &r.ClothingHead,
		"religious_clothing_priest":     &r.ClothingPriest,
		"short_reign_opinion_year_mult": &r.ShortReignOpinionYearMult,
		"independence_war_score_bonus":  &r.IndependenceWarScoreBonus,
		"ai_convert_other_group":        &r.AIConvertOtherGroup,
	}
	strs := map[string]*string{
		"parent":                   &r.ParentID,
		"reformed":                 &r.ReformedID,
		"graphical_culture":        &r.GraphicalCulture,
		"secondary_event_pictures": &r.SecondaryEventPictures,
		"crusade_name":             &r.CrusadeName,
		"scripture_name":           &r.ScriptureName,
		"priest_title":             &r.PriestTitle,
		"piety_name":               &r.PietyName,
		"can_grant_invasion_cb":    &r.CanGrantInvasionCB,
		"expel_modifier":           &r.ExpelModifier,
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
			r.Color, err = readColour(c, tag)
		case "god_names":
			var names []string
			names, err = readStrings(c)
			r.GodNames = append(r.GodNames, names...)
		case "evil_god_names":
			var names []string
			names, err = readStrings(c)
			r.EvilGodNames = append(r.EvilGodNames, names...)
		case "intermarry":
			var other string
			if other, err = readString(c); err == nil {
				r.Intermarry = append(r.Intermarry, other)
			}
		case "aggression":
			r.Aggression, err = readFloat(c, tag)
		case "peace_piety_gain":
			r.PeacePietyGain, err = readFloat(c, tag)
		case "character_modifier":
			err = readBlock(c, tag, &r.CharacterModifier, &r.Misc)
		case "unit_modifier":
			err = readBlock(c, tag, &r.UnitModifier, &r.Misc)
		case "unit_home_modifier":
			err = readBlock(c, tag, &r.UnitHomeModifier, &r.Misc)
		default:
			err = keep(c, tag, &r.Misc)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
