package entity

import (
	"image/color"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/registry"
)

// CultureGroup is a top-level block of a culture file.
type CultureGroup struct {
	Name             string
	GraphicalCulture string
	Cultures         *registry.Registry[string, *Culture]

	Misc   []ast.Value
	Source string
}

// NewCultureGroup creates an empty culture group.
func NewCultureGroup(name, source string) *CultureGroup {
	return &CultureGroup{
		Name:     name,
		Cultures: registry.New[string, *Culture](),
		Source:   source,
	}
}

// Culture belongs to exactly one group. ParentID names a parent culture and
// is resolved into Parent after all cultures are loaded.
type Culture struct {
	Name     string
	Group    *CultureGroup
	ParentID string
	Parent   *Culture

	GraphicalCulture       string
	SecondGraphicalCulture string
	GraphicalUnitCulture   string
	GrammarTransform       string
	Modifier               string
	Color                  color.RGBA

	MaleNames   []string
	FemaleNames []string

	FromDynastyPrefix    string
	BastardDynastyPrefix string
	MalePatronym         string
	FemalePatronym       string

	PaternalGrandfatherChance int
	MaternalGrandfatherChance int
	FatherChance              int
	PaternalGrandmotherChance int
	MaternalGrandmotherChance int
	MotherChance              int

	IsPrefix               bool
	Horde                  bool
	FounderNamedDynasties  bool
	DynastyTitleNames      bool
	DukesCalledKings       bool
	BaronTitlesHidden      bool
	CountTitlesHidden      bool
	DisinheritFromBlinding bool
	UsedForRandom          bool

	Misc   []ast.Value
	Source string
}

// NewCulture creates a culture in group g.
func NewCulture(name string, g *CultureGroup, source string) *Culture {
	return &Culture{
		Name:          name,
		Group:         g,
		Color:         color.RGBA{A: 255},
		UsedForRandom: true,
		Source:        source,
	}
}

// GroupName returns the name of the culture's group.
func (c *Culture) GroupName() string {
	if c.Group == nil {
		return ""
	}
	return c.Group.Name
}
