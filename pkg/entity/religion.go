package entity

import (
	"image/color"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/registry"
)

// ReligionGroup is a top-level block of a religion file.
type ReligionGroup struct {
	Name                string
	GraphicalCulture    string
	CrusadeCB           string
	CoAOnBaronyOnly     bool
	Playable            bool
	Pacifist            bool
	AIPeaceful          bool
	HostileWithinGroup  bool
	AIConvertSameGroup  int
	AIConvertOtherGroup int
	MaleNames           []string
	FemaleNames         []string
	Religions           *registry.Registry[string, *Religion]

	Misc   []ast.Value
	Source string
}

// NewReligionGroup creates an empty religion group.
func NewReligionGroup(name, source string) *ReligionGroup {
	return &ReligionGroup{
		Name:      name,
		Religions: registry.New[string, *Religion](),
		Source:    source,
	}
}

// Religion belongs to exactly one group. ParentID and ReformedID are resolved
// into Parent and Reformed after all religions are loaded.
type Religion struct {
	Name       string
	Group      *ReligionGroup
	ParentID   string
	Parent     *Religion
	ReformedID string
	Reformed   *Religion

	Color        color.RGBA
	GodNames     []string
	EvilGodNames []string
	Intermarry   []string

	GraphicalCulture       string
	SecondaryEventPictures string
	CrusadeName            string
	ScriptureName          string
	PriestTitle            string
	PietyName              string
	CanGrantInvasionCB     string
	ExpelModifier          string

	Icon                      int
	HeresyIcon                int
	MaxWives                  int
	MaxConsorts               int
	ClothingHead              int
	ClothingPriest            int
	ShortReignOpinionYearMult int
	IndependenceWarScoreBonus int
	AIConvertOtherGroup       int
	Aggression                float64
	PeacePietyGain            float64

	Investiture             bool
	CanExcommunicate        bool
	CanGrantDivorce         bool
	CanGrantClaim           bool
	CanCallCrusade          bool
	CanHaveAntipopes        bool
	CanHoldTemples          bool
	CanRetireToMonastery    bool
	PriestsCanMarry         bool
	PriestsCanInherit       bool
	Autocephaly             bool
	DefensiveAttrition      bool
	AllowVikingInvasion     bool
	AllowLooting            bool
	AllowRiverMovement      bool
	FemaleTempleHolders     bool
	PeacePrestigeLoss       bool
	RaisedVassalOpinionLoss bool
	ReformerHeadOfReligion  bool
	HasHeirDesignation      bool
	MatrilinealMarriages    bool
	PreReformed             bool
	Pacifist                bool
	Feminist                bool
	DivineBlood             bool

	CharacterModifier *ast.Group
	UnitModifier      *ast.Group
	UnitHomeModifier  *ast.Group

	Misc   []ast.Value
	Source string
}

// NewReligion creates a religion in group g with the game's defaults.
func NewReligion(name string, g *ReligionGroup, source string) *Religion {
	return &Religion{
		Name:                      name,
		Group:                     g,
		Color:                     color.RGBA{A: 255},
		MaxWives:                  1,
		ShortReignOpinionYearMult: 2,
		PriestsCanInherit:         true,
		RaisedVassalOpinionLoss:   true,
		MatrilinealMarriages:      true,
		Source:                    source,
	}
}

// GroupName returns the name of the religion's group.
func (r *Religion) GroupName() string {
	if r.Group == nil {
		return ""
	}
	return r.Group.Name
}

// IsHeresy reports whether the religion names a parent religion.
func (r *Religion) IsHeresy() bool {
	return r.ParentID != ""
}
