package entity

import (
	"image/color"
	"strings"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/registry"
)

// Tier is a rank of the title hierarchy.
type Tier int

const (
	TierBarony Tier = iota
	TierCounty
	TierDuchy
	TierKingdom
	TierEmpire
)

// Tiers lists every tier from the top down.
var Tiers = []Tier{TierEmpire, TierKingdom, TierDuchy, TierCounty, TierBarony}

var tierPrefixes = map[string]Tier{
	"e_": TierEmpire,
	"k_": TierKingdom,
	"d_": TierDuchy,
	"c_": TierCounty,
	"b_": TierBarony,
}

// TierOf returns the tier named by the two-character prefix of a title id.
func TierOf(id string) (Tier, bool) {
	if len(id) < 3 {
		return 0, false
	}
	t, ok := tierPrefixes[id[:2]]
	return t, ok
}

// IsTitleID reports whether id carries a title prefix.
func IsTitleID(id string) bool {
	_, ok := TierOf(id)
	return ok
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierBarony:
		return "barony"
	case TierCounty:
		return "county"
	case TierDuchy:
		return "duchy"
	case TierKingdom:
		return "kingdom"
	case TierEmpire:
		return "empire"
	default:
		return "unknown"
	}
}

// Prefix returns the identifier prefix of the tier, e.g. "d_".
func (t Tier) Prefix() string {
	for prefix, tier := range tierPrefixes {
		if tier == t {
			return prefix
		}
	}
	return ""
}

// Title is a landed title. SubTitles holds de jure members keyed by id and
// Parent is its inverse, both set from lexical nesting.
type Title struct {
	ID        string
	Tier      Tier
	Parent    *Title
	SubTitles *registry.Registry[string, *Title]

	Culture          string
	Religion         string
	ControlsReligion string
	Modifier         string
	Name             string // "title" character title
	FemaleName       string // "title_female"
	Foa              string
	TitlePrefix      string
	HolySites        []string

	Capital                  int
	Dignity                  int
	StrengthGrowthPerCentury float64

	Color     color.RGBA
	Color2    color.RGBA
	TwoColors bool

	Landless                bool
	Primary                 bool
	Rebel                   bool
	Tribe                   bool
	Pirate                  bool
	ShortName               bool
	LocationRulerTitle      bool
	Caliphate               bool
	HolyOrder               bool
	Independent             bool
	Mercenary               bool
	DuchyRevokation         bool
	DynastyTitleNames       bool
	CreationRequiresCapital bool
	PurpleBornHeirs         bool
	HasTopDeJureCapital     bool
	TopDeJureCapital        bool
	Pentarchy               bool
	UsedForDynastyNames     bool
	Assimilate              bool

	Allow      *ast.Group
	GainEffect *ast.Group
	PaganCoA   *ast.Group

	// Set by post-load passes
	IsTitular bool
	CountyID  int

	Misc   []ast.Value
	Source string
}

// NewTitle creates a title with the defaults game files assume when a field
// is absent. ok is false when id has no tier prefix.
func NewTitle(id, source string) (*Title, bool) {
	tier, ok := TierOf(id)
	if !ok {
		return nil, false
	}
	return &Title{
		ID:                       id,
		Tier:                     tier,
		SubTitles:                registry.New[string, *Title](),
		Capital:                  -1,
		Dignity:                  -1,
		CountyID:                 -1,
		StrengthGrowthPerCentury: -1,
		Color:                    color.RGBA{A: 255},
		Color2:                   color.RGBA{A: 255},
		CreationRequiresCapital:  true,
		UsedForDynastyNames:      true,
		Assimilate:               true,
		Source:                   source,
	}, true
}

// ParentID returns the id of the parent title, or "" for a top-level title.
func (t *Title) ParentID() string {
	if t.Parent == nil {
		return ""
	}
	return t.Parent.ID
}

// AddHolySite records a holy site once.
func (t *Title) AddHolySite(religion string) {
	for _, r := range t.HolySites {
		if r == religion {
			return
		}
	}
	t.HolySites = append(t.HolySites, religion)
}

// Path returns the ids from the top-level ancestor down to t.
func (t *Title) Path() string {
	var ids []string
	for cur := t; cur != nil; cur = cur.Parent {
		ids = append(ids, cur.ID)
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return strings.Join(ids, "/")
}

func (t *Title) String() string {
	return t.ID
}
