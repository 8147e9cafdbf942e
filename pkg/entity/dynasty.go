package entity

import (
	"math/rand/v2"
	"slices"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/registry"
)

// Dynasty is a numbered dynasty. CultureID is resolved into Culture after
// cultures are loaded.
type Dynasty struct {
	ID         int
	Name       string
	CultureID  string
	Culture    *Culture
	CoatOfArms *ast.Group

	Misc   []ast.Value
	Source string
}

// DynastiesOf returns the dynasties linked to culture c, in registry order.
func DynastiesOf(dynasties *registry.Registry[int, *Dynasty], c *Culture) []*Dynasty {
	var out []*Dynasty
	for _, d := range dynasties.All() {
		if d.Culture == c {
			out = append(out, d)
		}
	}
	return out
}

// PickByCulture returns a random dynasty of culture c. When c has none, the
// other cultures of c's group are tried in random order. It returns nil when
// no dynasty in the group qualifies. A nil rng uses a randomly seeded source.
func PickByCulture(dynasties *registry.Registry[int, *Dynasty], c *Culture, rng *rand.Rand) *Dynasty {
	if c == nil {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if d := pick(DynastiesOf(dynasties, c), rng); d != nil {
		return d
	}
	if c.Group == nil {
		return nil
	}

	others := slices.DeleteFunc(c.Group.Cultures.Values(), func(other *Culture) bool {
		return other == c
	})
	rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	for _, other := range others {
		if d := pick(DynastiesOf(dynasties, other), rng); d != nil {
			return d
		}
	}
	return nil
}

func pick(ds []*Dynasty, rng *rand.Rand) *Dynasty {
	if len(ds) == 0 {
		return nil
	}
	return ds[rng.IntN(len(ds))]
}
