package entity

import (
	"math/rand/v2"
	"slices"
	"testing"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/registry"
)

func TestTierOf(t *testing.T) {
	tests := []struct {
		id     string
		want   Tier
		wantOK bool
	}{
		{"e_hre", TierEmpire, true},
		{"k_england", TierKingdom, true},
		{"d_york", TierDuchy, true},
		{"c_york", TierCounty, true},
		{"b_york", TierBarony, true},
		{"x_york", 0, false},
		{"d_", 0, false},
		{"capital", 0, false},
	}
	for _, tt := range tests {
		got, ok := TierOf(tt.id)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("TierOf(%q) = %s, %v, want %s, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
	if TierDuchy.Prefix() != "d_" {
		t.Errorf("TierDuchy.Prefix() = %q, want d_", TierDuchy.Prefix())
	}
}

func TestTitle_Path(t *testing.T) {
	k, _ := NewTitle("k_england", "a.txt")
	d, _ := NewTitle("d_york", "a.txt")
	c, _ := NewTitle("c_york", "a.txt")
	d.Parent = k
	c.Parent = d

	if got := c.Path(); got != "k_england/d_york/c_york" {
		t.Errorf("Path() = %q", got)
	}
	if got := k.ParentID(); got != "" {
		t.Errorf("ParentID() = %q, want empty", got)
	}
	if _, ok := NewTitle("york", "a.txt"); ok {
		t.Error("NewTitle(york) ok = true, want false")
	}
}

func TestProvince_Connect(t *testing.T) {
	a := NewProvince(1, "A", "")
	b := NewProvince(2, "B", "")

	if !a.Connect(b) {
		t.Error("first Connect() = false, want true")
	}
	if a.Connect(b) || b.Connect(a) {
		t.Error("repeated Connect() = true, want false")
	}
	if a.Connect(a) {
		t.Error("Connect(self) = true, want false")
	}
	if !b.IsAdjacent(1) || !a.IsAdjacent(2) {
		t.Error("adjacency is not symmetric")
	}
	if got := a.AdjacentIDs(); !slices.Equal(got, []int{2}) {
		t.Errorf("AdjacentIDs() = %v, want [2]", got)
	}
}

func TestProvince_HistoryAt(t *testing.T) {
	p := NewProvince(1, "A", "")
	p.History = []*ast.Event{
		{Date: ast.Date{Year: 1100, Month: 1, Day: 1}},
		{Date: ast.Date{Year: 867, Month: 1, Day: 1}},
		{Date: ast.Date{Year: 1066, Month: 9, Day: 15}},
	}

	got := p.HistoryAt(ast.Date{Year: 1066, Month: 9, Day: 15})
	if len(got) != 2 || got[0].Date.Year != 867 || got[1].Date.Year != 1066 {
		t.Errorf("HistoryAt() = %v", got)
	}
}

func TestMap_IsSea(t *testing.T) {
	m := &Map{SeaZones: []SeaZone{{Start: 900, End: 950}}, MajorRivers: []int{1500}}
	if !m.IsSea(900) || !m.IsSea(950) || m.IsSea(951) {
		t.Error("IsSea() range bounds are wrong")
	}
	if !m.IsMajorRiver(1500) || m.IsMajorRiver(900) {
		t.Error("IsMajorRiver() is wrong")
	}
	var nilMap *Map
	if nilMap.IsSea(1) {
		t.Error("nil Map IsSea() = true")
	}
}

func TestPickByCulture(t *testing.T) {
	g := NewCultureGroup("north_germanic", "")
	norse := NewCulture("norse", g, "")
	swedish := NewCulture("swedish", g, "")
	danish := NewCulture("danish", g, "")
	for _, c := range []*Culture{norse, swedish, danish} {
		g.Cultures.Put(c.Name, c)
	}

	dynasties := registry.New[int, *Dynasty]()
	dynasties.Put(1, &Dynasty{ID: 1, Culture: swedish})
	dynasties.Put(2, &Dynasty{ID: 2, Culture: swedish})

	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 20; i++ {
		d := PickByCulture(dynasties, swedish, rng)
		if d == nil || d.Culture != swedish {
			t.Fatalf("PickByCulture(swedish) = %v", d)
		}
	}

	d := PickByCulture(dynasties, norse, rng)
	if d == nil || d.Culture != swedish {
		t.Errorf("PickByCulture(norse) = %v, want a swedish dynasty from the same group", d)
	}

	lone := NewCulture("basque", NewCultureGroup("iberian", ""), "")
	if d := PickByCulture(dynasties, lone, rng); d != nil {
		t.Errorf("PickByCulture(basque) = %v, want nil", d)
	}

	// nil rng falls back to a seeded source, including the group fallback.
	if d := PickByCulture(dynasties, norse, nil); d == nil || d.Culture != swedish {
		t.Errorf("PickByCulture(norse, nil rng) = %v, want a swedish dynasty", d)
	}
}

func TestLocalisation(t *testing.T) {
	l := NewLocalisation()
	l.Put(LocalisationEntry{Key: "k_england", Columns: []string{"k_england", "England", "Angleterre"}})
	l.Put(LocalisationEntry{Key: "k_england", Columns: []string{"k_england", "Kingdom of England"}})

	if got := l.Text("k_england"); got != "Kingdom of England" {
		t.Errorf("Text() = %q, want later row", got)
	}
	if got := l.Column("k_england", ColumnFrench); got != "" {
		t.Errorf("Column(french) = %q, want empty after replacement", got)
	}
	if got := l.Text("missing"); got != "missing" {
		t.Errorf("Text(missing) = %q", got)
	}
}
