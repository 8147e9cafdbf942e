package parser

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chronicle-hq/chronicle/pkg/pdx/ast"
)

func TestFormat(t *testing.T) {
	tree := &ast.Group{
		ID: "k_england",
		Children: []ast.Value{
			&ast.String{Key: "culture", Value: "saxon"},
			&ast.Float{Key: "weight", Value: 1},
			&ast.IntList{Key: "color", Items: []int64{255, 0, 0}},
			&ast.Event{
				Date:     ast.Date{Year: 1066, Month: 9, Day: 15},
				Children: []ast.Value{&ast.Bool{Key: "birth", Value: true}},
			},
		},
	}

	got, err := FormatString(tree)
	if err != nil {
		t.Fatalf("FormatString() error = %v", err)
	}
	want := `k_england = {
	culture = "saxon"
	weight = 1.0
	color = { 255 0 0 }
	1066.9.15 = {
		birth = yes
	}
}
`
	if got != want {
		t.Errorf("FormatString() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		`k_england = { culture = saxon color = { 255 0 0 } d_york = { c_york = { b_york = { } } } }`,
		`1066.9.15 = { birth = yes death = { killer = 5 } }`,
		`names = { Aelfric "Bob Smith" "5" } data = { 1 2 3 }`,
		`weight = 0.1236 neg = -0.5 big = 9007199254740993 when = 769.1.1`,
		`"quoted key" = "with space" empty = "" flag = no`,
		`colour = { 1.0 0.5 0.0 } misc = { }`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := parseText(t, in)
			text, err := FormatString(first...)
			if err != nil {
				t.Fatalf("FormatString() error = %v", err)
			}
			second := parseText(t, text)
			if diff := cmp.Diff(first, second, treeOpts); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s\ntext:\n%s", diff, text)
			}
		})
	}
}

func TestFormat_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		tree := randomValue(rng, "root", 0)
		text, err := FormatString(tree)
		if err != nil {
			t.Fatalf("FormatString() error = %v", err)
		}
		got := parseText(t, text)
		if diff := cmp.Diff([]ast.Value{tree}, got, treeOpts); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s\ntext:\n%s", diff, text)
		}
	}
}

var randomWords = []string{"saxon", "norse", "k_england", "Bob Smith", "x-y", "yes_no", "a.b"}

func randomValue(rng *rand.Rand, tag string, depth int) ast.Value {
	kind := rng.IntN(9)
	if depth >= 4 && kind <= 1 {
		kind = 2 + rng.IntN(7)
	}

	switch kind {
	case 0, 1:
		children := make([]ast.Value, rng.IntN(4))
		for i := range children {
			children[i] = randomValue(rng, "key_"+strconv.Itoa(rng.IntN(5)), depth+1)
		}
		if kind == 1 {
			return &ast.Event{Date: ast.Date{Year: 1 + rng.IntN(1500), Month: 1 + rng.IntN(12), Day: 1 + rng.IntN(28)}, Children: children}
		}
		return &ast.Group{ID: tag, Children: children}
	case 2:
		return &ast.String{Key: tag, Value: randomWords[rng.IntN(len(randomWords))]}
	case 3:
		return &ast.Bool{Key: tag, Value: rng.IntN(2) == 0}
	case 4:
		return &ast.Int{Key: tag, Value: rng.Int64N(1<<40) - 1<<39}
	case 5:
		return &ast.Float{Key: tag, Value: Round3(rng.Float64()*2000 - 1000)}
	case 6:
		return &ast.DateValue{Key: tag, Value: ast.Date{Year: 1 + rng.IntN(1500), Month: 1 + rng.IntN(12), Day: 1 + rng.IntN(28)}}
	case 7:
		items := make([]int64, 1+rng.IntN(4))
		for i := range items {
			items[i] = rng.Int64N(1000) - 500
		}
		return &ast.IntList{Key: tag, Items: items}
	default:
		items := make([]string, 1+rng.IntN(4))
		for i := range items {
			items[i] = strings.ToUpper(randomWords[rng.IntN(len(randomWords))])
		}
		return &ast.StringList{Key: tag, Items: items}
	}
}
