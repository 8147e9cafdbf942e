package parser

import (
	"testing"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want ast.Kind
	}{
		{"", ast.KindString},
		{"42", ast.KindInt},
		{"-42", ast.KindInt},
		{"0.5", ast.KindFloat},
		{"-0.5", ast.KindFloat},
		{"1066.9.15", ast.KindDate},
		{"1066.9.", ast.KindDate},
		{"1.2.3.4", ast.KindDate},
		{"yes", ast.KindBool},
		{"no", ast.KindBool},
		{"Yes", ast.KindString},
		{"4-2", ast.KindString},
		{"--1", ast.KindString},
		{"k_england", ast.KindString},
		{`"123"`, ast.KindString},
		{"12a", ast.KindString},
		{"-", ast.KindInt},
		{".", ast.KindFloat},
	}

	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	inputs := []string{"", "1", "1.5", "1.2.3", "yes", "x-y", "-", "\x00", "ÅÄÖ", "9999999999999999999999"}
	for _, in := range inputs {
		first := Classify(in)
		for i := 0; i < 3; i++ {
			if got := Classify(in); got != first {
				t.Fatalf("Classify(%q) changed from %s to %s", in, first, got)
			}
		}
	}
}

func TestParseScalar(t *testing.T) {
	loc := ast.Location{File: "t.txt", Line: 1, Column: 1}

	tests := []struct {
		raw  string
		want ast.Value
	}{
		{"42", &ast.Int{Key: "k", Value: 42, Loc: loc}},
		{"0.12345", &ast.Float{Key: "k", Value: 0.123, Loc: loc}},
		{"2.0006", &ast.Float{Key: "k", Value: 2.001, Loc: loc}},
		{"1066.9.15", &ast.DateValue{Key: "k", Value: ast.Date{Year: 1066, Month: 9, Day: 15}, Loc: loc}},
		{"no", &ast.Bool{Key: "k", Value: false, Loc: loc}},
		{`"yes"`, &ast.String{Key: "k", Value: "yes", Loc: loc}},
		{"norse", &ast.String{Key: "k", Value: "norse", Loc: loc}},
	}

	for _, tt := range tests {
		got, err := ParseScalar("k", tt.raw, loc)
		if err != nil {
			t.Errorf("ParseScalar(%q) error = %v", tt.raw, err)
			continue
		}
		if !sameScalar(got, tt.want) {
			t.Errorf("ParseScalar(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func sameScalar(a, b ast.Value) bool {
	switch x := a.(type) {
	case *ast.Int:
		y, ok := b.(*ast.Int)
		return ok && *x == *y
	case *ast.Float:
		y, ok := b.(*ast.Float)
		return ok && *x == *y
	case *ast.DateValue:
		y, ok := b.(*ast.DateValue)
		return ok && *x == *y
	case *ast.Bool:
		y, ok := b.(*ast.Bool)
		return ok && *x == *y
	case *ast.String:
		y, ok := b.(*ast.String)
		return ok && *x == *y
	}
	return false
}

func TestParseScalar_Malformed(t *testing.T) {
	for _, raw := range []string{"-", ".", "1..", "1066.9.", "1066.13.1", "99999999999999999999"} {
		_, err := ParseScalar("birth", raw, ast.Location{})
		if !errors.IsType(err, errors.ErrorTypeMalformedScalar) {
			t.Errorf("ParseScalar(%q) error = %v, want malformed_scalar", raw, err)
			continue
		}
		e := err.(*errors.Error)
		if e.Tag != "birth" || e.Raw != raw {
			t.Errorf("error tag/raw = %q/%q, want birth/%q", e.Tag, e.Raw, raw)
		}
	}
}
