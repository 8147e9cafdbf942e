package lexer

import (
	"testing"

	"golang.org/x/text/encoding/charmap"

	"chronicle-hq/chronicle/pkg/pdx/errors"
)

func mustCursor(t *testing.T, text string) *TokenCursor {
	t.Helper()
	c, err := NewString("test.txt", text)
	if err != nil {
		t.Fatalf("NewString() error = %v", err)
	}
	return c
}

func TestTokenize_SkipsCommentsAndWhitespace(t *testing.T) {
	toks, err := tokenize("t.txt", "\ufeff# header\nkey = \"a b\" # trailing\n  x >= 3\n")
	if err != nil {
		t.Fatalf("tokenize() error = %v", err)
	}

	want := []struct {
		kind tokenKind
		text string
	}{
		{tokWord, "key"},
		{tokOp, "="},
		{tokString, `"a b"`},
		{tokWord, "x"},
		{tokOp, ">="},
		{tokWord, "3"},
		{tokEOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].kind != w.kind || toks[i].text != w.text {
			t.Errorf("token %d = (%s, %q), want (%s, %q)", i, toks[i].kind, toks[i].text, w.kind, w.text)
		}
	}
	if toks[3].loc.Line != 3 || toks[3].loc.Column != 3 {
		t.Errorf("location of x = %v, want line 3 column 3", toks[3].loc)
	}
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := NewString("t.txt", `name = "open`)
	if !errors.IsType(err, errors.ErrorTypeSyntax) {
		t.Fatalf("NewString() error = %v, want syntax error", err)
	}
}

func TestDecode_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("name = \"Åland\"")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	c, err := New("t.txt", []byte(encoded))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, _, err := c.NextTag(); err != nil {
		t.Fatalf("NextTag() error = %v", err)
	}
	got, err := c.ReadScalar()
	if err != nil {
		t.Fatalf("ReadScalar() error = %v", err)
	}
	if got != `"Åland"` {
		t.Errorf("ReadScalar() = %q, want %q", got, `"Åland"`)
	}
}

func TestCursor_Walk(t *testing.T) {
	c := mustCursor(t, `
k_england = {
	color = { 255 0 0 }
	capital = 3
	d_york = { }
}
`)

	tag, ok, err := c.NextTag()
	if err != nil || !ok || tag != "k_england" {
		t.Fatalf("NextTag() = %q, %v, %v", tag, ok, err)
	}
	if !c.NextIsBracketed() || c.NextIsList() {
		t.Fatal("k_england should be a block, not a list")
	}
	if err := c.EnterBlock(); err != nil {
		t.Fatalf("EnterBlock() error = %v", err)
	}
	if c.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", c.Depth())
	}

	tag, _, _ = c.NextTag()
	if tag != "color" || !c.NextIsList() {
		t.Fatalf("tag = %q, NextIsList = %v", tag, c.NextIsList())
	}
	ints, err := c.ReadIntList()
	if err != nil || len(ints) != 3 || ints[0] != 255 {
		t.Fatalf("ReadIntList() = %v, %v", ints, err)
	}

	tag, _, _ = c.NextTag()
	raw, err := c.ReadScalar()
	if tag != "capital" || raw != "3" || err != nil {
		t.Fatalf("capital = %q, %v", raw, err)
	}

	tag, _, _ = c.NextTag()
	if tag != "d_york" || c.NextIsList() {
		t.Fatalf("tag = %q, empty block must not be a list", tag)
	}
	if err := c.SkipValue(); err != nil {
		t.Fatalf("SkipValue() error = %v", err)
	}

	if _, ok, err := c.NextTag(); ok || err != nil {
		t.Fatalf("closing NextTag() = %v, %v, want end of block", ok, err)
	}
	if c.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", c.Depth())
	}
	if _, ok, err := c.NextTag(); ok || err != nil {
		t.Fatalf("final NextTag() = %v, %v, want end of document", ok, err)
	}
}

func TestCursor_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"stray close", "}"},
		{"missing operator", "a b"},
		{"unclosed block", "a = { b = c"},
		{"leading operator", "= 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCursor(t, tt.input)
			var err error
			for err == nil {
				var ok bool
				_, ok, err = c.NextTag()
				if !ok {
					break
				}
				if c.NextIsBracketed() {
					err = c.EnterBlock()
					continue
				}
				_, err = c.ReadScalar()
			}
			if !errors.IsType(err, errors.ErrorTypeSyntax) {
				t.Errorf("error = %v, want syntax error", err)
			}
		})
	}
}

func TestCursor_ReadIntListMalformed(t *testing.T) {
	c := mustCursor(t, "data = { 1 two 3 }")
	if _, _, err := c.NextTag(); err != nil {
		t.Fatal(err)
	}
	_, err := c.ReadIntList()
	if !errors.IsType(err, errors.ErrorTypeMalformedScalar) {
		t.Errorf("ReadIntList() error = %v, want malformed_scalar", err)
	}
}

func TestCursor_QuotedTag(t *testing.T) {
	c := mustCursor(t, `"quoted key" = "v"`)
	tag, ok, err := c.NextTag()
	if err != nil || !ok || tag != "quoted key" {
		t.Errorf("NextTag() = %q, %v, %v", tag, ok, err)
	}
}

func TestUnquote(t *testing.T) {
	tests := map[string]string{
		`"abc"`: "abc",
		`abc`:   "abc",
		`""`:    "",
		`"`:     `"`,
	}
	for in, want := range tests {
		if got := Unquote(in); got != want {
			t.Errorf("Unquote(%q) = %q, want %q", in, got, want)
		}
	}
}
