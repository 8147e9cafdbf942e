package readers

import (
	"image/color"
	"strconv"
	"strings"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/lexer"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

// eachField enters the block at the cursor and calls fn for every entry
// until the block closes.
func eachField(c parser.Cursor, fn func(tag string) error) error {
	if err := c.EnterBlock(); err != nil {
		return err
	}
	return eachTopLevel(c, fn)
}

// eachTopLevel calls fn for every entry until the current block, or the
// document, ends.
func eachTopLevel(c parser.Cursor, fn func(tag string) error) error {
	for {
		tag, ok, err := c.NextTag()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(tag); err != nil {
			return err
		}
	}
}

func readString(c parser.Cursor) (string, error) {
	raw, err := c.ReadScalar()
	if err != nil {
		return "", err
	}
	return lexer.Unquote(raw), nil
}

func readBool(c parser.Cursor, tag string) (bool, error) {
	loc := c.Location()
	raw, err := c.ReadScalar()
	if err != nil {
		return false, err
	}
	switch lexer.Unquote(raw) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return false, errors.MalformedScalar(loc, tag, raw, nil)
	}
}

func readInt(c parser.Cursor, tag string) (int, error) {
	loc := c.Location()
	raw, err := c.ReadScalar()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(lexer.Unquote(raw))
	if err != nil {
		return 0, errors.MalformedScalar(loc, tag, raw, nil)
	}
	return n, nil
}

func readFloat(c parser.Cursor, tag string) (float64, error) {
	loc := c.Location()
	raw, err := c.ReadScalar()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(lexer.Unquote(raw), 64)
	if err != nil {
		return 0, errors.MalformedScalar(loc, tag, raw, nil)
	}
	return parser.Round3(f), nil
}

func readColour(c parser.Cursor, tag string) (color.RGBA, error) {
	loc := c.Location()
	items, err := c.ReadStringList()
	if err != nil {
		return parser.White, err
	}
	return parser.ParseColour(items, tag, loc)
}

func readStrings(c parser.Cursor) ([]string, error) {
	raw, err := c.ReadStringList()
	if err != nil {
		return nil, err
	}
	for i, s := range raw {
		raw[i] = lexer.Unquote(s)
	}
	return raw, nil
}

func readInts(c parser.Cursor) ([]int, error) {
	raw, err := c.ReadIntList()
	if err != nil {
		return nil, err
	}
	out := make([]int, len(raw))
	for i, n := range raw {
		out[i] = int(n)
	}
	return out, nil
}

// readNames reads a name list, keeping each name up to its first '_'.
// "Aaron_Aron" names the same character as "Aaron".
func readNames(c parser.Cursor) ([]string, error) {
	names, err := readStrings(c)
	if err != nil {
		return nil, err
	}
	for i, name := range names {
		names[i], _, _ = strings.Cut(name, "_")
	}
	return names, nil
}

// readGroup parses a block. A value that turns out not to be a group (a bare
// list or a scalar) is returned as other so it can be kept in Misc.
func readGroup(c parser.Cursor, tag string) (g *ast.Group, other ast.Value, err error) {
	v, err := parser.ParseValue(c, tag)
	if err != nil {
		return nil, nil, err
	}
	if g, ok := v.(*ast.Group); ok {
		return g, nil, nil
	}
	return nil, v, nil
}

// boolFields reads tag into the matching entry of fields. handled is false
// when tag is not one of them.
func boolFields(c parser.Cursor, tag string, fields map[string]*bool) (handled bool, err error) {
	dst, ok := fields[tag]
	if !ok {
		return false, nil
	}
	*dst, err = readBool(c, tag)
	return true, err
}

func intFields(c parser.Cursor, tag string, fields map[string]*int) (handled bool, err error) {
	dst, ok := fields[tag]
	if !ok {
		return false, nil
	}
	*dst, err = readInt(c, tag)
	return true, err
}

func stringFields(c parser.Cursor, tag string, fields map[string]*string) (handled bool, err error) {
	dst, ok := fields[tag]
	if !ok {
		return false, nil
	}
	*dst, err = readString(c)
	return true, err
}

// readBlock parses a block into dst, or into misc when it is not a group.
func readBlock(c parser.Cursor, tag string, dst **ast.Group, misc *[]ast.Value) error {
	g, other, err := readGroup(c, tag)
	if err != nil {
		return err
	}
	if g != nil {
		*dst = g
		return nil
	}
	*misc = append(*misc, other)
	return nil
}

// keep parses an unmapped field generically and appends it to misc.
func keep(c parser.Cursor, tag string, misc *[]ast.Value) error {
	v, err := parser.ParseValue(c, tag)
	if err != nil {
		return err
	}
	*misc = append(*misc, v)
	return nil
}
