package parser

import (
	"strconv"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/lexer"
)

// contextStack holds the blocks under construction, innermost last. Its
// length is the current nesting depth.
type contextStack []ast.Container

func (s *contextStack) push(c ast.Container) {
	*s = append(*s, c)
}

func (s *contextStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s contextStack) top() ast.Container {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// attach appends node to the innermost open block. When no block is open the
// node is a completed root and is returned instead.
func (s contextStack) attach(node ast.Value) ast.Value {
	if parent := s.top(); parent != nil {
		parent.Append(node)
		return nil
	}
	return node
}

// ParseValue parses the value that follows "tag =" at the cursor and returns
// the completed node.
//
// A bracketed value becomes an Event when tag is a date and a Group
// otherwise, except that a bracketed bare list becomes an IntList or
// StringList, and the contents of "data = { ... }" are always an IntList.
func ParseValue(c Cursor, tag string) (ast.Value, error) {
	var stack contextStack
	return parseValue(c, tag, &stack)
}

func parseValue(c Cursor, tag string, stack *contextStack) (ast.Value, error) {
	loc := c.Location()

	if !c.NextIsBracketed() {
		raw, err := c.ReadScalar()
		if err != nil {
			return nil, err
		}
		node, err := ParseScalar(tag, raw, loc)
		if err != nil {
			return nil, err
		}
		return stack.attach(node), nil
	}

	if tag == "data" || c.NextIsList() {
		node, err := parseList(c, tag, loc)
		if err != nil {
			return nil, err
		}
		return stack.attach(node), nil
	}

	block, err := newBlock(tag, loc)
	if err != nil {
		return nil, err
	}
	if err := c.EnterBlock(); err != nil {
		return nil, err
	}

	stack.push(block)
	for {
		child, ok, err := c.NextTag()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if _, err := parseValue(c, child, stack); err != nil {
			return nil, err
		}
	}
	stack.pop()

	return stack.attach(block), nil
}

func newBlock(tag string, loc ast.Location) (ast.Container, error) {
	if !IsDateTag(tag) {
		return &ast.Group{ID: tag, Loc: loc}, nil
	}
	d, err := ast.ParseDate(tag)
	if err != nil {
		return nil, errors.MalformedScalar(loc, tag, tag, err)
	}
	return &ast.Event{Date: d, Loc: loc}, nil
}

func parseList(c Cursor, tag string, loc ast.Location) (ast.Value, error) {
	if tag == "data" {
		items, err := c.ReadIntList()
		if err != nil {
			return nil, err
		}
		return &ast.IntList{Key: tag, Items: items, Loc: loc}, nil
	}

	raw, err := c.ReadStringList()
	if err != nil {
		return nil, err
	}
	if ints, ok := allInts(raw); ok {
		return &ast.IntList{Key: tag, Items: ints, Loc: loc}, nil
	}

	items := make([]string, len(raw))
	for i, s := range raw {
		items[i] = lexer.Unquote(s)
	}
	return &ast.StringList{Key: tag, Items: items, Loc: loc}, nil
}

func allInts(raw []string) ([]int64, bool) {
	ints := make([]int64, len(raw))
	for i, s := range raw {
		if Classify(s) != ast.KindInt {
			return nil, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, false
		}
		ints[i] = n
	}
	return ints, true
}
