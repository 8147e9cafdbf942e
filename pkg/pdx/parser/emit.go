package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"chronicle-hq/chronicle/pkg/pdx/ast"
)

// Format writes values in the block syntax they were parsed from. Parsing the
// output yields the same trees, except that empty lists read back as empty
// groups.
func Format(w io.Writer, values ...ast.Value) error {
	p := &printer{w: w}
	for _, v := range values {
		p.value(v, 0)
	}
	return p.err
}

// FormatString is Format into a string.
func FormatString(values ...ast.Value) (string, error) {
	var sb strings.Builder
	if err := Format(&sb, values...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) value(v ast.Value, depth int) {
	indent := strings.Repeat("\t", depth)

	switch n := v.(type) {
	case *ast.Group:
		p.block(indent, quoteTag(n.ID), n.Children, depth)
	case *ast.Event:
		p.block(indent, n.Date.String(), n.Children, depth)
	case *ast.String:
		p.printf("%s%s = \"%s\"\n", indent, quoteTag(n.Key), n.Value)
	case *ast.Bool:
		p.printf("%s%s = %s\n", indent, quoteTag(n.Key), formatBool(n.Value))
	case *ast.Int:
		p.printf("%s%s = %d\n", indent, quoteTag(n.Key), n.Value)
	case *ast.Float:
		p.printf("%s%s = %s\n", indent, quoteTag(n.Key), formatFloat(n.Value))
	case *ast.DateValue:
		p.printf("%s%s = %s\n", indent, quoteTag(n.Key), n.Value)
	case *ast.IntList:
		items := make([]string, len(n.Items))
		for i, item := range n.Items {
			items[i] = strconv.FormatInt(item, 10)
		}
		p.list(indent, n.Key, items)
	case *ast.StringList:
		items := make([]string, len(n.Items))
		for i, item := range n.Items {
			items[i] = quoteListItem(item)
		}
		p.list(indent, n.Key, items)
	default:
		if p.err == nil {
			p.err = fmt.Errorf("format: unsupported value %T", v)
		}
	}
}

func (p *printer) block(indent, header string, children []ast.Value, depth int) {
	p.printf("%s%s = {\n", indent, header)
	for _, child := range children {
		p.value(child, depth+1)
	}
	p.printf("%s}\n", indent)
}

func (p *printer) list(indent, key string, items []string) {
	if len(items) == 0 {
		p.printf("%s%s = { }\n", indent, quoteTag(key))
		return
	}
	p.printf("%s%s = { %s }\n", indent, quoteTag(key), strings.Join(items, " "))
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatFloat always keeps a decimal point so the value reads back as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func isBareWord(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\r\n{}=<>\"#")
}

func quoteTag(tag string) string {
	if isBareWord(tag) {
		return tag
	}
	return `"` + tag + `"`
}

// quoteListItem quotes items that would otherwise read back as integers.
func quoteListItem(item string) string {
	if isBareWord(item) && Classify(item) != ast.KindInt {
		return item
	}
	return `"` + item + `"`
}
