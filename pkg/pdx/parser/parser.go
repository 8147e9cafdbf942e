package parser

import (
	"fmt"
	"os"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	pdxErrors "chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/lexer"
)

// DefaultMaxFileSize is the largest document accepted by a new Parser.
const DefaultMaxFileSize = 32 * 1024 * 1024

// Document is the generic value tree of a whole file.
type Document struct {
	Source string
	Values []ast.Value
}

// Root returns the document's top-level entries wrapped in an unnamed group.
func (d *Document) Root() *ast.Group {
	return &ast.Group{Children: d.Values, Loc: ast.Location{File: d.Source, Line: 1, Column: 1}}
}

// ParseDocument parses every top-level entry at the cursor until the end of
// the document.
func ParseDocument(c Cursor) ([]ast.Value, error) {
	var values []ast.Value
	for {
		tag, ok, err := c.NextTag()
		if err != nil {
			return nil, err
		}
		if !ok {
			return values, nil
		}
		v, err := ParseValue(c, tag)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

// Parser reads whole documents into value trees.
type Parser struct {
	maxFileSize int64 // Maximum file size in bytes
}

// NewParser creates a parser with default limits.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: DefaultMaxFileSize,
	}
}

// WithMaxFileSize sets the maximum document size.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// ParseFile reads and parses the document at path.
func (p *Parser) ParseFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &pdxErrors.Error{
			Type:     pdxErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("failed to access file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	if info.Size() > p.maxFileSize {
		return nil, &pdxErrors.Error{
			Type:     pdxErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("file size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize),
			Location: ast.Location{File: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pdxErrors.Error{
			Type:     pdxErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("failed to read file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	return p.ParseBytes(data, path)
}

// ParseBytes parses a document held in memory. source names it in locations.
func (p *Parser) ParseBytes(data []byte, source string) (*Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &pdxErrors.Error{
			Type:     pdxErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: ast.Location{File: source},
		}
	}

	text := lexer.Decode(data)
	c, err := lexer.New(source, text)
	if err != nil {
		return nil, withContext(err, text)
	}

	values, err := ParseDocument(c)
	if err != nil {
		return nil, withContext(err, text)
	}
	return &Document{Source: source, Values: values}, nil
}

func withContext(err error, src []byte) error {
	if e, ok := err.(*pdxErrors.Error); ok {
		return pdxErrors.AddContextToError(e, src)
	}
	return err
}
