package parser

import "chronicle-hq/chronicle/pkg/pdx/ast"

// Cursor is a position in a tokenized document, read as a sequence of
// "tag = value" entries. lexer.TokenCursor is the implementation used by the
// rest of the module.
type Cursor interface {
	// NextTag reads the next key and its operator. ok is false when the
	// enclosing block closes or the document ends.
	NextTag() (tag string, ok bool, err error)
	// NextIsBracketed reports whether the next value opens a block or list.
	NextIsBracketed() bool
	// NextIsList reports whether the next value is a bracketed bare list.
	NextIsList() bool
	// ReadScalar reads one value token. Quoted tokens keep their quotes.
	ReadScalar() (string, error)
	// ReadIntList reads a bracketed list of integers.
	ReadIntList() ([]int64, error)
	// ReadStringList reads a bracketed list. Quoted items keep their quotes.
	ReadStringList() ([]string, error)
	// EnterBlock consumes the opening bracket of a block.
	EnterBlock() error
	// SkipValue discards the next value.
	SkipValue() error
	// Location returns the position of the next token.
	Location() ast.Location
}
