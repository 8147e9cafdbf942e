package lexer

import (
	"strconv"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
)

// TokenCursor walks the tokens of one document as a sequence of tags and
// values. It tracks block depth so that unbalanced brackets surface as
// syntax errors. A TokenCursor is not safe for concurrent use.
type TokenCursor struct {
	source string
	toks   []token
	pos    int
	depth  int
	tag    string
}

// New decodes and tokenizes data read from source.
func New(source string, data []byte) (*TokenCursor, error) {
	return NewString(source, string(Decode(data)))
}

// NewString tokenizes UTF-8 text read from source.
func NewString(source, text string) (*TokenCursor, error) {
	toks, err := tokenize(source, text)
	if err != nil {
		return nil, err
	}
	return &TokenCursor{source: source, toks: toks}, nil
}

// Source returns the document path the cursor was created for.
func (c *TokenCursor) Source() string { return c.source }

// Depth returns the number of blocks currently entered.
func (c *TokenCursor) Depth() int { return c.depth }

// Location returns the position of the next token.
func (c *TokenCursor) Location() ast.Location { return c.peek(0).loc }

func (c *TokenCursor) peek(n int) token {
	if i := c.pos + n; i < len(c.toks) {
		return c.toks[i]
	}
	return c.toks[len(c.toks)-1]
}

// NextTag reads the next key and its operator. It returns ok=false when the
// current block closes or the document ends. Reaching the end of the
// document inside a block, or a '}' outside of any block, is an error.
func (c *TokenCursor) NextTag() (string, bool, error) {
	tok := c.peek(0)
	switch tok.kind {
	case tokEOF:
		if c.depth > 0 {
			return "", false, c.syntaxError(tok, "unexpected end of file, %d unclosed block(s)", c.depth)
		}
		return "", false, nil

	case tokClose:
		if c.depth == 0 {
			return "", false, c.syntaxError(tok, "unexpected '}'")
		}
		c.depth--
		c.pos++
		return "", false, nil

	case tokWord, tokString:
		c.pos++
		switch c.peek(0).kind {
		case tokOp:
			// Comparison operators are read like '='
			c.pos++
		case tokOpen:
			// "key { ... }" without an operator
		default:
			return "", false, c.syntaxError(tok, "expected '=' after %q", tok.text)
		}
		c.tag = Unquote(tok.text)
		return c.tag, true, nil

	default:
		return "", false, c.syntaxError(tok, "unexpected %s, expected a key", tok.kind)
	}
}

// NextIsBracketed reports whether the next value is a block or list.
func (c *TokenCursor) NextIsBracketed() bool {
	return c.peek(0).kind == tokOpen
}

// NextIsList reports whether the next value is a bracketed list of bare
// items, as in "{ 1 2 3 }", rather than a block of entries.
func (c *TokenCursor) NextIsList() bool {
	if c.peek(0).kind != tokOpen {
		return false
	}
	first := c.peek(1)
	if first.kind != tokWord && first.kind != tokString {
		return false
	}
	switch c.peek(2).kind {
	case tokOp, tokOpen:
		return false
	default:
		return true
	}
}

// ReadScalar reads a single value. Quoted values keep their quotes.
func (c *TokenCursor) ReadScalar() (string, error) {
	tok := c.peek(0)
	if tok.kind != tokWord && tok.kind != tokString {
		return "", c.syntaxError(tok, "expected a value for %q, found %s", c.tag, tok.kind)
	}
	c.pos++
	return tok.text, nil
}

// ReadStringList reads a bracketed list. Quoted items keep their quotes.
func (c *TokenCursor) ReadStringList() ([]string, error) {
	open := c.peek(0)
	if open.kind != tokOpen {
		return nil, c.syntaxError(open, "expected '{' for %q, found %s", c.tag, open.kind)
	}
	c.pos++

	items := make([]string, 0)
	for {
		tok := c.peek(0)
		switch tok.kind {
		case tokWord, tokString:
			items = append(items, tok.text)
			c.pos++
		case tokClose:
			c.pos++
			return items, nil
		default:
			return nil, c.syntaxError(tok, "unexpected %s in list %q", tok.kind, c.tag)
		}
	}
}

// ReadIntList reads a bracketed list of integers.
func (c *TokenCursor) ReadIntList() ([]int64, error) {
	loc := c.Location()
	raw, err := c.ReadStringList()
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(raw))
	for i, s := range raw {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.MalformedScalar(loc, c.tag, s, nil)
		}
		out[i] = n
	}
	return out, nil
}

// EnterBlock consumes the '{' that opens a block.
func (c *TokenCursor) EnterBlock() error {
	tok := c.peek(0)
	if tok.kind != tokOpen {
		return c.syntaxError(tok, "expected '{' for %q, found %s", c.tag, tok.kind)
	}
	c.pos++
	c.depth++
	return nil
}

// SkipValue discards the next value, including a whole nested block.
func (c *TokenCursor) SkipValue() error {
	if !c.NextIsBracketed() {
		_, err := c.ReadScalar()
		return err
	}

	start := c.peek(0)
	level := 0
	for {
		tok := c.peek(0)
		switch tok.kind {
		case tokOpen:
			level++
		case tokClose:
			level--
		case tokEOF:
			return c.syntaxError(start, "unclosed block for %q", c.tag)
		}
		c.pos++
		if level == 0 {
			return nil
		}
	}
}

func (c *TokenCursor) syntaxError(tok token, format string, args ...any) *errors.Error {
	err := errors.New(errors.ErrorTypeSyntax, tok.loc, format, args...)
	err.Tag = c.tag
	err.Raw = tok.text
	return err
}
