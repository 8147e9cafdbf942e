package lexer

import (
	stderrors "errors"
	"unicode/utf8"

	plex "github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/encoding/charmap"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
)

// definition tokenizes the key/value dialect. Rules are tried in order.
var definition = plex.MustSimple([]plex.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\x{feff}]+`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Op", Pattern: `[<>]=?|==?`},
	{Name: "Open", Pattern: `\{`},
	{Name: "Close", Pattern: `\}`},
	{Name: "Word", Pattern: `[^\s{}=<>"#]+`},
})

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokOp
	tokOpen
	tokClose
)

func (k tokenKind) String() string {
	switch k {
	case tokWord:
		return "word"
	case tokString:
		return "string"
	case tokOp:
		return "operator"
	case tokOpen:
		return "'{'"
	case tokClose:
		return "'}'"
	default:
		return "end of file"
	}
}

type token struct {
	kind tokenKind
	text string
	loc  ast.Location
}

var kindBySymbol = func() map[plex.TokenType]tokenKind {
	symbols := definition.Symbols()
	return map[plex.TokenType]tokenKind{
		symbols["String"]: tokString,
		symbols["Op"]:     tokOp,
		symbols["Open"]:   tokOpen,
		symbols["Close"]:  tokClose,
		symbols["Word"]:   tokWord,
		plex.EOF:          tokEOF,
	}
}()

// Decode returns data as UTF-8. Input that is not valid UTF-8 is treated as
// Windows-1252, the encoding the game ships its text files in.
func Decode(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

// tokenize lexes text, dropping comments and whitespace. The returned slice
// always ends with an EOF token.
func tokenize(source, text string) ([]token, error) {
	lx, err := definition.LexString(source, text)
	if err != nil {
		return nil, lexError(source, err)
	}
	raw, err := plex.ConsumeAll(lx)
	if err != nil {
		return nil, lexError(source, err)
	}

	toks := make([]token, 0, len(raw))
	for _, t := range raw {
		kind, ok := kindBySymbol[t.Type]
		if !ok {
			// Comment or Whitespace
			continue
		}
		toks = append(toks, token{
			kind: kind,
			text: t.Value,
			loc:  ast.Location{File: source, Line: t.Pos.Line, Column: t.Pos.Column},
		})
	}
	if len(toks) == 0 || toks[len(toks)-1].kind != tokEOF {
		toks = append(toks, token{kind: tokEOF, loc: ast.Location{File: source}})
	}
	return toks, nil
}

func lexError(source string, err error) error {
	loc := ast.Location{File: source}
	msg := err.Error()
	var perr *plex.Error
	if stderrors.As(err, &perr) {
		loc.Line = perr.Pos.Line
		loc.Column = perr.Pos.Column
		msg = perr.Msg
	}
	return errors.New(errors.ErrorTypeSyntax, loc, "%s", msg)
}

// Unquote strips one pair of surrounding double quotes, if present.
func Unquote(s string) string {
	if IsQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// IsQuoted reports whether s is wrapped in double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}
