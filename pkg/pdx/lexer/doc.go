// Package lexer tokenizes game data documents and exposes them as a cursor of
// tags and values.
//
// Documents are "key = value" entries where values are bare words, quoted
// strings, or brackets holding further entries or a bare list. '#' starts a
// comment that runs to the end of the line. Files that are not valid UTF-8
// are decoded as Windows-1252.
//
//	c, err := lexer.New("common/religions/00_religions.txt", data)
//	for {
//	    tag, ok, err := c.NextTag()
//	    ...
//	}
package lexer
