// Package parser builds generic value trees from game data documents.
//
// Classify assigns a kind to raw scalar text and ParseScalar converts it.
// ParseValue reads the value after "tag =" at a Cursor: scalars become
// scalar nodes, blocks become Group nodes, or Event nodes when the tag is a
// date, and bracketed bare lists become IntList or StringList nodes. Blocks
// under construction are tracked on a stack passed through the recursion, so
// independent documents can be parsed concurrently.
//
// # Basic Usage
//
//	p := parser.NewParser()
//	doc, err := p.ParseFile("history/provinces/1 - Vestisland.txt")
//	if err != nil {
//	    return err
//	}
//	for _, v := range doc.Values {
//	    fmt.Println(v.Tag(), v.Kind())
//	}
//
// Field readers that map known tags themselves hand unknown ones to
// ParseValue and keep the returned node:
//
//	default:
//	    v, err := parser.ParseValue(c, tag)
//	    if err != nil {
//	        return err
//	    }
//	    record.Misc = append(record.Misc, v)
//
// # Errors
//
// Literals that do not convert are MalformedScalar errors naming the tag and
// raw text. Unbalanced brackets are Syntax errors. Either aborts the
// document being parsed.
//
// Format writes trees back out in the same syntax.
package parser
