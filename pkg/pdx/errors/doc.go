// Package errors provides the diagnostics raised while reading and linking
// game data documents.
//
// # Error Types
//
// ErrorTypeSyntax: unbalanced brackets or a missing operator. Aborts the document.
//
// ErrorTypeMalformedScalar: a numeric or date literal that does not convert.
// Aborts the document.
//
// ErrorTypeUnknownReference: a cross-reference (parent religion, dynasty
// culture) names nothing in the registry. Recorded, the pass continues.
//
// ErrorTypeUnresolvedAdjacency: an adjacency source names an unknown province.
// Recorded, the pass continues.
//
// ErrorTypeDuplicateOverwrite: a later document replaced an entity with the
// same identifier. Informational.
//
// ErrorTypeIO: file read errors. Aborts the document.
//
// # Usage
//
//	errList := errors.NewErrorList()
//	errList.Add(errors.MalformedScalar(loc, "capital", "12x", nil))
//
//	for _, line := range errList.Strings() {
//	    fmt.Println(line)
//	}
//
// # Error Format
//
//	[malformed_scalar] malformed value "1066.13.1" for "birth"
//	  --> history/characters/a.txt:12:9
//	  |
//	  -> 12 |     birth = 1066.13.1
//	        |             ^
//	  |
package errors
