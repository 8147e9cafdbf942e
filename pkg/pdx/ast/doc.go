// Package ast defines the generic value tree produced when parsing game data
// documents.
//
// A document is a sequence of "key = value" entries where a value is either a
// scalar or a bracketed block. Blocks become Group nodes, or Event nodes when
// their key is a date such as 1066.9.15. Scalars become String, Bool, Int,
// Float or DateValue nodes, and bracketed bare lists become IntList or
// StringList nodes.
//
// The set of Value implementations is closed. Every node carries the Location
// it was read from for diagnostics.
//
// Trees are owned top-down: a node belongs to exactly one parent and the
// variant of a node is fixed when it is built.
package ast
