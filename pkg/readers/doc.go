// Package readers maps game documents onto entities.
//
// Each reader walks a document with a parser.Cursor and dispatches on the
// field names it knows. Any other field is parsed generically with
// parser.ParseValue and kept in the entity's Misc slice, so nothing in a
// document is lost. Cross-references are stored as ids and resolved later
// by package linker.
//
// Readers return plain records; registering them (and reporting
// overwritten duplicates) is left to the caller.
package readers
