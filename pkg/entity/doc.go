// Package entity defines the records built from game data: titles,
// provinces, cultures, religions, dynasties, the map descriptor, mod
// descriptors and localisation tables.
//
// Cross-entity fields are held twice. The raw identifier is filled while a
// document is read; the pointer is filled by a later linking pass and stays
// nil when the identifier names nothing. Pointers never own their target:
// every entity is owned by the registry it was put in.
//
// Tags a reader has no field for are kept in each record's Misc slice as
// generic value trees.
package entity
