package entity

import "chronicle-hq/chronicle/pkg/registry"

// Localisation column indices of the semicolon separated tables.
const (
	ColumnEnglish = 1
	ColumnFrench  = 2
	ColumnGerman  = 3
	ColumnSpanish = 5
)

// LocalisationEntry is one row of a localisation table.
type LocalisationEntry struct {
	Key     string
	Columns []string // Column 0 is the key
	Source  string
}

// Localisation maps keys to their rows. A later row for the same key
// replaces the earlier one.
type Localisation struct {
	entries *registry.Registry[string, LocalisationEntry]
}

// NewLocalisation creates an empty table.
func NewLocalisation() *Localisation {
	return &Localisation{entries: registry.New[string, LocalisationEntry]()}
}

// Put stores e under its key.
func (l *Localisation) Put(e LocalisationEntry) {
	l.entries.Put(e.Key, e)
}

// Lookup returns the row for key.
func (l *Localisation) Lookup(key string) (LocalisationEntry, bool) {
	return l.entries.Get(key)
}

// Column returns the given column of key's row, or "" if absent.
func (l *Localisation) Column(key string, column int) string {
	e, ok := l.entries.Get(key)
	if !ok || column < 0 || column >= len(e.Columns) {
		return ""
	}
	return e.Columns[column]
}

// Text returns the English text for key, or key itself when it has none.
func (l *Localisation) Text(key string) string {
	if s := l.Column(key, ColumnEnglish); s != "" {
		return s
	}
	return key
}

// Len returns the number of keys.
func (l *Localisation) Len() int {
	return l.entries.Len()
}
