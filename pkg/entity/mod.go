package entity

import "chronicle-hq/chronicle/pkg/pdx/ast"

// Mod is a mod descriptor (*.mod).
type Mod struct {
	Name         string
	File         string // Descriptor file name
	Path         string // Mod folder, relative to the mod directory
	Archive      string // Zipped mod, relative to the mod directory
	UserDir      string
	Dependencies []string
	Extends      []string
	Replaces     []string // Folders whose base game files are dropped

	Misc   []ast.Value
	Source string
}

// ReplacesPath reports whether the mod drops the base game's files under the
// folder rel (slash separated, relative to the game root).
func (m *Mod) ReplacesPath(rel string) bool {
	for _, r := range m.Replaces {
		if r == rel {
			return true
		}
	}
	return false
}
