package readers

import (
	"path/filepath"
	"strings"

	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

// ReadMod reads a mod descriptor. replace_path entries are normalised to
// slash separated paths without a trailing slash.
func ReadMod(c parser.Cursor, source string) (*entity.Mod, error) {
	m := &entity.Mod{File: filepath.Base(source), Source: source}
	strs := map[string]*string{
		"name":     &m.Name,
		"path":     &m.Path,
		"archive":  &m.Archive,
		"user_dir": &m.UserDir,
	}

	err := eachTopLevel(c, func(tag string) error {
		if handled, err := stringFields(c, tag, strs); handled {
			return err
		}

		switch tag {
		case "extend":
			s, err := readString(c)
			if err == nil {
				m.Extends = append(m.Extends, s)
			}
			return err
		case "replace_path", "replace":
			s, err := readString(c)
			if err == nil {
				m.Replaces = append(m.Replaces, normalisePath(s))
			}
			return err
		case "dependencies":
			deps, err := readStrings(c)
			m.Dependencies = append(m.Dependencies, deps...)
			return err
		}
		return keep(c, tag, &m.Misc)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func normalisePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.TrimSuffix(p, "/")
}
