package readers

import (
	"path/filepath"
	"strconv"
	"strings"

	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

// ProvinceID extracts the id and name from a province history file name,
// "123 - York.txt" giving 123 and "York".
func ProvinceID(source string) (int, string, error) {
	base := filepath.Base(source)
	idPart, name, _ := strings.Cut(base, "-")
	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return 0, "", errors.New(errors.ErrorTypeMalformedScalar, ast.Location{File: source},
			"province file name %q does not start with an id", base)
	}
	name = strings.TrimSpace(strings.TrimSuffix(name, filepath.Ext(name)))
	return id, name, nil
}

// ReadProvince reads a province history document. The province id comes
// from the file name. Callers register the province only when it names a
// county title.
func ReadProvince(c parser.Cursor, source string) (*entity.Province, error) {
	id, name, err := ProvinceID(source)
	if err != nil {
		return nil, err
	}
	p := entity.NewProvince(id, name, source)

	strs := map[string]*string{
		"title":    &p.Title,
		"culture":  &p.Culture,
		"religion": &p.Religion,
		"terrain":  &p.Terrain,
	}

	err = eachTopLevel(c, func(tag string) error {
		if handled, err := stringFields(c, tag, strs); handled {
			return err
		}

		switch {
		case tag == "max_settlements":
			var err error
			p.MaxSettlements, err = readInt(c, tag)
			return err

		case strings.HasPrefix(tag, "b_") && !c.NextIsBracketed():
			kind, err := readString(c)
			if err != nil {
				return err
			}
			p.Settlements = append(p.Settlements, entity.Settlement{Title: tag, Type: kind})
			return nil

		case tag != "" && tag[0] >= '0' && tag[0] <= '9':
			v, err := parser.ParseValue(c, tag)
			if err != nil {
				return err
			}
			if ev, ok := v.(*ast.Event); ok {
				p.History = append(p.History, ev)
			} else {
				p.Misc = append(p.Misc, v)
			}
			return nil
		}
		return keep(c, tag, &p.Misc)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
