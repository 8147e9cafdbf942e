package readers

import (
	"strconv"

	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/parser"
)

// ReadDynasties reads a dynasty document of "id = { name culture
// coat_of_arms }" blocks.
func ReadDynasties(c parser.Cursor, source string) ([]*entity.Dynasty, error) {
	var out []*entity.Dynasty
	err := eachTopLevel(c, func(tag string) error {
		loc := c.Location()
		id, err := strconv.Atoi(tag)
		if err != nil {
			e := errors.New(errors.ErrorTypeMalformedScalar, loc, "dynasty id %q is not an integer", tag)
			e.Tag = tag
			return e
		}

		d := &entity.Dynasty{ID: id, Source: source}
		err = eachField(c, func(field string) error {
			var err error
			switch field {
			case "name":
				d.Name, err = readString(c)
			case "culture":
				d.CultureID, err = readString(c)
			case "coat_of_arms":
				err = readBlock(c, field, &d.CoatOfArms, &d.Misc)
			default:
				err = keep(c, field, &d.Misc)
			}
			return err
		})
		if err != nil {
			return err
		}
		out = append(out, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
