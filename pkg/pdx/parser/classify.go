package parser

import (
	"math"
	"strconv"
	"strings"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/lexer"
)

// Classify returns the scalar kind of raw token text: KindInt, KindFloat,
// KindDate, KindBool or KindString. It never fails; text that does not
// convert cleanly is caught later by ParseScalar.
//
// Rules, in order:
//   - a '-' anywhere but the first position makes the text a string
//   - text made only of digits, '.' and a leading '-' is numeric: no dot is
//     an integer, one dot a float, two or more a date
//   - "yes" and "no" are booleans
//   - anything else, including the empty string, is a string
func Classify(text string) ast.Kind {
	if strings.LastIndexByte(text, '-') > 0 {
		return ast.KindString
	}

	if isNumeric(text) {
		switch strings.Count(text, ".") {
		case 0:
			return ast.KindInt
		case 1:
			return ast.KindFloat
		default:
			return ast.KindDate
		}
	}

	if text == "yes" || text == "no" {
		return ast.KindBool
	}
	return ast.KindString
}

func isNumeric(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= '0' && ch <= '9', ch == '.':
		case ch == '-' && i == 0:
		default:
			return false
		}
	}
	return true
}

// IsDateTag reports whether a block header names a date, making the block an
// Event rather than a Group.
func IsDateTag(tag string) bool {
	return Classify(tag) == ast.KindDate
}

// ParseScalar classifies raw and converts it into the matching scalar node.
// A numeric or date literal that does not convert is a MalformedScalar error.
func ParseScalar(tag, raw string, loc ast.Location) (ast.Value, error) {
	switch Classify(raw) {
	case ast.KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.MalformedScalar(loc, tag, raw, unwrapNum(err))
		}
		return &ast.Int{Key: tag, Value: n, Loc: loc}, nil

	case ast.KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.MalformedScalar(loc, tag, raw, unwrapNum(err))
		}
		return &ast.Float{Key: tag, Value: Round3(f), Loc: loc}, nil

	case ast.KindDate:
		d, err := ast.ParseDate(raw)
		if err != nil {
			return nil, errors.MalformedScalar(loc, tag, raw, err)
		}
		return &ast.DateValue{Key: tag, Value: d, Loc: loc}, nil

	case ast.KindBool:
		return &ast.Bool{Key: tag, Value: raw == "yes", Loc: loc}, nil

	default:
		return &ast.String{Key: tag, Value: lexer.Unquote(raw), Loc: loc}, nil
	}
}

// Round3 rounds f to three decimal places.
func Round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func unwrapNum(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
