package parser

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/pdx/lexer"
)

// White is returned for colour lists with fewer than three entries.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// ParseColour decodes a "{ r g b }" list. If any entry has a decimal point all
// three are read as 0-1 fractions and scaled to 0-255; otherwise they are
// read as integers. Channels are rounded and clamped to 0-255.
func ParseColour(items []string, tag string, loc ast.Location) (color.RGBA, error) {
	if len(items) < 3 {
		return White, nil
	}

	isFloat := false
	for _, item := range items {
		if strings.Contains(item, ".") {
			isFloat = true
			break
		}
	}

	var ch [3]uint8
	for i := range ch {
		raw := lexer.Unquote(items[i])
		if isFloat {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return White, errors.MalformedScalar(loc, tag, raw, unwrapNum(err))
			}
			ch[i] = clampChannel(math.Round(f * 255))
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return White, errors.MalformedScalar(loc, tag, raw, unwrapNum(err))
		}
		ch[i] = clampChannel(float64(n))
	}

	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}, nil
}

func clampChannel(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}
