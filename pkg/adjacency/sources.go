package adjacency

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"chronicle-hq/chronicle/pkg/pdx/ast"
)

// Pair is one row of adjacencies.csv: a crossing between two provinces,
// optionally through a third (the sea tile of a strait).
type Pair struct {
	From     int
	To       int
	Type     string
	Through  int
	Comment  string
	Location ast.Location
}

// Listing is one "Adjacencies for" line of setup.log.
type Listing struct {
	From       int
	Candidates []int
	Location   ast.Location
}

// ParsePairs reads a semicolon separated adjacencies file, one pair per
// line. Fields are split on ';' with no quoting, so a stray quote in a
// comment never spills into the following rows. The header row (starting
// with "from") and the terminator row (starting with "-1") are skipped, as
// are rows whose endpoints are not integers.
func ParsePairs(r io.Reader, source string) ([]Pair, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pairs []Pair
	line := 0
	for sc.Scan() {
		line++
		rec := strings.Split(strings.TrimRight(sc.Text(), "\r"), ";")
		first := strings.ToLower(strings.TrimSpace(rec[0]))
		if strings.HasPrefix(first, "from") || strings.HasPrefix(first, "-1") || len(rec) < 2 {
			continue
		}
		from, err1 := strconv.Atoi(first)
		to, err2 := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err1 != nil || err2 != nil {
			continue
		}

		p := Pair{
			From:     from,
			To:       to,
			Through:  -1,
			Location: ast.Location{File: source, Line: line, Column: 1},
		}
		if len(rec) > 2 {
			p.Type = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			if through, err := strconv.Atoi(strings.TrimSpace(rec[3])); err == nil {
				p.Through = through
			}
		}
		if len(rec) > 4 {
			p.Comment = strings.TrimSpace(rec[4])
		}
		pairs = append(pairs, p)
	}
	if err := sc.Err(); err != nil {
		return pairs, fmt.Errorf("read %s: %w", source, err)
	}
	return pairs, nil
}

var listingLine = regexp.MustCompile(`Adjacencies for\s+(-?\d+)\s*==>\s*(.*)$`)

// ParseListing extracts the neighbour listings from a game setup log. Only
// "[map.cpp:...]" lines are considered; "==> NONE" lines and tokens that are
// not integers are dropped.
func ParseListing(r io.Reader, source string) ([]Listing, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var listings []Listing
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "[map.cpp:") {
			continue
		}
		m := listingLine.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(m[2])
		if rest == "NONE" {
			continue
		}
		from, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		l := Listing{
			From:     from,
			Location: ast.Location{File: source, Line: line, Column: 1},
		}
		for _, tok := range strings.Fields(rest) {
			if id, err := strconv.Atoi(tok); err == nil {
				l.Candidates = append(l.Candidates, id)
			}
		}
		listings = append(listings, l)
	}
	if err := sc.Err(); err != nil {
		return listings, fmt.Errorf("read %s: %w", source, err)
	}
	return listings, nil
}
