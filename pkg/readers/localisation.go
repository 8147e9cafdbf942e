package readers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/lexer"
)

// ReadLocalisation reads a semicolon separated localisation table, one entry
// per line. Quotes carry no meaning: a '"' is kept as text and never joins
// lines. Lines starting with '#' are comments. A later row for a key replaces
// an earlier one when the entries are stored in an entity.Localisation.
func ReadLocalisation(r io.Reader, source string) ([]entity.LocalisationEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	sc := bufio.NewScanner(bytes.NewReader(lexer.Decode(data)))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []entity.LocalisationEntry
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, ";")
		key := strings.TrimSpace(cols[0])
		if key == "" {
			continue
		}
		cols[0] = key
		entries = append(entries, entity.LocalisationEntry{Key: key, Columns: cols, Source: source})
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("read %s: %w", source, err)
	}
	return entries, nil
}
