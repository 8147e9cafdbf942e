package errors

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// ExtractContext returns the lines of src around line (1-based), marking the
// line itself and, when column is positive, the column.
func ExtractContext(src []byte, line, column, contextLines int) string {
	if line <= 0 || len(src) == 0 {
		return ""
	}

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), len(src)+1)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil || line > len(lines) {
		return ""
	}

	errorLine := line - 1
	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		fmt.Fprintf(&sb, "%s %*d | %s\n", prefix, width, i+1, lines[i])

		if i == errorLine && column > 0 {
			fmt.Fprintf(&sb, "   %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", column-1))
		}
	}

	return sb.String()
}

// WithContext fills err.Context from the document source and returns err.
func WithContext(err *Error, src []byte, contextLines int) *Error {
	if err.Location.IsValid() {
		err.Context = ExtractContext(src, err.Location.Line, err.Location.Column, contextLines)
	}
	return err
}

// AddContextToError adds two lines of context on each side of the error.
func AddContextToError(err *Error, src []byte) *Error {
	return WithContext(err, src, 2)
}
