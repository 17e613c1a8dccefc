package provenance

import (
	"fmt"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/valyala/fasttemplate"
)

// trailerFormat is substituted with single-brace tags.
// The "Python:" label is kept for compatibility with
// consumers of previously generated files; the value is
// this runtime's identifier.
const trailerFormat = `; This PDDL problem file was generated using Jinja2 template
;    Python: {runtime}
;    Data: {data}
;    Time: {time}
`

// timeLayout mirrors the date-time form the trailer has
// always carried.
const timeLayout = "2006-01-02 15:04:05.999999"

// Trailer holds the provenance fields of one render.
type Trailer struct {
	Runtime  string
	DataPath string
	Time     time.Time
}

// Render substitutes the trailer fields into the fixed
// four-line format.
func (tr Trailer) Render() string {
	return fasttemplate.ExecuteStringStd(
		trailerFormat, "{", "}",
		map[string]interface{}{
			"runtime": tr.Runtime,
			"data":    tr.DataPath,
			"time":    tr.Time.Format(timeLayout),
		},
	)
}

// RuntimeIdentifier describes the executing Go runtime,
// the equivalent of sys.version in the original trailer.
func RuntimeIdentifier() string {
	return fmt.Sprintf(
		"%s %s/%s",
		runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}

// SanitizeLineEnds collapses a possibly multi-line value
// to a single line by joining its lines with ", ". The
// separator itself is never treated as a line break.
func SanitizeLineEnds(value string) string {
	return strings.Join(splitLines(value), ", ")
}

// splitLines splits on LF, CR, CRLF, VT, FF, NEL, LS and
// PS. Interior empty lines become empty segments; a
// terminator at end of string closes the last segment
// without opening an empty one.
func splitLines(value string) []string {
	var lines []string

	start := 0

	for i := 0; i < len(value); {
		ru, size := utf8.DecodeRuneInString(value[i:])
		if !isLineTerminator(ru) {
			i += size

			continue
		}

		lines = append(lines, value[start:i])

		i += size

		// CRLF counts as a single break.
		if ru == '\r' && i < len(value) && value[i] == '\n' {
			i++
		}

		start = i
	}

	if start < len(value) {
		lines = append(lines, value[start:])
	}

	return lines
}

func isLineTerminator(ru rune) bool {
	switch ru {
	case '\n', '\r', '\v', '\f',
		'\u0085', '\u2028', '\u2029':
		return true
	}

	return false
}
