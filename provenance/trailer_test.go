package provenance_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/pddl_transform/provenance"
)

func TestSanitizeLineEnds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single line", "go1.25 linux/amd64", "go1.25 linux/amd64"},
		{"lf", "a\nb", "a, b"},
		{"crlf", "a\r\nb", "a, b"},
		{"cr", "a\rb", "a, b"},
		{"interior empty line", "a\n\nb", "a, , b"},
		{"trailing terminator", "a\n", "a"},
		{"empty", "", ""},
		{"separator untouched", "a, b", "a, b"},
		{"unicode line separator", "a\u2028b", "a, b"},
		{"next line", "a\u0085b", "a, b"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := provenance.SanitizeLineEnds(tc.in)
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "\n")
			assert.NotContains(t, got, "\r")
		})
	}
}

func TestTrailer_render_four_lines(t *testing.T) {
	t.Parallel()

	tr := provenance.Trailer{
		Runtime:  "go1.25.0 linux/amd64",
		DataPath: "problems/p1.json",
		Time: time.Date(
			2024, 3, 1, 12, 30, 45, 123456000,
			time.Local,
		),
	}

	out := tr.Render()

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Empty(t, lines[4])

	assert.Equal(
		t,
		"; This PDDL problem file was generated using Jinja2 template",
		lines[0],
	)
	assert.Equal(
		t,
		";    Python: go1.25.0 linux/amd64",
		lines[1],
	)
	assert.Equal(
		t,
		";    Data: problems/p1.json",
		lines[2],
	)
	assert.Equal(
		t,
		";    Time: 2024-03-01 12:30:45.123456",
		lines[3],
	)
}

func TestRuntimeIdentifier(t *testing.T) {
	t.Parallel()

	id := provenance.RuntimeIdentifier()
	assert.Contains(t, id, "go")
	assert.NotContains(t, id, "\n")
}
