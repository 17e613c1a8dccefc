package transform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/pddl_transform/provenance"
	"github.com/byte4ever/pddl_transform/templating"
)

// Pipeline renders a problem template against a data
// document and appends the provenance trailer. The zero
// value reads the template from stdin, writes to stdout,
// uses the full filter set and the real clock.
type Pipeline struct {
	// TemplatePath is the template file; empty means the
	// In stream.
	TemplatePath string
	// OutputPath is the result file; empty means the Out
	// stream.
	OutputPath string
	// Plain disables the custom PDDL filters and the
	// runtime identifier sanitization.
	Plain bool
	// Clock stamps the trailer; nil means time.Now.
	Clock func() time.Time
	// ExtraFilters are installed next to the standard
	// ones. Ignored in Plain mode.
	ExtraFilters []templating.Filter

	In  io.Reader
	Out io.Writer
}

// Transform runs the pipeline against the data document
// at dataPath.
//
// Stage order is part of the contract: the engine is
// built first, then the template is read, then the data
// document is loaded and decoded, then the render result
// and the trailer are written.
func (pl *Pipeline) Transform(dataPath string) error {
	const errCtx = "transforming problem template"

	engine, err := pl.newEngine()
	if err != nil {
		return fmt.Errorf(
			"%s: template engine unavailable, rebuild with the gonja module present: %w",
			errCtx, err,
		)
	}

	tplContent, err := pl.readTemplate()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	data, err := loadData(dataPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	rendered, err := engine.Render(
		string(tplContent), data,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out, closer, err := pl.openOutput()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if closer != nil {
		defer closer()
	}

	if err := pl.write(
		out, rendered, dataPath,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// newEngine builds the engine matching the pipeline
// variant.
func (pl *Pipeline) newEngine() (
	*templating.Engine, error,
) {
	if pl.Plain {
		return templating.NewPlain()
	}

	return templating.New(pl.ExtraFilters...)
}

// readTemplate reads the whole template, from a file
// when TemplatePath is set and from the In stream
// otherwise.
func (pl *Pipeline) readTemplate() ([]byte, error) {
	const errCtx = "reading template"

	if pl.TemplatePath != "" {
		content, err := os.ReadFile(pl.TemplatePath) //nolint:gosec // path from CLI flag
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	in := pl.In
	if in == nil {
		in = os.Stdin
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// loadData reads and decodes the data document. Files
// named *.yaml or *.yml decode as YAML; everything else
// must be UTF-8 JSON.
func loadData(dataPath string) (interface{}, error) {
	const errCtx = "loading data"

	content, err := os.ReadFile(dataPath) //nolint:gosec // path from CLI argument
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf(
			"%s: %s is not valid UTF-8",
			errCtx, dataPath,
		)
	}

	var data interface{}

	switch strings.ToLower(filepath.Ext(dataPath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(
			content, &data,
		); err != nil {
			return nil, fmt.Errorf(
				"%s: decoding yaml: %w", errCtx, err,
			)
		}
	default:
		// UseNumber keeps integral numbers integral, so a
		// JSON 42 renders as "42" and not "42.0".
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.UseNumber()

		if err := dec.Decode(&data); err != nil {
			return nil, fmt.Errorf(
				"%s: decoding json: %w", errCtx, err,
			)
		}
	}

	return data, nil
}

// openOutput returns the result writer, a file when
// OutputPath is set and the Out stream otherwise. The
// closer may be nil.
func (pl *Pipeline) openOutput() (
	io.Writer, func(), error,
) {
	const errCtx = "opening output"

	if pl.OutputPath == "" {
		out := pl.Out
		if out == nil {
			out = os.Stdout
		}

		return out, nil, nil
	}

	fo, err := os.Create(pl.OutputPath) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return fo, func() {
		_ = fo.Close() //nolint:errcheck // best-effort close
	}, nil
}

// write emits the rendered text, a terminating newline,
// and the provenance trailer.
func (pl *Pipeline) write(
	out io.Writer,
	rendered string,
	dataPath string,
) error {
	const errCtx = "writing output"

	clock := pl.Clock
	if clock == nil {
		clock = time.Now
	}

	identifier := provenance.RuntimeIdentifier()
	if !pl.Plain {
		identifier = provenance.SanitizeLineEnds(identifier)
	}

	trailer := provenance.Trailer{
		Runtime:  identifier,
		DataPath: dataPath,
		Time:     clock(),
	}

	// The engine keeps the template's trailing newline.
	// One terminator is stripped and one is re-emitted,
	// so a newline-terminated template is followed
	// immediately by the trailer.
	switch {
	case strings.HasSuffix(rendered, "\r\n"):
		rendered = rendered[:len(rendered)-2]
	case strings.HasSuffix(rendered, "\n"):
		rendered = rendered[:len(rendered)-1]
	}

	if _, err := io.WriteString(
		out, rendered+"\n"+trailer.Render(),
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
