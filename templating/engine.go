package templating

import (
	"fmt"
	"strings"

	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/builtins"
	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/nikolalohinski/gonja/v2/loaders"
)

// Engine renders Jinja2 template text against a decoded
// data document bound under the name "data".
type Engine struct {
	env *exec.Environment
}

// Filter pairs a template filter name with its
// implementation.
type Filter struct {
	Name string
	Fn   exec.FilterFunction
}

// New builds an engine with the tif and mapattr helpers
// installed, plus any extra filters. A registration
// conflict leaves the engine unusable and is reported as
// an error.
func New(extra ...Filter) (*Engine, error) {
	const errCtx = "initializing engine"

	env := newEnvironment()

	filters := make([]Filter, 0, len(extra)+2)
	filters = append(filters,
		Filter{Name: "tif", Fn: tifFilter},
		Filter{Name: "mapattr", Fn: mapattrFilter},
	)
	filters = append(filters, extra...)

	for _, fi := range filters {
		if err := env.Filters.Register(
			fi.Name, fi.Fn,
		); err != nil {
			return nil, fmt.Errorf(
				"%s: registering filter %q: %w",
				errCtx, fi.Name, err,
			)
		}
	}

	// Call-style access to the same helpers.
	env.Context.Set("tif", tifGlobal)
	env.Context.Set("mapattr", mapattrGlobal)

	return &Engine{env: env}, nil
}

// NewPlain builds an engine with only the gonja builtin
// filters, matching the variant that renders without the
// PDDL helpers.
func NewPlain() (*Engine, error) {
	return &Engine{env: newEnvironment()}, nil
}

// newEnvironment builds a fresh environment over the
// gonja builtins so registrations never leak between
// engines. The filter set and context are mutated per
// engine and therefore copied; the read-only sets are
// shared.
func newEnvironment() *exec.Environment {
	filters := exec.NewFilterSet(
		map[string]exec.FilterFunction{},
	).Update(builtins.Filters)

	return &exec.Environment{
		Context: exec.EmptyContext().Update(
			builtins.GlobalFunctions,
		),
		Filters:           filters,
		Tests:             builtins.Tests,
		ControlStructures: builtins.ControlStructures,
		Methods:           builtins.Methods,
	}
}

// templateID names the single in-memory template handed
// to the loader.
const templateID = "/template"

// Render parses src and executes it with the single
// binding "data".
func (en *Engine) Render(
	src string,
	data interface{},
) (string, error) {
	const errCtx = "rendering template"

	loader, err := loaders.NewMemoryLoader(
		map[string]string{templateID: src},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	tpl, err := exec.NewTemplate(
		templateID, gonja.DefaultConfig, loader, en.env,
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s: parsing: %w", errCtx, err,
		)
	}

	var sb strings.Builder

	if err := tpl.Execute(
		&sb,
		exec.NewContext(map[string]interface{}{
			"data": data,
		}),
	); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return sb.String(), nil
}
