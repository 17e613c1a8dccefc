package templating

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/nikolalohinski/gonja/v2/exec"
)

// tifFilter is the piped form of tif: the piped value is
// the time, the first parameter is the numeric value, and
// the remaining parameters are the function name tokens.
func tifFilter(
	_ *exec.Evaluator,
	in *exec.Value,
	params *exec.VarArgs,
) *exec.Value {
	if len(params.Args) < 2 {
		return exec.AsValue(fmt.Errorf(
			"tif: expected a value and at least one function name token",
		))
	}

	return exec.AsValue(formatFluent(
		in,
		params.Args[0],
		tokenStrings(params.Args[1:]),
	))
}

// tifGlobal is the call form of tif: tif(time, value,
// token, ...).
func tifGlobal(params *exec.VarArgs) *exec.Value {
	if len(params.Args) < 3 {
		return exec.AsValue(fmt.Errorf(
			"tif: expected a time, a value and at least one function name token",
		))
	}

	return exec.AsValue(formatFluent(
		params.Args[0],
		params.Args[1],
		tokenStrings(params.Args[2:]),
	))
}

// formatFluent renders a PDDL fluent assignment, wrapped
// in a timed "(at ...)" form when the time is strictly
// positive. Zero and negative times omit the wrapper.
func formatFluent(
	tm *exec.Value,
	val *exec.Value,
	tokens []string,
) string {
	assignment := fmt.Sprintf(
		"(= (%s) %s)",
		strings.Join(tokens, " "),
		formatNumber(val),
	)

	if asFloat(tm) > 0 {
		return fmt.Sprintf(
			"(at %s %s)", formatNumber(tm), assignment,
		)
	}

	return assignment
}

// formatNumber renders numbers the way they appear in
// the data document: json.Number keeps its literal form,
// integers print base 10, floats print the shortest
// round-trip form. Non-numeric values fall back to their
// string form.
func formatNumber(v *exec.Value) string {
	if nu, ok := v.Interface().(json.Number); ok {
		return nu.String()
	}

	switch {
	case v.IsInteger():
		return strconv.Itoa(v.Integer())
	case v.IsFloat():
		return strconv.FormatFloat(
			v.Float(), 'f', -1, 64,
		)
	default:
		return v.String()
	}
}

// asFloat extracts the numeric magnitude of a time value,
// whether it arrived as a template literal or as a
// json.Number from the data document.
func asFloat(v *exec.Value) float64 {
	if nu, ok := v.Interface().(json.Number); ok {
		fl, err := nu.Float64()
		if err != nil {
			return 0
		}

		return fl
	}

	return v.Float()
}

// tokenStrings flattens filter arguments into function
// name tokens.
func tokenStrings(args []*exec.Value) []string {
	tokens := make([]string, 0, len(args))
	for _, ar := range args {
		tokens = append(tokens, ar.String())
	}

	return tokens
}

// mapattrFilter selects a key from a mapping with an
// optional default: value | mapattr(name) or
// value | mapattr(name, default).
//
// Membership and retrieval both use the decoded-JSON
// mapping shape; any non-mapping value yields the
// default. The default defaults to nil.
func mapattrFilter(
	_ *exec.Evaluator,
	in *exec.Value,
	params *exec.VarArgs,
) *exec.Value {
	if len(params.Args) < 1 || len(params.Args) > 2 {
		return exec.AsValue(fmt.Errorf(
			"mapattr: expected an attribute name and an optional default",
		))
	}

	def := exec.AsValue(nil)
	if len(params.Args) == 2 {
		def = params.Args[1]
	}

	return selectAttr(in, params.Args[0].String(), def)
}

// mapattrGlobal is the call form: mapattr(value, name) or
// mapattr(value, name, default).
func mapattrGlobal(params *exec.VarArgs) *exec.Value {
	if len(params.Args) < 2 || len(params.Args) > 3 {
		return exec.AsValue(fmt.Errorf(
			"mapattr: expected a value, an attribute name and an optional default",
		))
	}

	def := exec.AsValue(nil)
	if len(params.Args) == 3 {
		def = params.Args[2]
	}

	return selectAttr(
		params.Args[0], params.Args[1].String(), def,
	)
}

func selectAttr(
	in *exec.Value,
	name string,
	def *exec.Value,
) *exec.Value {
	ma, ok := in.Interface().(map[string]interface{})
	if !ok {
		return def
	}

	va, ok := ma[name]
	if !ok {
		return def
	}

	return exec.AsValue(va)
}
