// Command transform_jinja2 renders a Jinja2 template of a
// PDDL problem file, read from stdin, against the JSON
// data document given as the positional argument, and
// writes the result plus a provenance trailer to stdout.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/byte4ever/pddl_transform/transform"
)

// usageLine formats the one-line usage hint printed when
// the data file argument is missing.
func usageLine(argv0 string) string {
	return fmt.Sprintf(
		"Usage: %s <data.json>", filepath.Base(argv0),
	)
}

func main() {
	var (
		tpl    string
		output string
		plain  bool
	)

	flag.StringVar(
		&tpl, "template", "",
		"template file path (stdin if empty)",
	)

	flag.StringVar(
		&output, "output", "",
		"output file path (stdout if empty)",
	)

	flag.BoolVar(
		&plain, "plain", false,
		"render without the custom PDDL filters",
	)

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, usageLine(os.Args[0]))
		os.Exit(1)
	}

	pl := transform.Pipeline{
		TemplatePath: tpl,
		OutputPath:   output,
		Plain:        plain,
	}

	if err := pl.Transform(flag.Arg(0)); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
