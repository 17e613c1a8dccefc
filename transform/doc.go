// Package transform drives the render pipeline: read a Jinja2 template of a
// PDDL problem file, decode a JSON (or YAML) data document, render the
// template with the document bound as "data", and write the result followed
// by a provenance trailer.
//
// The pipeline is a straight line with no shared state; every invocation is
// fresh. The engine is constructed before any input is read so that an
// unusable engine aborts without consuming the template stream.
package transform
