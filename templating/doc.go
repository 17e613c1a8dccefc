// Package templating wraps the gonja Jinja2 engine and exposes the two
// custom template helpers used by PDDL problem templates: tif, which formats
// a (possibly timed) initial fluent assignment, and mapattr, which selects a
// key from a mapping with a fallback default.
//
// Both helpers are registered twice so templates can use either form:
// piped ("{{ 10 | tif(5, 'fuel') }}") or called ("{{ tif(10, 5, 'fuel') }}").
package templating
