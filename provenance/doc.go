// Package provenance emits the comment trailer appended after a rendered
// PDDL problem file: four ";"-prefixed lines recording the generator, the
// runtime, the data file path and the render time. Downstream tooling greps
// these lines, so labels and indentation are fixed.
package provenance
