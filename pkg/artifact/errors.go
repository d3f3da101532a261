package artifact

import (
	"fmt"
	"strings"
)

// Violation is one schema check failure. Property is the dotted path of the
// offending value ("" for document-level failures, "[i]" suffixes for array
// elements).
type Violation struct {
	Property string
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s", v.Property, v.Message)
}

// SchemaViolationError carries every violation found in a single validation
// pass, in schema property order.
type SchemaViolationError struct {
	Violations []Violation
}

func (e *SchemaViolationError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, "document does not validate against the schema:")
	for _, v := range e.Violations {
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "\n")
}

// UnknownSectionTypeError is returned when the mapper is asked to persist a
// section sub-record of a type the store does not define.
type UnknownSectionTypeError struct {
	SectionType string
}

func (e *UnknownSectionTypeError) Error() string {
	return fmt.Sprintf("unknown section sub-record type %q", e.SectionType)
}
