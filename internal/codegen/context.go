// Package codegen holds the shared emission context threaded through the
// matching and application code emitters: one struct carrying the output
// sink, indentation level, and every fresh-name counter, instead of
// package-level statics.
package codegen

import (
	"fmt"
	"io"
	"strings"
)

// Context is reset once per rule compilation and passed by reference
// through every emit call in matchgen/applygen.
type Context struct {
	w             io.Writer
	indent        int
	predicateID   int
	listTempID    int
	boolTempID    int
}

// NewContext creates a Context writing to w.
func NewContext(w io.Writer) *Context {
	return &Context{w: w}
}

// Indent increases the indentation level for the duration of fn.
func (c *Context) Indent(fn func()) {
	c.indent++
	fn()
	c.indent--
}

// Line writes one indented, newline-terminated line.
func (c *Context) Line(format string, args ...any) {
	fmt.Fprintf(c.w, "%s%s\n", strings.Repeat("    ", c.indent), fmt.Sprintf(format, args...))
}

// Raw writes text with no indentation or trailing newline.
func (c *Context) Raw(s string) {
	io.WriteString(c.w, s)
}

// NextPredicateTemp returns a fresh predicate-evaluator temporary name.
func (c *Context) NextPredicateTemp() string {
	id := c.predicateID
	c.predicateID++
	return fmt.Sprintf("p%d", id)
}

// NextListTemp returns a fresh list-concatenation temporary name.
func (c *Context) NextListTemp() string {
	id := c.listTempID
	c.listTempID++
	return fmt.Sprintf("list%d", id)
}

// NextBoolTemp returns a fresh boolean scratch temporary name, distinct
// from the rule's own condition-variable bool IDs.
func (c *Context) NextBoolTemp() string {
	id := c.boolTempID
	c.boolTempID++
	return fmt.Sprintf("tmp_b%d", id)
}
