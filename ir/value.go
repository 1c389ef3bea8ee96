package ir

import (
	"fmt"
	"io"

	"github.com/gomlx/legalizehlo/types/shapes"
)

// Value represents a typed value in a function body, like `%0` or `%arg0`.
// It is either a function input or the output of exactly one Operation.
type Value struct {
	id    int
	name  string // Optional name composed of letters, digits and underscore.
	shape shapes.Shape
	fn    *Function
	def   *Operation // Operation defining this value; nil for function inputs.
}

// Shape returns the shape of the value.
func (v *Value) Shape() shapes.Shape {
	return v.shape
}

// Def returns the operation defining this value, or nil if it is a function input.
func (v *Value) Def() *Operation {
	return v.def
}

// Write writes the value reference in MLIR-like text format to the given writer.
func (v *Value) Write(w io.Writer, indentation string) error {
	_ = indentation
	if v.name != "" {
		_, err := fmt.Fprintf(w, "%%%s", v.name)
		return err
	}
	_, err := fmt.Fprintf(w, "%%%d", v.id)
	return err
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	if v.name != "" {
		return "%" + v.name
	}
	return fmt.Sprintf("%%%d", v.id)
}
