package ir

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/legalizehlo/internal/optypes"
	"github.com/gomlx/legalizehlo/internal/utils"
	"github.com/gomlx/legalizehlo/types/shapes"
	"github.com/pkg/errors"
)

// Operation represents a single operation node in a function body.
//
// Operations are never mutated in place after creation: rewrites replace the whole
// operation through Function.Replace, so no observer ever sees a half-edited node.
type Operation struct {
	// OpType is the type of the operation.
	OpType optypes.OpType

	// Function this operation belongs to. It is set at construction by
	// Function.NewOperation and set to nil once the operation is replaced out
	// of the body.
	Function *Function

	// Inputs to the operation.
	Inputs []*Value

	// Attributes of the operation.
	Attributes map[string]any

	// Outputs of the operation. It may be empty for operations like func.return.
	Outputs []*Value
}

// Attr returns the attribute with the given name. A missing attribute is an
// invariant violation by whoever built the operation, so it returns an error
// rather than a zero value.
func (op *Operation) Attr(name string) (any, error) {
	value, ok := op.Attributes[name]
	if !ok {
		return nil, errors.Errorf("operation %s is missing required attribute %q", op.OpType, name)
	}
	return value, nil
}

// StrAttr returns the string attribute with the given name.
func (op *Operation) StrAttr(name string) (string, error) {
	value, err := op.Attr(name)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", errors.Errorf("operation %s attribute %q is a %T, expected a string", op.OpType, name, value)
	}
	return s, nil
}

// IntAttr returns the integer attribute with the given name.
func (op *Operation) IntAttr(name string) (int64, error) {
	value, err := op.Attr(name)
	if err != nil {
		return 0, err
	}
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	}
	return 0, errors.Errorf("operation %s attribute %q is a %T, expected an integer", op.OpType, name, value)
}

// Write writes a string representation of the operation to the given writer.
// Attributes are written in sorted key order, so the rendering of an unchanged
// function is deterministic.
func (op *Operation) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}

	// Output values are written first:
	w("%s", indentation)
	if len(op.Outputs) > 0 {
		for i, output := range op.Outputs {
			if i > 0 {
				w(", ")
			}
			we(output)
		}
		w(" = ")
	}

	// Write op name and arguments:
	w("%q(", op.OpType.DialectName())
	for i, input := range op.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input)
	}
	w(")")

	// Write attributes:
	if len(op.Attributes) > 0 {
		w("{")
		for i, key := range slices.Sorted(maps.Keys(op.Attributes)) {
			if i > 0 {
				w(", ")
			}
			w("%s = %s", key, literalToMLIR(op.Attributes[key]))
		}
		w("}")
	}

	// Write signature:
	w(" : (")
	for i, input := range op.Inputs {
		if i > 0 {
			w(", ")
		}
		w(input.shape.ToMLIR())
	}
	w(")")
	w(" -> ")
	if len(op.Outputs) == 0 {
		w("()")
	} else {
		// There are outputs: we use "(" and ")" only if there are more than one.
		if len(op.Outputs) > 1 {
			w("(")
		}
		for i, output := range op.Outputs {
			if i > 0 {
				w(", ")
			}
			w(output.shape.ToMLIR())
		}
		if len(op.Outputs) > 1 {
			w(")")
		}
	}

	return err
}

type hasToMLIR interface {
	ToMLIR() string
}

// literalToMLIR converts a literal value, usually used in attributes, to its MLIR-like
// string representation.
func literalToMLIR(attr any) string {
	switch v := attr.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case float32, float64:
		var f float64
		if f32, ok := v.(float32); ok {
			f = float64(f32)
		} else {
			f = v.(float64)
		}
		shape := shapes.Make(dtypes.FromAny(v))
		format := "dense<%g> : %s"
		if f == math.Trunc(f) {
			// f is an integer, make sure we add a decimal point.
			format = "dense<%.1f> : %s"
		}
		return fmt.Sprintf(format, v, shape.ToMLIR())
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		dtype := dtypes.FromAny(v)
		return fmt.Sprintf("%d : %s", v, utils.DTypeToMLIR(dtype))
	case bool:
		if v {
			return "true"
		}
		return "false"

	case hasToMLIR:
		// For types that implement their own conversion to MLIR text, use that.
		return v.ToMLIR()

	default:
		return fmt.Sprintf("Unknown literal type: %T %#v", v, v)
	}
}
