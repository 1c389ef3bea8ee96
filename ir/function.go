// Package ir holds the in-memory representation of a function body the legalization
// engine rewrites: values, operations and the function that owns them, together with
// the replacement primitives rewrites are expressed with.
//
// The graph is single-owner: one Function owns its Operations and Values, and a
// replacement is applied atomically -- uses of the old operation's results are
// redirected to the new values and the old operation dropped in one step.
package ir

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/legalizehlo/internal/optypes"
	"github.com/gomlx/legalizehlo/internal/utils"
	"github.com/gomlx/legalizehlo/types"
	"github.com/gomlx/legalizehlo/types/shapes"
	"github.com/pkg/errors"
)

// Function represents one function body: an ordered list of operations over values.
type Function struct {
	// Name of the function. It should not include the "@" prefix.
	Name string

	// Inputs to the function.
	Inputs []*Value

	// Outputs types of the function.
	Outputs []shapes.Shape

	// Operations in the function body, in execution order.
	Operations []*Operation

	// nextArgID is the next ID to be assigned to new input arguments.
	nextArgID int

	// nextTmpID is the next ID to be assigned to new intermediary values.
	nextTmpID int

	// Returned indicates if the function has a return operation, so no further
	// operations can be appended.
	Returned bool
}

// NewFunction creates a new empty function with the given name.
func NewFunction(name string) *Function {
	return &Function{Name: utils.NormalizeIdentifier(name)}
}

// newValue creates a new value with the given shape and assigns it the next available id.
func (fn *Function) newValue(shape shapes.Shape) *Value {
	v := &Value{
		fn:    fn,
		id:    fn.nextTmpID,
		shape: shape,
	}
	fn.nextTmpID++
	return v
}

// Input creates a new input parameter for the function.
//
// If creating multiple inputs (one at a time), the order matters: it determines the
// function signature. It picks a default unique name; use NamedInput to provide one.
func (fn *Function) Input(shape shapes.Shape) *Value {
	value := fn.NamedInput(fmt.Sprintf("arg%d", fn.nextArgID), shape)
	fn.nextArgID++
	return value
}

// NamedInput creates a new input parameter for the function with the given name -- it
// must be a unique input name.
//
// The name is passed through NormalizeIdentifier, which converts any non-digit or
// non-ASCII-letter to an underscore.
func (fn *Function) NamedInput(name string, shape shapes.Shape) *Value {
	value := &Value{
		fn:    fn,
		name:  utils.NormalizeIdentifier(name),
		shape: shape,
	}
	fn.Inputs = append(fn.Inputs, value)
	return value
}

// NewOperation builds a detached operation owned by this function: its output values
// are created with the given shapes, but the operation is not inserted in the body.
//
// Detached operations are how rewrite rules describe their replacement: the driver
// later splices them in with Replace.
func (fn *Function) NewOperation(opType optypes.OpType, inputs []*Value, attributes map[string]any, outputShapes ...shapes.Shape) *Operation {
	op := &Operation{
		OpType:     opType,
		Function:   fn,
		Inputs:     inputs,
		Attributes: attributes,
	}
	op.Outputs = make([]*Value, len(outputShapes))
	for i, shape := range outputShapes {
		op.Outputs[i] = fn.newValue(shape)
		op.Outputs[i].def = op
	}
	return op
}

// addOp creates a new operation with a single output and appends it to the body.
func (fn *Function) addOp(opType optypes.OpType, outputShape shapes.Shape, inputs ...*Value) (*Operation, error) {
	if fn.Returned {
		return nil, errors.Errorf("cannot add operation %s after returning, in function %q", opType, fn.Name)
	}
	for _, input := range inputs {
		if input.fn != fn {
			return nil, errors.Errorf("cannot add operation %s to function %q, because an operand is not part of the function",
				opType, fn.Name)
		}
	}
	op := fn.NewOperation(opType, inputs, nil, outputShape)
	fn.Operations = append(fn.Operations, op)
	return op, nil
}

// Append adds an already built (detached) operation to the end of the body.
func (fn *Function) Append(op *Operation) error {
	if fn.Returned {
		return errors.Errorf("cannot append operation %s after returning, in function %q", op.OpType, fn.Name)
	}
	if op.Function != fn {
		return errors.Errorf("cannot append operation %s to function %q: it belongs to a different function", op.OpType, fn.Name)
	}
	fn.Operations = append(fn.Operations, op)
	return nil
}

// indexOf returns the position of the operation in the body, or -1 if absent.
func (fn *Function) indexOf(op *Operation) int {
	for i, candidate := range fn.Operations {
		if candidate == op {
			return i
		}
	}
	return -1
}

// replaceUses redirects every use of oldValue as an operand to newValue.
func (fn *Function) replaceUses(oldValue, newValue *Value) {
	for _, op := range fn.Operations {
		for i, input := range op.Inputs {
			if input == oldValue {
				op.Inputs[i] = newValue
			}
		}
	}
}

// ReplaceWithOp replaces old with newOp: newOp takes old's position in the body, all
// uses of old's results are redirected to newOp's results, and old is dropped.
//
// The two operations must have the same number of results, with matching shapes.
func (fn *Function) ReplaceWithOp(old, newOp *Operation) error {
	index := fn.indexOf(old)
	if index < 0 {
		return errors.Errorf("cannot replace operation %s: it is not in function %q", old.OpType, fn.Name)
	}
	if newOp.Function != fn {
		return errors.Errorf("cannot replace operation %s with %s: the replacement belongs to a different function",
			old.OpType, newOp.OpType)
	}
	if len(old.Outputs) != len(newOp.Outputs) {
		return errors.Errorf("cannot replace operation %s (%d results) with %s (%d results)",
			old.OpType, len(old.Outputs), newOp.OpType, len(newOp.Outputs))
	}
	for i, oldOutput := range old.Outputs {
		if !newOp.Outputs[i].shape.Equal(oldOutput.shape) {
			return errors.Errorf("cannot replace operation %s result #%d of shape %s with a result of shape %s",
				old.OpType, i, oldOutput.shape, newOp.Outputs[i].shape)
		}
	}
	fn.Operations[index] = newOp
	for i, oldOutput := range old.Outputs {
		fn.replaceUses(oldOutput, newOp.Outputs[i])
	}
	old.Function = nil
	return nil
}

// ReplaceWithValue replaces old with an existing value: all uses of old's single
// result are redirected to value and old is removed from the body.
func (fn *Function) ReplaceWithValue(old *Operation, value *Value) error {
	index := fn.indexOf(old)
	if index < 0 {
		return errors.Errorf("cannot replace operation %s: it is not in function %q", old.OpType, fn.Name)
	}
	if value.fn != fn {
		return errors.Errorf("cannot replace operation %s with a value from a different function", old.OpType)
	}
	if len(old.Outputs) != 1 {
		return errors.Errorf("cannot replace operation %s with a single value: it has %d results",
			old.OpType, len(old.Outputs))
	}
	if !value.shape.Equal(old.Outputs[0].shape) {
		return errors.Errorf("cannot replace operation %s result of shape %s with a value of shape %s",
			old.OpType, old.Outputs[0].shape, value.shape)
	}
	fn.Operations = append(fn.Operations[:index], fn.Operations[index+1:]...)
	fn.replaceUses(old.Outputs[0], value)
	old.Function = nil
	return nil
}

// Constant appends a constant operation holding the given literal and returns its value.
func (fn *Function) Constant(literal *Literal) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("cannot add operation %s after returning, in function %q", optypes.Constant, fn.Name)
	}
	op := fn.NewOperation(optypes.Constant, nil, map[string]any{"value": literal}, literal.Shape())
	if err := fn.Append(op); err != nil {
		return nil, err
	}
	return op.Outputs[0], nil
}

// Compare appends a high-level compare operation with the given direction. Its result
// has a Bool element type with the dimensions of lhs.
//
// The direction is stored as the operation's "comparison_direction" string attribute,
// the form the legalization rules consume.
func (fn *Function) Compare(lhs, rhs *Value, direction types.ComparisonDirection) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("cannot add operation %s after returning, in function %q", optypes.Compare, fn.Name)
	}
	if lhs.fn != fn || rhs.fn != fn {
		return nil, errors.Errorf("cannot add operation %s to function %q, because the operands are not part of the function",
			optypes.Compare, fn.Name)
	}
	outputShape := shapes.Make(dtypes.Bool, lhs.shape.Dimensions...)
	op := fn.NewOperation(optypes.Compare, []*Value{lhs, rhs},
		map[string]any{"comparison_direction": direction.String()}, outputShape)
	if err := fn.Append(op); err != nil {
		return nil, err
	}
	return op.Outputs[0], nil
}

// Iota appends an index-generation operation: its result has the given shape, with
// values increasing along the given axis (starting from 0). So Iota([2,2], 1) yields
// [[0 1][0 1]], while Iota([2,2], 0) yields [[0 0][1 1]].
func (fn *Function) Iota(shape shapes.Shape, axis int) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("cannot add operation %s after returning, in function %q", optypes.Iota, fn.Name)
	}
	if axis < 0 || axis >= shape.Rank() {
		return nil, errors.Errorf("Iota axis %d is invalid for shape %s", axis, shape)
	}
	op := fn.NewOperation(optypes.Iota, nil, map[string]any{"iota_dimension": int64(axis)}, shape)
	if err := fn.Append(op); err != nil {
		return nil, err
	}
	return op.Outputs[0], nil
}

// Add appends an element-wise add operation. Operand shapes must match exactly.
func (fn *Function) Add(lhs, rhs *Value) (*Value, error) {
	return fn.binaryOp(optypes.Add, lhs, rhs)
}

// Subtract appends an element-wise subtract operation. Operand shapes must match exactly.
func (fn *Function) Subtract(lhs, rhs *Value) (*Value, error) {
	return fn.binaryOp(optypes.Subtract, lhs, rhs)
}

// Multiply appends an element-wise multiply operation. Operand shapes must match exactly.
func (fn *Function) Multiply(lhs, rhs *Value) (*Value, error) {
	return fn.binaryOp(optypes.Multiply, lhs, rhs)
}

func (fn *Function) binaryOp(opType optypes.OpType, lhs, rhs *Value) (*Value, error) {
	if !lhs.shape.Equal(rhs.shape) {
		return nil, errors.Errorf("operation %s requires operands of the same shape, got %s and %s",
			opType, lhs.shape, rhs.shape)
	}
	op, err := fn.addOp(opType, lhs.shape.Clone(), lhs, rhs)
	if err != nil {
		return nil, err
	}
	return op.Outputs[0], nil
}

// Return adds a return operation to the function with the given return values.
// There must be at least one return value, and it must be the last operation.
func (fn *Function) Return(firstValue *Value, otherValues ...*Value) error {
	if fn.Returned {
		return errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	allValues := make([]*Value, 1, len(otherValues)+1)
	allValues[0] = firstValue
	allValues = append(allValues, otherValues...)
	outputShapes := make([]shapes.Shape, len(allValues))
	for i, value := range allValues {
		if value.fn != fn {
			return errors.New("Function.Return given values that are not owned by the function")
		}
		outputShapes[i] = value.shape
	}
	fn.Outputs = outputShapes

	op := fn.NewOperation(optypes.FuncReturn, allValues, nil)
	if err := fn.Append(op); err != nil {
		return err
	}
	fn.Returned = true
	return nil
}

const indentationStep = "  "

// elementWriter represents elements that know how to write themselves as MLIR-like text.
type elementWriter interface {
	Write(w io.Writer, indentation string) error
}

// Write renders the function as MLIR-like text, with the given indentation.
func (fn *Function) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter, indentation string) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}
	nextIndent := indentation + indentationStep

	w("%sfunc.func @%s(", indentation, fn.Name)
	for i, input := range fn.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input, nextIndent)
		w(": %s", input.shape.ToMLIR())
	}
	w(") -> ")
	if len(fn.Outputs) > 1 {
		w("(")
	}
	for i, output := range fn.Outputs {
		if i > 0 {
			w(", ")
		}
		w("%s", output.ToMLIR())
	}
	if len(fn.Outputs) > 1 {
		w(")")
	}
	w(" {\n")

	for _, op := range fn.Operations {
		we(op, nextIndent)
		w("\n")
	}

	w("%s}", indentation)
	return err
}

// String renders the function as MLIR-like text. Errors are folded into the output.
func (fn *Function) String() string {
	var buf bytes.Buffer
	if err := fn.Write(&buf, ""); err != nil {
		return fmt.Sprintf("<error rendering function %q: %v>", fn.Name, err)
	}
	return buf.String()
}
