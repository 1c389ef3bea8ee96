package legalizehlo

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/legalizehlo/internal/optypes"
	"github.com/gomlx/legalizehlo/ir"
	"github.com/gomlx/legalizehlo/types"
	"github.com/gomlx/legalizehlo/types/shapes"
	"github.com/pkg/errors"
)

// compareOperands extracts the pieces every compare rule needs. A compare operation
// without two operands, one result or the direction attribute is malformed and
// returns an error.
func compareOperands(op *ir.Operation) (lhs, rhs *ir.Value, direction string, err error) {
	if len(op.Inputs) != 2 {
		return nil, nil, "", errors.Errorf("operation %s requires 2 operands, got %d", op.OpType, len(op.Inputs))
	}
	if len(op.Outputs) != 1 {
		return nil, nil, "", errors.Errorf("operation %s requires 1 result, got %d", op.OpType, len(op.Outputs))
	}
	direction, err = op.StrAttr("comparison_direction")
	if err != nil {
		return nil, nil, "", err
	}
	return op.Inputs[0], op.Inputs[1], direction, nil
}

// compareIntPattern lowers a compare over integer operands to std.cmpi with the
// equivalent signed predicate.
type compareIntPattern struct{}

func (compareIntPattern) OpType() optypes.OpType { return optypes.Compare }

func (compareIntPattern) MatchAndRewrite(op *ir.Operation) (*Replacement, error) {
	lhs, rhs, directionAttr, err := compareOperands(op)
	if err != nil {
		return nil, err
	}

	// Broadcasting not supported by this rewrite.
	if !lhs.Shape().EqualDimensions(rhs.Shape()) {
		return nil, nil
	}
	if !lhs.Shape().DType.IsInt() || !rhs.Shape().DType.IsInt() {
		return nil, nil
	}
	direction, ok := types.DirectionFromAttribute(directionAttr)
	if !ok {
		return nil, nil
	}
	predicate, ok := types.IntPredicateForDirection(direction)
	if !ok {
		return nil, nil
	}

	outputShape := shapes.Make(dtypes.Bool, lhs.Shape().Dimensions...)
	newOp := op.Function.NewOperation(optypes.CmpI, []*ir.Value{lhs, rhs},
		map[string]any{"predicate": predicate}, outputShape)
	return ReplaceWithOp(newOp), nil
}

// compareFloatPattern lowers a compare over float operands to std.cmpf.
//
// Equality maps to the ordered predicate and inequality to the unordered one, so
// that NE remains the logical negation of EQ in the presence of NaN.
type compareFloatPattern struct{}

func (compareFloatPattern) OpType() optypes.OpType { return optypes.Compare }

func (compareFloatPattern) MatchAndRewrite(op *ir.Operation) (*Replacement, error) {
	lhs, rhs, directionAttr, err := compareOperands(op)
	if err != nil {
		return nil, err
	}

	// Broadcasting not supported by this rewrite.
	if !lhs.Shape().EqualDimensions(rhs.Shape()) {
		return nil, nil
	}
	if !lhs.Shape().DType.IsFloat() || !rhs.Shape().DType.IsFloat() {
		return nil, nil
	}
	direction, ok := types.DirectionFromAttribute(directionAttr)
	if !ok {
		return nil, nil
	}
	predicate, ok := types.FloatPredicateForDirection(direction)
	if !ok {
		return nil, nil
	}

	outputShape := shapes.Make(dtypes.Bool, lhs.Shape().Dimensions...)
	newOp := op.Function.NewOperation(optypes.CmpF, []*ir.Value{lhs, rhs},
		map[string]any{"predicate": predicate}, outputShape)
	return ReplaceWithOp(newOp), nil
}
