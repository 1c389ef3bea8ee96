package legalizehlo

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/legalizehlo/internal/optypes"
	"github.com/gomlx/legalizehlo/internal/utils"
	"github.com/gomlx/legalizehlo/ir"
	"github.com/gomlx/legalizehlo/types/shapes"
	"github.com/pkg/errors"
)

// iotaSupportedDTypes are the element types the iota rule can materialize. Bool,
// float and complex iota are left for other legalizations.
var iotaSupportedDTypes = utils.SetWith(
	dtypes.Int8, dtypes.Int16, dtypes.Int32, dtypes.Int64,
	dtypes.Uint8, dtypes.Uint16, dtypes.Uint32, dtypes.Uint64,
)

// iotaPattern materializes an integer index-generation operation as a dense constant.
//
// The result holds, at every flat row-major position, its coordinate along the
// operation's "iota_dimension" axis: a ramp that repeats per outer block and is
// constant within each inner block.
type iotaPattern struct{}

func (iotaPattern) OpType() optypes.OpType { return optypes.Iota }

func (iotaPattern) MatchAndRewrite(op *ir.Operation) (*Replacement, error) {
	if len(op.Outputs) != 1 {
		return nil, errors.Errorf("operation %s requires 1 result, got %d", op.OpType, len(op.Outputs))
	}
	outputShape := op.Outputs[0].Shape()

	if !iotaSupportedDTypes.Has(outputShape.DType) {
		return nil, nil
	}

	dimension, err := op.IntAttr("iota_dimension")
	if err != nil {
		return nil, err
	}
	if dimension < 0 || dimension >= int64(outputShape.Rank()) {
		return nil, errors.Errorf("operation %s dimension %d is out of range for shape %s",
			op.OpType, dimension, outputShape)
	}

	literal, err := iotaLiteral(outputShape, int(dimension))
	if err != nil {
		return nil, err
	}
	newOp := op.Function.NewOperation(optypes.Constant, nil,
		map[string]any{"value": literal}, outputShape.Clone())
	return ReplaceWithOp(newOp), nil
}

// iotaLiteral computes the dense constant for an iota of the given shape along the
// given dimension. The value at flat row-major position k is
// (k / stride) % shape.Dimensions[dimension], where stride is the product of the
// dimension sizes after the target dimension.
func iotaLiteral(shape shapes.Shape, dimension int) (*ir.Literal, error) {
	total := shape.Size()
	maxDimSize := shape.Dimensions[dimension]

	// A zero-sized dimension means an empty tensor: materialize an empty constant
	// without computing strides (which would divide by zero).
	if total == 0 {
		return emptyIotaLiteral(shape)
	}

	stride := total
	for i := 0; i <= dimension; i++ {
		stride /= shape.Dimensions[i]
	}

	switch shape.DType {
	case dtypes.Int8:
		return ir.NewLiteralFromFlatAndDimensions(iotaFlat[int8](total, stride, maxDimSize), shape.Dimensions...)
	case dtypes.Int16:
		return ir.NewLiteralFromFlatAndDimensions(iotaFlat[int16](total, stride, maxDimSize), shape.Dimensions...)
	case dtypes.Int32:
		return ir.NewLiteralFromFlatAndDimensions(iotaFlat[int32](total, stride, maxDimSize), shape.Dimensions...)
	case dtypes.Int64:
		return ir.NewLiteralFromFlatAndDimensions(iotaFlat[int64](total, stride, maxDimSize), shape.Dimensions...)
	case dtypes.Uint8:
		return ir.NewLiteralFromFlatAndDimensions(iotaFlat[uint8](total, stride, maxDimSize), shape.Dimensions...)
	case dtypes.Uint16:
		return ir.NewLiteralFromFlatAndDimensions(iotaFlat[uint16](total, stride, maxDimSize), shape.Dimensions...)
	case dtypes.Uint32:
		return ir.NewLiteralFromFlatAndDimensions(iotaFlat[uint32](total, stride, maxDimSize), shape.Dimensions...)
	case dtypes.Uint64:
		return ir.NewLiteralFromFlatAndDimensions(iotaFlat[uint64](total, stride, maxDimSize), shape.Dimensions...)
	}
	return nil, errors.Errorf("unsupported integer dtype %s for iota constant", shape.DType)
}

// iotaFlat fills the flat row-major values at the element bitwidth. All arithmetic
// is exact integer arithmetic, no rounding is involved.
func iotaFlat[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](total, stride, maxDimSize int) []T {
	flat := make([]T, total)
	for k := range flat {
		flat[k] = T((k / stride) % maxDimSize)
	}
	return flat
}

// emptyIotaLiteral builds a zero-element literal of the given integer shape.
func emptyIotaLiteral(shape shapes.Shape) (*ir.Literal, error) {
	switch shape.DType {
	case dtypes.Int8:
		return ir.NewLiteralFromFlatAndDimensions([]int8{}, shape.Dimensions...)
	case dtypes.Int16:
		return ir.NewLiteralFromFlatAndDimensions([]int16{}, shape.Dimensions...)
	case dtypes.Int32:
		return ir.NewLiteralFromFlatAndDimensions([]int32{}, shape.Dimensions...)
	case dtypes.Int64:
		return ir.NewLiteralFromFlatAndDimensions([]int64{}, shape.Dimensions...)
	case dtypes.Uint8:
		return ir.NewLiteralFromFlatAndDimensions([]uint8{}, shape.Dimensions...)
	case dtypes.Uint16:
		return ir.NewLiteralFromFlatAndDimensions([]uint16{}, shape.Dimensions...)
	case dtypes.Uint32:
		return ir.NewLiteralFromFlatAndDimensions([]uint32{}, shape.Dimensions...)
	case dtypes.Uint64:
		return ir.NewLiteralFromFlatAndDimensions([]uint64{}, shape.Dimensions...)
	}
	return nil, errors.Errorf("unsupported integer dtype %s for iota constant", shape.DType)
}
