package legalizehlo

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/legalizehlo/internal/optypes"
	"github.com/gomlx/legalizehlo/ir"
	"github.com/gomlx/legalizehlo/types/shapes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// iotaFunction builds a function whose only operation is an iota of the given shape
// along the given axis.
func iotaFunction(t *testing.T, shape shapes.Shape, axis int) *ir.Function {
	t.Helper()
	fn := ir.NewFunction("main")
	v := must.M1(fn.Iota(shape, axis))
	require.NoError(t, fn.Return(v))
	return fn
}

// loweredLiteral asserts the function's first operation is a dense constant and
// returns its literal.
func loweredLiteral(t *testing.T, fn *ir.Function) *ir.Literal {
	t.Helper()
	require.NotEmpty(t, fn.Operations)
	op := fn.Operations[0]
	require.Equal(t, optypes.Constant, op.OpType)
	literal, ok := op.Attributes["value"].(*ir.Literal)
	require.True(t, ok, "constant op should carry a literal value attribute")
	return literal
}

func TestIotaRowMajorLowering(t *testing.T) {
	t.Run("dimension=1", func(t *testing.T) {
		fn := iotaFunction(t, shapes.Make(dtypes.Int32, 2, 3), 1)
		require.NoError(t, New().Run(fn))
		literal := loweredLiteral(t, fn)
		require.NoError(t, literal.Shape().Check(dtypes.Int32, 2, 3))
		assert.Equal(t, []int32{0, 1, 2, 0, 1, 2}, literal.Flat())
	})

	t.Run("dimension=0", func(t *testing.T) {
		fn := iotaFunction(t, shapes.Make(dtypes.Int32, 2, 3), 0)
		require.NoError(t, New().Run(fn))
		literal := loweredLiteral(t, fn)
		assert.Equal(t, []int32{0, 0, 0, 1, 1, 1}, literal.Flat())
	})

	// Middle dimension of a rank-3 shape: the ramp is constant within each inner
	// block of size 4 and repeats for each outer block.
	t.Run("rank-3 middle dimension", func(t *testing.T) {
		fn := iotaFunction(t, shapes.Make(dtypes.Int64, 2, 3, 4), 1)
		require.NoError(t, New().Run(fn))
		literal := loweredLiteral(t, fn)
		want := []int64{
			0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
			0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		}
		assert.Equal(t, want, literal.Flat())
	})

	t.Run("rank-1", func(t *testing.T) {
		fn := iotaFunction(t, shapes.Make(dtypes.Uint8, 5), 0)
		require.NoError(t, New().Run(fn))
		literal := loweredLiteral(t, fn)
		assert.Equal(t, []uint8{0, 1, 2, 3, 4}, literal.Flat())
	})
}

func TestIotaBitwidths(t *testing.T) {
	// The ramp is materialized at the element bitwidth of the result.
	fn := iotaFunction(t, shapes.Make(dtypes.Int8, 1, 4), 1)
	require.NoError(t, New().Run(fn))
	literal := loweredLiteral(t, fn)
	assert.Equal(t, []int8{0, 1, 2, 3}, literal.Flat())

	fn = iotaFunction(t, shapes.Make(dtypes.Int16, 3, 1), 0)
	require.NoError(t, New().Run(fn))
	literal = loweredLiteral(t, fn)
	assert.Equal(t, []int16{0, 1, 2}, literal.Flat())
}

func TestIotaZeroSizedDimension(t *testing.T) {
	fn := iotaFunction(t, shapes.Make(dtypes.Int32, 0, 3), 1)
	require.NoError(t, New().Run(fn))
	literal := loweredLiteral(t, fn)
	require.NoError(t, literal.Shape().Check(dtypes.Int32, 0, 3))
	assert.Empty(t, literal.Flat())
}

func TestIotaUnsupportedElementKindsAreLeftUntouched(t *testing.T) {
	for _, dtype := range []dtypes.DType{dtypes.Float32, dtypes.Float64, dtypes.Complex64} {
		fn := iotaFunction(t, shapes.Make(dtype, 2, 2), 0)
		legalizer := New()
		require.NoError(t, legalizer.Run(fn))
		assert.Equal(t, optypes.Iota, fn.Operations[0].OpType, "%s iota should not be legalized", dtype)
		assert.Equal(t, 0, legalizer.Stats().Replacements)
	}
}

func TestIotaMissingDimensionIsMalformed(t *testing.T) {
	fn := ir.NewFunction("main")
	op := fn.NewOperation(optypes.Iota, nil, nil, shapes.Make(dtypes.Int32, 2, 2))
	require.NoError(t, fn.Append(op))

	err := New().Run(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required attribute "iota_dimension"`)
}

func TestIotaOutOfRangeDimensionIsMalformed(t *testing.T) {
	fn := ir.NewFunction("main")
	op := fn.NewOperation(optypes.Iota, nil,
		map[string]any{"iota_dimension": int64(2)}, shapes.Make(dtypes.Int32, 2, 2))
	require.NoError(t, fn.Append(op))

	err := New().Run(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
