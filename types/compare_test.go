package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionFromAttribute(t *testing.T) {
	for _, attr := range []string{"EQ", "GE", "GT", "LE", "LT", "NE"} {
		direction, ok := DirectionFromAttribute(attr)
		require.True(t, ok, "direction %q should be recognized", attr)
		assert.Equal(t, attr, direction.String())
	}

	// Matching is exact: lowercase and mixed-case spellings are rejected.
	for _, attr := range []string{"", "QE", "LESS", "EQ ", "==", "eq", "Eq", "lt", "ne"} {
		_, ok := DirectionFromAttribute(attr)
		assert.False(t, ok, "direction %q should not be recognized", attr)
	}
}

func TestPredicateTables(t *testing.T) {
	intWant := map[ComparisonDirection]CmpIPredicate{
		CompareEQ: CmpIEq,
		CompareNE: CmpINe,
		CompareLT: CmpISlt,
		CompareLE: CmpISle,
		CompareGT: CmpISgt,
		CompareGE: CmpISge,
	}
	floatWant := map[ComparisonDirection]CmpFPredicate{
		CompareEQ: CmpFOEQ,
		CompareNE: CmpFUNE,
		CompareLT: CmpFOLT,
		CompareLE: CmpFOLE,
		CompareGT: CmpFOGT,
		CompareGE: CmpFOGE,
	}
	for _, direction := range ComparisonDirectionValues() {
		intPredicate, ok := IntPredicateForDirection(direction)
		require.True(t, ok, "direction %s should have an integer predicate", direction)
		assert.Equal(t, intWant[direction], intPredicate)

		floatPredicate, ok := FloatPredicateForDirection(direction)
		require.True(t, ok, "direction %s should have a float predicate", direction)
		assert.Equal(t, floatWant[direction], floatPredicate)
	}
}

func TestCmpIPredicateApply(t *testing.T) {
	assert.True(t, CmpIEq.Apply(3, 3))
	assert.False(t, CmpIEq.Apply(3, 4))
	assert.True(t, CmpINe.Apply(3, 4))
	assert.True(t, CmpISlt.Apply(-1, 0))
	assert.False(t, CmpISlt.Apply(0, 0))
	assert.True(t, CmpISle.Apply(0, 0))
	assert.True(t, CmpISgt.Apply(7, -7))
	assert.True(t, CmpISge.Apply(7, 7))
}

func TestCmpFPredicateApply(t *testing.T) {
	nan := math.NaN()

	// Ordered comparisons are false whenever either operand is NaN; the unordered
	// NE is true, so NE stays the negation of EQ.
	assert.False(t, CmpFOEQ.Apply(nan, 1))
	assert.False(t, CmpFOEQ.Apply(1, nan))
	assert.False(t, CmpFOEQ.Apply(nan, nan))
	assert.True(t, CmpFUNE.Apply(nan, 1))
	assert.True(t, CmpFUNE.Apply(1, nan))
	assert.True(t, CmpFUNE.Apply(nan, nan))
	assert.False(t, CmpFOLT.Apply(nan, 1))
	assert.False(t, CmpFOGE.Apply(nan, 1))

	// On non-NaN operands the predicates behave as plain comparisons.
	assert.True(t, CmpFOEQ.Apply(1.5, 1.5))
	assert.False(t, CmpFUNE.Apply(1.5, 1.5))
	assert.True(t, CmpFOLT.Apply(-math.Inf(1), 0))
	assert.True(t, CmpFOLE.Apply(2, 2))
	assert.True(t, CmpFOGT.Apply(3, 2))
	assert.True(t, CmpFOGE.Apply(3, 3))

	// UNE is the logical negation of OEQ for every pair, NaN included.
	values := []float64{0, 1, -1, math.Inf(1), math.Inf(-1), nan}
	for _, lhs := range values {
		for _, rhs := range values {
			assert.Equal(t, !CmpFOEQ.Apply(lhs, rhs), CmpFUNE.Apply(lhs, rhs),
				"UNE(%v, %v) should be the negation of OEQ", lhs, rhs)
		}
	}
}

func TestPredicateToMLIR(t *testing.T) {
	assert.Equal(t, "slt", CmpISlt.ToMLIR())
	assert.Equal(t, "sge", CmpISge.ToMLIR())
	assert.Equal(t, "oeq", CmpFOEQ.ToMLIR())
	assert.Equal(t, "une", CmpFUNE.ToMLIR())
	assert.True(t, CmpFOLE.IsOrdered())
	assert.False(t, CmpFUNE.IsOrdered())
}
