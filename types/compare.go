// Package types defines the enums shared by the legalization engine: the high-level
// comparison direction and the lowered, type-specific comparison predicates.
package types

import (
	"fmt"
	"math"
)

// ComparisonDirection enum defined for the Compare op.
//
// On the wire (as an operation attribute) the direction is one of the six strings
// "EQ", "GE", "GT", "LE", "LT" or "NE"; use DirectionFromAttribute to parse it.
type ComparisonDirection int

//go:generate go tool enumer -type=ComparisonDirection -trimprefix=Compare -output=gen_comparisondirection_enumer.go compare.go

const (
	CompareEQ ComparisonDirection = iota
	CompareGE
	CompareGT
	CompareLE
	CompareLT
	CompareNE
)

// DirectionFromAttribute parses the attribute string of a Compare operation.
// It returns ok=false for any string that is not one of the six recognized
// directions -- an unrecognized direction is not a legalization target.
//
// Matching is exact: only the uppercase wire form is accepted, so "eq" or
// "Eq" are not recognized.
func DirectionFromAttribute(attr string) (ComparisonDirection, bool) {
	direction, err := ComparisonDirectionString(attr)
	if err != nil || direction.String() != attr {
		// ComparisonDirectionString also accepts lowercase spellings, which are
		// not valid on the wire.
		return 0, false
	}
	return direction, true
}

// CmpIPredicate is the predicate carried by a lowered integer compare (std.cmpi)
// operation. All integer comparisons emitted by the legalization are signed.
type CmpIPredicate int

const (
	CmpIEq CmpIPredicate = iota
	CmpINe
	CmpISlt
	CmpISle
	CmpISgt
	CmpISge
)

// ToMLIR returns the textual predicate token used by std.cmpi.
func (p CmpIPredicate) ToMLIR() string {
	switch p {
	case CmpIEq:
		return "eq"
	case CmpINe:
		return "ne"
	case CmpISlt:
		return "slt"
	case CmpISle:
		return "sle"
	case CmpISgt:
		return "sgt"
	case CmpISge:
		return "sge"
	}
	return fmt.Sprintf("cmpi_unknown_%d", p)
}

// String implements fmt.Stringer.
func (p CmpIPredicate) String() string { return p.ToMLIR() }

// Apply evaluates the predicate on two signed integer values.
func (p CmpIPredicate) Apply(lhs, rhs int64) bool {
	switch p {
	case CmpIEq:
		return lhs == rhs
	case CmpINe:
		return lhs != rhs
	case CmpISlt:
		return lhs < rhs
	case CmpISle:
		return lhs <= rhs
	case CmpISgt:
		return lhs > rhs
	case CmpISge:
		return lhs >= rhs
	}
	return false
}

// CmpFPredicate is the predicate carried by a lowered float compare (std.cmpf)
// operation.
//
// Ordered predicates ("o" prefix) are false whenever either operand is NaN;
// unordered predicates ("u" prefix) are true whenever either operand is NaN.
// Equality is conventionally ordered and inequality unordered, so that NE stays
// the logical negation of EQ even in the presence of NaN.
type CmpFPredicate int

const (
	CmpFOEQ CmpFPredicate = iota
	CmpFUNE
	CmpFOLT
	CmpFOLE
	CmpFOGT
	CmpFOGE
)

// ToMLIR returns the textual predicate token used by std.cmpf.
func (p CmpFPredicate) ToMLIR() string {
	switch p {
	case CmpFOEQ:
		return "oeq"
	case CmpFUNE:
		return "une"
	case CmpFOLT:
		return "olt"
	case CmpFOLE:
		return "ole"
	case CmpFOGT:
		return "ogt"
	case CmpFOGE:
		return "oge"
	}
	return fmt.Sprintf("cmpf_unknown_%d", p)
}

// String implements fmt.Stringer.
func (p CmpFPredicate) String() string { return p.ToMLIR() }

// IsOrdered returns whether the predicate is an ordered one (false on NaN operands).
func (p CmpFPredicate) IsOrdered() bool { return p != CmpFUNE }

// Apply evaluates the predicate on two float values with IEEE NaN semantics.
func (p CmpFPredicate) Apply(lhs, rhs float64) bool {
	if math.IsNaN(lhs) || math.IsNaN(rhs) {
		return !p.IsOrdered()
	}
	switch p {
	case CmpFOEQ:
		return lhs == rhs
	case CmpFUNE:
		return lhs != rhs
	case CmpFOLT:
		return lhs < rhs
	case CmpFOLE:
		return lhs <= rhs
	case CmpFOGT:
		return lhs > rhs
	case CmpFOGE:
		return lhs >= rhs
	}
	return false
}

var (
	intPredicates = map[ComparisonDirection]CmpIPredicate{
		CompareEQ: CmpIEq,
		CompareNE: CmpINe,
		CompareLT: CmpISlt,
		CompareLE: CmpISle,
		CompareGT: CmpISgt,
		CompareGE: CmpISge,
	}

	floatPredicates = map[ComparisonDirection]CmpFPredicate{
		CompareEQ: CmpFOEQ,
		CompareNE: CmpFUNE,
		CompareLT: CmpFOLT,
		CompareLE: CmpFOLE,
		CompareGT: CmpFOGT,
		CompareGE: CmpFOGE,
	}
)

// IntPredicateForDirection maps a comparison direction to the signed integer
// predicate the legalization emits for it.
func IntPredicateForDirection(direction ComparisonDirection) (CmpIPredicate, bool) {
	p, ok := intPredicates[direction]
	return p, ok
}

// FloatPredicateForDirection maps a comparison direction to the float predicate
// the legalization emits for it.
func FloatPredicateForDirection(direction ComparisonDirection) (CmpFPredicate, bool) {
	p, ok := floatPredicates[direction]
	return p, ok
}
