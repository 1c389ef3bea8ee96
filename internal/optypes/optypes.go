// Package optypes defines OpType and lists the operations the legalization engine understands.
//
// The high-level ops (Compare, Iota, ...) are the legalization sources; CmpI, CmpF and
// Constant are the lowered forms the engine produces.
package optypes

import (
	"fmt"

	"github.com/gomlx/legalizehlo/internal/utils"
)

// OpType is an enum of the operations the legalization engine knows about.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota
	FuncReturn
	Constant
	Compare
	Iota
	CmpI
	CmpF
	Add
	Subtract
	Multiply

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

var (
	// dialectMappings maps OpType to the corresponding dialect op name, when the default
	// "stablehlo.<snake case>" doesn't work. The lowered ops live in the standard dialect.
	dialectMappings = map[OpType]string{
		FuncReturn: "func.return",
		Constant:   "std.constant",
		CmpI:       "std.cmpi",
		CmpF:       "std.cmpf",
	}
)

// DialectName returns the dialect-qualified textual name of the operation.
func (op OpType) DialectName() string {
	name, ok := dialectMappings[op]
	if !ok {
		name = fmt.Sprintf("stablehlo.%s", utils.ToSnakeCase(op.String()))
	}
	return name
}
