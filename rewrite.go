package legalizehlo

import (
	"github.com/gomlx/legalizehlo/internal/optypes"
	"github.com/gomlx/legalizehlo/ir"
	"github.com/pkg/errors"
)

// Replacement describes the outcome of a successful pattern match: either a new
// (detached) operation to splice in place of the matched one, or an existing value
// its result uses should be redirected to. Exactly one of the two fields is set.
type Replacement struct {
	Op    *ir.Operation
	Value *ir.Value
}

// ReplaceWithOp is a convenience constructor for a Replacement holding a new operation.
func ReplaceWithOp(op *ir.Operation) *Replacement {
	return &Replacement{Op: op}
}

// ReplaceWithValue is a convenience constructor for a Replacement redirecting to an
// existing value.
func ReplaceWithValue(value *ir.Value) *Replacement {
	return &Replacement{Value: value}
}

// Pattern is a rewrite rule: it targets one operation type, and for a candidate
// operation of that type either declines (nil Replacement, nil error) or produces
// a replacement.
//
// A Pattern must be a pure function of the operation and its referenced operands
// and types: no state, no side effects. The driver owns all mutation -- a matched
// replacement is applied atomically, so no pattern ever observes a half-rewritten
// function body.
//
// Declining is the routine outcome when preconditions don't hold (shape mismatch,
// wrong element type, unrecognized attribute value) and carries no diagnostic. A
// non-nil error is reserved for malformed operations -- an operation of the targeted
// type missing attributes or operands the type requires -- and aborts the whole pass,
// since it flags an invariant violation upstream.
type Pattern interface {
	// OpType returns the operation type this pattern targets.
	OpType() optypes.OpType

	// MatchAndRewrite attempts to match op, known to be of OpType. It returns
	// (nil, nil) when the pattern doesn't apply.
	MatchAndRewrite(op *ir.Operation) (*Replacement, error)
}

// apply commits a replacement to the function owning op.
func apply(fn *ir.Function, op *ir.Operation, rep *Replacement) error {
	switch {
	case rep.Op != nil && rep.Value == nil:
		return fn.ReplaceWithOp(op, rep.Op)
	case rep.Value != nil && rep.Op == nil:
		return fn.ReplaceWithValue(op, rep.Value)
	}
	return errors.Errorf("invalid replacement for operation %s: exactly one of Op or Value must be set", op.OpType)
}
