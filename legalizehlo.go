// Package legalizehlo implements a legalization pass: it rewrites high-level
// tensor-algebra operations (StableHLO-style compare and iota) into equivalent
// lower-level, generic operations (predicated std.cmpi/std.cmpf and dense
// constants), so later pipeline stages only need to understand the generic form.
//
// Among its pieces:
//
//   - A rewrite-rule contract (Pattern) every lowering rule implements.
//   - The built-in rules: integer compare, float compare and iota materialization.
//   - A fixpoint driver (Legalizer) that applies rules across a function body
//     until no further rewrite applies.
//
// The pass never changes the abstract numerical result of a program, only restates
// operations in lower-level primitives. Comparison operands with differing shapes
// are not supported (no broadcasting); such operations are left untouched for other
// passes.
package legalizehlo
