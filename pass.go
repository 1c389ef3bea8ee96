package legalizehlo

import (
	"github.com/gomlx/legalizehlo/ir"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// PassName is the stable identifier of this legalization stage, for pass-scheduling
// subsystems that select passes by name.
const PassName = "legalize-to-standard"

// DefaultMaxSweeps bounds the fixpoint iteration. The built-in rules are strictly
// lowering (each replacement removes one high-level op and never introduces one), so
// in practice convergence takes few sweeps; the ceiling guards against buggy or
// non-monotonic externally registered patterns.
const DefaultMaxSweeps = 100

// Stats accumulates the work done by a Legalizer across Run calls.
type Stats struct {
	// Sweeps is the number of full passes over the function body.
	Sweeps int

	// Replacements is the number of operations rewritten.
	Replacements int
}

// Legalizer rewrites the operations of one function body at a time into their
// lower-level equivalents, until no rule applies anymore.
//
// A Legalizer is not safe for concurrent use: a single function body's rewriting
// must not be parallelized, since convergence depends on observing the effects of
// prior replacements. Independent function bodies can be legalized by independent
// Legalizer instances.
type Legalizer struct {
	patterns  []Pattern
	maxSweeps int
	stats     Stats
}

// Option configures a Legalizer.
type Option func(*Legalizer)

// WithMaxSweeps overrides DefaultMaxSweeps as the sweep ceiling.
func WithMaxSweeps(n int) Option {
	return func(l *Legalizer) { l.maxSweeps = n }
}

// WithPatterns registers externally supplied patterns -- typically a table generated
// from a declarative rule description. They are tried before the built-in patterns,
// in the order given; within one operation the first pattern that matches wins.
func WithPatterns(patterns ...Pattern) Option {
	return func(l *Legalizer) { l.patterns = append(l.patterns, patterns...) }
}

// New creates a Legalizer with the built-in lowering patterns (and any patterns
// registered through options).
func New(options ...Option) *Legalizer {
	l := &Legalizer{maxSweeps: DefaultMaxSweeps}
	for _, option := range options {
		option(l)
	}
	l.patterns = append(l.patterns, BuiltinPatterns()...)
	return l
}

// BuiltinPatterns returns the lowering rules this package defines: float compare,
// integer compare and iota materialization. Integrators that drive their own rewrite
// loop can merge these into their own pattern list.
func BuiltinPatterns() []Pattern {
	return []Pattern{
		compareFloatPattern{},
		compareIntPattern{},
		iotaPattern{},
	}
}

// Run rewrites the function body in place until a full sweep produces no
// replacement (the fixpoint) or the sweep ceiling is exceeded.
//
// A non-nil error means the function body may have been partially legalized:
// individual replacements are atomic, but replacements committed by earlier
// sweeps are not rolled back.
func (l *Legalizer) Run(fn *ir.Function) error {
	for sweep := 0; sweep < l.maxSweeps; sweep++ {
		replacements, err := l.sweep(fn)
		l.stats.Sweeps++
		l.stats.Replacements += replacements
		if err != nil {
			return errors.WithMessagef(err, "pass %q failed on function %q", PassName, fn.Name)
		}
		klog.V(1).Infof("%s: function %q sweep %d applied %d replacements", PassName, fn.Name, sweep, replacements)
		if replacements == 0 {
			return nil
		}
	}
	return errors.Errorf("pass %q did not converge on function %q after %d sweeps; "+
		"some registered pattern keeps producing rewritable operations", PassName, fn.Name, l.maxSweeps)
}

// Stats returns the accumulated counters of this Legalizer.
func (l *Legalizer) Stats() Stats {
	return l.stats
}

// sweep offers every operation currently in the body to the patterns, applying the
// first match per operation, and returns how many replacements were committed.
func (l *Legalizer) sweep(fn *ir.Function) (int, error) {
	replacements := 0
	for i := 0; i < len(fn.Operations); i++ {
		op := fn.Operations[i]
		for _, pattern := range l.patterns {
			if pattern.OpType() != op.OpType {
				continue
			}
			rep, err := pattern.MatchAndRewrite(op)
			if err != nil {
				return replacements, err
			}
			if rep == nil {
				continue
			}
			if err := apply(fn, op, rep); err != nil {
				return replacements, err
			}
			klog.V(2).Infof("%s: replaced %s at position %d", PassName, op.OpType, i)
			replacements++
			if rep.Value != nil {
				// The operation was removed rather than substituted in place;
				// the next operation now occupies this position.
				i--
			}
			break
		}
	}
	return replacements, nil
}
