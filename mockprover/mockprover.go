// Package mockprover implements the non-cryptographic circuit checker
// spec.md §4.2 describes: given a fully populated witness, it replays
// every zero-check, require_equal pair, lookup membership test, and
// lookup-multiplicity balance a real prover's sumcheck/BaseFold pipeline
// would otherwise only fail at cryptographically, and reports exactly
// which row and namespace went wrong.
package mockprover

import (
	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/lookup"
)

// AssertZeroError is one row where a registered zero-check evaluated to
// a nonzero value.
type AssertZeroError struct {
	Name string
	Row  int
}

// AssertEqualError is one row where a require_equal pair's two sides
// disagree, carrying both evaluated sides instead of just the nonzero
// difference a plain AssertZeroError would show.
type AssertEqualError struct {
	Name        string
	Row         int
	Left, Right fext.Element
}

// LookupError is one row where a lookup expression's value was not a
// member of its ROM table.
type LookupError struct {
	Name    string
	Row     int
	ROMType lookup.ROMType
}

// Result collects every violation found by the four checks spec.md §4.2
// runs, in row order within each check.
type Result struct {
	ZeroErrors         []AssertZeroError
	EqualErrors        []AssertEqualError
	LookupErrors       []LookupError
	MultiplicityErrors []lookup.KeyDiff
}

// OK reports whether every check passed.
func (r *Result) OK() bool {
	return len(r.ZeroErrors) == 0 && len(r.EqualErrors) == 0 &&
		len(r.LookupErrors) == 0 && len(r.MultiplicityErrors) == 0
}

// Run checks w against cs under challenges, the four mock-prover steps of
// spec.md §4.2:
//
//  1. every registered zero-check evaluates to zero on every row;
//  2. every require_equal pair's two sides, evaluated separately, agree;
//  3. every lookup expression's value lands in its ROM table, compressed
//     under the same challenges the constraint system's CompressExpr used;
//  4. the lookup counts Run itself derives from the satisfied lookups
//     (the CS-predicted side) match assigned (the bookkeeping a real
//     witness-population pass records as it argues each lookup).
//
// tables optionally supplies a precomputed romType -> (compressed value ->
// key) map, as lookup.TableWithKeys returns; a romType missing from tables
// is built on demand, except lookup.Instruction, which has no fixed
// content and so must be supplied by the caller.
func Run(cs *circuit.ConstraintSystem, w *circuit.Witness, challenges []fext.Element, tables map[lookup.ROMType]map[fext.Element]uint64, assigned lookup.Multiplicity) *Result {
	result := &Result{}
	predicted := lookup.NewMultiplicity()

	resolved := make(map[lookup.ROMType]map[fext.Element]uint64, len(tables))
	for romType, table := range tables {
		resolved[romType] = table
	}

	for row := 0; row < w.NumRows; row++ {
		witIn, fixed := w.Row(row)

		for _, nc := range cs.ZeroChecks() {
			v := expr.Evaluate(nc.Expr, fixed, witIn, challenges)
			if !v.IsZero() {
				result.ZeroErrors = append(result.ZeroErrors, AssertZeroError{Name: nc.Name, Row: row})
			}
			if nc.Name == "require_equal" {
				if left, right, ok := splitRequireEqual(nc.Expr, fixed, witIn, challenges); ok && !left.Equal(right) {
					result.EqualErrors = append(result.EqualErrors, AssertEqualError{Name: nc.Name, Row: row, Left: left, Right: right})
				}
			}
		}

		for _, lk := range cs.Lookups() {
			table, ok := resolved[lk.ROMType]
			if !ok {
				table = lookup.TableWithKeys(lk.ROMType, challenges)
				resolved[lk.ROMType] = table
			}

			v := expr.Evaluate(lk.Expr, fixed, witIn, challenges)
			key, member := table[v]
			if !member {
				result.LookupErrors = append(result.LookupErrors, LookupError{Name: lk.Name, Row: row, ROMType: lk.ROMType})
				continue
			}
			predicted.Add(lk.ROMType, key)
		}
	}

	result.MultiplicityErrors = predicted.Diff(assigned)
	return result
}

// splitRequireEqual recovers a and b from a circuit.RequireEqual-built
// expression (a + (-1)*b) and evaluates them separately. ok is false for
// a "require_equal"-named zero-check that wasn't built this way.
func splitRequireEqual(e *expr.Expression, fixed, witIn, challenges []fext.Element) (left, right fext.Element, ok bool) {
	if e.Kind() != expr.KindSum {
		return fext.Element{}, fext.Element{}, false
	}
	_, a, negB := e.Operands()
	if negB.Kind() != expr.KindProduct {
		return fext.Element{}, fext.Element{}, false
	}
	_, negOne, b := negB.Operands()
	if negOne.Kind() != expr.KindConstant {
		return fext.Element{}, fext.Element{}, false
	}
	left = expr.Evaluate(a, fixed, witIn, challenges)
	right = expr.Evaluate(b, fixed, witIn, challenges)
	return left, right, true
}
