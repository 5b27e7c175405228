package mockprover_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/gadgets"
	"github.com/ceno-labs/zkvm-core/lookup"
	"github.com/ceno-labs/zkvm-core/mockprover"
)

// challenges compresses byte tuples as a + b*2^16 + c*2^32, which keeps
// distinct tuples distinct; a challenge of 1 would not (a+b+c).
var challenges = []fext.Element{fext.FromBase(field.New(1 << 16))}

func limbCols(cs *circuit.ConstraintSystem, prefix string, n int) []*expr.Expression {
	cols := make([]*expr.Expression, n)
	for i := range cols {
		cols[i] = cs.CreateWitIn(prefix)
	}
	return cols
}

func setLimbs(w *circuit.Witness, cols []*expr.Expression, row int, vals []byte) {
	for i, c := range cols {
		w.Set(c.ColumnID(), row, field.New(uint64(vals[i])))
	}
}

// buildLtu wires a single Ltu gadget as the whole circuit, so its
// zero-checks and its one lookup argument are the only checks in play.
func buildLtu(t *testing.T) (cs *circuit.ConstraintSystem, a, b []*expr.Expression, cfg *gadgets.LtuConfig, w *circuit.Witness) {
	t.Helper()
	cs = circuit.New()
	a = limbCols(cs, "a", 4)
	b = limbCols(cs, "b", 4)
	cfg = gadgets.NewLtu(cs, "ltu", a, b)
	w, err := circuit.NewWitness(cs, 1)
	require.NoError(t, err)
	return cs, a, b, cfg, w
}

// TestRunSatisfiedWitness checks the four-step mock prover (spec.md §4.2)
// passes clean on a correctly assigned Ltu witness: zero-checks hold, the
// argued byte comparison is a member of the Ltu table, and the witness
// side's recorded multiplicity matches what Run itself predicts from the
// satisfied lookups.
func TestRunSatisfiedWitness(t *testing.T) {
	cs, a, b, cfg, w := buildLtu(t)
	lhs, rhs := []byte{0xFE, 0xFF, 0xFF, 0xFF}, []byte{0xFF, 0xFF, 0xFF, 0xFF}
	setLimbs(w, a, 0, lhs)
	setLimbs(w, b, 0, rhs)

	assigned := lookup.NewMultiplicity()
	got := cfg.Assign(w, 0, lhs, rhs, assigned)
	require.True(t, got)

	result := mockprover.Run(cs, w, challenges, nil, assigned)
	require.True(t, result.OK(), "zero=%v lookup=%v multiplicity=%v", result.ZeroErrors, result.LookupErrors, result.MultiplicityErrors)
}

// TestRunMultiplicityMismatch breaks the fourth check deliberately: the
// witness satisfies every zero-check and lookup membership test, but the
// caller's recorded multiplicity disagrees with what Run predicts, which
// must surface as a MultiplicityErrors entry and nothing else.
func TestRunMultiplicityMismatch(t *testing.T) {
	cs, a, b, cfg, w := buildLtu(t)
	lhs, rhs := []byte{0xFE, 0xFF, 0xFF, 0xFF}, []byte{0xFF, 0xFF, 0xFF, 0xFF}
	setLimbs(w, a, 0, lhs)
	setLimbs(w, b, 0, rhs)

	assigned := lookup.NewMultiplicity()
	got := cfg.Assign(w, 0, lhs, rhs, assigned)
	require.True(t, got)

	// Forge an extra, unrelated entry into the recorded side so it no
	// longer matches what Run derives from the satisfied lookups.
	assigned.Add(lookup.Ltu, lookup.Key(0, 0, 0))

	result := mockprover.Run(cs, w, challenges, nil, assigned)
	require.Empty(t, result.ZeroErrors)
	require.Empty(t, result.LookupErrors)
	require.NotEmpty(t, result.MultiplicityErrors)
	require.False(t, result.OK())
}

// TestRunLookupMembershipFailure breaks the third check: is_ltu is
// flipped to the wrong boolean. Nothing else in the gadget constrains
// is_ltu to the byte comparison's actual outcome except the lookup
// itself, so the bool-constraint zero-check still holds while the
// argued (lhs_ne_byte, rhs_ne_byte, is_ltu) triple is no longer a member
// of the Ltu table.
func TestRunLookupMembershipFailure(t *testing.T) {
	cs, a, b, cfg, w := buildLtu(t)
	lhs, rhs := []byte{0xFE, 0xFF, 0xFF, 0xFF}, []byte{0xFF, 0xFF, 0xFF, 0xFF}
	setLimbs(w, a, 0, lhs)
	setLimbs(w, b, 0, rhs)

	assigned := lookup.NewMultiplicity()
	got := cfg.Assign(w, 0, lhs, rhs, assigned)
	require.True(t, got)

	wrong := field.Zero()
	if !got {
		wrong = field.One()
	}
	w.Set(cfg.IsLtu.ColumnID(), 0, wrong)

	result := mockprover.Run(cs, w, challenges, nil, assigned)
	require.Empty(t, result.ZeroErrors)
	require.NotEmpty(t, result.LookupErrors)
	require.False(t, result.OK())
}
