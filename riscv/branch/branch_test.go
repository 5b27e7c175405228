package branch

import (
	"testing"

	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/lookup"
	"github.com/ceno-labs/zkvm-core/mockprover"
	"github.com/stretchr/testify/require"
)

// challenges is the fixed compression vector these tests argue lookups
// under; a real prover draws it from the transcript, but the mock
// prover's four checks (spec.md §4.2) need it to be the same vector the
// constraint side and the table side both compress against, and one under
// which distinct tuples compress to distinct values (2^16 keeps byte
// tuples apart; 1 would not).
var challenges = []fext.Element{fext.FromBase(field.New(1 << 16))}

func assertSatisfied(t *testing.T, cs *circuit.ConstraintSystem, w *circuit.Witness, assigned lookup.Multiplicity) {
	t.Helper()
	mockprover.AssertSatisfied(t, cs, w, challenges, nil, assigned)
}

// S1. BEQ taken.
func TestBeqTaken(t *testing.T) {
	cs := circuit.New()
	c := NewBeq(cs, "beq")
	w, err := circuit.NewWitness(cs, 1)
	require.NoError(t, err)

	const m = uint32(0x1000)
	assigned := lookup.NewMultiplicity()
	next := c.Assign(w, 0, m, 0xBEAD1010, 0xBEAD1010, 8, assigned)
	require.Equal(t, m+8, next)
	assertSatisfied(t, cs, w, assigned)
}

// S2. BEQ not taken.
func TestBeqNotTaken(t *testing.T) {
	cs := circuit.New()
	c := NewBeq(cs, "beq")
	w, err := circuit.NewWitness(cs, 1)
	require.NoError(t, err)

	const m = uint32(0x1000)
	assigned := lookup.NewMultiplicity()
	next := c.Assign(w, 0, m, 0xBEAD1010, 0xEF552020, 8, assigned)
	require.Equal(t, m+4, next)
	assertSatisfied(t, cs, w, assigned)
}

// S3. BLTU boundary.
func TestBltuBoundary(t *testing.T) {
	cs := circuit.New()
	c := NewBltu(cs, "bltu")
	w, err := circuit.NewWitness(cs, 1)
	require.NoError(t, err)

	const m = uint32(0x2000)
	assigned := lookup.NewMultiplicity()
	next := c.Assign(w, 0, m, 0xFFFFFFFE, 0xFFFFFFFF, -8, assigned)
	require.Equal(t, m-8, next)
	assertSatisfied(t, cs, w, assigned)

	cs2 := circuit.New()
	c2 := NewBltu(cs2, "bltu")
	w2, err := circuit.NewWitness(cs2, 1)
	require.NoError(t, err)
	assigned2 := lookup.NewMultiplicity()
	next2 := c2.Assign(w2, 0, m, 0xFFFFFFFF, 0xFFFFFFFF, -8, assigned2)
	require.Equal(t, m+4, next2)
	assertSatisfied(t, cs2, w2, assigned2)
}

// S4. BLT signed.
func TestBltSigned(t *testing.T) {
	cs := circuit.New()
	c := NewBlt(cs, "blt")
	w, err := circuit.NewWitness(cs, 1)
	require.NoError(t, err)

	const m = uint32(0x3000)
	assigned := lookup.NewMultiplicity()
	next := c.Assign(w, 0, m, uint32(int32(-10)), uint32(int32(-9)), 8, assigned)
	require.Equal(t, m+8, next)
	assertSatisfied(t, cs, w, assigned)

	cs2 := circuit.New()
	c2 := NewBlt(cs2, "blt")
	w2, err := circuit.NewWitness(cs2, 1)
	require.NoError(t, err)
	assigned2 := lookup.NewMultiplicity()
	next2 := c2.Assign(w2, 0, m, uint32(int32(1)), uint32(int32(-10)), 8, assigned2)
	require.Equal(t, m+4, next2)
	assertSatisfied(t, cs2, w2, assigned2)
}

func TestBneBgeuBge(t *testing.T) {
	cs := circuit.New()
	bne := NewBne(cs, "bne")
	bgeu := NewBgeu(cs, "bgeu")
	bge := NewBge(cs, "bge")
	w, err := circuit.NewWitness(cs, 1)
	require.NoError(t, err)

	assigned := lookup.NewMultiplicity()
	require.Equal(t, uint32(0x104), bne.Assign(w, 0, 0x100, 1, 2, 4, assigned))
	require.Equal(t, uint32(0x204), bgeu.Assign(w, 0, 0x200, 5, 5, 4, assigned))
	require.Equal(t, uint32(0x304), bge.Assign(w, 0, 0x300, uint32(int32(-1)), uint32(int32(-5)), 4, assigned))
	assertSatisfied(t, cs, w, assigned)
}
