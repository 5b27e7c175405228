package gadgets

import (
	"testing"

	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/lookup"
	"github.com/stretchr/testify/require"
)

func fieldByte(v byte) field.Element { return field.New(uint64(v)) }

func failingZeroChecks(t *testing.T, cs *circuit.ConstraintSystem, w *circuit.Witness, row int) []string {
	t.Helper()
	witIn, fixed := w.Row(row)
	var failures []string
	for _, nc := range cs.ZeroChecks() {
		if !expr.Evaluate(nc.Expr, fixed, witIn, nil).IsZero() {
			failures = append(failures, nc.Name)
		}
	}
	return failures
}

func limbCols(cs *circuit.ConstraintSystem, prefix string, n int) []*expr.Expression {
	cols := make([]*expr.Expression, n)
	for i := range cols {
		cols[i] = cs.CreateWitIn(prefix)
	}
	return cols
}

func setLimbs(w *circuit.Witness, cols []*expr.Expression, row int, vals []byte) {
	for i, c := range cols {
		w.Set(c.ColumnID(), row, fieldByte(vals[i]))
	}
}

func TestIsEqualGadget(t *testing.T) {
	cs := circuit.New()
	a := limbCols(cs, "a", 4)
	b := limbCols(cs, "b", 4)
	cfg := NewIsEqual(cs, "eq", a, b)
	w, err := circuit.NewWitness(cs, 1)
	require.NoError(t, err)

	setLimbs(w, a, 0, []byte{0x10, 0x10, 0xAD, 0xBE})
	setLimbs(w, b, 0, []byte{0x10, 0x10, 0xAD, 0xBE})
	require.True(t, cfg.Assign(w, 0, []byte{0x10, 0x10, 0xAD, 0xBE}, []byte{0x10, 0x10, 0xAD, 0xBE}))
	require.Empty(t, failingZeroChecks(t, cs, w, 0))

	setLimbs(w, b, 0, []byte{0x20, 0x10, 0xAD, 0xBE})
	require.False(t, cfg.Assign(w, 0, []byte{0x10, 0x10, 0xAD, 0xBE}, []byte{0x20, 0x10, 0xAD, 0xBE}))
	require.Empty(t, failingZeroChecks(t, cs, w, 0))
}

func TestLtuGadget(t *testing.T) {
	cases := []struct {
		a, b []byte
		want bool
	}{
		{[]byte{0xFE, 0xFF, 0xFF, 0xFF}, []byte{0xFF, 0xFF, 0xFF, 0xFF}, true},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF}, []byte{0xFF, 0xFF, 0xFF, 0xFF}, false},
		{[]byte{0x01, 0x00, 0x00, 0x00}, []byte{0x00, 0x00, 0x00, 0x01}, false},
		{[]byte{0x00, 0x00, 0x00, 0x01}, []byte{0x01, 0x00, 0x00, 0x00}, true},
	}
	for _, c := range cases {
		cs := circuit.New()
		a := limbCols(cs, "a", 4)
		b := limbCols(cs, "b", 4)
		cfg := NewLtu(cs, "ltu", a, b)
		w, err := circuit.NewWitness(cs, 1)
		require.NoError(t, err)
		setLimbs(w, a, 0, c.a)
		setLimbs(w, b, 0, c.b)

		got := cfg.Assign(w, 0, c.a, c.b, lookup.NewMultiplicity())
		require.Equal(t, c.want, got)
		require.Empty(t, failingZeroChecks(t, cs, w, 0))
	}
}

func TestLtGadgetSigned(t *testing.T) {
	cases := []struct {
		a, b []byte // little-endian two's complement 32-bit
		want bool
	}{
		// -10 < -9
		{u32le(uint32(int32(-10))), u32le(uint32(int32(-9))), true},
		// 1 < -10 is false
		{u32le(uint32(int32(1))), u32le(uint32(int32(-10))), false},
	}
	for _, c := range cases {
		cs := circuit.New()
		a := limbCols(cs, "a", 4)
		b := limbCols(cs, "b", 4)
		cfg := NewLt(cs, "lt", a, b)
		w, err := circuit.NewWitness(cs, 1)
		require.NoError(t, err)
		setLimbs(w, a, 0, c.a)
		setLimbs(w, b, 0, c.b)

		got := cfg.Assign(w, 0, c.a, c.b, lookup.NewMultiplicity())
		require.Equal(t, c.want, got)
		require.Empty(t, failingZeroChecks(t, cs, w, 0))
	}
}

func TestAssertLtGadget(t *testing.T) {
	cs := circuit.New()
	a := limbCols(cs, "a", 4)
	b := limbCols(cs, "b", 4)
	cfg := NewAssertLt(cs, "assert_lt", a, b)
	w, err := circuit.NewWitness(cs, 1)
	require.NoError(t, err)

	lhs := u32le(uint32(int32(-10)))
	rhs := u32le(uint32(int32(-9)))
	setLimbs(w, a, 0, lhs)
	setLimbs(w, b, 0, rhs)
	cfg.Assign(w, 0, lhs, rhs, lookup.NewMultiplicity())
	require.Empty(t, failingZeroChecks(t, cs, w, 0))
}

func u32le(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
