package gadgets

import (
	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/lookup"
)

// MsbConfig splits a byte-valued limb into its high bit and the
// remaining 7 bits.
type MsbConfig struct {
	Msb           *expr.Expression
	HighLimbNoMsb *expr.Expression
}

// NewMsb registers the MSB-split gadget over highLimb: constrains
// highLimb = 128*msb + high_limb_no_msb, msb boolean, and range-checks
// high_limb_no_msb via the U8 table (its range, [0,128), is a subset of
// U8's [0,256) — there is no dedicated 7-bit table in the catalogue).
func NewMsb(cs *circuit.ConstraintSystem, name string, highLimb *expr.Expression) *MsbConfig {
	msb := cs.CreateWitIn(name + ".msb")
	highNoMsb := cs.CreateWitIn(name + ".high_limb_no_msb")

	combined := expr.NewScaledSum(msb, expr.NewConstant(128), highNoMsb)
	cs.RequireEqual(highLimb, combined)
	cs.RequireZero(name+".msb_bool", boolConstraint(msb))
	cs.AddLookup(name+".high_limb_no_msb_range", lookup.U8, highNoMsb)

	return &MsbConfig{Msb: msb, HighLimbNoMsb: highNoMsb}
}

// Assign populates one witness row from a concrete high-limb byte value,
// records the U8 range-check lookup it argues into m, and returns (msb,
// high_limb_no_msb).
func (cfg *MsbConfig) Assign(w *circuit.Witness, row int, highLimb byte, m lookup.Multiplicity) (byte, byte) {
	msb := (highLimb >> 7) & 1
	highNoMsb := highLimb & 0x7F
	w.Set(cfg.Msb.ColumnID(), row, field.New(uint64(msb)))
	w.Set(cfg.HighLimbNoMsb.ColumnID(), row, field.New(uint64(highNoMsb)))
	if m != nil {
		m.Add(lookup.U8, lookup.Key(uint64(highNoMsb)))
	}
	return msb, highNoMsb
}
