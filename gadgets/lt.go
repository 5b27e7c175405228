package gadgets

import (
	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/lookup"
)

// LtConfig is the signed less-than gadget: two Msb splits plus one Ltu
// over the non-sign bits, combined as
//
//	is_lt = lhs_msb*(1-rhs_msb) + msb_is_equal*is_ltu
//
// which is 0 or 1 since the two terms are mutually exclusive (the first
// is non-zero only when the sign bits differ, the second only when they
// agree).
type LtConfig struct {
	LhsMsb     *MsbConfig
	RhsMsb     *MsbConfig
	MsbIsEqual *expr.Expression
	MsbDiffInv *expr.Expression // lhs_msb - rhs_msb, not an inverse; kept for parity with the gadget this is ported from.
	Ltu        *LtuConfig
	IsLt       *expr.Expression
}

// NewLt registers the signed less-than gadget over two's-complement
// limb vectors, MSB-first.
func NewLt(cs *circuit.ConstraintSystem, name string, lhs, rhs []*expr.Expression) *LtConfig {
	n := len(lhs)
	lhsMsb := NewMsb(cs, name+".lhs_msb", lhs[n-1])
	rhsMsb := NewMsb(cs, name+".rhs_msb", rhs[n-1])

	msbDiff := expr.Sum(lhsMsb.Msb, expr.Neg(rhsMsb.Msb))
	msbDiffInv := cs.CreateWitIn(name + ".msb_diff_inv")
	cs.RequireEqual(msbDiffInv, msbDiff)

	// msb_diff is in {-1,0,1}; its square is 0 iff the sign bits agree.
	msbIsEqual := cs.CreateWitIn(name + ".msb_is_equal")
	cs.RequireEqual(msbIsEqual, expr.Sum(expr.One, expr.Neg(expr.Product(msbDiff, msbDiff))))

	ltuLhs := append(append([]*expr.Expression{}, lhs[:n-1]...), lhsMsb.HighLimbNoMsb)
	ltuRhs := append(append([]*expr.Expression{}, rhs[:n-1]...), rhsMsb.HighLimbNoMsb)
	ltu := NewLtu(cs, name+".ltu", ltuLhs, ltuRhs)

	isLt := cs.CreateWitIn(name + ".is_lt")
	isLtExpr := expr.Sum(
		expr.Product(lhsMsb.Msb, expr.Sum(expr.One, expr.Neg(rhsMsb.Msb))),
		expr.Product(msbIsEqual, ltu.IsLtu),
	)
	cs.RequireEqual(isLt, isLtExpr)

	return &LtConfig{
		LhsMsb:     lhsMsb,
		RhsMsb:     rhsMsb,
		MsbIsEqual: msbIsEqual,
		MsbDiffInv: msbDiffInv,
		Ltu:        ltu,
		IsLt:       isLt,
	}
}

// Assign populates one witness row from two's-complement limb vectors,
// threads m through the Msb/Ltu sub-gadgets it composes, and returns
// lhs < rhs (signed).
func (cfg *LtConfig) Assign(w *circuit.Witness, row int, lhs, rhs []byte, m lookup.Multiplicity) bool {
	n := len(lhs)
	lhsMsb, lhsNoMsb := cfg.LhsMsb.Assign(w, row, lhs[n-1], m)
	rhsMsb, rhsNoMsb := cfg.RhsMsb.Assign(w, row, rhs[n-1], m)

	lhsNoMsbLimbs := append(append([]byte{}, lhs[:n-1]...), lhsNoMsb)
	rhsNoMsbLimbs := append(append([]byte{}, rhs[:n-1]...), rhsNoMsb)
	isLtu := cfg.Ltu.Assign(w, row, lhsNoMsbLimbs, rhsNoMsbLimbs, m)

	msbIsEqual := lhsMsb == rhsMsb
	msbDiff := int64(lhsMsb) - int64(rhsMsb)
	var msbDiffVal field.Element
	if msbIsEqual {
		msbDiffVal = field.Zero()
	} else if msbDiff < 0 {
		msbDiffVal = field.New(uint64(int64(field.Modulus) + msbDiff))
	} else {
		msbDiffVal = field.New(uint64(msbDiff))
	}
	w.Set(cfg.MsbDiffInv.ColumnID(), row, msbDiffVal)

	eqVal := field.Zero()
	if msbIsEqual {
		eqVal = field.One()
	}
	w.Set(cfg.MsbIsEqual.ColumnID(), row, eqVal)

	isLt := lhsMsb == 1 && rhsMsb == 0
	if msbIsEqual {
		isLt = isLtu
	}
	result := field.Zero()
	if isLt {
		result = field.One()
	}
	w.Set(cfg.IsLt.ColumnID(), row, result)
	return isLt
}
