package gadgets

import (
	"fmt"

	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/lookup"
)

// LtuConfig is the unsigned less-than gadget over a limb vector: it
// locates the most-significant differing limb and argues a single
// byte-level Ltu lookup there.
type LtuConfig struct {
	Indexes     []*expr.Expression
	AccIndexes  []*expr.Expression
	ByteDiffInv *expr.Expression
	LhsNeByte   *expr.Expression
	RhsNeByte   *expr.Expression
	IsLtu       *expr.Expression
}

// NewLtu registers the Ltu gadget for lhs < rhs, comparing limb vectors
// MSB-first (lhs[len-1]/rhs[len-1] is the most significant limb).
//
// indexes[i] one-hot selects the first (MSB-down) differing limb;
// acc_indexes is its prefix-OR scanning from the top. Besides the
// relations named in the gadget's design, a limb above the selected
// index must actually be equal — otherwise a prover could claim any
// differing limb is "the" most-significant one — so each limb i is
// constrained equal whenever acc_indexes[i] hasn't flagged, i.e. every
// limb strictly above the selected index.
func NewLtu(cs *circuit.ConstraintSystem, name string, lhs, rhs []*expr.Expression) *LtuConfig {
	n := len(lhs)
	cfg := &LtuConfig{
		Indexes:    make([]*expr.Expression, n),
		AccIndexes: make([]*expr.Expression, n),
	}
	for i := 0; i < n; i++ {
		cfg.Indexes[i] = cs.CreateWitIn(fmt.Sprintf("%s.indexes[%d]", name, i))
		cfg.AccIndexes[i] = cs.CreateWitIn(fmt.Sprintf("%s.acc_indexes[%d]", name, i))
		cs.RequireZero(name+".indexes_bool", boolConstraint(cfg.Indexes[i]))
	}

	cs.RequireEqual(cfg.AccIndexes[n-1], cfg.Indexes[n-1])
	for i := n - 2; i >= 0; i-- {
		cs.RequireEqual(cfg.AccIndexes[i], boolOr(cfg.AccIndexes[i+1], cfg.Indexes[i]))
	}
	for i := n - 1; i >= 0; i-- {
		notYetFlagged := expr.Sum(expr.One, expr.Neg(cfg.AccIndexes[i]))
		cs.RequireZero(name+".equal_above_flag", expr.Product(notYetFlagged, expr.Sum(lhs[i], expr.Neg(rhs[i]))))
	}

	sumIndexes := cfg.Indexes[0]
	for i := 1; i < n; i++ {
		sumIndexes = expr.Sum(sumIndexes, cfg.Indexes[i])
	}
	cs.RequireEqual(cfg.AccIndexes[0], sumIndexes)

	cfg.LhsNeByte = cs.CreateWitIn(name + ".lhs_ne_byte")
	cfg.RhsNeByte = cs.CreateWitIn(name + ".rhs_ne_byte")
	cfg.ByteDiffInv = cs.CreateWitIn(name + ".byte_diff_inv")
	cfg.IsLtu = cs.CreateWitIn(name + ".is_ltu")

	selLhs := weightedSelect(cfg.Indexes, lhs)
	selRhs := weightedSelect(cfg.Indexes, rhs)
	cs.RequireEqual(cfg.LhsNeByte, selLhs)
	cs.RequireEqual(cfg.RhsNeByte, selRhs)
	cs.RequireZero(name+".is_ltu_bool", boolConstraint(cfg.IsLtu))

	cs.AddLookup(name+".ltu_lookup", lookup.Ltu, lookup.CompressExpr(0, cfg.LhsNeByte, cfg.RhsNeByte, cfg.IsLtu))

	return cfg
}

func weightedSelect(indexes, vals []*expr.Expression) *expr.Expression {
	acc := expr.Product(indexes[0], vals[0])
	for i := 1; i < len(indexes); i++ {
		acc = expr.Sum(acc, expr.Product(indexes[i], vals[i]))
	}
	return acc
}

// Assign populates one witness row, scanning lhs/rhs from the most
// significant limb down for the first difference, records the byte-level
// Ltu lookup it argues into m, and returns lhs < rhs.
func (cfg *LtuConfig) Assign(w *circuit.Witness, row int, lhs, rhs []byte, m lookup.Multiplicity) bool {
	n := len(lhs)
	idx := 0
	flag := false
	for i := n - 1; i >= 0; i-- {
		if lhs[i] != rhs[i] {
			idx, flag = i, true
			break
		}
	}

	for i := 0; i < n; i++ {
		v := field.Zero()
		if flag && i == idx {
			v = field.One()
		}
		w.Set(cfg.Indexes[i].ColumnID(), row, v)
	}
	for i := 0; i < n; i++ {
		v := field.Zero()
		if flag && i <= idx {
			v = field.One()
		}
		w.Set(cfg.AccIndexes[i].ColumnID(), row, v)
	}

	// LhsNeByte/RhsNeByte are forced by the weighted-select constraint to
	// sum_i indexes[i]*val[i], which is 0 when no index is flagged (flag
	// false) rather than lhs[idx]/rhs[idx] at the default idx=0.
	lhsByteN, rhsByteN := uint64(0), uint64(0)
	if flag {
		lhsByteN, rhsByteN = uint64(lhs[idx]), uint64(rhs[idx])
	}
	lhsByte := field.New(lhsByteN)
	rhsByte := field.New(rhsByteN)
	w.Set(cfg.LhsNeByte.ColumnID(), row, lhsByte)
	w.Set(cfg.RhsNeByte.ColumnID(), row, rhsByte)

	diffInv := field.One()
	if flag {
		diffInv = lhsByte.Sub(rhsByte).Inverse()
	}
	w.Set(cfg.ByteDiffInv.ColumnID(), row, diffInv)

	isLtu := flag && lhs[idx] < rhs[idx]
	result := field.Zero()
	isLtuN := uint64(0)
	if isLtu {
		result = field.One()
		isLtuN = 1
	}
	w.Set(cfg.IsLtu.ColumnID(), row, result)
	if m != nil {
		m.Add(lookup.Ltu, lookup.Key(lhsByteN, rhsByteN))
	}
	return isLtu
}
