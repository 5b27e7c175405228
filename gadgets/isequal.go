package gadgets

import (
	"fmt"

	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/field"
)

// IsEqualConfig is the multi-limb equality gadget: per-limb is_equal/diff
// inverse witnesses, reduced to a single is_equal bit.
type IsEqualConfig struct {
	IsEqualPerLimb []*expr.Expression
	DiffInvPerLimb []*expr.Expression
	IsEqual        *expr.Expression
}

// NewIsEqual registers the equality gadget for a[i] == b[i] over every
// limb, constraining:
//   - is_equal_limb[i]*(a[i]-b[i]) = 0
//   - is_equal_limb[i] + (a[i]-b[i])*diff_inv_limb[i] = 1
//   - is_equal = product of is_equal_limb[i]
//
// the standard two-constraint IsZero-per-limb shape: the first pins
// is_equal_limb to 0 whenever the limbs differ, the second pins it to 1
// whenever they're equal (since diff*diff_inv is then forced to 0).
func NewIsEqual(cs *circuit.ConstraintSystem, name string, a, b []*expr.Expression) *IsEqualConfig {
	n := len(a)
	cfg := &IsEqualConfig{
		IsEqualPerLimb: make([]*expr.Expression, n),
		DiffInvPerLimb: make([]*expr.Expression, n),
	}
	for i := 0; i < n; i++ {
		eqLimb := cs.CreateWitIn(fmt.Sprintf("%s.is_equal_limb[%d]", name, i))
		invLimb := cs.CreateWitIn(fmt.Sprintf("%s.diff_inv_limb[%d]", name, i))
		diff := expr.Sum(a[i], expr.Neg(b[i]))

		cs.RequireZero(name+".is_equal_limb", expr.Product(eqLimb, diff))
		cs.RequireZero(name+".diff_inv_limb",
			expr.Sum(expr.Sum(eqLimb, expr.Product(diff, invLimb)), expr.Neg(expr.One)))

		cfg.IsEqualPerLimb[i] = eqLimb
		cfg.DiffInvPerLimb[i] = invLimb
	}

	product := cfg.IsEqualPerLimb[0]
	for i := 1; i < n; i++ {
		product = expr.Product(product, cfg.IsEqualPerLimb[i])
	}
	isEqual := cs.CreateWitIn(name + ".is_equal")
	cs.RequireEqual(isEqual, product)
	cfg.IsEqual = isEqual

	return cfg
}

// Assign populates one witness row from concrete limb values and returns
// whether a == b.
func (cfg *IsEqualConfig) Assign(w *circuit.Witness, row int, a, b []byte) bool {
	allEqual := true
	for i := range a {
		av := field.New(uint64(a[i]))
		bv := field.New(uint64(b[i]))
		diff := av.Sub(bv)

		var eqLimb, inv field.Element
		if diff.IsZero() {
			eqLimb, inv = field.One(), field.Zero()
		} else {
			eqLimb, inv = field.Zero(), diff.Inverse()
			allEqual = false
		}
		w.Set(cfg.IsEqualPerLimb[i].ColumnID(), row, eqLimb)
		w.Set(cfg.DiffInvPerLimb[i].ColumnID(), row, inv)
	}

	result := field.Zero()
	if allEqual {
		result = field.One()
	}
	w.Set(cfg.IsEqual.ColumnID(), row, result)
	return allEqual
}
