package gadgets

import (
	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/lookup"
)

// AssertLtConfig is Lt with the additional constraint is_lt = 1.
type AssertLtConfig struct {
	Lt *LtConfig
}

// NewAssertLt registers the AssertLt gadget: lhs < rhs (signed), asserted.
func NewAssertLt(cs *circuit.ConstraintSystem, name string, lhs, rhs []*expr.Expression) *AssertLtConfig {
	lt := NewLt(cs, name, lhs, rhs)
	cs.RequireEqual(lt.IsLt, expr.One)
	return &AssertLtConfig{Lt: lt}
}

// Assign populates one witness row. The caller is responsible for only
// invoking this on inputs that satisfy lhs < rhs — the mock prover
// surfaces a violation as an AssertEqualError against is_lt = 1.
func (cfg *AssertLtConfig) Assign(w *circuit.Witness, row int, lhs, rhs []byte, m lookup.Multiplicity) {
	cfg.Lt.Assign(w, row, lhs, rhs, m)
}
