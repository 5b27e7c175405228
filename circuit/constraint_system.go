// Package circuit implements the shared constraint-system builder every
// instruction circuit contributes witness columns, zero-checks, and
// lookup expressions to, plus the witness matrix those circuits populate.
package circuit

import (
	"errors"

	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/lookup"
)

// ErrShape is raised when a witness is requested with a row count that is
// not positive; positive counts are rounded up to a power of two.
var ErrShape = errors.New("circuit: witness row count must be positive")

// NamedExpr pairs a zero-check expression with the namespace it was
// registered under (mock-prover step 2 singles out "require_equal").
type NamedExpr struct {
	Name string
	Expr *expr.Expression
}

// LookupExpr pairs a lookup expression with the ROM table it argues
// membership in.
type LookupExpr struct {
	Name    string
	ROMType lookup.ROMType
	Expr    *expr.Expression
}

// ConstraintSystem accumulates the witness/fixed column declarations,
// zero-checks, and lookups every circuit registers. It is built up once
// during circuit construction and is read-only afterwards.
type ConstraintSystem struct {
	witInNames []string
	fixedNames []string
	zeroChecks []NamedExpr
	lookups    []LookupExpr
}

// New returns an empty constraint system.
func New() *ConstraintSystem {
	return &ConstraintSystem{}
}

// CreateWitIn declares a fresh witness column and returns a reference to
// it.
func (cs *ConstraintSystem) CreateWitIn(name string) *expr.Expression {
	id := len(cs.witInNames)
	cs.witInNames = append(cs.witInNames, name)
	return expr.NewWitIn(id)
}

// CreateFixed declares a fresh fixed column and returns a reference to it.
func (cs *ConstraintSystem) CreateFixed(name string) *expr.Expression {
	id := len(cs.fixedNames)
	cs.fixedNames = append(cs.fixedNames, name)
	return expr.NewFixed(id)
}

// RequireZero registers e as a zero-check under the given namespace.
func (cs *ConstraintSystem) RequireZero(name string, e *expr.Expression) {
	cs.zeroChecks = append(cs.zeroChecks, NamedExpr{Name: name, Expr: e})
}

// RequireEqual registers a == b as a zero-check of a + (-b) under the
// "require_equal" namespace, which the mock prover evaluates both sides
// of separately (§4.2 step 2) rather than just checking the difference.
func (cs *ConstraintSystem) RequireEqual(a, b *expr.Expression) {
	cs.RequireZero("require_equal", expr.Sum(a, expr.Neg(b)))
}

// AddLookup registers e as a lookup argument into romType's table.
func (cs *ConstraintSystem) AddLookup(name string, romType lookup.ROMType, e *expr.Expression) {
	cs.lookups = append(cs.lookups, LookupExpr{Name: name, ROMType: romType, Expr: e})
}

// NumWitIn returns the number of declared witness columns.
func (cs *ConstraintSystem) NumWitIn() int { return len(cs.witInNames) }

// NumFixed returns the number of declared fixed columns.
func (cs *ConstraintSystem) NumFixed() int { return len(cs.fixedNames) }

// WitInName returns the namespace a witness column was declared under.
func (cs *ConstraintSystem) WitInName(id int) string { return cs.witInNames[id] }

// ZeroChecks returns every registered zero-check, in registration order.
func (cs *ConstraintSystem) ZeroChecks() []NamedExpr { return cs.zeroChecks }

// Lookups returns every registered lookup, in registration order.
func (cs *ConstraintSystem) Lookups() []LookupExpr { return cs.lookups }
