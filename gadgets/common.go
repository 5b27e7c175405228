// Package gadgets implements the shared equality/range/comparison
// primitives every RISC-V instruction circuit composes from: IsEqual,
// Msb, Ltu, Lt, and AssertLt.
package gadgets

import "github.com/ceno-labs/zkvm-core/expr"

// boolConstraint returns an expression that is zero iff e is 0 or 1.
func boolConstraint(e *expr.Expression) *expr.Expression {
	return expr.Product(e, expr.Sum(expr.One, expr.Neg(e)))
}

// boolOr returns the logical OR of a and b, assuming both are 0/1: a+b-a*b.
func boolOr(a, b *expr.Expression) *expr.Expression {
	return expr.Sum(expr.Sum(a, b), expr.Neg(expr.Product(a, b)))
}
