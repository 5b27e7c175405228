package expr

import (
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
)

// Evaluate evaluates e given concrete values for fixed columns, witness
// columns, and challenges, lifting base-field constants into the
// extension field. Used by tests to check that canonicalization and
// monomial-form conversion preserve an expression's value (a
// Schwartz-Zippel check over random assignments).
func Evaluate(e *Expression, fixed, witIn, challenges []fext.Element) fext.Element {
	switch e.kind {
	case KindConstant:
		return fext.FromBase(field.New(e.constant))
	case KindFixed:
		return fixed[e.id]
	case KindWitIn:
		return witIn[e.id]
	case KindChallenge:
		base := challenges[e.id].Exp(e.challengePow)
		return base.Mul(e.challengeScalar).Add(e.challengeOffset)
	case KindSum:
		return Evaluate(e.a, fixed, witIn, challenges).Add(Evaluate(e.b, fixed, witIn, challenges))
	case KindProduct:
		return Evaluate(e.a, fixed, witIn, challenges).Mul(Evaluate(e.b, fixed, witIn, challenges))
	case KindScaledSum:
		x := Evaluate(e.x, fixed, witIn, challenges)
		a := Evaluate(e.a, fixed, witIn, challenges)
		b := Evaluate(e.b, fixed, witIn, challenges)
		return x.Mul(a).Add(b)
	default:
		panic("expr: unknown kind")
	}
}
