package expr

import (
	"sort"

	"github.com/ceno-labs/zkvm-core/field"
)

// term is a single additive monomial: coeff * vars[0] * vars[1] * ...
// coeff is always a base-field value, since it only ever accumulates from
// multiplying Constant leaves together.
type term struct {
	coeff field.Element
	vars  []*Expression
}

// ToMonomialForm rewrites e as a sum of monomials: sum_terms(combine(distribute(e))).
func ToMonomialForm(e *Expression) *Expression {
	return sumTerms(combine(distribute(e)))
}

func distribute(e *Expression) []term {
	switch e.kind {
	case KindConstant:
		return []term{{coeff: field.New(e.constant), vars: nil}}

	case KindFixed, KindWitIn, KindChallenge:
		return []term{{coeff: field.One(), vars: []*Expression{e}}}

	case KindSum:
		res := distribute(e.a)
		res = append(res, distribute(e.b)...)
		return res

	case KindProduct:
		as := distribute(e.a)
		bs := distribute(e.b)
		res := make([]term, 0, len(as)*len(bs))
		for _, a := range as {
			for _, b := range bs {
				res = append(res, term{
					coeff: a.coeff.Mul(b.coeff),
					vars:  concatVars(a.vars, b.vars),
				})
			}
		}
		return res

	case KindScaledSum:
		xs := distribute(e.x)
		as := distribute(e.a)
		res := distribute(e.b)
		for _, x := range xs {
			for _, a := range as {
				res = append(res, term{
					coeff: x.coeff.Mul(a.coeff),
					vars:  concatVars(x.vars, a.vars),
				})
			}
		}
		return res

	default:
		panic("expr: unknown kind")
	}
}

func concatVars(a, b []*Expression) []*Expression {
	res := make([]*Expression, 0, len(a)+len(b))
	res = append(res, a...)
	res = append(res, b...)
	return res
}

// combine sorts each term's variables into a common order, then merges
// terms that share the same variable list by adding their coefficients.
func combine(terms []term) []term {
	res := make([]term, 0, len(terms))
	for _, t := range terms {
		sorted := append([]*Expression(nil), t.vars...)
		sort.Slice(sorted, func(i, j int) bool { return Less(sorted[i], sorted[j]) })
		t.vars = sorted

		merged := false
		for i := range res {
			if sameVars(res[i].vars, t.vars) {
				res[i].coeff = res[i].coeff.Add(t.coeff)
				merged = true
				break
			}
		}
		if !merged {
			res = append(res, t)
		}
	}
	return res
}

func sameVars(a, b []*Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sumTerms(terms []term) *Expression {
	if len(terms) == 0 {
		return Zero
	}
	var acc *Expression
	for _, t := range terms {
		node := NewConstant(t.coeff.Canonical())
		for _, v := range t.vars {
			node = Product(node, v)
		}
		if acc == nil {
			acc = node
		} else {
			acc = Sum(acc, node)
		}
	}
	return acc
}
