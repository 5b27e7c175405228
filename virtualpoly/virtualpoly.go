// Package virtualpoly builds the thread-sliced virtual polynomials the
// sumcheck prover batches a constraint's zero-check expression into: each
// monomial of the expression's monomial form becomes one product-of-MLEs
// term, scaled by a batching challenge, replicated per worker thread.
package virtualpoly

import (
	"errors"

	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
)

// ErrPureConstantMonomial is returned when an expression's monomial form
// contains a nonzero term with no witness or fixed variables (a constant,
// possibly scaled by challenges). A Poly has no representation for a bare
// scalar contribution (every term must be backed by at least one MLE), so
// AddMLEListByExpr rejects the whole expression instead of dropping the
// term. This covers any zero-check with a nonzero constant part, such as
// x - 1, which several gadget and branch constraints in this module have.
var ErrPureConstantMonomial = errors.New("virtualpoly: monomial form contains a lone constant term")

// MLE is a multilinear extension: 2^numVars evaluations over the boolean
// hypercube, in lexicographic index order.
type MLE []fext.Element

// getRangedMLE returns the threadID-th contiguous chunk of m when split
// across numThreads equal pieces.
func getRangedMLE(m MLE, numThreads, threadID int) MLE {
	chunk := len(m) / numThreads
	start := threadID * chunk
	return m[start : start+chunk]
}

// term is one product-of-MLEs contribution, scaled by coeff.
type term struct {
	coeff fext.Element
	polys []MLE
}

// Poly is one thread's slice of the batched virtual polynomial: a sum of
// scaled products of MLEs, each MLE already ranged to this thread.
type Poly struct {
	NumVars int
	terms   []term
}

// Terms returns the accumulated (coeff, polys) pairs, for a sumcheck
// prover to iterate over when computing round polynomials.
func (p *Poly) Terms() []struct {
	Coeff fext.Element
	Polys []MLE
} {
	out := make([]struct {
		Coeff fext.Element
		Polys []MLE
	}, len(p.terms))
	for i, t := range p.terms {
		out[i].Coeff = t.coeff
		out[i].Polys = t.polys
	}
	return out
}

// Batch is the full set of per-thread virtual polynomials a zero-check
// (or several, summed with independent batching challenges) compiles down
// to.
type Batch struct {
	numThreads int
	numVars    int
	polys      []*Poly
}

// New returns an empty batch sized for numThreads workers, each handling
// a numVars-numThreads-log2-sized slice of the full numVars hypercube.
func New(numThreads, numVars int) *Batch {
	sliceVars := numVars - ceilLog2(numThreads)
	polys := make([]*Poly, numThreads)
	for i := range polys {
		polys[i] = &Poly{NumVars: sliceVars}
	}
	return &Batch{numThreads: numThreads, numVars: numVars, polys: polys}
}

func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	bits, v := 0, 1
	for v < n {
		v <<= 1
		bits++
	}
	return bits
}

// GetRangePolysByThreadID ranges each of polys to threadID's slice.
func (b *Batch) GetRangePolysByThreadID(threadID int, polys []MLE) []MLE {
	out := make([]MLE, len(polys))
	for i, p := range polys {
		out[i] = getRangedMLE(p, b.numThreads, threadID)
	}
	return out
}

// GetAllRangePolys ranges poly across every thread.
func (b *Batch) GetAllRangePolys(poly MLE) []MLE {
	out := make([]MLE, b.numThreads)
	for t := 0; t < b.numThreads; t++ {
		out[t] = getRangedMLE(poly, b.numThreads, t)
	}
	return out
}

// AddMLEList registers one product-of-MLEs term, scaled by coeff, into
// thread threadID's polynomial.
func (b *Batch) AddMLEList(threadID int, polys []MLE, coeff fext.Element) {
	p := b.polys[threadID]
	p.terms = append(p.terms, term{coeff: coeff, polys: polys})
}

// Polys returns the per-thread virtual polynomials accumulated so far.
func (b *Batch) Polys() []*Poly { return b.polys }

// AddMLEListByExpr decomposes e (assumed to already be in, or convertible
// to, monomial form) into its additive monomials and registers each as an
// AddMLEList term across every thread, scaled by alpha and, when selector
// is non-nil, gated by that thread's selector MLE. witIns and
// fixed map a column id to its per-thread-ranged MLE slices (index 0 is
// thread 0's slice, etc., as returned by GetAllRangePolys/
// GetRangePolysByThreadID). challenges supplies the concrete values any
// Challenge leaf evaluates to; those fold into the monomial's scalar
// coefficient rather than becoming a tracked MLE, since a challenge is a
// single known value, not a per-row witness column.
//
// Returns the set of distinct witness-column ids referenced by any
// monomial, mirroring the original's "distinct zerocheck terms" return
// value (used by the caller to decide which witness columns the round's
// sumcheck actually touches).
func (b *Batch) AddMLEListByExpr(
	selector []MLE,
	witIns, fixed [][]MLE,
	e *expr.Expression,
	challenges []fext.Element,
	alpha fext.Element,
) (map[int]struct{}, error) {
	if selector != nil && len(selector) != b.numThreads {
		return nil, errors.New("virtualpoly: selector must have one MLE per thread")
	}

	monomial := expr.ToMonomialForm(e)
	distinct := make(map[int]struct{})

	for _, mono := range flattenSum(monomial) {
		coeff, witVars, fixedVars := flattenProduct(mono, challenges)
		if coeff.IsZero() {
			continue
		}
		if len(witVars) == 0 && len(fixedVars) == 0 {
			return nil, ErrPureConstantMonomial
		}
		for _, id := range witVars {
			distinct[id] = struct{}{}
		}

		scaled := coeff.Mul(alpha)
		for t := 0; t < b.numThreads; t++ {
			var polys []MLE
			if selector != nil {
				polys = append(polys, selector[t])
			}
			for _, id := range witVars {
				polys = append(polys, witIns[id][t])
			}
			for _, id := range fixedVars {
				polys = append(polys, fixed[id][t])
			}
			b.AddMLEList(t, polys, scaled)
		}
	}

	return distinct, nil
}

// flattenSum returns the additive leaves of a Sum-chain.
func flattenSum(e *expr.Expression) []*expr.Expression {
	if e.Kind() == expr.KindSum {
		_, a, b := e.Operands()
		return append(flattenSum(a), flattenSum(b)...)
	}
	return []*expr.Expression{e}
}

// flattenProduct walks a single monomial's Product-chain (as produced by
// expr.ToMonomialForm's sumTerms), folding Constant and Challenge leaves
// into a scalar coefficient and collecting Fixed/WitIn leaves as the
// term's variables.
func flattenProduct(e *expr.Expression, challenges []fext.Element) (coeff fext.Element, witVars, fixedVars []int) {
	coeff = fext.One()
	var walk func(n *expr.Expression)
	walk = func(n *expr.Expression) {
		switch n.Kind() {
		case expr.KindProduct:
			_, a, b := n.Operands()
			walk(a)
			walk(b)
		case expr.KindConstant:
			coeff = coeff.MulBase(field.New(n.ConstantValue()))
		case expr.KindChallenge:
			pow, scalar, offset := n.ChallengeParts()
			coeff = coeff.Mul(challenges[n.ColumnID()].Exp(pow).Mul(scalar).Add(offset))
		case expr.KindWitIn:
			witVars = append(witVars, n.ColumnID())
		case expr.KindFixed:
			fixedVars = append(fixedVars, n.ColumnID())
		default:
			panic("virtualpoly: monomial form expression contains a non-monomial node")
		}
	}
	walk(e)
	return coeff, witVars, fixedVars
}
