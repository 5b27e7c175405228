// Package sumcheck implements the shared degree-2 round-polynomial
// machinery BaseFold's interleaved sumcheck binds: computing one round's
// coefficients from a pair of hypercube vectors, folding both vectors on
// a challenge, and building the bit-reversed eq-polynomial evaluation
// table an opening point compiles down to.
//
// This package carries no gnark-crypto dependency of its own; it is the
// piece of BaseFold's sumcheck step spec.md §4.4 describes that the
// teacher's FRI has no equivalent of (FRI folds a univariate polynomial
// directly; it never interleaves a sumcheck), so the round-polynomial
// algebra here is derived straight from the spec's coefficient-chain
// description rather than adapted from teacher code.
package sumcheck

import "github.com/ceno-labs/zkvm-core/fext"

// RoundPoly is one sumcheck round's message: the three coefficients
// (constant, linear, quadratic) of g(X) = f(X)*eq(X) restricted to the
// newly-bound variable, exactly the three field elements spec.md §6's
// wire format sends per round.
type RoundPoly [3]fext.Element

// Sum returns s(0)+s(1) = 2*s[0]+s[1]+s[2], the value a round polynomial
// must match against the previous round's bound value (or, for round 0,
// the claimed sum) per spec.md §4.4's verify chain.
func (s RoundPoly) Sum() fext.Element {
	return s[0].Mul(two).Add(s[1]).Add(s[2])
}

// Eval evaluates s at x.
func (s RoundPoly) Eval(x fext.Element) fext.Element {
	x2 := x.Mul(x)
	return s[0].Add(s[1].Mul(x)).Add(s[2].Mul(x2))
}

var two = fext.One().Add(fext.One())

// Round computes one round's polynomial from a pair of hypercube vectors
// f and eq (both length 2n, adjacent entries (2i,2i+1) holding the
// values at the about-to-be-bound variable = 0,1): each pair's local
// linear coefficients are extracted and multiplied, then summed across
// all pairs — "pairwise coefficient extraction then coefficient-times-
// coefficient summation" per spec.md §4.4.
func Round(f, eq []fext.Element) RoundPoly {
	var s RoundPoly
	n := len(f) / 2
	for i := 0; i < n; i++ {
		f0, f1 := f[2*i], f[2*i+1]
		e0, e1 := eq[2*i], eq[2*i+1]
		df := f1.Sub(f0)
		de := e1.Sub(e0)
		s[0] = s[0].Add(f0.Mul(e0))
		s[1] = s[1].Add(df.Mul(e0)).Add(f0.Mul(de))
		s[2] = s[2].Add(df.Mul(de))
	}
	return s
}

// Fold binds the newly-challenged variable to alpha, returning the
// halved f and eq vectors for the next round.
func Fold(f, eq []fext.Element, alpha fext.Element) (nf, neq []fext.Element) {
	n := len(f) / 2
	nf = make([]fext.Element, n)
	neq = make([]fext.Element, n)
	for i := 0; i < n; i++ {
		f0, f1 := f[2*i], f[2*i+1]
		e0, e1 := eq[2*i], eq[2*i+1]
		nf[i] = f0.Add(alpha.Mul(f1.Sub(f0)))
		neq[i] = e0.Add(alpha.Mul(e1.Sub(e0)))
	}
	return nf, neq
}

// EqEvals returns the bit-reversed hypercube evaluations of
// eq(X,r) = prod_i (X_i*r_i + (1-X_i)*(1-r_i)), length 2^len(r). Built in
// natural (big-endian) order variable-by-variable, then bit-reversed so
// adjacent entries pair up the way BaseFold's even-odd folding needs.
func EqEvals(r []fext.Element) []fext.Element {
	evals := []fext.Element{fext.One()}
	one := fext.One()
	for _, ri := range r {
		next := make([]fext.Element, len(evals)*2)
		oneMinus := one.Sub(ri)
		for i, v := range evals {
			next[2*i] = v.Mul(oneMinus)
			next[2*i+1] = v.Mul(ri)
		}
		evals = next
	}
	ReverseIndexBits(evals)
	return evals
}

// reverseBits reverses the low bitLen bits of i.
func reverseBits(i, bitLen int) int {
	r := 0
	for b := 0; b < bitLen; b++ {
		r = (r << 1) | (i & 1)
		i >>= 1
	}
	return r
}

// bitLenOf returns ceil(log2(n)) for a power-of-two n (0 and 1 both map
// to 0 bits, i.e. a no-op permutation).
func bitLenOf(n int) int {
	bl := 0
	for (1 << uint(bl)) < n {
		bl++
	}
	return bl
}

// ReverseIndexBits permutes xs in place into bit-reversed order — the
// "explicit reverse_index_bits_in_place calls at well-defined boundaries"
// spec.md §9 requires between BaseFold's big-endian commitment ordering
// and little-endian sumcheck ordering.
func ReverseIndexBits(xs []fext.Element) {
	n := len(xs)
	if n <= 1 {
		return
	}
	bitLen := bitLenOf(n)
	for i := 0; i < n; i++ {
		j := reverseBits(i, bitLen)
		if j > i {
			xs[i], xs[j] = xs[j], xs[i]
		}
	}
}
