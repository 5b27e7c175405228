package expr

import (
	"math/rand"
	"testing"

	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/stretchr/testify/require"
)

func randFext(rng *rand.Rand) fext.Element {
	return fext.Element{field.New(rng.Uint64()), field.New(rng.Uint64())}
}

// buildEvalHarness mirrors the original's make_eval: a handful of
// pseudo-random fixed/witness/challenge values against which factored and
// monomial forms of the same expression must agree (Schwartz-Zippel).
func buildEvalHarness() (fixed, witIn, challenges []fext.Element) {
	rng := rand.New(rand.NewSource(12))
	gen := func(n int) []fext.Element {
		vs := make([]fext.Element, n)
		for i := range vs {
			vs[i] = randFext(rng)
		}
		return vs
	}
	return gen(3), gen(3), gen(3)
}

func TestMonomialFormPreservesValue(t *testing.T) {
	fixed, witIn, challenges := buildEvalHarness()

	a := NewFixed(0)
	b := NewFixed(1)
	c := NewFixed(2)
	x := NewWitIn(0)
	y := NewWitIn(1)
	z := NewWitIn(2)
	n := NewConstant(104)
	m := NewConstant(field.Modulus - 599)
	r := NewChallenge(0, 1, fext.One(), fext.Zero())

	cases := []*Expression{
		Product(Product(a, x), x),
		a,
		x,
		n,
		r,
		Sum(Sum(Sum(Sum(Sum(a, b), x), y), n), Sum(m, r)),
		Product(Product(Product(a, x), n), r),
		Product(Product(x, y), z),
		Sum(Product(Product(Sum(Sum(x, y), a), b), Sum(y, z)), c),
		Product(Product(Sum(Sum(Product(r, x), n), z), m), y),
		Product(Sum(Sum(b, y), Product(m, z)), Sum(Sum(x, y), c)),
		Product(Product(a, r), x),
	}

	for i, factored := range cases {
		monomial := ToMonomialForm(factored)
		want := Evaluate(factored, fixed, witIn, challenges)
		got := Evaluate(monomial, fixed, witIn, challenges)
		require.Truef(t, want.Equal(got), "case %d: monomial form diverged from factored form", i)
	}
}

func TestCanonicalPreservesValue(t *testing.T) {
	fixed, witIn, challenges := buildEvalHarness()

	expr := Sum(Product(NewFixed(0), NewWitIn(1)), Product(NewWitIn(1), NewFixed(0)))
	canon := ToCanonical(expr)
	require.True(t, Evaluate(expr, fixed, witIn, challenges).Equal(Evaluate(canon, fixed, witIn, challenges)))
}

func TestCanonicalIsIdempotent(t *testing.T) {
	expr := Sum(Product(NewWitIn(3), NewFixed(0)), NewScaledSum(NewWitIn(1), NewFixed(2), NewConstant(9)))
	once := ToCanonical(expr)
	twice := ToCanonical(once)
	require.Equal(t, 0, Compare(once, twice))
}

func TestCombineMergesLikeTerms(t *testing.T) {
	// x*y + y*x should combine into a single monomial with coefficient 2.
	x := NewWitIn(0)
	y := NewWitIn(1)
	sum := Sum(Product(x, y), Product(y, x))
	terms := combine(distribute(sum))
	require.Len(t, terms, 1)
	require.Equal(t, field.New(2), terms[0].coeff)
}
