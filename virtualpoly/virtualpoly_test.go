package virtualpoly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
)

// evalPoly sums a thread's accumulated terms at hypercube index idx.
func evalPoly(p *Poly, idx int) fext.Element {
	acc := fext.Zero()
	for _, term := range p.Terms() {
		v := term.Coeff
		for _, poly := range term.Polys {
			v = v.Mul(poly[idx])
		}
		acc = acc.Add(v)
	}
	return acc
}

// TestAddMLEListByExprMatchesDirectEvaluation checks that batching
// 2*wit0*fixed0 + wit1 across two worker threads reproduces, on every
// hypercube point, the same value expr.Evaluate computes directly from
// the witness/fixed columns at that point.
func TestAddMLEListByExprMatchesDirectEvaluation(t *testing.T) {
	const numVars = 3
	const size = 1 << numVars
	const numThreads = 2

	rnd := func(seed uint64) fext.Element {
		return fext.Element{field.New(seed), field.New(seed * 7)}
	}

	wit0 := make(MLE, size)
	wit1 := make(MLE, size)
	fixed0 := make(MLE, size)
	for i := 0; i < size; i++ {
		wit0[i] = rnd(uint64(2*i + 1))
		wit1[i] = rnd(uint64(3*i + 2))
		fixed0[i] = rnd(uint64(5*i + 3))
	}

	e := expr.Sum(
		expr.Product(expr.NewConstant(2), expr.Product(expr.NewWitIn(0), expr.NewFixed(0))),
		expr.NewWitIn(1),
	)

	batch := New(numThreads, numVars)
	witIns := [][]MLE{batch.GetAllRangePolys(wit0), batch.GetAllRangePolys(wit1)}
	fixed := [][]MLE{batch.GetAllRangePolys(fixed0)}

	distinct, err := batch.AddMLEListByExpr(nil, witIns, fixed, e, nil, fext.One())
	require.NoError(t, err)
	require.Equal(t, map[int]struct{}{0: {}, 1: {}}, distinct)

	polys := batch.Polys()
	require.Len(t, polys, numThreads)
	chunk := size / numThreads
	for t := 0; t < numThreads; t++ {
		for local := 0; local < chunk; local++ {
			global := t*chunk + local
			want := expr.Evaluate(e, []fext.Element{fixed0[global]}, []fext.Element{wit0[global], wit1[global]}, nil)
			got := evalPoly(polys[t], local)
			require.True(t, want.Equal(got), "thread %d local %d: got %v want %v", t, local, got, want)
		}
	}
}

// TestAddMLEListByExprRejectsPureConstant checks the builder rejects a
// monomial with no witness or fixed variables rather than silently
// dropping it, per the resolved "pure constant" ambiguity.
func TestAddMLEListByExprRejectsPureConstant(t *testing.T) {
	batch := New(1, 2)
	_, err := batch.AddMLEListByExpr(nil, nil, nil, expr.NewConstant(5), nil, fext.One())
	require.ErrorIs(t, err, ErrPureConstantMonomial)
}

// TestAddMLEListByExprWithSelector checks a per-thread selector gates
// each term: zeroing thread 0's selector must zero out every hypercube
// point this batch's sole term contributes to thread 0, while thread 1
// (selector one) matches the unselected product directly.
func TestAddMLEListByExprWithSelector(t *testing.T) {
	const numVars = 2
	const size = 1 << numVars
	const numThreads = 2
	chunk := size / numThreads

	rnd := func(seed uint64) fext.Element { return fext.Element{field.New(seed), field.Zero()} }
	wit0 := make(MLE, size)
	for i := range wit0 {
		wit0[i] = rnd(uint64(i + 1))
	}

	sel0 := make(MLE, chunk)
	sel1 := make(MLE, chunk)
	for i := range sel0 {
		sel0[i] = fext.Zero()
		sel1[i] = fext.One()
	}
	selector := []MLE{sel0, sel1}

	batch := New(numThreads, numVars)
	witIns := [][]MLE{batch.GetAllRangePolys(wit0)}

	_, err := batch.AddMLEListByExpr(selector, witIns, nil, expr.NewWitIn(0), nil, fext.One())
	require.NoError(t, err)

	polys := batch.Polys()
	for local := 0; local < chunk; local++ {
		require.True(t, evalPoly(polys[0], local).IsZero())
		require.True(t, evalPoly(polys[1], local).Equal(wit0[chunk+local]))
	}
}
