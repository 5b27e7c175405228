package basefold

import (
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/merkle"
	"github.com/ceno-labs/zkvm-core/sumcheck"
	"github.com/ceno-labs/zkvm-core/transcript"
)

// Verify checks that proof attests root (a k-variable commitment)
// evaluates to value at point, replaying the same transcript absorptions
// the prover made.
func (p *Params) Verify(tr *transcript.Transcript, root []byte, k int, point []fext.Element, value fext.Element, proof *Proof) error {
	if len(point) != k {
		return ErrShape
	}
	b := p.BaseCodeLog
	if b > k {
		b = k
	}
	m := k - b
	if len(proof.Rounds) != m || len(proof.Roots) != m-1 {
		return ErrShape
	}

	expected := value
	alphas := make([]fext.Element, m)
	for i := 0; i < m; i++ {
		round := proof.Rounds[i]
		if !round.Sum().Equal(expected) {
			return ErrSumcheck
		}
		tr.AbsorbExt(round[0])
		tr.AbsorbExt(round[1])
		tr.AbsorbExt(round[2])
		alpha := tr.SqueezeChallenge()
		alphas[i] = alpha
		expected = round.Eval(alpha)

		if i < m-1 {
			tr.AbsorbRoot(proof.Roots[i])
		}
	}

	tr.AbsorbMany(proof.Basecode)

	if len(proof.Basecode) != 1<<uint(b) {
		return ErrShape
	}
	partialEq := sumcheck.EqEvals(point[m:])
	if !mleDot(proof.Basecode, partialEq).Equal(expected) {
		return ErrSumcheck
	}

	finalCodeword, err := p.Encode(proof.Basecode)
	if err != nil {
		return err
	}

	modulus := 1 << uint(k+p.LogRate-1)
	indices := deriveQueryIndices(tr, p.NumQueries, modulus)
	if len(proof.Queries) != len(indices) {
		return ErrShape
	}

	roots := make([][]byte, 0, m)
	roots = append(roots, root)
	roots = append(roots, proof.Roots...)

	for qi, idx := range indices {
		qp := proof.Queries[qi]
		if qp.Index != idx || len(qp.Levels) != m {
			return ErrShape
		}
		bufLen := 1 << uint(k+p.LogRate)
		for lvl := 0; lvl < m; lvl++ {
			half := bufLen / 2
			pos := idx % half
			lo := qp.Levels[lvl]

			if lo.LeftPath.Index != uint64(pos) || lo.RightPath.Index != uint64(pos+half) {
				return ErrMerkleAuth
			}
			if !merkle.Verify(roots[lvl], lo.LeftPath) || !merkle.Verify(roots[lvl], lo.RightPath) {
				return ErrMerkleAuth
			}

			msgLevel := k - 1 - lvl
			tbl := p.levelTableFor(msgLevel)
			w := tbl[pos].InvNeg2X
			sum := lo.Left.Add(lo.Right).Mul(invTwoExt)
			diff := lo.Right.Sub(lo.Left).Mul(w)
			folded := sum.Add(alphas[lvl].Mul(diff))

			if lvl == m-1 {
				if !folded.Equal(finalCodeword[pos]) {
					return ErrSumcheck
				}
			} else {
				next := qp.Levels[lvl+1]
				nextHalf := half / 2
				var wantVal fext.Element
				if pos < nextHalf {
					wantVal = next.Left
				} else {
					wantVal = next.Right
				}
				if !folded.Equal(wantVal) {
					return ErrSumcheck
				}
			}
			bufLen = half
		}
	}

	return nil
}
