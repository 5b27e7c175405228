package basefold

import (
	"errors"

	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/merkle"
	"github.com/ceno-labs/zkvm-core/sumcheck"
	"github.com/ceno-labs/zkvm-core/transcript"
)

// BatchQueryProof is one query index's round-0 pairs, one per
// polynomial (each authenticated against that polynomial's own
// committed root, since batching happens before any Merkle tree is
// built), plus the remaining fold levels of the combined running
// oracle, each backed by its own intermediate Merkle commitment exactly
// like the single-polynomial case.
type BatchQueryProof struct {
	Index    int
	PerPoly  []LevelOpening
	Combined []LevelOpening // level i+1 of the combined fold, for i in range
}

// BatchProof is a same-point BaseFold opening for several polynomials of
// equal size, weighted by consecutive powers of a transcript-drawn
// batching challenge (spec.md §4.4 "Batched open/verify"). This covers
// the dominant real usage in this codebase — opening every
// witness/fixed column of one circuit instance at the point a shared
// sumcheck reduced the constraint system to. Polynomials of different
// sizes are not supported: BatchOpen rejects them with an error.
type BatchProof struct {
	Rounds   []sumcheck.RoundPoly
	Roots    [][]byte
	Basecode []fext.Element
	Queries  []BatchQueryProof
}

// BatchOpen proves that every comms[i] evaluates, at the shared point,
// to the value returned alongside it.
func (p *Params) BatchOpen(tr *transcript.Transcript, comms []*Commitment, point []fext.Element) (*BatchProof, []fext.Element, error) {
	if len(comms) == 0 {
		return nil, nil, errors.New("basefold: batch open requires at least one polynomial")
	}
	k := comms[0].k
	for _, c := range comms {
		if c.k != k {
			return nil, nil, errors.New("basefold: batched open requires equal-size polynomials")
		}
	}
	if len(point) != k {
		return nil, nil, errors.New("basefold: opening point dimension mismatch")
	}

	t := tr.SqueezeChallenge()
	coeffs := make([]fext.Element, len(comms))
	pow := fext.One()
	for i := range comms {
		coeffs[i] = pow
		pow = pow.Mul(t)
	}

	eq := sumcheck.EqEvals(point)
	values := make([]fext.Element, len(comms))
	n := 1 << uint(k)
	combinedEvals := make([]fext.Element, n)
	combinedCodeword := make([]fext.Element, len(comms[0].codeword))
	for i, c := range comms {
		values[i] = mleDot(c.evals, eq)
		for j, v := range c.evals {
			combinedEvals[j] = combinedEvals[j].Add(coeffs[i].Mul(v))
		}
		for j, v := range c.codeword {
			combinedCodeword[j] = combinedCodeword[j].Add(coeffs[i].Mul(v))
		}
	}

	b := p.BaseCodeLog
	if b > k {
		b = k
	}
	m := k - b

	runningEvals := combinedEvals
	runningOracle := combinedCodeword
	buffers := [][]fext.Element{runningOracle} // index 0 = combined level 0 (unused for queries: handled per-poly)
	var combinedOracles []*merkle.Oracle        // oracle[i] commits level i+1, i = 0..m-2

	proof := &BatchProof{}
	alphas := make([]fext.Element, 0, m)

	for i := 0; i < m; i++ {
		round := sumcheck.Round(runningEvals, eq)
		proof.Rounds = append(proof.Rounds, round)
		tr.AbsorbExt(round[0])
		tr.AbsorbExt(round[1])
		tr.AbsorbExt(round[2])
		alpha := tr.SqueezeChallenge()
		alphas = append(alphas, alpha)

		runningEvals, eq = sumcheck.Fold(runningEvals, eq, alpha)
		msgLevel := k - 1 - i
		runningOracle = foldOracleLevel(p.levelTableFor(msgLevel), runningOracle, alpha)
		buffers = append(buffers, runningOracle)

		if i < m-1 {
			oracle, err := merkle.Commit(toRows(runningOracle))
			if err != nil {
				return nil, nil, err
			}
			combinedOracles = append(combinedOracles, oracle)
			proof.Roots = append(proof.Roots, oracle.Root())
			tr.AbsorbRoot(oracle.Root())
		}
	}

	proof.Basecode = runningEvals
	tr.AbsorbMany(proof.Basecode)

	modulus := len(comms[0].codeword) / 2
	indices := deriveQueryIndices(tr, p.NumQueries, modulus)
	for _, idx := range indices {
		qp := BatchQueryProof{Index: idx}

		pos0 := idx % modulus
		for _, c := range comms {
			leftPath, err := c.oracle.Open(uint64(pos0))
			if err != nil {
				return nil, nil, err
			}
			rightPath, err := c.oracle.Open(uint64(pos0 + modulus))
			if err != nil {
				return nil, nil, err
			}
			qp.PerPoly = append(qp.PerPoly, LevelOpening{
				Left: c.codeword[pos0], Right: c.codeword[pos0+modulus],
				LeftPath: leftPath, RightPath: rightPath,
			})
		}

		for i, oracle := range combinedOracles {
			buf := buffers[i+1]
			half := len(buf) / 2
			pos := idx % half
			leftPath, err := oracle.Open(uint64(pos))
			if err != nil {
				return nil, nil, err
			}
			rightPath, err := oracle.Open(uint64(pos + half))
			if err != nil {
				return nil, nil, err
			}
			qp.Combined = append(qp.Combined, LevelOpening{
				Left: buf[pos], Right: buf[pos+half],
				LeftPath: leftPath, RightPath: rightPath,
			})
		}

		proof.Queries = append(proof.Queries, qp)
	}

	return proof, values, nil
}

// BatchVerify checks proof against roots (one committed Merkle root per
// polynomial, all of k variables) and values (the claimed evaluation of
// each, at the shared point).
func (p *Params) BatchVerify(tr *transcript.Transcript, roots [][]byte, k int, point []fext.Element, values []fext.Element, proof *BatchProof) error {
	if len(roots) != len(values) || len(roots) == 0 {
		return ErrShape
	}
	if len(point) != k {
		return ErrShape
	}

	t := tr.SqueezeChallenge()
	coeffs := make([]fext.Element, len(roots))
	pow := fext.One()
	for i := range roots {
		coeffs[i] = pow
		pow = pow.Mul(t)
	}
	combinedValue := fext.Zero()
	for i, v := range values {
		combinedValue = combinedValue.Add(coeffs[i].Mul(v))
	}

	b := p.BaseCodeLog
	if b > k {
		b = k
	}
	m := k - b
	if len(proof.Rounds) != m || len(proof.Roots) != m-1 {
		return ErrShape
	}

	expected := combinedValue
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

	for qi, idx := range indices {
		qp := proof.Queries[qi]
		if qp.Index != idx || len(qp.PerPoly) != len(roots) || len(qp.Combined) != m-1 {
			return ErrShape
		}

		pos0 := idx % modulus
		combinedLeft, combinedRight := fext.Zero(), fext.Zero()
		for i, lo := range qp.PerPoly {
			if lo.LeftPath.Index != uint64(pos0) || lo.RightPath.Index != uint64(pos0+modulus) {
				return ErrMerkleAuth
			}
			if !merkle.Verify(roots[i], lo.LeftPath) || !merkle.Verify(roots[i], lo.RightPath) {
				return ErrMerkleAuth
			}
			combinedLeft = combinedLeft.Add(coeffs[i].Mul(lo.Left))
			combinedRight = combinedRight.Add(coeffs[i].Mul(lo.Right))
		}

		leftAt := make([]fext.Element, m)
		rightAt := make([]fext.Element, m)
		leftAt[0], rightAt[0] = combinedLeft, combinedRight
		for i, lo := range qp.Combined {
			lvl := i + 1
			half := 1 << uint(k+p.LogRate-1-lvl)
			pos := idx % half
			if lo.LeftPath.Index != uint64(pos) || lo.RightPath.Index != uint64(pos+half) {
				return ErrMerkleAuth
			}
			if !merkle.Verify(proof.Roots[i], lo.LeftPath) || !merkle.Verify(proof.Roots[i], lo.RightPath) {
				return ErrMerkleAuth
			}
			leftAt[lvl], rightAt[lvl] = lo.Left, lo.Right
		}

		bufLen := 1 << uint(k+p.LogRate)
		for lvl := 0; lvl < m; lvl++ {
			half := bufLen / 2
			pos := idx % half

			msgLevel := k - 1 - lvl
			tbl := p.levelTableFor(msgLevel)
			w := tbl[pos].InvNeg2X
			sum := leftAt[lvl].Add(rightAt[lvl]).Mul(invTwoExt)
			diff := rightAt[lvl].Sub(leftAt[lvl]).Mul(w)
			folded := sum.Add(alphas[lvl].Mul(diff))

			if lvl == m-1 {
				if !folded.Equal(finalCodeword[pos]) {
					return ErrSumcheck
				}
			} else {
				nextHalf := half / 2
				var wantVal fext.Element
				if pos < nextHalf {
					wantVal = leftAt[lvl+1]
				} else {
					wantVal = rightAt[lvl+1]
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
