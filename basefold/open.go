package basefold

import (
	"errors"

	"github.com/bits-and-blooms/bitset"

	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/merkle"
	"github.com/ceno-labs/zkvm-core/sumcheck"
	"github.com/ceno-labs/zkvm-core/transcript"
)

// LevelOpening is one query's revealed (left,right) pair at one fold
// level, together with their Merkle authentication paths — the level-0
// entry authenticates against the committed root, every later entry
// against that round's intermediate root.
type LevelOpening struct {
	Left, Right         fext.Element
	LeftPath, RightPath merkle.OpeningProof
}

// QueryProof is one query index's revealed pairs across every fold
// level, per spec.md §6's wire format ("for the initial commitment and
// each intermediate oracle, (left, right) followed by the authentication
// path").
type QueryProof struct {
	Index  int
	Levels []LevelOpening
}

// Proof is a single-polynomial BaseFold opening: the interleaved
// sumcheck's round polynomials, the intermediate fold commitments'
// roots, the final basecode message, and the query answers.
type Proof struct {
	Rounds   []sumcheck.RoundPoly
	Roots    [][]byte
	Basecode []fext.Element
	Queries  []QueryProof
}

// Open proves that comm's committed polynomial evaluates to the value it
// implicitly carries (the caller learns it back from this same call, via
// the final sumcheck chain — for convenience Open also returns the
// claimed value so callers don't have to separately evaluate the MLE) at
// point, absorbing every prover message into tr in send order.
func (p *Params) Open(tr *transcript.Transcript, comm *Commitment, point []fext.Element) (*Proof, fext.Element, error) {
	k := comm.k
	if len(point) != k {
		return nil, fext.Element{}, errors.New("basefold: opening point dimension mismatch")
	}
	b := p.BaseCodeLog
	if b > k {
		b = k
	}
	m := k - b

	runningEvals := append([]fext.Element(nil), comm.evals...)
	eq := sumcheck.EqEvals(point)
	claimed := mleDot(runningEvals, eq)

	runningOracle := comm.codeword
	oracles := []*merkle.Oracle{comm.oracle}
	buffers := [][]fext.Element{runningOracle}

	proof := &Proof{}
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
				return nil, fext.Element{}, err
			}
			oracles = append(oracles, oracle)
			proof.Roots = append(proof.Roots, oracle.Root())
			tr.AbsorbRoot(oracle.Root())
		}
	}

	proof.Basecode = runningEvals // length 2^b, the fully-folded message
	tr.AbsorbMany(proof.Basecode)

	modulus := len(comm.codeword) / 2
	indices := deriveQueryIndices(tr, p.NumQueries, modulus)
	for _, idx := range indices {
		qp := QueryProof{Index: idx}
		for lvl := 0; lvl < len(oracles); lvl++ {
			buf := buffers[lvl]
			half := len(buf) / 2
			pos := idx % half
			leftPath, err := oracles[lvl].Open(uint64(pos))
			if err != nil {
				return nil, fext.Element{}, err
			}
			rightPath, err := oracles[lvl].Open(uint64(pos + half))
			if err != nil {
				return nil, fext.Element{}, err
			}
			qp.Levels = append(qp.Levels, LevelOpening{
				Left: buf[pos], Right: buf[pos+half],
				LeftPath: leftPath, RightPath: rightPath,
			})
		}
		proof.Queries = append(proof.Queries, qp)
	}

	return proof, claimed, nil
}

// foldOracleLevel folds buf (length 2L) into the next-level oracle
// (length L) using msgLevel's precomputed table and challenge alpha, the
// structured-code interpolation spec.md §4.4 "Open" step 3 describes:
// treat (y0,y1) as the values of a line at (x0,-x0) and evaluate it at
// alpha, using the precomputed 1/(-2*x0) weight.
func foldOracleLevel(tbl levelTable, buf []fext.Element, alpha fext.Element) []fext.Element {
	half := len(buf) / 2
	out := make([]fext.Element, half)
	for j := 0; j < half; j++ {
		y0, y1 := buf[j], buf[half+j]
		w := tbl[j].InvNeg2X
		sum := y0.Add(y1).Mul(invTwoExt)
		diff := y1.Sub(y0).Mul(w)
		out[j] = sum.Add(alpha.Mul(diff))
	}
	return out
}

var invTwoExt = computeInvTwoExt()

func computeInvTwoExt() fext.Element {
	return fext.One().Add(fext.One()).Inverse()
}

// mleDot computes sum_i f[i]*eq[i], the multilinear's value at the
// opening point.
func mleDot(f, eq []fext.Element) fext.Element {
	acc := fext.Zero()
	for i := range f {
		acc = acc.Add(f[i].Mul(eq[i]))
	}
	return acc
}

// deriveQueryIndices squeezes q challenges and reduces each to an index
// in [0, modulus) via its canonical integer form, deduplicating repeats
// with a bitset the way a FRI-style query phase avoids re-proving the
// same position twice.
func deriveQueryIndices(tr *transcript.Transcript, q, modulus int) []int {
	seen := bitset.New(uint(modulus))
	out := make([]int, 0, q)
	for len(out) < q {
		c := tr.SqueezeChallenge()
		a0, _ := c.Basis()
		idx := uint(a0.Canonical() % uint64(modulus))
		if seen.Test(idx) {
			continue
		}
		seen.Set(idx)
		out = append(out, int(idx))
	}
	return out
}
