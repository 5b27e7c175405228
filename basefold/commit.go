package basefold

import (
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/merkle"
	"github.com/ceno-labs/zkvm-core/sumcheck"
)

// Commitment is a committed multilinear polynomial: the Merkle oracle
// over its bit-reversed codeword, the codeword itself (needed by Open to
// continue folding), and the bit-reversed hypercube evaluations (needed
// by Open's sumcheck). The public commitment surfaced to a verifier is
// just (Root(), NumVars()), per spec.md §3.
type Commitment struct {
	oracle   *merkle.Oracle
	codeword []fext.Element
	evals    []fext.Element
	k        int
}

// Root returns the committed Merkle root.
func (c *Commitment) Root() []byte { return c.oracle.Root() }

// NumVars returns the polynomial's variable count k.
func (c *Commitment) NumVars() int { return c.k }

func toRows(codeword []fext.Element) [][]field.Element {
	rows := make([][]field.Element, len(codeword))
	for i, e := range codeword {
		a0, a1 := e.Basis()
		rows[i] = []field.Element{a0, a1}
	}
	return rows
}

// Commit builds the codeword for evals (a length-2^k hypercube
// evaluation vector) and its Merkle oracle.
func (p *Params) Commit(evals []fext.Element) (*Commitment, error) {
	n := len(evals)
	if !isPowerOfTwo(n) {
		return nil, ErrShape
	}
	k := log2(n)
	if k > p.MaxVars {
		return nil, ErrDegree
	}

	codeword, err := p.Encode(evals)
	if err != nil {
		return nil, err
	}
	oracle, err := merkle.Commit(toRows(codeword))
	if err != nil {
		return nil, err
	}

	reversedEvals := append([]fext.Element(nil), evals...)
	sumcheck.ReverseIndexBits(reversedEvals)

	return &Commitment{oracle: oracle, codeword: codeword, evals: reversedEvals, k: k}, nil
}
