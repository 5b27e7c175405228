package basefold

import (
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/sumcheck"
)

// Encode turns 2^k coefficients into their foldable codeword, per
// spec.md §4.4 "Encode": base-case Reed–Solomon-encode blocks of
// 2^BaseCodeLog coefficients over the domain {1..2^(BaseCodeLog+LogRate)},
// then butterfly-fold levels BaseCodeLog..k-1 using the precomputed
// per-level tables, then bit-reverse the result.
func (p *Params) Encode(coeffs []fext.Element) ([]fext.Element, error) {
	n := len(coeffs)
	if !isPowerOfTwo(n) {
		return nil, ErrShape
	}
	k := log2(n)
	if k > p.MaxVars {
		return nil, ErrDegree
	}
	b := p.BaseCodeLog
	if b > k {
		b = k
	}
	blockSize := 1 << uint(b)
	numBlocks := n / blockSize
	domainSize := blockSize << uint(p.LogRate)

	codeword := make([]fext.Element, 0, n<<uint(p.LogRate))
	for blk := 0; blk < numBlocks; blk++ {
		msg := coeffs[blk*blockSize : (blk+1)*blockSize]
		codeword = append(codeword, reedSolomonEncode(msg, domainSize)...)
	}

	for l := b; l < k; l++ {
		tbl := p.levelTableFor(l)
		chunkSize := 1 << uint(l+p.LogRate+1)
		half := chunkSize / 2
		next := make([]fext.Element, len(codeword))
		for start := 0; start < len(codeword); start += chunkSize {
			for j := 0; j < half; j++ {
				a := codeword[start+j]
				c := codeword[start+half+j]
				t := tbl[j].X
				tc := t.Mul(c)
				next[start+j] = a.Add(tc)
				next[start+half+j] = a.Sub(tc)
			}
		}
		codeword = next
	}

	sumcheck.ReverseIndexBits(codeword)
	return codeword, nil
}

// reedSolomonEncode evaluates the polynomial whose coefficients are msg
// at the domain points {1, 2, ..., domainSize}, via Horner's method —
// the base case of BaseFold's structured code, using plain integer
// domain points rather than a multiplicative subgroup.
func reedSolomonEncode(msg []fext.Element, domainSize int) []fext.Element {
	out := make([]fext.Element, domainSize)
	for i := 0; i < domainSize; i++ {
		x := domainPoint(i)
		out[i] = evalPoly(msg, x)
	}
	return out
}

func domainPoint(i int) fext.Element {
	return fext.FromBase(field.New(uint64(i + 1)))
}

func evalPoly(coeffs []fext.Element, x fext.Element) fext.Element {
	acc := fext.Zero()
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}
