package basefold

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/sumcheck"
	"github.com/ceno-labs/zkvm-core/transcript"
)

func testParams(t *testing.T, maxVars int) *Params {
	t.Helper()
	var seed [16]byte
	copy(seed[:], "basefold-test-00")
	p, err := Setup(seed, 1, 2, 6, maxVars)
	require.NoError(t, err)
	return p
}

func randomEvals(n int, seed uint64) []fext.Element {
	out := make([]fext.Element, n)
	x := seed + 1
	for i := range out {
		x = x*6364136223846793005 + 1442695040888963407
		out[i] = fext.FromBase(field.New(x))
	}
	return out
}

// Bit reversal is its own inverse (a randomized property over sizes 2..64),
// and Encode returns a codeword 2^LogRate times the message length.
func TestReverseIndexBitsAndCodewordLength(t *testing.T) {
	p := testParams(t, 6)

	props := gopter.NewProperties(nil)
	props.Property("bit-reversal is its own inverse", prop.ForAll(
		func(n int) bool {
			size := 1 << uint(n%6+1)
			xs := randomEvals(size, uint64(n))
			orig := append([]fext.Element(nil), xs...)
			sumcheck.ReverseIndexBits(xs)
			sumcheck.ReverseIndexBits(xs)
			for i := range xs {
				if !xs[i].Equal(orig[i]) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 100),
	))
	props.TestingRun(t)

	evals := randomEvals(1<<4, 42)
	codeword, err := p.Encode(evals)
	require.NoError(t, err)
	require.Equal(t, len(evals)<<uint(p.LogRate), len(codeword))
}

// PCS completeness: Commit, Open and Verify a random multilinear
// polynomial at a random point; Verify must accept.
func TestOpenVerifyRoundTrip(t *testing.T) {
	p := testParams(t, 5)
	evals := randomEvals(1<<4, 7)

	comm, err := p.Commit(evals)
	require.NoError(t, err)

	point := randomPoint(4, 100)

	proverTr := transcript.New()
	proverTr.AbsorbRoot(comm.Root())
	proof, value, err := p.Open(proverTr, comm, point)
	require.NoError(t, err)
	require.False(t, value.IsZero())

	verifierTr := transcript.New()
	verifierTr.AbsorbRoot(comm.Root())
	err = p.Verify(verifierTr, comm.Root(), comm.NumVars(), point, value, proof)
	require.NoError(t, err)
}

// PCS soundness: a verifier must reject a proof claiming the wrong
// evaluation, or one whose basecode message was tampered with.
func TestVerifyRejectsWrongValue(t *testing.T) {
	p := testParams(t, 5)
	evals := randomEvals(1<<4, 11)
	comm, err := p.Commit(evals)
	require.NoError(t, err)
	point := randomPoint(4, 101)

	proverTr := transcript.New()
	proverTr.AbsorbRoot(comm.Root())
	proof, value, err := p.Open(proverTr, comm, point)
	require.NoError(t, err)

	wrongValue := value.Add(fext.One())
	verifierTr := transcript.New()
	verifierTr.AbsorbRoot(comm.Root())
	err = p.Verify(verifierTr, comm.Root(), comm.NumVars(), point, wrongValue, proof)
	require.Error(t, err)
}

func TestVerifyRejectsTamperedBasecode(t *testing.T) {
	p := testParams(t, 5)
	evals := randomEvals(1<<4, 13)
	comm, err := p.Commit(evals)
	require.NoError(t, err)
	point := randomPoint(4, 102)

	proverTr := transcript.New()
	proverTr.AbsorbRoot(comm.Root())
	proof, value, err := p.Open(proverTr, comm, point)
	require.NoError(t, err)

	tampered := *proof
	tampered.Basecode = append([]fext.Element(nil), proof.Basecode...)
	tampered.Basecode[0] = tampered.Basecode[0].Add(fext.One())

	verifierTr := transcript.New()
	verifierTr.AbsorbRoot(comm.Root())
	err = p.Verify(verifierTr, comm.Root(), comm.NumVars(), point, value, &tampered)
	require.Error(t, err)
}

func TestVerifyRejectsForgedMerklePath(t *testing.T) {
	p := testParams(t, 5)
	evals := randomEvals(1<<4, 17)
	comm, err := p.Commit(evals)
	require.NoError(t, err)
	point := randomPoint(4, 103)

	proverTr := transcript.New()
	proverTr.AbsorbRoot(comm.Root())
	proof, value, err := p.Open(proverTr, comm, point)
	require.NoError(t, err)
	require.NotEmpty(t, proof.Queries)
	require.NotEmpty(t, proof.Queries[0].Levels)

	tampered := *proof
	tampered.Queries = append([]QueryProof(nil), proof.Queries...)
	tq := tampered.Queries[0]
	tq.Levels = append([]LevelOpening(nil), tq.Levels...)
	tq.Levels[0].Left = tq.Levels[0].Left.Add(fext.One())
	tampered.Queries[0] = tq

	verifierTr := transcript.New()
	verifierTr.AbsorbRoot(comm.Root())
	err = p.Verify(verifierTr, comm.Root(), comm.NumVars(), point, value, &tampered)
	require.Error(t, err)
}

// Batched open/verify: several same-size columns opened together at
// one point must all check out, and a wrong claimed value for any one
// of them must be rejected.
func TestBatchOpenVerifyRoundTrip(t *testing.T) {
	p := testParams(t, 5)
	var comms []*Commitment
	var roots [][]byte
	for i := 0; i < 3; i++ {
		evals := randomEvals(1<<4, uint64(200+i))
		c, err := p.Commit(evals)
		require.NoError(t, err)
		comms = append(comms, c)
		roots = append(roots, c.Root())
	}
	point := randomPoint(4, 300)

	proverTr := transcript.New()
	for _, r := range roots {
		proverTr.AbsorbRoot(r)
	}
	proof, values, err := p.BatchOpen(proverTr, comms, point)
	require.NoError(t, err)
	require.Len(t, values, 3)

	verifierTr := transcript.New()
	for _, r := range roots {
		verifierTr.AbsorbRoot(r)
	}
	err = p.BatchVerify(verifierTr, roots, comms[0].NumVars(), point, values, proof)
	require.NoError(t, err)

	wrongValues := append([]fext.Element(nil), values...)
	wrongValues[1] = wrongValues[1].Add(fext.One())
	verifierTr2 := transcript.New()
	for _, r := range roots {
		verifierTr2.AbsorbRoot(r)
	}
	err = p.BatchVerify(verifierTr2, roots, comms[0].NumVars(), point, wrongValues, proof)
	require.Error(t, err)
}

func randomPoint(k int, seed uint64) []fext.Element {
	out := make([]fext.Element, k)
	x := seed + 1
	for i := range out {
		x = x*6364136223846793005 + 1442695040888963407
		out[i] = fext.FromBase(field.New(x))
	}
	return out
}
