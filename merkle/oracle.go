// Package merkle wraps gnark-crypto's Merkle accumulator into the
// column-major oracle BaseFold commits codewords to: one leaf per matrix
// row, hashed with blake2b.
package merkle

import (
	"errors"
	"hash"

	"github.com/consensys/gnark-crypto/accumulator/merkletree"
	"golang.org/x/crypto/blake2b"

	"github.com/ceno-labs/zkvm-core/field"
)

// ErrRowCount is raised when the number of leaves pushed isn't a power
// of two, mirroring the FRI oracle's even-size requirement.
var ErrRowCount = errors.New("merkle: leaf count must be a power of two")

// NewHasher returns the hash.Hash every oracle in this package commits
// and verifies with.
func NewHasher() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// leafBytes flattens one row of field elements into the oracle's leaf
// encoding, concatenating each element's canonical byte form.
func leafBytes(row []field.Element) []byte {
	buf := make([]byte, 0, 8*len(row))
	for _, e := range row {
		b := e.Bytes()
		buf = append(buf, b[:]...)
	}
	return buf
}

// Oracle is a committed Merkle tree over a codeword's rows.
type Oracle struct {
	root []byte
	rows [][]byte
}

// Commit builds an Oracle over codeword, one leaf per row (rows are
// field-element vectors, e.g. the several columns evaluated at a fixed
// index across an interleaved batch).
func Commit(codeword [][]field.Element) (*Oracle, error) {
	n := len(codeword)
	if n == 0 || n&(n-1) != 0 {
		return nil, ErrRowCount
	}
	rows := make([][]byte, n)
	for i, row := range codeword {
		rows[i] = leafBytes(row)
	}

	t := merkletree.New(NewHasher())
	for _, r := range rows {
		t.Push(r)
	}
	root := t.Root()

	return &Oracle{root: root, rows: rows}, nil
}

// Root returns the committed root hash.
func (o *Oracle) Root() []byte { return o.root }

// OpeningProof is one row's Merkle authentication path.
type OpeningProof struct {
	Leaf      []byte
	ProofSet  [][]byte
	Index     uint64
	NumLeaves uint64
}

// Open returns the authentication path for row index.
func (o *Oracle) Open(index uint64) (OpeningProof, error) {
	if index >= uint64(len(o.rows)) {
		return OpeningProof{}, errors.New("merkle: index out of range")
	}
	t := merkletree.New(NewHasher())
	if err := t.SetIndex(index); err != nil {
		return OpeningProof{}, err
	}
	for _, r := range o.rows {
		t.Push(r)
	}
	root, proofSet, idx, numLeaves := t.Prove()
	return OpeningProof{Leaf: proofSet[0], ProofSet: proofSet, Index: idx, NumLeaves: numLeaves}, nil
}

// Verify checks an opening proof against root.
func Verify(root []byte, proof OpeningProof) bool {
	return merkletree.VerifyProof(NewHasher(), root, proof.ProofSet, proof.Index, proof.NumLeaves)
}
