// Package transcript implements the Fiat-Shamir transcript BaseFold's
// prover and verifier both drive to derive challenges non-interactively:
// a running hash state that every absorbed value folds into and every
// squeezed challenge both derives from and re-seeds, so the round count
// never has to be declared up front.
package transcript

import (
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/merkle"
)

// domainSeparator seeds an empty transcript's initial state, so two
// transcripts never collide with an unrelated hash chain that happens to
// start from all-zero state.
var domainSeparator = []byte("zkvm-core/basefold-transcript")

// Transcript accumulates absorbed values into a running digest and
// derives squeezed challenges from it in the order they're requested.
// Unlike a named-challenge transcript, which must declare every label it
// will bind before the first Bind call, this one never needs the total
// round count in advance — BaseFold's open/verify loop doesn't know it
// until folding starts.
type Transcript struct {
	state [32]byte
}

// New returns an empty transcript.
func New() *Transcript {
	h := merkle.NewHasher()
	h.Write(domainSeparator)
	t := &Transcript{}
	copy(t.state[:], h.Sum(nil))
	return t
}

// absorb folds data into the running state: state = H(state || data).
func (t *Transcript) absorb(data []byte) {
	h := merkle.NewHasher()
	h.Write(t.state[:])
	h.Write(data)
	copy(t.state[:], h.Sum(nil))
}

// AbsorbRoot binds a Merkle root into the transcript.
func (t *Transcript) AbsorbRoot(root []byte) {
	t.absorb(root)
}

// AbsorbElement binds a single base-field element.
func (t *Transcript) AbsorbElement(e field.Element) {
	b := e.Bytes()
	t.absorb(b[:])
}

// AbsorbExt binds a single extension-field element.
func (t *Transcript) AbsorbExt(e fext.Element) {
	a0, a1 := e.Basis()
	b0, b1 := a0.Bytes(), a1.Bytes()
	buf := append(append([]byte{}, b0[:]...), b1[:]...)
	t.absorb(buf)
}

// AbsorbMany binds a slice of extension-field elements in order.
func (t *Transcript) AbsorbMany(es []fext.Element) {
	for _, e := range es {
		t.AbsorbExt(e)
	}
}

var squeezeTag = []byte("squeeze")

// SqueezeChallenge derives the next extension-field challenge from
// everything absorbed so far, then re-seeds the running state with the
// derived digest so the next squeeze (with nothing absorbed in between)
// yields a different value.
func (t *Transcript) SqueezeChallenge() fext.Element {
	h := merkle.NewHasher()
	h.Write(t.state[:])
	h.Write(squeezeTag)
	out := h.Sum(nil)
	copy(t.state[:], out)

	// Split the 32-byte digest into two 8-byte field limbs so the
	// squeezed value lands in the extension field, not just its base.
	var lo, hi [8]byte
	copy(lo[:], out[:8])
	copy(hi[:], out[8:16])
	var a0, a1 field.Element
	a0.SetBytes(lo[:])
	a1.SetBytes(hi[:])
	return fext.Element{a0, a1}
}

// SqueezeMany derives n extension-field challenges in sequence.
func (t *Transcript) SqueezeMany(n int) []fext.Element {
	out := make([]fext.Element, n)
	for i := range out {
		out[i] = t.SqueezeChallenge()
	}
	return out
}
