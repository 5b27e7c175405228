// Package fext implements the degree-2 extension field E = F_p[w]/(w^2-7)
// over the Goldilocks base field, the field challenges and opening values
// live in throughout the constraint system and the BaseFold PCS.
package fext

import "github.com/ceno-labs/zkvm-core/field"

// nonResidue is the irreducible X^2 - 7 used to build the extension: 7 is
// not a quadratic residue mod the Goldilocks prime.
const nonResidue uint64 = 7

// Element represents a0 + a1*w, stored as [a0, a1].
type Element [2]field.Element

// Zero is the additive identity.
func Zero() Element { return Element{field.Zero(), field.Zero()} }

// One is the multiplicative identity.
func One() Element { return Element{field.One(), field.Zero()} }

// FromBase embeds a base-field element into the extension.
func FromBase(x field.Element) Element { return Element{x, field.Zero()} }

// IsZero reports whether z is the additive identity.
func (z Element) IsZero() bool { return z[0].IsZero() && z[1].IsZero() }

// Equal compares two elements component-wise.
func (z Element) Equal(x Element) bool { return z[0].Equal(x[0]) && z[1].Equal(x[1]) }

// Add returns z + x.
func (z Element) Add(x Element) Element {
	return Element{z[0].Add(x[0]), z[1].Add(x[1])}
}

// Sub returns z - x.
func (z Element) Sub(x Element) Element {
	return Element{z[0].Sub(x[0]), z[1].Sub(x[1])}
}

// Neg returns -z.
func (z Element) Neg() Element {
	return Element{z[0].Neg(), z[1].Neg()}
}

// Mul returns z * x, using w^2 = nonResidue to reduce the cross term.
func (z Element) Mul(x Element) Element {
	a0, a1 := z[0], z[1]
	b0, b1 := x[0], x[1]

	t0 := a0.Mul(b0)
	t1 := a1.Mul(b1)
	cross := a0.Add(a1).Mul(b0.Add(b1)).Sub(t0).Sub(t1)

	nr := field.New(nonResidue)
	real := t0.Add(t1.Mul(nr))
	return Element{real, cross}
}

// MulBase returns z scaled by a base-field element.
func (z Element) MulBase(x field.Element) Element {
	return Element{z[0].Mul(x), z[1].Mul(x)}
}

// Square returns z * z.
func (z Element) Square() Element { return z.Mul(z) }

// conjugate returns a0 - a1*w.
func (z Element) conjugate() Element { return Element{z[0], z[1].Neg()} }

// norm returns a0^2 - 7*a1^2, a base-field element, via z * conjugate(z).
func (z Element) norm() field.Element {
	a0sq := z[0].Square()
	a1sq := z[1].Square()
	return a0sq.Sub(a1sq.Mul(field.New(nonResidue)))
}

// Inverse returns z^-1 via the conjugate/norm identity. It panics if z is
// zero, mirroring field.Element.Inverse's contract.
func (z Element) Inverse() Element {
	if z.IsZero() {
		panic("fext: inverse of zero")
	}
	normInv := z.norm().Inverse()
	conj := z.conjugate()
	return Element{conj[0].Mul(normInv), conj[1].Mul(normInv)}
}

// TryInverse returns (z^-1, true), or (0, false) if z is zero.
func (z Element) TryInverse() (Element, bool) {
	if z.IsZero() {
		return Zero(), false
	}
	return z.Inverse(), true
}

// Exp returns z^e by square-and-multiply.
func (z Element) Exp(e uint64) Element {
	result := One()
	base := z
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

// Basis returns the two base-field coordinates (a0, a1).
func (z Element) Basis() (field.Element, field.Element) { return z[0], z[1] }
