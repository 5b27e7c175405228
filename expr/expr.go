// Package expr implements the constraint-system expression algebra: a
// small tagged-union tree of field/witness/challenge terms combined by
// sum, product, and scaled-sum nodes, plus canonicalization and
// monomial-form conversion used to turn a zero-check expression into the
// sum of products the sumcheck protocol operates on.
package expr

import (
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
)

// negOneCanonical is p-1, the canonical form of -1 in the base field.
const negOneCanonical = field.Modulus - 1

// Kind tags the variant an Expression holds.
type Kind int

const (
	KindConstant Kind = iota
	KindFixed
	KindWitIn
	KindChallenge
	KindSum
	KindProduct
	KindScaledSum
)

// Expression is an immutable node in the constraint expression tree.
// Only the fields relevant to Kind are populated; the rest are zero
// values.
type Expression struct {
	kind Kind

	constant uint64 // Kind == KindConstant: base-field canonical value.
	id       int    // Kind == KindFixed/KindWitIn/KindChallenge: column/challenge id.

	challengePow    uint64      // Kind == KindChallenge: exponent applied to the challenge.
	challengeScalar fext.Element // Kind == KindChallenge: multiplier applied to challenge^pow.
	challengeOffset fext.Element // Kind == KindChallenge: additive offset.

	x, a, b *Expression // Sum/Product use a,b; ScaledSum uses x,a,b for x*a+b.
}

// Zero and One are the two constants every monomial reduction bottoms
// out at.
var (
	Zero = NewConstant(0)
	One  = NewConstant(1)
)

// NewConstant builds a constant node from a canonical base-field value.
func NewConstant(v uint64) *Expression {
	return &Expression{kind: KindConstant, constant: v}
}

// NewFixed builds a reference to fixed column id.
func NewFixed(id int) *Expression {
	return &Expression{kind: KindFixed, id: id}
}

// NewWitIn builds a reference to witness column id.
func NewWitIn(id int) *Expression {
	return &Expression{kind: KindWitIn, id: id}
}

// NewChallenge builds a reference to challenge[id]^pow * scalar + offset.
func NewChallenge(id int, pow uint64, scalar, offset fext.Element) *Expression {
	return &Expression{kind: KindChallenge, id: id, challengePow: pow, challengeScalar: scalar, challengeOffset: offset}
}

// Sum builds a + b.
func Sum(a, b *Expression) *Expression {
	return &Expression{kind: KindSum, a: a, b: b}
}

// Product builds a * b.
func Product(a, b *Expression) *Expression {
	return &Expression{kind: KindProduct, a: a, b: b}
}

// NewScaledSum builds x*a + b.
func NewScaledSum(x, a, b *Expression) *Expression {
	return &Expression{kind: KindScaledSum, x: x, a: a, b: b}
}

// Neg builds -e, as the base-field constant (p-1) times e: exploiting
// p-1 ≡ -1 (mod p) rather than adding a dedicated variant, since the
// algebra has no unary negation node.
func Neg(e *Expression) *Expression {
	return Product(NewConstant(negOneCanonical), e)
}

// Kind reports the node's variant.
func (e *Expression) Kind() Kind { return e.kind }

// ConstantValue returns the canonical base-field value of a KindConstant
// node. Callers must check Kind first.
func (e *Expression) ConstantValue() uint64 { return e.constant }

// ColumnID returns the column/challenge id of a Fixed/WitIn/Challenge
// node. Callers must check Kind first.
func (e *Expression) ColumnID() int { return e.id }

// ChallengeParts returns the exponent, scalar, and offset of a
// KindChallenge node. Callers must check Kind first.
func (e *Expression) ChallengeParts() (pow uint64, scalar, offset fext.Element) {
	return e.challengePow, e.challengeScalar, e.challengeOffset
}

// Operands returns the child nodes. For KindSum/KindProduct, x is nil.
func (e *Expression) Operands() (x, a, b *Expression) { return e.x, e.a, e.b }
