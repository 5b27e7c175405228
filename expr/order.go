package expr

import "github.com/ceno-labs/zkvm-core/fext"

// kindRank fixes the total order Fixed < WitIn < Constant < Challenge <
// Sum < Product < ScaledSum used to break ties between differently-kinded
// nodes in Compare.
func kindRank(k Kind) int {
	switch k {
	case KindFixed:
		return 0
	case KindWitIn:
		return 1
	case KindConstant:
		return 2
	case KindChallenge:
		return 3
	case KindSum:
		return 4
	case KindProduct:
		return 5
	case KindScaledSum:
		return 6
	default:
		panic("expr: unknown kind")
	}
}

// Compare is a lexicographic total order over expression trees: compare
// kinds first, then arguments left to right within a kind. It mirrors
// the intended order documented alongside the algorithm this is grounded
// on (Fixed < WitIn < Constant < Challenge < Sum < Product < ScaledSum);
// ties within a kind recurse into the node's operands/payload.
func Compare(a, b *Expression) int {
	if a.kind != b.kind {
		return intCmp(kindRank(a.kind), kindRank(b.kind))
	}
	switch a.kind {
	case KindFixed, KindWitIn:
		return intCmp(a.id, b.id)
	case KindConstant:
		return uint64Cmp(a.constant, b.constant)
	case KindChallenge:
		if c := intCmp(a.id, b.id); c != 0 {
			return c
		}
		if c := uint64Cmp(a.challengePow, b.challengePow); c != 0 {
			return c
		}
		if c := cmpExt(a.challengeScalar, b.challengeScalar); c != 0 {
			return c
		}
		return cmpExt(a.challengeOffset, b.challengeOffset)
	case KindSum, KindProduct:
		if c := Compare(a.a, b.a); c != 0 {
			return c
		}
		return Compare(a.b, b.b)
	case KindScaledSum:
		if c := Compare(a.x, b.x); c != 0 {
			return c
		}
		if c := Compare(a.a, b.a); c != 0 {
			return c
		}
		return Compare(a.b, b.b)
	default:
		panic("expr: unknown kind")
	}
}

// Less reports whether a sorts strictly before b under Compare.
func Less(a, b *Expression) bool { return Compare(a, b) < 0 }

// Equal reports whether a and b are identical under Compare.
func Equal(a, b *Expression) bool { return Compare(a, b) == 0 }

func cmpExt(a, b fext.Element) int {
	a0, a1 := a.Basis()
	b0, b1 := b.Basis()
	if c := uint64Cmp(a0.Canonical(), b0.Canonical()); c != 0 {
		return c
	}
	return uint64Cmp(a1.Canonical(), b1.Canonical())
}

func intCmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func uint64Cmp(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
