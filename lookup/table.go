package lookup

import (
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
)

// Key encodes a tuple argued to a table as a single integer, for the
// lookup-multiplicity bookkeeping (§3 "Lookup multiplicity"). This is a
// bookkeeping identifier only — independent of any verifier challenge —
// distinct from the challenge-compressed field value the mock prover
// checks table membership against (see Table below). Each part is packed
// into 16 bits: wide enough for the widest range table (U16, values up to
// 65535) as well as the byte-sized parts the bitwise/Ltu tables argue, so
// two distinct tuples of the same length never collide. Tuples of
// different lengths can (Key(3) == Key(0, 3)); Multiplicity keeps a
// separate key space per ROMType, and each table keys one tuple length.
func Key(parts ...uint64) uint64 {
	var k uint64
	for _, p := range parts {
		k = (k << 16) | (p & 0xFFFF)
	}
	return k
}

// PowKey encodes the (exponent, 2^exponent) tuple the Pow table argues.
func PowKey(exponent, value uint64) uint64 {
	return (exponent << 32) | (value & 0xFFFFFFFF)
}

// Table materializes the challenge-compressed membership set for romType:
// the value every row's lookup expression must land on for some row to be
// a legal argument into that table. Range tables enumerate their domain;
// bitwise tables enumerate all byte pairs; Pow enumerates (exponent,
// 2^exponent); Instruction has no fixed content and is supplied by the
// decoder collaborator, so it is not constructible here.
func Table(romType ROMType, challenges []fext.Element) map[fext.Element]struct{} {
	set := make(map[fext.Element]struct{})
	add := func(parts ...uint64) { set[compress(challenges, parts...)] = struct{}{} }

	switch romType {
	case U5:
		for v := uint64(0); v < 1<<5; v++ {
			add(v)
		}
	case U8:
		for v := uint64(0); v < 1<<8; v++ {
			add(v)
		}
	case U14:
		for v := uint64(0); v < 1<<14; v++ {
			add(v)
		}
	case U16:
		for v := uint64(0); v < 1<<16; v++ {
			add(v)
		}
	case And:
		for a := uint64(0); a < 1<<8; a++ {
			for b := uint64(0); b < 1<<8; b++ {
				add(a, b, a&b)
			}
		}
	case Or:
		for a := uint64(0); a < 1<<8; a++ {
			for b := uint64(0); b < 1<<8; b++ {
				add(a, b, a|b)
			}
		}
	case Xor:
		for a := uint64(0); a < 1<<8; a++ {
			for b := uint64(0); b < 1<<8; b++ {
				add(a, b, a^b)
			}
		}
	case Ltu:
		for a := uint64(0); a < 1<<8; a++ {
			for b := uint64(0); b < 1<<8; b++ {
				isLtu := uint64(0)
				if a < b {
					isLtu = 1
				}
				add(a, b, isLtu)
			}
		}
	case Pow:
		for exp := uint64(0); exp < 32; exp++ {
			add(exp, uint64(1)<<exp)
		}
	case Instruction:
		return set // Supplied externally by the decoder collaborator.
	}
	return set
}

// TableWithKeys is Table's membership set together with each member's
// Key (or PowKey, for Pow), so a caller holding only a compressed field
// value can recover which bookkeeping key it corresponds to — the mock
// prover's lookup-multiplicity check (spec.md §4.2 step 4) needs this to
// classify a satisfied lookup by the same key Multiplicity uses.
func TableWithKeys(romType ROMType, challenges []fext.Element) map[fext.Element]uint64 {
	keys := make(map[fext.Element]uint64)
	add := func(key uint64, parts ...uint64) { keys[compress(challenges, parts...)] = key }

	switch romType {
	case U5:
		for v := uint64(0); v < 1<<5; v++ {
			add(Key(v), v)
		}
	case U8:
		for v := uint64(0); v < 1<<8; v++ {
			add(Key(v), v)
		}
	case U14:
		for v := uint64(0); v < 1<<14; v++ {
			add(Key(v), v)
		}
	case U16:
		for v := uint64(0); v < 1<<16; v++ {
			add(Key(v), v)
		}
	case And:
		for a := uint64(0); a < 1<<8; a++ {
			for b := uint64(0); b < 1<<8; b++ {
				add(Key(a, b), a, b, a&b)
			}
		}
	case Or:
		for a := uint64(0); a < 1<<8; a++ {
			for b := uint64(0); b < 1<<8; b++ {
				add(Key(a, b), a, b, a|b)
			}
		}
	case Xor:
		for a := uint64(0); a < 1<<8; a++ {
			for b := uint64(0); b < 1<<8; b++ {
				add(Key(a, b), a, b, a^b)
			}
		}
	case Ltu:
		for a := uint64(0); a < 1<<8; a++ {
			for b := uint64(0); b < 1<<8; b++ {
				isLtu := uint64(0)
				if a < b {
					isLtu = 1
				}
				add(Key(a, b), a, b, isLtu)
			}
		}
	case Pow:
		for exp := uint64(0); exp < 32; exp++ {
			value := uint64(1) << exp
			add(PowKey(exp, value), exp, value)
		}
	case Instruction:
		return keys // Supplied externally by the decoder collaborator.
	}
	return keys
}

// compress folds a tuple into a single extension-field value via a
// random linear combination in the first supplied challenge, the same
// compression shape the constraint system's lookup expressions use to
// reduce a multi-part lookup argument to a single field check.
func compress(challenges []fext.Element, parts ...uint64) fext.Element {
	acc := fext.Zero()
	if len(parts) == 0 {
		return acc
	}
	var base fext.Element
	if len(challenges) > 0 {
		base = challenges[0]
	} else {
		base = fext.One()
	}
	power := fext.One()
	for _, p := range parts {
		acc = acc.Add(power.MulBase(field.New(p)))
		power = power.Mul(base)
	}
	return acc
}
