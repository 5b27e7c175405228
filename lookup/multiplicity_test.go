package lookup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
)

func TestMultiplicityMergeIsCommutative(t *testing.T) {
	a := NewMultiplicity()
	a.Add(U8, Key(3))
	a.AddN(And, Key(1, 2), 2)

	b := NewMultiplicity()
	b.Add(U8, Key(3))
	b.Add(Ltu, Key(5, 9))

	merged1 := NewMultiplicity()
	merged1.Merge(a)
	merged1.Merge(b)

	merged2 := NewMultiplicity()
	merged2.Merge(b)
	merged2.Merge(a)

	if diff := cmp.Diff(merged1, merged2); diff != "" {
		t.Fatalf("Merge is not commutative (-first +second):\n%s", diff)
	}
	require.True(t, merged1.Equal(merged2))
}

func TestMultiplicityDiffReportsDelta(t *testing.T) {
	predicted := NewMultiplicity()
	predicted.Add(U8, Key(3))
	predicted.AddN(Pow, PowKey(4, 16), 2)

	assigned := NewMultiplicity()
	assigned.Add(U8, Key(3))
	assigned.Add(Pow, PowKey(4, 16))

	diffs := predicted.Diff(assigned)
	require.Len(t, diffs, 1)
	require.Equal(t, KeyDiff{ROMType: Pow, Key: PowKey(4, 16), Delta: 1}, diffs[0])
	require.False(t, predicted.Equal(assigned))
}

func TestTableWithKeysAgreesWithTable(t *testing.T) {
	challenges := []fext.Element{fext.FromBase(field.New(17))}
	for _, romType := range []ROMType{U5, U8, And, Ltu, Pow} {
		membership := Table(romType, challenges)
		withKeys := TableWithKeys(romType, challenges)
		require.Len(t, withKeys, len(membership))
		for v := range membership {
			_, ok := withKeys[v]
			require.True(t, ok, "%s: TableWithKeys missing a member Table has", romType)
		}
	}
}
