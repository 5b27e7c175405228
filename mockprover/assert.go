package mockprover

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/lookup"
)

// ExpectedError names one zero-check violation AssertWithExpectedErrors
// requires Run to report, by the (namespace, row) pair AssertZeroError
// carries.
type ExpectedError struct {
	Name string
	Row  int
}

// AssertSatisfied requires every mock-prover check to pass.
func AssertSatisfied(t *testing.T, cs *circuit.ConstraintSystem, w *circuit.Witness, challenges []fext.Element, tables map[lookup.ROMType]map[fext.Element]uint64, assigned lookup.Multiplicity) {
	t.Helper()
	result := Run(cs, w, challenges, tables, assigned)
	require.Empty(t, result.ZeroErrors, "unexpected zero-check failures: %+v", result.ZeroErrors)
	require.Empty(t, result.EqualErrors, "unexpected require_equal failures: %+v", result.EqualErrors)
	require.Empty(t, result.LookupErrors, "unexpected lookup failures: %+v", result.LookupErrors)
	require.Empty(t, result.MultiplicityErrors, "unexpected lookup-multiplicity mismatch: %+v", result.MultiplicityErrors)
}

// AssertWithExpectedErrors requires Run to report exactly the zero-check
// violations named in want, by namespace and row, and nothing else —
// the negative-path shape spec.md §4.2 describes for pinning down which
// row and constraint a deliberately broken witness must fail, without
// also masking an unrelated lookup or multiplicity bug.
func AssertWithExpectedErrors(t *testing.T, cs *circuit.ConstraintSystem, w *circuit.Witness, challenges []fext.Element, tables map[lookup.ROMType]map[fext.Element]uint64, assigned lookup.Multiplicity, want []ExpectedError) {
	t.Helper()
	result := Run(cs, w, challenges, tables, assigned)

	got := make(map[ExpectedError]bool, len(result.ZeroErrors))
	for _, e := range result.ZeroErrors {
		got[ExpectedError{Name: e.Name, Row: e.Row}] = true
	}
	wantSet := make(map[ExpectedError]bool, len(want))
	for _, e := range want {
		wantSet[e] = true
	}

	for e := range wantSet {
		require.True(t, got[e], "expected zero-check %q to fail at row %d", e.Name, e.Row)
	}
	for e := range got {
		require.True(t, wantSet[e], "unexpected zero-check failure %q at row %d", e.Name, e.Row)
	}

	require.Empty(t, result.EqualErrors, "unexpected require_equal failures: %+v", result.EqualErrors)
	require.Empty(t, result.LookupErrors, "unexpected lookup failures: %+v", result.LookupErrors)
	require.Empty(t, result.MultiplicityErrors, "unexpected lookup-multiplicity mismatch: %+v", result.MultiplicityErrors)
}
