package main

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ceno-labs/zkvm-core/basefold"
	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/lookup"
	"github.com/ceno-labs/zkvm-core/mockprover"
	"github.com/ceno-labs/zkvm-core/riscv/branch"
	"github.com/ceno-labs/zkvm-core/transcript"
)

var scenarios = map[string]func() error{
	"s1": runS1BeqTaken,
	"s2": runS2BeqNotTaken,
	"s3": runS3BltuBoundary,
	"s4": runS4BltSigned,
	"s5": runS5Monomial,
	"s6": runS6Basefold,
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run one of the spec's end-to-end scenarios (s1-s6)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			scenario, ok := scenarios[name]
			if !ok {
				return fmt.Errorf("zkcheck: unknown scenario %q (want one of s1..s6)", name)
			}
			if err := scenario(); err != nil {
				return err
			}
			log.WithField("scenario", name).Info("zkcheck: scenario passed")
			return nil
		},
	}
}

// lookupChallenges is the fixed challenge vector every scenario compresses
// lookup arguments under; a real prover would draw this from the
// transcript, but the mock prover only needs it to be consistent between
// the constraint side and the table side and to keep distinct tuples
// apart under compression (2^16 does for byte tuples; 1 would not).
var lookupChallenges = []fext.Element{fext.FromBase(field.New(1 << 16))}

func assignBranch(c *branch.Circuit, cs *circuit.ConstraintSystem, pc, rs1, rs2 uint32, imm int32) (*circuit.Witness, uint32, lookup.Multiplicity, error) {
	w, err := circuit.NewWitness(cs, 1)
	if err != nil {
		return nil, 0, nil, err
	}
	assigned := lookup.NewMultiplicity()
	next := c.Assign(w, 0, pc, rs1, rs2, imm, assigned)
	return w, next, assigned, nil
}

func checkBranchSatisfied(cs *circuit.ConstraintSystem, w *circuit.Witness, assigned lookup.Multiplicity) error {
	result := mockprover.Run(cs, w, lookupChallenges, nil, assigned)
	if !result.OK() {
		return fmt.Errorf("zkcheck: mock prover rejected witness: zero=%v equal=%v lookup=%v multiplicity=%v",
			result.ZeroErrors, result.EqualErrors, result.LookupErrors, result.MultiplicityErrors)
	}
	return nil
}

// S1. BEQ taken.
func runS1BeqTaken() error {
	cs := circuit.New()
	c := branch.NewBeq(cs, "beq")
	const m = uint32(0x1000)
	w, next, assigned, err := assignBranch(c, cs, m, 0xBEAD1010, 0xBEAD1010, 8)
	if err != nil {
		return err
	}
	if want := m + 8; next != want {
		return fmt.Errorf("zkcheck: s1: next_pc = %#x, want %#x", next, want)
	}
	return checkBranchSatisfied(cs, w, assigned)
}

// S2. BEQ not taken.
func runS2BeqNotTaken() error {
	cs := circuit.New()
	c := branch.NewBeq(cs, "beq")
	const m = uint32(0x1000)
	w, next, assigned, err := assignBranch(c, cs, m, 0xBEAD1010, 0xEF552020, 8)
	if err != nil {
		return err
	}
	if want := m + 4; next != want {
		return fmt.Errorf("zkcheck: s2: next_pc = %#x, want %#x", next, want)
	}
	return checkBranchSatisfied(cs, w, assigned)
}

// S3. BLTU boundary.
func runS3BltuBoundary() error {
	const m = uint32(0x2000)

	cs := circuit.New()
	c := branch.NewBltu(cs, "bltu")
	w, next, assigned, err := assignBranch(c, cs, m, 0xFFFFFFFE, 0xFFFFFFFF, -8)
	if err != nil {
		return err
	}
	if want := m - 8; next != want {
		return fmt.Errorf("zkcheck: s3: taken case next_pc = %#x, want %#x", next, want)
	}
	if err := checkBranchSatisfied(cs, w, assigned); err != nil {
		return err
	}

	cs2 := circuit.New()
	c2 := branch.NewBltu(cs2, "bltu")
	w2, next2, assigned2, err := assignBranch(c2, cs2, m, 0xFFFFFFFF, 0xFFFFFFFF, -8)
	if err != nil {
		return err
	}
	if want := m + 4; next2 != want {
		return fmt.Errorf("zkcheck: s3: not-taken case next_pc = %#x, want %#x", next2, want)
	}
	return checkBranchSatisfied(cs2, w2, assigned2)
}

// S4. BLT signed.
func runS4BltSigned() error {
	const m = uint32(0x3000)

	cs := circuit.New()
	c := branch.NewBlt(cs, "blt")
	w, next, assigned, err := assignBranch(c, cs, m, uint32(int32(-10)), uint32(int32(-9)), 8)
	if err != nil {
		return err
	}
	if want := m + 8; next != want {
		return fmt.Errorf("zkcheck: s4: taken case next_pc = %#x, want %#x", next, want)
	}
	if err := checkBranchSatisfied(cs, w, assigned); err != nil {
		return err
	}

	cs2 := circuit.New()
	c2 := branch.NewBlt(cs2, "blt")
	w2, next2, assigned2, err := assignBranch(c2, cs2, m, uint32(int32(1)), uint32(int32(-10)), 8)
	if err != nil {
		return err
	}
	if want := m + 4; next2 != want {
		return fmt.Errorf("zkcheck: s4: not-taken case next_pc = %#x, want %#x", next2, want)
	}
	return checkBranchSatisfied(cs2, w2, assigned2)
}

// S5. Monomial form preserves value: (x+y+a)*b*(y+z)+c, evaluated at a
// random fixed/witness/challenge assignment, must agree between the
// factored expression and its monomial form.
func runS5Monomial() error {
	x, y, z := expr.NewWitIn(0), expr.NewWitIn(1), expr.NewWitIn(2)
	a := expr.NewFixed(0)
	b := expr.NewWitIn(3)
	c := expr.NewChallenge(0, 1, fext.One(), fext.Zero())

	e := expr.Sum(
		expr.Product(
			expr.Product(expr.Sum(expr.Sum(x, y), a), b),
			expr.Sum(y, z),
		),
		c,
	)
	monomial := expr.ToMonomialForm(e)

	rng := rand.New(rand.NewSource(5))
	randFext := func() fext.Element { return fext.Element{field.New(rng.Uint64()), field.New(rng.Uint64())} }

	fixed := []fext.Element{randFext()}
	witIn := []fext.Element{randFext(), randFext(), randFext(), randFext()}
	challenges := []fext.Element{randFext()}

	got := expr.Evaluate(e, fixed, witIn, challenges)
	want := expr.Evaluate(monomial, fixed, witIn, challenges)
	if !got.Equal(want) {
		return fmt.Errorf("zkcheck: s5: monomial form disagrees with factored form")
	}
	return nil
}

// S6. BaseFold commit/open/verify a random multilinear polynomial;
// flipping the claimed value must make verification fail.
func runS6Basefold() error {
	var seed [16]byte
	copy(seed[:], "zkcheck-s6-seed!")
	const k = 10
	params, err := basefold.Setup(seed, 1, 2, 6, k)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(20))
	evals := make([]fext.Element, 1<<k)
	for i := range evals {
		evals[i] = fext.Element{field.New(rng.Uint64()), field.New(rng.Uint64())}
	}
	point := make([]fext.Element, k)
	for i := range point {
		point[i] = fext.Element{field.New(rng.Uint64()), field.New(rng.Uint64())}
	}

	comm, err := params.Commit(evals)
	if err != nil {
		return err
	}

	proverTr := transcript.New()
	proverTr.AbsorbRoot(comm.Root())
	proof, value, err := params.Open(proverTr, comm, point)
	if err != nil {
		return err
	}

	verifierTr := transcript.New()
	verifierTr.AbsorbRoot(comm.Root())
	if err := params.Verify(verifierTr, comm.Root(), comm.NumVars(), point, value, proof); err != nil {
		return fmt.Errorf("zkcheck: s6: honest proof rejected: %w", err)
	}

	tamperedTr := transcript.New()
	tamperedTr.AbsorbRoot(comm.Root())
	if err := params.Verify(tamperedTr, comm.Root(), comm.NumVars(), point, value.Add(fext.One()), proof); err == nil {
		return fmt.Errorf("zkcheck: s6: verifier accepted a wrong claimed value")
	}
	return nil
}
