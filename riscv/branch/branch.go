// Package branch implements the six RISC-V branch instruction circuits
// (BEQ, BNE, BLT, BGE, BLTU, BGEU), each a thin composition of the shared
// gadgets package over a condition bit and the next_pc selection formula.
package branch

import (
	"fmt"

	"github.com/ceno-labs/zkvm-core/circuit"
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/ceno-labs/zkvm-core/gadgets"
	"github.com/ceno-labs/zkvm-core/lookup"
)

// Circuit is one branch mnemonic's wired constraints: next_pc = cond ?
// pc+imm : pc+4, where cond comes from the mnemonic's comparison gadget.
type Circuit struct {
	Rs1, Rs2 []*expr.Expression
	PC       *expr.Expression
	NextPC   *expr.Expression
	Imm      *expr.Expression
	Cond     *expr.Expression

	assignCond func(w *circuit.Witness, row int, rs1, rs2 []byte, m lookup.Multiplicity) bool
}

func newLimbs(cs *circuit.ConstraintSystem, name string) []*expr.Expression {
	limbs := make([]*expr.Expression, 4)
	for i := range limbs {
		limbs[i] = cs.CreateWitIn(fmt.Sprintf("%s[%d]", name, i))
	}
	return limbs
}

func newBranch(
	cs *circuit.ConstraintSystem, name string,
	rs1, rs2 []*expr.Expression,
	cond *expr.Expression,
	assignCond func(w *circuit.Witness, row int, rs1, rs2 []byte, m lookup.Multiplicity) bool,
) *Circuit {
	pc := cs.CreateWitIn(name + ".pc")
	nextPC := cs.CreateWitIn(name + ".next_pc")
	imm := cs.CreateWitIn(name + ".imm")

	// next_pc = cond*(imm-4) + (pc+4)
	formula := expr.NewScaledSum(
		cond,
		expr.Sum(imm, expr.Neg(expr.NewConstant(4))),
		expr.Sum(pc, expr.NewConstant(4)),
	)
	cs.RequireEqual(nextPC, formula)

	return &Circuit{
		Rs1: rs1, Rs2: rs2,
		PC: pc, NextPC: nextPC, Imm: imm, Cond: cond,
		assignCond: assignCond,
	}
}

// NewBeq builds the BEQ circuit: branch taken iff rs1 == rs2.
func NewBeq(cs *circuit.ConstraintSystem, name string) *Circuit {
	rs1, rs2 := newLimbs(cs, name+".rs1"), newLimbs(cs, name+".rs2")
	eq := gadgets.NewIsEqual(cs, name+".eq", rs1, rs2)
	assign := func(w *circuit.Witness, row int, a, b []byte, m lookup.Multiplicity) bool { return eq.Assign(w, row, a, b) }
	return newBranch(cs, name, rs1, rs2, eq.IsEqual, assign)
}

// NewBne builds the BNE circuit: branch taken iff rs1 != rs2.
func NewBne(cs *circuit.ConstraintSystem, name string) *Circuit {
	rs1, rs2 := newLimbs(cs, name+".rs1"), newLimbs(cs, name+".rs2")
	eq := gadgets.NewIsEqual(cs, name+".eq", rs1, rs2)
	notEq := expr.Sum(expr.One, expr.Neg(eq.IsEqual))
	assign := func(w *circuit.Witness, row int, a, b []byte, m lookup.Multiplicity) bool { return !eq.Assign(w, row, a, b) }
	return newBranch(cs, name, rs1, rs2, notEq, assign)
}

// NewBltu builds the BLTU circuit: branch taken iff rs1 < rs2 (unsigned).
func NewBltu(cs *circuit.ConstraintSystem, name string) *Circuit {
	rs1, rs2 := newLimbs(cs, name+".rs1"), newLimbs(cs, name+".rs2")
	ltu := gadgets.NewLtu(cs, name+".ltu", rs1, rs2)
	assign := func(w *circuit.Witness, row int, a, b []byte, m lookup.Multiplicity) bool { return ltu.Assign(w, row, a, b, m) }
	return newBranch(cs, name, rs1, rs2, ltu.IsLtu, assign)
}

// NewBgeu builds the BGEU circuit: branch taken iff rs1 >= rs2 (unsigned).
func NewBgeu(cs *circuit.ConstraintSystem, name string) *Circuit {
	rs1, rs2 := newLimbs(cs, name+".rs1"), newLimbs(cs, name+".rs2")
	ltu := gadgets.NewLtu(cs, name+".ltu", rs1, rs2)
	notLtu := expr.Sum(expr.One, expr.Neg(ltu.IsLtu))
	assign := func(w *circuit.Witness, row int, a, b []byte, m lookup.Multiplicity) bool { return !ltu.Assign(w, row, a, b, m) }
	return newBranch(cs, name, rs1, rs2, notLtu, assign)
}

// NewBlt builds the BLT circuit: branch taken iff rs1 < rs2 (signed).
func NewBlt(cs *circuit.ConstraintSystem, name string) *Circuit {
	rs1, rs2 := newLimbs(cs, name+".rs1"), newLimbs(cs, name+".rs2")
	lt := gadgets.NewLt(cs, name+".lt", rs1, rs2)
	assign := func(w *circuit.Witness, row int, a, b []byte, m lookup.Multiplicity) bool { return lt.Assign(w, row, a, b, m) }
	return newBranch(cs, name, rs1, rs2, lt.IsLt, assign)
}

// NewBge builds the BGE circuit: branch taken iff rs1 >= rs2 (signed).
func NewBge(cs *circuit.ConstraintSystem, name string) *Circuit {
	rs1, rs2 := newLimbs(cs, name+".rs1"), newLimbs(cs, name+".rs2")
	lt := gadgets.NewLt(cs, name+".lt", rs1, rs2)
	notLt := expr.Sum(expr.One, expr.Neg(lt.IsLt))
	assign := func(w *circuit.Witness, row int, a, b []byte, m lookup.Multiplicity) bool { return !lt.Assign(w, row, a, b, m) }
	return newBranch(cs, name, rs1, rs2, notLt, assign)
}

// u32Bytes returns v's little-endian byte limbs, limb 3 most significant.
func u32Bytes(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// EncodeImm encodes imm bit-exactly in two's complement into a 32-bit
// field value (§4.2's "encoded in two's complement into a 32-bit field
// value"): Go's int32->uint32 conversion already performs this
// reinterpretation.
func EncodeImm(imm int32) field.Element {
	return field.New(uint64(uint32(imm)))
}

// Assign populates one witness row from concrete register values, pc,
// and a pre-decoded signed immediate, recording any lookups the
// comparison gadget argues into m (nil is fine if the caller doesn't
// need the assignment-side multiplicity), and returns pc_after.
func (c *Circuit) Assign(w *circuit.Witness, row int, pc, rs1Val, rs2Val uint32, imm int32, m lookup.Multiplicity) uint32 {
	rs1Bytes := u32Bytes(rs1Val)
	rs2Bytes := u32Bytes(rs2Val)
	for i, col := range c.Rs1 {
		w.Set(col.ColumnID(), row, field.New(uint64(rs1Bytes[i])))
	}
	for i, col := range c.Rs2 {
		w.Set(col.ColumnID(), row, field.New(uint64(rs2Bytes[i])))
	}

	cond := c.assignCond(w, row, rs1Bytes, rs2Bytes, m)

	w.Set(c.PC.ColumnID(), row, field.New(uint64(pc)))
	w.Set(c.Imm.ColumnID(), row, EncodeImm(imm))

	var nextPC uint32
	if cond {
		nextPC = pc + uint32(imm)
	} else {
		nextPC = pc + 4
	}
	w.Set(c.NextPC.ColumnID(), row, field.New(uint64(nextPC)))
	return nextPC
}
