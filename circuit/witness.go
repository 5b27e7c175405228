package circuit

import (
	"github.com/consensys/gnark-crypto/ecc"

	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
)

// Witness is a dense, column-major matrix of witness and fixed values:
// one column per declared ConstraintSystem column, each a power-of-two
// length vector padded with zero (§3 "Witness column").
type Witness struct {
	NumRows int
	witIn   [][]field.Element
	fixed   [][]field.Element
}

// NewWitness allocates a witness matrix with cs's column layout and at
// least numRows rows, rounding up to the next power of two and leaving
// the padding rows zero, per §3's "(padded with zero)" column contract.
func NewWitness(cs *ConstraintSystem, numRows int) (*Witness, error) {
	if numRows <= 0 {
		return nil, ErrShape
	}
	numRows = int(ecc.NextPowerOfTwo(uint64(numRows)))
	w := &Witness{NumRows: numRows}
	w.witIn = make([][]field.Element, cs.NumWitIn())
	for i := range w.witIn {
		w.witIn[i] = make([]field.Element, numRows)
	}
	w.fixed = make([][]field.Element, cs.NumFixed())
	for i := range w.fixed {
		w.fixed[i] = make([]field.Element, numRows)
	}
	return w, nil
}

// Set writes witness column col, row row.
func (w *Witness) Set(col, row int, v field.Element) { w.witIn[col][row] = v }

// Get reads witness column col, row row.
func (w *Witness) Get(col, row int) field.Element { return w.witIn[col][row] }

// SetFixed writes fixed column col, row row.
func (w *Witness) SetFixed(col, row int, v field.Element) { w.fixed[col][row] = v }

// GetFixed reads fixed column col, row row.
func (w *Witness) GetFixed(col, row int) field.Element { return w.fixed[col][row] }

// Column returns witness column col as a base-field slice, for building
// its multilinear extension.
func (w *Witness) Column(col int) []field.Element { return w.witIn[col] }

// FixedColumn returns fixed column col as a base-field slice.
func (w *Witness) FixedColumn(col int) []field.Element { return w.fixed[col] }

// Row lifts row r's witness/fixed cells into the extension field for
// per-row expression evaluation (mock prover, virtual-polynomial
// construction).
func (w *Witness) Row(r int) (witIn, fixed []fext.Element) {
	witIn = make([]fext.Element, len(w.witIn))
	for c := range w.witIn {
		witIn[c] = fext.FromBase(w.witIn[c][r])
	}
	fixed = make([]fext.Element, len(w.fixed))
	for c := range w.fixed {
		fixed[c] = fext.FromBase(w.fixed[c][r])
	}
	return witIn, fixed
}
