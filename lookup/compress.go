package lookup

import (
	"github.com/ceno-labs/zkvm-core/expr"
	"github.com/ceno-labs/zkvm-core/fext"
)

// CompressExpr builds the symbolic counterpart of compress: a lookup
// argument's multi-part tuple reduced to a single field value via a
// random linear combination in challenge[challengeID], Σ parts[i] *
// challenge^i. Table's numeric compression and this expression must
// agree — both are driven by the same challenge vector at mock-prover
// time — for lookup membership checks to mean anything.
func CompressExpr(challengeID int, parts ...*expr.Expression) *expr.Expression {
	if len(parts) == 0 {
		return expr.Zero
	}
	base := expr.NewChallenge(challengeID, 1, fext.One(), fext.Zero())
	acc := parts[0]
	power := base
	for i := 1; i < len(parts); i++ {
		acc = expr.Sum(acc, expr.Product(power, parts[i]))
		power = expr.Product(power, base)
	}
	return acc
}
