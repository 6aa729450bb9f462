package sumacc

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/std/math/emulated"
)

func init() {
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hint functions used in the package.
func GetHints() []solver.Hint {
	return []solver.Hint{
		chordSlopeHint,
	}
}

// chordSlopeHint computes the slope of the chord through the running sum
// and the point being folded in, from the compressed accumulator state.
// Inputs: λ, x1, y1, x3, p.x, p.y. The running sum's y-coordinate is
// reconstructed as λ(x1-x3)-y1, it is never an input.
func chordSlopeHint(mod *big.Int, inputs, outputs []*big.Int) error {
	return emulated.UnwrapHint(inputs, outputs, func(field *big.Int, inputs, outputs []*big.Int) error {
		if len(inputs) != 6 {
			return errors.New("expecting six inputs")
		}
		if len(outputs) != 1 {
			return errors.New("expecting one output")
		}
		lambda, x1, y1, x3, px, py := inputs[0], inputs[1], inputs[2], inputs[3], inputs[4], inputs[5]
		num := new(big.Int).Sub(x3, x1)
		num.Mul(num, lambda)
		num.Add(num, y1)
		num.Add(num, py)
		num.Mod(num, field)
		den := new(big.Int).Sub(px, x3)
		den.Mod(den, field)
		if den.ModInverse(den, field) == nil {
			return errors.New("vertical chord: point collides with the running sum")
		}
		num.Mul(num, den)
		outputs[0].Mod(num, field)
		return nil
	})
}
