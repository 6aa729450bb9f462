// Package sumacc implements an incremental sum of affine curve points that
// amortizes the chord addition formula across the whole sequence. The
// accumulator keeps a compressed state in which the running sum's
// y-coordinate is never materialized before the final step: each addition
// reconstructs the slope to the next point directly from the previous
// slope, saving field operations at every step compared to chaining full
// additions.
//
// Two in-circuit bodies exist behind the [Accumulator] interface. The
// native body uses plain divisions. The emulated body cannot afford the
// two reductions a division followed by a squaring would cost, so it
// allocates each slope as a hint witness and binds it with a
// division-free product identity that needs a single reduction.
package sumacc

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/emulated/emparams"

	"github.com/consensys/gnark-apk/sw"
)

// State is the compressed accumulator state: the last point folded in, the
// chord slope that folded it, and the running sum's x-coordinate. Together
// they determine the running sum, whose y-coordinate is only materialized
// by Finalize.
type State[El any] struct {
	x1Prev     El
	y1Prev     El
	lambdaPrev El
	x3Prev     El
}

// Accumulator folds a sequence of non-zero affine points into their sum.
// Add consumes its input state and returns a fresh one; states are never
// mutated, so the chain of intermediate states stays valid for inspection.
//
// Every point folded in must have an x-coordinate distinct from the
// running sum's, and the first two points must have distinct
// x-coordinates. Violations abort witness generation; they are never
// silently absorbed.
type Accumulator[El any] interface {
	// Init seeds the accumulator with the sum of the first two points.
	Init(p1, p2 *sw.AffinePoint[El]) (*State[El], error)
	// Add folds p into the running sum.
	Add(st *State[El], p *sw.AffinePoint[El]) (*State[El], error)
	// Finalize materializes the running sum as an affine point.
	Finalize(st *State[El]) *sw.AffinePoint[El]
}

// New returns the [Accumulator] implementation corresponding to the
// element type El for the given builder.
func New[El any](api frontend.API) (Accumulator[El], error) {
	var ret Accumulator[El]
	switch s := any(&ret).(type) {
	case *Accumulator[frontend.Variable]:
		*s = NewNative(api)
	case *Accumulator[emulated.Element[emparams.BLS12381Fp]]:
		a, err := NewEmulated[emparams.BLS12381Fp](api)
		if err != nil {
			return ret, fmt.Errorf("new emulated accumulator: %w", err)
		}
		*s = a
	case *Accumulator[emulated.Element[emparams.BLS12377Fp]]:
		a, err := NewEmulated[emparams.BLS12377Fp](api)
		if err != nil {
			return ret, fmt.Errorf("new emulated accumulator: %w", err)
		}
		*s = a
	case *Accumulator[emulated.Element[emparams.BN254Fp]]:
		a, err := NewEmulated[emparams.BN254Fp](api)
		if err != nil {
			return ret, fmt.Errorf("new emulated accumulator: %w", err)
		}
		*s = a
	case *Accumulator[emulated.Element[emparams.BW6761Fp]]:
		a, err := NewEmulated[emparams.BW6761Fp](api)
		if err != nil {
			return ret, fmt.Errorf("new emulated accumulator: %w", err)
		}
		*s = a
	default:
		return ret, fmt.Errorf("unknown type parametrisation")
	}
	return ret, nil
}

// SumPoints folds pts through acc and returns the sum. At least two points
// are required.
func SumPoints[El any](acc Accumulator[El], pts []*sw.AffinePoint[El]) (*sw.AffinePoint[El], error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("expecting at least 2 points, got %d", len(pts))
	}
	st, err := acc.Init(pts[0], pts[1])
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	for i, p := range pts[2:] {
		if st, err = acc.Add(st, p); err != nil {
			return nil, fmt.Errorf("add point %d: %w", i+2, err)
		}
	}
	return acc.Finalize(st), nil
}
