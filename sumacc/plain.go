package sumacc

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-apk/sw"
)

// ErrSameAbscissa is returned when two operands of a chord addition share
// an x-coordinate: the chord is vertical and the slope undefined. The
// in-circuit accumulators fail witness generation under the same
// condition.
var ErrSameAbscissa = errors.New("points share an x-coordinate")

// plainEngine performs modular arithmetic over plain big.Int values.
type plainEngine struct {
	mod *big.Int
}

func newPlainEngine(mod *big.Int) *plainEngine {
	return &plainEngine{mod: new(big.Int).Set(mod)}
}

func (e *plainEngine) add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, e.mod)
}

func (e *plainEngine) sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, e.mod)
}

func (e *plainEngine) mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, e.mod)
}

func (e *plainEngine) div(a, b *big.Int) (*big.Int, error) {
	inv := new(big.Int).Mod(b, e.mod)
	if inv.ModInverse(inv, e.mod) == nil {
		return nil, ErrSameAbscissa
	}
	return e.mul(a, inv), nil
}

// Plain is the out-of-circuit counterpart of [Accumulator]: the same
// compressed-state recurrence evaluated over plain values modulo the base
// field of the curve. It precomputes witnesses and serves as a test
// oracle.
type Plain struct {
	eng    *plainEngine
	x1     *big.Int
	y1     *big.Int
	lambda *big.Int
	x3     *big.Int
}

// NewPlain seeds a plain accumulator with the sum of p1 and p2 over the
// base field mod.
func NewPlain(mod *big.Int, p1, p2 sw.PlainPoint) (*Plain, error) {
	eng := newPlainEngine(mod)
	lambda, err := eng.div(eng.sub(p2.Y, p1.Y), eng.sub(p2.X, p1.X))
	if err != nil {
		return nil, fmt.Errorf("seeding slope: %w", err)
	}
	x3 := eng.sub(eng.mul(lambda, lambda), eng.add(p1.X, p2.X))
	return &Plain{
		eng:    eng,
		x1:     new(big.Int).Set(p1.X),
		y1:     new(big.Int).Set(p1.Y),
		lambda: lambda,
		x3:     x3,
	}, nil
}

// Add folds p into the running sum.
func (a *Plain) Add(p sw.PlainPoint) error {
	num := a.eng.add(a.eng.add(a.eng.mul(a.lambda, a.eng.sub(a.x3, a.x1)), a.y1), p.Y)
	lambda, err := a.eng.div(num, a.eng.sub(p.X, a.x3))
	if err != nil {
		return fmt.Errorf("chord slope: %w", err)
	}
	a.x3 = a.eng.sub(a.eng.mul(lambda, lambda), a.eng.add(a.x3, p.X))
	a.x1 = new(big.Int).Set(p.X)
	a.y1 = new(big.Int).Set(p.Y)
	a.lambda = lambda
	return nil
}

// Finalize materializes the running sum.
func (a *Plain) Finalize() sw.PlainPoint {
	y3 := a.eng.sub(a.eng.mul(a.lambda, a.eng.sub(a.x1, a.x3)), a.y1)
	return sw.PlainPoint{X: new(big.Int).Set(a.x3), Y: y3}
}

// Sum adds pts one at a time with the full chord formula over the base
// field mod. A single point is returned as-is. It is the reference the
// accumulators are checked against, and computes the expected aggregate
// when building witnesses.
func Sum(mod *big.Int, pts []sw.PlainPoint) (sw.PlainPoint, error) {
	if len(pts) == 0 {
		return sw.PlainPoint{}, errors.New("expecting at least 1 point")
	}
	eng := newPlainEngine(mod)
	acc := sw.PlainPoint{X: new(big.Int).Set(pts[0].X), Y: new(big.Int).Set(pts[0].Y)}
	for i, p := range pts[1:] {
		lambda, err := eng.div(eng.sub(p.Y, acc.Y), eng.sub(p.X, acc.X))
		if err != nil {
			return sw.PlainPoint{}, fmt.Errorf("adding point %d: %w", i+1, err)
		}
		x3 := eng.sub(eng.mul(lambda, lambda), eng.add(acc.X, p.X))
		y3 := eng.sub(eng.mul(lambda, eng.sub(acc.X, x3)), acc.Y)
		acc = sw.PlainPoint{X: x3, Y: y3}
	}
	return acc, nil
}
