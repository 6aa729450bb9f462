package sumacc

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/consensys/gnark-apk/sw"
)

// Emulated implements [Accumulator] for points with coordinates in the
// emulated prime field T.
//
// A direct port of the native formulas would pay two reductions per Add:
// one inside the division and one for the squaring. Instead, the chord
// slope is computed out of circuit by chordSlopeHint and bound by the
// division-free identity
//
//	λ'·(p.x-x3) + λ·(x1-x3) == y1 + p.y
//
// where both products are accumulated without reduction and collapsed by
// the single reduction inside the equality assertion. When p.x = x3 the
// identity is unsatisfiable for every value of λ', so a colliding point
// aborts witness generation rather than corrupting the sum.
type Emulated[T emulated.FieldParams] struct {
	f *emulated.Field[T]
}

// NewEmulated returns an accumulator for points with coordinates in the
// emulated field T.
func NewEmulated[T emulated.FieldParams](api frontend.API) (*Emulated[T], error) {
	f, err := emulated.NewField[T](api)
	if err != nil {
		return nil, fmt.Errorf("new emulated field: %w", err)
	}
	return &Emulated[T]{f: f}, nil
}

func (a *Emulated[T]) Init(p1, p2 *sw.AffinePoint[emulated.Element[T]]) (*State[emulated.Element[T]], error) {
	// λ = (y2-y1)/(x2-x1)
	lambda := a.f.Div(a.f.Sub(&p2.Y, &p1.Y), a.f.Sub(&p2.X, &p1.X))
	// x3 = λ²-x1-x2
	x3 := a.f.Sub(a.f.Mul(lambda, lambda), a.f.Add(&p1.X, &p2.X))
	return &State[emulated.Element[T]]{
		x1Prev:     p1.X,
		y1Prev:     p1.Y,
		lambdaPrev: *lambda,
		// the next Add multiplies x3 without reduction, so it must be
		// canonical
		x3Prev: *a.f.Reduce(x3),
	}, nil
}

func (a *Emulated[T]) Add(st *State[emulated.Element[T]], p *sw.AffinePoint[emulated.Element[T]]) (*State[emulated.Element[T]], error) {
	res, err := a.f.NewHint(chordSlopeHint, 1, &st.lambdaPrev, &st.x1Prev, &st.y1Prev, &st.x3Prev, &p.X, &p.Y)
	if err != nil {
		return nil, fmt.Errorf("chord slope hint: %w", err)
	}
	lambda := res[0]

	// λ'·(p.x-x3) + λ·(x1-x3) == y1 + p.y, both products unreduced, one
	// reduction total
	left := a.f.MulNoReduce(lambda, a.f.Sub(&p.X, &st.x3Prev))
	right := a.f.MulNoReduce(&st.lambdaPrev, a.f.Sub(&st.x1Prev, &st.x3Prev))
	a.f.AssertIsEqual(a.f.Add(left, right), a.f.Add(&st.y1Prev, &p.Y))

	// x3' = λ'²-x3-p.x
	x3 := a.f.Sub(a.f.Mul(lambda, lambda), a.f.Add(&st.x3Prev, &p.X))
	return &State[emulated.Element[T]]{
		x1Prev:     p.X,
		y1Prev:     p.Y,
		lambdaPrev: *lambda,
		x3Prev:     *a.f.Reduce(x3),
	}, nil
}

func (a *Emulated[T]) Finalize(st *State[emulated.Element[T]]) *sw.AffinePoint[emulated.Element[T]] {
	// y3 = λ(x1-x3)-y1
	y3 := a.f.Sub(a.f.Mul(&st.lambdaPrev, a.f.Sub(&st.x1Prev, &st.x3Prev)), &st.y1Prev)
	return &sw.AffinePoint[emulated.Element[T]]{
		X: st.x3Prev,
		Y: *a.f.Reduce(y3),
	}
}
