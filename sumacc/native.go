package sumacc

import (
	"github.com/consensys/gnark/frontend"

	"github.com/consensys/gnark-apk/sw"
)

// Native implements [Accumulator] over the builder's own field. Each Add
// costs one division and one squaring; the running sum's y-coordinate is
// reconstructed inside the slope numerator instead of being computed per
// step.
type Native struct {
	api frontend.API
}

// NewNative returns an accumulator for points with coordinates in the
// builder's field.
func NewNative(api frontend.API) *Native {
	return &Native{api: api}
}

func (a *Native) Init(p1, p2 *sw.AffinePoint[frontend.Variable]) (*State[frontend.Variable], error) {
	// λ = (y2-y1)/(x2-x1)
	lambda := a.api.Div(a.api.Sub(p2.Y, p1.Y), a.api.Sub(p2.X, p1.X))
	// x3 = λ²-x1-x2
	x3 := a.api.Sub(a.api.Mul(lambda, lambda), p1.X, p2.X)
	return &State[frontend.Variable]{
		x1Prev:     p1.X,
		y1Prev:     p1.Y,
		lambdaPrev: lambda,
		x3Prev:     x3,
	}, nil
}

func (a *Native) Add(st *State[frontend.Variable], p *sw.AffinePoint[frontend.Variable]) (*State[frontend.Variable], error) {
	// The running sum is (x3, y3) with y3 = λ(x1-x3)-y1, so the chord
	// slope to p is (p.y-y3)/(p.x-x3) = (λ(x3-x1)+y1+p.y)/(p.x-x3),
	// which needs no materialized y3.
	num := a.api.Add(a.api.Mul(st.lambdaPrev, a.api.Sub(st.x3Prev, st.x1Prev)), st.y1Prev, p.Y)
	lambda := a.api.Div(num, a.api.Sub(p.X, st.x3Prev))
	x3 := a.api.Sub(a.api.Mul(lambda, lambda), st.x3Prev, p.X)
	return &State[frontend.Variable]{
		x1Prev:     p.X,
		y1Prev:     p.Y,
		lambdaPrev: lambda,
		x3Prev:     x3,
	}, nil
}

func (a *Native) Finalize(st *State[frontend.Variable]) *sw.AffinePoint[frontend.Variable] {
	// y3 = λ(x1-x3)-y1
	y3 := a.api.Sub(a.api.Mul(st.lambdaPrev, a.api.Sub(st.x1Prev, st.x3Prev)), st.y1Prev)
	return &sw.AffinePoint[frontend.Variable]{
		X: st.x3Prev,
		Y: y3,
	}
}
