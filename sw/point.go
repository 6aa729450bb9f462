package sw

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// AffinePoint is a point on a short Weierstrass curve given by its affine
// coordinates. The point must not be the group identity; nothing in this
// package checks for it, nor that the point is on the curve.
type AffinePoint[El any] struct {
	X, Y El
}

// PlainPoint is the out-of-circuit counterpart of [AffinePoint]: a pair of
// plain coordinates, used for circuit constants, witness precomputation
// and test oracles.
type PlainPoint struct {
	X, Y *big.Int
}

// Curve provides point operations through a [Field] handle. The same
// gadget code serves both arithmetic regimes.
type Curve[El any] struct {
	fld Field[El]
}

// NewCurve returns a point gadget operating through fld.
func NewCurve[El any](fld Field[El]) *Curve[El] {
	return &Curve[El]{fld: fld}
}

// AddUnchecked adds p and q using the affine chord formula. The formula is
// valid only when p.X ≠ q.X: doubling and points at infinity are not
// handled. When the x-coordinates coincide the chord is vertical and
// witness generation fails; the gadget never falls back to a wrong result.
// Callers must guarantee the precondition for every witness they will
// supply.
func (c *Curve[El]) AddUnchecked(p, q *AffinePoint[El]) *AffinePoint[El] {
	// λ = (q.y-p.y)/(q.x-p.x)
	qypy := c.fld.Sub(&q.Y, &p.Y)
	qxpx := c.fld.Sub(&q.X, &p.X)
	λ := c.fld.Div(qypy, qxpx)

	// x3 = λ²-p.x-q.x
	λλ := c.fld.Mul(λ, λ)
	pxqx := c.fld.Add(&p.X, &q.X)
	x3 := c.fld.Sub(λλ, pxqx)

	// y3 = λ(p.x-x3) - p.y
	pxx3 := c.fld.Sub(&p.X, x3)
	λpxx3 := c.fld.Mul(λ, pxx3)
	y3 := c.fld.Sub(λpxx3, &p.Y)

	return &AffinePoint[El]{
		X: *c.fld.Reduce(x3),
		Y: *c.fld.Reduce(y3),
	}
}

// Select returns p when bit is set and q otherwise, coordinate-wise. Both
// branches must be fully formed points.
func (c *Curve[El]) Select(bit frontend.Variable, p, q *AffinePoint[El]) *AffinePoint[El] {
	x := c.fld.Select(bit, &p.X, &q.X)
	y := c.fld.Select(bit, &p.Y, &q.Y)
	return &AffinePoint[El]{X: *x, Y: *y}
}

// AssertIsEqual asserts the coordinate-wise equality of p and q.
func (c *Curve[El]) AssertIsEqual(p, q *AffinePoint[El]) {
	c.fld.AssertIsEqual(&p.X, &q.X)
	c.fld.AssertIsEqual(&p.Y, &q.Y)
}

// NewPoint returns the constant point with the coordinates of p.
func (c *Curve[El]) NewPoint(p PlainPoint) *AffinePoint[El] {
	return &AffinePoint[El]{
		X: *c.fld.NewElement(p.X),
		Y: *c.fld.NewElement(p.Y),
	}
}
