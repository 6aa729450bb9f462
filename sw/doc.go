// Package sw implements affine short Weierstrass point operations that are
// generic over the arithmetic regime: the coordinates either live directly
// in the builder's field or emulate a foreign prime field through a limb
// decomposition. The regime is selected by the element type parameter, and
// the two realizations of the [Field] handle keep the point gadgets
// identical across regimes.
//
// The gadgets deliberately support only non-zero points with pairwise
// distinct x-coordinates; see [Curve.AddUnchecked].
package sw
