// Package apk implements a circuit proving that a disclosed aggregate
// public key equals a fixed seed plus the subset of a public key list
// selected by a packed bitmask, together with the utilities assembling the
// verifier-side public inputs.
package apk

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std/math/bits"

	"github.com/consensys/gnark-apk/sw"
)

// Circuit proves Aggregate == Seed + Σ Keys[i] over the indices i with bit
// i of PackedBits set (little-endian). The seed is compiled in as a
// constant; the keys, the bitmask and the aggregate are public inputs. The
// element type parameter selects the arithmetic regime: the key
// coordinates either live in the builder's field or emulate a foreign
// one.
//
// The selection is branch-free: every step computes the candidate sum and
// keeps either it or the previous running sum, so the constraint topology
// does not depend on the bitmask value. The candidate is computed even for
// unset bits, so the x-coordinates of the seed and of all keys must stay
// pairwise distinct from every intermediate running sum; otherwise witness
// generation fails (see [sw.Curve.AddUnchecked]). For independently
// sampled keys a collision has negligible probability; the circuit does
// not enforce distinctness.
type Circuit[El any] struct {
	Keys       []sw.AffinePoint[El] `gnark:",public"`
	PackedBits frontend.Variable    `gnark:",public"`
	Aggregate  sw.AffinePoint[El]   `gnark:",public"`

	// Seed is a circuit constant, not an input. It must be set on the
	// circuit passed to the compiler.
	Seed sw.PlainPoint `gnark:"-"`
}

func (c *Circuit[El]) Define(api frontend.API) error {
	if len(c.Keys) >= api.Compiler().FieldBitLen() {
		return fmt.Errorf("%d keys exceed the bitmask capacity of %d bits", len(c.Keys), api.Compiler().FieldBitLen()-1)
	}
	if c.Seed.X == nil || c.Seed.Y == nil {
		return fmt.Errorf("seed not set")
	}
	fld, err := sw.GetField[El](api)
	if err != nil {
		return fmt.Errorf("get field: %w", err)
	}
	curve := sw.NewCurve(fld)

	log := logger.Logger()
	log.Debug().Int("nbKeys", len(c.Keys)).Msg("building aggregate key circuit")

	bs := bits.ToBinary(api, c.PackedBits)
	// a selector bit without a matching key would silently drop a term
	for _, b := range bs[len(c.Keys):] {
		api.AssertIsEqual(b, 0)
	}

	running := curve.NewPoint(c.Seed)
	for i := range c.Keys {
		candidate := curve.AddUnchecked(running, &c.Keys[i])
		running = curve.Select(bs[i], candidate, running)
	}
	curve.AssertIsEqual(running, &c.Aggregate)
	return nil
}
