package apk

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/std/math/emulated/emparams"
	"github.com/stretchr/testify/require"

	"github.com/consensys/gnark-apk/sw"
)

func recompose(limbs []*big.Int, nbBits uint) *big.Int {
	res := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		res.Lsh(res, nbBits)
		res.Add(res, limbs[i])
	}
	return res
}

func TestBitmaskRoundTrip(t *testing.T) {
	mod := ecc.BLS12_381.ScalarField()
	for _, n := range []int{1, 3, 64, 200, mod.BitLen() - 1} {
		mask := bitset.New(uint(n))
		r, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), uint(n)))
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			if r.Bit(i) == 1 {
				mask.Set(uint(i))
			}
		}

		packed, err := PackBitmask(mask, n, mod)
		require.NoError(t, err)
		back := UnpackBitmask(packed, n)
		require.True(t, mask.Equal(back), "bitmask round trip failed for n=%d", n)
	}
}

func TestBitmaskCapacity(t *testing.T) {
	mod := ecc.BLS12_381.ScalarField()
	mask := bitset.New(uint(mod.BitLen()))
	_, err := PackBitmask(mask, mod.BitLen(), mod)
	require.Error(t, err)
}

func TestCoordsToLimbs(t *testing.T) {
	var fp emparams.BLS12381Fp
	pts := randomPlain381(4)

	limbs, err := CoordsToLimbs[emparams.BLS12381Fp](pts)
	require.NoError(t, err)
	require.Len(t, limbs, 2*int(fp.NbLimbs())*len(pts))

	// limbs must recompose to the original coordinates
	per := int(fp.NbLimbs())
	for i, p := range pts {
		x := recompose(limbs[2*per*i:2*per*i+per], fp.BitsPerLimb())
		y := recompose(limbs[2*per*i+per:2*per*(i+1)], fp.BitsPerLimb())
		require.Zero(t, x.Cmp(p.X))
		require.Zero(t, y.Cmp(p.Y))
	}
}

func TestCoordsToLimbsOverflow(t *testing.T) {
	var fp emparams.BLS12381Fp
	huge := new(big.Int).Lsh(big.NewInt(1), fp.NbLimbs()*fp.BitsPerLimb())
	_, err := CoordsToLimbs[emparams.BLS12381Fp]([]sw.PlainPoint{{X: huge, Y: big.NewInt(1)}})
	require.Error(t, err)
}

func TestCoordsNative(t *testing.T) {
	pts := randomPlain377(3)
	coords := CoordsNative(pts)
	require.Len(t, coords, 2*len(pts))
	for i, p := range pts {
		require.Zero(t, coords[2*i].Cmp(p.X))
		require.Zero(t, coords[2*i+1].Cmp(p.Y))
	}
}
