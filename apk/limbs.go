package apk

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/consensys/gnark-apk/sw"
)

// PackBitmask packs the first n bits of mask into a single element of the
// field with modulus mod, little-endian: bit i selects Keys[i]. n must be
// strictly below the field's bit capacity so that every bit pattern stays
// canonical.
func PackBitmask(mask *bitset.BitSet, n int, mod *big.Int) (*big.Int, error) {
	if n >= mod.BitLen() {
		return nil, fmt.Errorf("%d bits exceed the field capacity of %d", n, mod.BitLen()-1)
	}
	res := new(big.Int)
	for i := 0; i < n; i++ {
		if mask.Test(uint(i)) {
			res.SetBit(res, i, 1)
		}
	}
	return res, nil
}

// UnpackBitmask recovers the first n selector bits from a packed value. It
// is the inverse of [PackBitmask].
func UnpackBitmask(v *big.Int, n int) *bitset.BitSet {
	mask := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		if v.Bit(i) == 1 {
			mask.Set(uint(i))
		}
	}
	return mask
}

// CoordsToLimbs flattens the coordinates of pts into the public-input limb
// sequence of the emulated field T: for every point, the limbs of x
// followed by the limbs of y, little-endian, matching the order in which
// the compiler allocates public emulated elements. The transform is
// deterministic and its output length is fixed per curve/field pair at
// 2·NbLimbs·len(pts).
func CoordsToLimbs[T emulated.FieldParams](pts []sw.PlainPoint) ([]*big.Int, error) {
	var fp T
	nbLimbs := int(fp.NbLimbs())
	nbBits := fp.BitsPerLimb()
	res := make([]*big.Int, 0, 2*nbLimbs*len(pts))
	for i, p := range pts {
		for _, coord := range [...]*big.Int{p.X, p.Y} {
			limbs, err := decompose(coord, nbBits, nbLimbs)
			if err != nil {
				return nil, fmt.Errorf("decompose coordinate of point %d: %w", i, err)
			}
			res = append(res, limbs...)
		}
	}
	return res, nil
}

// CoordsNative returns the coordinates of pts as-is, in the same (x, y)
// order as [CoordsToLimbs], for circuits running in the native regime.
func CoordsNative(pts []sw.PlainPoint) []*big.Int {
	res := make([]*big.Int, 0, 2*len(pts))
	for _, p := range pts {
		res = append(res, new(big.Int).Set(p.X), new(big.Int).Set(p.Y))
	}
	return res
}

// decompose splits v into nbLimbs integers of nbBits bits each,
// little-endian.
func decompose(v *big.Int, nbBits uint, nbLimbs int) ([]*big.Int, error) {
	if v.BitLen() > nbLimbs*int(nbBits) {
		return nil, fmt.Errorf("value does not fit into %d limbs of %d bits", nbLimbs, nbBits)
	}
	res := make([]*big.Int, nbLimbs)
	base := new(big.Int).Lsh(big.NewInt(1), nbBits)
	tmp := new(big.Int).Set(v)
	for i := range res {
		res[i] = new(big.Int).Mod(tmp, base)
		tmp.Rsh(tmp, nbBits)
	}
	return res, nil
}
