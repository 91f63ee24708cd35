// Package pow3 caches powers of three, the multiplier every batched Collatz
// step folds into either a machine limb or a big.Int: a machine-word table
// for the fast inner loops, and a lazily-built big.Int table for the chain
// levels and slow engine's outer multiply.
package pow3

import (
	"math"
	"math/big"
	"sync"

	"github.com/huge-collatz/collatzfast/faults"
)

// BigTableSize is the number of entries precomputed in the lazily-built
// big.Int table (k = 0 .. BigTableSize-1), matching spec.md's 2^17+1 bound.
const BigTableSize = 1<<17 + 1

// KMax is the largest k such that Small[k] = 3^k fits in a uint64 with room
// for one more multiply-by-3 (3^k <= MaxUint64/3), computed once at init.
var KMax int

// Small[k] = 3^k for 0 <= k <= KMax.
var Small []uint64

func init() {
	limit := uint64(math.MaxUint64) / 3
	Small = []uint64{1}
	v := uint64(1)
	for v <= limit/3 {
		v *= 3
		Small = append(Small, v)
	}
	KMax = len(Small) - 1
}

// SmallAt returns 3^k for 0 <= k <= KMax, panicking with faults.Overflow if k
// is out of range.
func SmallAt(k int) uint64 {
	if k < 0 || k > KMax {
		panic(&faults.Overflow{Msg: "pow3.SmallAt: exponent beyond KMax"})
	}
	return Small[k]
}

var (
	bigTableOnce  sync.Once
	bigTable      []*big.Int
)

// buildBigTable computes 3^k for k in [0, BigTableSize) iteratively, one
// multiply-by-3 per entry, the same construction power_of_3_big.h's create()
// uses.
func buildBigTable() {
	bigTable = make([]*big.Int, BigTableSize)
	v := big.NewInt(1)
	bigTable[0] = new(big.Int).Set(v)
	for k := 1; k < BigTableSize; k++ {
		v = new(big.Int).Mul(v, big.NewInt(3))
		bigTable[k] = new(big.Int).Set(v)
	}
}

// Big returns 3^k as a fresh *big.Int. For k within the precomputed table
// range the table is built lazily on first use (guarded by sync.Once, so the
// multi-GB cost of building the full 2^17-entry table is paid only on the
// first call with such a k; Factor makes that call for any exponent above
// KMax). For k beyond the table, 3^k is computed on the fly via
// (*big.Int).Exp.
func Big(k int) *big.Int {
	if k < 0 {
		panic(&faults.Overflow{Msg: "pow3.Big: negative exponent"})
	}
	if k < BigTableSize {
		bigTableOnce.Do(buildBigTable)
		return new(big.Int).Set(bigTable[k])
	}
	return new(big.Int).Exp(big.NewInt(3), big.NewInt(int64(k)), nil)
}

// Factor returns 3^e as a *big.Int, preferring the small machine-word table
// when e is within range and falling back to Big otherwise. This is the one
// call site callers outside this package should use when they need 3^e as a
// bignum multiplier and don't care which table backs it.
func Factor(e uint64) *big.Int {
	if e <= uint64(KMax) {
		return new(big.Int).SetUint64(SmallAt(int(e)))
	}
	return Big(int(e))
}
