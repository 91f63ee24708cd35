package engine

import (
	"math/big"

	"github.com/huge-collatz/collatzfast/bignum"
	"github.com/huge-collatz/collatzfast/impact"
	"github.com/huge-collatz/collatzfast/pow3"
)

const halfLimbBits = bignum.LimbBits / 2
const halfLimbMask = 1<<halfLimbBits - 1

// Slow extracts the low limb each iteration, reduces it through two
// half-limb passes of the batched impact table, recombines the result with
// the bignum residue via a single big multiply by the accumulated power of
// three, and falls back to native-word stepping once the residue empties
// out. One big multiply per iteration, versus the naive engine's O(L)
// single-bit shifts, is the whole performance story here.
type Slow struct {
	value *big.Int
	evn   uint64
	odd   uint64
	iter  uint64
}

// NewSlow returns a Slow engine ready to receive a start value.
func NewSlow() *Slow {
	return &Slow{value: new(big.Int)}
}

func (e *Slow) StartValueRef() *big.Int { return e.value }

func (e *Slow) StartValueModified() {}

// Iterate consumes one limb's worth of Collatz steps.
func (e *Slow) Iterate() {
	lo := bignum.LowLimb(e.value)
	bignum.ShiftRight(e.value, bignum.LimbBits)

	if e.value.Sign() != 0 {
		loHi := uint32(lo >> halfLimbBits)
		loLo := uint32(lo & halfLimbMask)

		var evn1, odd1 uint64
		carry1 := impact.CombinedImpactExactlyDoubleLimb(bignum.DoubleLimbFromLimb(uint64(loLo)), halfLimbBits, &evn1, &odd1)
		hi := bignum.DoubleLimbFromLimb(uint64(loHi)).MulSmallAddSmall(pow3.SmallAt(int(odd1)), carry1.Lo)

		var evn2, odd2 uint64
		secondLow := bignum.DoubleLimbFromLimb(hi.Low(halfLimbBits))
		carry2 := impact.CombinedImpactExactlyDoubleLimb(secondLow, halfLimbBits, &evn2, &odd2)
		hi = hi.ShiftRightN(halfLimbBits).MulSmallAddSmall(pow3.SmallAt(int(odd2)), carry2.Lo)

		expCum := odd1 + odd2
		e.evn += evn1 + evn2
		e.odd += expCum

		e.value.Mul(e.value, pow3.Factor(expCum))
		bignum.AddDoubleLimb(e.value, hi)
	} else {
		result, evnD, oddD := impact.SimpleAtMost(bignum.DoubleLimbFromLimb(lo), bignum.LimbBits)
		e.evn += evnD
		e.odd += oddD
		e.value.Set(result.ToBigInt())
	}
	e.iter++
}

func (e *Slow) CompleteCheck() {
	for e.value.Cmp(one) != 0 {
		e.Iterate()
	}
}

func (e *Slow) StepCountEvn() uint64 { return e.evn }
func (e *Slow) StepCountOdd() uint64 { return e.odd }
func (e *Slow) StepCount() uint64    { return e.evn + e.odd }
func (e *Slow) IterCount() uint64    { return e.iter }
func (e *Slow) TypeAbbrev() string   { return "slow" }

func (e *Slow) Reset() {
	e.value.SetUint64(0)
	e.evn, e.odd, e.iter = 0, 0, 0
}
