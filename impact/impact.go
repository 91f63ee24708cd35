// Package impact precomputes the multi-step Collatz impact table: for every
// possible N-bit low-order residue of a value, the net effect of running N
// fused Collatz steps starting from that residue, batched into a single
// {carry, expnt, power} record. A fused step is (3x+1)/2 counted once for an
// odd x (the halving that always follows a tripling is folded into the same
// step) or x/2 for an even x; every fused step, of either kind, credits
// exactly one even-step. Both the slow and fast engines apply this table
// instead of single-stepping, trading a single table lookup plus one
// multiply-add for N branches.
package impact

import (
	"github.com/huge-collatz/collatzfast/bignum"
	"github.com/huge-collatz/collatzfast/faults"
)

// StepCount is N, the number of fused Collatz steps one table entry
// summarizes.
const StepCount = 8

// tableSize is 2^StepCount, the number of distinct N-bit residues.
const tableSize = 1 << StepCount

const tableMask = tableSize - 1

// Entry is one batched-step summary for an N-bit residue p: applying N fused
// Collatz steps to any x whose low N bits equal p (with x > 1 throughout)
// yields (x >> N) * Power + Carry, contributing exactly N even-steps and
// Expnt odd-steps. Carry is the unmasked result of running the N steps on p
// itself — growth over N fused steps keeps it well within uint16, so no
// truncation is applied or required.
type Entry struct {
	Carry uint16
	Expnt uint8
	Power uint16
}

// Table holds the 256 precomputed entries, indexed by residue.
var Table [tableSize]Entry

func init() {
	for p := 0; p < tableSize; p++ {
		y := uint32(p)
		var odd uint8
		for step := 0; step < StepCount; step++ {
			if y&1 == 1 {
				y = (y >> 1) + y + 1
				odd++
			} else {
				y >>= 1
			}
		}
		power := uint16(1)
		for i := uint8(0); i < odd; i++ {
			power *= 3
		}
		Table[p] = Entry{
			Carry: uint16(y),
			Expnt: odd,
			Power: power,
		}
	}
}

// CombinedImpactExactlyUint32 applies the impact table steps/StepCount times
// to value, accumulating even/odd step counts into evn and odd. steps must
// be a positive multiple of StepCount. All arithmetic is in uint32: when an
// intermediate value exceeds 32 bits it wraps modulo 2^32, and the result is
// then not the true value after that many fused steps.
func CombinedImpactExactlyUint32(value uint32, steps int, evn, odd *uint64) uint32 {
	if steps%StepCount != 0 {
		panic(&faults.InvariantViolation{Msg: "impact.CombinedImpactExactlyUint32: steps not a multiple of StepCount"})
	}
	for i := 0; i < steps/StepCount; i++ {
		e := Table[value&tableMask]
		value = (value>>StepCount)*uint32(e.Power) + uint32(e.Carry)
		*evn += StepCount
		*odd += uint64(e.Expnt)
	}
	return value
}

// CombinedImpactExactlyDoubleLimb applies the impact table steps/StepCount
// times to value, accumulating even/odd step counts into evn and odd. steps
// must be a positive multiple of StepCount. Used by the fast engine over a
// full limb popped off the chain and by the slow engine over each L/2
// half-limb; headroom to 2L bits is required because
// each batched multiply can grow the value past L bits before the next
// application's shift-down.
func CombinedImpactExactlyDoubleLimb(value bignum.DoubleLimb, steps int, evn, odd *uint64) bignum.DoubleLimb {
	if steps%StepCount != 0 {
		panic(&faults.InvariantViolation{Msg: "impact.CombinedImpactExactlyDoubleLimb: steps not a multiple of StepCount"})
	}
	for i := 0; i < steps/StepCount; i++ {
		e := Table[value.Low(StepCount)&tableMask]
		value = value.ShiftRightN(StepCount).MulSmallAddSmall(uint64(e.Power), uint64(e.Carry))
		*evn += StepCount
		*odd += uint64(e.Expnt)
	}
	return value
}

// SimpleSingleStep applies one raw Collatz step to value, fused with the
// even step that unconditionally follows an odd one (3x+1 is always even):
// for odd value it returns (value>>1)+value+1, crediting one odd and one
// even step; for even value it returns value>>1, crediting one even step.
// This is the native-width fallback used once a value no longer has enough
// limbs left to justify a full batched table application.
func SimpleSingleStep(value bignum.DoubleLimb) (result bignum.DoubleLimb, evn, odd uint64) {
	if value.IsOdd() {
		return value.ShiftRightN(1).Add(value).AddSmall(1), 1, 1
	}
	return value.ShiftRightN(1), 1, 0
}

// SimpleAtMost repeatedly applies SimpleSingleStep, up to maxSteps times,
// stopping early if value reaches one.
func SimpleAtMost(value bignum.DoubleLimb, maxSteps int) (result bignum.DoubleLimb, evn, odd uint64) {
	for i := 0; i < maxSteps; i++ {
		if value.IsOne() {
			break
		}
		var e, o uint64
		value, e, o = SimpleSingleStep(value)
		evn += e
		odd += o
	}
	return value, evn, odd
}
