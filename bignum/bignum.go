// Package bignum is a thin semantic layer over math/big.Int, the arbitrary
// precision integer type this module treats as its external "bignum"
// primitive (the Go-native counterpart of GMP's mpz_class). It exposes the
// handful of free functions the Collatz engines actually need — trailing
// zero count, bit length, limb count, low-limb extraction, shifting,
// small-multiply, add — plus a DoubleLimb type used to batch several
// Collatz steps in native-width arithmetic before the result is folded back
// into a *big.Int.
//
// Functions here operate on *big.Int in place, the same calling convention
// mpz_utils.h's free functions use over mpz_class&: the facade is a set of
// helpers, not a second owning wrapper type.
package bignum

import (
	"math/big"
	"math/bits"

	"github.com/huge-collatz/collatzfast/faults"
)

// LimbBits is the machine word size (L) this module assumes throughout: the
// width of one big.Word and of one Limb. It is checked once at init time
// against the platform's actual word size.
const LimbBits = 64

// Limb is one machine word of the bignum representation.
type Limb = uint64

func init() {
	if bits.UintSize != LimbBits {
		panic(&faults.TypeMismatch{
			Msg: "bignum assumes a 64-bit platform word size (big.Word width)",
		})
	}
}

// BitLen returns the bit length of z.
func BitLen(z *big.Int) int {
	return z.BitLen()
}

// LimbCount returns the number of limbs in z's normalized representation,
// up to and including its most significant non-zero limb (0 for z = 0).
func LimbCount(z *big.Int) int {
	return len(z.Bits())
}

// TrailingZeros returns the number of consecutive least-significant zero
// bits of z.
func TrailingZeros(z *big.Int) uint {
	return z.TrailingZeroBits()
}

// ShiftRight shifts z right by k bits, in place.
func ShiftRight(z *big.Int, k uint) {
	z.Rsh(z, k)
}

// LowLimb returns the low L bits of z.
func LowLimb(z *big.Int) Limb {
	w := z.Bits()
	if len(w) == 0 {
		return 0
	}
	return Limb(w[0])
}

// MulSmall multiplies z by small, in place.
func MulSmall(z *big.Int, small uint64) {
	if small == 0 {
		z.SetUint64(0)
		return
	}
	z.Mul(z, new(big.Int).SetUint64(small))
}

// Add adds other onto z, in place.
func Add(z, other *big.Int) {
	z.Add(z, other)
}

// AddDoubleLimb adds the 2L-bit value w onto z, in place. math/big does not
// expose direct limb-array mutation without an intermediate value, so this
// builds a short-lived *big.Int from w's two limbs via SetBits and adds it —
// the spec's explicitly sanctioned "correct but slower" fallback for this
// operation (see DESIGN.md).
func AddDoubleLimb(z *big.Int, w DoubleLimb) {
	tmp := new(big.Int).SetBits([]big.Word{big.Word(w.Lo), big.Word(w.Hi)})
	z.Add(z, tmp)
}

// DoubleLimb is an unsigned 2L-bit value, used to carry headroom above a
// single limb while several Collatz steps are batched in native-width
// arithmetic. It plays the role of the original implementation's
// `unsigned __int128`, which Go has no native equivalent for; arithmetic is
// built explicitly from math/bits' carry-propagating primitives.
type DoubleLimb struct {
	Hi, Lo uint64
}

// IsZero reports whether d is zero.
func (d DoubleLimb) IsZero() bool {
	return d.Hi == 0 && d.Lo == 0
}

// IsOne reports whether d equals one.
func (d DoubleLimb) IsOne() bool {
	return d.Hi == 0 && d.Lo == 1
}

// Equal reports whether d and o represent the same value.
func (d DoubleLimb) Equal(o DoubleLimb) bool {
	return d.Hi == o.Hi && d.Lo == o.Lo
}

// IsOdd reports whether d's low bit is set.
func (d DoubleLimb) IsOdd() bool {
	return d.Lo&1 == 1
}

// ShiftRightN shifts d right by n bits (0 <= n <= 128).
func (d DoubleLimb) ShiftRightN(n uint) DoubleLimb {
	switch {
	case n == 0:
		return d
	case n >= 128:
		return DoubleLimb{}
	case n >= 64:
		return DoubleLimb{Hi: 0, Lo: d.Hi >> (n - 64)}
	default:
		return DoubleLimb{
			Hi: d.Hi >> n,
			Lo: (d.Lo >> n) | (d.Hi << (64 - n)),
		}
	}
}

// Low returns the low n bits of d as a uint64 (0 <= n <= 64).
func (d DoubleLimb) Low(n uint) uint64 {
	if n == 0 {
		return 0
	}
	if n >= 64 {
		return d.Lo
	}
	return d.Lo & (uint64(1)<<n - 1)
}

// Add returns d + o, panicking with faults.Overflow if the sum does not fit
// in 128 bits — which, given this module's accumulator sizing invariants,
// never happens in correct operation.
func (d DoubleLimb) Add(o DoubleLimb) DoubleLimb {
	lo, carry := bits.Add64(d.Lo, o.Lo, 0)
	hi, carry2 := bits.Add64(d.Hi, o.Hi, carry)
	if carry2 != 0 {
		panic(&faults.Overflow{Msg: "double-limb add overflowed 128 bits"})
	}
	return DoubleLimb{Hi: hi, Lo: lo}
}

// AddSmall returns d + x for a native-width x.
func (d DoubleLimb) AddSmall(x uint64) DoubleLimb {
	return d.Add(DoubleLimb{Lo: x})
}

// MulSmallAddSmall returns d*power + add, computed with full carry
// propagation across the 128-bit width, panicking with faults.Overflow if the
// result does not fit. Callers pass a power of three from the impact table or
// pow3.Small as power and a batched-step carry as add.
func (d DoubleLimb) MulSmallAddSmall(power, add uint64) DoubleLimb {
	hi1, lo1 := bits.Mul64(d.Lo, power)
	hi2, lo2 := bits.Mul64(d.Hi, power)
	if hi2 != 0 {
		panic(&faults.Overflow{Msg: "double-limb multiply exceeded 128 bits"})
	}

	mergedHi, carry := bits.Add64(hi1, lo2, 0)
	if carry != 0 {
		panic(&faults.Overflow{Msg: "double-limb multiply exceeded 128 bits"})
	}

	newLo, addCarry := bits.Add64(lo1, add, 0)
	newHi, carry2 := bits.Add64(mergedHi, 0, addCarry)
	if carry2 != 0 {
		panic(&faults.Overflow{Msg: "double-limb multiply-add exceeded 128 bits"})
	}

	return DoubleLimb{Hi: newHi, Lo: newLo}
}

// ToBigInt materializes d as a *big.Int.
func (d DoubleLimb) ToBigInt() *big.Int {
	return new(big.Int).SetBits([]big.Word{big.Word(d.Lo), big.Word(d.Hi)})
}

// DoubleLimbFromLimb widens a single limb to a DoubleLimb.
func DoubleLimbFromLimb(l Limb) DoubleLimb {
	return DoubleLimb{Lo: uint64(l)}
}
