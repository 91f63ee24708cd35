// Package chain implements the multi-level chained accumulator at the heart
// of the fast Collatz engine: a stack of levels, each holding a bignum value
// and a pending exponent of three, that defers big-integer multiplication by
// cascading consolidation up the stack (push) and borrowing limbs back down
// the stack (pull) only when per-level size/exponent triggers demand it.
package chain

import (
	"math/big"

	"github.com/huge-collatz/collatzfast/bignum"
	"github.com/huge-collatz/collatzfast/faults"
	"github.com/huge-collatz/collatzfast/pow3"
)

// accumulator is one level of the chain: a bignum value, the count of limbs
// currently considered valid (available, which may exceed the value's
// minimal limb count after a pull leaves leading zero limbs), and the
// exponent of three still owed by everything above this level: it scales the
// parent's value when this level folds into it, and every chunk pulled down
// from the parent.
type accumulator struct {
	value     *big.Int
	available uint
	expOf3    uint64
}

func newAccumulator() *accumulator {
	return &accumulator{value: new(big.Int)}
}

func (a *accumulator) isEmpty() bool {
	return a.value.Sign() == 0 && a.available == 0
}

func (a *accumulator) reset() {
	a.value.SetUint64(0)
	a.available = 0
	a.expOf3 = 0
}

// Chain is the accu_chain: an ordered stack of accumulators, level 0 being
// the bottom (lowest significance).
type Chain struct {
	levels []*accumulator
}

// New returns a chain with a single, empty bottom level.
func New() *Chain {
	return &Chain{levels: []*accumulator{newAccumulator()}}
}

// pullSize(i) is the number of limbs a chained pull moves from level i+1
// into level i.
func pullSize(i int) uint {
	return 1 << uint(i+1)
}

// pushTriggerValueSize(i) is the limb count at which level i's value is
// considered "full enough" to cascade up into level i+1.
func pushTriggerValueSize(i int) uint {
	return pullSize(i) * 7 / 5
}

// log2Of3 is log base 2 of 3, used to convert a limb-count budget into the
// equivalent exponent-of-three budget.
const log2Of3 = 1.58496250072115618145

// pushTriggerExpOf3(i) is the accumulated exponent of three at which level
// i's pending scale is considered large enough to cascade up, derived from
// pushTriggerValueSize so that either trigger fires at roughly the same
// bit-growth budget.
func pushTriggerExpOf3(i int) uint64 {
	return ceilDiv(float64(pushTriggerValueSize(i))*float64(bignum.LimbBits), log2Of3)
}

func ceilDiv(numerator, denominator float64) uint64 {
	v := numerator / denominator
	iv := uint64(v)
	if float64(iv) < v {
		iv++
	}
	return iv
}

// Empty reports whether every level of the chain has zero value and zero
// available limbs — the chain represents the value zero.
func (c *Chain) Empty() bool {
	for _, a := range c.levels {
		if !a.isEmpty() {
			return false
		}
	}
	return true
}

// Reset empties every level above the bottom and zeroes the bottom level.
func (c *Chain) Reset() {
	c.levels = c.levels[:1]
	c.levels[0].reset()
}

// Level0Value exposes the bottom level's value as the engine's write slot
// for a fresh start value.
func (c *Chain) Level0Value() *big.Int {
	return c.levels[0].value
}

// SyncLevel0Available recomputes the bottom level's available-limb count
// from its current value, used right after the caller writes a fresh start
// value directly into Level0Value.
func (c *Chain) SyncLevel0Available() {
	c.levels[0].available = uint(bignum.LimbCount(c.levels[0].value))
}

// foldIn folds w beneath the level's existing content, which is first scaled
// by 3^pushedExp: value <- value*3^pushedExp + w; the pushed exponent is also added
// to the level's running exponent total, which both gates future cascade
// triggers and is itself applied wholesale the next time this level folds
// into its parent.
func (a *accumulator) foldIn(w *big.Int, pushedExp uint64) {
	a.value.Mul(a.value, pow3.Factor(pushedExp))
	a.value.Add(a.value, w)
	a.expOf3 += pushedExp
}

// PushBack folds w (a 2L-bit value, aligned with the low end of the chain)
// into level 0 together with its associated exponent of three, then cascades
// the fold upward through every level whose push trigger has now been
// reached, creating a new top level when the cascade reaches the current
// top.
func (c *Chain) PushBack(w bignum.DoubleLimb, pushedExp uint64) {
	c.levels[0].foldIn(w.ToBigInt(), pushedExp)

	for i := 0; c.pushTriggerReached(i); i++ {
		if i+1 >= len(c.levels) {
			c.levels = append(c.levels, newAccumulator())
		}
		c.foldChildIntoParent(i)
	}
}

func (c *Chain) pushTriggerReached(i int) bool {
	if i >= len(c.levels) {
		return false
	}
	a := c.levels[i]
	return bignum.LimbCount(a.value) > int(pushTriggerValueSize(i)) || a.expOf3 > pushTriggerExpOf3(i)
}

// foldChildIntoParent folds level i's value into level i+1: the parent's
// existing value is scaled by the child's pending exponent (not its own —
// the child's contents are what's being newly aligned into the parent, so
// it's the child's outstanding 3^e that must be applied before the two
// values share one base), then shifted up by the child's available limb
// count so the child's value lands aligned at the low end, then the two are
// added. The parent's running exponent and available-limb counts become the
// sum of both, and the child is zeroed.
func (c *Chain) foldChildIntoParent(i int) {
	parent := c.levels[i+1]
	child := c.levels[i]

	parent.value.Mul(parent.value, pow3.Factor(child.expOf3))
	parent.value.Lsh(parent.value, uint(bignum.LimbBits)*child.available)
	parent.value.Add(parent.value, child.value)
	parent.expOf3 += child.expOf3
	parent.available += child.available

	child.reset()
}

// PreparePopBack ensures level 0 has at least one limb available to pop,
// pulling limbs down through the chain as needed. It returns false iff the
// chain represents the value zero.
func (c *Chain) PreparePopBack() bool {
	if c.Empty() {
		return false
	}
	if c.levels[0].available >= 1 {
		return true
	}

	start := -1
	for i := 0; i < len(c.levels)-1; i++ {
		if c.levels[i+1].available >= pullSize(i) {
			start = i
			break
		}
	}
	if start == -1 {
		start = len(c.levels) - 2
	}

	c.chainedPull(start)

	// Resync the top level's available count to its value (a pull from a top
	// holding fewer than pullSize limbs leaves its count meaningless), pop it
	// if that leaves it empty, and repeat on the new top.
	for {
		top := c.levels[len(c.levels)-1]
		top.available = uint(bignum.LimbCount(top.value))
		if len(c.levels) == 1 || !top.isEmpty() {
			break
		}
		c.levels = c.levels[:len(c.levels)-1]
	}

	if c.levels[0].available < 1 {
		panic(&faults.InvariantViolation{Msg: "chain.PreparePopBack: level 0 still has no available limb after pull"})
	}
	return true
}

// chainedPull pulls limbs from level iStart+1 down into iStart, then from
// iStart down into iStart-1, and so on, down to level 0.
func (c *Chain) chainedPull(iStart int) {
	for i := iStart; i >= 0; i-- {
		c.pullOneLevel(i)
	}
}

// pullOneLevel pulls pullSize(i) limbs out of the low end of level i+1's
// value into the high end of level i's value, scaling the pulled chunk by
// 3^(level i's pending exponent) so it lands at the correct magnitude.
func (c *Chain) pullOneLevel(i int) {
	parent := c.levels[i+1]
	child := c.levels[i]
	amount := pullSize(i)

	shiftBits := uint(bignum.LimbBits) * amount
	mask := new(big.Int).Lsh(big.NewInt(1), shiftBits)
	mask.Sub(mask, big.NewInt(1))
	pulled := new(big.Int).And(parent.value, mask)

	parent.value.Rsh(parent.value, shiftBits)
	parent.available -= amount

	pulled.Mul(pulled, pow3.Factor(child.expOf3))
	pulled.Lsh(pulled, uint(bignum.LimbBits)*child.available)
	child.value.Add(child.value, pulled)
	child.available += amount
}

// PopBack returns and removes level 0's low limb. PreparePopBack must have
// returned true immediately beforehand.
func (c *Chain) PopBack() bignum.Limb {
	a0 := c.levels[0]
	if a0.available < 1 {
		panic(&faults.InvariantViolation{Msg: "chain.PopBack: no limb available; call PreparePopBack first"})
	}
	limb := bignum.LowLimb(a0.value)
	a0.value.Rsh(a0.value, bignum.LimbBits)
	a0.available--
	return limb
}
