package engine

import (
	"math/big"

	"github.com/huge-collatz/collatzfast/bignum"
)

// Naive is the correctness oracle: one single-step Collatz iteration per
// call, operating directly on a *big.Int with no batching of any kind. Every
// other engine's step counts are cross-validated against this one.
type Naive struct {
	value *big.Int
	evn   uint64
	odd   uint64
	iter  uint64
}

// NewNaive returns a Naive engine ready to receive a start value.
func NewNaive() *Naive {
	return &Naive{value: new(big.Int)}
}

func (e *Naive) StartValueRef() *big.Int { return e.value }

func (e *Naive) StartValueModified() {}

// Iterate performs one Collatz step: a tripling for an odd value (counted as
// one odd step), or a full run of consecutive halvings for an even value
// (counted as trailing_zeros(value) even steps in a single batch).
func (e *Naive) Iterate() {
	if e.value.Bit(0) == 1 {
		e.value.Mul(e.value, big.NewInt(3))
		e.value.Add(e.value, big.NewInt(1))
		e.odd++
	} else {
		k := bignum.TrailingZeros(e.value)
		bignum.ShiftRight(e.value, k)
		e.evn += uint64(k)
	}
	e.iter++
}

func (e *Naive) CompleteCheck() {
	for e.value.Cmp(one) != 0 {
		e.Iterate()
	}
}

func (e *Naive) StepCountEvn() uint64 { return e.evn }
func (e *Naive) StepCountOdd() uint64 { return e.odd }
func (e *Naive) StepCount() uint64    { return e.evn + e.odd }
func (e *Naive) IterCount() uint64    { return e.iter }
func (e *Naive) TypeAbbrev() string   { return "naive" }

func (e *Naive) Reset() {
	e.value.SetUint64(0)
	e.evn, e.odd, e.iter = 0, 0, 0
}
