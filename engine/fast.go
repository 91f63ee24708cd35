package engine

import (
	"math/big"

	"github.com/huge-collatz/collatzfast/bignum"
	"github.com/huge-collatz/collatzfast/chain"
	"github.com/huge-collatz/collatzfast/impact"
)

// Fast is the high-throughput engine: a chained accumulator (package chain)
// holds the value across multiple limb-sized levels, deferring big-integer
// multiplication by 3^e until a level's push trigger fires. Each iteration
// pops one limb, reduces it with either the batched impact table (while the
// chain still holds more data above it) or native halting-aware stepping
// (once it's the last limb), and pushes the result back in.
type Fast struct {
	c    *chain.Chain
	evn  uint64
	odd  uint64
	iter uint64
}

// NewFast returns a Fast engine ready to receive a start value.
func NewFast() *Fast {
	return &Fast{c: chain.New()}
}

func (e *Fast) StartValueRef() *big.Int { return e.c.Level0Value() }

func (e *Fast) StartValueModified() { e.c.SyncLevel0Available() }

// Iterate pops one limb and resolves it, crediting step counts, then pushes
// the result back into the chain.
func (e *Fast) Iterate() (done bool) {
	sub := bignum.DoubleLimbFromLimb(e.c.PopBack())

	if !e.c.Empty() {
		var evnD, oddD uint64
		sub = impact.CombinedImpactExactlyDoubleLimb(sub, bignum.LimbBits, &evnD, &oddD)
		e.evn += evnD
		e.odd += oddD
		e.c.PushBack(sub, oddD)
		e.iter++
		return false
	}

	result, evnD, oddD := impact.SimpleAtMost(sub, bignum.LimbBits)
	e.evn += evnD
	e.odd += oddD
	e.iter++
	if result.IsOne() {
		return true
	}
	e.c.PushBack(result, oddD)
	return false
}

func (e *Fast) CompleteCheck() {
	for e.c.PreparePopBack() {
		if e.Iterate() {
			return
		}
	}
}

func (e *Fast) StepCountEvn() uint64 { return e.evn }
func (e *Fast) StepCountOdd() uint64 { return e.odd }
func (e *Fast) StepCount() uint64    { return e.evn + e.odd }
func (e *Fast) IterCount() uint64    { return e.iter }
func (e *Fast) TypeAbbrev() string   { return "fast" }

func (e *Fast) Reset() {
	e.c.Reset()
	e.evn, e.odd, e.iter = 0, 0, 0
}
