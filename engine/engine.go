// Package engine provides the three interchangeable Collatz-checking
// engines (naive, slow, fast) that this module cross-validates against each
// other: a single-step reference implementation, a per-iteration
// impact-table-batched implementation, and a chained-accumulator
// implementation that amortises big-integer multiplication across many
// iterations.
package engine

import "math/big"

// Engine is the shared contract all three implementations satisfy: a write
// slot for the start value, a driver loop, and observable step counters once
// the loop completes.
type Engine interface {
	// StartValueRef returns the mutable slot the caller writes n into.
	StartValueRef() *big.Int
	// StartValueModified must be called after writing into the slot
	// returned by StartValueRef, before CompleteCheck.
	StartValueModified()
	// CompleteCheck drives Iterate until the value reaches one.
	CompleteCheck()
	// StepCountEvn is the number of even (halving) steps performed.
	StepCountEvn() uint64
	// StepCountOdd is the number of odd (tripling) steps performed.
	StepCountOdd() uint64
	// StepCount is StepCountEvn + StepCountOdd.
	StepCount() uint64
	// IterCount is the number of Iterate calls CompleteCheck performed.
	IterCount() uint64
	// TypeAbbrev identifies the engine: "naive", "slow", or "fast".
	TypeAbbrev() string
	// Reset clears all counters and state for reuse on a new start value.
	Reset()
}

var one = big.NewInt(1)
