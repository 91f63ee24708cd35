package impact

import (
	"testing"

	"github.com/huge-collatz/collatzfast/bignum"
)

// simulate runs steps fused Collatz steps directly on p, returning the
// unmasked resulting value and the number of odd (tripling) steps taken —
// an independent oracle for one table entry.
func simulate(p int, steps int) (carry uint32, odd uint64) {
	y := uint32(p)
	for i := 0; i < steps; i++ {
		if y&1 == 1 {
			y = (y >> 1) + y + 1
			odd++
		} else {
			y >>= 1
		}
	}
	return y, odd
}

// fusedOracle runs steps fused Collatz steps directly on the full-width
// value y, the ground truth CombinedImpactExactly* must reconstruct via the
// congruence identity value = (value>>StepCount)*power + carry.
func fusedOracle(y uint64, steps int) (result, evn, odd uint64) {
	for i := 0; i < steps; i++ {
		if y&1 == 1 {
			y = (y >> 1) + y + 1
			odd++
		} else {
			y >>= 1
		}
		evn++
	}
	return y, evn, odd
}

func TestTableAgreesWithSimulation(t *testing.T) {
	for p := 0; p < tableSize; p++ {
		carry, odd := simulate(p, StepCount)
		e := Table[p]
		if uint32(e.Carry) != carry {
			t.Errorf("Table[%d].Carry = %d, want %d", p, e.Carry, carry)
		}
		if uint64(e.Expnt) != odd {
			t.Errorf("Table[%d].Expnt = %d, want %d", p, e.Expnt, odd)
		}
		want := uint16(1)
		for i := uint8(0); i < e.Expnt; i++ {
			want *= 3
		}
		if e.Power != want {
			t.Errorf("Table[%d].Power = %d, want %d", p, e.Power, want)
		}
	}
}

func TestCombinedImpactExactlyUint32(t *testing.T) {
	var evn, odd uint64
	got := CombinedImpactExactlyUint32(765432, StepCount, &evn, &odd)

	want, wantEvn, wantOdd := fusedOracle(765432, StepCount)
	if uint64(got) != want {
		t.Errorf("CombinedImpactExactlyUint32 = %d, want %d", got, want)
	}
	if evn != wantEvn || odd != wantOdd {
		t.Errorf("counts = (%d,%d), want (%d,%d)", evn, odd, wantEvn, wantOdd)
	}
}

func TestCombinedImpactExactlyDoubleLimb(t *testing.T) {
	var evn, odd uint64
	start := bignum.DoubleLimbFromLimb(765432)
	got := CombinedImpactExactlyDoubleLimb(start, StepCount, &evn, &odd)

	wantY, wantEvn, wantOdd := fusedOracle(765432, StepCount)
	want := bignum.DoubleLimbFromLimb(wantY)
	if !got.Equal(want) {
		t.Errorf("CombinedImpactExactlyDoubleLimb = %+v, want %+v", got, want)
	}
	if evn != wantEvn || odd != wantOdd {
		t.Errorf("counts = (%d,%d), want (%d,%d)", evn, odd, wantEvn, wantOdd)
	}
}

func TestCombinedImpactExactlyPanicsOnBadStepCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for steps not a multiple of StepCount")
		}
	}()
	var evn, odd uint64
	CombinedImpactExactlyUint32(1, StepCount+1, &evn, &odd)
}

func TestCombinedImpactMultipleApplications(t *testing.T) {
	var evn, odd uint64
	got := CombinedImpactExactlyUint32(765432, StepCount*4, &evn, &odd)

	want, wantEvn, wantOdd := fusedOracle(765432, StepCount*4)
	if uint64(got) != want {
		t.Errorf("CombinedImpactExactlyUint32 x4 = %d, want %d", got, want)
	}
	if evn != wantEvn || odd != wantOdd {
		t.Errorf("counts = (%d,%d), want (%d,%d)", evn, odd, wantEvn, wantOdd)
	}
}

func TestSimpleSingleStepMatchesRawStep(t *testing.T) {
	for _, n := range []uint64{1, 2, 3, 4, 7, 27, 97} {
		value := bignum.DoubleLimbFromLimb(n)
		got, evn, odd := SimpleSingleStep(value)

		var want uint64
		var wantEvn, wantOdd uint64
		if n&1 == 1 {
			want = (3*n + 1) / 2
			wantEvn, wantOdd = 1, 1
		} else {
			want = n / 2
			wantEvn = 1
		}
		wantDL := bignum.DoubleLimbFromLimb(want)
		if !got.Equal(wantDL) {
			t.Errorf("SimpleSingleStep(%d) = %+v, want %+v", n, got, wantDL)
		}
		if evn != wantEvn || odd != wantOdd {
			t.Errorf("SimpleSingleStep(%d) counts = (%d,%d), want (%d,%d)", n, evn, odd, wantEvn, wantOdd)
		}
	}
}

func TestSimpleAtMostStopsAtOne(t *testing.T) {
	got, evn, odd := SimpleAtMost(bignum.DoubleLimbFromLimb(1), 10)
	if !got.IsOne() {
		t.Errorf("SimpleAtMost(1) = %+v, want 1", got)
	}
	if evn != 0 || odd != 0 {
		t.Errorf("SimpleAtMost(1) counts = (%d,%d), want (0,0)", evn, odd)
	}
}

func TestSimpleAtMostReachesOneForThree(t *testing.T) {
	got, evn, odd := SimpleAtMost(bignum.DoubleLimbFromLimb(3), 10)
	if !got.IsOne() {
		t.Errorf("SimpleAtMost(3) = %+v, want to reach 1", got)
	}
	if evn != 5 || odd != 2 {
		t.Errorf("SimpleAtMost(3) counts = (%d,%d), want (5,2)", evn, odd)
	}
}
