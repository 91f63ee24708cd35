package engine_test

import (
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/huge-collatz/collatzfast/engine"
)

type scenario struct {
	n   string
	evn uint64
	odd uint64
}

var battery = []scenario{
	{"3", 5, 2},
	{"765432", 107, 55},
	{"32860794781696", 61, 10},
	{"3287505407311872", 139, 55},
	{"420800692135919616", 146, 55},
	{"970300334233894087246424527897362432", 207, 55},
	{"645643565437415345345235535462318313342346", 605, 294},
	{"156243863292978154974121315437405326167310717681664", 438, 171},
	{"156243863292978154974121315437405326167310717681665", 1034, 547},
	{"7457634543564564356543765868989546221123415345345235", 732, 353},
}

func run(e engine.Engine, n string) (evn, odd uint64) {
	v, ok := new(big.Int).SetString(n, 10)
	Expect(ok).To(BeTrue())
	e.StartValueRef().Set(v)
	e.StartValueModified()
	e.CompleteCheck()
	return e.StepCountEvn(), e.StepCountOdd()
}

var _ = Describe("Engines", func() {
	for _, s := range battery {
		s := s
		It("agree on n = "+s.n, func() {
			for _, e := range []engine.Engine{engine.NewNaive(), engine.NewSlow(), engine.NewFast()} {
				evn, odd := run(e, s.n)
				Expect(evn).To(Equal(s.evn), "%s engine even count for n=%s", e.TypeAbbrev(), s.n)
				Expect(odd).To(Equal(s.odd), "%s engine odd count for n=%s", e.TypeAbbrev(), s.n)
			}
		})
	}

	It("leaves the value at one after CompleteCheck", func() {
		naive := engine.NewNaive()
		naive.StartValueRef().SetUint64(27)
		naive.StartValueModified()
		naive.CompleteCheck()
		Expect(naive.StartValueRef().Cmp(big.NewInt(1))).To(Equal(0))
	})

	It("resets cleanly for reuse", func() {
		e := engine.NewSlow()
		_, _ = run(e, "765432")
		e.Reset()
		Expect(e.StepCount()).To(Equal(uint64(0)))
		Expect(e.IterCount()).To(Equal(uint64(0)))
	})

	It("reports the right type abbreviations", func() {
		Expect(engine.NewNaive().TypeAbbrev()).To(Equal("naive"))
		Expect(engine.NewSlow().TypeAbbrev()).To(Equal("slow"))
		Expect(engine.NewFast().TypeAbbrev()).To(Equal("fast"))
	})
})
