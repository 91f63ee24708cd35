package chain_test

import (
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/huge-collatz/collatzfast/bignum"
	"github.com/huge-collatz/collatzfast/chain"
)

var _ = Describe("Chain", func() {
	It("starts empty", func() {
		c := chain.New()
		Expect(c.Empty()).To(BeTrue())
		Expect(c.PreparePopBack()).To(BeFalse())
	})

	It("round-trips a value written directly into level 0", func() {
		c := chain.New()
		c.Level0Value().SetUint64(0xdeadbeefcafef00d)
		c.SyncLevel0Available()

		Expect(c.PreparePopBack()).To(BeTrue())
		got := c.PopBack()
		Expect(got).To(Equal(bignum.Limb(0xdeadbeefcafef00d)))
	})

	It("matches direct big.Int arithmetic across repeated pushes with no cascade", func() {
		c := chain.New()
		want := new(big.Int)

		pushes := []struct {
			w   uint64
			exp uint64
		}{
			{7, 2},
			{11, 1},
			{3, 0},
			{500, 3},
		}
		for _, p := range pushes {
			c.PushBack(bignum.DoubleLimbFromLimb(p.w), p.exp)

			factor := new(big.Int).Exp(big.NewInt(3), new(big.Int).SetUint64(p.exp), nil)
			want.Mul(want, factor)
			want.Add(want, new(big.Int).SetUint64(p.w))
		}

		Expect(c.PreparePopBack()).To(BeTrue())

		got := new(big.Int)
		shift := uint(0)
		for {
			if !c.PreparePopBack() {
				break
			}
			limb := c.PopBack()
			chunk := new(big.Int).Lsh(new(big.Int).SetUint64(uint64(limb)), shift)
			got.Add(got, chunk)
			shift += bignum.LimbBits
			if c.Empty() {
				break
			}
		}

		Expect(got.Cmp(want)).To(Equal(0))
	})

	It("resets to empty", func() {
		c := chain.New()
		c.Level0Value().SetUint64(123)
		c.SyncLevel0Available()
		Expect(c.Empty()).To(BeFalse())

		c.Reset()
		Expect(c.Empty()).To(BeTrue())
	})

	It("cascades to a second level once the push trigger fires, and still reassembles to the right value", func() {
		c := chain.New()
		want := new(big.Int)

		for i := 0; i < 200; i++ {
			w := uint64(i + 1)
			c.PushBack(bignum.DoubleLimbFromLimb(w), 2)

			factor := new(big.Int).Exp(big.NewInt(3), big.NewInt(2), nil)
			want.Mul(want, factor)
			want.Add(want, new(big.Int).SetUint64(w))
		}

		got := new(big.Int)
		shift := uint(0)
		for c.PreparePopBack() {
			limb := c.PopBack()
			chunk := new(big.Int).Lsh(new(big.Int).SetUint64(uint64(limb)), shift)
			got.Add(got, chunk)
			shift += bignum.LimbBits
			if c.Empty() {
				break
			}
		}

		Expect(got.Cmp(want)).To(Equal(0))
	})
})
