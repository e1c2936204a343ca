// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pixel

import (
	"testing"

	"github.com/danjacques/datprobe/layout"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

// permutations returns every ordering of the first n symbols.
func permutations(n int) []ChannelOrder {
	var out []ChannelOrder
	var walk func(prefix ChannelOrder, used []bool)
	walk = func(prefix ChannelOrder, used []bool) {
		if len(prefix) == n {
			out = append(out, append(ChannelOrder(nil), prefix...))
			return
		}
		for i := 0; i < n; i++ {
			if !used[i] {
				used[i] = true
				walk(append(prefix, Symbol(i)), used)
				used[i] = false
			}
		}
	}
	walk(nil, make([]bool, n))
	return out
}

var _ = Describe("Channel Order", func() {
	It("parses and renders an order", func() {
		o, err := ParseChannelOrder("bgrm", 4)
		Expect(err).ToNot(HaveOccurred())
		Expect(o).To(Equal(ChannelOrder{Blue, Green, Red, Master}))
		Expect(o.String()).To(Equal("BGRM"))
	})

	It("accepts W as an alias of M", func() {
		Expect(MustParseChannelOrder("WRGB", 4)).To(Equal(ChannelOrder{Master, Red, Green, Blue}))
	})

	DescribeTable("rejects invalid orders",
		func(v string, n int) {
			_, err := ParseChannelOrder(v, n)
			Expect(errors.Cause(err)).To(Equal(ErrInvalidChannelOrder))
		},
		Entry("repeated symbol", "RRGB", 4),
		Entry("omitted symbol", "RGB", 4),
		Entry("unknown symbol", "RGBX", 4),
		Entry("master with 3 components", "RGM", 3),
		Entry("too many symbols", "RGBM", 3),
		Entry("empty", "", 3),
	)

	It("produces 24 distinct permutations of RGBM", func() {
		perms := permutations(4)
		Expect(perms).To(HaveLen(24))
		for _, p := range perms {
			Expect(p.Validate()).To(Succeed())
		}
	})
})

var _ = Describe("Record Codec", func() {
	Context("Direct encoding", func() {
		It("writes values in the requested order", func() {
			rec, err := Encode(RGBM(0xFF, 0x00, 0x00, 0xFF), MustParseChannelOrder("MRGB", 4), Direct, 4)
			Expect(err).ToNot(HaveOccurred())
			Expect(rec).To(Equal([]byte{0xFF, 0xFF, 0x00, 0x00}))
		})

		It("repeats the permuted tuple across a wider record", func() {
			rec, err := Encode(RGB(1, 2, 3), MustParseChannelOrder("BGR", 3), Direct, 12)
			Expect(err).ToNot(HaveOccurred())
			Expect(rec).To(Equal([]byte{3, 2, 1, 3, 2, 1, 3, 2, 1, 3, 2, 1}))
		})

		It("truncates to a narrower record", func() {
			rec, err := Encode(RGBM(1, 2, 3, 4), Identity(4), Direct, 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(rec).To(Equal([]byte{1, 2}))
		})

		It("round-trips through Decode for every RGBM permutation", func() {
			v := RGBM(10, 20, 30, 40)
			for _, o := range permutations(4) {
				rec, err := Encode(v, o, Direct, 4)
				Expect(err).ToNot(HaveOccurred())

				dv, err := Decode(rec, o)
				Expect(err).ToNot(HaveOccurred())
				Expect(dv).To(Equal(v), "order %s", o)
			}
		})

		It("round-trips through Decode for every RGB permutation on a 12-byte record", func() {
			v := RGB(7, 8, 9)
			for _, o := range permutations(3) {
				rec, err := Encode(v, o, Direct, 12)
				Expect(err).ToNot(HaveOccurred())

				dv, err := Decode(rec, o)
				Expect(err).ToNot(HaveOccurred())
				Expect(dv).To(Equal(v), "order %s", o)
			}
		})
	})

	Context("ReplicatedMask encoding", func() {
		DescribeTable("sets every byte to the largest value",
			func(v Values, width int) {
				rec, err := Encode(v, Identity(len(v)), ReplicatedMask, width)
				Expect(err).ToNot(HaveOccurred())
				Expect(rec).To(HaveLen(width))
				for _, b := range rec {
					Expect(b).To(Equal(v.Max()))
				}
			},
			Entry("red gate", RGBM(0xFF, 0, 0, 0xFF), 4),
			Entry("dim mixed", RGBM(3, 9, 1, 0), 4),
			Entry("all zero", RGB(0, 0, 0), 12),
			Entry("wide step", RGB(10, 200, 30), 12),
		)

		It("ignores the channel order", func() {
			a, err := Encode(RGBM(1, 2, 3, 4), MustParseChannelOrder("MBGR", 4), ReplicatedMask, 4)
			Expect(err).ToNot(HaveOccurred())
			b, err := Encode(RGBM(1, 2, 3, 4), Identity(4), ReplicatedMask, 4)
			Expect(err).ToNot(HaveOccurred())
			Expect(a).To(Equal(b))
		})
	})

	It("rejects an order that does not match the values", func() {
		_, err := Encode(RGB(1, 2, 3), Identity(4), Direct, 4)
		Expect(errors.Cause(err)).To(Equal(ErrInvalidChannelOrder))
	})

	It("rejects a hand-built order that is not a permutation", func() {
		_, err := Encode(RGB(1, 2, 3), ChannelOrder{Red, Red, Blue}, Direct, 3)
		Expect(errors.Cause(err)).To(Equal(ErrInvalidChannelOrder))
	})
})

var _ = Describe("Encoding Mode", func() {
	It("parses names", func() {
		Expect(ParseEncodingMode("direct")).To(Equal(Direct))
		Expect(ParseEncodingMode("REPL")).To(Equal(ReplicatedMask))

		_, err := ParseEncodingMode("bogus")
		Expect(errors.Cause(err)).To(Equal(layout.ErrInvalidParameter))
	})
})

var _ = Describe("Flags", func() {
	It("collects channel orders", func() {
		var f ChannelOrderListFlag
		Expect(f.Set("rgbm, BGRM")).To(Succeed())
		Expect(f.Set("MRGB")).To(Succeed())

		orders, err := f.Orders(4)
		Expect(err).ToNot(HaveOccurred())
		Expect(orders).To(HaveLen(3))
		Expect(orders[2].String()).To(Equal("MRGB"))

		_, err = f.Orders(3)
		Expect(errors.Cause(err)).To(Equal(ErrInvalidChannelOrder))
	})

	It("collects encoding modes", func() {
		var f EncodingModeListFlag
		Expect(f.Set("direct,replicated")).To(Succeed())
		Expect([]EncodingMode(f)).To(Equal([]EncodingMode{Direct, ReplicatedMask}))
		Expect(f.String()).To(Equal("direct,replicated"))
		Expect(f.Set("nope")).ToNot(Succeed())
	})
})

func TestPixel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Test pixel")
}
