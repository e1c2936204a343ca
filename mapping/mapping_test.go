// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package mapping

import (
	"math"
	"testing"

	"github.com/danjacques/datprobe/layout"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pixel Mapper", func() {
	DescribeTable("maps ordinals deterministically",
		func(s Strategy, expected []int) {
			for k, want := range expected {
				first, err := s.Map(k)
				Expect(err).ToNot(HaveOccurred())
				second, err := s.Map(k)
				Expect(err).ToNot(HaveOccurred())

				Expect(first).To(Equal(want))
				Expect(second).To(Equal(first))
			}
		},
		Entry("sequential", Sequential{}, []int{0, 1, 2, 3}),
		Entry("interleaved", Interleaved{}, []int{0, 1, 2, 3}),
		Entry("port-blocked", PortBlocked{Ports: 8, RecordsPerPort: 128}, []int{0, 128, 256, 384}),
	)

	Context("port-blocked", func() {
		pb := PortBlocked{Ports: DefaultPorts, RecordsPerPort: DefaultRecordsPerPort}

		It("produces strictly increasing in-unit indices for every port", func() {
			Expect(Validate(pb, 1024)).To(Succeed())

			last := -1
			for k := 0; k < pb.Ports; k++ {
				idx, err := pb.Map(k)
				Expect(err).ToNot(HaveOccurred())
				Expect(idx).To(BeNumerically(">", last))
				Expect(idx).To(BeNumerically("<", 1024))
				last = idx
			}
		})

		It("rejects ordinals past the last port", func() {
			_, err := pb.Map(pb.Ports)
			Expect(errors.Cause(err)).To(Equal(ErrOrdinalOutOfRange))

			_, err = pb.Map(-1)
			Expect(errors.Cause(err)).To(Equal(ErrOrdinalOutOfRange))
		})
	})

	DescribeTable("validates strategies against a unit",
		func(s Strategy, recordsPerUnit int, ok bool) {
			err := Validate(s, recordsPerUnit)
			if ok {
				Expect(err).ToNot(HaveOccurred())
			} else {
				Expect(errors.Cause(err)).To(Equal(layout.ErrInvalidParameter))
			}
		},
		Entry("sequential", Sequential{}, 1, true),
		Entry("fitting port blocks", PortBlocked{Ports: 8, RecordsPerPort: 128}, 1024, true),
		Entry("oversized port blocks", PortBlocked{Ports: 8, RecordsPerPort: 128}, 1000, false),
		Entry("zero ports", PortBlocked{Ports: 0, RecordsPerPort: 128}, 1024, false),
		Entry("zero records per port", PortBlocked{Ports: 8}, 1024, false),
		Entry("port blocks whose size overflows", PortBlocked{Ports: 4, RecordsPerPort: math.MaxInt/2 + 1}, 1024, false),
		Entry("scaled default geometry", PortBlockedFor(512), 512, true),
		Entry("scaled default geometry for single-record units", PortBlockedFor(1), 1, true),
	)

	It("rejects a port offset that would overflow", func() {
		pb := PortBlocked{Ports: 4, RecordsPerPort: math.MaxInt/2 + 1}
		idx, err := pb.Map(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(idx).To(Equal(0))

		for k := 1; k < pb.Ports; k++ {
			_, err := pb.Map(k)
			Expect(errors.Cause(err)).To(Equal(ErrOrdinalOutOfRange))
		}
	})

	DescribeTable("scales the default geometry to the unit",
		func(recordsPerUnit int, expected PortBlocked) {
			Expect(PortBlockedFor(recordsPerUnit)).To(Equal(expected))
		},
		Entry("a full frame", 1024, PortBlocked{Ports: 8, RecordsPerPort: 128}),
		Entry("a half frame", 512, PortBlocked{Ports: 8, RecordsPerPort: 64}),
		Entry("fewer records than ports", 3, PortBlocked{Ports: 3, RecordsPerPort: 1}),
		Entry("a single record", 1, PortBlocked{Ports: 1, RecordsPerPort: 1}),
	)

	It("rejects a missing strategy", func() {
		Expect(errors.Cause(Validate(nil, 1024))).To(Equal(layout.ErrInvalidParameter))
	})

	It("parses strategy tags", func() {
		s, err := Parse("pb", 4, 16)
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal(PortBlocked{Ports: 4, RecordsPerPort: 16}))
		Expect(s.Tag()).To(Equal("pb"))

		_, err = Parse("zigzag", 0, 0)
		Expect(errors.Cause(err)).To(Equal(layout.ErrInvalidParameter))
	})

	It("collects strategies from a flag", func() {
		var f StrategyListFlag
		Expect(f.Set("seq, il")).To(Succeed())
		Expect(f.Set("pb")).To(Succeed())
		Expect(f.Set("zigzag")).ToNot(Succeed())

		ss, err := f.Strategies(8, 128)
		Expect(err).ToNot(HaveOccurred())
		Expect(ss).To(Equal([]Strategy{Sequential{}, Interleaved{}, PortBlocked{Ports: 8, RecordsPerPort: 128}}))
	})
})

func TestMapping(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Mapping Tests")
}
