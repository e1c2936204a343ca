// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pixel

import (
	"math"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Record Buffer", func() {
	var pb *Buffer
	BeforeEach(func() {
		pb = &Buffer{Width: 4}
	})

	It("has length 0", func() {
		Expect(pb.Len()).To(Equal(0))
		Expect(pb.Bytes()).To(HaveLen(0))
	})

	It("will grow its buffer when reset", func() {
		pb.Reset(5)
		Expect(pb.Len()).To(Equal(5))
		Expect(pb.Bytes()).To(HaveLen(20))
	})

	It("zeroes a reused buffer on reset", func() {
		pb.UseBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8})
		pb.Reset(1)
		Expect(pb.Bytes()).To(Equal([]byte{0, 0, 0, 0}))
	})

	Context("manipulating records", func() {
		BeforeEach(func() {
			pb.Reset(3)
		})

		It("can set and read records", func() {
			By("setting records")
			Expect(pb.SetRecord(0, []byte{1, 2, 3, 4})).To(Succeed())
			Expect(pb.SetRecord(2, []byte{9, 8, 7, 6})).To(Succeed())

			By("reading records")
			Expect(pb.Record(0)).To(Equal([]byte{1, 2, 3, 4}))
			Expect(pb.Record(1)).To(Equal([]byte{0, 0, 0, 0}))
			Expect(pb.Record(2)).To(Equal([]byte{9, 8, 7, 6}))

			By("reading the buffer")
			Expect(pb.Bytes()).To(Equal([]byte{1, 2, 3, 4, 0, 0, 0, 0, 9, 8, 7, 6}))
		})

		It("will refuse out-of-bounds records", func() {
			err := pb.SetRecord(3, []byte{1, 2, 3, 4})
			Expect(errors.Cause(err)).To(Equal(ErrTargetWriteOutOfBounds))
			Expect(pb.Record(3)).To(BeNil())
			Expect(pb.Record(-1)).To(BeNil())
			Expect(pb.Bytes()).To(Equal(make([]byte, 12)))
		})

		It("refuses indices whose offset would overflow", func() {
			Expect(pb.SetRecord(0, []byte{1, 2, 3, 4})).To(Succeed())

			err := pb.SetRecord(math.MaxInt/4+1, []byte{9, 9, 9, 9})
			Expect(errors.Cause(err)).To(Equal(ErrTargetWriteOutOfBounds))
			Expect(pb.Record(math.MaxInt/4 + 1)).To(BeNil())
			Expect(pb.Record(0)).To(Equal([]byte{1, 2, 3, 4}))
		})

		It("can fill every record", func() {
			pb.Fill([]byte{5, 6, 7, 8})
			Expect(pb.Bytes()).To(Equal([]byte{5, 6, 7, 8, 5, 6, 7, 8, 5, 6, 7, 8}))
		})
	})
})
