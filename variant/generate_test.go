// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package variant

import (
	"testing"

	"github.com/danjacques/datprobe/layout"
	"github.com/danjacques/datprobe/mapping"
	"github.com/danjacques/datprobe/pixel"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func specNames(specs []*Spec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

func mustDerive(s layout.Shape, length int) *layout.Descriptor {
	d, err := s.Derive(length)
	Expect(err).ToNot(HaveOccurred())
	return d
}

var _ = Describe("Variant Generator", func() {
	var frame *layout.Descriptor
	BeforeEach(func() {
		frame = mustDerive(layout.FrameShape, 512+10*4096)
	})

	Context("the default catalog", func() {
		It("produces the declared variants in order", func() {
			specs, err := Enumerate(frame, Selection{HoldCount: 3})
			Expect(err).ToNot(HaveOccurred())
			Expect(specNames(specs)).To(Equal([]string{
				"seq_RGBM", "seq_BGRM", "seq_GRBM", "seq_MRGB", "seq_RGBM_REPL",
				"pb_RGBM", "pb_BGRM", "pb_MRGB", "pb_REPL",
				"il_RGBM", "il_MRGB", "il_REPL",
			}))

			By("binding the hold count and canonical targets to every probe")
			for _, s := range specs {
				Expect(s.Kind).To(Equal(KindProbe))
				Expect(s.HoldCount).To(Equal(3))
				Expect(s.Targets).To(Equal(CanonicalTargets(4)))
			}

			By("naming output files after variants")
			Expect(specs[0].FileName()).To(Equal("PROBE_seq_RGBM.DAT"))
		})

		It("is stable across runs", func() {
			a, err := Enumerate(frame, Selection{HoldCount: 3})
			Expect(err).ToNot(HaveOccurred())
			b, err := Enumerate(frame, Selection{HoldCount: 3})
			Expect(err).ToNot(HaveOccurred())
			Expect(specNames(a)).To(Equal(specNames(b)))
		})

		It("collapses orders that coincide with 3 components", func() {
			rgbFrame := mustDerive(layout.Shape{
				HeaderSize:     512,
				RecordWidth:    3,
				RecordsPerUnit: 1024,
				ComponentCount: 3,
			}, 512+2*3072)

			specs, err := Enumerate(rgbFrame, Selection{})
			Expect(err).ToNot(HaveOccurred())
			Expect(specNames(specs)).To(Equal([]string{
				"seq_RGB", "seq_BGR", "seq_GRB", "seq_RGB_REPL",
				"pb_RGB", "pb_BGR", "pb_REPL",
				"il_RGB", "il_REPL",
			}))
			Expect(specs[0].Targets[0].Values).To(Equal(pixel.RGB(0xFF, 0, 0)))
		})

		It("scales the port-blocked geometry to smaller frames", func() {
			half := mustDerive(layout.Shape{
				HeaderSize:     512,
				RecordWidth:    4,
				RecordsPerUnit: 512,
				ComponentCount: 4,
			}, 512+2*2048)

			specs, err := Enumerate(half, Selection{})
			Expect(err).ToNot(HaveOccurred())
			Expect(specs).To(HaveLen(12))
			Expect(specs[5].Name).To(Equal("pb_RGBM"))
			Expect(specs[5].Mapping).To(Equal(mapping.PortBlocked{Ports: 8, RecordsPerPort: 64}))
		})

		It("covers single-record units", func() {
			steps := mustDerive(layout.StepShape, 512+10*12)

			specs, err := Enumerate(steps, Selection{})
			Expect(err).ToNot(HaveOccurred())
			Expect(specNames(specs)).To(ContainElement("pb_RGB"))
			Expect(specNames(specs)).To(ContainElement("seq_RGB_REPL"))
		})
	})

	Context("a cross-product selection", func() {
		It("probes every catalog order under every mapping without duplicates", func() {
			specs, err := Enumerate(frame, Selection{Cross: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(specs).To(HaveLen(3 * (4 + 1)))

			seen := make(map[string]bool)
			for _, s := range specs {
				Expect(seen).ToNot(HaveKey(s.Name))
				seen[s.Name] = true
			}
			Expect(seen).To(HaveKey("il_GRBM"))
		})

		It("uses explicit axes in selection order", func() {
			specs, err := Enumerate(frame, Selection{
				Mappings:  []mapping.Strategy{mapping.Interleaved{}, mapping.Sequential{}},
				Orders:    []pixel.ChannelOrder{pixel.MustParseChannelOrder("GBRM", 4)},
				Encodings: []pixel.EncodingMode{pixel.ReplicatedMask, pixel.Direct},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(specNames(specs)).To(Equal([]string{"il_REPL", "il_GBRM", "seq_RGBM_REPL", "seq_GBRM"}))
		})
	})

	Context("single-purpose probes", func() {
		var steps *layout.Descriptor
		BeforeEach(func() {
			steps = mustDerive(layout.StepShape, 512+10*12)
		})

		It("adds fill and lane rotation probes", func() {
			specs, err := Enumerate(steps, Selection{
				SkipProbes: true,
				Fill:       &FillProbe{Values: pixel.RGB(0xFF, 0, 0), PadSteps: 2},
				Lane:       &LaneProbe{Hold: 2, Value: 200, PadSteps: 2},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(specNames(specs)).To(Equal([]string{"FILL_FF0000", "LANE_ROTATE"}))
			Expect(specs[0].Kind).To(Equal(KindFill))
			Expect(specs[1].Lane).To(Equal(LaneProbe{Hold: 2, Value: 200, PadSteps: 2}))
		})

		It("rejects padding that consumes every step", func() {
			_, err := Enumerate(steps, Selection{
				SkipProbes: true,
				Lane:       &LaneProbe{Hold: 2, Value: 200, PadSteps: 10},
			})
			Expect(errors.Cause(err)).To(Equal(layout.ErrInvalidParameter))
		})

		It("rejects a non-positive lane hold", func() {
			_, err := Enumerate(steps, Selection{
				SkipProbes: true,
				Lane:       &LaneProbe{Hold: 0, Value: 200},
			})
			Expect(errors.Cause(err)).To(Equal(layout.ErrInvalidParameter))
		})

		It("adds patch probes per order", func() {
			specs, err := Enumerate(frame, Selection{
				SkipProbes: true,
				Patch:      true,
				HoldCount:  1,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(specNames(specs)).To(Equal([]string{"PATCH_RGBM"}))
			Expect(specs[0].Kind).To(Equal(KindPatch))
			Expect(specs[0].HoldCount).To(Equal(1))
		})
	})

	Context("validation", func() {
		It("rejects duplicate names", func() {
			o := pixel.MustParseChannelOrder("RGBM", 4)
			_, err := Enumerate(frame, Selection{Orders: []pixel.ChannelOrder{o, o}})
			Expect(errors.Cause(err)).To(Equal(ErrDuplicateName))
		})

		It("rejects orders that do not match the layout", func() {
			_, err := Enumerate(frame, Selection{
				Orders: []pixel.ChannelOrder{pixel.MustParseChannelOrder("RGB", 3)},
			})
			Expect(errors.Cause(err)).To(Equal(pixel.ErrInvalidChannelOrder))
		})

		It("rejects port blocks that overflow the unit", func() {
			_, err := Enumerate(frame, Selection{
				Mappings: []mapping.Strategy{mapping.PortBlocked{Ports: 16, RecordsPerPort: 128}},
			})
			Expect(errors.Cause(err)).To(Equal(layout.ErrInvalidParameter))
		})

		It("rejects targets with the wrong component count", func() {
			_, err := Enumerate(frame, Selection{
				Targets: []Target{{Label: "short", Values: pixel.RGB(1, 2, 3)}},
			})
			Expect(errors.Cause(err)).To(Equal(layout.ErrInvalidParameter))
		})

		It("rejects a negative hold count", func() {
			_, err := Enumerate(frame, Selection{HoldCount: -1})
			Expect(errors.Cause(err)).To(Equal(layout.ErrInvalidParameter))
		})
	})
})

func TestVariant(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Variant Tests")
}
