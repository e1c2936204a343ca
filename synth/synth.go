// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package synth

import (
	"sync"

	"github.com/danjacques/datprobe/layout"
	"github.com/danjacques/datprobe/pixel"
	"github.com/danjacques/datprobe/support/bufferpool"
	"github.com/danjacques/datprobe/support/fmtutil"
	"github.com/danjacques/datprobe/support/logging"
	"github.com/danjacques/datprobe/variant"

	"github.com/pkg/errors"
)

// ErrOutputLengthMismatch is returned when a synthesized file's length does
// not match its template. It indicates a bug, and is fatal for the variant.
var ErrOutputLengthMismatch = errors.New("output length mismatch")

// Skipped describes a probe target that was left out of an output.
type Skipped struct {
	// Ordinal is the target's position in the Spec's target list.
	Ordinal int
	// Target is the skipped target.
	Target variant.Target
	// Err is the reason it was skipped.
	Err error
}

// Output is a synthesized file.
type Output struct {
	// Spec is the Spec that Output was built from.
	Spec *variant.Spec
	// Skipped lists targets that could not be placed. An Output with skipped
	// targets is still valid, but only partially probes its Spec.
	Skipped []Skipped

	buf  *bufferpool.Buffer
	data []byte
}

// Bytes returns the file content. It is valid until Release is called.
func (o *Output) Bytes() []byte { return o.data }

// Degraded returns true if any targets were skipped.
func (o *Output) Degraded() bool { return len(o.Skipped) > 0 }

// Release returns the Output's buffer for reuse. The Output must not be used
// afterwards.
func (o *Output) Release() {
	if o.buf != nil {
		o.buf.Release()
		o.buf, o.data = nil, nil
	}
}

// Synthesizer builds Outputs from a single template.
type Synthesizer struct {
	// Template is the known-good file. It is never modified.
	Template []byte
	// Descriptor is the layout derived from Template.
	Descriptor *layout.Descriptor
	// Logger, if not nil, is used to log debug information.
	Logger logging.L

	poolOnce sync.Once
	pool     bufferpool.Pool
}

// New returns a Synthesizer for template, laid out as d.
func New(template []byte, d *layout.Descriptor, l logging.L) (*Synthesizer, error) {
	if d == nil {
		return nil, errors.Wrap(layout.ErrInvalidParameter, "no layout descriptor")
	}
	if len(template) != d.TemplateLength {
		return nil, errors.Wrapf(layout.ErrMalformedTemplate, "template is %d bytes, descriptor expects %d",
			len(template), d.TemplateLength)
	}
	return &Synthesizer{
		Template:   template,
		Descriptor: d,
		Logger:     l,
	}, nil
}

func (s *Synthesizer) logger() logging.L { return logging.Must(s.Logger) }

func (s *Synthesizer) getBuffer() *bufferpool.Buffer {
	s.poolOnce.Do(func() { s.pool.Size = len(s.Template) })
	return s.pool.Get()
}

// Synthesize builds the output file for spec.
//
// Targets that cannot be placed are skipped and listed in the Output. Any
// returned error is fatal for spec only.
func (s *Synthesizer) Synthesize(spec *variant.Spec) (*Output, error) {
	buf := s.getBuffer()
	o := Output{
		Spec: spec,
		buf:  buf,
	}

	// Append into the pooled buffer. Writing the wrong number of bytes either
	// leaves it short or reallocates past it; both are caught below.
	w := buf.Bytes()[:0]
	w = append(w, s.Template[:s.Descriptor.HeaderSize]...)

	var err error
	switch spec.Kind {
	case variant.KindProbe:
		w, err = s.buildProbe(w, &o)
	case variant.KindPatch:
		w, err = s.buildPatch(w, &o)
	case variant.KindFill:
		w, err = s.buildFill(w, spec)
	case variant.KindLaneRotation:
		w, err = s.buildLaneRotation(w, spec)
	default:
		err = errors.Errorf("unknown variant kind: %s", spec.Kind)
	}
	if err != nil {
		buf.Release()
		synthErrors.WithLabelValues("build").Inc()
		return nil, errors.Wrapf(err, "building %q", spec.Name)
	}

	if len(w) != len(s.Template) {
		buf.Release()
		synthErrors.WithLabelValues("length_mismatch").Inc()
		return nil, errors.Wrapf(ErrOutputLengthMismatch, "%q: output is %d bytes, template is %d bytes",
			spec.Name, len(w), len(s.Template))
	}

	o.data = w
	synthVariants.WithLabelValues(spec.Kind.String()).Inc()
	synthSkippedTargets.Add(float64(len(o.Skipped)))
	synthBytes.Add(float64(len(w)))
	return &o, nil
}

// holdUnits returns the number of leading units that carry the probe.
func (s *Synthesizer) holdUnits(spec *variant.Spec) int {
	hold := spec.HoldCount
	if n := s.Descriptor.UnitCount(); hold > n {
		hold = n
	}
	if hold < 0 {
		hold = 0
	}
	return hold
}

// placeTargets maps and encodes each of spec's targets into unit.
//
// Targets that cannot be placed are recorded in o.Skipped.
func (s *Synthesizer) placeTargets(unit *pixel.Buffer, o *Output) error {
	spec := o.Spec
	if spec.Mapping == nil {
		return errors.Wrapf(layout.ErrInvalidParameter, "%q has no mapping strategy", spec.Name)
	}

	for k, t := range spec.Targets {
		idx, err := spec.Mapping.Map(k)
		if err != nil {
			o.Skipped = append(o.Skipped, Skipped{Ordinal: k, Target: t, Err: err})
			continue
		}

		rec, err := pixel.Encode(t.Values, spec.Order, spec.Encoding, unit.Width)
		if err != nil {
			return errors.Wrapf(err, "encoding target %s", t)
		}

		if err := unit.SetRecord(idx, rec); err != nil {
			o.Skipped = append(o.Skipped, Skipped{Ordinal: k, Target: t, Err: err})
			continue
		}
		s.logger().Debugf("%s: target %s at record %d: %s", spec.Name, t.Label, idx, fmtutil.HexBytes(unit.Record(idx)))
	}
	return nil
}

// buildProbe builds a probe unit on a zeroed unit, holds it for the leading
// units, and copies the remaining units from the template.
func (s *Synthesizer) buildProbe(w []byte, o *Output) ([]byte, error) {
	d := s.Descriptor

	unit := pixel.Buffer{Width: d.RecordWidth}
	unit.Reset(d.RecordsPerUnit)
	if err := s.placeTargets(&unit, o); err != nil {
		return w, err
	}

	hold := s.holdUnits(o.Spec)
	for i := 0; i < hold; i++ {
		w = append(w, unit.Bytes()...)
	}
	return append(w, s.Template[d.UnitOffset(hold):]...), nil
}

// buildPatch copies the template's payload and writes targets over the
// template's own records in the leading units.
func (s *Synthesizer) buildPatch(w []byte, o *Output) ([]byte, error) {
	d := s.Descriptor

	w = append(w, s.Template[d.HeaderSize:]...)
	if len(w) != len(s.Template) {
		// Reported by Synthesize.
		return w, nil
	}

	hold := s.holdUnits(o.Spec)
	for i := 0; i < hold; i++ {
		off := d.UnitOffset(i)

		unit := pixel.Buffer{Width: d.RecordWidth}
		unit.UseBytes(w[off : off+d.UnitWidth()])

		// Only report skipped targets once; they are the same for every unit.
		skipped := len(o.Skipped)
		if err := s.placeTargets(&unit, o); err != nil {
			return w, err
		}
		if i > 0 {
			o.Skipped = o.Skipped[:skipped]
		}
	}
	return w, nil
}

// buildFill encodes the fill value into every record, then zeroes the pad
// records.
func (s *Synthesizer) buildFill(w []byte, spec *variant.Spec) ([]byte, error) {
	d := s.Descriptor

	on, err := pixel.Encode(spec.Fill.Values, spec.Order, spec.Encoding, d.RecordWidth)
	if err != nil {
		return w, errors.Wrap(err, "encoding fill record")
	}
	s.logger().Debugf("%s: fill record %s", spec.Name, fmtutil.HexBytes(on))

	active := d.RecordCount() - spec.Fill.PadSteps
	if active < 0 {
		return w, errors.Wrapf(layout.ErrInvalidParameter, "pad steps (%d) exceed total steps (%d)",
			spec.Fill.PadSteps, d.RecordCount())
	}

	records := pixel.Buffer{Width: d.RecordWidth}
	records.Reset(active)
	records.Fill(on)
	w = append(w, records.Bytes()...)
	return appendZeroRecords(w, d.RecordWidth, spec.Fill.PadSteps), nil
}

// buildLaneRotation lights a single byte offset per record. Each offset stays
// lit for Hold records before moving to the next, wrapping after the last
// offset. The final PadSteps records are zero.
func (s *Synthesizer) buildLaneRotation(w []byte, spec *variant.Spec) ([]byte, error) {
	d, lane := s.Descriptor, spec.Lane
	if lane.Hold <= 0 {
		return w, errors.Wrapf(layout.ErrInvalidParameter, "lane hold must be > 0 (got %d)", lane.Hold)
	}

	active := d.RecordCount() - lane.PadSteps
	if active <= 0 {
		return w, errors.Wrapf(layout.ErrInvalidParameter, "pad steps (%d) must be less than total steps (%d)",
			lane.PadSteps, d.RecordCount())
	}

	rec := make([]byte, d.RecordWidth)
	for i := 0; i < active; i++ {
		for j := range rec {
			rec[j] = 0
		}
		rec[(i/lane.Hold)%d.RecordWidth] = lane.Value
		w = append(w, rec...)
	}
	return appendZeroRecords(w, d.RecordWidth, lane.PadSteps), nil
}

func appendZeroRecords(w []byte, width, count int) []byte {
	for i := 0; i < width*count; i++ {
		w = append(w, 0)
	}
	return w
}
