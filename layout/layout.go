// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedTemplate is returned when a template's size cannot hold the
	// requested layout.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrInvalidParameter is returned when a user-supplied layout or probe
	// parameter is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// DefaultHeaderSize is the header size observed on every known DAT file.
const DefaultHeaderSize = 512

// FrameShape is the shape of frame-style DAT files: 1024 pixels of 4 bytes
// each per frame.
var FrameShape = Shape{
	HeaderSize:     DefaultHeaderSize,
	RecordWidth:    4,
	RecordsPerUnit: 1024,
	ComponentCount: 4,
}

// StepShape is the shape of step-style DAT files, where each 12-byte step
// record is its own unit.
var StepShape = Shape{
	HeaderSize:     DefaultHeaderSize,
	RecordWidth:    12,
	RecordsPerUnit: 1,
	ComponentCount: 3,
}

// Shape is the template-independent part of a layout.
type Shape struct {
	// HeaderSize is the number of header bytes preceding the payload.
	HeaderSize int
	// RecordWidth is the width, in bytes, of a single record.
	RecordWidth int
	// RecordsPerUnit is the number of records in a unit (pixels per frame).
	RecordsPerUnit int
	// ComponentCount is the number of logical channels in a record (3 or 4).
	ComponentCount int
}

func (s Shape) String() string {
	return fmt.Sprintf("{Header=%d, Record=%d, PerUnit=%d, Components=%d}",
		s.HeaderSize, s.RecordWidth, s.RecordsPerUnit, s.ComponentCount)
}

// UnitWidth is the width, in bytes, of a single unit.
func (s Shape) UnitWidth() int { return s.RecordWidth * s.RecordsPerUnit }

// Validate checks that s has usable values.
func (s Shape) Validate() error {
	switch {
	case s.HeaderSize < 0:
		return errors.Wrapf(ErrInvalidParameter, "header size must be >= 0 (got %d)", s.HeaderSize)
	case s.RecordWidth <= 0:
		return errors.Wrapf(ErrInvalidParameter, "record width must be > 0 (got %d)", s.RecordWidth)
	case s.RecordsPerUnit <= 0:
		return errors.Wrapf(ErrInvalidParameter, "records per unit must be > 0 (got %d)", s.RecordsPerUnit)
	case s.RecordWidth > (math.MaxInt-s.HeaderSize)/s.RecordsPerUnit:
		return errors.Wrapf(ErrInvalidParameter, "a %d-byte header and %d records of %d bytes overflow",
			s.HeaderSize, s.RecordsPerUnit, s.RecordWidth)
	case s.ComponentCount != 3 && s.ComponentCount != 4:
		return errors.Wrapf(ErrInvalidParameter, "component count must be 3 or 4 (got %d)", s.ComponentCount)
	}
	return nil
}

// Derive builds a Descriptor for a template of the specified length.
//
// The template must hold the header and at least one unit, and its payload
// must be a whole number of units.
func (s Shape) Derive(templateLength int) (*Descriptor, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	unitWidth := s.UnitWidth()
	if templateLength < s.HeaderSize+unitWidth {
		return nil, errors.Wrapf(ErrMalformedTemplate,
			"template (%d bytes) is too small for a %d-byte header and one %d-byte unit",
			templateLength, s.HeaderSize, unitWidth)
	}

	payload := templateLength - s.HeaderSize
	if payload%unitWidth != 0 {
		return nil, errors.Wrapf(ErrMalformedTemplate,
			"template payload (%d bytes) is not divisible by the unit size (%d bytes)",
			payload, unitWidth)
	}

	return &Descriptor{
		Shape:          s,
		TemplateLength: templateLength,
	}, nil
}

// Derive builds a Descriptor for a template whose payload is a sequence of
// recordWidth-byte records, each its own unit.
func Derive(templateLength, headerSize, recordWidth int) (*Descriptor, error) {
	return Shape{
		HeaderSize:     headerSize,
		RecordWidth:    recordWidth,
		RecordsPerUnit: 1,
		ComponentCount: 3,
	}.Derive(templateLength)
}

// Descriptor is a Shape bound to a specific template length.
//
// Descriptor is immutable once derived, and may be shared freely.
type Descriptor struct {
	Shape

	// TemplateLength is the total length of the template, in bytes.
	TemplateLength int
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s x %d units (%d bytes)", d.Shape, d.UnitCount(), d.TemplateLength)
}

// PayloadLength is the number of bytes following the header.
func (d *Descriptor) PayloadLength() int { return d.TemplateLength - d.HeaderSize }

// RecordCount is the number of records in the payload.
func (d *Descriptor) RecordCount() int { return d.PayloadLength() / d.RecordWidth }

// UnitCount is the number of units in the payload.
func (d *Descriptor) UnitCount() int { return d.PayloadLength() / d.UnitWidth() }

// UnitOffset returns the absolute file offset of unit i.
func (d *Descriptor) UnitOffset(i int) int { return d.HeaderSize + (i * d.UnitWidth()) }
