// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package variant

import (
	"fmt"
	"strings"

	"github.com/danjacques/datprobe/mapping"
	"github.com/danjacques/datprobe/pixel"
)

// Kind is the kind of probe a Spec describes.
type Kind int

const (
	// KindProbe holds a probe unit, built from mapped and encoded targets on a
	// zeroed unit, for the leading units of the file.
	KindProbe Kind = iota
	// KindFill sets every record to the same value.
	KindFill
	// KindLaneRotation lights one byte offset of each record at a time,
	// sweeping every offset.
	KindLaneRotation
	// KindPatch writes targets over the template's own leading units, leaving
	// the rest of each unit untouched.
	KindPatch
)

func (k Kind) String() string {
	switch k {
	case KindProbe:
		return "probe"
	case KindFill:
		return "fill"
	case KindLaneRotation:
		return "lane-rotation"
	case KindPatch:
		return "patch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Target is a named probe pattern.
type Target struct {
	Label  string
	Values pixel.Values
}

func (t Target) String() string { return fmt.Sprintf("%s%s", t.Label, t.Values) }

// CanonicalTargets returns the four channel-gate probe targets for
// componentCount components:
//
//	P0_Ronly: FF 00 00 FF
//	P1_Gonly: 00 FF 00 FF
//	P2_Bonly: 00 00 FF FF
//	P3_RGB:   FF FF FF FF
//
// The trailing master component is dropped when componentCount is 3.
func CanonicalTargets(componentCount int) []Target {
	targets := []Target{
		{"P0_Ronly", pixel.RGBM(0xFF, 0x00, 0x00, 0xFF)},
		{"P1_Gonly", pixel.RGBM(0x00, 0xFF, 0x00, 0xFF)},
		{"P2_Bonly", pixel.RGBM(0x00, 0x00, 0xFF, 0xFF)},
		{"P3_RGB", pixel.RGBM(0xFF, 0xFF, 0xFF, 0xFF)},
	}
	if componentCount < len(targets[0].Values) {
		for i := range targets {
			targets[i].Values = targets[i].Values[:componentCount]
		}
	}
	return targets
}

// FillProbe parameterizes a KindFill Spec.
type FillProbe struct {
	// Values is the value encoded into every record.
	Values pixel.Values
	// PadSteps is the number of trailing all-zero records.
	PadSteps int
}

// LaneProbe parameterizes a KindLaneRotation Spec.
type LaneProbe struct {
	// Hold is the number of consecutive records each byte offset stays active.
	Hold int
	// Value is the active byte value.
	Value uint8
	// PadSteps is the number of trailing all-zero records.
	PadSteps int
}

// Spec fully determines one output file.
//
// Specs are produced by Enumerate and must not be modified afterwards.
type Spec struct {
	// Name uniquely identifies this Spec within its enumeration.
	Name string
	// Kind is the kind of probe.
	Kind Kind

	// Mapping places Targets within a unit (KindProbe, KindPatch).
	Mapping mapping.Strategy
	// Order is the channel order used to encode values.
	Order pixel.ChannelOrder
	// Encoding is the encoding mode used to encode values.
	Encoding pixel.EncodingMode
	// HoldCount is the number of leading units that carry the probe.
	HoldCount int
	// Targets are placed, in order, at ordinals 0, 1, 2, ...
	Targets []Target

	// Fill is populated for KindFill.
	Fill FillProbe
	// Lane is populated for KindLaneRotation.
	Lane LaneProbe
}

// FileName is the deterministic output file name for s.
func (s *Spec) FileName() string { return "PROBE_" + s.Name + ".DAT" }

// Describe returns a one-line summary of the parameters of s.
func (s *Spec) Describe() string {
	switch s.Kind {
	case KindProbe, KindPatch:
		return fmt.Sprintf("%s mapping=%s order=%s encoding=%s hold=%d targets=%d",
			s.Kind, s.Mapping, s.Order, s.Encoding, s.HoldCount, len(s.Targets))
	case KindFill:
		return fmt.Sprintf("%s values=%s order=%s pad=%d", s.Kind, s.Fill.Values, s.Order, s.Fill.PadSteps)
	case KindLaneRotation:
		return fmt.Sprintf("%s hold=%d value=%d pad=%d", s.Kind, s.Lane.Hold, s.Lane.Value, s.Lane.PadSteps)
	default:
		return s.Kind.String()
	}
}

func (s *Spec) String() string { return s.Name }

// hexName renders values as a compact upper-case hex string for names.
func hexName(v pixel.Values) string {
	var sb strings.Builder
	for _, c := range v {
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}
