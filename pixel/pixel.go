// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pixel

import (
	"fmt"
	"strings"

	"github.com/danjacques/datprobe/layout"

	"github.com/pkg/errors"
)

// ErrInvalidChannelOrder is returned when a ChannelOrder is not a permutation
// of the channel symbols.
var ErrInvalidChannelOrder = errors.New("invalid channel order")

// Symbol identifies a logical channel. Its value is the channel's index in a
// Values tuple.
type Symbol uint8

const (
	// Red is the red channel.
	Red Symbol = iota
	// Green is the green channel.
	Green
	// Blue is the blue channel.
	Blue
	// Master is the fourth channel. It may be a master/dimmer or a white
	// channel; which one is not known.
	Master
)

// symbolNames are the single-character names of each Symbol, indexed by
// Symbol value.
const symbolNames = "RGBM"

func (s Symbol) String() string {
	if int(s) < len(symbolNames) {
		return symbolNames[s : s+1]
	}
	return fmt.Sprintf("Symbol(%d)", uint8(s))
}

func parseSymbol(r rune) (Symbol, bool) {
	switch r {
	case 'R', 'r':
		return Red, true
	case 'G', 'g':
		return Green, true
	case 'B', 'b':
		return Blue, true
	case 'M', 'm', 'W', 'w':
		return Master, true
	default:
		return 0, false
	}
}

// Values is a tuple of logical channel values, ordered (R, G, B[, M]).
type Values []uint8

// RGB returns a 3-component Values.
func RGB(r, g, b uint8) Values { return Values{r, g, b} }

// RGBM returns a 4-component Values.
func RGBM(r, g, b, m uint8) Values { return Values{r, g, b, m} }

func (v Values) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Max returns the largest component in v.
func (v Values) Max() (m uint8) {
	for _, c := range v {
		if c > m {
			m = c
		}
	}
	return
}

// ChannelOrder is a permutation of channel Symbols. Entry i names the logical
// channel stored at byte offset i of a record.
//
// A ChannelOrder should be constructed with ParseChannelOrder or Identity,
// which guarantee that it is a valid permutation.
type ChannelOrder []Symbol

// Identity returns the natural (R, G, B[, M]) order for componentCount
// components.
func Identity(componentCount int) ChannelOrder {
	o := make(ChannelOrder, componentCount)
	for i := range o {
		o[i] = Symbol(i)
	}
	return o
}

// ParseChannelOrder parses a ChannelOrder string such as "RGBM" or "BGR".
//
// The string must name each of the first componentCount symbols exactly once.
// "W" is accepted as an alias of "M".
func ParseChannelOrder(v string, componentCount int) (ChannelOrder, error) {
	if componentCount <= 0 || componentCount > len(symbolNames) {
		return nil, errors.Wrapf(ErrInvalidChannelOrder, "unsupported component count %d", componentCount)
	}

	o := make(ChannelOrder, 0, componentCount)
	var seen [len(symbolNames)]bool
	for _, r := range v {
		s, ok := parseSymbol(r)
		switch {
		case !ok:
			return nil, errors.Wrapf(ErrInvalidChannelOrder, "%q: unknown channel %q", v, r)
		case int(s) >= componentCount:
			return nil, errors.Wrapf(ErrInvalidChannelOrder, "%q: channel %s not used with %d components",
				v, s, componentCount)
		case seen[s]:
			return nil, errors.Wrapf(ErrInvalidChannelOrder, "%q: channel %s repeated", v, s)
		}
		seen[s] = true
		o = append(o, s)
	}

	if len(o) != componentCount {
		return nil, errors.Wrapf(ErrInvalidChannelOrder, "%q: expected %d channels, got %d",
			v, componentCount, len(o))
	}
	return o, nil
}

// MustParseChannelOrder is ParseChannelOrder, but panics on error.
func MustParseChannelOrder(v string, componentCount int) ChannelOrder {
	o, err := ParseChannelOrder(v, componentCount)
	if err != nil {
		panic(err)
	}
	return o
}

func (o ChannelOrder) String() string {
	var sb strings.Builder
	for _, s := range o {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Validate checks that o is a permutation of its first len(o) symbols.
func (o ChannelOrder) Validate() error {
	if len(o) == 0 || len(o) > len(symbolNames) {
		return errors.Wrapf(ErrInvalidChannelOrder, "order has %d channels", len(o))
	}
	var seen [len(symbolNames)]bool
	for _, s := range o {
		if int(s) >= len(o) || seen[s] {
			return errors.Wrapf(ErrInvalidChannelOrder, "%s is not a permutation", o)
		}
		seen[s] = true
	}
	return nil
}

// Equal returns true if o and other are the same order.
func (o ChannelOrder) Equal(other ChannelOrder) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}
	return true
}

// EncodingMode is the way that Values are laid into a record.
type EncodingMode int

const (
	// Direct writes the permuted Values as-is, repeating them to fill the
	// record.
	Direct EncodingMode = iota
	// ReplicatedMask writes the largest component into every byte of the
	// record.
	ReplicatedMask
)

func (m EncodingMode) String() string {
	switch m {
	case Direct:
		return "direct"
	case ReplicatedMask:
		return "replicated"
	default:
		return fmt.Sprintf("EncodingMode(%d)", int(m))
	}
}

// ParseEncodingMode parses an EncodingMode name.
func ParseEncodingMode(v string) (EncodingMode, error) {
	switch strings.ToLower(v) {
	case "direct":
		return Direct, nil
	case "replicated", "repl":
		return ReplicatedMask, nil
	default:
		return 0, errors.Wrapf(layout.ErrInvalidParameter, "unknown encoding mode %q", v)
	}
}
