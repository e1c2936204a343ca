// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package variant

import (
	"github.com/danjacques/datprobe/layout"
	"github.com/danjacques/datprobe/mapping"
	"github.com/danjacques/datprobe/pixel"

	"github.com/pkg/errors"
)

// ErrDuplicateName is returned when a Selection would produce two Specs with
// the same name.
var ErrDuplicateName = errors.New("duplicate variant name")

// DefaultHoldCount is the default number of leading units held on the probe.
const DefaultHoldCount = 400

// catalog is the declared set of direct-encoding orders probed per mapping
// when no orders are selected. Orders are written for 4 components; see
// catalogOrders.
//
// namedRepl marks mappings whose replicated variant name carries the identity
// order: seq_RGBM_REPL rather than seq_REPL.
var catalog = []struct {
	tag       string
	orders    []string
	namedRepl bool
}{
	{"seq", []string{"RGBM", "BGRM", "GRBM", "MRGB"}, true},
	{"pb", []string{"RGBM", "BGRM", "MRGB"}, false},
	{"il", []string{"RGBM", "MRGB"}, false},
}

// replicatedName returns the name of m's ReplicatedMask variant for
// componentCount components.
func replicatedName(m mapping.Strategy, componentCount int) string {
	for _, c := range catalog {
		if c.tag == m.Tag() && c.namedRepl {
			return m.Tag() + "_" + pixel.Identity(componentCount).String() + "_REPL"
		}
	}
	return m.Tag() + "_REPL"
}

// Selection chooses which Specs Enumerate produces.
//
// The zero value selects the default catalog: every mapping, the catalog's
// orders for each, and both encoding modes.
type Selection struct {
	// Mappings are the mapping strategies to probe. If empty, Sequential,
	// PortBlocked (the default geometry scaled to the unit) and Interleaved are
	// used.
	Mappings []mapping.Strategy
	// Orders are the direct-encoding channel orders to probe. If empty, each
	// mapping uses its catalog orders.
	Orders []pixel.ChannelOrder
	// Encodings are the encoding modes to probe. If empty, Direct and
	// ReplicatedMask are used.
	Encodings []pixel.EncodingMode
	// Cross, if true and Orders is empty, probes the union of all catalog
	// orders under every mapping rather than each mapping's own subset.
	Cross bool
	// SkipProbes disables the mapping/order/encoding probes entirely, leaving
	// only the single-purpose probes below.
	SkipProbes bool

	// HoldCount is the number of leading units carrying each probe.
	HoldCount int
	// Targets are the probe targets. If empty, CanonicalTargets is used.
	Targets []Target

	// Fill, if not nil, adds a uniform fill probe.
	Fill *FillProbe
	// Lane, if not nil, adds a lane rotation probe.
	Lane *LaneProbe
	// Patch, if true, adds an in-place patch probe per direct order.
	Patch bool
}

// Enumerate expands sel into an ordered list of Specs for the layout d.
//
// All parameters are validated before any Spec is returned, so a successful
// Enumerate yields Specs that can each be synthesized.
func Enumerate(d *layout.Descriptor, sel Selection) ([]*Spec, error) {
	if d == nil {
		return nil, errors.Wrap(layout.ErrInvalidParameter, "no layout descriptor")
	}
	e := enumerator{
		d:     d,
		sel:   &sel,
		names: make(map[string]struct{}),
	}
	if err := e.prepare(); err != nil {
		return nil, err
	}
	if err := e.run(); err != nil {
		return nil, err
	}
	return e.specs, nil
}

type enumerator struct {
	d   *layout.Descriptor
	sel *Selection

	mappings  []mapping.Strategy
	encodings []pixel.EncodingMode
	targets   []Target

	specs []*Spec
	names map[string]struct{}
}

func (e *enumerator) prepare() error {
	sel, n := e.sel, e.d.ComponentCount

	if sel.HoldCount < 0 {
		return errors.Wrapf(layout.ErrInvalidParameter, "hold count must be >= 0 (got %d)", sel.HoldCount)
	}

	e.targets = sel.Targets
	if len(e.targets) == 0 {
		e.targets = CanonicalTargets(n)
	}
	for _, t := range e.targets {
		if len(t.Values) != n {
			return errors.Wrapf(layout.ErrInvalidParameter, "target %s has %d components, layout has %d",
				t, len(t.Values), n)
		}
	}

	e.mappings = sel.Mappings
	if len(e.mappings) == 0 {
		e.mappings = []mapping.Strategy{
			mapping.Sequential{},
			mapping.PortBlockedFor(e.d.RecordsPerUnit),
			mapping.Interleaved{},
		}
	}
	if !sel.SkipProbes {
		for _, m := range e.mappings {
			if err := mapping.Validate(m, e.d.RecordsPerUnit); err != nil {
				return errors.Wrapf(err, "mapping %s", m)
			}
		}
	}

	for _, o := range sel.Orders {
		if len(o) != n {
			return errors.Wrapf(pixel.ErrInvalidChannelOrder, "order %s has %d channels, layout has %d",
				o, len(o), n)
		}
		if err := o.Validate(); err != nil {
			return err
		}
	}

	e.encodings = sel.Encodings
	if len(e.encodings) == 0 {
		e.encodings = []pixel.EncodingMode{pixel.Direct, pixel.ReplicatedMask}
	}
	for _, m := range e.encodings {
		if m != pixel.Direct && m != pixel.ReplicatedMask {
			return errors.Wrapf(layout.ErrInvalidParameter, "unknown encoding mode %s", m)
		}
	}

	if f := sel.Fill; f != nil {
		if len(f.Values) != n {
			return errors.Wrapf(layout.ErrInvalidParameter, "fill %s has %d components, layout has %d",
				f.Values, len(f.Values), n)
		}
		if err := e.checkPad(f.PadSteps); err != nil {
			return err
		}
	}

	if l := sel.Lane; l != nil {
		if l.Hold <= 0 {
			return errors.Wrapf(layout.ErrInvalidParameter, "lane hold must be > 0 (got %d)", l.Hold)
		}
		if err := e.checkPad(l.PadSteps); err != nil {
			return err
		}
	}
	return nil
}

func (e *enumerator) checkPad(pad int) error {
	switch total := e.d.RecordCount(); {
	case pad < 0:
		return errors.Wrapf(layout.ErrInvalidParameter, "pad steps must be >= 0 (got %d)", pad)
	case pad >= total:
		return errors.Wrapf(layout.ErrInvalidParameter, "pad steps (%d) must be less than total steps (%d)",
			pad, total)
	}
	return nil
}

func (e *enumerator) run() error {
	sel, n := e.sel, e.d.ComponentCount

	if !sel.SkipProbes {
		for _, m := range e.mappings {
			for _, enc := range e.encodings {
				switch enc {
				case pixel.Direct:
					for _, o := range e.ordersFor(m) {
						if err := e.add(&Spec{
							Name:     m.Tag() + "_" + o.String(),
							Kind:     KindProbe,
							Mapping:  m,
							Order:    o,
							Encoding: pixel.Direct,
						}); err != nil {
							return err
						}
					}

				case pixel.ReplicatedMask:
					// Replicated records do not depend on order, so one Spec covers
					// every order.
					if err := e.add(&Spec{
						Name:     replicatedName(m, n),
						Kind:     KindProbe,
						Mapping:  m,
						Order:    pixel.Identity(n),
						Encoding: pixel.ReplicatedMask,
					}); err != nil {
						return err
					}
				}
			}
		}
	}

	if f := sel.Fill; f != nil {
		if err := e.add(&Spec{
			Name:     "FILL_" + hexName(f.Values),
			Kind:     KindFill,
			Order:    pixel.Identity(n),
			Encoding: pixel.Direct,
			Fill:     *f,
		}); err != nil {
			return err
		}
	}

	if l := sel.Lane; l != nil {
		if err := e.add(&Spec{
			Name: "LANE_ROTATE",
			Kind: KindLaneRotation,
			Lane: *l,
		}); err != nil {
			return err
		}
	}

	if sel.Patch {
		orders := sel.Orders
		if len(orders) == 0 {
			orders = []pixel.ChannelOrder{pixel.Identity(n)}
		}
		for _, o := range orders {
			if err := e.add(&Spec{
				Name:     "PATCH_" + o.String(),
				Kind:     KindPatch,
				Mapping:  mapping.Sequential{},
				Order:    o,
				Encoding: pixel.Direct,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// add finalizes s and appends it to the enumeration.
func (e *enumerator) add(s *Spec) error {
	if _, ok := e.names[s.Name]; ok {
		return errors.Wrapf(ErrDuplicateName, "%q", s.Name)
	}
	e.names[s.Name] = struct{}{}

	if s.Kind == KindProbe || s.Kind == KindPatch {
		s.HoldCount = e.sel.HoldCount
		s.Targets = e.targets
	}
	e.specs = append(e.specs, s)
	return nil
}

// ordersFor returns the direct-encoding orders to probe under m.
func (e *enumerator) ordersFor(m mapping.Strategy) []pixel.ChannelOrder {
	if len(e.sel.Orders) > 0 {
		return e.sel.Orders
	}

	var names []string
	for _, c := range catalog {
		if e.sel.Cross || c.tag == m.Tag() {
			names = append(names, c.orders...)
		}
	}
	return catalogOrders(names, e.d.ComponentCount)
}

// catalogOrders converts 4-component catalog order names to componentCount
// components, dropping orders that become duplicates.
func catalogOrders(names []string, componentCount int) []pixel.ChannelOrder {
	orders := make([]pixel.ChannelOrder, 0, len(names))
	for _, name := range names {
		o := pixel.MustParseChannelOrder(name, 4)
		if componentCount < len(o) {
			trimmed := make(pixel.ChannelOrder, 0, componentCount)
			for _, s := range o {
				if int(s) < componentCount {
					trimmed = append(trimmed, s)
				}
			}
			o = trimmed
		}

		if containsOrder(orders, o) {
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

func containsOrder(orders []pixel.ChannelOrder, o pixel.ChannelOrder) bool {
	for _, have := range orders {
		if have.Equal(o) {
			return true
		}
	}
	return false
}
