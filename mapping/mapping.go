// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package mapping translates probe target ordinals into physical record
// indices within a unit.
//
// Each Strategy encodes one assumption about how the controller's pixel
// payload is spread across its physical output ports. Mapping is pure: the
// same Strategy and ordinal always yield the same index.
package mapping

import (
	"fmt"
	"math"

	"github.com/danjacques/datprobe/layout"

	"github.com/pkg/errors"
)

// ErrOrdinalOutOfRange is returned when a Strategy has no slot for an ordinal.
var ErrOrdinalOutOfRange = errors.New("ordinal out of range")

// Strategy maps a probe target ordinal to a physical record index.
type Strategy interface {
	// Map returns the physical record index for ordinal.
	Map(ordinal int) (int, error)

	// Tag is the short name used in generated variant names.
	Tag() string

	fmt.Stringer
}

// Sequential places successive targets on successive records.
type Sequential struct{}

var _ Strategy = Sequential{}

// Map implements Strategy.
func (Sequential) Map(ordinal int) (int, error) {
	if ordinal < 0 {
		return 0, errors.Wrapf(ErrOrdinalOutOfRange, "ordinal %d", ordinal)
	}
	return ordinal, nil
}

// Tag implements Strategy.
func (Sequential) Tag() string { return "seq" }

func (Sequential) String() string { return "sequential" }

// PortBlocked assumes the unit is split into Ports contiguous blocks of
// RecordsPerPort records, one block per physical port. Successive targets land
// on the first record of successive blocks.
type PortBlocked struct {
	Ports          int
	RecordsPerPort int
}

var _ Strategy = PortBlocked{}

// Map implements Strategy.
func (pb PortBlocked) Map(ordinal int) (int, error) {
	if ordinal < 0 || ordinal >= pb.Ports {
		return 0, errors.Wrapf(ErrOrdinalOutOfRange, "ordinal %d with %d ports", ordinal, pb.Ports)
	}
	if pb.RecordsPerPort < 0 || (ordinal > 0 && pb.RecordsPerPort > math.MaxInt/ordinal) {
		return 0, errors.Wrapf(ErrOrdinalOutOfRange, "ordinal %d with %d records per port", ordinal, pb.RecordsPerPort)
	}
	return ordinal * pb.RecordsPerPort, nil
}

// Tag implements Strategy.
func (PortBlocked) Tag() string { return "pb" }

func (pb PortBlocked) String() string {
	return fmt.Sprintf("port-blocked{Ports=%d, PerPort=%d}", pb.Ports, pb.RecordsPerPort)
}

// Interleaved assumes records alternate between ports (record 0 on port 0,
// record 1 on port 1, ...).
//
// Under that wiring the first record of each port is simply the next record,
// so Interleaved maps exactly like Sequential. It is kept as its own Strategy
// so a generated file names the wiring it was built to test.
type Interleaved struct{}

var _ Strategy = Interleaved{}

// Map implements Strategy.
func (Interleaved) Map(ordinal int) (int, error) { return Sequential{}.Map(ordinal) }

// Tag implements Strategy.
func (Interleaved) Tag() string { return "il" }

func (Interleaved) String() string { return "interleaved" }

// Default port-block geometry: 8 ports of 128 pixels make up a 1024-pixel
// frame.
const (
	DefaultPorts          = 8
	DefaultRecordsPerPort = 128
)

// PortBlockedFor returns the default port-block geometry scaled to a unit of
// recordsPerUnit records: up to DefaultPorts ports sharing the unit evenly.
func PortBlockedFor(recordsPerUnit int) PortBlocked {
	ports := DefaultPorts
	if recordsPerUnit < ports {
		ports = recordsPerUnit
	}
	if ports <= 0 {
		return PortBlocked{Ports: DefaultPorts, RecordsPerPort: DefaultRecordsPerPort}
	}
	return PortBlocked{Ports: ports, RecordsPerPort: recordsPerUnit / ports}
}

// Validate checks that every index s can produce lies within a unit of
// recordsPerUnit records.
func Validate(s Strategy, recordsPerUnit int) error {
	switch t := s.(type) {
	case Sequential, Interleaved:
		return nil

	case PortBlocked:
		switch {
		case t.Ports <= 0:
			return errors.Wrapf(layout.ErrInvalidParameter, "ports must be > 0 (got %d)", t.Ports)
		case t.RecordsPerPort <= 0:
			return errors.Wrapf(layout.ErrInvalidParameter, "records per port must be > 0 (got %d)", t.RecordsPerPort)
		case t.RecordsPerPort > recordsPerUnit/t.Ports:
			return errors.Wrapf(layout.ErrInvalidParameter, "%d ports x %d records exceeds %d records per unit",
				t.Ports, t.RecordsPerPort, recordsPerUnit)
		}
		return nil

	case nil:
		return errors.Wrap(layout.ErrInvalidParameter, "no mapping strategy")

	default:
		return errors.Wrapf(layout.ErrInvalidParameter, "unknown mapping strategy %s", s)
	}
}

// Parse returns the Strategy named by tag. ports and recordsPerPort are used
// only by PortBlocked.
func Parse(tag string, ports, recordsPerPort int) (Strategy, error) {
	switch tag {
	case "seq", "sequential":
		return Sequential{}, nil
	case "pb", "portblocks", "port-blocked":
		return PortBlocked{Ports: ports, RecordsPerPort: recordsPerPort}, nil
	case "il", "interleaved":
		return Interleaved{}, nil
	default:
		return nil, errors.Wrapf(layout.ErrInvalidParameter, "unknown mapping %q", tag)
	}
}
