// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package datprobe

import (
	"strconv"
	"strings"

	"github.com/danjacques/datprobe/layout"
	"github.com/danjacques/datprobe/mapping"
	"github.com/danjacques/datprobe/pixel"
	"github.com/danjacques/datprobe/variant"

	"github.com/pkg/errors"
)

// Layout preset names.
const (
	layoutFrame = "frame"
	layoutStep  = "step"
)

// Config is the full set of parameters for a run.
type Config struct {
	// TemplatePath is the path of the known-good template file.
	TemplatePath string
	// OutDir is the directory that receives the generated files.
	OutDir string

	// Layout names the preset shape ("frame" or "step"). The shape fields
	// below override it when they are > 0 (>= 0 for HeaderSize).
	Layout         string
	HeaderSize     int
	RecordWidth    int
	RecordsPerUnit int
	Components     int

	// Hold is the number of leading units carrying each probe.
	Hold int
	// Value is the active byte value for the lane rotation probe.
	Value int
	// PadSteps is the number of trailing zero records for the fill and lane
	// rotation probes.
	PadSteps int
	// LaneHold is the number of records each lane stays lit.
	LaneHold int
	// Fill, if not empty, is a comma-separated value tuple for a fill probe.
	Fill string

	// Probes enables the mapping/order/encoding probes.
	Probes bool
	// Lane enables the lane rotation probe.
	Lane bool
	// Patch enables the in-place patch probes.
	Patch bool
	// Cross probes the full cross-product of catalog orders.
	Cross bool

	Mappings  mapping.StrategyListFlag
	Orders    pixel.ChannelOrderListFlag
	Encodings pixel.EncodingModeListFlag
	// Ports and PerPort set the port-blocked geometry. Either one left at 0 is
	// derived from the unit size.
	Ports   int
	PerPort int

	// Jobs is the number of variants synthesized concurrently.
	Jobs int

	// LogLevel is the hclog level name.
	LogLevel string
	// MetricsFile, if not empty, receives the run's metrics in Prometheus text
	// format.
	MetricsFile string
}

// defaultConfig returns a Config populated with default values.
func defaultConfig() Config {
	return Config{
		Layout:      layoutFrame,
		HeaderSize:  -1,
		Hold:        variant.DefaultHoldCount,
		Value:       255,
		PadSteps:    24,
		LaneHold:    30,
		Probes:      true,
		Jobs:        1,
		LogLevel:    "info",
		MetricsFile: "",
	}
}

// applyLayoutDefaults chooses which probes run when the user didn't say.
// Step-style files have single-record units, so they get the lane rotation
// probe instead of the per-unit probes.
func (cfg *Config) applyLayoutDefaults(changed func(name string) bool) {
	step := cfg.Layout == layoutStep
	if !changed("probes") {
		cfg.Probes = !step || len(cfg.Mappings) > 0
	}
	if !changed("lane") {
		cfg.Lane = step
	}
}

// Validate checks numeric and path parameters.
func (cfg *Config) Validate() error {
	switch {
	case cfg.TemplatePath == "":
		return errors.Wrap(layout.ErrInvalidParameter, "a template is required")
	case cfg.OutDir == "":
		return errors.Wrap(layout.ErrInvalidParameter, "an output directory is required")
	case cfg.Hold < 0:
		return errors.Wrapf(layout.ErrInvalidParameter, "hold must be >= 0 (got %d)", cfg.Hold)
	case cfg.Value < 0 || cfg.Value > 255:
		return errors.Wrapf(layout.ErrInvalidParameter, "value must be 0..255 (got %d)", cfg.Value)
	case cfg.PadSteps < 0:
		return errors.Wrapf(layout.ErrInvalidParameter, "pad steps must be >= 0 (got %d)", cfg.PadSteps)
	case cfg.LaneHold <= 0:
		return errors.Wrapf(layout.ErrInvalidParameter, "lane hold must be > 0 (got %d)", cfg.LaneHold)
	case cfg.Ports < 0 || cfg.PerPort < 0:
		return errors.Wrapf(layout.ErrInvalidParameter, "port geometry must be >= 0 (got %d x %d)",
			cfg.Ports, cfg.PerPort)
	case cfg.Jobs <= 0:
		return errors.Wrapf(layout.ErrInvalidParameter, "jobs must be > 0 (got %d)", cfg.Jobs)
	}
	_, err := cfg.shape()
	return err
}

// shape resolves the layout preset and its overrides.
func (cfg *Config) shape() (layout.Shape, error) {
	var s layout.Shape
	switch cfg.Layout {
	case layoutFrame:
		s = layout.FrameShape
	case layoutStep:
		s = layout.StepShape
	default:
		return s, errors.Wrapf(layout.ErrInvalidParameter, "unknown layout %q", cfg.Layout)
	}

	if cfg.HeaderSize >= 0 {
		s.HeaderSize = cfg.HeaderSize
	}
	if cfg.RecordWidth > 0 {
		s.RecordWidth = cfg.RecordWidth
	}
	if cfg.RecordsPerUnit > 0 {
		s.RecordsPerUnit = cfg.RecordsPerUnit
	}
	if cfg.Components > 0 {
		s.ComponentCount = cfg.Components
	}
	return s, s.Validate()
}

// selection builds the variant Selection for the layout d.
func (cfg *Config) selection(d *layout.Descriptor) (variant.Selection, error) {
	sel := variant.Selection{
		Encodings:  cfg.Encodings,
		Cross:      cfg.Cross,
		SkipProbes: !cfg.Probes,
		HoldCount:  cfg.Hold,
		Patch:      cfg.Patch,
	}

	pb := cfg.portBlocked(d.RecordsPerUnit)
	var err error
	if sel.Mappings, err = cfg.Mappings.Strategies(pb.Ports, pb.RecordsPerPort); err != nil {
		return sel, err
	}
	if len(sel.Mappings) == 0 && (cfg.Ports > 0 || cfg.PerPort > 0) {
		sel.Mappings = []mapping.Strategy{mapping.Sequential{}, pb, mapping.Interleaved{}}
	}
	if sel.Orders, err = cfg.Orders.Orders(d.ComponentCount); err != nil {
		return sel, err
	}

	if cfg.Fill != "" {
		values, err := parseValues(cfg.Fill)
		if err != nil {
			return sel, err
		}
		sel.Fill = &variant.FillProbe{
			Values:   values,
			PadSteps: cfg.PadSteps,
		}
	}

	if cfg.Lane {
		sel.Lane = &variant.LaneProbe{
			Hold:     cfg.LaneHold,
			Value:    uint8(cfg.Value),
			PadSteps: cfg.PadSteps,
		}
	}
	return sel, nil
}

// portBlocked resolves the port-blocked geometry for units of recordsPerUnit
// records. Values the user did not supply are scaled from the default
// geometry.
func (cfg *Config) portBlocked(recordsPerUnit int) mapping.PortBlocked {
	pb := mapping.PortBlockedFor(recordsPerUnit)
	switch {
	case cfg.Ports > 0 && cfg.PerPort > 0:
		pb = mapping.PortBlocked{Ports: cfg.Ports, RecordsPerPort: cfg.PerPort}
	case cfg.Ports > 0:
		pb = mapping.PortBlocked{Ports: cfg.Ports, RecordsPerPort: recordsPerUnit / cfg.Ports}
	case cfg.PerPort > 0:
		pb = mapping.PortBlocked{Ports: recordsPerUnit / cfg.PerPort, RecordsPerPort: cfg.PerPort}
	}
	return pb
}

// parseValues parses a comma-separated tuple such as "255,0,0".
func parseValues(v string) (pixel.Values, error) {
	parts := strings.Split(v, ",")
	values := make(pixel.Values, len(parts))
	for i, part := range parts {
		c, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || c < 0 || c > 255 {
			return nil, errors.Wrapf(layout.ErrInvalidParameter, "value %q in %q must be 0..255", part, v)
		}
		values[i] = uint8(c)
	}
	return values, nil
}
