// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package datprobe defines the logic for the "datprobe" tool.
//
// datprobe reads a known-good DAT template and writes a set of probe
// variants, each placing a distinctive colour pattern under a different
// mapping, channel order and encoding. Loading each variant onto the
// controller and observing the fixtures identifies the conventions the
// controller expects.
package datprobe

import (
	"fmt"
	"io"
	"os"

	"github.com/danjacques/datprobe/layout"
	"github.com/danjacques/datprobe/support/dataio"
	"github.com/danjacques/datprobe/support/logging"
	"github.com/danjacques/datprobe/support/stagingdir"
	"github.com/danjacques/datprobe/synth"
	"github.com/danjacques/datprobe/variant"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// ErrVariantsFailed is returned when at least one variant could not be
// synthesized or written.
var ErrVariantsFailed = errors.New("variants failed")

// Main is the main entry point.
func Main() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCommand returns the root "datprobe" command.
func NewCommand() *cobra.Command {
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:   "datprobe",
		Short: "Generate probe variants of a DAT template",
		Long: `Generate probe variants of a known-good DAT template.

Each variant writes a distinctive pattern into the template's payload under a
different mapping, channel order and encoding. Load the variants onto the
controller one at a time and note which produces the expected colours.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.applyLayoutDefaults(cmd.Flags().Changed)
			logger := logging.New("datprobe", cmd.ErrOrStderr(), cfg.LogLevel)
			return run(&cfg, cmd.OutOrStdout(), logger)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.TemplatePath, "template", "t", cfg.TemplatePath, "Path to the known-good template file (required).")
	fs.StringVarP(&cfg.OutDir, "outdir", "o", cfg.OutDir, "Directory to write variants into (required).")
	fs.StringVar(&cfg.Layout, "layout", cfg.Layout, "Layout preset, one of [frame, step].")
	fs.IntVar(&cfg.HeaderSize, "header-size", cfg.HeaderSize, "Override the preset's header size in bytes.")
	fs.IntVar(&cfg.RecordWidth, "record-width", cfg.RecordWidth, "Override the preset's record width in bytes.")
	fs.IntVar(&cfg.RecordsPerUnit, "records-per-unit", cfg.RecordsPerUnit, "Override the preset's records per unit.")
	fs.IntVar(&cfg.Components, "components", cfg.Components, "Override the preset's component count (3 or 4).")
	fs.IntVar(&cfg.Hold, "hold", cfg.Hold, "Number of leading units carrying each probe pattern.")
	fs.IntVar(&cfg.Value, "value", cfg.Value, "Active byte value for the lane rotation probe.")
	fs.IntVar(&cfg.PadSteps, "pad-steps", cfg.PadSteps, "Trailing zero records for the fill and lane rotation probes.")
	fs.IntVar(&cfg.LaneHold, "lane-hold", cfg.LaneHold, "Records each lane stays lit in the lane rotation probe.")
	fs.StringVar(&cfg.Fill, "fill", cfg.Fill, "If set, comma-separated values for a uniform fill probe (e.g. 255,0,0).")
	fs.BoolVar(&cfg.Probes, "probes", cfg.Probes, "Generate the mapping/order/encoding probes (default true for frame layout).")
	fs.BoolVar(&cfg.Lane, "lane", cfg.Lane, "Generate the lane rotation probe (default true for step layout).")
	fs.BoolVar(&cfg.Patch, "patch", cfg.Patch, "Generate in-place patch probes that keep the template payload.")
	fs.BoolVar(&cfg.Cross, "cross", cfg.Cross, "Probe every catalog order under every mapping.")
	fs.Var(&cfg.Mappings, "mappings", "Mapping strategies to probe, one of [seq, pb, il]. Can be repeated.")
	fs.Var(&cfg.Orders, "orders", "Channel orders to probe (e.g. BGRM). Can be repeated.")
	fs.Var(&cfg.Encodings, "encodings", "Encoding modes to probe, one of [direct, replicated]. Can be repeated.")
	fs.IntVar(&cfg.Ports, "ports", cfg.Ports, "Port count for the port-blocked mapping (0 derives it from the unit size).")
	fs.IntVar(&cfg.PerPort, "per-port", cfg.PerPort, "Records per port for the port-blocked mapping (0 derives it from the unit size).")
	fs.IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "Number of variants to synthesize concurrently.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error).")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "If set, write run metrics to this file in Prometheus text format.")

	if err := cmd.MarkFlagRequired("template"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("outdir"); err != nil {
		panic(err)
	}
	return cmd
}

// run generates every variant described by cfg. Parameter and template
// errors are returned before anything is written.
func run(cfg *Config, out io.Writer, logger logging.L) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	template, err := dataio.ReadFile(cfg.TemplatePath)
	if err != nil {
		return errors.Wrapf(err, "reading template %q", cfg.TemplatePath)
	}

	shape, err := cfg.shape()
	if err != nil {
		return err
	}
	d, err := shape.Derive(len(template))
	if err != nil {
		return errors.Wrapf(err, "template %q", cfg.TemplatePath)
	}
	logger.Infof("Template %q: %s", cfg.TemplatePath, d)

	switch h, err := layout.ReadHeader(template); {
	case err != nil:
		logger.Warnf("Could not read the header of template %q; generating anyway: %s", cfg.TemplatePath, err)
	case !h.HasSignature():
		logger.Warnf("Template %q has no %q signature; generating anyway.", cfg.TemplatePath, layout.Signature)
	}

	sel, err := cfg.selection(d)
	if err != nil {
		return err
	}
	specs, err := variant.Enumerate(d, sel)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return errors.Wrap(layout.ErrInvalidParameter, "no variants selected")
	}

	s, err := synth.New(template, d, logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return errors.Wrapf(err, "creating output directory %q", cfg.OutDir)
	}
	sd, err := stagingdir.New(cfg.OutDir, ".datprobe")
	if err != nil {
		return err
	}
	defer func() {
		if err := sd.Destroy(); err != nil {
			logger.Warnf("Failed to remove staging directory: %s", err)
		}
	}()

	var written, failed int
	s.Run(specs, cfg.Jobs, func(r *synth.Result) {
		if err := commit(sd, cfg.OutDir, r, out); err != nil {
			fmt.Fprintf(out, "ERROR %s: %s\n", r.Spec.Name, err)
			failed++
			return
		}
		written++
	})
	logger.Infof("Wrote %d of %d variants to %q.", written, len(specs), cfg.OutDir)

	if cfg.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		synth.RegisterMonitoring(reg)
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			logger.Warnf("Failed to write metrics to %q: %s", cfg.MetricsFile, err)
		}
	}

	if failed > 0 {
		return errors.Wrapf(ErrVariantsFailed, "%d of %d", failed, len(specs))
	}
	return nil
}

// commit writes a successful Result into destDir and prints its summary.
func commit(sd *stagingdir.D, destDir string, r *synth.Result, out io.Writer) error {
	if r.Err != nil {
		return r.Err
	}

	name := r.Spec.FileName()
	if err := sd.WriteFile(name, r.Output.Bytes()); err != nil {
		return err
	}
	path, err := sd.Commit(name, destDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\t%s\t%d bytes\n", path, r.Spec.Describe(), len(r.Output.Bytes()))
	if !r.Output.Degraded() {
		return nil
	}
	for _, sk := range r.Output.Skipped {
		fmt.Fprintf(out, "WARN %s: skipped %s at ordinal %d: %s\n", r.Spec.Name, sk.Target.Label, sk.Ordinal, sk.Err)
	}
	return nil
}
