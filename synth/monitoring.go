// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package synth

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	synthVariants = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datprobe_synth_variants",
		Help: "Count of variants synthesized, by kind.",
	}, []string{"kind"})

	synthErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datprobe_synth_errors",
		Help: "Count of variants that failed to synthesize, by type.",
	}, []string{"type"})

	synthSkippedTargets = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "datprobe_synth_skipped_targets",
		Help: "Count of probe targets skipped because they could not be placed.",
	})

	synthBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "datprobe_synth_bytes",
		Help: "Count of bytes synthesized.",
	})
)

// RegisterMonitoring registers all of this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(
		synthVariants,
		synthErrors,
		synthSkippedTargets,
		synthBytes,
	)
}
