// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package synth

import (
	"github.com/danjacques/datprobe/variant"
)

// Result is the outcome of synthesizing a single Spec.
type Result struct {
	// Spec is the Spec that was synthesized.
	Spec *variant.Spec
	// Output is the synthesized file. It is nil if Err is not nil.
	Output *Output
	// Err is the error encountered synthesizing Spec, if any.
	Err error
}

// Run synthesizes each of specs, calling fn with each Result in the order of
// specs.
//
// Up to jobs Specs are synthesized concurrently; values below 2 synthesize
// them one at a time. A failed Spec does not prevent the others from being
// synthesized. Each Result's Output is released after fn returns, so fn must
// not retain it.
func (s *Synthesizer) Run(specs []*variant.Spec, jobs int, fn func(*Result)) {
	deliver := func(r *Result) {
		defer func() {
			if r.Output != nil {
				r.Output.Release()
			}
		}()
		fn(r)
	}

	if jobs < 2 {
		for _, spec := range specs {
			deliver(s.result(spec))
		}
		return
	}

	// Each Spec's Result is delivered on its own channel, so results can be
	// consumed in order regardless of completion order. The semaphore bounds
	// the number of unreleased Outputs, not just the number of workers.
	pending := make([]chan *Result, len(specs))
	for i := range pending {
		pending[i] = make(chan *Result, 1)
	}
	sem := make(chan struct{}, jobs)

	go func() {
		for i, spec := range specs {
			sem <- struct{}{}
			go func(i int, spec *variant.Spec) {
				pending[i] <- s.result(spec)
			}(i, spec)
		}
	}()

	for i := range specs {
		deliver(<-pending[i])
		<-sem
	}
}

func (s *Synthesizer) result(spec *variant.Spec) *Result {
	o, err := s.Synthesize(spec)
	return &Result{
		Spec:   spec,
		Output: o,
		Err:    err,
	}
}
