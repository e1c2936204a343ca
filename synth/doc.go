// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package synth builds probe files from a template and variant Specs.
//
// Every output file is exactly as long as its template and starts with the
// template's header bytes. Only the probed region differs: anything past the
// held units is copied from the template unmodified, so controller behavior
// that differs from the template's can be attributed to the probe alone.
//
// A Synthesizer shares its template read-only across any number of
// concurrent Synthesize calls. Each Output buffer is owned by its caller
// until released.
package synth
