// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package variant enumerates the probe files to generate from a template.
//
// Each Spec fully determines one output file. Enumerate expands a Selection of
// mapping strategies, channel orders, and encoding modes into an ordered list
// of Specs, plus the single-purpose fill, lane rotation, and patch probes.
//
// Enumeration order is part of the contract: operators try files one at a
// time in the order they were generated, so the same inputs must always
// produce the same Specs with the same names.
package variant
