// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package layout describes the shape of a DAT file.
//
// A DAT file is a fixed-size header followed by a payload of fixed-width
// records. Records are grouped into units: a unit is a single record for
// step-style files, and a full frame of pixel records for frame-style files.
//
//	[header: HeaderSize bytes][unit 0][unit 1]...[unit N-1]
//	unit = RecordsPerUnit * RecordWidth bytes
//
// A Descriptor is derived once per template and passed to everything that
// needs to know where records live. Nothing in this package keeps global
// layout state, so several layouts can be in use at the same time.
package layout
