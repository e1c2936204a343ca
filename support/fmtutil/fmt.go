// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package fmtutil contains formatting helpers.
package fmtutil

import (
	"bytes"
	"fmt"
)

// HexBytes is a byte slice that renders as space-separated hex bytes, the way
// records are usually written down when probing a format.
//
// Output as: "FF 00 00 FF"
//
// It can be used for lazy rendering in log calls.
type HexBytes []byte

func (hb HexBytes) String() string {
	var sb bytes.Buffer
	sb.Grow(3 * len(hb))
	for i, b := range hb {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
