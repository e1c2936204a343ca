// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package byteslicereader offers R, a Reader over a byte slice that tracks
// its position.
package byteslicereader

import (
	"io"
)

// R reads from a byte slice.
//
// R can act like an io.Reader and io.ByteReader, allowing it to be handed to
// decoders that expect one. R can be copied, creating a snapshot of its
// current position.
type R struct {
	// Buffer is the backing buffer for this reader.
	Buffer []byte

	// pos is the R's position within Buffer.
	pos int
}

var _ interface {
	io.Reader
	io.ByteReader
} = (*R)(nil)

func (r *R) remainingSlice() []byte {
	if r.pos >= len(r.Buffer) {
		return nil
	}
	return r.Buffer[r.pos:]
}

// Offset returns the reader's current position within Buffer.
func (r *R) Offset() int { return r.pos }

// Read implements io.Reader.
//
// Read copies data into b.
func (r *R) Read(b []byte) (amt int, err error) {
	amt = copy(b, r.remainingSlice())

	r.pos += amt
	if r.pos >= len(r.Buffer) {
		err = io.EOF
	}
	return
}

// ReadByte implements io.ByteReader.
func (r *R) ReadByte() (b byte, err error) {
	if r.pos >= len(r.Buffer) {
		return 0, io.EOF
	}

	b, r.pos = r.Buffer[r.pos], r.pos+1
	return
}
