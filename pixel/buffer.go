// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pixel

import (
	"github.com/pkg/errors"
)

// ErrTargetWriteOutOfBounds is returned when a record does not fit within a
// Buffer.
var ErrTargetWriteOutOfBounds = errors.New("target write out of bounds")

// Buffer is a series of consecutive fixed-width records, such as a single
// frame.
type Buffer struct {
	// Width is the width of a single record, in bytes.
	//
	// Adjusting this value will invalidate the current buffered data. The user
	// must call Reset afterwards.
	Width int

	buf []byte
}

// Len returns the number of whole records in pb.
func (pb *Buffer) Len() int {
	if pb.Width <= 0 {
		return 0
	}
	return len(pb.buf) / pb.Width
}

// Reset clears the buffer and allocates room for count records.
//
// If the underlying buffer is already large enough, it will be reused and
// zeroed; otherwise, a new buffer will be allocated.
func (pb *Buffer) Reset(count int) {
	bytesNeeded := count * pb.Width
	if cap(pb.buf) < bytesNeeded {
		pb.buf = make([]byte, bytesNeeded)
		return
	}

	pb.buf = pb.buf[:bytesNeeded]
	for i := range pb.buf {
		pb.buf[i] = 0
	}
}

// UseBytes loads buf directly into this Buffer, without copying.
//
// buf is retained and written to by pb, and should not be used elsewhere while
// pb is active.
func (pb *Buffer) UseBytes(buf []byte) { pb.buf = buf }

// Bytes returns the raw bytes for this buffer.
func (pb *Buffer) Bytes() []byte { return pb.buf }

// Record returns the bytes of record i, sharing pb's storage.
//
// If i is out of bounds, Record will return nil.
func (pb *Buffer) Record(i int) []byte {
	if i < 0 || i >= pb.Len() {
		return nil
	}
	offset := i * pb.Width
	return pb.buf[offset : offset+pb.Width]
}

// SetRecord copies rec into record slot i.
//
// If rec does not fit entirely within the buffer at i, nothing is written and
// ErrTargetWriteOutOfBounds is returned.
func (pb *Buffer) SetRecord(i int, rec []byte) error {
	// Comparing against Len keeps i*Width from overflowing.
	if i < 0 || i >= pb.Len() || len(rec) > pb.Width {
		return errors.Wrapf(ErrTargetWriteOutOfBounds, "record %d (width %d) in %d-byte buffer",
			i, pb.Width, len(pb.buf))
	}
	copy(pb.Record(i), rec)
	return nil
}

// Fill sets every record in pb to rec.
func (pb *Buffer) Fill(rec []byte) {
	for i := 0; i < pb.Len(); i++ {
		copy(pb.buf[i*pb.Width:(i+1)*pb.Width], rec)
	}
}
