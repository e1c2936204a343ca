// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package bufferpool offers fixed-size byte buffers that can be reused once
// their owner releases them.
package bufferpool

import (
	"sync"
)

// Pool maintains a pool of buffers of a single size. It allocates a new buffer
// when none is available.
//
// Pool is safe for concurrent use.
type Pool struct {
	// Size is the size of the buffers in this pool.
	//
	// Size must not change once the Pool has been used.
	Size int

	base sync.Pool
}

// Get returns a buffer of Size bytes owned by the caller.
//
// The contents of a reused buffer are not cleared; the caller is expected to
// overwrite all of it. The caller should return the buffer to the pool by
// calling its Release method when done with it.
func (bp *Pool) Get() *Buffer {
	b, ok := bp.base.Get().(*Buffer)
	if !ok || len(b.bytes) != bp.Size {
		b = &Buffer{
			bytes: make([]byte, bp.Size),
		}
	}

	b.pool = bp
	return b
}

// Buffer contains a byte buffer that can be released into a Pool for reuse.
//
// A Buffer has a single owner. Failure to release Buffer will not cause a
// memory leak, but will prevent the reuse of the Buffer.
type Buffer struct {
	bytes []byte
	pool  *Pool
}

// Bytes returns this buffer's byte slice.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Release returns the buffer to its Pool. The buffer's bytes must not be used
// afterwards. Releasing a Buffer more than once has no further effect.
func (b *Buffer) Release() {
	var pool *Pool
	pool, b.pool = b.pool, nil
	if pool != nil {
		pool.base.Put(b)
	}
}
