// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package dataio contains I/O helpers.
package dataio

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ReadFull reads from r until buf is full, or until an error is encountered.
//
// This accommodates the fact that io.Reader is allowed to return less than the
// full buffer size without erroring.
func ReadFull(r io.Reader, buf []byte) error {
	for remaining := buf; len(remaining) > 0; {
		amt, err := r.Read(remaining)
		remaining = remaining[amt:]
		if err != nil {
			if err == io.EOF && len(remaining) == 0 {
				// Finished read and returned EOF.
				return nil
			}
			return err
		}
	}
	return nil
}

// ReadFile reads the whole of the regular file at path.
//
// The file's size is taken from its stat, and a file that changes size while
// it is being read is an error.
func ReadFile(path string) ([]byte, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = fd.Close()
	}()

	st, err := fd.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %q", path)
	}
	if !st.Mode().IsRegular() {
		return nil, errors.Errorf("%q is not a regular file", path)
	}

	buf := make([]byte, st.Size())
	if err := ReadFull(fd, buf); err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}

	// Confirm that we've hit the end of the file.
	var extra [1]byte
	if amt, _ := fd.Read(extra[:]); amt != 0 {
		return nil, errors.Errorf("%q grew while being read", path)
	}
	return buf, nil
}
