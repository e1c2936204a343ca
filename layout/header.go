// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package layout

import (
	"bytes"

	"github.com/danjacques/datprobe/support/byteslicereader"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// Signature is the two-byte marker found at offset 2 of known-good headers.
//
// It is advisory: a template without it is still usable.
var Signature = []byte("HC")

// headerPrefixSize is the number of bytes that Header decodes.
const headerPrefixSize = 4

// Header is the decoded prefix of a DAT header. The rest of the header is
// opaque and is always copied verbatim.
type Header struct {
	// Lead is the unidentified value preceding the signature.
	Lead uint16 `struc:"uint16,little"`
	// Signature holds header bytes 2..3.
	Signature []byte `struc:"[2]byte"`
}

// HasSignature returns true if the header carries the expected signature.
func (h *Header) HasSignature() bool { return bytes.Equal(h.Signature, Signature) }

// ReadHeader decodes the header prefix of template.
//
// The template is not copied.
func ReadHeader(template []byte) (*Header, error) {
	if len(template) < headerPrefixSize {
		return nil, errors.Wrapf(ErrMalformedTemplate,
			"template (%d bytes) is too small to hold a header", len(template))
	}

	var h Header
	r := byteslicereader.R{Buffer: template}
	if err := struc.Unpack(&r, &h); err != nil {
		return nil, errors.Wrap(err, "decoding header")
	}
	if r.Offset() != headerPrefixSize {
		return nil, errors.Errorf("decoded %d header bytes, expected %d", r.Offset(), headerPrefixSize)
	}
	return &h, nil
}
