// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pixel

import (
	"github.com/pkg/errors"
)

// Encode encodes values into a width-byte record.
//
// In Direct mode, byte i of the record holds values[order[i % n]], where n is
// the number of components. A record that is wider than n bytes is therefore
// the permuted tuple repeated until full; a narrower one holds its prefix.
//
// In ReplicatedMask mode, every byte of the record holds values.Max(), and
// order is ignored.
func Encode(values Values, order ChannelOrder, mode EncodingMode, width int) ([]byte, error) {
	rec := make([]byte, width)
	if err := EncodeInto(rec, values, order, mode); err != nil {
		return nil, err
	}
	return rec, nil
}

// EncodeInto is like Encode, but writes into rec, whose length is the record
// width.
func EncodeInto(rec []byte, values Values, order ChannelOrder, mode EncodingMode) error {
	if len(order) != len(values) {
		return errors.Wrapf(ErrInvalidChannelOrder, "order %s has %d channels, values %s have %d",
			order, len(order), values, len(values))
	}
	if err := order.Validate(); err != nil {
		return err
	}

	switch mode {
	case Direct:
		// Trailing bytes repeat the permuted tuple, not the logical one, so each
		// repetition in a wide record carries the order under test.
		n := len(order)
		for i := range rec {
			rec[i] = values[order[i%n]]
		}

	case ReplicatedMask:
		m := values.Max()
		for i := range rec {
			rec[i] = m
		}

	default:
		return errors.Errorf("unknown encoding mode: %s", mode)
	}
	return nil
}

// Decode recovers the Values stored in a Direct-encoded record.
//
// Only the first len(order) bytes of rec are consulted.
func Decode(rec []byte, order ChannelOrder) (Values, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if len(rec) < len(order) {
		return nil, errors.Errorf("record (%d bytes) is narrower than order %s", len(rec), order)
	}

	v := make(Values, len(order))
	for i, s := range order {
		v[s] = rec[i]
	}
	return v, nil
}
