// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pixel

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// ChannelOrderListFlag is a pflag.Value that collects a comma-separated list
// of channel orders.
//
// Orders can only be validated once the component count is known, so the raw
// strings are held until Orders is called.
type ChannelOrderListFlag []string

var _ pflag.Value = (*ChannelOrderListFlag)(nil)

func (f *ChannelOrderListFlag) String() string { return strings.Join(*f, ",") }

// Set implements pflag.Value.
func (f *ChannelOrderListFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*f = append(*f, strings.ToUpper(part))
		}
	}
	return nil
}

// Type implements pflag.Value.
func (f *ChannelOrderListFlag) Type() string { return "orders" }

// Orders parses the collected orders for componentCount components.
func (f ChannelOrderListFlag) Orders(componentCount int) ([]ChannelOrder, error) {
	if len(f) == 0 {
		return nil, nil
	}

	orders := make([]ChannelOrder, len(f))
	for i, v := range f {
		o, err := ParseChannelOrder(v, componentCount)
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}
	return orders, nil
}

// EncodingModeListFlag is a pflag.Value that collects a comma-separated list
// of encoding modes.
type EncodingModeListFlag []EncodingMode

var _ pflag.Value = (*EncodingModeListFlag)(nil)

func (f *EncodingModeListFlag) String() string {
	parts := make([]string, len(*f))
	for i, m := range *f {
		parts[i] = m.String()
	}
	return strings.Join(parts, ",")
}

// Set implements pflag.Value.
func (f *EncodingModeListFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		m, err := ParseEncodingMode(part)
		if err != nil {
			return errors.Wrap(err, "parsing encoding flag")
		}
		*f = append(*f, m)
	}
	return nil
}

// Type implements pflag.Value.
func (f *EncodingModeListFlag) Type() string { return "encodings" }
