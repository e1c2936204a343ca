// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package mapping

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// StrategyListFlag is a pflag.Value that collects a comma-separated list of
// mapping strategy tags ("seq", "pb", "il").
type StrategyListFlag []string

var _ pflag.Value = (*StrategyListFlag)(nil)

func (f *StrategyListFlag) String() string { return strings.Join(*f, ",") }

// Set implements pflag.Value.
func (f *StrategyListFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part == "" {
			continue
		}
		// Check the tag now so typos are reported against the flag.
		if _, err := Parse(part, 0, 0); err != nil {
			return errors.Wrap(err, "parsing mapping flag")
		}
		*f = append(*f, part)
	}
	return nil
}

// Type implements pflag.Value.
func (f *StrategyListFlag) Type() string { return "mappings" }

// Strategies resolves the collected tags, using ports and recordsPerPort for
// PortBlocked.
func (f StrategyListFlag) Strategies(ports, recordsPerPort int) ([]Strategy, error) {
	if len(f) == 0 {
		return nil, nil
	}

	out := make([]Strategy, len(f))
	for i, tag := range f {
		s, err := Parse(tag, ports, recordsPerPort)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
