// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package pixel encodes logical channel values into raw DAT records.
//
// A record's logical content is a Values tuple of 3 (RGB) or 4 (RGB plus a
// master/white channel) components. How those components land on the wire is
// the unknown being probed, so it is parameterized by a ChannelOrder (which
// logical channel occupies which byte) and an EncodingMode (direct bytes, or a
// single value replicated across the record).
package pixel
