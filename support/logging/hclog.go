// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package logging

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
)

// HCLog adapts an hclog.Logger to L.
//
// hclog takes a message plus key/value pairs; L's arguments are rendered into
// the message.
func HCLog(l hclog.Logger) L { return hcLogger{l} }

// New returns an hclog-backed L named name that writes to w at the named
// level. Unknown level names fall back to info.
func New(name string, w io.Writer, level string) L {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return HCLog(hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  lvl,
		Output: w,
	}))
}

type hcLogger struct {
	base hclog.Logger
}

func (l hcLogger) Error(args ...interface{}) { l.base.Error(fmt.Sprint(args...)) }
func (l hcLogger) Warn(args ...interface{})  { l.base.Warn(fmt.Sprint(args...)) }
func (l hcLogger) Info(args ...interface{})  { l.base.Info(fmt.Sprint(args...)) }
func (l hcLogger) Debug(args ...interface{}) { l.base.Debug(fmt.Sprint(args...)) }

func (l hcLogger) Errorf(f string, args ...interface{}) { l.base.Error(fmt.Sprintf(f, args...)) }
func (l hcLogger) Warnf(f string, args ...interface{})  { l.base.Warn(fmt.Sprintf(f, args...)) }
func (l hcLogger) Infof(f string, args ...interface{})  { l.base.Info(fmt.Sprintf(f, args...)) }
func (l hcLogger) Debugf(f string, args ...interface{}) { l.base.Debug(fmt.Sprintf(f, args...)) }
