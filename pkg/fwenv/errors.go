// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwenv

import (
	"fmt"
)

// ErrInvalidSize means a region is too small to hold the environment
// header.
type ErrInvalidSize struct {
	Region string
	Size   uint32
	Min    uint32
}

func (err *ErrInvalidSize) Error() string {
	return fmt.Sprintf("region %s: size %#x does not fit the environment header (need > %#x)",
		err.Region, err.Size, err.Min)
}

// ErrSizeMismatch means the two redundant regions have different sizes.
type ErrSizeMismatch struct {
	Primary   uint32
	Secondary uint32
}

func (err *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("redundant regions differ in size: %#x != %#x",
		err.Primary, err.Secondary)
}

// ErrBadChecksum means the stored CRC32 does not match the CRC32 computed
// over the payload.
type ErrBadChecksum struct {
	Expected uint32
	Actual   uint32
}

func (err *ErrBadChecksum) Error() string {
	return fmt.Sprintf("environment CRC mismatch: stored %#08x, computed %#08x",
		err.Expected, err.Actual)
}

// ErrNoValidCopy means both redundant copies failed checksum
// verification.
type ErrNoValidCopy struct {
	Primary   error
	Secondary error
}

func (err *ErrNoValidCopy) Error() string {
	return fmt.Sprintf("no valid environment copy: primary: %v; secondary: %v",
		err.Primary, err.Secondary)
}

// ErrMalformedEntry means a non-empty environment record contains no '='
// separator.
type ErrMalformedEntry struct {
	Record []byte
}

func (err *ErrMalformedEntry) Error() string {
	return fmt.Sprintf("cannot parse %q as a name=value record", err.Record)
}

// ErrWrongLineCount means the configuration file does not describe
// exactly one or two environment regions.
type ErrWrongLineCount struct {
	Lines int
}

func (err *ErrWrongLineCount) Error() string {
	return fmt.Sprintf("config must describe 1 or 2 regions, got %d", err.Lines)
}

// ErrConfigLine means a configuration file line could not be parsed.
type ErrConfigLine struct {
	Line int
	Text string
	Err  error
}

func (err *ErrConfigLine) Error() string {
	return fmt.Sprintf("config line %d: cannot parse %q: %v", err.Line, err.Text, err.Err)
}

func (err *ErrConfigLine) Unwrap() error {
	return err.Err
}

// ErrLayoutMismatch means a block was built with a different header
// layout than the configuration implies.
type ErrLayoutMismatch struct {
	Want Layout
	Got  Layout
}

func (err *ErrLayoutMismatch) Error() string {
	return fmt.Sprintf("block uses the %s layout, config implies %s", err.Got, err.Want)
}

// ErrBlockSize means a raw block's length does not match the region size
// it was read for.
type ErrBlockSize struct {
	Want uint32
	Got  int
}

func (err *ErrBlockSize) Error() string {
	return fmt.Sprintf("block length %#x does not match region size %#x",
		err.Got, err.Want)
}
