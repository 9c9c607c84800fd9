// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwenv

import (
	"encoding/binary"

	"github.com/linuxboot/fwenv/pkg/bytes"
)

// Layout selects the on-flash header format of an environment block.
type Layout int

const (
	// LayoutSimple is a single-copy block: 4 bytes little-endian CRC32,
	// then the variable data.
	LayoutSimple Layout = iota

	// LayoutRedundant is one of a redundant pair: 4 bytes little-endian
	// CRC32, one flag/counter byte for freshness arbitration, then the
	// variable data. The flag byte is not covered by the CRC.
	LayoutRedundant
)

// HeaderSize returns the number of bytes preceding the variable data.
func (l Layout) HeaderSize() uint32 {
	if l == LayoutRedundant {
		return 5
	}
	return 4
}

func (l Layout) String() string {
	if l == LayoutRedundant {
		return "redundant"
	}
	return "simple"
}

// Block is one raw environment copy as read from storage. It is a view
// over caller-provided bytes; nothing in this package mutates them.
type Block struct {
	raw    []byte
	layout Layout
	skip   bytes.Ranges
}

// NewBlock wraps a raw environment region. The buffer must be large
// enough to hold at least the header of the given layout.
func NewBlock(raw []byte, layout Layout) (*Block, error) {
	if uint32(len(raw)) <= layout.HeaderSize() {
		return nil, &ErrInvalidSize{
			Region: "block",
			Size:   uint32(len(raw)),
			Min:    layout.HeaderSize(),
		}
	}
	return &Block{raw: raw, layout: layout}, nil
}

// Layout returns the block's header format.
func (b *Block) Layout() Layout {
	return b.layout
}

// Size returns the full block length, header included.
func (b *Block) Size() int {
	return len(b.raw)
}

// StoredCRC returns the checksum recorded in the block header.
func (b *Block) StoredCRC() uint32 {
	return binary.LittleEndian.Uint32(b.raw[:4])
}

// Flag returns the freshness counter of a redundant block. A simple
// block has no flag byte and reports 0.
func (b *Block) Flag() byte {
	if b.layout != LayoutRedundant {
		return 0
	}
	return b.raw[4]
}

// Data returns the variable data: everything after the header, with any
// configured skip ranges removed. The checksum is computed over exactly
// these bytes.
func (b *Block) Data() []byte {
	return b.skip.Drop(b.raw[b.layout.HeaderSize():])
}

// WithSkipRanges returns a block whose data view excludes the given
// ranges. Offsets are relative to the start of the data area, not the
// block. The raw bytes are shared with the receiver.
//
// This is the hook for a future bad-block scanner; nothing in this
// package discovers bad ranges on its own.
func (b *Block) WithSkipRanges(rs bytes.Ranges) *Block {
	skip := make(bytes.Ranges, len(rs))
	copy(skip, rs)
	return &Block{raw: b.raw, layout: b.layout, skip: skip}
}

// BlockSet carries the raw copies handed to Read: just the primary for a
// simple configuration, both copies for a redundant one.
type BlockSet struct {
	Primary   *Block
	Secondary *Block
}
