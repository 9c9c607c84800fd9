// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwenv

import (
	"hash/crc32"
)

// Checksum computes the CRC32 the bootloader stores in the block header:
// polynomial 0xEDB88320, reflected, which is the IEEE table of
// hash/crc32.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// VerifyChecksum compares the stored header CRC against the CRC32 of the
// data area, trailing padding included. It returns nil on a match and an
// *ErrBadChecksum carrying both values otherwise.
//
// An all-NUL data area is a legal empty environment; it passes whenever
// the header holds the CRC32 of that many zero bytes.
func (b *Block) VerifyChecksum() error {
	expected := b.StoredCRC()
	actual := Checksum(b.Data())
	if actual != expected {
		return &ErrBadChecksum{Expected: expected, Actual: actual}
	}
	return nil
}
