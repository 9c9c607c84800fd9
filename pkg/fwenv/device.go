// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwenv

import (
	"fmt"
	"io"
	"os"
)

// ReadRegion reads one environment copy out of r. The reader is usually
// a flash or block device node, but anything seekable works.
func ReadRegion(r io.ReadSeeker, reg Region, layout Layout) (*Block, error) {
	if _, err := r.Seek(int64(reg.Offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to %#x: %w", reg.Offset, err)
	}
	buf := make([]byte, reg.Size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read %#x bytes at %#x: %w", reg.Size, reg.Offset, err)
	}
	return NewBlock(buf, layout)
}

// ReadBlocks opens the devices named by the configuration and reads the
// raw copy (or copies) for Read. It is the only part of this package
// touching the filesystem.
func ReadBlocks(cfg *Config) (BlockSet, error) {
	if err := cfg.Validate(); err != nil {
		return BlockSet{}, err
	}

	var blocks BlockSet

	primary, err := readDeviceRegion(cfg.Primary, cfg.Layout())
	if err != nil {
		return BlockSet{}, err
	}
	blocks.Primary = primary

	if cfg.Redundant {
		secondary, err := readDeviceRegion(*cfg.Secondary, cfg.Layout())
		if err != nil {
			return BlockSet{}, err
		}
		blocks.Secondary = secondary
	}

	return blocks, nil
}

func readDeviceRegion(reg Region, layout Layout) (*Block, error) {
	f, err := os.Open(reg.Device)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	block, err := ReadRegion(f, reg, layout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", reg.Device, err)
	}
	return block, nil
}
