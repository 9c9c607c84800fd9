// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fwenv reads the U-Boot environment: a fixed-size flash or NVRAM
// block of NUL-separated name=value records guarded by a CRC32 header,
// optionally duplicated across two regions for power-loss safety.
package fwenv

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrMissingSecondary means a redundant configuration lacks the secondary
// region.
var ErrMissingSecondary = errors.New("redundant environment configured without a secondary region")

// Region describes one environment copy on a device.
type Region struct {
	// Device is the flash or block device holding the copy, e.g.
	// /dev/mmcblk1 or /dev/mtd2.
	Device string

	// Offset is the byte offset of the copy within the device.
	Offset uint64

	// Size is the byte length of the copy, header included.
	Size uint32
}

func (r Region) String() string {
	return fmt.Sprintf("%s@%#x+%#x", r.Device, r.Offset, r.Size)
}

// Config describes where the environment lives. It performs no I/O; it is
// produced either explicitly or by ParseConfig from an fw_env.config file.
type Config struct {
	Primary   Region
	Secondary *Region

	// Redundant selects the two-copy layout. The block header then
	// carries a one-byte freshness flag after the CRC.
	Redundant bool
}

// Layout returns the block layout the configuration implies.
func (c *Config) Layout() Layout {
	if c.Redundant {
		return LayoutRedundant
	}
	return LayoutSimple
}

// Validate checks the configuration invariants. All violations are
// reported at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	min := LayoutSimple.HeaderSize()
	if c.Redundant {
		min = LayoutRedundant.HeaderSize()
	}
	if c.Primary.Size <= min {
		result = multierror.Append(result, &ErrInvalidSize{
			Region: "primary",
			Size:   c.Primary.Size,
			Min:    min,
		})
	}
	if c.Redundant {
		if c.Secondary == nil {
			result = multierror.Append(result, ErrMissingSecondary)
		} else {
			if c.Secondary.Size <= min {
				result = multierror.Append(result, &ErrInvalidSize{
					Region: "secondary",
					Size:   c.Secondary.Size,
					Min:    min,
				})
			}
			if c.Secondary.Size != c.Primary.Size {
				result = multierror.Append(result, &ErrSizeMismatch{
					Primary:   c.Primary.Size,
					Secondary: c.Secondary.Size,
				})
			}
		}
	}

	return result.ErrorOrNil()
}
