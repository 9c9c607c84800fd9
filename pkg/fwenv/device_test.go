// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwenv

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// makeImage builds a fake device image with an environment block at the
// given offset.
func makeImage(imageSize int, offset uint64, layout Layout, flag byte, records ...string) []byte {
	image := bytes.Repeat([]byte{0xFF}, imageSize)
	data := makeData(testBlockSize, 0, records...)

	binary.LittleEndian.PutUint32(image[offset:], Checksum(data))
	pos := offset + 4
	if layout == LayoutRedundant {
		image[pos] = flag
		pos++
	}
	copy(image[pos:], data)
	return image
}

func TestReadRegion(t *testing.T) {
	const offset = 0x800
	reg := Region{Device: "mem", Offset: offset, Size: testBlockSize + 4}
	image := makeImage(0x2000, offset, LayoutSimple, 0, "bootcmd=run distro_bootcmd")

	block, err := ReadRegion(bytesextra.NewReadWriteSeeker(image), reg, LayoutSimple)
	require.NoError(t, err)
	require.Equal(t, int(reg.Size), block.Size())
	require.NoError(t, block.VerifyChecksum())

	env, err := Read(&Config{Primary: reg}, BlockSet{Primary: block})
	require.NoError(t, err)
	v, ok := env.FindVar([]byte("bootcmd"))
	require.True(t, ok)
	require.Equal(t, []byte("run distro_bootcmd"), v)
}

func TestReadRegionShort(t *testing.T) {
	reg := Region{Device: "mem", Offset: 0x100, Size: 0x1000}
	image := make([]byte, 0x200)

	_, err := ReadRegion(bytesextra.NewReadWriteSeeker(image), reg, LayoutSimple)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadBlocksSimple(t *testing.T) {
	dir := t.TempDir()
	device := filepath.Join(dir, "mtd1")
	image := makeImage(0x1000, 0x200, LayoutSimple, 0, "serial#=0042")
	require.NoError(t, os.WriteFile(device, image, 0o644))

	cfg := &Config{
		Primary: Region{Device: device, Offset: 0x200, Size: testBlockSize + 4},
	}
	blocks, err := ReadBlocks(cfg)
	require.NoError(t, err)
	require.Nil(t, blocks.Secondary)

	env, err := Read(cfg, blocks)
	require.NoError(t, err)
	v, ok := env.FindVar([]byte("serial#"))
	require.True(t, ok)
	require.Equal(t, []byte("0042"), v)
}

func TestReadBlocksRedundant(t *testing.T) {
	dir := t.TempDir()
	device := filepath.Join(dir, "mmcblk1")

	// Both copies on one device, like a real eMMC setup; the secondary
	// carries the higher flag and must win.
	image := makeImage(0x4000, 0x1000, LayoutRedundant, 1, "copy=old")
	newer := makeImage(0x2000, 0x0, LayoutRedundant, 2, "copy=new")
	copy(image[0x2000:], newer[:testBlockSize+5])
	require.NoError(t, os.WriteFile(device, image, 0o644))

	cfg := &Config{
		Primary:   Region{Device: device, Offset: 0x1000, Size: testBlockSize + 5},
		Secondary: &Region{Device: device, Offset: 0x2000, Size: testBlockSize + 5},
		Redundant: true,
	}
	blocks, err := ReadBlocks(cfg)
	require.NoError(t, err)
	require.NotNil(t, blocks.Secondary)

	env, err := Read(cfg, blocks)
	require.NoError(t, err)
	require.Equal(t, SourceSecondary, env.Source())
	v, _ := env.FindVar([]byte("copy"))
	require.Equal(t, []byte("new"), v)
}

func TestReadBlocksMissingDevice(t *testing.T) {
	cfg := &Config{
		Primary: Region{Device: filepath.Join(t.TempDir(), "absent"), Size: 0x1000},
	}
	_, err := ReadBlocks(cfg)
	require.True(t, os.IsNotExist(err))
}

func TestReadBlocksInvalidConfig(t *testing.T) {
	cfg := &Config{
		Primary:   Region{Device: "/dev/null", Size: 0x1000},
		Redundant: true,
	}
	_, err := ReadBlocks(cfg)
	require.ErrorIs(t, err, ErrMissingSecondary)
}
