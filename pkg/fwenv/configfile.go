// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwenv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultConfigPath is where Linux systems keep the environment layout
// description.
const DefaultConfigPath = "/etc/fw_env.config"

// ParseConfig reads an fw_env.config style description: one region per
// line as "device offset size", numbers in 0x-hex or decimal, '#'
// comments and blank lines skipped, trailing columns (sector size, sector
// count) ignored. One line describes a simple environment, two a
// redundant pair. The returned configuration is already validated.
func ParseConfig(r io.Reader) (*Config, error) {
	var regions []Region

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		reg, err := parseConfigLine(line)
		if err != nil {
			return nil, &ErrConfigLine{Line: lineno, Text: line, Err: err}
		}
		regions = append(regions, reg)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	switch len(regions) {
	case 1:
		cfg.Primary = regions[0]
	case 2:
		cfg.Primary = regions[0]
		cfg.Secondary = &regions[1]
		cfg.Redundant = true
	default:
		return nil, &ErrWrongLineCount{Lines: len(regions)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfigFile is ParseConfig over the named file.
func ParseConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseConfigLine(line string) (Region, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Region{}, fmt.Errorf("want \"device offset size\", got %d fields", len(fields))
	}

	offset, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return Region{}, fmt.Errorf("offset: %w", err)
	}
	size, err := strconv.ParseUint(fields[2], 0, 32)
	if err != nil {
		return Region{}, fmt.Errorf("size: %w", err)
	}

	return Region{
		Device: fields[0],
		Offset: offset,
		Size:   uint32(size),
	}, nil
}
