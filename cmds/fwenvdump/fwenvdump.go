// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fwenvdump command dumps the U-Boot environment as JSON, including
// which redundant copy was selected.
//
// Synopsis:
//     fwenvdump [-c CONFIG] [-o FILE]
package main

import (
	"encoding/json"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/fwenv/pkg/fwenv"
	"github.com/linuxboot/fwenv/pkg/log"
)

type options struct {
	Config string `short:"c" long:"config" default:"/etc/fw_env.config" description:"environment layout description"`
	Output string `short:"o" long:"output" default:"-" description:"output file, '-' for stdout"`
}

type regionDump struct {
	Device string `json:"device"`
	Offset uint64 `json:"offset"`
	Size   uint32 `json:"size"`
}

type varDump struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type envDump struct {
	Redundant bool         `json:"redundant"`
	Source    string       `json:"source"`
	Regions   []regionDump `json:"regions"`
	Variables []varDump    `json:"variables"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	cfg, err := fwenv.ParseConfigFile(opts.Config)
	if err != nil {
		log.Fatalf("%v", err)
	}
	blocks, err := fwenv.ReadBlocks(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	env, err := fwenv.Read(cfg, blocks)
	if err != nil {
		log.Fatalf("%v", err)
	}

	dump := envDump{
		Redundant: cfg.Redundant,
		Source:    env.Source().String(),
		Regions: []regionDump{
			{Device: cfg.Primary.Device, Offset: cfg.Primary.Offset, Size: cfg.Primary.Size},
		},
		Variables: []varDump{},
	}
	if cfg.Secondary != nil {
		dump.Regions = append(dump.Regions, regionDump{
			Device: cfg.Secondary.Device,
			Offset: cfg.Secondary.Offset,
			Size:   cfg.Secondary.Size,
		})
	}
	env.Each(func(name, value []byte) {
		dump.Variables = append(dump.Variables, varDump{Name: string(name), Value: string(value)})
	})

	out, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		log.Fatalf("%v", err)
	}
	out = append(out, '\n')

	if opts.Output == "-" {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}
	if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
		log.Fatalf("%v", err)
	}
}
