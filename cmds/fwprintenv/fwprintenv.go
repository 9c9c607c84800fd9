// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fwprintenv command prints variables from the U-Boot environment.
//
// Synopsis:
//     fwprintenv [flags] [variable...]
//
// Examples:
//     # Print the whole environment:
//     fwprintenv
//
//     # Print selected variables:
//     fwprintenv bootcmd bootargs
//
//     # Print just the value, for scripting:
//     fwprintenv -n serial#
//
//     # Show where the environment came from:
//     fwprintenv --info
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	flag "github.com/spf13/pflag"

	"github.com/linuxboot/fwenv/pkg/fwenv"
	"github.com/linuxboot/fwenv/pkg/log"
)

var (
	configPath = flag.StringP("config", "c", fwenv.DefaultConfigPath, "environment layout description")
	valueOnly  = flag.BoolP("noheader", "n", false, "print only the value of a single variable")
	asTable    = flag.Bool("table", false, "render the variables as a table")
	showInfo   = flag.Bool("info", false, "print the environment provenance instead of variables")
)

func main() {
	flag.Parse()

	cfg, err := fwenv.ParseConfigFile(*configPath)
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

	names := flag.Args()

	switch {
	case *showInfo:
		printInfo(cfg, env)
	case *valueOnly:
		if len(names) != 1 {
			log.Fatalf("-n needs exactly one variable name")
		}
		value, ok := env.FindVar([]byte(names[0]))
		if !ok {
			log.Fatalf("variable %q is not defined", names[0])
		}
		fmt.Printf("%s\n", value)
	case *asTable:
		printTable(env, names)
	default:
		printPlain(env, names)
	}
}

// selectVars resolves the requested names, or yields everything in
// on-flash order when none were given.
func selectVars(env *fwenv.Env, names []string, f func(name, value []byte)) {
	if len(names) == 0 {
		env.Each(f)
		return
	}
	for _, name := range names {
		value, ok := env.FindVar([]byte(name))
		if !ok {
			log.Fatalf("variable %q is not defined", name)
		}
		f([]byte(name), value)
	}
}

func printPlain(env *fwenv.Env, names []string) {
	selectVars(env, names, func(name, value []byte) {
		fmt.Printf("%s=%s\n", name, value)
	})
}

func printTable(env *fwenv.Env, names []string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Variable", "Value"})
	selectVars(env, names, func(name, value []byte) {
		t.AppendRow(table.Row{string(name), string(value)})
	})
	t.Render()
}

func printInfo(cfg *fwenv.Config, env *fwenv.Env) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Copy", "Device", "Offset", "Size", "Active"})
	t.AppendRow(infoRow("primary", cfg.Primary, env.Source() == fwenv.SourcePrimary))
	if cfg.Secondary != nil {
		t.AppendRow(infoRow("secondary", *cfg.Secondary, env.Source() == fwenv.SourceSecondary))
	}
	t.Render()
	fmt.Printf("%d variables, %s layout\n", env.Len(), cfg.Layout())
}

func infoRow(copyName string, reg fwenv.Region, active bool) table.Row {
	mark := ""
	if active {
		mark = "*"
	}
	return table.Row{
		copyName,
		reg.Device,
		fmt.Sprintf("%#x", reg.Offset),
		humanize.IBytes(uint64(reg.Size)),
		mark,
	}
}
