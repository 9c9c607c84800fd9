// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwenv

import (
	"bytes"
)

// Source identifies which region a parsed environment came from.
type Source int

const (
	// SourcePrimary is the first (or only) configured region.
	SourcePrimary Source = iota
	// SourceSecondary is the second region of a redundant pair.
	SourceSecondary
)

func (s Source) String() string {
	if s == SourceSecondary {
		return "secondary"
	}
	return "primary"
}

// Var is one environment variable. Name never contains NUL or '='; Value
// never contains NUL.
type Var struct {
	Name  []byte
	Value []byte
}

// Env is a parsed environment: the variables of the winning copy in
// their on-flash order, plus provenance. It is immutable after Read and
// safe for concurrent readers.
type Env struct {
	vars   []Var
	index  map[string]int
	source Source
}

// Read selects the authoritative copy out of the given raw blocks and
// parses it. The caller performs the storage reads; see ReadBlocks for a
// file-backed front end.
//
// With a redundant configuration both copies are checksum-verified: if
// both fail, Read fails with *ErrNoValidCopy; if one passes, it wins; if
// both pass, the freshness flags arbitrate. Without redundancy a failed
// checksum surfaces as *ErrBadChecksum.
//
// Read either returns a fully parsed environment or an error, never a
// partial result.
func Read(cfg *Config, blocks BlockSet) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkBlock(blocks.Primary, cfg.Primary, cfg.Layout()); err != nil {
		return nil, err
	}

	if !cfg.Redundant {
		if err := blocks.Primary.VerifyChecksum(); err != nil {
			return nil, err
		}
		return parse(blocks.Primary.Data(), SourcePrimary)
	}

	if err := checkBlock(blocks.Secondary, *cfg.Secondary, cfg.Layout()); err != nil {
		return nil, err
	}

	errPrimary := blocks.Primary.VerifyChecksum()
	errSecondary := blocks.Secondary.VerifyChecksum()

	var source Source
	switch {
	case errPrimary != nil && errSecondary != nil:
		return nil, &ErrNoValidCopy{Primary: errPrimary, Secondary: errSecondary}
	case errPrimary != nil:
		source = SourceSecondary
	case errSecondary != nil:
		source = SourcePrimary
	default:
		source = newerFlag(blocks.Primary.Flag(), blocks.Secondary.Flag())
	}

	block := blocks.Primary
	if source == SourceSecondary {
		block = blocks.Secondary
	}
	return parse(block.Data(), source)
}

func checkBlock(b *Block, reg Region, layout Layout) error {
	if b == nil {
		return &ErrBlockSize{Want: reg.Size, Got: 0}
	}
	if b.Size() != int(reg.Size) {
		return &ErrBlockSize{Want: reg.Size, Got: b.Size()}
	}
	if b.Layout() != layout {
		return &ErrLayoutMismatch{Want: layout, Got: b.Layout()}
	}
	return nil
}

// newerFlag is the redundant-copy freshness policy: the counter wraps at
// 0xFF, so a fresh 0 beats a stale 0xFF; otherwise the larger counter
// wins and a tie goes to the primary. Kept separate so the rule can be
// adjusted without touching selection or parsing.
func newerFlag(primary, secondary byte) Source {
	switch {
	case primary == 0xFF && secondary == 0:
		return SourceSecondary
	case secondary == 0xFF && primary == 0:
		return SourcePrimary
	case secondary > primary:
		return SourceSecondary
	default:
		return SourcePrimary
	}
}

// parse scans data left to right: NUL-terminated name=value records, an
// empty record ends the data, anything after it is padding. A record
// without '=' fails the whole parse. Duplicate names keep their first
// position but take the last value.
func parse(data []byte, source Source) (*Env, error) {
	env := &Env{
		index:  make(map[string]int),
		source: source,
	}

	for off := 0; off < len(data); {
		if data[off] == 0 {
			// Empty record: end of data.
			break
		}
		rec := data[off:]
		if end := bytes.IndexByte(rec, 0); end >= 0 {
			rec = rec[:end]
			off += end + 1
		} else {
			off = len(data)
		}

		eq := bytes.IndexByte(rec, '=')
		if eq < 0 {
			return nil, &ErrMalformedEntry{Record: append([]byte(nil), rec...)}
		}
		name := append([]byte(nil), rec[:eq]...)
		value := append([]byte(nil), rec[eq+1:]...)

		if i, ok := env.index[string(name)]; ok {
			env.vars[i].Value = value
			continue
		}
		env.index[string(name)] = len(env.vars)
		env.vars = append(env.vars, Var{Name: name, Value: value})
	}

	return env, nil
}

// Source reports which region the environment was read from.
func (e *Env) Source() Source {
	return e.source
}

// Len returns the number of variables.
func (e *Env) Len() int {
	return len(e.vars)
}

// FindVar looks up a variable by exact name. The second return is false
// when the name is absent; a present variable with an empty value
// returns an empty slice and true.
func (e *Env) FindVar(name []byte) ([]byte, bool) {
	i, ok := e.index[string(name)]
	if !ok {
		return nil, false
	}
	return e.vars[i].Value, true
}

// Each calls f for every variable in on-flash order. Every call starts
// over from the first variable; f must not retain the slices past the
// callback.
func (e *Env) Each(f func(name, value []byte)) {
	for _, v := range e.vars {
		f(v.Name, v.Value)
	}
}
