// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytes provides byte-range helpers used to mask out regions of a
// raw flash block, e.g. stretches that a future bad-block scanner reports
// as unusable.
package bytes

import (
	"fmt"
	"sort"
	"strings"
)

// Range is a contiguous stretch of bytes within a buffer.
type Range struct {
	Offset uint64
	Length uint64
}

func (r Range) String() string {
	return fmt.Sprintf(`{"Offset":"0x%x", "Length":"0x%x"}`, r.Offset, r.Length)
}

// Intersect returns true if ranges "r" and "cmp" have at least one byte
// with the same offset.
func (r Range) Intersect(cmp Range) bool {
	if r.Length == 0 || cmp.Length == 0 {
		return false
	}
	if r.Offset+r.Length <= cmp.Offset {
		return false
	}
	if r.Offset >= cmp.Offset+cmp.Length {
		return false
	}
	return true
}

// End returns the first offset after the range.
func (r Range) End() uint64 {
	return r.Offset + r.Length
}

// Ranges is a helper to manipulate multiple `Range`-s at once.
type Ranges []Range

func (s Ranges) String() string {
	r := make([]string, 0, len(s))
	for _, oneRange := range s {
		r = append(r, oneRange.String())
	}
	return `[` + strings.Join(r, `, `) + `]`
}

// Sort sorts the slice by field Offset.
func (s Ranges) Sort() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Offset < s[j].Offset
	})
}

// IsIn returns if the index is covered by this ranges.
func (s Ranges) IsIn(index uint64) bool {
	for _, r := range s {
		if r.Offset <= index && index < r.End() {
			return true
		}
	}
	return false
}

// MergeRanges merges ranges which have distance less or equal to
// mergeDistance.
//
// Warning: should be called only on sorted ranges!
func MergeRanges(in Ranges, mergeDistance uint64) Ranges {
	if len(in) < 2 {
		return in
	}

	var result Ranges
	entry := in[0]
	for _, nextEntry := range in[1:] {
		if entry.End()+mergeDistance >= nextEntry.Offset {
			if nextEntry.End() > entry.End() {
				entry.Length = nextEntry.End() - entry.Offset
			}
			continue
		}

		result = append(result, entry)
		entry = nextEntry
	}
	result = append(result, entry)

	return result
}

// SortAndMerge sorts the slice (by field Offset) and then merges ranges
// which could be merged.
func (s *Ranges) SortAndMerge() {
	if len(*s) < 2 {
		return
	}
	s.Sort()

	*s = MergeRanges(*s, 0)
}

// Drop returns the bytes of `b` that are not covered by any of the
// ranges `s`, preserving order. Ranges reaching past the end of `b` are
// clamped. The input slice is never modified; when nothing is dropped the
// input slice itself is returned.
func (s Ranges) Drop(b []byte) []byte {
	if len(s) == 0 {
		return b
	}

	rs := make(Ranges, len(s))
	copy(rs, s)
	rs.SortAndMerge()

	var result []byte
	pos := uint64(0)
	for _, r := range rs {
		if r.Offset >= uint64(len(b)) || r.Length == 0 {
			continue
		}
		if r.Offset > pos {
			result = append(result, b[pos:r.Offset]...)
		}
		end := r.End()
		if end > uint64(len(b)) {
			end = uint64(len(b))
		}
		if end > pos {
			pos = end
		}
	}
	result = append(result, b[pos:]...)

	return result
}
