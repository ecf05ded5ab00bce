// seehuhn.de/go/webfont - convert and inspect web font containers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cmap

import (
	"iter"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/webfont/glyph"
)

// Format12 represents a format 12 cmap subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
//
// The binary encoding is most efficient, if consecutive code points are mapped
// to consecutive glyph IDs.
type Format12 map[uint32]glyph.ID

func decodeFormat12(data []byte) (Subtable, error) {
	groups, err := readGroups(data)
	if err != nil {
		return nil, err
	}

	res := Format12{}
	total := 0
	for _, g := range groups {
		if g.GID+(g.Last-g.First) > 0xFFFF {
			return nil, errMalformedSubtable
		}
		total += int(g.Last-g.First) + 1
		if total > 65536 {
			return nil, errMalformedSubtable
		}
		for c := g.First; c <= g.Last; c++ {
			if gid := glyph.ID(g.GID + c - g.First); gid != 0 {
				res[c] = gid
			}
		}
	}
	return res, nil
}

// Encode returns the binary form of the subtable.
// Runs of consecutive codes mapped to consecutive glyphs share one group.
func (cmap Format12) Encode(language uint16) []byte {
	var groups []rangeGroup
	for _, c := range cmap.codes() {
		gid := uint32(cmap[c])
		if k := len(groups) - 1; k >= 0 {
			last := &groups[k]
			if c == last.Last+1 && gid == last.GID+(c-last.First) {
				last.Last = c
				continue
			}
		}
		groups = append(groups, rangeGroup{First: c, Last: c, GID: gid})
	}
	return appendGroups(nil, 12, language, groups)
}

// Lookup returns the glyph index for the given rune.
func (cmap Format12) Lookup(code rune) glyph.ID {
	return cmap[uint32(code)]
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap Format12) CodeRange() (low, high rune) {
	first := true
	for c := range cmap {
		cr := rune(c)
		if first || cr < low {
			low = cr
		}
		if first || cr > high {
			high = cr
		}
		first = false
	}
	return
}

// All iterates over the mapped characters in order of increasing code.
func (cmap Format12) All() iter.Seq2[rune, glyph.ID] {
	return func(yield func(rune, glyph.ID) bool) {
		for _, c := range cmap.codes() {
			if !yield(rune(c), cmap[c]) {
				return
			}
		}
	}
}

func (cmap Format12) codes() []uint32 {
	codes := make([]uint32, 0, len(cmap))
	for c, gid := range cmap {
		if gid != 0 {
			codes = append(codes, c)
		}
	}
	slices.Sort(codes)
	return codes
}
