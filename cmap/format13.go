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
	"sort"

	"seehuhn.de/go/webfont/glyph"
)

// Format13 represents a format 13 cmap subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-13-many-to-one-range-mappings
//
// The segments are sorted by character code and do not overlap.
type Format13 []Format13Segment

// Format13Segment maps a range of character codes to a single glyph.
type Format13Segment struct {
	StartCharCode uint32
	EndCharCode   uint32
	GlyphID       glyph.ID
}

func decodeFormat13(data []byte) (Subtable, error) {
	groups, err := readGroups(data)
	if err != nil {
		return nil, err
	}
	res := make(Format13, len(groups))
	for i, g := range groups {
		res[i] = Format13Segment{
			StartCharCode: g.First,
			EndCharCode:   g.Last,
			GlyphID:       glyph.ID(g.GID),
		}
	}
	return res, nil
}

// Encode returns the binary form of the subtable.
func (cmap Format13) Encode(language uint16) []byte {
	groups := make([]rangeGroup, len(cmap))
	for i, seg := range cmap {
		groups[i] = rangeGroup{First: seg.StartCharCode, Last: seg.EndCharCode, GID: uint32(seg.GlyphID)}
	}
	return appendGroups(nil, 13, language, groups)
}

// Lookup returns the glyph index for the given rune.
func (cmap Format13) Lookup(r rune) glyph.ID {
	c := uint32(r)
	idx := sort.Search(len(cmap), func(i int) bool {
		return cmap[i].EndCharCode >= c
	})
	if idx < len(cmap) && cmap[idx].StartCharCode <= c {
		return cmap[idx].GlyphID
	}
	return 0
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap Format13) CodeRange() (low, high rune) {
	if len(cmap) == 0 {
		return 0, 0
	}
	return rune(cmap[0].StartCharCode), rune(cmap[len(cmap)-1].EndCharCode)
}

// All iterates over the mapped characters in order of increasing code.
func (cmap Format13) All() iter.Seq2[rune, glyph.ID] {
	return func(yield func(rune, glyph.ID) bool) {
		for _, seg := range cmap {
			if seg.GlyphID == 0 {
				continue
			}
			for c := seg.StartCharCode; c <= seg.EndCharCode; c++ {
				if !yield(rune(c), seg.GlyphID) {
					return
				}
			}
		}
	}
}
