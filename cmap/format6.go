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

	"seehuhn.de/go/webfont/glyph"
)

// Format6 represents a format 6 cmap subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-6-trimmed-table-mapping
type Format6 struct {
	FirstCode uint16
	GlyphIDs  []glyph.ID
}

func decodeFormat6(data []byte) (Subtable, error) {
	if len(data) < 10 {
		return nil, errMalformedSubtable
	}
	firstCode := uint16(data[6])<<8 | uint16(data[7])
	count := int(data[8])<<8 | int(data[9])
	if len(data) < 10+2*count || int(firstCode)+count > 0x10000 {
		return nil, errMalformedSubtable
	}

	res := &Format6{
		FirstCode: firstCode,
		GlyphIDs:  make([]glyph.ID, count),
	}
	for i := range res.GlyphIDs {
		res.GlyphIDs[i] = glyph.ID(data[10+2*i])<<8 | glyph.ID(data[11+2*i])
	}
	return res, nil
}

// Encode returns the binary form of the subtable.
func (cmap *Format6) Encode(language uint16) []byte {
	count := len(cmap.GlyphIDs)
	L := 10 + 2*count
	buf := make([]byte, L)
	buf[1] = 6
	buf[2] = byte(L >> 8)
	buf[3] = byte(L)
	buf[4] = byte(language >> 8)
	buf[5] = byte(language)
	buf[6] = byte(cmap.FirstCode >> 8)
	buf[7] = byte(cmap.FirstCode)
	buf[8] = byte(count >> 8)
	buf[9] = byte(count)
	for i, gid := range cmap.GlyphIDs {
		buf[10+2*i] = byte(gid >> 8)
		buf[11+2*i] = byte(gid)
	}
	return buf
}

// Lookup returns the glyph index for the given rune.
func (cmap *Format6) Lookup(r rune) glyph.ID {
	idx := int(r) - int(cmap.FirstCode)
	if idx < 0 || idx >= len(cmap.GlyphIDs) {
		return 0
	}
	return cmap.GlyphIDs[idx]
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap *Format6) CodeRange() (low, high rune) {
	if len(cmap.GlyphIDs) == 0 {
		return 0, 0
	}
	low = rune(cmap.FirstCode)
	return low, low + rune(len(cmap.GlyphIDs)) - 1
}

// All iterates over the mapped characters in order of increasing code.
func (cmap *Format6) All() iter.Seq2[rune, glyph.ID] {
	return func(yield func(rune, glyph.ID) bool) {
		for i, gid := range cmap.GlyphIDs {
			if gid != 0 && !yield(rune(cmap.FirstCode)+rune(i), gid) {
				return
			}
		}
	}
}
