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

// Format10 represents a format 10 cmap subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-10-trimmed-array
type Format10 struct {
	StartCharCode uint32
	GlyphIDs      []glyph.ID
}

func decodeFormat10(data []byte) (Subtable, error) {
	if len(data) < 20 {
		return nil, errMalformedSubtable
	}
	start := uint32(data[12])<<24 | uint32(data[13])<<16 | uint32(data[14])<<8 | uint32(data[15])
	count := uint32(data[16])<<24 | uint32(data[17])<<16 | uint32(data[18])<<8 | uint32(data[19])
	if uint64(len(data)) < 20+2*uint64(count) || uint64(start)+uint64(count) > 0x11_0000 {
		return nil, errMalformedSubtable
	}

	res := &Format10{
		StartCharCode: start,
		GlyphIDs:      make([]glyph.ID, count),
	}
	for i := range res.GlyphIDs {
		res.GlyphIDs[i] = glyph.ID(data[20+2*i])<<8 | glyph.ID(data[21+2*i])
	}
	return res, nil
}

// Encode returns the binary form of the subtable.
func (cmap *Format10) Encode(language uint16) []byte {
	count := uint32(len(cmap.GlyphIDs))
	L := 20 + 2*count
	buf := make([]byte, L)
	buf[1] = 10
	buf[4] = byte(L >> 24)
	buf[5] = byte(L >> 16)
	buf[6] = byte(L >> 8)
	buf[7] = byte(L)
	buf[10] = byte(language >> 8)
	buf[11] = byte(language)
	buf[12] = byte(cmap.StartCharCode >> 24)
	buf[13] = byte(cmap.StartCharCode >> 16)
	buf[14] = byte(cmap.StartCharCode >> 8)
	buf[15] = byte(cmap.StartCharCode)
	buf[16] = byte(count >> 24)
	buf[17] = byte(count >> 16)
	buf[18] = byte(count >> 8)
	buf[19] = byte(count)
	for i, gid := range cmap.GlyphIDs {
		buf[20+2*i] = byte(gid >> 8)
		buf[21+2*i] = byte(gid)
	}
	return buf
}

// Lookup returns the glyph index for the given rune.
func (cmap *Format10) Lookup(r rune) glyph.ID {
	idx := int64(r) - int64(cmap.StartCharCode)
	if idx < 0 || idx >= int64(len(cmap.GlyphIDs)) {
		return 0
	}
	return cmap.GlyphIDs[idx]
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap *Format10) CodeRange() (low, high rune) {
	if len(cmap.GlyphIDs) == 0 {
		return 0, 0
	}
	low = rune(cmap.StartCharCode)
	return low, low + rune(len(cmap.GlyphIDs)) - 1
}

// All iterates over the mapped characters in order of increasing code.
func (cmap *Format10) All() iter.Seq2[rune, glyph.ID] {
	return func(yield func(rune, glyph.ID) bool) {
		for i, gid := range cmap.GlyphIDs {
			if gid != 0 && !yield(rune(cmap.StartCharCode)+rune(i), gid) {
				return
			}
		}
	}
}
