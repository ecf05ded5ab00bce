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
	"encoding/binary"
	"iter"

	"seehuhn.de/go/webfont/glyph"
)

// Format0 represents a format 0 cmap subtable, which maps the single byte
// codes 0, ..., 255 directly to glyph IDs.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-0-byte-encoding-table
type Format0 struct {
	Data [256]byte
}

const format0Size = 6 + 256

func decodeFormat0(data []byte) (Subtable, error) {
	if len(data) < format0Size {
		return nil, errMalformedSubtable
	}
	sub := &Format0{}
	copy(sub.Data[:], data[6:format0Size])
	return sub, nil
}

// Lookup returns the glyph index for the given rune, or 0 for codes
// outside the byte range.
func (cmap *Format0) Lookup(r rune) glyph.ID {
	if r >= 0 && r < 256 {
		return glyph.ID(cmap.Data[r])
	}
	return 0
}

// Encode returns the binary form of the subtable.
func (cmap *Format0) Encode(language uint16) []byte {
	buf := make([]byte, 6, format0Size)
	binary.BigEndian.PutUint16(buf[2:], format0Size)
	binary.BigEndian.PutUint16(buf[4:], language)
	return append(buf, cmap.Data[:]...)
}

// CodeRange returns the full byte range, independent of which codes are
// mapped.
func (cmap *Format0) CodeRange() (low rune, high rune) {
	return 0, 255
}

// All iterates over the mapped character codes.
func (cmap *Format0) All() iter.Seq2[rune, glyph.ID] {
	return func(yield func(rune, glyph.ID) bool) {
		for c := range 256 {
			gid := glyph.ID(cmap.Data[c])
			if gid == 0 {
				continue
			}
			if !yield(rune(c), gid) {
				return
			}
		}
	}
}
