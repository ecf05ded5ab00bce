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
	"cmp"
	"iter"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/webfont/glyph"
)

// macRoman translates between Unicode code points and the Mac Roman
// character codes of a Macintosh subtable.
type macRoman struct {
	Codes Subtable
}

func (m macRoman) Lookup(r rune) glyph.ID {
	if r < 128 {
		return m.Codes.Lookup(r)
	}
	b, ok := charmap.Macintosh.EncodeRune(r)
	if !ok {
		return 0
	}
	return m.Codes.Lookup(rune(b))
}

func (m macRoman) Encode(language uint16) []byte {
	return m.Codes.Encode(language)
}

func (m macRoman) CodeRange() (low, high rune) {
	first := true
	for r := range m.All() {
		if first || r < low {
			low = r
		}
		if first || r > high {
			high = r
		}
		first = false
	}
	return
}

// All iterates over the mapped characters in order of increasing
// Unicode code point.
func (m macRoman) All() iter.Seq2[rune, glyph.ID] {
	type pair struct {
		r   rune
		gid glyph.ID
	}
	var pairs []pair
	for c, gid := range m.Codes.All() {
		if c > 255 {
			continue
		}
		pairs = append(pairs, pair{charmap.Macintosh.DecodeByte(byte(c)), gid})
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		return cmp.Compare(a.r, b.r)
	})
	return func(yield func(rune, glyph.ID) bool) {
		for _, p := range pairs {
			if !yield(p.r, p.gid) {
				return
			}
		}
	}
}
