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

// Format4 represents a format 4 cmap subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
//
// Only characters mapped to non-zero glyph IDs are stored.
type Format4 map[uint16]glyph.ID

func decodeFormat4(data []byte) (Subtable, error) {
	if len(data) < 14 {
		return nil, errMalformedSubtable
	}
	segCountX2 := int(data[6])<<8 | int(data[7])
	if segCountX2%2 != 0 {
		return nil, errMalformedSubtable
	}
	segCount := segCountX2 / 2
	if 16+8*segCount > len(data) {
		return nil, errMalformedSubtable
	}

	endCodeBase := 14
	startCodeBase := 16 + segCountX2
	idDeltaBase := startCodeBase + segCountX2
	idRangeOffsetBase := idDeltaBase + segCountX2

	get := func(pos int) uint16 {
		return uint16(data[pos])<<8 | uint16(data[pos+1])
	}

	cmap := Format4{}
	prevEnd := -1
	for i := 0; i < segCount; i++ {
		end := int(get(endCodeBase + 2*i))
		start := int(get(startCodeBase + 2*i))
		delta := get(idDeltaBase + 2*i)
		rangeOffsetPos := idRangeOffsetBase + 2*i
		rangeOffset := int(get(rangeOffsetPos))

		if start > end || start <= prevEnd {
			return nil, errMalformedSubtable
		}
		prevEnd = end

		for c := start; c <= end; c++ {
			var gid uint16
			if rangeOffset == 0 {
				gid = uint16(c) + delta
			} else {
				pos := rangeOffsetPos + rangeOffset + 2*(c-start)
				if pos+2 > len(data) {
					// some fonts have a trailing 0xFFFF segment pointing
					// beyond the end of the table
					if c == 0xFFFF {
						continue
					}
					return nil, errMalformedSubtable
				}
				gid = get(pos)
				if gid != 0 {
					gid += delta
				}
			}
			if gid != 0 {
				cmap[uint16(c)] = glyph.ID(gid)
			}
		}
	}

	return cmap, nil
}

type format4segment struct {
	start, end uint16
	delta      uint16
}

// Encode returns the binary form of the subtable.
//
// Runs of consecutive character codes mapped to consecutive glyph IDs
// are combined into segments which use idDelta only.
func (cmap Format4) Encode(language uint16) []byte {
	codes := cmap.codes()

	var segs []format4segment
	for i, c := range codes {
		delta := uint16(cmap[c]) - c
		if i > 0 {
			last := &segs[len(segs)-1]
			if c == last.end+1 && delta == last.delta {
				last.end = c
				continue
			}
		}
		segs = append(segs, format4segment{start: c, end: c, delta: delta})
	}
	if len(segs) == 0 || segs[len(segs)-1].end != 0xFFFF {
		segs = append(segs, format4segment{start: 0xFFFF, end: 0xFFFF, delta: 1})
	}

	segCount := len(segs)
	sel := 0
	for 2<<sel <= segCount {
		sel++
	}
	searchRange := 2 << sel
	rangeShift := 2*segCount - searchRange

	L := 16 + 8*segCount
	buf := make([]byte, L)
	put := func(pos int, val uint16) {
		buf[pos] = byte(val >> 8)
		buf[pos+1] = byte(val)
	}
	put(0, 4)
	put(2, uint16(L))
	put(4, language)
	put(6, uint16(2*segCount))
	put(8, uint16(searchRange))
	put(10, uint16(sel))
	put(12, uint16(rangeShift))
	for i, seg := range segs {
		put(14+2*i, seg.end)
		put(16+2*segCount+2*i, seg.start)
		put(16+4*segCount+2*i, seg.delta)
		// idRangeOffset is always zero
	}
	return buf
}

// Lookup returns the glyph index for the given rune.
func (cmap Format4) Lookup(r rune) glyph.ID {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	return cmap[uint16(r)]
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap Format4) CodeRange() (low, high rune) {
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
func (cmap Format4) All() iter.Seq2[rune, glyph.ID] {
	return func(yield func(rune, glyph.ID) bool) {
		for _, c := range cmap.codes() {
			if !yield(rune(c), cmap[c]) {
				return
			}
		}
	}
}

func (cmap Format4) codes() []uint16 {
	codes := make([]uint16, 0, len(cmap))
	for c, gid := range cmap {
		if gid != 0 {
			codes = append(codes, c)
		}
	}
	slices.Sort(codes)
	return codes
}
