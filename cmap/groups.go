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

import "encoding/binary"

// rangeGroup is one group of a format 12 or format 13 subtable.
// For format 12 the glyph ID applies to the first code in the range,
// for format 13 to all codes.
type rangeGroup struct {
	First, Last uint32
	GID         uint32
}

const (
	groupHeaderSize = 16
	groupSize       = 12

	// maxGroups bounds the memory used for malformed subtables
	maxGroups = 1_000_000
)

// readGroups decodes the group list of a format 12 or 13 subtable.
// The groups must be sorted, non-overlapping and within the Unicode range.
func readGroups(data []byte) ([]rangeGroup, error) {
	if len(data) < groupHeaderSize {
		return nil, errMalformedSubtable
	}
	n := binary.BigEndian.Uint32(data[12:16])
	if n > maxGroups || uint64(len(data)) < groupHeaderSize+uint64(n)*groupSize {
		return nil, errMalformedSubtable
	}

	groups := make([]rangeGroup, n)
	body := data[groupHeaderSize:]
	for i := range groups {
		rec := body[i*groupSize : (i+1)*groupSize]
		g := rangeGroup{
			First: binary.BigEndian.Uint32(rec[0:]),
			Last:  binary.BigEndian.Uint32(rec[4:]),
			GID:   binary.BigEndian.Uint32(rec[8:]),
		}
		switch {
		case g.Last < g.First, g.Last > 0x10_FFFF, g.GID > 0xFFFF:
			return nil, errMalformedSubtable
		case i > 0 && g.First <= groups[i-1].Last:
			return nil, errMalformedSubtable
		}
		groups[i] = g
	}
	return groups, nil
}

// appendGroups writes a complete format 12 or 13 subtable.
func appendGroups(buf []byte, format, language uint16, groups []rangeGroup) []byte {
	total := groupHeaderSize + len(groups)*groupSize
	buf = binary.BigEndian.AppendUint16(buf, format)
	buf = append(buf, 0, 0) // reserved
	buf = binary.BigEndian.AppendUint32(buf, uint32(total))
	buf = binary.BigEndian.AppendUint32(buf, uint32(language))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(groups)))
	for _, g := range groups {
		buf = binary.BigEndian.AppendUint32(buf, g.First)
		buf = binary.BigEndian.AppendUint32(buf, g.Last)
		buf = binary.BigEndian.AppendUint32(buf, g.GID)
	}
	return buf
}
