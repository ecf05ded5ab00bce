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

package glyf

import "seehuhn.de/go/webfont/parser"

// decodeLoca returns the glyph offsets stored in the "loca" table.
// The result has one more entry than there are glyphs.
func decodeLoca(enc *Encoded) ([]int, error) {
	var offs []int
	switch enc.LocaFormat {
	case 0:
		n := len(enc.LocaData) / 2
		offs = make([]int, n)
		for i := range offs {
			x := int(enc.LocaData[2*i])<<8 | int(enc.LocaData[2*i+1])
			offs[i] = 2 * x
		}
	case 1:
		n := len(enc.LocaData) / 4
		offs = make([]int, n)
		for i := range offs {
			x := uint32(enc.LocaData[4*i])<<24 | uint32(enc.LocaData[4*i+1])<<16 |
				uint32(enc.LocaData[4*i+2])<<8 | uint32(enc.LocaData[4*i+3])
			offs[i] = int(x)
		}
	default:
		return nil, errInvalidLocaFormat
	}
	if len(offs) == 0 {
		return nil, errEmptyLoca
	}
	return offs, nil
}

// encodeLoca returns the "loca" table for the given glyph offsets,
// together with the format to store in the "head" table.
func encodeLoca(offs []int) ([]byte, int16) {
	var locaFormat int16
	if offs[len(offs)-1] > 0x1FFFF {
		locaFormat = 1
	}
	for _, o := range offs {
		if o%2 != 0 {
			locaFormat = 1
			break
		}
	}

	var buf []byte
	if locaFormat == 0 {
		buf = make([]byte, 2*len(offs))
		for i, o := range offs {
			x := o / 2
			buf[2*i] = byte(x >> 8)
			buf[2*i+1] = byte(x)
		}
	} else {
		buf = make([]byte, 4*len(offs))
		for i, o := range offs {
			buf[4*i] = byte(o >> 24)
			buf[4*i+1] = byte(o >> 16)
			buf[4*i+2] = byte(o >> 8)
			buf[4*i+3] = byte(o)
		}
	}
	return buf, locaFormat
}

var (
	errInvalidLocaFormat = &parser.InvalidFontError{
		SubSystem: "webfont/loca",
		Reason:    "invalid loca format",
	}
	errEmptyLoca = &parser.InvalidFontError{
		SubSystem: "webfont/loca",
		Reason:    "loca table too short",
	}
)
