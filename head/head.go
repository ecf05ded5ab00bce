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

// Package head reads and writes "head" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"encoding/binary"
	"time"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/webfont/parser"
)

// Info contains information from the "head" table.
type Info struct {
	// FontRevision is the font revision as a 16.16 fixed-point number.
	FontRevision uint32

	CheckSumAdjustment uint32
	Flags              uint16
	UnitsPerEm         uint16

	Created  time.Time
	Modified time.Time

	FontBBox funit.Rect16

	MacStyle          uint16
	LowestRecPPEM     uint16
	FontDirectionHint int16

	// IndexToLocFormat is 0 for short "loca" offsets and 1 for long
	// offsets.
	IndexToLocFormat int16
	GlyphDataFormat  int16
}

const headLength = 54

// Decode extracts information from the "head" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < headLength {
		return nil, errTableTooShort
	}
	if data[0] != 0 || data[1] != 1 || data[2] != 0 || data[3] != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/head",
			Feature:   "head table version",
		}
	}
	magic := binary.BigEndian.Uint32(data[12:16])
	if magic != 0x5F0F3CF5 {
		return nil, errInvalidMagic
	}

	info := &Info{
		FontRevision:       binary.BigEndian.Uint32(data[4:8]),
		CheckSumAdjustment: binary.BigEndian.Uint32(data[8:12]),
		Flags:              binary.BigEndian.Uint16(data[16:18]),
		UnitsPerEm:         binary.BigEndian.Uint16(data[18:20]),
		Created:            decodeTime(int64(binary.BigEndian.Uint64(data[20:28]))),
		Modified:           decodeTime(int64(binary.BigEndian.Uint64(data[28:36]))),
		FontBBox: funit.Rect16{
			LLx: funit.Int16(binary.BigEndian.Uint16(data[36:38])),
			LLy: funit.Int16(binary.BigEndian.Uint16(data[38:40])),
			URx: funit.Int16(binary.BigEndian.Uint16(data[40:42])),
			URy: funit.Int16(binary.BigEndian.Uint16(data[42:44])),
		},
		MacStyle:          binary.BigEndian.Uint16(data[44:46]),
		LowestRecPPEM:     binary.BigEndian.Uint16(data[46:48]),
		FontDirectionHint: int16(binary.BigEndian.Uint16(data[48:50])),
		IndexToLocFormat:  int16(binary.BigEndian.Uint16(data[50:52])),
		GlyphDataFormat:   int16(binary.BigEndian.Uint16(data[52:54])),
	}
	if info.UnitsPerEm < 16 || info.UnitsPerEm > 16384 {
		return nil, errInvalidUnitsPerEm
	}
	if info.IndexToLocFormat != 0 && info.IndexToLocFormat != 1 {
		return nil, errInvalidLocFormat
	}
	return info, nil
}

// Encode converts the "head" table to its binary form.
func (info *Info) Encode() []byte {
	buf := make([]byte, headLength)
	buf[1] = 1 // version 1.0
	binary.BigEndian.PutUint32(buf[4:8], info.FontRevision)
	binary.BigEndian.PutUint32(buf[8:12], info.CheckSumAdjustment)
	binary.BigEndian.PutUint32(buf[12:16], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(buf[16:18], info.Flags)
	binary.BigEndian.PutUint16(buf[18:20], info.UnitsPerEm)
	binary.BigEndian.PutUint64(buf[20:28], uint64(encodeTime(info.Created)))
	binary.BigEndian.PutUint64(buf[28:36], uint64(encodeTime(info.Modified)))
	binary.BigEndian.PutUint16(buf[36:38], uint16(info.FontBBox.LLx))
	binary.BigEndian.PutUint16(buf[38:40], uint16(info.FontBBox.LLy))
	binary.BigEndian.PutUint16(buf[40:42], uint16(info.FontBBox.URx))
	binary.BigEndian.PutUint16(buf[42:44], uint16(info.FontBBox.URy))
	binary.BigEndian.PutUint16(buf[44:46], info.MacStyle)
	binary.BigEndian.PutUint16(buf[46:48], info.LowestRecPPEM)
	binary.BigEndian.PutUint16(buf[48:50], uint16(info.FontDirectionHint))
	binary.BigEndian.PutUint16(buf[50:52], uint16(info.IndexToLocFormat))
	binary.BigEndian.PutUint16(buf[52:54], uint16(info.GlyphDataFormat))
	return buf
}

// Revision returns the font revision as a floating point number.
func (info *Info) Revision() float64 {
	return parser.FixedToFloat(info.FontRevision)
}

// RevisionParts returns the integer and fractional parts of the
// 16.16 fixed-point font revision.
func (info *Info) RevisionParts() (major, minor uint16) {
	return uint16(info.FontRevision >> 16), uint16(info.FontRevision)
}

// CheckSumAdjustment returns the checkSumAdjustment field of an encoded
// "head" table, or 0 if the data is too short.
func CheckSumAdjustment(data []byte) uint32 {
	if len(data) < 12 {
		return 0
	}
	return binary.BigEndian.Uint32(data[8:12])
}

var zeroTime = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

func decodeTime(secs int64) time.Time {
	return zeroTime.Add(time.Duration(secs) * time.Second)
}

func encodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return int64(t.Sub(zeroTime) / time.Second)
}

var (
	errTableTooShort = &parser.InvalidFontError{
		SubSystem: "webfont/head",
		Reason:    "table too short",
	}
	errInvalidMagic = &parser.InvalidFontError{
		SubSystem: "webfont/head",
		Reason:    "invalid magic number",
	}
	errInvalidUnitsPerEm = &parser.InvalidFontError{
		SubSystem: "webfont/head",
		Reason:    "invalid unitsPerEm",
	}
	errInvalidLocFormat = &parser.InvalidFontError{
		SubSystem: "webfont/head",
		Reason:    "invalid indexToLocFormat",
	}
)
