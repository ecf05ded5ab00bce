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

// Package maxp reads and writes "maxp" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
package maxp

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/webfont/parser"
)

// Table versions.
const (
	versionCFF      = 0x00005000
	versionTrueType = 0x00010000
)

// Info contains information from the "maxp" table.
type Info struct {
	// NumGlyphs is number of glyphs in the font, in the range 1, ..., 65535.
	NumGlyphs int

	// TTF contains the limits used by TrueType fonts.
	// This is nil for version 0.5 tables, as used by CFF-based fonts.
	TTF *TTFInfo
}

// TTFInfo contains the fields of a version 1.0 "maxp" table which follow
// numGlyphs.
type TTFInfo struct {
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

type prefix struct {
	Version   uint32
	NumGlyphs uint16
}

// Decode decodes the "maxp" table.
func Decode(data []byte) (*Info, error) {
	r := bytes.NewReader(data)
	var head prefix
	if err := binary.Read(r, binary.BigEndian, &head); err != nil {
		return nil, errTableTooShort
	}
	switch {
	case head.Version != versionCFF && head.Version != versionTrueType:
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/maxp",
			Feature:   fmt.Sprintf("maxp table version 0x%08x", head.Version),
		}
	case head.NumGlyphs == 0:
		return nil, errNoGlyphs
	}

	info := &Info{NumGlyphs: int(head.NumGlyphs)}
	if head.Version == versionTrueType {
		info.TTF = &TTFInfo{}
		if err := binary.Read(r, binary.BigEndian, info.TTF); err != nil {
			return nil, errTableTooShort
		}
	}
	return info, nil
}

// Encode encodes the "maxp" table.
// A version 1.0 table is written if TTF is set, version 0.5 otherwise.
func (info *Info) Encode() []byte {
	if info.NumGlyphs < 1 || info.NumGlyphs > 0xFFFF {
		panic("webfont/maxp: numGlyphs out of range")
	}

	head := prefix{Version: versionCFF, NumGlyphs: uint16(info.NumGlyphs)}
	if info.TTF != nil {
		head.Version = versionTrueType
	}
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.BigEndian, head)
	if info.TTF != nil {
		_ = binary.Write(buf, binary.BigEndian, info.TTF)
	}
	return buf.Bytes()
}

var (
	errTableTooShort = &parser.InvalidFontError{
		SubSystem: "webfont/maxp",
		Reason:    "table too short",
	}
	errNoGlyphs = &parser.InvalidFontError{
		SubSystem: "webfont/maxp",
		Reason:    "numGlyphs is zero",
	}
)
