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

// Package os2 reads and writes "OS/2" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/webfont/parser"
)

// Info contains information from the "OS/2" table.
type Info struct {
	Version uint16

	WeightClass Weight
	WidthClass  Width

	// FsType contains the raw embedding permission bits.
	FsType uint16

	// Selection contains the raw fsSelection bits.
	Selection uint16

	FirstCharIndex uint16
	LastCharIndex  uint16

	Ascent     funit.Int16
	Descent    funit.Int16 // negative
	WinAscent  funit.Int16
	WinDescent funit.Int16 // positive
	LineGap    funit.Int16
	CapHeight  funit.Int16
	XHeight    funit.Int16

	AvgGlyphWidth funit.Int16

	SubscriptXSize     funit.Int16
	SubscriptYSize     funit.Int16
	SubscriptXOffset   funit.Int16
	SubscriptYOffset   funit.Int16
	SuperscriptXSize   funit.Int16
	SuperscriptYSize   funit.Int16
	SuperscriptXOffset funit.Int16
	SuperscriptYOffset funit.Int16
	StrikeoutSize      funit.Int16
	StrikeoutPosition  funit.Int16

	FamilyClass int16    // https://docs.microsoft.com/en-us/typography/opentype/spec/ibmfc
	Panose      [10]byte // https://monotype.github.io/panose/

	// Vendor is the four-character vendor ID, without trailing spaces or
	// NUL bytes.  Shorter IDs are padded with spaces on encoding.
	Vendor string

	UnicodeRange  UnicodeRange
	CodePageRange CodePageRange

	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16

	// Optical point size range, in units of 1/20 point (version 5 only).
	LowerOpticalPointSize uint16
	UpperOpticalPointSize uint16
}

// record is the binary layout of a version 5 "OS/2" table.  Older
// versions use a prefix of this layout, see tableSize.
type record struct {
	Version            uint16
	AvgCharWidth       funit.Int16
	WeightClass        uint16
	WidthClass         uint16
	FsType             uint16
	SubscriptXSize     funit.Int16
	SubscriptYSize     funit.Int16
	SubscriptXOffset   funit.Int16
	SubscriptYOffset   funit.Int16
	SuperscriptXSize   funit.Int16
	SuperscriptYSize   funit.Int16
	SuperscriptXOffset funit.Int16
	SuperscriptYOffset funit.Int16
	StrikeoutSize      funit.Int16
	StrikeoutPosition  funit.Int16
	FamilyClass        int16
	Panose             [10]byte
	UnicodeRange       [4]uint32
	VendID             [4]byte
	Selection          uint16
	FirstCharIndex     uint16
	LastCharIndex      uint16
	// end of Apple's version 0 tables (68 bytes)

	TypoAscender  funit.Int16
	TypoDescender funit.Int16
	TypoLineGap   funit.Int16
	WinAscent     funit.Int16
	WinDescent    funit.Int16
	// end of version 0 (78 bytes)

	CodePageRange [2]uint32
	// end of version 1 (86 bytes)

	XHeight     funit.Int16
	CapHeight   funit.Int16
	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16
	// end of versions 2 to 4 (96 bytes)

	LowerOpticalPointSize uint16
	UpperOpticalPointSize uint16
}

const (
	sizeApple0 = 68
	sizeV0     = 78
	sizeV1     = 86
	sizeV2     = 96
	sizeV5     = 100
)

// tableSize returns the length of a table with the given version.
func tableSize(version uint16) int {
	switch version {
	case 0:
		return sizeV0
	case 1:
		return sizeV1
	case 2, 3, 4:
		return sizeV2
	default:
		return sizeV5
	}
}

// Decode decodes an "OS/2" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < sizeApple0 {
		return nil, errTableTooShort
	}
	version := binary.BigEndian.Uint16(data)
	if version > 5 {
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/os2",
			Feature:   fmt.Sprintf("OS/2 table version %d", version),
		}
	}

	size := tableSize(version)
	if version == 0 && len(data) < sizeV0 {
		size = sizeApple0
	}
	if len(data) < size {
		return nil, errTableTooShort
	}

	// Fields beyond the end of the table version stay zero.
	var buf [sizeV5]byte
	copy(buf[:], data[:size])
	rec := &record{}
	_ = binary.Read(bytes.NewReader(buf[:]), binary.BigEndian, rec)

	info := &Info{
		Version:     rec.Version,
		WeightClass: Weight(rec.WeightClass),
		WidthClass:  Width(rec.WidthClass),
		FsType:      rec.FsType,
		Selection:   rec.Selection,

		FirstCharIndex: rec.FirstCharIndex,
		LastCharIndex:  rec.LastCharIndex,

		Ascent:     rec.TypoAscender,
		Descent:    rec.TypoDescender,
		LineGap:    rec.TypoLineGap,
		WinAscent:  rec.WinAscent,
		WinDescent: rec.WinDescent,
		CapHeight:  rec.CapHeight,
		XHeight:    rec.XHeight,

		AvgGlyphWidth: rec.AvgCharWidth,

		SubscriptXSize:     rec.SubscriptXSize,
		SubscriptYSize:     rec.SubscriptYSize,
		SubscriptXOffset:   rec.SubscriptXOffset,
		SubscriptYOffset:   rec.SubscriptYOffset,
		SuperscriptXSize:   rec.SuperscriptXSize,
		SuperscriptYSize:   rec.SuperscriptYSize,
		SuperscriptXOffset: rec.SuperscriptXOffset,
		SuperscriptYOffset: rec.SuperscriptYOffset,
		StrikeoutSize:      rec.StrikeoutSize,
		StrikeoutPosition:  rec.StrikeoutPosition,

		FamilyClass: rec.FamilyClass,
		Panose:      rec.Panose,
		Vendor:      strings.TrimRight(string(rec.VendID[:]), " \x00"),

		UnicodeRange:  rec.UnicodeRange,
		CodePageRange: CodePageRange(rec.CodePageRange[0]) | CodePageRange(rec.CodePageRange[1])<<32,

		DefaultChar: rec.DefaultChar,
		BreakChar:   rec.BreakChar,
		MaxContext:  rec.MaxContext,

		LowerOpticalPointSize: rec.LowerOpticalPointSize,
		UpperOpticalPointSize: rec.UpperOpticalPointSize,
	}
	return info, nil
}

// Encode converts the info to a "OS/2" table.
//
// Tables of version 0 to 4 are written in the version 4 layout, so that
// all fields are preserved.  Version 5 tables include the optical point
// size range.
func (info *Info) Encode() []byte {
	rec := &record{
		Version:            info.Version,
		AvgCharWidth:       info.AvgGlyphWidth,
		WeightClass:        uint16(info.WeightClass),
		WidthClass:         uint16(info.WidthClass),
		FsType:             info.FsType,
		SubscriptXSize:     info.SubscriptXSize,
		SubscriptYSize:     info.SubscriptYSize,
		SubscriptXOffset:   info.SubscriptXOffset,
		SubscriptYOffset:   info.SubscriptYOffset,
		SuperscriptXSize:   info.SuperscriptXSize,
		SuperscriptYSize:   info.SuperscriptYSize,
		SuperscriptXOffset: info.SuperscriptXOffset,
		SuperscriptYOffset: info.SuperscriptYOffset,
		StrikeoutSize:      info.StrikeoutSize,
		StrikeoutPosition:  info.StrikeoutPosition,
		FamilyClass:        info.FamilyClass,
		Panose:             info.Panose,
		UnicodeRange:       info.UnicodeRange,
		Selection:          info.Selection,
		FirstCharIndex:     info.FirstCharIndex,
		LastCharIndex:      info.LastCharIndex,

		TypoAscender:  info.Ascent,
		TypoDescender: info.Descent,
		TypoLineGap:   info.LineGap,
		WinAscent:     info.WinAscent,
		WinDescent:    info.WinDescent,

		XHeight:     info.XHeight,
		CapHeight:   info.CapHeight,
		DefaultChar: info.DefaultChar,
		BreakChar:   info.BreakChar,
		MaxContext:  info.MaxContext,

		LowerOpticalPointSize: info.LowerOpticalPointSize,
		UpperOpticalPointSize: info.UpperOpticalPointSize,
	}
	n := copy(rec.VendID[:], info.Vendor)
	for i := n; i < len(rec.VendID); i++ {
		rec.VendID[i] = ' '
	}
	rec.CodePageRange[0], rec.CodePageRange[1] = info.CodePageRange.Words()

	buf := bytes.NewBuffer(make([]byte, 0, sizeV5))
	_ = binary.Write(buf, binary.BigEndian, rec)
	if info.Version < 5 {
		return buf.Bytes()[:sizeV2]
	}
	return buf.Bytes()
}

// selection returns the fsSelection bits which are meaningful for the
// table version.  Bits 7 to 15 are reserved before version 4.
func (info *Info) selection() uint16 {
	if info.Version <= 3 {
		return info.Selection & 0x007F
	}
	return info.Selection
}

// IsItalic reports whether the font contains italic or oblique glyphs.
func (info *Info) IsItalic() bool {
	return info.Selection&0x0001 != 0
}

// IsBold reports whether the glyphs are emboldened.
func (info *Info) IsBold() bool {
	return info.selection()&0x0020 != 0
}

// IsRegular reports whether the glyphs are in the standard weight and
// style for the font.
func (info *Info) IsRegular() bool {
	return info.selection()&0x0040 != 0
}

// IsOblique reports whether the font contains oblique glyphs.
func (info *Info) IsOblique() bool {
	return info.selection()&0x0200 != 0
}

// Permissions returns the embedding permissions of the font.
// If several bits are set, the least restrictive permission is used.
func (info *Info) Permissions() Permissions {
	bits := info.FsType
	if info.Version < 3 {
		bits &= 0x000F
	}
	switch {
	case bits&0x0008 != 0:
		return PermEdit
	case bits&0x0004 != 0:
		return PermView
	case bits&0x0002 != 0:
		return PermRestricted
	default:
		return PermInstall
	}
}

// Permissions describes rights to embed and use a font.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#fstype
type Permissions int

// The possible permission values.
const (
	PermInstall Permissions = iota
	PermEdit
	PermView
	PermRestricted
)

var permNames = map[Permissions]string{
	PermInstall:    "can install",
	PermEdit:       "can edit",
	PermView:       "can view",
	PermRestricted: "restricted",
}

func (perm Permissions) String() string {
	if name, ok := permNames[perm]; ok {
		return name
	}
	return fmt.Sprintf("Permissions(%d)", int(perm))
}

var errTableTooShort = &parser.InvalidFontError{
	SubSystem: "webfont/os2",
	Reason:    "table too short",
}
