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

// Package eot reads and writes Embedded OpenType (EOT) files.
//
// Only uncompressed EOT files are written.  When reading, XOR
// obfuscation is undone, but MTX compressed font data is not supported.
//
// https://www.w3.org/Submission/EOT/
package eot

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/name"
	"seehuhn.de/go/webfont/os2"
)

// File versions.
const (
	Version1  = 0x00010000
	Version21 = 0x00020001
	Version22 = 0x00020002
)

// Bits in the Flags field.
const (
	FlagSubset     = 0x00000001
	FlagMTX        = 0x00000004
	FlagEmbedEUDC  = 0x00000020
	FlagXOR        = 0x10000000
	defaultCharset = 1
	magicNumber    = 0x504C
	xorKey         = 0x50
)

// fixedHeader is the part of the EOT header which precedes the name
// strings.  All fields are little-endian.
type fixedHeader struct {
	EOTSize            uint32
	FontDataSize       uint32
	Version            uint32
	Flags              uint32
	Panose             [10]byte
	Charset            uint8
	Italic             uint8
	Weight             uint32
	FsType             uint16
	MagicNumber        uint16
	UnicodeRange       [4]uint32
	CodePageRange      [2]uint32
	CheckSumAdjustment uint32
	Reserved           [4]uint32
	Padding1           uint16
}

// Encode converts a font into an EOT file.
//
// The font data is stored uncompressed and without obfuscation.  If the
// font has no "OS/2" table, or if the table cannot be decoded, the
// corresponding header fields are zero.  Missing names are stored as
// empty strings.
func Encode(f *webfont.Font) ([]byte, error) {
	l, err := f.Layout()
	if err != nil {
		return nil, err
	}
	fontData := l.Bytes()

	hdr := &fixedHeader{
		FontDataSize:       uint32(len(fontData)),
		Version:            Version21,
		Charset:            defaultCharset,
		MagicNumber:        magicNumber,
		CheckSumAdjustment: l.CheckSumAdjustment,
	}
	if info, err := f.OS2(); err == nil {
		hdr.Panose = info.Panose
		if info.IsItalic() {
			hdr.Italic = 1
		}
		hdr.Weight = uint32(info.WeightClass)
		hdr.FsType = info.FsType
		hdr.UnicodeRange = info.UnicodeRange
		hdr.CodePageRange[0], hdr.CodePageRange[1] = info.CodePageRange.Words()
	}

	names, _ := f.Names() // nil is fine for Lookup

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, hdr)

	nameIDs := []name.ID{name.Family, name.Subfamily, name.Version, name.FullName}
	for i, nameID := range nameIDs {
		if i > 0 {
			writeUint16(buf, 0) // Padding2, Padding3, Padding4
		}
		s, err := encodeUTF16LE(names.Lookup(nameID))
		if err != nil {
			return nil, err
		}
		writeUint16(buf, uint16(len(s)))
		buf.Write(s)
	}
	writeUint16(buf, 0) // Padding5
	writeUint16(buf, 0) // RootStringSize

	buf.Write(fontData)

	res := buf.Bytes()
	binary.LittleEndian.PutUint32(res[:4], uint32(len(res)))
	return res, nil
}

func writeUint16(buf *bytes.Buffer, x uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], x)
	buf.Write(b[:])
}

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func encodeUTF16LE(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := utf16LE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	if len(b) > 0xFFFF {
		b = b[:0xFFFE]
	}
	return b, nil
}

// Info holds the information from the header of an EOT file.
type Info struct {
	Version            uint32
	Flags              uint32
	Panose             [10]byte
	Charset            uint8
	Italic             bool
	Weight             os2.Weight
	FsType             uint16
	UnicodeRange       os2.UnicodeRange
	CodePageRange      os2.CodePageRange
	CheckSumAdjustment uint32

	FamilyName  string
	StyleName   string
	VersionName string
	FullName    string
	RootString  string

	// FontData is the embedded font data, exactly as stored in the file.
	// The slice points into the data passed to Parse.
	FontData []byte
}
