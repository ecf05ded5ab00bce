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

package eot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/os2"
	"seehuhn.de/go/webfont/parser"
)

// Parse decodes the header of an EOT file.
// The font data is returned unmodified, see [Decode] for
// recovering the embedded font.
func Parse(data []byte) (*Info, error) {
	r := bytes.NewReader(data)
	hdr := &fixedHeader{}
	err := binary.Read(r, binary.LittleEndian, hdr)
	if err != nil {
		return nil, errTruncated
	}
	switch hdr.Version {
	case Version1, Version21, Version22:
		// pass
	default:
		return nil, &parser.NotSupportedError{
			SubSystem: "eot",
			Feature:   fmt.Sprintf("EOT version 0x%08x", hdr.Version),
		}
	}
	if hdr.MagicNumber != magicNumber {
		return nil, &parser.InvalidFontError{
			SubSystem: "eot",
			Reason:    "invalid magic number",
		}
	}
	if uint64(hdr.EOTSize) > uint64(len(data)) {
		return nil, &parser.InvalidFontError{
			SubSystem: "eot",
			Reason:    fmt.Sprintf("EOTSize %d exceeds file size %d", hdr.EOTSize, len(data)),
		}
	}

	info := &Info{
		Version:            hdr.Version,
		Flags:              hdr.Flags,
		Panose:             hdr.Panose,
		Charset:            hdr.Charset,
		Italic:             hdr.Italic != 0,
		Weight:             os2.Weight(hdr.Weight),
		FsType:             hdr.FsType,
		UnicodeRange:       hdr.UnicodeRange,
		CodePageRange:      os2.CodePageRange(hdr.CodePageRange[0]) | os2.CodePageRange(hdr.CodePageRange[1])<<32,
		CheckSumAdjustment: hdr.CheckSumAdjustment,
	}

	targets := []*string{&info.FamilyName, &info.StyleName, &info.VersionName, &info.FullName}
	for i, target := range targets {
		if i > 0 {
			_, err = readUint16(r) // padding
			if err != nil {
				return nil, err
			}
		}
		*target, err = readString(r)
		if err != nil {
			return nil, err
		}
	}

	if hdr.Version >= Version21 {
		// Padding5
		if _, err := readUint16(r); err != nil {
			return nil, err
		}
		info.RootString, err = readString(r)
		if err != nil {
			return nil, err
		}
	}
	if hdr.Version == Version22 {
		// RootStringCheckSum, EUDCCodePage, Padding6
		if _, err := r.Seek(10, io.SeekCurrent); err != nil {
			return nil, errTruncated
		}
		_, err = readBlob16(r) // Signature
		if err != nil {
			return nil, err
		}
		// EUDCFlags
		if _, err := r.Seek(4, io.SeekCurrent); err != nil {
			return nil, errTruncated
		}
		var eudcSize uint32
		if err := binary.Read(r, binary.LittleEndian, &eudcSize); err != nil {
			return nil, errTruncated
		}
		if int64(eudcSize) > int64(r.Len()) {
			return nil, errTruncated
		}
		_, _ = r.Seek(int64(eudcSize), io.SeekCurrent)
	}

	start := len(data) - r.Len()
	end := uint64(start) + uint64(hdr.FontDataSize)
	if end > uint64(len(data)) {
		return nil, &parser.InvalidFontError{
			SubSystem: "eot",
			Reason:    "font data extends beyond end of file",
		}
	}
	info.FontData = data[start:end]

	return info, nil
}

// Decode extracts the font from an EOT file.
func Decode(data []byte) (*webfont.Font, error) {
	info, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if info.Flags&FlagMTX != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "eot",
			Feature:   "MTX compression",
		}
	}

	fontData := info.FontData
	if info.Flags&FlagXOR != 0 {
		fontData = make([]byte, len(info.FontData))
		for i, b := range info.FontData {
			fontData[i] = b ^ xorKey
		}
	}
	return webfont.Read(fontData)
}

func readUint16(r io.Reader) (uint16, error) {
	var x uint16
	err := binary.Read(r, binary.LittleEndian, &x)
	if err != nil {
		return 0, errTruncated
	}
	return x, nil
}

func readBlob16(r io.Reader) ([]byte, error) {
	n, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	_, err = io.ReadFull(r, buf)
	if err != nil {
		return nil, errTruncated
	}
	return buf, nil
}

func readString(r io.Reader) (string, error) {
	buf, err := readBlob16(r)
	if err != nil {
		return "", err
	}
	if len(buf)%2 != 0 {
		return "", &parser.InvalidFontError{
			SubSystem: "eot",
			Reason:    "odd length UTF-16 string",
		}
	}
	s, err := utf16LE.NewDecoder().Bytes(buf)
	if err != nil {
		return "", &parser.InvalidFontError{
			SubSystem: "eot",
			Reason:    "invalid UTF-16 string",
		}
	}
	return string(s), nil
}

var errTruncated = &parser.InvalidFontError{
	SubSystem: "eot",
	Reason:    "truncated header",
}
