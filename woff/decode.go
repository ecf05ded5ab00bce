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

package woff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/parser"
)

// Info holds the information from the header of a WOFF file.
type Info struct {
	Flavor        uint32
	TotalSfntSize uint32
	MajorVersion  uint16
	MinorVersion  uint16

	MetaOffset     uint32
	MetaLength     uint32
	MetaOrigLength uint32
	PrivOffset     uint32
	PrivLength     uint32

	Tables []*DirEntry
}

// DirEntry is an entry in the table directory of a WOFF file.
type DirEntry struct {
	Tag          string
	Offset       uint32
	CompLength   uint32
	OrigLength   uint32
	OrigChecksum uint32
}

// IsCompressed returns true if the table data is zlib compressed.
func (e *DirEntry) IsCompressed() bool {
	return e.CompLength < e.OrigLength
}

// Parse decodes and validates the header and table directory of a
// WOFF file.
func Parse(data []byte) (*Info, error) {
	p := parser.New("", data)
	if len(data) < headerLength {
		return nil, malformed("file too short")
	}
	sig, _ := p.ReadUint32()
	if sig == 0x774F4632 {
		return nil, &parser.NotSupportedError{
			SubSystem: "woff",
			Feature:   "WOFF2",
		}
	} else if sig != signature {
		return nil, malformed("invalid signature")
	}

	info := &Info{}
	info.Flavor, _ = p.ReadUint32()
	length, _ := p.ReadUint32()
	numTables, _ := p.ReadUint16()
	reserved, _ := p.ReadUint16()
	info.TotalSfntSize, _ = p.ReadUint32()
	info.MajorVersion, _ = p.ReadUint16()
	info.MinorVersion, _ = p.ReadUint16()
	info.MetaOffset, _ = p.ReadUint32()
	info.MetaLength, _ = p.ReadUint32()
	info.MetaOrigLength, _ = p.ReadUint32()
	info.PrivOffset, _ = p.ReadUint32()
	info.PrivLength, _ = p.ReadUint32()

	if int(length) != len(data) {
		return nil, malformed(fmt.Sprintf("length field %d, file size %d", length, len(data)))
	}
	if reserved != 0 {
		return nil, malformed("reserved field is not zero")
	}
	if numTables == 0 {
		return nil, malformed("no tables")
	}
	dirEnd := headerLength + dirEntryLength*int(numTables)
	if dirEnd > len(data) {
		return nil, malformed("table directory extends beyond end of file")
	}
	if err := checkBlock(info.MetaOffset, info.MetaLength, dirEnd, len(data)); err != nil {
		return nil, err
	}
	if err := checkBlock(info.PrivOffset, info.PrivLength, dirEnd, len(data)); err != nil {
		return nil, err
	}

	var sfntSize uint64 = sfntHeaderSize + sfntRecordSize*uint64(numTables)
	seen := make(map[string]bool, numTables)
	for i := 0; i < int(numTables); i++ {
		e := &DirEntry{}
		e.Tag, _ = p.ReadTag()
		e.Offset, _ = p.ReadUint32()
		e.CompLength, _ = p.ReadUint32()
		e.OrigLength, _ = p.ReadUint32()
		e.OrigChecksum, _ = p.ReadUint32()

		if !parser.IsValidTag(e.Tag) {
			return nil, malformed(fmt.Sprintf("invalid table tag %q", e.Tag))
		}
		if seen[e.Tag] {
			return nil, malformed(fmt.Sprintf("duplicate table %q", e.Tag))
		}
		seen[e.Tag] = true
		if e.CompLength > e.OrigLength {
			return nil, malformed(fmt.Sprintf("table %q: compLength > origLength", e.Tag))
		}
		if err := checkBlock(e.Offset, e.CompLength, dirEnd, len(data)); err != nil {
			return nil, err
		}
		sfntSize += 4 * ((uint64(e.OrigLength) + 3) / 4)

		info.Tables = append(info.Tables, e)
	}
	if sfntSize != uint64(info.TotalSfntSize) {
		return nil, malformed(fmt.Sprintf("totalSfntSize %d, expected %d", info.TotalSfntSize, sfntSize))
	}

	return info, nil
}

func checkBlock(offset, length uint32, start, end int) error {
	if length == 0 {
		return nil
	}
	if int64(offset) < int64(start) || uint64(offset)+uint64(length) > uint64(end) {
		return malformed("data block outside of file")
	}
	return nil
}

// Decode extracts the font from a WOFF file.
func Decode(data []byte) (*webfont.Font, error) {
	info, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if info.Flavor == 0x74746366 { // "ttcf"
		return nil, &parser.NotSupportedError{
			SubSystem: "woff",
			Feature:   "font collections",
		}
	}

	tables := make([]*webfont.Table, 0, len(info.Tables))
	for _, e := range info.Tables {
		stored := data[e.Offset : e.Offset+e.CompLength]
		body := bytes.Clone(stored)
		if e.IsCompressed() {
			body, err = inflate(stored, e.OrigLength)
			if err != nil {
				return nil, fmt.Errorf("woff: table %q: %w", e.Tag, err)
			}
		}

		t := webfont.NewTable(e.Tag, body)
		if t.CheckSum != e.OrigChecksum {
			tracer().Debugf("woff: table %q: checksum 0x%08X, expected 0x%08X",
				e.Tag, e.OrigChecksum, t.CheckSum)
		}
		tables = append(tables, t)
	}

	return webfont.New(info.Flavor, tables...)
}

func inflate(stored []byte, origLength uint32) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(stored))
	if err != nil {
		return nil, malformed("invalid zlib stream")
	}
	defer r.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, int64(origLength)+1))
	if err != nil {
		return nil, malformed("invalid zlib stream")
	}
	if n != int64(origLength) {
		return nil, malformed(fmt.Sprintf("inflated to %d bytes, expected %d", n, origLength))
	}
	return buf.Bytes(), nil
}

// ToSFNT converts a WOFF file into an sfnt file.
func ToSFNT(data []byte) ([]byte, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return f.Encode()
}

func malformed(reason string) error {
	return &parser.InvalidFontError{
		SubSystem: "woff",
		Reason:    reason,
	}
}
