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

// Package woff reads and writes WOFF 1.0 files.
//
// https://www.w3.org/TR/WOFF/
package woff

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/klauspost/compress/zlib"
	"github.com/npillmayer/schuko/tracing"

	"seehuhn.de/go/webfont"
)

// tracer traces with key 'webfont'.
func tracer() tracing.Trace {
	return tracing.Select("webfont")
}

const (
	signature       = 0x774F4646 // "wOFF"
	headerLength    = 44
	dirEntryLength  = 20
	sfntHeaderSize  = 12
	sfntRecordSize  = 16
	compressedLevel = zlib.BestCompression
)

// Encode converts a font into a WOFF file.
//
// Each table is compressed using zlib, if this reduces the size of the
// table.  The table checksums and the "head" table are taken from the
// sfnt encoding of the font, so that decoding the WOFF file gives a
// font with correct checksums.  No metadata or private data blocks are
// written.
func Encode(f *webfont.Font) ([]byte, error) {
	l, err := f.Layout()
	if err != nil {
		return nil, err
	}

	var major, minor uint16
	if headInfo, err := f.Head(); err == nil {
		major, minor = headInfo.RevisionParts()
	}

	numTables := len(l.Records)
	dir := make([]byte, 0, dirEntryLength*numTables)
	var body bytes.Buffer
	offset := uint64(headerLength + dirEntryLength*numTables)
	for _, rec := range l.Records {
		data := l.Table(rec.Tag)
		stored, compressed, err := chooseEncoding(data)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("woff: table %q: %d -> %d bytes, compressed=%t",
			rec.Tag, len(data), len(stored), compressed)

		dir = append(dir, rec.Tag...)
		dir = binary.BigEndian.AppendUint32(dir, uint32(offset))
		dir = binary.BigEndian.AppendUint32(dir, uint32(len(stored)))
		dir = binary.BigEndian.AppendUint32(dir, rec.Length)
		dir = binary.BigEndian.AppendUint32(dir, rec.CheckSum)

		body.Write(stored)
		padded := 4 * ((uint64(len(stored)) + 3) / 4)
		body.Write(make([]byte, padded-uint64(len(stored))))
		offset += padded
	}
	if offset > 0xFFFFFFFF {
		return nil, errors.New("woff: font too large")
	}

	buf := make([]byte, 0, offset)
	buf = binary.BigEndian.AppendUint32(buf, signature)
	buf = binary.BigEndian.AppendUint32(buf, l.ScalerType)
	buf = binary.BigEndian.AppendUint32(buf, uint32(offset))
	buf = binary.BigEndian.AppendUint16(buf, uint16(numTables))
	buf = binary.BigEndian.AppendUint16(buf, 0) // reserved
	buf = binary.BigEndian.AppendUint32(buf, uint32(l.Size()))
	buf = binary.BigEndian.AppendUint16(buf, major)
	buf = binary.BigEndian.AppendUint16(buf, minor)
	buf = append(buf, make([]byte, 20)...) // meta and private data blocks
	buf = append(buf, dir...)
	buf = append(buf, body.Bytes()...)

	return buf, nil
}

// chooseEncoding returns the data to store for a table.
// If the zlib compressed data is strictly shorter than the original,
// the compressed data is returned and compressed is true.  Otherwise
// the original data is returned.
func chooseEncoding(data []byte) (stored []byte, compressed bool, err error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, compressedLevel)
	if err != nil {
		return nil, false, err
	}
	_, err = w.Write(data)
	if err != nil {
		return nil, false, err
	}
	err = w.Close()
	if err != nil {
		return nil, false, err
	}

	if buf.Len() < len(data) {
		return buf.Bytes(), true, nil
	}
	return data, false, nil
}
