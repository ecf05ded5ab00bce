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

package header

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/webfont/parser"
)

// Layout is the fully computed binary form of an sfnt file.
//
// A Layout is built in two passes: first the table records, checksums and
// offsets are computed, with the checksum adjustment in the "head" table
// cleared.  Then the checksum of the whole file is used to patch a private
// copy of the "head" table.  The tables passed to NewLayout are never
// modified.
type Layout struct {
	ScalerType uint32

	// Records contains the table directory, sorted by tag.
	Records []Record

	// CheckSumAdjustment is the value stored in the "head" table.
	// This is zero if the font has no "head" table.
	CheckSumAdjustment uint32

	order  []string // physical order of the table data
	tables map[string][]byte
	header []byte
	size   int64
}

// NewLayout computes the binary layout of an sfnt file which contains
// the given tables.  Tables where the data is nil are omitted, use a
// zero-length slice for a table with no data.
func NewLayout(scalerType uint32, tables map[string][]byte) (*Layout, error) {
	tableNames := make([]string, 0, len(tables))
	for name, data := range tables {
		if data == nil {
			continue
		}
		if !parser.IsValidTag(name) {
			return nil, fmt.Errorf("webfont/header: invalid table tag %q", name)
		}
		if uint64(len(data)) > math.MaxUint32-3 {
			return nil, fmt.Errorf("webfont/header: table %q too large", name)
		}
		tableNames = append(tableNames, name)
	}
	numTables := len(tableNames)
	if numTables > math.MaxUint16 {
		return nil, errors.New("webfont/header: too many tables")
	}

	// sort the table names in the recommended order
	slices.SortFunc(tableNames, func(a, b string) int {
		aPrio := ttTableOrder[a]
		bPrio := ttTableOrder[b]
		if aPrio != bPrio {
			return bPrio - aPrio
		}
		return cmp.Compare(a, b)
	})

	body := make(map[string][]byte, numTables)
	for _, name := range tableNames {
		body[name] = tables[name]
	}

	// pass 1: use a copy of "head" with the checksum adjustment cleared
	headData, hasHead := body["head"]
	if hasHead {
		if len(headData) < 12 {
			return nil, errors.New("webfont/header: head table too short")
		}
		headData = bytes.Clone(headData)
		clearChecksum(headData)
		body["head"] = headData
	}

	var totalSum uint32
	offset := uint64(12 + 16*numTables)
	records := make([]Record, numTables)
	for i, name := range tableNames {
		data := body[name]
		length := uint32(len(data))
		checksum := Checksum(data)

		if offset > math.MaxUint32 {
			return nil, errors.New("webfont/header: font too large")
		}
		records[i] = Record{
			Tag:      name,
			CheckSum: checksum,
			Offset:   uint32(offset),
			Length:   length,
		}

		totalSum += checksum
		offset += 4 * ((uint64(length) + 3) / 4)
	}
	if offset > math.MaxUint32 {
		return nil, errors.New("webfont/header: font too large")
	}
	slices.SortFunc(records, func(a, b Record) int {
		return cmp.Compare(a.Tag, b.Tag)
	})

	headerBytes := encodeDirectory(scalerType, records)
	totalSum += Checksum(headerBytes)

	// pass 2: set the final checksum in the copy of the "head" table
	var adjustment uint32
	if hasHead {
		adjustment = patchChecksum(headData, totalSum)
	}

	l := &Layout{
		ScalerType:         scalerType,
		Records:            records,
		CheckSumAdjustment: adjustment,
		order:              tableNames,
		tables:             body,
		header:             headerBytes,
		size:               int64(offset),
	}
	return l, nil
}

// Table returns the encoded data of the named table.  For the "head"
// table, this includes the patched checksum adjustment.
// The returned slice must not be modified.
func (l *Layout) Table(name string) []byte {
	return l.tables[name]
}

// Size returns the total size of the sfnt file in bytes.
func (l *Layout) Size() int64 {
	return l.size
}

// WriteTo writes the sfnt file to w.
func (l *Layout) WriteTo(w io.Writer) (int64, error) {
	var totalSize int64
	n, err := w.Write(l.header)
	totalSize += int64(n)
	if err != nil {
		return totalSize, err
	}
	var pad [3]byte
	for _, name := range l.order {
		body := l.tables[name]
		n, err := w.Write(body)
		totalSize += int64(n)
		if err != nil {
			return totalSize, err
		}
		if k := n % 4; k != 0 {
			n, err := w.Write(pad[:4-k])
			totalSize += int64(n)
			if err != nil {
				return totalSize, err
			}
		}
	}
	return totalSize, nil
}

// Bytes returns the complete sfnt file.
func (l *Layout) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, l.size))
	_, _ = l.WriteTo(buf)
	return buf.Bytes()
}

// Write writes an sfnt file containing the given tables.
// Tables where the data is nil are not written, use a zero-length slice
// to write a table with no data.
func Write(w io.Writer, scalerType uint32, tables map[string][]byte) (int64, error) {
	l, err := NewLayout(scalerType, tables)
	if err != nil {
		return 0, err
	}
	return l.WriteTo(w)
}

// Checksum computes the additive checksum of a table.  The data is
// treated as if it was zero-padded to a multiple of four bytes.
func Checksum(data []byte) uint32 {
	var sum uint32
	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i : i+4])
	}
	if n < len(data) {
		var last [4]byte
		copy(last[:], data[n:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

// HeadChecksum computes the checksum of a "head" table, treating the
// checksum adjustment field as zero.
func HeadChecksum(head []byte) uint32 {
	sum := Checksum(head)
	if len(head) >= 12 {
		sum -= binary.BigEndian.Uint32(head[8:12])
	}
	return sum
}

func encodeDirectory(scalerType uint32, records []Record) []byte {
	numTables := len(records)
	searchRange, entrySelector, rangeShift := searchParams(numTables)

	buf := make([]byte, 0, 12+16*numTables)
	buf = binary.BigEndian.AppendUint32(buf, scalerType)
	buf = binary.BigEndian.AppendUint16(buf, uint16(numTables))
	buf = binary.BigEndian.AppendUint16(buf, searchRange)
	buf = binary.BigEndian.AppendUint16(buf, entrySelector)
	buf = binary.BigEndian.AppendUint16(buf, rangeShift)
	for _, rec := range records {
		buf = append(buf, rec.Tag...)
		buf = binary.BigEndian.AppendUint32(buf, rec.CheckSum)
		buf = binary.BigEndian.AppendUint32(buf, rec.Offset)
		buf = binary.BigEndian.AppendUint32(buf, rec.Length)
	}
	return buf
}

// searchParams computes the binary search fields of the table directory.
// The values are clamped to the uint16 range, which matters only for
// directories with more than 4095 tables.
func searchParams(numTables int) (searchRange, entrySelector, rangeShift uint16) {
	if numTables <= 0 {
		return 0, 0, 0
	}
	sel := bits.Len(uint(numTables)) - 1
	sr := 16 << sel
	return clampUint16(sr), uint16(sel), clampUint16(16*numTables - sr)
}

func clampUint16(x int) uint16 {
	return uint16(min(max(x, 0), math.MaxUint16))
}

// clearChecksum zeros the checksum field of the head table.
func clearChecksum(head []byte) {
	binary.BigEndian.PutUint32(head[8:12], 0)
}

// patchChecksum updates the checksum of the head table.
// The argument is the checksum of the entire font before patching.
func patchChecksum(head []byte, checksum uint32) uint32 {
	adjustment := 0xB1B0AFBA - checksum
	binary.BigEndian.PutUint32(head[8:12], adjustment)
	return adjustment
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/recom#optimized-table-ordering
var ttTableOrder = map[string]int{
	"head": 95,
	"hhea": 90,
	"maxp": 85,
	"OS/2": 80,
	"hmtx": 75,
	"LTSH": 70,
	"VDMX": 65,
	"hdmx": 60,
	"cmap": 55,
	"fpgm": 50,
	"prep": 45,
	"cvt ": 40,
	"loca": 35,
	"glyf": 30,
	"CFF ": 30,
	"kern": 25,
	"name": 20,
	"post": 15,
	"gasp": 10,
	"DSIG": 5,
}
