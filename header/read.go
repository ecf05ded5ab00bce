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

// Package header reads and writes the table directory of an sfnt file.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otff#organization-of-an-opentype-font
package header

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/webfont/parser"
)

// Scaler types (sfnt versions) recognised in the file header.
const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeCFF      = 0x4F54544F // "OTTO"
	ScalerTypeApple    = 0x74727565 // "true"
	ScalerTypeType1    = 0x74797031 // "typ1"

	scalerTypeCollection = 0x74746366 // "ttcf"
	scalerTypeWOFF       = 0x774F4646 // "wOFF"
	scalerTypeWOFF2      = 0x774F4632 // "wOF2"
)

// Info describes the table directory of an sfnt file.
type Info struct {
	ScalerType uint32

	// Toc maps table tags to directory records.
	Toc map[string]Record

	// Order lists the table tags in the order of the table directory.
	Order []string
}

// Record is one entry of the table directory.
type Record struct {
	Tag      string
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

// Read decodes and validates the table directory at the start of data.
//
// Structural problems are reported as *parser.InvalidFontError.
// Recognised containers which are not plain sfnt files (font collections,
// WOFF and WOFF2 files) are reported as *parser.NotSupportedError.
func Read(data []byte) (*Info, error) {
	p := parser.New("", data)
	if len(data) < 12 {
		return nil, errNoHeader
	}

	scalerType, _ := p.ReadUint32()
	switch scalerType {
	case ScalerTypeTrueType, ScalerTypeCFF, ScalerTypeApple, ScalerTypeType1:
		// pass
	case scalerTypeCollection:
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/header",
			Feature:   "font collections",
		}
	case scalerTypeWOFF, scalerTypeWOFF2:
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/header",
			Feature:   "WOFF input",
		}
	default:
		return nil, &parser.InvalidFontError{
			SubSystem: "webfont/header",
			Reason:    fmt.Sprintf("unknown scaler type 0x%08x", scalerType),
		}
	}

	numTables, _ := p.ReadUint16()
	_ = p.Discard(6) // searchRange, entrySelector, rangeShift
	if 12+16*int(numTables) > len(data) {
		return nil, &parser.InvalidFontError{
			SubSystem: "webfont/header",
			Reason:    fmt.Sprintf("%d tables do not fit into %d bytes", numTables, len(data)),
		}
	}

	info := &Info{
		ScalerType: scalerType,
		Toc:        make(map[string]Record, numTables),
		Order:      make([]string, 0, numTables),
	}
	for i := 0; i < int(numTables); i++ {
		var rec Record
		rec.Tag, _ = p.ReadTag()
		rec.CheckSum, _ = p.ReadUint32()
		rec.Offset, _ = p.ReadUint32()
		rec.Length, _ = p.ReadUint32()

		if !parser.IsValidTag(rec.Tag) {
			return nil, &parser.InvalidFontError{
				SubSystem: "webfont/header",
				Reason:    fmt.Sprintf("invalid table tag %q", rec.Tag),
			}
		}
		if _, seen := info.Toc[rec.Tag]; seen {
			return nil, &parser.InvalidFontError{
				SubSystem: "webfont/header",
				Reason:    fmt.Sprintf("duplicate table %q", rec.Tag),
			}
		}
		if uint64(rec.Offset)+uint64(rec.Length) > uint64(len(data)) {
			return nil, &parser.InvalidFontError{
				SubSystem: "webfont/header",
				Reason:    fmt.Sprintf("table %q extends beyond end of file", rec.Tag),
			}
		}
		if rec.Length > 0 && rec.Offset < uint32(12+16*int(numTables)) {
			return nil, &parser.InvalidFontError{
				SubSystem: "webfont/header",
				Reason:    fmt.Sprintf("table %q overlaps the table directory", rec.Tag),
			}
		}

		info.Toc[rec.Tag] = rec
		info.Order = append(info.Order, rec.Tag)
	}

	err := info.checkOverlap()
	if err != nil {
		return nil, err
	}

	return info, nil
}

// checkOverlap verifies that the tables are either disjoint or share
// exactly the same byte range.  Some fonts use the same data for two
// tables, e.g. for "EBDT" and "bdat".
func (info *Info) checkOverlap() error {
	recs := make([]Record, 0, len(info.Toc))
	for _, rec := range info.Toc {
		if rec.Length > 0 {
			recs = append(recs, rec)
		}
	}
	slices.SortFunc(recs, func(a, b Record) int {
		if a.Offset != b.Offset {
			return cmp.Compare(a.Offset, b.Offset)
		}
		if a.Length != b.Length {
			return cmp.Compare(a.Length, b.Length)
		}
		return cmp.Compare(a.Tag, b.Tag)
	})

	for i := 1; i < len(recs); i++ {
		prev := recs[i-1]
		rec := recs[i]
		if rec.Offset == prev.Offset && rec.Length == prev.Length {
			continue
		}
		if uint64(rec.Offset) < uint64(prev.Offset)+uint64(prev.Length) {
			return &parser.InvalidFontError{
				SubSystem: "webfont/header",
				Reason:    fmt.Sprintf("tables %q and %q overlap", prev.Tag, rec.Tag),
			}
		}
	}
	return nil
}

// Has returns true if all of the named tables are present in the font.
func (info *Info) Has(tableNames ...string) bool {
	for _, name := range tableNames {
		if _, ok := info.Toc[name]; !ok {
			return false
		}
	}
	return true
}

// TableData returns the bytes of the named table.
// The returned slice points into data.
func (info *Info) TableData(data []byte, tableName string) ([]byte, error) {
	rec, ok := info.Toc[tableName]
	if !ok {
		return nil, &ErrMissing{TableName: tableName}
	}
	end := uint64(rec.Offset) + uint64(rec.Length)
	if end > uint64(len(data)) {
		return nil, &parser.InvalidFontError{
			SubSystem: "webfont/header",
			Reason:    fmt.Sprintf("table %q extends beyond end of file", tableName),
		}
	}
	return data[rec.Offset:end:end], nil
}

// ErrMissing indicates that a required table is missing from a font file.
type ErrMissing struct {
	TableName string
}

func (err *ErrMissing) Error() string {
	return "webfont/header: missing " + err.TableName + " table"
}

var errNoHeader = &parser.InvalidFontError{
	SubSystem: "webfont/header",
	Reason:    "file too short for an sfnt header",
}
