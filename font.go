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

// Package webfont holds an in-memory model of an sfnt font file
// (TrueType or OpenType), as used by the EOT and WOFF container
// encoders in the sub-packages.
//
// A Font is an ordered list of tables.  Tables are kept as raw bytes;
// structured views of the most important tables are decoded on demand
// by the methods [Font.Head], [Font.HMetrics], [Font.Maxp], [Font.Names],
// [Font.CMap], [Font.Glyphs] and [Font.OS2].
//
// Fonts are immutable.  Operations like [Font.Strip] return a new Font
// which shares the table data with the original.
package webfont

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/webfont/header"
	"seehuhn.de/go/webfont/parser"
)

// tracer traces with key 'webfont'.
func tracer() tracing.Trace {
	return tracing.Select("webfont")
}

// Font is a TrueType or OpenType font, represented as a list of tables.
type Font struct {
	// ScalerType is the sfnt version from the file header.
	ScalerType uint32

	tables []*Table
}

// Table is one entry of the table directory of a font.
type Table struct {
	Tag      string
	CheckSum uint32
	Offset   uint32
	Length   uint32

	data []byte
}

// NewTable returns a table with the given tag and data.  The checksum is
// computed from the data, the offset is zero.
func NewTable(tag string, data []byte) *Table {
	sum := header.Checksum(data)
	if tag == "head" {
		sum = header.HeadChecksum(data)
	}
	return &Table{
		Tag:      tag,
		CheckSum: sum,
		Length:   uint32(len(data)),
		data:     data,
	}
}

// Data returns the contents of the table.
// The returned slice must not be modified.
func (t *Table) Data() []byte {
	return t.data
}

// New creates a font from the given tables.
// The tables are used in the given order.
func New(scalerType uint32, tables ...*Table) (*Font, error) {
	seen := make(map[string]bool, len(tables))
	for _, t := range tables {
		if !parser.IsValidTag(t.Tag) {
			return nil, fmt.Errorf("webfont: invalid table tag %q", t.Tag)
		}
		if seen[t.Tag] {
			return nil, fmt.Errorf("webfont: duplicate table %q", t.Tag)
		}
		if int(t.Length) != len(t.data) {
			return nil, fmt.Errorf("webfont: wrong length for table %q", t.Tag)
		}
		seen[t.Tag] = true
	}
	f := &Font{
		ScalerType: scalerType,
		tables:     slices.Clone(tables),
	}
	return f, nil
}

// Read decodes an sfnt file.
//
// The data is copied, the returned font does not refer to the
// memory of the data argument.
func Read(data []byte) (*Font, error) {
	info, err := header.Read(data)
	if err != nil {
		return nil, err
	}

	data = bytes.Clone(data)
	f := &Font{
		ScalerType: info.ScalerType,
		tables:     make([]*Table, 0, len(info.Order)),
	}
	for _, tag := range info.Order {
		body, err := info.TableData(data, tag)
		if err != nil {
			return nil, err
		}
		rec := info.Toc[tag]

		sum := header.Checksum(body)
		if tag == "head" {
			sum = header.HeadChecksum(body)
		}
		if sum != rec.CheckSum {
			tracer().Debugf("table %q: checksum 0x%08X, expected 0x%08X",
				tag, rec.CheckSum, sum)
		}

		f.tables = append(f.tables, &Table{
			Tag:      tag,
			CheckSum: rec.CheckSum,
			Offset:   rec.Offset,
			Length:   rec.Length,
			data:     body,
		})
	}
	return f, nil
}

// Tables returns the tables of the font, in directory order.
func (f *Font) Tables() []*Table {
	return slices.Clone(f.tables)
}

// Tags returns the table tags, in directory order.
func (f *Font) Tags() []string {
	tags := make([]string, len(f.tables))
	for i, t := range f.tables {
		tags[i] = t.Tag
	}
	return tags
}

// NumTables returns the number of tables in the font.
func (f *Font) NumTables() int {
	return len(f.tables)
}

// Table returns the table with the given tag.
func (f *Font) Table(tag string) (*Table, bool) {
	for _, t := range f.tables {
		if t.Tag == tag {
			return t, true
		}
	}
	return nil, false
}

// Has returns true if all of the given tables are present.
func (f *Font) Has(tags ...string) bool {
	for _, tag := range tags {
		if _, ok := f.Table(tag); !ok {
			return false
		}
	}
	return true
}

// IsCFF returns true if the font contains CFF glyph outlines.
func (f *Font) IsCFF() bool {
	return f.ScalerType == header.ScalerTypeCFF
}

// IsGlyf returns true if the font contains TrueType glyph outlines.
func (f *Font) IsGlyf() bool {
	return f.Has("glyf", "loca")
}

// Equal reports whether two fonts contain the same tables.
//
// The checksum adjustment field of the "head" table as well as the
// offsets and checksums in the table directory are ignored.
func Equal(a, b *Font) bool {
	if a.ScalerType != b.ScalerType || len(a.tables) != len(b.tables) {
		return false
	}
	for _, ta := range a.tables {
		tb, ok := b.Table(ta.Tag)
		if !ok {
			return false
		}
		da, db := ta.data, tb.data
		if ta.Tag == "head" && len(da) >= 12 && len(db) >= 12 {
			if !bytes.Equal(da[:8], db[:8]) {
				return false
			}
			da, db = da[12:], db[12:]
		}
		if !bytes.Equal(da, db) {
			return false
		}
	}
	return true
}

// MissingTableError indicates that a table required for an operation is
// not present in a font.
type MissingTableError struct {
	Tag string
}

func (err *MissingTableError) Error() string {
	return "webfont: missing " + err.Tag + " table"
}
