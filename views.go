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

package webfont

import (
	"seehuhn.de/go/webfont/cmap"
	"seehuhn.de/go/webfont/glyf"
	"seehuhn.de/go/webfont/head"
	"seehuhn.de/go/webfont/hmtx"
	"seehuhn.de/go/webfont/maxp"
	"seehuhn.de/go/webfont/name"
	"seehuhn.de/go/webfont/os2"
)

func (f *Font) tableData(tag string) ([]byte, error) {
	t, ok := f.Table(tag)
	if !ok {
		return nil, &MissingTableError{Tag: tag}
	}
	return t.data, nil
}

// Head decodes the "head" table.
func (f *Font) Head() (*head.Info, error) {
	data, err := f.tableData("head")
	if err != nil {
		return nil, err
	}
	return head.Decode(data)
}

// Maxp decodes the "maxp" table.
func (f *Font) Maxp() (*maxp.Info, error) {
	data, err := f.tableData("maxp")
	if err != nil {
		return nil, err
	}
	return maxp.Decode(data)
}

// NumGlyphs returns the number of glyphs, as given in the "maxp" table.
func (f *Font) NumGlyphs() (int, error) {
	info, err := f.Maxp()
	if err != nil {
		return 0, err
	}
	return info.NumGlyphs, nil
}

// HMetrics decodes the "hhea" and "hmtx" tables.
func (f *Font) HMetrics() (*hmtx.Info, error) {
	hheaData, err := f.tableData("hhea")
	if err != nil {
		return nil, err
	}
	hmtxData, err := f.tableData("hmtx")
	if err != nil {
		return nil, err
	}
	numGlyphs, err := f.NumGlyphs()
	if err != nil {
		return nil, err
	}
	return hmtx.Decode(hheaData, hmtxData, numGlyphs)
}

// Names decodes the "name" table.
func (f *Font) Names() (*name.Info, error) {
	data, err := f.tableData("name")
	if err != nil {
		return nil, err
	}
	return name.Decode(data)
}

// CMap decodes the "cmap" table.
func (f *Font) CMap() (cmap.Table, error) {
	data, err := f.tableData("cmap")
	if err != nil {
		return nil, err
	}
	return cmap.Decode(data)
}

// OS2 decodes the "OS/2" table.
func (f *Font) OS2() (*os2.Info, error) {
	data, err := f.tableData("OS/2")
	if err != nil {
		return nil, err
	}
	return os2.Decode(data)
}

// Glyphs decodes the TrueType glyph outlines from the "glyf" and "loca"
// tables.
func (f *Font) Glyphs() (glyf.Glyphs, error) {
	headInfo, err := f.Head()
	if err != nil {
		return nil, err
	}
	numGlyphs, err := f.NumGlyphs()
	if err != nil {
		return nil, err
	}
	glyfData, err := f.tableData("glyf")
	if err != nil {
		return nil, err
	}
	locaData, err := f.tableData("loca")
	if err != nil {
		return nil, err
	}
	enc := &glyf.Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: headInfo.IndexToLocFormat,
	}
	return glyf.Decode(enc, numGlyphs)
}
