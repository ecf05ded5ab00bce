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
	"bytes"
	"io"

	"seehuhn.de/go/webfont/header"
)

// tableMap returns the table data in the form used by the header
// package.  Empty tables are kept.
func (f *Font) tableMap() map[string][]byte {
	tables := make(map[string][]byte, len(f.tables))
	for _, t := range f.tables {
		data := t.data
		if data == nil {
			data = []byte{}
		}
		tables[t.Tag] = data
	}
	return tables
}

// Layout computes the binary layout of the font as an sfnt file.
func (f *Font) Layout() (*header.Layout, error) {
	return header.NewLayout(f.ScalerType, f.tableMap())
}

// Write writes the font as an sfnt file.
//
// The tables are written in the recommended order, with correct
// checksums and padding.  The font itself is not modified.
func (f *Font) Write(w io.Writer) (int64, error) {
	return header.Write(w, f.ScalerType, f.tableMap())
}

// Encode returns the font as an sfnt file.
func (f *Font) Encode() ([]byte, error) {
	l, err := f.Layout()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, l.Size()))
	_, err = l.WriteTo(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
