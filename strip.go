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

// HintingTables lists the tables which contain hinting information.
// These can be removed from a font without affecting the glyph outlines.
var HintingTables = []string{"fpgm", "prep", "cvt ", "hdmx", "VDMX", "LTSH", "DSIG"}

// Strip returns a copy of the font with the given tables removed.
// Tags which are not present in the font are ignored.
//
// The remaining tables are shared between the two fonts.
func (f *Font) Strip(tags ...string) *Font {
	remove := make(map[string]bool, len(tags))
	for _, tag := range tags {
		remove[tag] = true
	}

	res := &Font{
		ScalerType: f.ScalerType,
		tables:     make([]*Table, 0, len(f.tables)),
	}
	for _, t := range f.tables {
		if remove[t.Tag] {
			continue
		}
		res.tables = append(res.tables, t)
	}
	return res
}

// WithTable returns a copy of the font where the data of the given table
// is replaced.  If the font has no such table, the new table is appended
// at the end of the table list.
func (f *Font) WithTable(tag string, data []byte) *Font {
	res := &Font{
		ScalerType: f.ScalerType,
		tables:     make([]*Table, 0, len(f.tables)+1),
	}
	replaced := false
	for _, t := range f.tables {
		if t.Tag == tag {
			t = NewTable(tag, data)
			replaced = true
		}
		res.tables = append(res.tables, t)
	}
	if !replaced {
		res.tables = append(res.tables, NewTable(tag, data))
	}
	return res
}
