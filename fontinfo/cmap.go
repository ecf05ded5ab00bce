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

package fontinfo

import (
	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/cmap"
)

// CMaps lists the subtables of the "cmap" table.
func CMaps(f *webfont.Font) (*Report, error) {
	table, err := f.CMap()
	if err != nil {
		return nil, err
	}

	t := &Table{
		Title:  "Cmaps in the font",
		Header: []string{"Platform ID", "Encoding ID", "Language", "Format", "Number of chars"},
	}
	for _, key := range table.Keys() {
		count := "-"
		if sub, err := table.Get(key); err == nil {
			count = itoa(cmap.Count(sub))
		}
		t.addRow(itoa(key.PlatformID), itoa(key.EncodingID), itoa(key.Language),
			itoa(table.Format(key)), count)
	}

	return &Report{
		Name:   string(QueryCmap),
		Tables: []*Table{t},
	}, nil
}
