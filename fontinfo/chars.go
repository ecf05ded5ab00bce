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
	"fmt"

	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/webfont"
)

// Chars lists all characters mapped by the best Unicode cmap subtable,
// together with their glyph IDs and Unicode names.
func Chars(f *webfont.Font) (*Report, error) {
	chars, err := mappedChars(f)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Title:  "Characters with valid glyphs",
		Header: []string{"Code point", "Glyph ID", "Unicode name"},
	}
	t.addNote("Total number of characters with valid glyphs: %d", len(chars))
	for _, m := range chars {
		t.addRow(fmt.Sprintf("U+%04X", m.r), itoa(m.gid), runenames.Name(m.r))
	}

	return &Report{
		Name:   string(QueryChars),
		Tables: []*Table{t},
	}, nil
}
