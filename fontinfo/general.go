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

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/header"
	"seehuhn.de/go/webfont/name"
)

// SfntVersion returns a description of the sfnt version of a font.
func SfntVersion(f *webfont.Font) string {
	switch f.ScalerType {
	case header.ScalerTypeTrueType:
		return "1.0 (TrueType)"
	case header.ScalerTypeCFF:
		return "OTTO (CFF)"
	case header.ScalerTypeApple:
		return "true (Apple TrueType)"
	case header.ScalerTypeType1:
		return "typ1 (PostScript Type 1)"
	default:
		return fmt.Sprintf("0x%08X", f.ScalerType)
	}
}

// FontVersion returns the version string from the "name" table,
// or "Unknown" if the font has no version string.
func FontVersion(f *webfont.Font) string {
	names, _ := f.Names()
	if v := names.Lookup(name.Version); v != "" {
		return v
	}
	return "Unknown"
}

// General lists the sfnt version and the table directory of a font.
func General(f *webfont.Font) (*Report, error) {
	tables := &Table{
		Title:  "Font Tables",
		Header: []string{"Tag", "Checksum", "Offset", "Length"},
	}
	tables.addNote("sfnt version: %s", SfntVersion(f))
	tables.addNote("Font version: %s", FontVersion(f))
	for _, t := range f.Tables() {
		tables.addRow(t.Tag, fmt.Sprintf("0x%08X", t.CheckSum), itoa(t.Offset), itoa(t.Length))
	}

	return &Report{
		Name:   string(QueryGeneral),
		Tables: []*Table{tables},
	}, nil
}
