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
	"seehuhn.de/go/webfont/name"
)

var platformNames = map[uint16]string{
	name.PlatformUnicode:   "Unicode",
	name.PlatformMacintosh: "Macintosh",
	name.PlatformWindows:   "Windows",
}

// Names lists the decodable records of the "name" table.
func Names(f *webfont.Font) (*Report, error) {
	info, err := f.Names()
	if err != nil {
		return nil, err
	}

	t := &Table{
		Title:  "Name table entries",
		Header: []string{"Platform", "Encoding", "Language", "Name ID", "Value"},
	}
	skipped := 0
	for _, rec := range info.Records {
		value, ok := rec.Decode()
		if !ok {
			skipped++
			continue
		}

		platform, ok := platformNames[rec.PlatformID]
		if !ok {
			platform = itoa(rec.PlatformID)
		}
		lang := rec.Language().String()
		if lang == "und" {
			lang = fmt.Sprintf("0x%04X", rec.LanguageID)
		}
		t.addRow(platform, itoa(rec.EncodingID), lang, itoa(rec.NameID), value)
	}
	if skipped > 0 {
		t.addNote("%d records with unsupported encodings omitted", skipped)
	}

	return &Report{
		Name:   string(QueryNames),
		Tables: []*Table{t},
	}, nil
}
