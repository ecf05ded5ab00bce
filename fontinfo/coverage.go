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
	"sort"
	"unicode"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/webfont"
)

// Coverage describes how many code points of a group of characters are
// mapped by a font.
type Coverage struct {
	Name string

	// Count is the number of code points mapped to a glyph other than
	// ".notdef".
	Count int

	// Total is the number of code points in the group, or -1 if the
	// group has no fixed size.
	Total int
}

// BlockCoverage returns the coverage of every Unicode block, in the order
// of [UnicodeBlocks].
func BlockCoverage(f *webfont.Font) ([]Coverage, error) {
	chars, err := mappedChars(f)
	if err != nil {
		return nil, err
	}

	res := make([]Coverage, len(UnicodeBlocks))
	for i, b := range UnicodeBlocks {
		res[i] = Coverage{Name: b.Name, Total: b.Size()}
	}
	for _, m := range chars {
		i := sort.Search(len(UnicodeBlocks), func(i int) bool {
			return UnicodeBlocks[i].High >= m.r
		})
		if i < len(UnicodeBlocks) && UnicodeBlocks[i].Low <= m.r {
			res[i].Count++
		}
	}
	return res, nil
}

// Blocks lists the Unicode blocks which contain at least one mapped
// character.
func Blocks(f *webfont.Font) (*Report, error) {
	cov, err := BlockCoverage(f)
	if err != nil {
		return nil, err
	}
	t := coverageTable("Unicode block coverage", "Block", cov)
	return &Report{
		Name:   string(QueryBlocks),
		Tables: []*Table{t},
	}, nil
}

// unknownScript is the name used for characters which belong to no script.
const unknownScript = "Unknown"

var scriptNames = func() []string {
	names := make([]string, 0, len(unicode.Scripts))
	for name := range unicode.Scripts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}()

// ScriptCoverage returns the coverage of every Unicode script, sorted by
// script name.  The last entry counts the mapped characters which belong
// to no script.
func ScriptCoverage(f *webfont.Font) ([]Coverage, error) {
	chars, err := mappedChars(f)
	if err != nil {
		return nil, err
	}

	res := make([]Coverage, len(scriptNames)+1)
	for i, name := range scriptNames {
		res[i] = Coverage{Name: name, Total: rangeSize(unicode.Scripts[name])}
	}
	unknown := &res[len(scriptNames)]
	*unknown = Coverage{Name: unknownScript, Total: -1}

charLoop:
	for _, m := range chars {
		for i, name := range scriptNames {
			if unicode.Is(unicode.Scripts[name], m.r) {
				res[i].Count++
				continue charLoop
			}
		}
		unknown.Count++
	}
	return res, nil
}

// Scripts lists the Unicode scripts which contain at least one mapped
// character.
func Scripts(f *webfont.Font) (*Report, error) {
	cov, err := ScriptCoverage(f)
	if err != nil {
		return nil, err
	}
	t := coverageTable("Unicode script coverage", "Script", cov)
	return &Report{
		Name:   string(QueryScripts),
		Tables: []*Table{t},
	}, nil
}

func coverageTable(title, column string, cov []Coverage) *Table {
	t := &Table{
		Title:  title,
		Header: []string{column, "Covered", "Total", "Coverage"},
	}
	for _, c := range cov {
		if c.Count == 0 {
			continue
		}
		total := "-"
		if c.Total >= 0 {
			total = itoa(c.Total)
		}
		t.addRow(c.Name, itoa(c.Count), total, percent(c.Count, c.Total))
	}
	return t
}

// rangeSize returns the number of code points in a range table.
func rangeSize(tab *unicode.RangeTable) int {
	n := 0
	for _, r := range tab.R16 {
		n += int((r.Hi-r.Lo)/r.Stride) + 1
	}
	for _, r := range tab.R32 {
		n += int((r.Hi-r.Lo)/r.Stride) + 1
	}
	return n
}
