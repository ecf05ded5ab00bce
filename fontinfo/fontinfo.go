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

// Package fontinfo computes reports about the structure and contents of
// a font: the table directory, metrics, character mappings, Unicode
// coverage, glyph usage and name records.
//
// All reports are computed from a [webfont.Font] and are independent of
// each other.
package fontinfo

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/glyph"
)

// Report is the result of a query.
type Report struct {
	Name   string
	Tables []*Table
}

// Table is a section of a report, consisting of notes and tabular data.
type Table struct {
	Title  string
	Notes  []string
	Header []string
	Rows   [][]string
}

func (t *Table) addRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) addNote(format string, a ...any) {
	t.Notes = append(t.Notes, fmt.Sprintf(format, a...))
}

// Query selects a report.
type Query string

// The available queries.
const (
	QueryGeneral Query = "general"
	QueryMetrics Query = "metrics"
	QueryCmap    Query = "cmap"
	QueryBlocks  Query = "blocks"
	QueryScripts Query = "scripts"
	QueryChars   Query = "chars"
	QueryGlyphs  Query = "glyphs"
	QueryNames   Query = "names"
)

// Queries lists all queries, in the order reports are usually shown.
var Queries = []Query{
	QueryGeneral, QueryMetrics, QueryCmap, QueryBlocks,
	QueryScripts, QueryChars, QueryGlyphs, QueryNames,
}

var queryAliases = map[string]Query{
	"cmaps": QueryCmap,
	"char":  QueryChars,
}

// ParseQuery converts a string into a query.
// Names are case insensitive.
func ParseQuery(s string) (Query, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if q := Query(s); slices.Contains(Queries, q) {
		return q, nil
	}
	if q, ok := queryAliases[s]; ok {
		return q, nil
	}
	return "", fmt.Errorf("fontinfo: unknown query %q", s)
}

// Run computes the report for the given query.
func Run(f *webfont.Font, q Query) (*Report, error) {
	switch q {
	case QueryGeneral:
		return General(f)
	case QueryMetrics:
		return Metrics(f)
	case QueryCmap:
		return CMaps(f)
	case QueryBlocks:
		return Blocks(f)
	case QueryScripts:
		return Scripts(f)
	case QueryChars:
		return Chars(f)
	case QueryGlyphs:
		return Glyphs(f)
	case QueryNames:
		return Names(f)
	default:
		return nil, fmt.Errorf("fontinfo: unknown query %q", q)
	}
}

// mapping is a character code point together with its glyph.
type mapping struct {
	r   rune
	gid glyph.ID
}

// mappedChars returns the characters mapped by the best Unicode cmap
// subtable, sorted by code point.  Characters mapped to glyph 0 are
// omitted.
func mappedChars(f *webfont.Font) ([]mapping, error) {
	table, err := f.CMap()
	if err != nil {
		return nil, err
	}
	sub, _, err := table.GetBest()
	if err != nil {
		return nil, err
	}
	var res []mapping
	for r, gid := range sub.All() {
		if gid != 0 {
			res = append(res, mapping{r, gid})
		}
	}
	slices.SortFunc(res, func(a, b mapping) int {
		return int(a.r) - int(b.r)
	})
	return res, nil
}

func itoa[T ~int | ~int16 | ~uint16 | ~uint32](x T) string {
	return strconv.FormatInt(int64(x), 10)
}

func percent(n, total int) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(n)/float64(total))
}
