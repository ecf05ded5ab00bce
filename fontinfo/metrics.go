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
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/webfont"
)

// Metrics lists the font-wide metrics and the extremes of the glyph
// metrics.
func Metrics(f *webfont.Font) (*Report, error) {
	headInfo, err := f.Head()
	if err != nil {
		return nil, err
	}
	hm, err := f.HMetrics()
	if err != nil {
		return nil, err
	}

	font := &Table{
		Title:  "Font Metrics",
		Header: []string{"Name", "Value"},
	}
	font.addRow("Units per em", itoa(headInfo.UnitsPerEm))
	font.addRow("Ascender", itoa(hm.Ascent))
	font.addRow("Descender", itoa(hm.Descent))
	font.addRow("Line gap", itoa(hm.LineGap))

	glyphs, err := glyphMetrics(f)
	if err != nil {
		return nil, err
	}

	return &Report{
		Name:   string(QueryMetrics),
		Tables: []*Table{font, glyphs},
	}, nil
}

// glyphMetrics lists the range of advance widths and the extremes of the
// glyph bounding boxes.  For fonts without TrueType outlines, the bounding
// box from the "head" table is used.
func glyphMetrics(f *webfont.Font) (*Table, error) {
	hm, err := f.HMetrics()
	if err != nil {
		return nil, err
	}
	minWidth, maxWidth := hm.WidthRange()

	var bbox funit.Rect16
	if f.IsGlyf() {
		gg, err := f.Glyphs()
		if err != nil {
			return nil, err
		}
		bbox = gg.BBox()
	} else {
		headInfo, err := f.Head()
		if err != nil {
			return nil, err
		}
		bbox = headInfo.FontBBox
	}

	t := &Table{
		Title:  "Glyph Metrics",
		Header: []string{"Name", "Value"},
	}
	t.addRow("Max advance width", itoa(maxWidth))
	t.addRow("Min advance width", itoa(minWidth))
	t.addRow("Max x", itoa(bbox.URx))
	t.addRow("Min x", itoa(bbox.LLx))
	t.addRow("Max y", itoa(bbox.URy))
	t.addRow("Min y", itoa(bbox.LLy))
	return t, nil
}
