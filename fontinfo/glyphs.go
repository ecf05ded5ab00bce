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
	"golang.org/x/exp/slices"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/glyf"
	"seehuhn.de/go/webfont/glyph"
)

// GlyphStats summarises how the glyphs of a font are used.
type GlyphStats struct {
	NumGlyphs int

	// HintingSize is the total size of the hinting tables and the glyph
	// instructions, in bytes.
	HintingSize int

	// Unmapped lists the glyphs which are not mapped by any cmap
	// subtable, in increasing order.
	Unmapped []glyph.ID

	// Subglyphs counts how often each glyph is used as a component of a
	// mapped composite glyph.  Nested components are included.
	Subglyphs map[glyph.ID]int
}

// AnalyseGlyphs computes glyph usage statistics for a font.
func AnalyseGlyphs(f *webfont.Font) (*GlyphStats, error) {
	numGlyphs, err := f.NumGlyphs()
	if err != nil {
		return nil, err
	}
	stats := &GlyphStats{
		NumGlyphs: numGlyphs,
		Subglyphs: make(map[glyph.ID]int),
	}

	for _, t := range f.Tables() {
		if webfont.KindOf(t.Tag) == webfont.KindHinting {
			stats.HintingSize += int(t.Length)
		}
	}

	var gg glyf.Glyphs
	if f.IsGlyf() {
		gg, err = f.Glyphs()
		if err != nil {
			return nil, err
		}
		for _, g := range gg {
			stats.HintingSize += g.InstructionLength()
		}
	}

	mapped, err := allMappedGlyphs(f)
	if err != nil {
		return nil, err
	}
	for gid := 0; gid < numGlyphs; gid++ {
		if !mapped[glyph.ID(gid)] {
			stats.Unmapped = append(stats.Unmapped, glyph.ID(gid))
		}
	}

	if gg != nil {
		for gid := range mapped {
			countSubglyphs(gg, gid, stats.Subglyphs, map[glyph.ID]bool{gid: true})
		}
	}

	return stats, nil
}

// countSubglyphs adds the components of glyph gid to freq, recursively.
// Components which are already on the current path are skipped.
func countSubglyphs(gg glyf.Glyphs, gid glyph.ID, freq map[glyph.ID]int, path map[glyph.ID]bool) {
	if len(path) > maxComponentDepth {
		return
	}
	for _, comp := range gg.Lookup(gid).Components() {
		if path[comp] {
			continue
		}
		freq[comp]++
		path[comp] = true
		countSubglyphs(gg, comp, freq, path)
		delete(path, comp)
	}
}

const maxComponentDepth = 32

// allMappedGlyphs returns the set of glyphs which are mapped by at least
// one cmap subtable.  Subtables which cannot be decoded are ignored.
func allMappedGlyphs(f *webfont.Font) (map[glyph.ID]bool, error) {
	table, err := f.CMap()
	if err != nil {
		return nil, err
	}
	res := make(map[glyph.ID]bool)
	for _, key := range table.Keys() {
		sub, err := table.Get(key)
		if err != nil {
			continue
		}
		for _, gid := range sub.All() {
			if gid != 0 {
				res[gid] = true
			}
		}
	}
	return res, nil
}

// Glyphs reports glyph metrics, the hinting size, the unmapped glyphs
// and the components used by mapped composite glyphs.
func Glyphs(f *webfont.Font) (*Report, error) {
	metrics, err := glyphMetrics(f)
	if err != nil {
		return nil, err
	}
	stats, err := AnalyseGlyphs(f)
	if err != nil {
		return nil, err
	}

	unmapped := &Table{
		Title:  "Unmapped glyphs",
		Header: []string{"Glyph ID"},
	}
	unmapped.addNote("Total hinting size: %d", stats.HintingSize)
	unmapped.addNote("Number of unmapped glyphs: %d / %d", len(stats.Unmapped), stats.NumGlyphs)
	for _, gid := range stats.Unmapped {
		unmapped.addRow(itoa(gid))
	}

	subglyphs := &Table{
		Title:  "Subglyphs used by characters in the font",
		Header: []string{"Glyph ID", "Frequency"},
	}
	gids := make([]glyph.ID, 0, len(stats.Subglyphs))
	for gid := range stats.Subglyphs {
		gids = append(gids, gid)
	}
	slices.Sort(gids)
	for _, gid := range gids {
		subglyphs.addRow(itoa(gid), itoa(stats.Subglyphs[gid]))
	}

	return &Report{
		Name:   string(QueryGlyphs),
		Tables: []*Table{metrics, unmapped, subglyphs},
	}, nil
}
