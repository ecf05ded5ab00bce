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

package glyf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/webfont/glyph"
)

func TestDecodeComposite(t *testing.T) {
	data := []byte{
		0x00, 0x22, 0x00, 0x05, 10, 20, // byte offsets
		0x01, 0x0B, 0x00, 0x07, 0x00, 0x01, 0x00, 0x02, 0x40, 0x00, // word offsets, scale
		0x00, 0x03, 0xAA, 0xBB, 0xCC, // instructions
	}
	comp, err := decodeGlyphComposite(data)
	if err != nil {
		t.Fatal(err)
	}
	want := &CompositeGlyph{
		Components: []GlyphComponent{
			{
				Flags:      FlagMoreComponents | FlagArgsAreXYValues,
				GlyphIndex: 5,
				Data:       []byte{10, 20},
			},
			{
				Flags:      FlagWeHaveInstructions | FlagWeHaveAScale | FlagArgsAreXYValues | FlagArg1And2AreWords,
				GlyphIndex: 7,
				Data:       []byte{0x00, 0x01, 0x00, 0x02, 0x40, 0x00},
			},
		},
		Instructions: []byte{0xAA, 0xBB, 0xCC},
	}
	if d := cmp.Diff(want, comp); d != "" {
		t.Error(d)
	}
}

func TestIncompleteComposite(t *testing.T) {
	for i, data := range [][]byte{
		{},
		{0x00, 0x20, 0x00},
		{0x00, 0x20, 0x00, 0x01, 0, 0},
		{0x00, 0x01, 0x00, 0x01, 0, 0},
	} {
		if _, err := decodeGlyphComposite(data); err == nil {
			t.Errorf("%d: incomplete composite glyph accepted", i)
		}
	}
}

func TestComponents(t *testing.T) {
	g := &Glyph{
		Data: CompositeGlyph{
			Components: []GlyphComponent{
				{GlyphIndex: 3, Data: []byte{0, 0}},
				{GlyphIndex: 9, Data: []byte{0, 0}},
			},
		},
	}
	if d := cmp.Diff([]glyph.ID{3, 9}, g.Components()); d != "" {
		t.Error(d)
	}

	var blank *Glyph
	if blank.Components() != nil {
		t.Error("blank glyph has components")
	}
}

func TestComponentFlagString(t *testing.T) {
	f := FlagArgsAreXYValues | FlagRoundXYToGrid
	if s := f.String(); s != "ARGS_ARE_XY_VALUES|ROUND_XY_TO_GRID" {
		t.Errorf("wrong string %q", s)
	}
}
