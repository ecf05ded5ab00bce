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
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/webfont/head"
	"seehuhn.de/go/webfont/header"
	"seehuhn.de/go/webfont/maxp"
)

func loadGoRegular(t testing.TB) (*Encoded, int) {
	t.Helper()
	info, err := header.Read(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	tables := map[string][]byte{}
	for _, name := range []string{"glyf", "loca", "head", "maxp"} {
		tables[name], err = info.TableData(goregular.TTF, name)
		if err != nil {
			t.Fatal(err)
		}
	}
	headInfo, err := head.Decode(tables["head"])
	if err != nil {
		t.Fatal(err)
	}
	maxpInfo, err := maxp.Decode(tables["maxp"])
	if err != nil {
		t.Fatal(err)
	}
	enc := &Encoded{
		GlyfData:   tables["glyf"],
		LocaData:   tables["loca"],
		LocaFormat: headInfo.IndexToLocFormat,
	}
	return enc, maxpInfo.NumGlyphs
}

func TestGoRegular(t *testing.T) {
	enc, numGlyphs := loadGoRegular(t)
	gg, err := Decode(enc, numGlyphs)
	if err != nil {
		t.Fatal(err)
	}
	if len(gg) != numGlyphs {
		t.Fatalf("got %d glyphs, want %d", len(gg), numGlyphs)
	}

	var numSimple, numComposite int
	for _, g := range gg {
		if g == nil {
			continue
		}
		switch g.Data.(type) {
		case SimpleGlyph:
			numSimple++
		case CompositeGlyph:
			numComposite++
		}
	}
	if numSimple == 0 || numComposite == 0 {
		t.Errorf("found %d simple and %d composite glyphs", numSimple, numComposite)
	}

	bbox := gg.BBox()
	if bbox.IsZero() || bbox.LLx >= bbox.URx || bbox.LLy >= bbox.URy {
		t.Errorf("invalid font bounding box %v", bbox)
	}

	enc2 := gg.Encode()
	gg2, err := Decode(enc2, numGlyphs)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(gg, gg2); d != "" {
		t.Error(d)
	}
}

func TestTooFewOffsets(t *testing.T) {
	enc := &Encoded{
		LocaData:   []byte{0, 0, 0, 0},
		LocaFormat: 0,
	}
	if _, err := Decode(enc, 1); err != nil {
		t.Error(err)
	}
	if _, err := Decode(enc, 2); err == nil {
		t.Error("missing glyph offsets not detected")
	}
	enc.LocaFormat = 2
	if _, err := Decode(enc, 1); err == nil {
		t.Error("invalid loca format accepted")
	}
}

func TestLocaFormat(t *testing.T) {
	_, format := encodeLoca([]int{0, 10, 0x1FFFE})
	if format != 0 {
		t.Errorf("wrong format %d", format)
	}
	_, format = encodeLoca([]int{0, 10, 0x20000})
	if format != 1 {
		t.Errorf("wrong format %d", format)
	}
	_, format = encodeLoca([]int{0, 11})
	if format != 1 {
		t.Errorf("wrong format %d", format)
	}
}

func TestInstructionLength(t *testing.T) {
	simple := (&SimpleUnpacked{
		Contours: []Contour{{
			{X: 0, Y: 0, OnCurve: true},
			{X: 10, Y: 0, OnCurve: true},
			{X: 10, Y: 10, OnCurve: true},
		}},
		Instructions: []byte{1, 2, 3, 4, 5},
	}).AsGlyph()
	comp := &Glyph{
		Rect16: funit.Rect16{URx: 10, URy: 10},
		Data: CompositeGlyph{
			Components: []GlyphComponent{
				{Flags: FlagArgsAreXYValues, GlyphIndex: 1, Data: []byte{0, 0}},
			},
			Instructions: []byte{1, 2},
		},
	}
	gg := Glyphs{nil, simple, comp}
	want := []int{0, 5, 2}
	for i, g := range gg {
		if got := g.InstructionLength(); got != want[i] {
			t.Errorf("glyph %d: got %d, want %d", i, got, want[i])
		}
	}

	gg2, err := Decode(gg.Encode(), 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range gg2 {
		if got := g.InstructionLength(); got != want[i] {
			t.Errorf("decoded glyph %d: got %d, want %d", i, got, want[i])
		}
	}
	if ids := gg2[2].Components(); len(ids) != 1 || ids[0] != 1 {
		t.Errorf("wrong components %v", ids)
	}
}

func BenchmarkGlyph(b *testing.B) {
	enc, numGlyphs := loadGoRegular(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := Decode(enc, numGlyphs)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func FuzzGlyf(f *testing.F) {
	enc, _ := loadGoRegular(f)
	f.Add(enc.GlyfData, enc.LocaData, enc.LocaFormat)

	f.Add([]byte{}, []byte{0, 0}, int16(0))                      // empty tables
	f.Add([]byte{}, []byte{0, 0, 0, 0}, int16(1))                // empty tables, format 1
	f.Add(make([]byte, 12), []byte{0, 0, 0, 6}, int16(0))        // minimal glyph
	f.Add(make([]byte, 24), []byte{0, 0, 0, 6, 0, 12}, int16(0)) // two minimal glyphs

	f.Fuzz(func(t *testing.T, glyfData, locaData []byte, locaFormat int16) {
		enc := &Encoded{
			GlyfData:   glyfData,
			LocaData:   locaData,
			LocaFormat: locaFormat,
		}
		info, err := Decode(enc, 0)
		if err != nil {
			return
		}

		enc2 := info.Encode()

		info2, err := Decode(enc2, len(info))
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(info, info2); diff != "" {
			t.Errorf("different (-old +new):\n%s", diff)
		}
	})
}
