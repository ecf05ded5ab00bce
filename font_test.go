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

package webfont_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	xsfnt "golang.org/x/image/font/sfnt"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/header"
	"seehuhn.de/go/webfont/internal/debug"
	"seehuhn.de/go/webfont/parser"
)

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "webfont")
	defer teardown()

	for _, in := range [][]byte{goregular.TTF, goitalic.TTF} {
		f1, err := webfont.Read(in)
		if err != nil {
			t.Fatal(err)
		}
		out, err := f1.Encode()
		if err != nil {
			t.Fatal(err)
		}
		f2, err := webfont.Read(out)
		if err != nil {
			t.Fatal(err)
		}
		if !webfont.Equal(f1, f2) {
			t.Error("fonts differ after round trip")
		}

		if sum := header.Checksum(out); sum != 0xB1B0AFBA {
			t.Errorf("wrong file checksum 0x%08X", sum)
		}
		for _, tab := range f2.Tables() {
			if tab.Offset%4 != 0 {
				t.Errorf("table %q not aligned", tab.Tag)
			}
		}

		_, err = xsfnt.Parse(out)
		if err != nil {
			t.Errorf("x/image/font/sfnt: %v", err)
		}
	}
}

func TestSimpleFont(t *testing.T) {
	f1 := debug.MakeSimpleFont()
	out, err := f1.Encode()
	if err != nil {
		t.Fatal(err)
	}
	f2, err := webfont.Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if !webfont.Equal(f1, f2) {
		t.Error("fonts differ after round trip")
	}

	// the directory is sorted by tag
	tags := f2.Tags()
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Errorf("tags %q and %q out of order", tags[i-1], tags[i])
		}
	}

	x, err := xsfnt.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := x.NumGlyphs(); n != debug.NumGlyphs {
		t.Errorf("x/image/font/sfnt: %d glyphs", n)
	}
}

func TestEncodeKeepsModel(t *testing.T) {
	f := debug.MakeSimpleFont()
	headTable, _ := f.Table("head")
	before := bytes.Clone(headTable.Data())

	_, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(before, headTable.Data()); d != "" {
		t.Errorf("head table modified:\n%s", d)
	}
}

func TestReadCopiesInput(t *testing.T) {
	in := bytes.Clone(goregular.TTF)
	f, err := webfont.Read(in)
	if err != nil {
		t.Fatal(err)
	}
	nameTable, _ := f.Table("name")
	before := bytes.Clone(nameTable.Data())
	for i := range in {
		in[i] = 0
	}
	if !bytes.Equal(before, nameTable.Data()) {
		t.Error("font model aliases the input buffer")
	}
}

func TestStrip(t *testing.T) {
	f := debug.MakeSimpleFont()
	stripped := f.Strip(append(webfont.HintingTables, "zzzz")...)

	for _, tag := range webfont.HintingTables {
		if _, ok := stripped.Table(tag); ok {
			t.Errorf("table %q not removed", tag)
		}
	}
	if stripped.NumTables() != f.NumTables()-4 {
		t.Errorf("wrong number of tables: %d", stripped.NumTables())
	}
	if !f.Has("fpgm", "prep", "cvt ", "DSIG") {
		t.Error("original font was modified")
	}

	for _, tab := range stripped.Tables() {
		orig, ok := f.Table(tab.Tag)
		if !ok {
			t.Fatalf("unexpected table %q", tab.Tag)
		}
		if orig != tab {
			t.Errorf("table %q was copied", tab.Tag)
		}
	}

	// glyph outlines and instructions are kept
	gg, err := stripped.Glyphs()
	if err != nil {
		t.Fatal(err)
	}
	if n := gg[debug.GidA].InstructionLength(); n != len(debug.Instructions) {
		t.Errorf("wrong instruction length %d", n)
	}

	again := stripped.Strip(webfont.HintingTables...)
	if d := cmp.Diff(stripped.Tags(), again.Tags()); d != "" {
		t.Error(d)
	}
}

func TestStripNothing(t *testing.T) {
	for _, f := range []*webfont.Font{debug.MakeSimpleFont(), debug.MakeCFFFont()} {
		same := f.Strip()
		if same == f {
			t.Error("Strip returned the receiver")
		}
		if !webfont.Equal(f, same) {
			t.Error("empty strip changed the font")
		}
		if d := cmp.Diff(f.Tags(), same.Tags()); d != "" {
			t.Error(d)
		}
		for i, tab := range same.Tables() {
			if tab != f.Tables()[i] {
				t.Errorf("table %q was copied", tab.Tag)
			}
		}
	}
}

func TestMalformed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		buf := make([]byte, 12+rng.Intn(64))
		rng.Read(buf)
		_, err := webfont.Read(buf)
		if !parser.IsInvalid(err) && !parser.IsUnsupported(err) {
			t.Fatalf("random data: unexpected error %v", err)
		}
	}

	_, err := webfont.Read([]byte{0, 1, 0, 0})
	if !parser.IsInvalid(err) {
		t.Errorf("short file: %v", err)
	}

	// one table, extending past the end of the file
	bad := []byte{
		0, 1, 0, 0, 0, 1, 0, 16, 0, 0, 0, 0,
		'h', 'e', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 28, 0, 0, 1, 0,
	}
	_, err = webfont.Read(bad)
	if !parser.IsInvalid(err) {
		t.Errorf("table past end: %v", err)
	}
}

func TestUnsupportedContainers(t *testing.T) {
	for _, magic := range []string{"ttcf", "wOFF", "wOF2"} {
		in := make([]byte, 64)
		copy(in, magic)
		_, err := webfont.Read(in)
		if !parser.IsUnsupported(err) {
			t.Errorf("%s: unexpected error %v", magic, err)
		}
	}
}

func TestSharedTables(t *testing.T) {
	// "EBDT" and "bdat" use the same data
	body := []byte{0, 2, 0, 0, 1, 2, 3, 4}
	in := []byte{
		0, 1, 0, 0, 0, 2, 0, 32, 0, 1, 0, 0,
		'E', 'B', 'D', 'T', 0, 0, 0, 0, 0, 0, 0, 44, 0, 0, 0, 8,
		'b', 'd', 'a', 't', 0, 0, 0, 0, 0, 0, 0, 44, 0, 0, 0, 8,
	}
	in = append(in, body...)
	f, err := webfont.Read(in)
	if err != nil {
		t.Fatal(err)
	}
	if f.NumTables() != 2 {
		t.Errorf("wrong number of tables: %d", f.NumTables())
	}

	// overlapping but not identical ranges are rejected
	in[len(in)-len(body)-1] = 4
	_, err = webfont.Read(in)
	if !parser.IsInvalid(err) {
		t.Errorf("overlapping tables: %v", err)
	}
}

func TestViews(t *testing.T) {
	f := debug.MakeSimpleFont()

	headInfo, err := f.Head()
	if err != nil {
		t.Fatal(err)
	}
	if headInfo.UnitsPerEm != 1000 {
		t.Errorf("wrong unitsPerEm %d", headInfo.UnitsPerEm)
	}

	hm, err := f.HMetrics()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(debug.Widths, hm.Widths); d != "" {
		t.Error(d)
	}

	names, err := f.Names()
	if err != nil {
		t.Fatal(err)
	}
	if family := names.Lookup(1); family != debug.FamilyName {
		t.Errorf("wrong family name %q", family)
	}

	os2Info, err := f.OS2()
	if err != nil {
		t.Fatal(err)
	}
	if os2Info.Vendor != "DBUG" {
		t.Errorf("wrong vendor %q", os2Info.Vendor)
	}

	cmapTable, err := f.CMap()
	if err != nil {
		t.Fatal(err)
	}
	sub, _, err := cmapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	for r, gid := range debug.CMap {
		if got := sub.Lookup(r); got != gid {
			t.Errorf("%U: got %d, want %d", r, got, gid)
		}
	}

	cff := debug.MakeCFFFont()
	if !cff.IsCFF() || f.IsCFF() {
		t.Error("wrong outline type")
	}
	_, err = cff.Glyphs()
	var missing *webfont.MissingTableError
	if !errors.As(err, &missing) || missing.Tag != "glyf" {
		t.Errorf("wrong error %v", err)
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]webfont.Kind{
		"head": webfont.KindHead,
		"OS/2": webfont.KindOS2,
		"cvt ": webfont.KindHinting,
		"DSIG": webfont.KindSignature,
		"CFF ": webfont.KindCFF,
		"GSUB": webfont.KindOpaque,
		"abcd": webfont.KindOpaque,
	}
	for tag, want := range cases {
		if got := webfont.KindOf(tag); got != want {
			t.Errorf("%q: got %s, want %s", tag, got, want)
		}
	}
}

func FuzzRead(f *testing.F) {
	f.Add(goregular.TTF)
	simple, err := debug.MakeSimpleFont().Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(simple)

	f.Fuzz(func(t *testing.T, in []byte) {
		f1, err := webfont.Read(in)
		if err != nil {
			return
		}
		out, err := f1.Encode()
		if err != nil {
			// e.g. truncated "head" tables cannot be patched
			return
		}
		f2, err := webfont.Read(out)
		if err != nil {
			t.Fatal(err)
		}
		if !webfont.Equal(f1, f2) {
			t.Fatal("fonts differ after round trip")
		}
	})
}
