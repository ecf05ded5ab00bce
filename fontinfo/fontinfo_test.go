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
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/glyf"
	"seehuhn.de/go/webfont/glyph"
	"seehuhn.de/go/webfont/internal/debug"
)

func TestGeneralMinimal(t *testing.T) {
	f := debug.MakeSimpleFont().Strip("OS/2", "post", "fpgm", "prep", "cvt ", "DSIG")
	data, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	f, err = webfont.Read(data)
	if err != nil {
		t.Fatal(err)
	}

	r, err := General(f)
	if err != nil {
		t.Fatal(err)
	}
	var tags []string
	for _, row := range r.Tables[0].Rows {
		tags = append(tags, row[0])
	}
	want := []string{"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name"}
	if d := cmp.Diff(want, tags); d != "" {
		t.Error(d)
	}
	if note := r.Tables[0].Notes[0]; note != "sfnt version: 1.0 (TrueType)" {
		t.Errorf("wrong note %q", note)
	}
	if v := FontVersion(f); v != debug.Version {
		t.Errorf("wrong version %q", v)
	}
}

func TestBlocksUppercase(t *testing.T) {
	m := make(map[rune]glyph.ID)
	for r := 'A'; r <= 'Z'; r++ {
		m[r] = debug.GidA
	}
	f := debug.MakeFontWithCMap(m)

	cov, err := BlockCoverage(f)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cov {
		switch c.Name {
		case "Basic Latin":
			if c.Count != 26 || c.Total != 128 {
				t.Errorf("Basic Latin: %d / %d", c.Count, c.Total)
			}
		default:
			if c.Count != 0 {
				t.Errorf("%s: %d", c.Name, c.Count)
			}
		}
	}

	r, err := Blocks(f)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"Basic Latin", "26", "128", "20.31%"}}
	if d := cmp.Diff(want, r.Tables[0].Rows); d != "" {
		t.Error(d)
	}
}

func TestUnicodeBlocksSorted(t *testing.T) {
	for i, b := range UnicodeBlocks {
		if b.High < b.Low {
			t.Errorf("%s: empty range", b.Name)
		}
		if i > 0 && b.Low <= UnicodeBlocks[i-1].High {
			t.Errorf("%s overlaps %s", b.Name, UnicodeBlocks[i-1].Name)
		}
	}
	if UnicodeBlocks[0].Name != "Basic Latin" || UnicodeBlocks[0].Size() != 128 {
		t.Errorf("unexpected first block %+v", UnicodeBlocks[0])
	}
}

func TestCoverageMonotonic(t *testing.T) {
	small := map[rune]glyph.ID{'A': 1, 'B': 1, 0x00C5: 3}
	large := map[rune]glyph.ID{'A': 1, 'B': 1, 'C': 1, 0x00C5: 3, 0x03A9: 1, 0x1F600: 4, 0xE000: 2}

	f1 := debug.MakeFontWithCMap(small)
	f2 := debug.MakeFontWithCMap(large)

	for _, coverage := range []func(*webfont.Font) ([]Coverage, error){BlockCoverage, ScriptCoverage} {
		c1, err := coverage(f1)
		if err != nil {
			t.Fatal(err)
		}
		c2, err := coverage(f2)
		if err != nil {
			t.Fatal(err)
		}
		if len(c1) != len(c2) {
			t.Fatal("different number of groups")
		}
		total1, total2 := 0, 0
		for i := range c1 {
			if c1[i].Count > c2[i].Count {
				t.Errorf("%s: %d > %d", c1[i].Name, c1[i].Count, c2[i].Count)
			}
			total1 += c1[i].Count
			total2 += c2[i].Count
		}
		if total1 != len(small) || total2 != len(large) {
			t.Errorf("wrong totals %d %d", total1, total2)
		}
	}
}

func TestScripts(t *testing.T) {
	f := debug.MakeFontWithCMap(map[rune]glyph.ID{'A': 1, ' ': 2, 0x03A9: 1, 0xE000: 2})
	r, err := Scripts(f)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Common", "1", itoa(rangeSize(scriptTable("Common"))), percent(1, rangeSize(scriptTable("Common")))},
		{"Greek", "1", itoa(rangeSize(scriptTable("Greek"))), percent(1, rangeSize(scriptTable("Greek")))},
		{"Latin", "1", itoa(rangeSize(scriptTable("Latin"))), percent(1, rangeSize(scriptTable("Latin")))},
		{"Unknown", "1", "-", "-"},
	}
	if d := cmp.Diff(want, r.Tables[0].Rows); d != "" {
		t.Error(d)
	}
}

func TestCMaps(t *testing.T) {
	r, err := CMaps(debug.MakeSimpleFont())
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"0", "3", "0", "4", "3"},
		{"3", "1", "0", "4", "3"},
	}
	if d := cmp.Diff(want, r.Tables[0].Rows); d != "" {
		t.Error(d)
	}
}

func TestChars(t *testing.T) {
	r, err := Chars(debug.MakeSimpleFont())
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"U+0020", "2", "SPACE"},
		{"U+0041", "1", "LATIN CAPITAL LETTER A"},
		{"U+00C5", "3", "LATIN CAPITAL LETTER A WITH RING ABOVE"},
	}
	if d := cmp.Diff(want, r.Tables[0].Rows); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]string{"Total number of characters with valid glyphs: 3"}, r.Tables[0].Notes); d != "" {
		t.Error(d)
	}
}

func TestAnalyseGlyphs(t *testing.T) {
	stats, err := AnalyseGlyphs(debug.MakeSimpleFont())
	if err != nil {
		t.Fatal(err)
	}
	want := &GlyphStats{
		NumGlyphs:   debug.NumGlyphs,
		HintingSize: len(debug.Fpgm) + len(debug.Prep) + len(debug.Cvt) + len(debug.Instructions),
		Unmapped:    []glyph.ID{debug.GidNotdef, debug.GidRing},
		Subglyphs:   map[glyph.ID]int{debug.GidA: 1, debug.GidRing: 1},
	}
	if d := cmp.Diff(want, stats); d != "" {
		t.Error(d)
	}

	// stripping the hinting tables leaves only the glyph instructions
	stats, err = AnalyseGlyphs(debug.MakeSimpleFont().Strip(webfont.HintingTables...))
	if err != nil {
		t.Fatal(err)
	}
	if stats.HintingSize != len(debug.Instructions) {
		t.Errorf("wrong hinting size %d", stats.HintingSize)
	}
}

func TestSubglyphCycle(t *testing.T) {
	composite := func(gid glyph.ID) *glyf.Glyph {
		return &glyf.Glyph{
			Data: glyf.CompositeGlyph{
				Components: []glyf.GlyphComponent{
					{Flags: glyf.FlagArgsAreXYValues, GlyphIndex: gid, Data: []byte{0, 0}},
				},
			},
		}
	}
	gg := glyf.Glyphs{nil, composite(2), composite(1), composite(3)}

	freq := make(map[glyph.ID]int)
	countSubglyphs(gg, 1, freq, map[glyph.ID]bool{1: true})
	if d := cmp.Diff(map[glyph.ID]int{2: 1}, freq); d != "" {
		t.Error(d)
	}

	freq = make(map[glyph.ID]int)
	countSubglyphs(gg, 3, freq, map[glyph.ID]bool{3: true})
	if len(freq) != 0 {
		t.Errorf("self reference counted: %v", freq)
	}
}

func TestMetrics(t *testing.T) {
	r, err := Metrics(debug.MakeSimpleFont())
	if err != nil {
		t.Fatal(err)
	}
	wantFont := [][]string{
		{"Units per em", "1000"},
		{"Ascender", "900"},
		{"Descender", "-200"},
		{"Line gap", "90"},
	}
	if d := cmp.Diff(wantFont, r.Tables[0].Rows); d != "" {
		t.Error(d)
	}
	wantGlyphs := [][]string{
		{"Max advance width", "600"},
		{"Min advance width", "200"},
		{"Max x", "600"},
		{"Min x", "0"},
		{"Max y", "900"},
		{"Min y", "0"},
	}
	if d := cmp.Diff(wantGlyphs, r.Tables[1].Rows); d != "" {
		t.Error(d)
	}

	// CFF fonts use the bounding box from the "head" table
	r, err = Metrics(debug.MakeCFFFont())
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Tables[1].Rows[5]; got[1] != "-10" {
		t.Errorf("wrong min y %q", got[1])
	}
}

func TestNames(t *testing.T) {
	r, err := Names(debug.MakeSimpleFont())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, row := range r.Tables[0].Rows {
		if row[0] == "Windows" && row[3] == "1" {
			found = true
			if row[2] != "en-US" || row[4] != debug.FamilyName {
				t.Errorf("wrong row %q", row)
			}
		}
	}
	if !found {
		t.Error("family name not listed")
	}
}

func TestParseQuery(t *testing.T) {
	for _, q := range Queries {
		got, err := ParseQuery(" " + string(q) + " ")
		if err != nil || got != q {
			t.Errorf("%q: %q %v", q, got, err)
		}
	}
	if got, _ := ParseQuery("CMAPS"); got != QueryCmap {
		t.Errorf("alias not recognised: %q", got)
	}
	if _, err := ParseQuery("outlines"); err == nil {
		t.Error("unknown query accepted")
	}
}

func TestRunGoRegular(t *testing.T) {
	f, err := webfont.Read(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range Queries {
		r, err := Run(f, q)
		if err != nil {
			t.Errorf("%s: %v", q, err)
			continue
		}
		if r.Name != string(q) || len(r.Tables) == 0 {
			t.Errorf("%s: unexpected report %v", q, r)
		}
	}
}

func scriptTable(name string) *unicode.RangeTable {
	return unicode.Scripts[name]
}
