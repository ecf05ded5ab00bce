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

package cmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/webfont/glyph"
	"seehuhn.de/go/webfont/parser"
)

func TestTableRoundTrip(t *testing.T) {
	bmp := Format4{'A': 1, 'B': 2, 'C': 3}.Encode(0)
	full := Format12{'A': 1, 'B': 2, 'C': 3, 0x1F600: 4}.Encode(0)
	t1 := Table{
		{PlatformID: 0, EncodingID: 3}:  bmp,
		{PlatformID: 3, EncodingID: 1}:  bmp,
		{PlatformID: 3, EncodingID: 10}: full,
	}
	data := t1.Encode()

	// the two identical subtables are stored once
	if len(data) != 4+3*8+len(bmp)+len(full) {
		t.Errorf("unexpected length %d", len(data))
	}

	t2, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(t1, t2); d != "" {
		t.Error(d)
	}
}

func TestGetBest(t *testing.T) {
	bmp := Format4{'A': 1}.Encode(0)
	full := Format12{'A': 2}.Encode(0)
	mac := (&Format0{}).Encode(0)

	cases := []struct {
		table Table
		want  Key
	}{
		{Table{{3, 1, 0}: bmp, {3, 10, 0}: full}, Key{3, 10, 0}},
		{Table{{3, 1, 0}: bmp, {0, 3, 0}: bmp}, Key{3, 1, 0}},
		{Table{{0, 3, 0}: bmp, {1, 0, 0}: mac}, Key{0, 3, 0}},
		{Table{{0, 1, 0}: bmp, {1, 0, 0}: mac}, Key{0, 1, 0}},
		{Table{{1, 0, 0}: mac}, Key{1, 0, 0}},
	}
	for i, c := range cases {
		_, key, err := c.table.GetBest()
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if key != c.want {
			t.Errorf("%d: got %v, want %v", i, key, c.want)
		}
	}

	_, _, err := Table{}.GetBest()
	if err == nil {
		t.Error("empty table has a best subtable")
	}
}

func TestGetNoLang(t *testing.T) {
	english := &Format0{}
	english.Data['A'] = 1
	french := &Format0{}
	french.Data['A'] = 9
	table := Table{
		{PlatformID: 1, EncodingID: 0, Language: 2}: french.Encode(3),
		{PlatformID: 1, EncodingID: 0, Language: 0}: english.Encode(1),
	}

	sub, err := table.GetNoLang(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if gid := sub.Lookup('A'); gid != 1 {
		t.Errorf("lowest language not used: got glyph %d", gid)
	}

	_, err = table.GetNoLang(3, 1)
	if !parser.IsUnsupported(err) {
		t.Errorf("missing subtable: got %v", err)
	}
}

func TestMacRoman(t *testing.T) {
	sub := &Format0{}
	sub.Data['A'] = 1
	sub.Data[0xA5] = 2 // bullet
	table := Table{{PlatformID: 1, EncodingID: 0}: sub.Encode(0)}

	dec, err := table.Get(Key{PlatformID: 1, EncodingID: 0})
	if err != nil {
		t.Fatal(err)
	}
	if gid := dec.Lookup('•'); gid != 2 {
		t.Errorf("got glyph %d for bullet", gid)
	}
	if gid := dec.Lookup('A'); gid != 1 {
		t.Errorf("got glyph %d for A", gid)
	}

	var got []rune
	for r := range dec.All() {
		got = append(got, r)
	}
	if d := cmp.Diff([]rune{'A', '•'}, got); d != "" {
		t.Error(d)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	format14 := []byte{0, 14, 0, 0, 0, 10, 0, 0, 0, 0}
	table := Table{{PlatformID: 0, EncodingID: 5}: format14}
	data := table.Encode()
	table, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if f := table.Format(Key{PlatformID: 0, EncodingID: 5}); f != 14 {
		t.Errorf("wrong format %d", f)
	}
	_, err = table.Get(Key{PlatformID: 0, EncodingID: 5})
	if !parser.IsUnsupported(err) {
		t.Errorf("wrong error %v", err)
	}
}

func TestOverlappingSubtables(t *testing.T) {
	sub := Format4{'A': 1}.Encode(0)
	data := []byte{
		0, 0, 0, 2,
		0, 3, 0, 1, 0, 0, 0, 20,
		0, 3, 0, 10, 0, 0, 0, 22,
	}
	data = append(data, sub...)
	data = append(data, 0, 0)
	_, err := Decode(data)
	if !parser.IsInvalid(err) {
		t.Errorf("wrong error %v", err)
	}
}

func TestFormat6And10(t *testing.T) {
	s6 := &Format6{FirstCode: 'a', GlyphIDs: []glyph.ID{5, 0, 7}}
	s10 := &Format10{StartCharCode: 0x10000, GlyphIDs: []glyph.ID{1, 2}}
	for _, sub := range []Subtable{s6, s10} {
		data := sub.Encode(0)
		format := uint16(data[0])<<8 | uint16(data[1])
		dec, err := decoders[format](data)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(sub, dec); d != "" {
			t.Error(d)
		}
	}
	if Count(s6) != 2 {
		t.Errorf("wrong count %d", Count(s6))
	}
	if s6.Lookup('c') != 7 || s6.Lookup('b') != 0 || s6.Lookup('z') != 0 {
		t.Error("wrong lookup")
	}
	low, high := s10.CodeRange()
	if low != 0x10000 || high != 0x10001 {
		t.Errorf("wrong range %x-%x", low, high)
	}
}

func TestFormat13(t *testing.T) {
	sub := Format13{
		{StartCharCode: 0, EndCharCode: 0x7F, GlyphID: 1},
		{StartCharCode: 0x100, EndCharCode: 0x10FFFF, GlyphID: 2},
	}
	dec, err := decodeFormat13(sub.Encode(0))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(sub, dec); d != "" {
		t.Error(d)
	}
	if sub.Lookup(0x80) != 0 || sub.Lookup(0x41) != 1 || sub.Lookup(0x10FFFF) != 2 {
		t.Error("wrong lookup")
	}
}
