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
)

func TestFormat4Lookup(t *testing.T) {
	// two runs with consecutive glyphs, and some isolated characters
	s1 := Format4{
		' ': 3,
		'0': 10, '1': 11, '2': 12, '3': 13,
		'A': 20, 'B': 21, 'C': 22,
		0xC5:   30,
		0xFB01: 31,
	}
	sub, err := decodeFormat4(s1.Encode(0))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Subtable(s1), sub); d != "" {
		t.Error(d)
	}

	cases := []struct {
		r   rune
		gid glyph.ID
	}{
		{' ', 3}, {'2', 12}, {'C', 22}, {'D', 0},
		{0xC5, 30}, {0xFB01, 31}, {0xFFFF, 0}, {0x1F600, 0}, {-1, 0},
	}
	for _, c := range cases {
		if got := sub.Lookup(c.r); got != c.gid {
			t.Errorf("Lookup(%U) = %d, want %d", c.r, got, c.gid)
		}
	}

	low, high := sub.CodeRange()
	if low != ' ' || high != 0xFB01 {
		t.Errorf("CodeRange() = %U, %U", low, high)
	}

	var prev rune = -1
	n := 0
	for r := range sub.All() {
		if r <= prev {
			t.Errorf("All() not sorted: %U after %U", r, prev)
		}
		prev = r
		n++
	}
	if n != len(s1) {
		t.Errorf("All() gave %d characters, want %d", n, len(s1))
	}
}

func TestFormat4RangeOffset(t *testing.T) {
	// one segment 'a'-'c' using idRangeOffset, plus the final segment
	data := []byte{
		0x00, 0x04, 0x00, 0x26, 0x00, 0x00, // format, length, language
		0x00, 0x04, 0x00, 0x04, 0x00, 0x01, 0x00, 0x00, // segCountX2, ...
		0x00, 'c', 0xff, 0xff, // endCode
		0x00, 0x00, // reservedPad
		0x00, 'a', 0xff, 0xff, // startCode
		0x00, 0x01, 0x00, 0x01, // idDelta
		0x00, 0x04, 0x00, 0x00, // idRangeOffset
		0x00, 0x09, 0x00, 0x00, 0x00, 0x0b, // glyphIdArray
	}
	sub, err := decodeFormat4(data)
	if err != nil {
		t.Fatal(err)
	}
	want := Format4{'a': 10, 'c': 12}
	if d := cmp.Diff(Subtable(want), sub); d != "" {
		t.Error(d)
	}
}

func TestFormat4Truncated(t *testing.T) {
	data := Format4{'A': 1, 'B': 2, 'Z': 7}.Encode(0)
	for n := 0; n < len(data); n++ {
		_, err := decodeFormat4(data[:n])
		if err == nil {
			t.Errorf("%d bytes: no error", n)
		}
	}
}

func FuzzFormat4(f *testing.F) {
	f.Add(Format4{}.Encode(0))
	f.Add(Format4{'A': 1}.Encode(0))
	f.Add(Format4{' ': 2, 'A': 1, 0xC5: 3}.Encode(0))
	f.Add(Format4{0xFFFE: 7, 0x7F: 1, 0x80: 2, 0x81: 2}.Encode(3))

	f.Fuzz(func(t *testing.T, data []byte) {
		c1, err := decodeFormat4(data)
		if err != nil {
			return
		}

		c2, err := decodeFormat4(c1.Encode(0))
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(c1, c2); d != "" {
			t.Error(d)
		}
	})
}

var _ Subtable = Format4(nil)
