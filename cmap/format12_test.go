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
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat12Supplementary(t *testing.T) {
	s1 := Format12{
		'A':     1,
		'B':     2,
		0x1F600: 10,
		0x1F601: 11,
		0x1F602: 12,
		0x1F680: 5,
	}
	data := s1.Encode(0)

	// 'A'-'B', U+1F600-U+1F602 and U+1F680 form three groups
	if n := binary.BigEndian.Uint32(data[12:16]); n != 3 {
		t.Errorf("%d groups, want 3", n)
	}
	if l := binary.BigEndian.Uint32(data[4:8]); int(l) != len(data) {
		t.Errorf("length field %d, want %d", l, len(data))
	}

	sub, err := decodeFormat12(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Subtable(s1), sub); d != "" {
		t.Error(d)
	}
	if gid := sub.Lookup(0x1F601); gid != 11 {
		t.Errorf("Lookup(U+1F601) = %d, want 11", gid)
	}
	if gid := sub.Lookup('C'); gid != 0 {
		t.Errorf("Lookup('C') = %d, want 0", gid)
	}
	low, high := sub.CodeRange()
	if low != 'A' || high != 0x1F680 {
		t.Errorf("CodeRange() = %U, %U", low, high)
	}
}

func TestFormat12Malformed(t *testing.T) {
	group := func(start, end, gid uint32) []byte {
		var b []byte
		b = binary.BigEndian.AppendUint32(b, start)
		b = binary.BigEndian.AppendUint32(b, end)
		return binary.BigEndian.AppendUint32(b, gid)
	}
	table := func(groups ...[]byte) []byte {
		b := []byte{0, 12, 0, 0}
		b = binary.BigEndian.AppendUint32(b, uint32(16+12*len(groups)))
		b = binary.BigEndian.AppendUint32(b, 0)
		b = binary.BigEndian.AppendUint32(b, uint32(len(groups)))
		for _, g := range groups {
			b = append(b, g...)
		}
		return b
	}

	cases := map[string][]byte{
		"overlap":        table(group('A', 'Z', 1), group('M', 'P', 40)),
		"unsorted":       table(group('a', 'z', 1), group('A', 'Z', 40)),
		"reversed":       table(group('Z', 'A', 1)),
		"beyond 10FFFF":  table(group(0x10FFFF, 0x110000, 1)),
		"glyph overflow": table(group(0x100, 0x1FF, 0xFFF0)),
		"truncated":      table(group('A', 'Z', 1))[:20],
	}
	for name, data := range cases {
		_, err := decodeFormat12(data)
		if err == nil {
			t.Errorf("%s: no error", name)
		}
	}

	_, err := decodeFormat12(table(group('A', 'Z', 1), group('a', 'z', 27)))
	if err != nil {
		t.Errorf("valid table: %v", err)
	}
}

func FuzzFormat12(f *testing.F) {
	f.Add(Format12{}.Encode(0))
	f.Add(Format12{'A': 1, 'B': 2, 'C': 3}.Encode(0))
	f.Add(Format12{1: 3, 2: 2, 3: 1}.Encode(0))
	f.Add(Format12{0x20: 1, 0x10FFFF: 2}.Encode(0))

	f.Fuzz(func(t *testing.T, data []byte) {
		c1, err := decodeFormat12(data)
		if err != nil {
			return
		}

		data2 := c1.Encode(0)
		if len(data2) > len(data) {
			t.Error("re-encoded subtable is longer")
		}

		c2, err := decodeFormat12(data2)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(c1, c2); d != "" {
			t.Error(d)
		}
	})
}

var _ Subtable = Format12(nil)
