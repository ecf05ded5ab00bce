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

package maxp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMaxp(t *testing.T) {
	for _, info := range []*Info{
		{NumGlyphs: 1},
		{NumGlyphs: 678, TTF: &TTFInfo{MaxPoints: 10, MaxComponentDepth: 2}},
	} {
		info2, err := Decode(info.Encode())
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(info, info2); d != "" {
			t.Error(d)
		}
	}
}

func TestMaxpErrors(t *testing.T) {
	cases := [][]byte{
		{0, 0, 0x50},
		{0, 0, 0x50, 0, 0, 0},
		{0, 2, 0, 0, 0, 1},
		{0, 1, 0, 0, 0, 1, 0, 0},
	}
	for i, data := range cases {
		if _, err := Decode(data); err == nil {
			t.Errorf("%d: invalid table accepted", i)
		}
	}
}
