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

package os2

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/webfont/parser"
)

func TestRoundTrip(t *testing.T) {
	info := &Info{
		Version:       4,
		WeightClass:   WeightBold,
		WidthClass:    5,
		FsType:        0x0008,
		Selection:     0x0021,
		Ascent:        800,
		Descent:       -200,
		LineGap:       100,
		WinAscent:     900,
		WinDescent:    250,
		CapHeight:     700,
		XHeight:       500,
		Panose:        [10]byte{2, 11, 6, 3, 2, 2, 2, 2, 2, 4},
		Vendor:        "TEST",
		UnicodeRange:  UnicodeRange{1, 2, 3, 4},
		CodePageRange: 0x8000_0000_0000_0001,
	}
	info2, err := Decode(info.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(info, info2); d != "" {
		t.Error(d)
	}

	if !info2.IsItalic() || !info2.IsBold() || info2.IsRegular() {
		t.Error("wrong style bits")
	}
	if info2.Permissions() != PermEdit {
		t.Errorf("wrong permissions %s", info2.Permissions())
	}
	w1, w2 := info2.CodePageRange.Words()
	if w1 != 1 || w2 != 0x8000_0000 {
		t.Errorf("wrong code page words %08x %08x", w1, w2)
	}
}

func TestVersion0(t *testing.T) {
	info := &Info{Version: 0, WeightClass: 400, Ascent: 10, CodePageRange: 7}
	data := info.Encode()

	// Apple-style version 0 tables omit the typographic metrics
	short, err := Decode(data[:68])
	if err != nil {
		t.Fatal(err)
	}
	if short.Ascent != 0 || short.WeightClass != 400 {
		t.Errorf("wrong values %d %d", short.Ascent, short.WeightClass)
	}

	long, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if long.Ascent != 10 || long.CodePageRange != 0 {
		t.Errorf("wrong values %d %d", long.Ascent, long.CodePageRange)
	}

	if _, err := Decode(data[:50]); err == nil {
		t.Error("short table accepted")
	}
	if _, err := Decode(data[:72]); err != nil {
		t.Errorf("partial typographic metrics: %v", err)
	}
}

func TestVersion5(t *testing.T) {
	info := &Info{
		Version:               5,
		WeightClass:           WeightNormal,
		LowerOpticalPointSize: 160,
		UpperOpticalPointSize: 480,
	}
	data := info.Encode()
	if len(data) != 100 {
		t.Fatalf("version 5 table has %d bytes", len(data))
	}
	info2, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(info, info2); d != "" {
		t.Error(d)
	}

	if _, err := Decode(data[:96]); err == nil {
		t.Error("truncated version 5 table accepted")
	}

	info.Version = 4
	if n := len(info.Encode()); n != 96 {
		t.Errorf("version 4 table has %d bytes", n)
	}
}

func TestVendorPadding(t *testing.T) {
	for in, want := range map[string]string{
		"":      "    ",
		"AB":    "AB  ",
		"ABCD":  "ABCD",
		"ABCDE": "ABCD",
	} {
		data := (&Info{Version: 4, Vendor: in}).Encode()
		if got := string(data[58:62]); got != want {
			t.Errorf("vendor %q encoded as %q, want %q", in, got, want)
		}
		info, err := Decode(data)
		if err != nil {
			t.Fatal(err)
		}
		if info.Vendor != strings.TrimRight(want, " ") {
			t.Errorf("vendor %q decoded as %q", in, info.Vendor)
		}
	}

	// some fonts pad with NUL bytes
	data := (&Info{Version: 4}).Encode()
	copy(data[58:62], "XY\x00\x00")
	info, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if info.Vendor != "XY" {
		t.Errorf("got vendor %q", info.Vendor)
	}
}

func TestUnknownVersion(t *testing.T) {
	data := (&Info{Version: 4}).Encode()
	data[1] = 6
	_, err := Decode(data)
	if !parser.IsUnsupported(err) {
		t.Errorf("wrong error %v", err)
	}
}

func TestClassNames(t *testing.T) {
	if s := WeightBold.String(); s != "700 (Bold)" {
		t.Errorf("wrong name %q", s)
	}
	if s := Weight(450).String(); s != "450" {
		t.Errorf("wrong name %q", s)
	}
	if s := Width(3).String(); s != "Condensed" {
		t.Errorf("wrong name %q", s)
	}
}

func FuzzOS2(f *testing.F) {
	f.Add((&Info{Version: 4, Vendor: "ABCD"}).Encode())
	f.Add((&Info{Version: 0}).Encode()[:68])
	f.Add((&Info{Version: 5, UpperOpticalPointSize: 1}).Encode())
	f.Fuzz(func(t *testing.T, in []byte) {
		i1, err := Decode(in)
		if err != nil {
			return
		}

		buf := i1.Encode()
		i2, err := Decode(buf)
		if err != nil {
			t.Fatal(err)
		}

		if d := cmp.Diff(i1, i2); d != "" {
			t.Fatal(d)
		}
	})
}
