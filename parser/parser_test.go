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

package parser

import (
	"fmt"
	"testing"
)

func TestParser(t *testing.T) {
	p := New("test", []byte{0x4F, 0x54, 0x54, 0x4F, 0x00, 0x0C, 1, 2, 0x00, 0x01, 0x00, 0x00})

	tag, err := p.ReadTag()
	if err != nil || tag != "OTTO" {
		t.Fatalf("ReadTag() = %q, %v", tag, err)
	}
	n, err := p.ReadUint16()
	if err != nil || n != 12 {
		t.Fatalf("ReadUint16() = %d, %v", n, err)
	}
	if err := p.Discard(2); err != nil {
		t.Fatal(err)
	}
	x, err := p.ReadUint32()
	if err != nil || x != 0x00010000 {
		t.Fatalf("ReadUint32() = 0x%08x, %v", x, err)
	}

	_, err = p.ReadUint16()
	if !IsInvalid(err) {
		t.Errorf("read past end: got %v", err)
	}
	if err := p.Discard(-1); err == nil {
		t.Error("negative discard accepted")
	}
}

func TestErrorKinds(t *testing.T) {
	invalid := fmt.Errorf("wrapped: %w", &InvalidFontError{SubSystem: "x", Reason: "y"})
	unsupported := &NotSupportedError{SubSystem: "x", Feature: "z"}

	if !IsInvalid(invalid) || IsUnsupported(invalid) {
		t.Error("wrong classification of InvalidFontError")
	}
	if IsInvalid(unsupported) || !IsUnsupported(unsupported) {
		t.Error("wrong classification of NotSupportedError")
	}
	if got := unsupported.Error(); got != "x: z not supported" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsValidTag(t *testing.T) {
	for tag, want := range map[string]bool{
		"head":    true,
		"OS/2":    true,
		"cvt ":    true,
		"abc":     false,
		"a\x00bc": false,
		"heads":   false,
	} {
		if got := IsValidTag(tag); got != want {
			t.Errorf("IsValidTag(%q) = %t", tag, got)
		}
	}
}

func TestFixedToFloat(t *testing.T) {
	if got := FixedToFloat(0x00018000); got != 1.5 {
		t.Errorf("got %g", got)
	}
	if got := FixedToFloat(0xFFFF0000); got != -1 {
		t.Errorf("got %g", got)
	}
}
