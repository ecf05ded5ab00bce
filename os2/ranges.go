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

// UnicodeRange is a bitfield which describes which unicode
// blocks or ranges are "functional" in a font.
// Bit 0 is the lowest bit of ulUnicodeRange1.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#ur
type UnicodeRange [4]uint32

// UnicodeRangeBit gives the position of a bit in a [UnicodeRange].
type UnicodeRangeBit int

// Set sets the given bit.
func (ur *UnicodeRange) Set(bit UnicodeRangeBit) {
	ur[bit/32] |= 1 << (bit % 32)
}

// IsSet reports whether the given bit is set.
func (ur *UnicodeRange) IsSet(bit UnicodeRangeBit) bool {
	return ur[bit/32]&(1<<(bit%32)) != 0
}

// Some of the Unicode range bits.
const (
	URBasicLatin         UnicodeRangeBit = 0
	URLatin1Sup          UnicodeRangeBit = 1
	URLatinExtA          UnicodeRangeBit = 2
	URLatinExtB          UnicodeRangeBit = 3
	URGreek              UnicodeRangeBit = 7
	URCyrillic           UnicodeRangeBit = 9
	URHebrew             UnicodeRangeBit = 11
	URArabic             UnicodeRangeBit = 13
	URGeneralPunctuation UnicodeRangeBit = 31
	URCurrencySymbols    UnicodeRangeBit = 33
	URNonPlane0          UnicodeRangeBit = 57
)

// CodePageRange is a bitmask of code pages supported by a font.
// Bit 0 is the lowest bit of ulCodePageRange1, bit 32 is the lowest bit
// of ulCodePageRange2.
type CodePageRange uint64

// CodePage gives the position of a bit in a [CodePageRange].
type CodePage int

// Set sets the given bit.
func (cpr *CodePageRange) Set(bit CodePage) {
	*cpr |= 1 << bit
}

// Words returns the values of the ulCodePageRange1 and ulCodePageRange2
// fields.
func (cpr CodePageRange) Words() (uint32, uint32) {
	return uint32(cpr), uint32(cpr >> 32)
}

// Some of the code pages.
const (
	CP1252      CodePage = 0  // Latin 1
	CP1250      CodePage = 1  // Latin 2: Eastern Europe
	CP1251      CodePage = 2  // Cyrillic
	CP1253      CodePage = 3  // Greek
	CPMacintosh CodePage = 29 // Macintosh Character Set (US Roman)
	CPSymbol    CodePage = 31
	CP437       CodePage = 63 // US
)
