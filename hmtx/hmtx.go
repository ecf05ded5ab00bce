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

// Package hmtx reads and writes the "hhea" and "hmtx" tables.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

import (
	"encoding/binary"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/webfont/parser"
)

// Info contains information from the "hhea" and "hmtx" tables.
type Info struct {
	Ascent  funit.Int16
	Descent funit.Int16 // negative
	LineGap funit.Int16

	AdvanceWidthMax     uint16
	MinLeftSideBearing  funit.Int16
	MinRightSideBearing funit.Int16
	XMaxExtent          funit.Int16

	CaretSlopeRise int16
	CaretSlopeRun  int16
	CaretOffset    funit.Int16

	// NumHMetrics is the number of full metric records in "hmtx".
	NumHMetrics int

	// Widths contains the advance widths, indexed by glyph ID.
	Widths []funit.Uint16

	// LSB contains the left side bearings, indexed by glyph ID.
	LSB []funit.Int16
}

const hheaLength = 36

// DecodeHhea decodes the "hhea" table.  The glyph metrics are left empty.
func DecodeHhea(hhea []byte) (*Info, error) {
	if len(hhea) < hheaLength {
		return nil, errHheaTooShort
	}
	if binary.BigEndian.Uint16(hhea[0:2]) != 1 {
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/hhea",
			Feature:   "hhea table version",
		}
	}
	info := &Info{
		Ascent:              funit.Int16(binary.BigEndian.Uint16(hhea[4:6])),
		Descent:             funit.Int16(binary.BigEndian.Uint16(hhea[6:8])),
		LineGap:             funit.Int16(binary.BigEndian.Uint16(hhea[8:10])),
		AdvanceWidthMax:     binary.BigEndian.Uint16(hhea[10:12]),
		MinLeftSideBearing:  funit.Int16(binary.BigEndian.Uint16(hhea[12:14])),
		MinRightSideBearing: funit.Int16(binary.BigEndian.Uint16(hhea[14:16])),
		XMaxExtent:          funit.Int16(binary.BigEndian.Uint16(hhea[16:18])),
		CaretSlopeRise:      int16(binary.BigEndian.Uint16(hhea[18:20])),
		CaretSlopeRun:       int16(binary.BigEndian.Uint16(hhea[20:22])),
		CaretOffset:         funit.Int16(binary.BigEndian.Uint16(hhea[22:24])),
		NumHMetrics:         int(binary.BigEndian.Uint16(hhea[34:36])),
	}
	return info, nil
}

// Decode decodes the "hhea" and "hmtx" tables.
//
// If numGlyphs is positive, the width and side bearing slices are
// extended to numGlyphs entries: the glyphs after the last full metric
// record share its advance width.  Otherwise only the full metric
// records are decoded.
func Decode(hhea, hmtx []byte, numGlyphs int) (*Info, error) {
	info, err := DecodeHhea(hhea)
	if err != nil {
		return nil, err
	}

	n := info.NumHMetrics
	if numGlyphs <= 0 {
		numGlyphs = n
	}
	if n == 0 && numGlyphs > 0 {
		return nil, errNoHMetrics
	}
	if n > numGlyphs {
		n = numGlyphs
	}
	if len(hmtx) < 4*n {
		return nil, errHmtxTooShort
	}

	info.Widths = make([]funit.Uint16, numGlyphs)
	info.LSB = make([]funit.Int16, numGlyphs)
	for i := 0; i < n; i++ {
		info.Widths[i] = funit.Uint16(binary.BigEndian.Uint16(hmtx[4*i:]))
		info.LSB[i] = funit.Int16(binary.BigEndian.Uint16(hmtx[4*i+2:]))
	}
	pos := 4 * n
	for i := n; i < numGlyphs; i++ {
		info.Widths[i] = info.Widths[n-1]
		if pos+2 <= len(hmtx) {
			info.LSB[i] = funit.Int16(binary.BigEndian.Uint16(hmtx[pos:]))
		}
		pos += 2
	}
	return info, nil
}

// Encode returns the binary form of the "hhea" and "hmtx" tables.
// The number of full metric records is minimised, and the hhea
// table fields AdvanceWidthMax and NumHMetrics are updated from the
// widths.
func (info *Info) Encode() (hhea, hmtx []byte) {
	numGlyphs := len(info.Widths)
	n := numGlyphs
	for n > 1 && info.Widths[n-1] == info.Widths[n-2] {
		n--
	}

	var widthMax funit.Uint16
	if len(info.Widths) > 0 {
		widthMax = slices.Max(info.Widths)
	}

	hhea = make([]byte, hheaLength)
	hhea[1] = 1 // version 1.0
	binary.BigEndian.PutUint16(hhea[4:6], uint16(info.Ascent))
	binary.BigEndian.PutUint16(hhea[6:8], uint16(info.Descent))
	binary.BigEndian.PutUint16(hhea[8:10], uint16(info.LineGap))
	binary.BigEndian.PutUint16(hhea[10:12], uint16(widthMax))
	binary.BigEndian.PutUint16(hhea[12:14], uint16(info.MinLeftSideBearing))
	binary.BigEndian.PutUint16(hhea[14:16], uint16(info.MinRightSideBearing))
	binary.BigEndian.PutUint16(hhea[16:18], uint16(info.XMaxExtent))
	binary.BigEndian.PutUint16(hhea[18:20], uint16(info.CaretSlopeRise))
	binary.BigEndian.PutUint16(hhea[20:22], uint16(info.CaretSlopeRun))
	binary.BigEndian.PutUint16(hhea[22:24], uint16(info.CaretOffset))
	binary.BigEndian.PutUint16(hhea[34:36], uint16(n))

	hmtx = make([]byte, 4*n+2*(numGlyphs-n))
	for i := 0; i < numGlyphs; i++ {
		var lsb funit.Int16
		if i < len(info.LSB) {
			lsb = info.LSB[i]
		}
		if i < n {
			binary.BigEndian.PutUint16(hmtx[4*i:], uint16(info.Widths[i]))
			binary.BigEndian.PutUint16(hmtx[4*i+2:], uint16(lsb))
		} else {
			binary.BigEndian.PutUint16(hmtx[4*n+2*(i-n):], uint16(lsb))
		}
	}
	return hhea, hmtx
}

// WidthRange returns the smallest and largest advance width.
// Both values are zero if there are no glyphs.
func (info *Info) WidthRange() (minWidth, maxWidth funit.Uint16) {
	for i, w := range info.Widths {
		if i == 0 || w < minWidth {
			minWidth = w
		}
		if i == 0 || w > maxWidth {
			maxWidth = w
		}
	}
	return minWidth, maxWidth
}

var (
	errHheaTooShort = &parser.InvalidFontError{
		SubSystem: "webfont/hhea",
		Reason:    "table too short",
	}
	errHmtxTooShort = &parser.InvalidFontError{
		SubSystem: "webfont/hmtx",
		Reason:    "table too short",
	}
	errNoHMetrics = &parser.InvalidFontError{
		SubSystem: "webfont/hhea",
		Reason:    "numOfLongHorMetrics is zero",
	}
)
