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

// Package glyf reads and writes "glyf" and "loca" tables.
//
// Glyph outlines are kept in their binary form.  Only the information
// needed to analyse a font is decoded: bounding boxes, the components
// of composite glyphs and the location of the TrueType instructions.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"encoding/binary"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/webfont/glyph"
	"seehuhn.de/go/webfont/parser"
)

// Glyphs contains the TrueType glyph outlines of a font, indexed by
// glyph ID.
type Glyphs []*Glyph

// Glyph represents a single glyph in a TrueType font.
// Blank glyphs are represented by nil.
type Glyph struct {
	funit.Rect16
	Data any // either SimpleGlyph or CompositeGlyph
}

// Encoded represents the data of a "glyf" and "loca" table.
type Encoded struct {
	GlyfData   []byte
	LocaData   []byte
	LocaFormat int16
}

// Decode converts the data from the "glyf" and "loca" tables into a slice of
// Glyphs.  The value for LocaFormat is specified in the indexToLocFormat entry
// in the "head" table.
//
// If numGlyphs is positive, the "loca" table must contain offsets for
// at least this many glyphs.  Otherwise the number of glyphs is taken
// from the "loca" table.
func Decode(enc *Encoded, numGlyphs int) (Glyphs, error) {
	offs, err := decodeLoca(enc)
	if err != nil {
		return nil, err
	}
	switch {
	case numGlyphs <= 0:
		numGlyphs = len(offs) - 1
	case len(offs)-1 < numGlyphs:
		return nil, errTooFewOffsets
	}

	gg := make(Glyphs, numGlyphs)
	for gid := range gg {
		start, end := offs[gid], offs[gid+1]
		if start > end || end > len(enc.GlyfData) {
			return nil, errGlyphOffset
		}
		gg[gid], err = decodeGlyph(enc.GlyfData[start:end])
		if err != nil {
			return nil, err
		}
	}
	return gg, nil
}

// decodeGlyph decodes the glyph header and dispatches on the number of
// contours.  A zero-length glyph is blank and gives nil.
// The result retains sub-slices of data.
func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < glyphHeaderSize {
		return nil, errGlyphHeader
	}

	numContours := int16(binary.BigEndian.Uint16(data[0:2]))
	g := &Glyph{
		Rect16: funit.Rect16{
			LLx: funit.Int16(binary.BigEndian.Uint16(data[2:4])),
			LLy: funit.Int16(binary.BigEndian.Uint16(data[4:6])),
			URx: funit.Int16(binary.BigEndian.Uint16(data[6:8])),
			URy: funit.Int16(binary.BigEndian.Uint16(data[8:10])),
		},
	}

	body := data[glyphHeaderSize:]
	if numContours < 0 {
		comp, err := decodeGlyphComposite(body)
		if err != nil {
			return nil, err
		}
		g.Data = *comp
		return g, nil
	}

	simple := SimpleGlyph{NumContours: numContours, Encoded: body}
	if err := simple.removePadding(); err != nil {
		return nil, err
	}
	g.Data = simple
	return g, nil
}

// Encode encodes the Glyphs into a "glyf" and "loca" table.
func (gg Glyphs) Encode() *Encoded {
	offs := make([]int, 1, len(gg)+1)
	var glyfData []byte
	for _, g := range gg {
		glyfData = g.append(glyfData)
		offs = append(offs, len(glyfData))
	}
	locaData, locaFormat := encodeLoca(offs)

	return &Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: locaFormat,
	}
}

// append appends the binary form of the glyph to buf, padded to an even
// number of bytes.  Blank glyphs take no space.
func (g *Glyph) append(buf []byte) []byte {
	if g == nil {
		return buf
	}

	var numContours int16
	switch d := g.Data.(type) {
	case SimpleGlyph:
		numContours = d.NumContours
	case CompositeGlyph:
		numContours = -1
	default:
		panic("unexpected glyph type")
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(numContours))
	for _, v := range []funit.Int16{g.LLx, g.LLy, g.URx, g.URy} {
		buf = binary.BigEndian.AppendUint16(buf, uint16(v))
	}

	switch d := g.Data.(type) {
	case SimpleGlyph:
		buf = append(buf, d.Encoded...)
	case CompositeGlyph:
		buf = d.append(buf)
	}

	if len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// InstructionLength returns the number of bytes of TrueType instructions
// stored with the glyph.
func (g *Glyph) InstructionLength() int {
	if g == nil {
		return 0
	}
	switch d := g.Data.(type) {
	case SimpleGlyph:
		return len(d.Instructions())
	case CompositeGlyph:
		return len(d.Instructions)
	}
	return 0
}

// BBox returns the union of the bounding boxes of all non-blank glyphs.
// The zero rectangle is returned if all glyphs are blank.
func (gg Glyphs) BBox() funit.Rect16 {
	var bbox funit.Rect16
	first := true
	for _, g := range gg {
		switch {
		case g == nil:
			// blank glyphs have no extent
		case first:
			bbox = g.Rect16
			first = false
		default:
			bbox.LLx = min(bbox.LLx, g.LLx)
			bbox.LLy = min(bbox.LLy, g.LLy)
			bbox.URx = max(bbox.URx, g.URx)
			bbox.URy = max(bbox.URy, g.URy)
		}
	}
	return bbox
}

// Lookup returns the glyph with the given ID, or nil if the glyph is
// blank or the ID is out of range.
func (gg Glyphs) Lookup(gid glyph.ID) *Glyph {
	if int(gid) >= len(gg) {
		return nil
	}
	return gg[gid]
}

const glyphHeaderSize = 10

var (
	errTooFewOffsets = &parser.InvalidFontError{
		SubSystem: "webfont/loca",
		Reason:    "too few glyph offsets",
	}
	errGlyphOffset = &parser.InvalidFontError{
		SubSystem: "webfont/glyf",
		Reason:    "invalid glyph offset",
	}
	errGlyphHeader = &parser.InvalidFontError{
		SubSystem: "webfont/glyf",
		Reason:    "incomplete glyph header",
	}
)
