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

package glyf

import (
	"encoding/binary"
	"fmt"
	"strings"

	"seehuhn.de/go/webfont/glyph"
	"seehuhn.de/go/webfont/parser"
)

// CompositeGlyph is a glyph built from other glyphs.
type CompositeGlyph struct {
	Components   []GlyphComponent
	Instructions []byte
}

// GlyphComponent is a single component of a composite glyph.
// Data holds the undecoded arguments and transformation; its length is
// determined by the flags.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#composite-glyph-description
type GlyphComponent struct {
	Flags      ComponentFlag
	GlyphIndex glyph.ID
	Data       []byte
}

// ComponentFlag controls how a component glyph is placed within a
// composite glyph.
type ComponentFlag uint16

// The recognized values for the ComponentFlag field.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#compositeGlyphFlags
const (
	FlagArg1And2AreWords        ComponentFlag = 0x0001
	FlagArgsAreXYValues         ComponentFlag = 0x0002
	FlagRoundXYToGrid           ComponentFlag = 0x0004
	FlagWeHaveAScale            ComponentFlag = 0x0008
	FlagMoreComponents          ComponentFlag = 0x0020
	FlagWeHaveAnXAndYScale      ComponentFlag = 0x0040
	FlagWeHaveATwoByTwo         ComponentFlag = 0x0080
	FlagWeHaveInstructions      ComponentFlag = 0x0100
	FlagUseMyMetrics            ComponentFlag = 0x0200
	FlagOverlapCompound         ComponentFlag = 0x0400
	FlagScaledComponentOffset   ComponentFlag = 0x0800
	FlagUnscaledComponentOffset ComponentFlag = 0x1000
)

var flagNames = []struct {
	flag ComponentFlag
	name string
}{
	{FlagArg1And2AreWords, "ARG_1_AND_2_ARE_WORDS"},
	{FlagArgsAreXYValues, "ARGS_ARE_XY_VALUES"},
	{FlagRoundXYToGrid, "ROUND_XY_TO_GRID"},
	{FlagWeHaveAScale, "WE_HAVE_A_SCALE"},
	{FlagMoreComponents, "MORE_COMPONENTS"},
	{FlagWeHaveAnXAndYScale, "WE_HAVE_AN_X_AND_Y_SCALE"},
	{FlagWeHaveATwoByTwo, "WE_HAVE_A_TWO_BY_TWO"},
	{FlagWeHaveInstructions, "WE_HAVE_INSTRUCTIONS"},
	{FlagUseMyMetrics, "USE_MY_METRICS"},
	{FlagOverlapCompound, "OVERLAP_COMPOUND"},
	{FlagScaledComponentOffset, "SCALED_COMPONENT_OFFSET"},
	{FlagUnscaledComponentOffset, "UNSCALED_COMPONENT_OFFSET"},
}

func (f ComponentFlag) String() string {
	var parts []string
	rest := f
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%04x", uint16(rest)))
	}
	return strings.Join(parts, "|")
}

// argSize returns the number of bytes of arguments and transformation
// data which follow the glyph index of a component.
func (f ComponentFlag) argSize() int {
	n := 2
	if f&FlagArg1And2AreWords != 0 {
		n = 4
	}
	switch {
	case f&FlagWeHaveAScale != 0:
		n += 2
	case f&FlagWeHaveAnXAndYScale != 0:
		n += 4
	case f&FlagWeHaveATwoByTwo != 0:
		n += 8
	}
	return n
}

// decodeGlyphComposite decodes the body of a composite glyph, following
// the glyph header.
func decodeGlyphComposite(data []byte) (*CompositeGlyph, error) {
	res := &CompositeGlyph{}
	hasInstructions := false
	for {
		if len(data) < 4 || len(res.Components) >= maxComponents {
			return nil, errIncompleteGlyph
		}
		flags := ComponentFlag(binary.BigEndian.Uint16(data[0:2]))
		gid := glyph.ID(binary.BigEndian.Uint16(data[2:4]))
		n := 4 + flags.argSize()
		if len(data) < n {
			return nil, errIncompleteGlyph
		}
		res.Components = append(res.Components, GlyphComponent{
			Flags:      flags,
			GlyphIndex: gid,
			Data:       data[4:n],
		})
		data = data[n:]

		if flags&FlagWeHaveInstructions != 0 {
			hasInstructions = true
		}
		if flags&FlagMoreComponents == 0 {
			break
		}
	}

	if hasInstructions && len(data) >= 2 {
		n := int(binary.BigEndian.Uint16(data[0:2]))
		data = data[2:]
		res.Instructions = data[:min(n, len(data))]
	}
	return res, nil
}

// append appends the component records and the instructions to buf.
// The MORE_COMPONENTS flags are set as needed, and WE_HAVE_INSTRUCTIONS
// is set on the last component if there are instructions.
func (cg CompositeGlyph) append(buf []byte) []byte {
	flagged := false
	for _, comp := range cg.Components {
		flagged = flagged || comp.Flags&FlagWeHaveInstructions != 0
	}

	last := len(cg.Components) - 1
	for i, comp := range cg.Components {
		flags := comp.Flags &^ FlagMoreComponents
		if i < last {
			flags |= FlagMoreComponents
		} else if cg.Instructions != nil && !flagged {
			flags |= FlagWeHaveInstructions
		}
		buf = binary.BigEndian.AppendUint16(buf, uint16(flags))
		buf = binary.BigEndian.AppendUint16(buf, uint16(comp.GlyphIndex))
		buf = append(buf, comp.Data...)
	}
	if cg.Instructions != nil {
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(cg.Instructions)))
		buf = append(buf, cg.Instructions...)
	}
	return buf
}

// Components returns the component glyph IDs of a composite glyph.
// Returns nil if the glyph is simple or blank.
func (g *Glyph) Components() []glyph.ID {
	if g == nil {
		return nil
	}
	cg, ok := g.Data.(CompositeGlyph)
	if !ok {
		return nil
	}
	res := make([]glyph.ID, len(cg.Components))
	for i, comp := range cg.Components {
		res[i] = comp.GlyphIndex
	}
	return res
}

// maxComponents bounds the number of components of a composite glyph.
const maxComponents = 1024

var errIncompleteGlyph = &parser.InvalidFontError{
	SubSystem: "webfont/glyf",
	Reason:    "incomplete composite glyph",
}
