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

// Package debug provides small synthetic fonts for use in unit tests.
package debug

import (
	"time"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/cmap"
	"seehuhn.de/go/webfont/glyf"
	"seehuhn.de/go/webfont/glyph"
	"seehuhn.de/go/webfont/head"
	"seehuhn.de/go/webfont/header"
	"seehuhn.de/go/webfont/hmtx"
	"seehuhn.de/go/webfont/maxp"
	"seehuhn.de/go/webfont/name"
	"seehuhn.de/go/webfont/os2"
)

// Glyph IDs of the glyphs in the fonts returned by MakeSimpleFont.
const (
	GidNotdef glyph.ID = iota
	GidA
	GidSpace
	GidAring
	GidRing
	NumGlyphs = 5
)

// FamilyName is the family name of the test fonts.
const FamilyName = "Debug Sans"

// Instructions is the glyph program attached to the glyph for "A".
var Instructions = []byte{0xB0, 0x01, 0x2F}

// Hinting tables of the TrueType test font.
var (
	Fpgm = []byte{0xB0, 0x00, 0x2C, 0x4B}
	Prep = []byte{0xB8, 0x01, 0xFF, 0x85, 0xB0, 0x04, 0x8D}
	Cvt  = []byte{0x00, 0x14, 0x02, 0xBC, 0x00, 0x00}
)

// MakeSimpleFont creates a TrueType font with five glyphs:
// ".notdef", "A", "space", "Aring" (a composite of "A" and "ring") and
// "ring".  The characters U+0020, U+0041 and U+00C5 are mapped; the
// ".notdef" and "ring" glyphs are not.
//
// In addition to the required tables, the font contains the hinting
// tables "fpgm", "prep" and "cvt ", an empty "DSIG" table and a "post"
// table.
func MakeSimpleFont() *webfont.Font {
	gg := makeGlyphs()
	enc := gg.Encode()

	tables := []*webfont.Table{
		webfont.NewTable("head", makeHead(gg.BBox(), enc.LocaFormat)),
	}
	tables = append(tables, commonTables()...)
	tables = append(tables,
		webfont.NewTable("maxp", makeMaxp(true)),
		webfont.NewTable("fpgm", Fpgm),
		webfont.NewTable("prep", Prep),
		webfont.NewTable("cvt ", Cvt),
		webfont.NewTable("loca", enc.LocaData),
		webfont.NewTable("glyf", enc.GlyfData),
		webfont.NewTable("DSIG", []byte{0, 0, 0, 1, 0, 0, 0, 0}),
	)

	f, err := webfont.New(header.ScalerTypeTrueType, tables...)
	if err != nil {
		panic(err)
	}
	return f
}

// MakeCFFFont creates a font with the same metrics and character mapping
// as MakeSimpleFont, but with an opaque "CFF " table in place of the
// TrueType outlines.
func MakeCFFFont() *webfont.Font {
	bbox := funit.Rect16{LLx: 0, LLy: -10, URx: 600, URy: 900}

	tables := []*webfont.Table{
		webfont.NewTable("head", makeHead(bbox, 0)),
	}
	tables = append(tables, commonTables()...)
	tables = append(tables,
		webfont.NewTable("maxp", makeMaxp(false)),
		webfont.NewTable("CFF ", []byte{1, 0, 4, 4, 0, 1, 1, 1, 'X', 0}),
	)

	f, err := webfont.New(header.ScalerTypeCFF, tables...)
	if err != nil {
		panic(err)
	}
	return f
}

func commonTables() []*webfont.Table {
	hhea, hmtx := makeHmtx()
	return []*webfont.Table{
		webfont.NewTable("hhea", hhea),
		webfont.NewTable("OS/2", makeOS2()),
		webfont.NewTable("hmtx", hmtx),
		webfont.NewTable("cmap", makeCmap()),
		webfont.NewTable("name", makeName()),
		webfont.NewTable("post", makePost()),
	}
}

func makeGlyphs() glyf.Glyphs {
	notdef := &glyf.SimpleUnpacked{
		Contours: []glyf.Contour{
			{{X: 100, Y: 0, OnCurve: true}, {X: 100, Y: 700, OnCurve: true},
				{X: 500, Y: 700, OnCurve: true}, {X: 500, Y: 0, OnCurve: true}},
		},
	}
	a := &glyf.SimpleUnpacked{
		Contours: []glyf.Contour{
			{{X: 0, Y: 0, OnCurve: true}, {X: 300, Y: 700, OnCurve: true},
				{X: 600, Y: 0, OnCurve: true}},
		},
		Instructions: Instructions,
	}
	ring := &glyf.SimpleUnpacked{
		Contours: []glyf.Contour{
			{{X: 250, Y: 750, OnCurve: true}, {X: 300, Y: 900, OnCurve: false},
				{X: 350, Y: 750, OnCurve: true}},
		},
	}

	aring := &glyf.Glyph{
		Rect16: funit.Rect16{LLx: 0, LLy: 0, URx: 600, URy: 900},
		Data: glyf.CompositeGlyph{
			Components: []glyf.GlyphComponent{
				{
					Flags:      glyf.FlagArgsAreXYValues | glyf.FlagUseMyMetrics,
					GlyphIndex: GidA,
					Data:       []byte{0, 0},
				},
				{
					Flags:      glyf.FlagArgsAreXYValues,
					GlyphIndex: GidRing,
					Data:       []byte{0, 0},
				},
			},
		},
	}

	gg := make(glyf.Glyphs, NumGlyphs)
	gg[GidNotdef] = notdef.AsGlyph()
	gg[GidA] = a.AsGlyph()
	gg[GidAring] = aring
	gg[GidRing] = ring.AsGlyph()
	return gg
}

func makeHead(bbox funit.Rect16, locaFormat int16) []byte {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	info := &head.Info{
		FontRevision:      0x0001_8000, // 1.5
		Flags:             0x000B,
		UnitsPerEm:        1000,
		Created:           created,
		Modified:          created,
		FontBBox:          bbox,
		LowestRecPPEM:     8,
		IndexToLocFormat:  locaFormat,
		FontDirectionHint: 2,
	}
	return info.Encode()
}

// Widths are the advance widths of the glyphs.
var Widths = []funit.Uint16{500, 600, 250, 600, 200}

func makeHmtx() ([]byte, []byte) {
	info := &hmtx.Info{
		Ascent:         900,
		Descent:        -200,
		LineGap:        90,
		CaretSlopeRise: 1,
		Widths:         Widths,
		LSB:            []funit.Int16{100, 0, 0, 0, 250},
	}
	return info.Encode()
}

func makeMaxp(trueType bool) []byte {
	info := &maxp.Info{NumGlyphs: NumGlyphs}
	if trueType {
		info.TTF = &maxp.TTFInfo{
			MaxPoints:             4,
			MaxContours:           1,
			MaxCompositePoints:    6,
			MaxCompositeContours:  2,
			MaxZones:              2,
			MaxFunctionDefs:       1,
			MaxStackElements:      16,
			MaxSizeOfInstructions: uint16(len(Instructions)),
			MaxComponentElements:  2,
			MaxComponentDepth:     1,
		}
	}
	return info.Encode()
}

// CMap is the character to glyph mapping of the test fonts.
var CMap = map[rune]glyph.ID{
	' ':    GidSpace,
	'A':    GidA,
	0x00C5: GidAring,
}

// MakeFontWithCMap returns a variant of the font from MakeSimpleFont,
// where the cmap table maps the given characters.  Glyph IDs must be
// smaller than NumGlyphs.
func MakeFontWithCMap(m map[rune]glyph.ID) *webfont.Font {
	return MakeSimpleFont().WithTable("cmap", encodeCmap(m))
}

func makeCmap() []byte {
	return encodeCmap(CMap)
}

func encodeCmap(m map[rune]glyph.ID) []byte {
	var data []byte
	var keys []cmap.Key
	if maxRune(m) <= 0xFFFF {
		sub := cmap.Format4{}
		for r, gid := range m {
			sub[uint16(r)] = gid
		}
		data = sub.Encode(0)
		keys = []cmap.Key{{PlatformID: 0, EncodingID: 3}, {PlatformID: 3, EncodingID: 1}}
	} else {
		sub := cmap.Format12{}
		for r, gid := range m {
			sub[uint32(r)] = gid
		}
		data = sub.Encode(0)
		keys = []cmap.Key{{PlatformID: 0, EncodingID: 4}, {PlatformID: 3, EncodingID: 10}}
	}
	table := cmap.Table{}
	for _, key := range keys {
		table[key] = data
	}
	return table.Encode()
}

func maxRune(m map[rune]glyph.ID) rune {
	var res rune
	for r := range m {
		res = max(res, r)
	}
	return res
}

// Values of the name table entries of the test fonts.
const (
	Subfamily = "Regular"
	Version   = "Version 1.500"
	FullName  = FamilyName + " " + Subfamily
)

func makeName() []byte {
	info := &name.Info{
		Records: []*name.Record{
			name.NewWindowsRecord(name.Family, FamilyName),
			name.NewWindowsRecord(name.Subfamily, Subfamily),
			name.NewWindowsRecord(name.Version, Version),
			name.NewWindowsRecord(name.FullName, FullName),
			{
				PlatformID: name.PlatformMacintosh,
				EncodingID: 0,
				LanguageID: 0,
				NameID:     name.Family,
				Raw:        []byte(FamilyName),
			},
		},
	}
	return info.Encode()
}

func makeOS2() []byte {
	info := &os2.Info{
		Version:       4,
		WeightClass:   os2.WeightNormal,
		WidthClass:    5,
		FsType:        0x0008,
		Selection:     0x0040,
		Ascent:        900,
		Descent:       -200,
		LineGap:       90,
		WinAscent:     900,
		WinDescent:    200,
		CapHeight:     700,
		XHeight:       500,
		Panose:        [10]byte{2, 11, 5, 2, 4, 5, 4, 2, 2, 4},
		Vendor:        "DBUG",
		AvgGlyphWidth: 430,

		FirstCharIndex: 0x0020,
		LastCharIndex:  0x00C5,
	}
	info.UnicodeRange.Set(os2.URBasicLatin)
	info.UnicodeRange.Set(os2.URLatin1Sup)
	info.CodePageRange.Set(os2.CP1252)
	return info.Encode()
}

func makePost() []byte {
	// version 3.0 header, no glyph names
	post := make([]byte, 32)
	post[1] = 3
	post[8], post[9] = 0xFF, 0x9C // underline position -100
	post[11] = 50                 // underline thickness
	return post
}
