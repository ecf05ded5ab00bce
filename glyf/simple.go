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

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/webfont/parser"
)

// SimpleGlyph is a simple glyph.
type SimpleGlyph struct {
	NumContours int16
	Encoded     []byte
}

// A Point is a point in a glyph outline
type Point struct {
	X, Y    funit.Int16
	OnCurve bool
}

// A Contour describes a connected part of a glyph outline.
type Contour []Point

// SimpleUnpacked contains the contours of a SimpleGlyph.
type SimpleUnpacked struct {
	Contours     []Contour
	Instructions []byte
}

// layout describes the structure of the encoded data of a simple glyph.
type layout struct {
	numPoints   int
	instrStart  int
	instrLength int
	end         int // end of the coordinate data
}

// scan checks the structure of the encoded glyph data without decoding
// the coordinates.
func (sg SimpleGlyph) scan() (*layout, error) {
	buf := sg.Encoded
	endPts := 2 * int(sg.NumContours)
	if endPts < 0 || len(buf) < endPts+2 {
		return nil, errInvalidGlyphData
	}

	l := &layout{instrStart: endPts + 2}
	if endPts > 0 {
		l.numPoints = int(binary.BigEndian.Uint16(buf[endPts-2:])) + 1
	}
	l.instrLength = int(binary.BigEndian.Uint16(buf[endPts:]))

	pos := l.instrStart + l.instrLength
	coordBytes := 0
	for seen := 0; seen < l.numPoints; {
		if pos >= len(buf) {
			return nil, errInvalidGlyphData
		}
		flag := buf[pos]
		pos++

		count := 1
		if flag&flagRepeat != 0 {
			if pos >= len(buf) {
				return nil, errInvalidGlyphData
			}
			count += int(buf[pos])
			pos++
		}
		perPoint := coordSize(flag, flagXShortVec, flagXSameOrPos) +
			coordSize(flag, flagYShortVec, flagYSameOrPos)
		coordBytes += perPoint * count
		seen += count
	}

	l.end = pos + coordBytes
	if l.end > len(buf) {
		return nil, errInvalidGlyphData
	}
	return l, nil
}

// coordSize returns the number of bytes used by one coordinate delta with
// the given flags.
func coordSize(flag, shortFlag, sameOrPosFlag byte) int {
	switch {
	case flag&shortFlag != 0:
		return 1
	case flag&sameOrPosFlag != 0:
		return 0
	default:
		return 2
	}
}

// removePadding strips trailing bytes after the coordinate data.
func (sg *SimpleGlyph) removePadding() error {
	l, err := sg.scan()
	if err != nil {
		return err
	}
	sg.Encoded = sg.Encoded[:l.end]
	return nil
}

// Instructions returns the TrueType instructions of the glyph.
// The returned slice points into the glyph data.
func (sg SimpleGlyph) Instructions() []byte {
	l, err := sg.scan()
	if err != nil || l.instrLength == 0 {
		return nil
	}
	return sg.Encoded[l.instrStart : l.instrStart+l.instrLength]
}

// NumPoints returns the number of outline points of the glyph.
func (sg SimpleGlyph) NumPoints() int {
	l, err := sg.scan()
	if err != nil {
		return 0
	}
	return l.numPoints
}

// Pack encodes the contours and instructions into the binary format.
func (sd *SimpleUnpacked) Pack() SimpleGlyph {
	var buf []byte
	numPoints := 0
	for _, contour := range sd.Contours {
		numPoints += len(contour)
		buf = binary.BigEndian.AppendUint16(buf, uint16(numPoints-1))
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(sd.Instructions)))
	buf = append(buf, sd.Instructions...)

	flags := make([]byte, 0, numPoints)
	var xs, ys coordWriter
	var prev Point
	for _, contour := range sd.Contours {
		for _, pt := range contour {
			var flag byte
			if pt.OnCurve {
				flag = flagOnCurve
			}
			flag |= xs.add(pt.X-prev.X, flagXShortVec, flagXSameOrPos)
			flag |= ys.add(pt.Y-prev.Y, flagYShortVec, flagYSameOrPos)
			flags = append(flags, flag)
			prev = pt
		}
	}

	// runs of identical flags use REPEAT_FLAG
	for i := 0; i < len(flags); {
		run := 1
		for i+run < len(flags) && flags[i+run] == flags[i] && run < 256 {
			run++
		}
		if run > 1 {
			buf = append(buf, flags[i]|flagRepeat, byte(run-1))
		} else {
			buf = append(buf, flags[i])
		}
		i += run
	}
	buf = append(buf, xs...)
	buf = append(buf, ys...)

	return SimpleGlyph{
		NumContours: int16(len(sd.Contours)),
		Encoded:     buf,
	}
}

// coordWriter collects the encoded deltas for one coordinate axis.
type coordWriter []byte

// add appends the shortest encoding of delta and returns the
// corresponding flag bits.
func (w *coordWriter) add(delta funit.Int16, shortFlag, sameOrPosFlag byte) byte {
	switch {
	case delta == 0:
		return sameOrPosFlag
	case delta > 0 && delta <= 255:
		*w = append(*w, byte(delta))
		return shortFlag | sameOrPosFlag
	case delta < 0 && delta >= -255:
		*w = append(*w, byte(-delta))
		return shortFlag
	default:
		*w = binary.BigEndian.AppendUint16(*w, uint16(delta))
		return 0
	}
}

// AsGlyph packs the outline and computes the bounding box.
func (sd *SimpleUnpacked) AsGlyph() *Glyph {
	var bbox funit.Rect16
	first := true
	for _, contour := range sd.Contours {
		for _, pt := range contour {
			if first {
				bbox = funit.Rect16{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
				first = false
				continue
			}
			bbox.LLx = min(bbox.LLx, pt.X)
			bbox.LLy = min(bbox.LLy, pt.Y)
			bbox.URx = max(bbox.URx, pt.X)
			bbox.URy = max(bbox.URy, pt.Y)
		}
	}
	return &Glyph{
		Rect16: bbox,
		Data:   sd.Pack(),
	}
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#simpleGlyphFlags
const (
	flagOnCurve    = 0x01 // ON_CURVE_POINT
	flagXShortVec  = 0x02 // X_SHORT_VECTOR
	flagYShortVec  = 0x04 // Y_SHORT_VECTOR
	flagRepeat     = 0x08 // REPEAT_FLAG
	flagXSameOrPos = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSameOrPos = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
)

var errInvalidGlyphData = &parser.InvalidFontError{
	SubSystem: "webfont/glyf",
	Reason:    "invalid glyph data",
}
