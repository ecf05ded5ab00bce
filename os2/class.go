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

import "strconv"

// Weight is the visual weight of the characters in a font.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#usweightclass
type Weight uint16

// Common weight classes.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

func (w Weight) String() string {
	var name string
	switch w {
	case WeightThin:
		name = "Thin"
	case WeightExtraLight:
		name = "Extra Light"
	case WeightLight:
		name = "Light"
	case WeightNormal:
		name = "Normal"
	case WeightMedium:
		name = "Medium"
	case WeightSemiBold:
		name = "Semi Bold"
	case WeightBold:
		name = "Bold"
	case WeightExtraBold:
		name = "Extra Bold"
	case WeightBlack:
		name = "Black"
	default:
		return strconv.Itoa(int(w))
	}
	return strconv.Itoa(int(w)) + " (" + name + ")"
}

// Width is the relative change from the normal aspect ratio.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2#uswidthclass
type Width uint16

var widthNames = []string{
	"", "Ultra Condensed", "Extra Condensed", "Condensed", "Semi Condensed",
	"Normal", "Semi Expanded", "Expanded", "Extra Expanded", "Ultra Expanded",
}

func (w Width) String() string {
	if w >= 1 && int(w) < len(widthNames) {
		return widthNames[w]
	}
	return "Width(" + strconv.Itoa(int(w)) + ")"
}
