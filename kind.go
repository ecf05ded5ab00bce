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

package webfont

// Kind classifies the tables of a font.
type Kind int

// The table kinds known to this package.
// Tables of kind KindOpaque are copied without interpretation.
const (
	KindOpaque Kind = iota
	KindHead
	KindHhea
	KindHmtx
	KindMaxp
	KindName
	KindCmap
	KindGlyf
	KindLoca
	KindOS2
	KindPost
	KindHinting
	KindSignature
	KindCFF
)

var kindOfTag = map[string]Kind{
	"head": KindHead,
	"hhea": KindHhea,
	"hmtx": KindHmtx,
	"maxp": KindMaxp,
	"name": KindName,
	"cmap": KindCmap,
	"glyf": KindGlyf,
	"loca": KindLoca,
	"OS/2": KindOS2,
	"post": KindPost,
	"fpgm": KindHinting,
	"prep": KindHinting,
	"cvt ": KindHinting,
	"hdmx": KindHinting,
	"VDMX": KindHinting,
	"LTSH": KindHinting,
	"DSIG": KindSignature,
	"CFF ": KindCFF,
	"CFF2": KindCFF,
}

// KindOf returns the kind of the table with the given tag.
func KindOf(tag string) Kind {
	return kindOfTag[tag]
}

func (k Kind) String() string {
	switch k {
	case KindOpaque:
		return "opaque"
	case KindHead:
		return "head"
	case KindHhea:
		return "hhea"
	case KindHmtx:
		return "hmtx"
	case KindMaxp:
		return "maxp"
	case KindName:
		return "name"
	case KindCmap:
		return "cmap"
	case KindGlyf:
		return "glyf"
	case KindLoca:
		return "loca"
	case KindOS2:
		return "OS/2"
	case KindPost:
		return "post"
	case KindHinting:
		return "hinting"
	case KindSignature:
		return "signature"
	case KindCFF:
		return "CFF"
	default:
		return "unknown"
	}
}
