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

// Package cmap reads and writes "cmap" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"cmp"
	"encoding/binary"
	"iter"
	"math"
	"strconv"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/webfont/glyph"
	"seehuhn.de/go/webfont/parser"
)

// Key selects a subtable of a cmap table.
type Key struct {
	PlatformID uint16 // Platform ID.
	EncodingID uint16 // Platform-specific encoding ID.
	Language   uint16
}

// Table contains all subtables from a cmap table.
type Table map[Key][]byte

// Subtable represents a decoded cmap subtable.
type Subtable interface {
	// Lookup returns the glyph index for the given rune.
	// If the rune is not mapped, Lookup returns 0.
	Lookup(r rune) glyph.ID

	// Encode returns the binary form of the subtable.
	Encode(language uint16) []byte

	// CodeRange returns the smallest and largest code point in the subtable.
	CodeRange() (low, high rune)

	// All iterates over all characters which are mapped to non-zero
	// glyph IDs, in order of increasing character code.
	All() iter.Seq2[rune, glyph.ID]
}

// Decode returns all subtables of the given "cmap" table.
// The returned subtables are guaranteed to be at least 10 bytes long
// and to have a valid format value (0, 2, 4, 6, 8, 10, 12, 13 or 14)
// in the first two bytes.
//
// Language IDs are only significant on the Macintosh platform and are
// set to zero for all other subtables.
func Decode(data []byte) (Table, error) {
	if len(data) < 4 || len(data) > math.MaxUint32 {
		return nil, errMalformedTable
	}
	if version := binary.BigEndian.Uint16(data); version != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/cmap",
			Feature:   "cmap table version " + strconv.Itoa(int(version)),
		}
	}
	numTables := int(binary.BigEndian.Uint16(data[2:]))
	headerSize := 4 + 8*numTables
	if len(data) < headerSize {
		return nil, errMalformedTable
	}

	// byte ranges already claimed, sorted by start
	var used []extent

	res := make(Table, numTables)
	for i := range numTables {
		rec := data[4+8*i : 12+8*i]
		key := Key{
			PlatformID: binary.BigEndian.Uint16(rec[0:]),
			EncodingID: binary.BigEndian.Uint16(rec[2:]),
		}
		if key.PlatformID > 4 {
			return nil, errMalformedTable
		}
		offs := binary.BigEndian.Uint32(rec[4:])
		if offs < uint32(headerSize) {
			return nil, errMalformedTable
		}

		length, language, err := subtableHeader(data, offs)
		if err != nil {
			return nil, err
		}
		if key.PlatformID == 1 {
			key.Language = language
		}

		ext := extent{offs, offs + length}
		idx, found := slices.BinarySearchFunc(used, ext.start, func(e extent, x uint32) int {
			return cmp.Compare(e.start, x)
		})
		if !found {
			if idx > 0 && ext.start < used[idx-1].end ||
				idx < len(used) && ext.end > used[idx].start {
				return nil, errMalformedTable
			}
			used = slices.Insert(used, idx, ext)
		}

		res[key] = data[ext.start:ext.end:ext.end]
	}

	return res, nil
}

type extent struct {
	start, end uint32
}

// subtableHeader reads the length and language fields of the subtable
// starting at data[offs:].  The position of these fields depends on the
// subtable format.
func subtableHeader(data []byte, offs uint32) (length uint32, language uint16, err error) {
	const minLength = 10 // an empty format 6 subtable

	avail := uint64(len(data)) - uint64(offs)
	if uint64(offs) > uint64(len(data)) || avail < minLength {
		return 0, 0, errMalformedTable
	}
	sub := data[offs:]

	need := uint32(minLength)
	switch format := binary.BigEndian.Uint16(sub); format {
	case 0, 2, 4, 6:
		length = uint32(binary.BigEndian.Uint16(sub[2:]))
		language = binary.BigEndian.Uint16(sub[4:])
	case 8, 10, 12, 13:
		need = 12
		if avail < uint64(need) {
			return 0, 0, errMalformedTable
		}
		length = binary.BigEndian.Uint32(sub[4:])
		language = uint16(binary.BigEndian.Uint32(sub[8:]))
	case 14:
		length = binary.BigEndian.Uint32(sub[2:])
	default:
		return 0, 0, errMalformedTable
	}
	if length < need || uint64(length) > avail {
		return 0, 0, errMalformedTable
	}
	return length, language, nil
}

// Encode converts the cmap table into binary form.
// Identical subtables are stored only once.
func (ss Table) Encode() []byte {
	keys := ss.Keys()
	headerSize := 4 + 8*len(keys)

	offsets := make([]uint32, len(keys))
	seen := make(map[string]uint32)
	var body []byte
	for i, key := range keys {
		data := ss[key]
		if offs, ok := seen[string(data)]; ok {
			offsets[i] = offs
			continue
		}
		offs := uint32(headerSize + len(body))
		seen[string(data)] = offs
		offsets[i] = offs
		body = append(body, data...)
	}

	res := make([]byte, 0, headerSize+len(body))
	res = binary.BigEndian.AppendUint16(res, 0) // version
	res = binary.BigEndian.AppendUint16(res, uint16(len(keys)))
	for i, key := range keys {
		res = binary.BigEndian.AppendUint16(res, key.PlatformID)
		res = binary.BigEndian.AppendUint16(res, key.EncodingID)
		res = binary.BigEndian.AppendUint32(res, offsets[i])
	}
	return append(res, body...)
}

// Keys returns the keys of all subtables, sorted by platform ID, encoding
// ID and language.
func (ss Table) Keys() []Key {
	keys := make([]Key, 0, len(ss))
	for key := range ss {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if a.PlatformID != b.PlatformID {
			return cmp.Compare(a.PlatformID, b.PlatformID)
		}
		if a.EncodingID != b.EncodingID {
			return cmp.Compare(a.EncodingID, b.EncodingID)
		}
		return cmp.Compare(a.Language, b.Language)
	})
	return keys
}

// Format returns the format number of the given subtable,
// or -1 if the subtable does not exist.
func (ss Table) Format(key Key) int {
	data, ok := ss[key]
	if !ok || len(data) < 2 {
		return -1
	}
	return int(binary.BigEndian.Uint16(data))
}

// Get decodes the given cmap subtable.
//
// Subtables for the Macintosh platform with Roman encoding are converted
// so that Lookup and All operate on Unicode code points.  Other
// Macintosh encodings and the subtable formats 2, 8 and 14 are not
// supported.
func (ss Table) Get(key Key) (Subtable, error) {
	data, ok := ss[key]
	if !ok {
		return nil, errNoSubtable
	}

	if key.PlatformID == 1 && key.EncodingID != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/cmap",
			Feature:   "Macintosh encoding",
		}
	}

	format := binary.BigEndian.Uint16(data)
	decode := decoders[format]
	if decode == nil {
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/cmap",
			Feature:   "cmap format " + strconv.Itoa(int(format)),
		}
	}
	sub, err := decode(data)
	if err != nil {
		return nil, err
	}
	if key.PlatformID == 1 {
		return macRoman{sub}, nil
	}
	return sub, nil
}

// GetNoLang decodes the subtable with the given platform and encoding
// ID.  If more than one language is present, the lowest language ID
// is used.
func (ss Table) GetNoLang(platformID, encodingID uint16) (Subtable, error) {
	for _, key := range ss.Keys() {
		if key.PlatformID == platformID && key.EncodingID == encodingID {
			return ss.Get(key)
		}
	}
	return nil, errNoSubtable
}

// GetBest selects the "best" Unicode subtable from a cmap table.
//
// The preference order is (3,10), (0,4), (0,6), (3,1), (0,3), any other
// subtable for the Unicode platform, and finally (1,0).  Subtables which
// cannot be decoded are skipped.
func (ss Table) GetBest() (Subtable, Key, error) {
	candidates := []Key{
		{3, 10, 0}, // full unicode
		{0, 4, 0},
		{0, 6, 0},
		{3, 1, 0}, // BMP
		{0, 3, 0},
	}
	for _, key := range ss.Keys() {
		if key.PlatformID == 0 && !slices.Contains(candidates, key) {
			candidates = append(candidates, key)
		}
	}

	for _, c := range candidates {
		if sub, err := ss.Get(c); err == nil {
			return sub, c, nil
		}
	}
	for _, key := range ss.Keys() {
		if key.PlatformID == 1 && key.EncodingID == 0 {
			if sub, err := ss.Get(key); err == nil {
				return sub, key, nil
			}
		}
	}
	return nil, Key{}, errNoSubtable
}

// Count returns the number of characters mapped to non-zero glyph IDs.
func Count(sub Subtable) int {
	n := 0
	for range sub.All() {
		n++
	}
	return n
}

var decoders = map[uint16]func([]byte) (Subtable, error){
	0:  decodeFormat0,
	4:  decodeFormat4,
	6:  decodeFormat6,
	10: decodeFormat10,
	12: decodeFormat12,
	13: decodeFormat13,
}

var (
	errMalformedTable = &parser.InvalidFontError{
		SubSystem: "webfont/cmap",
		Reason:    "malformed table",
	}
	errMalformedSubtable = &parser.InvalidFontError{
		SubSystem: "webfont/cmap",
		Reason:    "malformed subtable",
	}
	errNoSubtable = &parser.NotSupportedError{
		SubSystem: "webfont/cmap",
		Feature:   "font without suitable cmap subtable",
	}
)
