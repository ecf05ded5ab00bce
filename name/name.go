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

// Package name reads and writes OpenType "name" tables.
// These tables contain localized strings associated with a font.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"

	"seehuhn.de/go/webfont/parser"
)

// ID identifies the purpose of a name record.
type ID uint16

// Some frequently used name IDs.
const (
	Copyright      ID = 0
	Family         ID = 1
	Subfamily      ID = 2
	UniqueID       ID = 3
	FullName       ID = 4
	Version        ID = 5
	PostScriptName ID = 6
	Trademark      ID = 7
	Manufacturer   ID = 8
	Designer       ID = 9
	Description    ID = 10
	VendorURL      ID = 11
	DesignerURL    ID = 12
	License        ID = 13
	LicenseURL     ID = 14
)

// Platform IDs used in name records.
const (
	PlatformUnicode   = 0
	PlatformMacintosh = 1
	PlatformWindows   = 3
)

// Record is a single entry of the "name" table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     ID

	// Raw is the undecoded string data.
	Raw []byte
}

// Info contains information from the "name" table.
type Info struct {
	// Records lists the name records in the order they appear in the
	// table.
	Records []*Record
}

// tableHeader is the fixed start of every "name" table.
type tableHeader struct {
	Version       uint16
	Count         uint16
	StorageOffset uint16
}

// nameRecord is the binary form of a Record.
type nameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     ID
	Length     uint16
	Offset     uint16
}

const (
	headerSize = 6
	recordSize = 12
)

// Decode extracts the records from a "name" table.
// Version 1 language tag records are skipped.
//
// The returned records point into data.
func Decode(data []byte) (*Info, error) {
	r := bytes.NewReader(data)
	var hdr tableHeader
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, errMalformedNames
	}
	if hdr.Version > 1 {
		return nil, &parser.NotSupportedError{
			SubSystem: "webfont/name",
			Feature:   fmt.Sprintf("name table version %d", hdr.Version),
		}
	}

	recs := make([]nameRecord, hdr.Count)
	if err := binary.Read(r, binary.BigEndian, recs); err != nil {
		return nil, errMalformedNames
	}
	if hdr.Version == 1 {
		var langTagCount uint16
		if err := binary.Read(r, binary.BigEndian, &langTagCount); err != nil {
			return nil, errMalformedNames
		}
	}
	storage := int(hdr.StorageOffset)
	if storage > len(data) {
		return nil, errMalformedNames
	}

	info := &Info{Records: make([]*Record, 0, len(recs))}
	for _, rec := range recs {
		start := storage + int(rec.Offset)
		end := start + int(rec.Length)
		if end > len(data) {
			return nil, errMalformedNames
		}
		info.Records = append(info.Records, &Record{
			PlatformID: rec.PlatformID,
			EncodingID: rec.EncodingID,
			LanguageID: rec.LanguageID,
			NameID:     rec.NameID,
			Raw:        data[start:end:end],
		})
	}
	return info, nil
}

// Encode converts a "name" table into its binary form.
// Records are written sorted by platform, encoding, language and name ID.
// Identical strings are stored once.
func (info *Info) Encode() []byte {
	sorted := slices.Clone(info.Records)
	slices.SortStableFunc(sorted, func(a, b *Record) int {
		return cmp.Or(
			cmp.Compare(a.PlatformID, b.PlatformID),
			cmp.Compare(a.EncodingID, b.EncodingID),
			cmp.Compare(a.LanguageID, b.LanguageID),
			cmp.Compare(a.NameID, b.NameID),
		)
	})

	var storage []byte
	seen := make(map[string]uint16)
	recs := make([]nameRecord, len(sorted))
	for i, rec := range sorted {
		offs, ok := seen[string(rec.Raw)]
		if !ok {
			offs = uint16(len(storage))
			seen[string(rec.Raw)] = offs
			storage = append(storage, rec.Raw...)
		}
		recs[i] = nameRecord{
			PlatformID: rec.PlatformID,
			EncodingID: rec.EncodingID,
			LanguageID: rec.LanguageID,
			NameID:     rec.NameID,
			Length:     uint16(len(rec.Raw)),
			Offset:     offs,
		}
	}

	hdr := tableHeader{
		Count:         uint16(len(recs)),
		StorageOffset: uint16(headerSize + recordSize*len(recs)),
	}
	buf := bytes.NewBuffer(make([]byte, 0, int(hdr.StorageOffset)+len(storage)))
	_ = binary.Write(buf, binary.BigEndian, hdr)
	_ = binary.Write(buf, binary.BigEndian, recs)
	buf.Write(storage)
	return buf.Bytes()
}

// Decode returns the record's string value.  The second return value is
// false if the encoding of the record is not supported.
func (rec *Record) Decode() (string, bool) {
	switch {
	case rec.PlatformID == PlatformUnicode,
		rec.PlatformID == PlatformWindows && (rec.EncodingID == 0 || rec.EncodingID == 1 || rec.EncodingID == 10):
		return utf16Decode(rec.Raw)
	case rec.PlatformID == PlatformMacintosh && rec.EncodingID == 0:
		s, err := charmap.Macintosh.NewDecoder().Bytes(rec.Raw)
		if err != nil {
			return "", false
		}
		return string(s), true
	}
	return "", false
}

// Language returns the BCP 47 language of the record, or language.Und if
// the language ID is not known.
func (rec *Record) Language() language.Tag {
	var bcp string
	switch rec.PlatformID {
	case PlatformMacintosh:
		bcp = appleBCP[rec.LanguageID]
	case PlatformWindows:
		bcp = msBCP[rec.LanguageID]
	}
	if bcp == "" {
		return language.Und
	}
	tag, err := language.Parse(bcp)
	if err != nil {
		return language.Und
	}
	return tag
}

// NewWindowsRecord returns a name record for the Windows platform, Unicode
// BMP encoding, US English.
func NewWindowsRecord(nameID ID, value string) *Record {
	raw, _ := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(value))
	return &Record{
		PlatformID: PlatformWindows,
		EncodingID: 1,
		LanguageID: 0x0409,
		NameID:     nameID,
		Raw:        raw,
	}
}

// Lookup returns the value of the given name ID.
//
// Records are consulted in the following order: Windows Unicode BMP
// records for US English, any other Windows Unicode record, records on
// the Unicode platform, and finally Macintosh Roman records.  The empty
// string is returned if no decodable record is found.
func (info *Info) Lookup(nameID ID) string {
	if info == nil {
		return ""
	}
	var best *Record
	bestRank := 0
	for _, rec := range info.Records {
		if rec.NameID != nameID {
			continue
		}
		rank := lookupRank(rec)
		if rank > bestRank {
			val, ok := rec.Decode()
			if !ok || val == "" {
				continue
			}
			best, bestRank = rec, rank
		}
	}
	if best == nil {
		return ""
	}
	val, _ := best.Decode()
	return val
}

func lookupRank(rec *Record) int {
	switch {
	case rec.PlatformID == PlatformWindows && rec.EncodingID == 1 && rec.LanguageID == 0x0409:
		return 4
	case rec.PlatformID == PlatformWindows && (rec.EncodingID == 1 || rec.EncodingID == 10):
		return 3
	case rec.PlatformID == PlatformUnicode:
		return 2
	case rec.PlatformID == PlatformMacintosh && rec.EncodingID == 0:
		return 1
	}
	return 0
}

func utf16Decode(buf []byte) (string, bool) {
	s, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(buf)
	if err != nil {
		return "", false
	}
	return string(s), true
}

var errMalformedNames = &parser.InvalidFontError{
	SubSystem: "webfont/name",
	Reason:    "malformed name table",
}
