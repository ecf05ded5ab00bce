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

// Package parser implements a byte cursor for reading binary font data.
//
// All multi-byte values are big-endian, as in the sfnt container.
package parser

import (
	"encoding/binary"
	"fmt"
)

// Parser reads fields sequentially from an in-memory font file or table.
// A failed read does not advance the position.
type Parser struct {
	data      []byte
	tableName string

	pos      int
	lastRead int
}

// New allocates a new Parser which reads from data.
// The tableName is used in error messages.
func New(tableName string, data []byte) *Parser {
	return &Parser{
		data:      data,
		tableName: tableName,
	}
}

// take returns the next n bytes and advances the position.
func (p *Parser) take(n int) ([]byte, error) {
	p.lastRead = p.pos
	if n < 0 || len(p.data)-p.pos < n {
		return nil, p.Error("need %d bytes, %d left", n, len(p.data)-p.pos)
	}
	start := p.pos
	p.pos += n
	return p.data[start:p.pos:p.pos], nil
}

// Discard skips the next n bytes of input.
func (p *Parser) Discard(n int) error {
	_, err := p.take(n)
	return err
}

// ReadUint16 reads a big-endian uint16 from the current position.
func (p *Parser) ReadUint16() (uint16, error) {
	buf, err := p.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadUint32 reads a big-endian uint32 from the current position.
func (p *Parser) ReadUint32() (uint32, error) {
	buf, err := p.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// ReadTag reads a 4-byte table tag.
func (p *Parser) ReadTag() (string, error) {
	buf, err := p.take(4)
	return string(buf), err
}

// Error returns an InvalidFontError which records the table name and the
// offset of the last read.
func (p *Parser) Error(format string, a ...any) error {
	sub := "webfont/header"
	if p.tableName != "" {
		sub = "webfont/" + p.tableName
	}
	return &InvalidFontError{
		SubSystem: sub,
		Reason:    fmt.Sprintf("offset %d: %s", p.lastRead, fmt.Sprintf(format, a...)),
	}
}

// FixedToFloat converts a signed 16.16 fixed-point number to float64.
func FixedToFloat(x uint32) float64 {
	return float64(int32(x)) / 65536
}

// IsValidTag reports whether tag is exactly four printable ASCII characters.
func IsValidTag(tag string) bool {
	if len(tag) != 4 {
		return false
	}
	for _, c := range []byte(tag) {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}
