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

// Package pipeline implements the operations offered by the font
// conversion and font information front ends: converting a font file to
// a web font container, and computing reports about a font.
//
// Callers pass in the complete input file and receive either the
// complete output or an error.  No output is produced for invalid input.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"seehuhn.de/go/webfont"
	"seehuhn.de/go/webfont/eot"
	"seehuhn.de/go/webfont/fontinfo"
	"seehuhn.de/go/webfont/parser"
	"seehuhn.de/go/webfont/woff"
)

// tracer traces with key 'webfont.pipeline'.
func tracer() tracing.Trace {
	return tracing.Select("webfont.pipeline")
}

// Format is an output container format.
type Format int

// The supported output formats.
const (
	FormatUndefined Format = iota
	FormatEOT
	FormatWOFF
	FormatSFNT
)

func (f Format) String() string {
	switch f {
	case FormatEOT:
		return "EOT"
	case FormatWOFF:
		return "WOFF"
	case FormatSFNT:
		return "SFNT"
	default:
		return "undefined"
	}
}

// ParseFormat converts a format name ("eot", "woff" or "sfnt") into a
// Format.  FormatUndefined is returned for unknown names.
func ParseFormat(s string) Format {
	switch s {
	case "eot", "EOT":
		return FormatEOT
	case "woff", "WOFF":
		return FormatWOFF
	case "sfnt", "SFNT", "ttf", "otf":
		return FormatSFNT
	default:
		return FormatUndefined
	}
}

// ConvertOptions control the conversion of a font.
type ConvertOptions struct {
	// Strip requests the removal of the hinting tables.
	Strip bool

	// Format is the output format.
	Format Format
}

// Output is the result of a conversion.
type Output struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ErrNoFormat is returned by Convert if no output format is selected.
var ErrNoFormat = errors.New("please choose an output format")

// EncodingError indicates that a font could be decoded, but the
// conversion into the output format failed.
type EncodingError struct {
	Format Format
	Err    error
}

func (err *EncodingError) Error() string {
	return fmt.Sprintf("pipeline: cannot encode %s: %v", err.Format, err.Err)
}

func (err *EncodingError) Unwrap() error {
	return err.Err
}

// IsMalformed reports whether err indicates invalid font data.
func IsMalformed(err error) bool {
	return parser.IsInvalid(err)
}

// IsUnsupported reports whether err indicates a font container which is
// recognised but not supported, for example a font collection.
func IsUnsupported(err error) bool {
	return parser.IsUnsupported(err)
}

// Convert decodes an sfnt font file, optionally removes the hinting
// tables, and encodes the font in the requested format.
// The suggested file name of the output is baseName with the file name
// extension of the output format appended.
func Convert(input []byte, baseName string, opt *ConvertOptions) (*Output, error) {
	if opt == nil || opt.Format == FormatUndefined {
		return nil, ErrNoFormat
	}

	f, err := webfont.Read(input)
	if err != nil {
		return nil, err
	}
	if opt.Strip {
		f = f.Strip(webfont.HintingTables...)
	}

	out := &Output{}
	switch opt.Format {
	case FormatEOT:
		out.Data, err = eot.Encode(f)
		out.ContentType = "application/vnd.ms-fontobject"
		out.Filename = baseName + ".eot"
	case FormatWOFF:
		out.Data, err = woff.Encode(f)
		out.ContentType = "application/font-woff"
		out.Filename = baseName + ".woff"
	case FormatSFNT:
		out.Data, err = f.Encode()
		out.ContentType = "application/font-sfnt"
		if f.IsCFF() {
			out.Filename = baseName + ".otf"
		} else {
			out.Filename = baseName + ".ttf"
		}
	default:
		return nil, ErrNoFormat
	}
	if err != nil {
		encErr := &EncodingError{Format: opt.Format, Err: err}
		tracer().Errorf("%v", encErr)
		return nil, encErr
	}

	tracer().Infof("converted %q to %s (strip=%t): %d -> %d bytes",
		baseName, opt.Format, opt.Strip, len(input), len(out.Data))
	return out, nil
}

// Inspect decodes an sfnt font file and computes the requested reports.
// The result maps query names to reports.
func Inspect(input []byte, queries ...fontinfo.Query) (map[string]*fontinfo.Report, error) {
	f, err := webfont.Read(input)
	if err != nil {
		return nil, err
	}

	res := make(map[string]*fontinfo.Report, len(queries))
	for _, q := range queries {
		if _, seen := res[string(q)]; seen {
			continue
		}
		r, err := fontinfo.Run(f, q)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %s report: %w", q, err)
		}
		res[string(q)] = r
	}

	tracer().Infof("inspected font: %d tables, %d reports", f.NumTables(), len(res))
	return res, nil
}
