package transcode

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/vegasq/fixcat/schema"
)

// Transcoder binds a schema to a delimiter and extraction options.
//
// The zero Unit counts runes. A Transcoder holds no mutable state and can
// be copied and shared freely.
type Transcoder struct {
	Schema    *schema.Schema
	Delimiter string
	Unit      Unit

	// Normalize applies Unicode NFC to each line before slicing.
	Normalize bool
}

// New returns a rune-counting Transcoder.
func New(s *schema.Schema, delimiter string) Transcoder {
	return Transcoder{Schema: s, Delimiter: delimiter}
}

// Transcode converts one fixed-width line into a delimited row.
func Transcode(line string, s *schema.Schema, delimiter string) string {
	return New(s, delimiter).Line(line)
}

// Header returns the field names joined with delimiter, unescaped.
func Header(s *schema.Schema, delimiter string) string {
	return s.Header(delimiter)
}

// Header returns the header line for t's schema and delimiter.
func (t Transcoder) Header() string {
	return t.Schema.Header(t.Delimiter)
}

// Extract returns the trimmed, unescaped field values of line in schema
// order. Fields that start past the end of the line are empty.
func (t Transcoder) Extract(line string) []string {
	if t.Normalize {
		line = norm.NFC.String(line)
	}
	v := newView(line, t.Unit)

	values := make([]string, t.Schema.Len())
	for i := range values {
		f := t.Schema.Field(i)
		values[i] = trim(v.slice(f.Start, f.Length))
	}
	return values
}

// Line returns the escaped, delimiter-joined row for line.
func (t Transcoder) Line(line string) string {
	return join(t.Extract(line), t.Delimiter)
}

// trim strips leading and trailing code points up to and including U+0020,
// control characters such as NUL included. U+00A0 and other non-ASCII
// spaces are kept.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
