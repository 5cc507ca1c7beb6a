package schema

import (
	"math"
	"strings"
)

// Field describes one fixed-width column.
type Field struct {
	Name   string
	Start  int
	Length int
}

// End returns the exclusive end offset of the field.
func (f Field) End() int {
	return f.Start + f.Length
}

// Schema is a compiled, read-only record layout.
type Schema struct {
	fields []Field
}

// New builds a Schema from field definitions.
//
// Offsets are checked against the field invariants (start >= 0,
// length > 0, end representable as int). Overlaps and gaps are not
// checked.
func New(fields ...Field) (*Schema, error) {
	own := make([]Field, len(fields))
	for i, f := range fields {
		if f.Start < 0 {
			return nil, fieldError(i, "start", errNegative)
		}
		if f.Length <= 0 {
			return nil, fieldError(i, "length", errLength)
		}
		if f.Start > math.MaxInt-f.Length {
			return nil, fieldError(i, "length", errOverflow)
		}
		own[i] = f
	}
	return &Schema{fields: own}, nil
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the i-th field in layout order.
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the field definitions in layout order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in layout order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Width returns the largest end offset of any field, i.e. the shortest
// line that holds every field in full.
func (s *Schema) Width() int {
	width := 0
	for _, f := range s.fields {
		width = max(width, f.End())
	}
	return width
}

// Header joins the field names with delimiter. Names are not escaped.
func (s *Schema) Header(delimiter string) string {
	return strings.Join(s.Names(), delimiter)
}

// FieldInfo is a display row describing one field.
type FieldInfo struct {
	Name   string `json:"name"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
	End    int    `json:"end"`
}

// Info returns one FieldInfo per field in layout order.
func (s *Schema) Info() []FieldInfo {
	infos := make([]FieldInfo, len(s.fields))
	for i, f := range s.fields {
		infos[i] = FieldInfo{
			Name:   f.Name,
			Start:  f.Start,
			Length: f.Length,
			End:    f.End(),
		}
	}
	return infos
}
