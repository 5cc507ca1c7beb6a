package transcode

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/vegasq/fixcat/schema"
)

func mustSchema(t *testing.T, fields ...schema.Field) *schema.Schema {
	t.Helper()
	s, err := schema.New(fields...)
	if err != nil {
		t.Fatalf("schema.New() error = %v", err)
	}
	return s
}

func phoneSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Compile(`[{"name":"id","start":0,"length":3},{"name":"name","start":3,"length":10},{"name":"phone","start":13,"length":10}]`)
	if err != nil {
		t.Fatalf("schema.Compile() error = %v", err)
	}
	return s
}

func TestTranscode_PhoneBook(t *testing.T) {
	s := phoneSchema(t)

	tests := []struct {
		line string
		want string
	}{
		{"001John Doe  1234567890", "001,John Doe,1234567890"},
		{"002Alice     9876543210", "002,Alice,9876543210"},
		{"007Jane      0807771006", "007,Jane,0807771006"},
	}
	for _, tt := range tests {
		if got := Transcode(tt.line, s, ","); got != tt.want {
			t.Errorf("Transcode(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
	if got := Header(s, ","); got != "id,name,phone" {
		t.Errorf("Header() = %q, want %q", got, "id,name,phone")
	}
}

func TestTranscode_ShortLines(t *testing.T) {
	s := phoneSchema(t)

	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "empty line", line: "", want: ",,"},
		{name: "inside first field", line: "00", want: "00,,"},
		{name: "ends inside second field", line: "001John", want: "001,John,"},
		{name: "ends at field boundary", line: "001John Doe  ", want: "001,John Doe,"},
		{name: "ends inside last field", line: "001John Doe  12345", want: "001,John Doe,12345"},
		{name: "longer than layout", line: "001John Doe  1234567890EXTRA", want: "001,John Doe,1234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transcode(tt.line, s, ","); got != tt.want {
				t.Errorf("Transcode(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestTranscode_FieldPastEndIsEmpty(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Name: "a", Start: 0, Length: 2},
		schema.Field{Name: "far", Start: 50, Length: 5},
	)
	for n := 0; n < 50; n++ {
		line := strings.Repeat("x", n)
		values := New(s, ",").Extract(line)
		if values[1] != "" {
			t.Fatalf("line of length %d: far field = %q, want empty", n, values[1])
		}
	}
}

func TestTranscode_OverlapsAndOrder(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Name: "tail", Start: 4, Length: 2},
		schema.Field{Name: "whole", Start: 0, Length: 6},
		schema.Field{Name: "head", Start: 0, Length: 2},
	)
	if got := Transcode("ab  ef", s, "|"); got != "ef|ab  ef|ab" {
		t.Errorf("Transcode() = %q, want %q", got, "ef|ab  ef|ab")
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		delimiter string
		want      string
	}{
		{name: "plain", value: "Alice", delimiter: ",", want: "Alice"},
		{name: "empty", value: "", delimiter: ",", want: ""},
		{name: "contains delimiter", value: "Doe, John", delimiter: ",", want: `"Doe, John"`},
		{name: "contains quote", value: `5" pipe`, delimiter: ",", want: `"5"" pipe"`},
		{name: "quote and delimiter", value: `He said "hi", bye`, delimiter: ",", want: `"He said ""hi"", bye"`},
		{name: "only quotes", value: `""`, delimiter: ",", want: `""""""`},
		{name: "comma with pipe delimiter", value: "a,b", delimiter: "|", want: "a,b"},
		{name: "pipe with pipe delimiter", value: "a|b", delimiter: "|", want: `"a|b"`},
		{name: "multi-char delimiter present", value: "a::b", delimiter: "::", want: `"a::b"`},
		{name: "multi-char delimiter partial", value: "a:b", delimiter: "::", want: "a:b"},
		{name: "tab delimiter", value: "a\tb", delimiter: "\t", want: "\"a\tb\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.value, tt.delimiter); got != tt.want {
				t.Errorf("Escape(%q, %q) = %q, want %q", tt.value, tt.delimiter, got, tt.want)
			}
		})
	}
}

func TestTranscode_QuotedValueRoundTrips(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Name: "id", Start: 0, Length: 3},
		schema.Field{Name: "note", Start: 3, Length: 20},
	)
	line := `042He said "hi", bye`

	out := Transcode(line, s, ",")
	if out != `042,"He said ""hi"", bye"` {
		t.Fatalf("Transcode() = %q", out)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("transcoded row is not valid CSV: %v", err)
	}
	if len(records) != 1 || len(records[0]) != 2 {
		t.Fatalf("unexpected records: %q", records)
	}
	if records[0][1] != `He said "hi", bye` {
		t.Errorf("note = %q, want original value", records[0][1])
	}
}

func TestTranscode_TrimsWhitespace(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Name: "a", Start: 0, Length: 5},
		schema.Field{Name: "b", Start: 5, Length: 5},
	)
	if got := Transcode("  x  \t y \t", s, ","); got != "x,y" {
		t.Errorf("Transcode() = %q, want %q", got, "x,y")
	}
}

func TestEscape_EmptyDelimiter(t *testing.T) {
	tests := map[string]string{
		"plain":   "plain",
		"":        "",
		`say "x"`: `"say ""x"""`,
	}
	for in, want := range tests {
		if got := Escape(in, ""); got != want {
			t.Errorf("Escape(%q, \"\") = %q, want %q", in, got, want)
		}
	}

	s := mustSchema(t,
		schema.Field{Name: "a", Start: 0, Length: 2},
		schema.Field{Name: "b", Start: 2, Length: 2},
	)
	if got := Transcode("12ab", s, ""); got != "12ab" {
		t.Errorf("Transcode() with empty delimiter = %q, want %q", got, "12ab")
	}
}

func TestTranscode_TrimsControlPadding(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Name: "a", Start: 0, Length: 6},
		schema.Field{Name: "b", Start: 6, Length: 4},
	)

	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "nul padding", line: "12\x00\x00\x00 ab  ", want: "12,ab"},
		{name: "leading controls", line: "\x01\x1f12  \x00ab\x00", want: "12,ab"},
		{name: "no-break space kept", line: "\u00a012\u00a0  ab  ", want: "\u00a012\u00a0,ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transcode(tt.line, s, ","); got != tt.want {
				t.Errorf("Transcode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranscoder_Units(t *testing.T) {
	tests := []struct {
		name   string
		unit   Unit
		fields []schema.Field
		line   string
		want   []string
	}{
		{
			name:   "runes count code points",
			unit:   Runes,
			fields: []schema.Field{{Name: "a", Start: 0, Length: 3}, {Name: "b", Start: 3, Length: 3}},
			line:   "é12345",
			want:   []string{"é12", "345"},
		},
		{
			name:   "bytes count encoded bytes",
			unit:   Bytes,
			fields: []schema.Field{{Name: "a", Start: 0, Length: 3}, {Name: "b", Start: 3, Length: 3}},
			line:   "é12345",
			want:   []string{"é1", "234"},
		},
		{
			name:   "columns count display width",
			unit:   Columns,
			fields: []schema.Field{{Name: "a", Start: 0, Length: 4}, {Name: "b", Start: 4, Length: 2}},
			line:   "日本ab",
			want:   []string{"日本", "ab"},
		},
		{
			name:   "wide rune belongs to the field it starts in",
			unit:   Columns,
			fields: []schema.Field{{Name: "a", Start: 0, Length: 3}, {Name: "b", Start: 3, Length: 3}},
			line:   "a日本",
			want:   []string{"a日", "本"},
		},
		{
			name:   "columns past end",
			unit:   Columns,
			fields: []schema.Field{{Name: "a", Start: 0, Length: 2}, {Name: "b", Start: 10, Length: 2}},
			line:   "日本",
			want:   []string{"日", ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transcoder{Schema: mustSchema(t, tt.fields...), Delimiter: ",", Unit: tt.unit}
			got := tr.Extract(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Extract()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTranscoder_Normalize(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Name: "a", Start: 0, Length: 1},
		schema.Field{Name: "b", Start: 1, Length: 1},
	)
	line := "e\u0301x"

	plain := Transcoder{Schema: s, Delimiter: ","}.Extract(line)
	if plain[0] != "e" {
		t.Errorf("without NFC a = %q, want %q", plain[0], "e")
	}

	nfc := Transcoder{Schema: s, Delimiter: ",", Normalize: true}.Extract(line)
	if nfc[0] != "\u00e9" || nfc[1] != "x" {
		t.Errorf("with NFC = %q, want [é x]", nfc)
	}
}

func TestTranscoder_HeaderAndLine(t *testing.T) {
	tr := New(phoneSchema(t), ";")
	if got := tr.Header(); got != "id;name;phone" {
		t.Errorf("Header() = %q", got)
	}
	if got := tr.Line("003Doe; Jane 5550001111"); got != `003;"Doe; Jane";5550001111` {
		t.Errorf("Line() = %q", got)
	}
}

func TestTranscode_Deterministic(t *testing.T) {
	s := phoneSchema(t)
	line := `004O"Brien   1112223333`
	first := Transcode(line, s, ",")
	for i := 0; i < 10; i++ {
		if got := Transcode(line, s, ","); got != first {
			t.Fatalf("call %d = %q, first = %q", i, got, first)
		}
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{in: "", want: Runes},
		{in: "runes", want: Runes},
		{in: "chars", want: Runes},
		{in: "BYTES", want: Bytes},
		{in: "columns", want: Columns},
		{in: "words", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseUnit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseUnit(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, u := range []Unit{Runes, Bytes, Columns} {
		back, err := ParseUnit(u.String())
		if err != nil || back != u {
			t.Errorf("ParseUnit(%q) = %v, %v", u.String(), back, err)
		}
	}
}
