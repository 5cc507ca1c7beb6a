package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const phoneLayout = `[{"name":"id","start":0,"length":3},{"name":"name","start":3,"length":10},{"name":"phone","start":13,"length":10}]`

func TestCompile_Valid(t *testing.T) {
	s, err := Compile(phoneLayout)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := []Field{
		{Name: "id", Start: 0, Length: 3},
		{Name: "name", Start: 3, Length: 10},
		{Name: "phone", Start: 13, Length: 10},
	}
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(want))
	}
	for i, f := range want {
		if got := s.Field(i); got != f {
			t.Errorf("Field(%d) = %+v, want %+v", i, got, f)
		}
	}
	if s.Width() != 23 {
		t.Errorf("Width() = %d, want 23", s.Width())
	}
}

func TestCompile_AcceptsOverlapsAndGaps(t *testing.T) {
	s, err := Compile(`[
		{"name": "whole", "start": 0, "length": 10},
		{"name": "part",  "start": 2, "length": 3},
		{"name": "tail",  "start": 40, "length": 5}
	]`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestCompile_EmptyLayout(t *testing.T) {
	s, err := Compile(`[]`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if h := s.Header(","); h != "" {
		t.Errorf("Header() = %q, want empty", h)
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantIndex int
		wantKey   string
	}{
		{
			name:      "empty text",
			text:      "",
			wantIndex: -1,
		},
		{
			name:      "null",
			text:      "null",
			wantIndex: -1,
		},
		{
			name:      "object instead of array",
			text:      `{"name":"id","start":0,"length":3}`,
			wantIndex: -1,
		},
		{
			name:      "malformed syntax",
			text:      `[{"name":"id","start":0,"length":3}`,
			wantIndex: -1,
		},
		{
			name:      "element not an object",
			text:      `[{"name":"id","start":0,"length":3}, 7]`,
			wantIndex: 1,
		},
		{
			name:      "null element",
			text:      `[null]`,
			wantIndex: 0,
		},
		{
			name:      "missing length",
			text:      `[{"name":"id","start":0}]`,
			wantIndex: 0,
			wantKey:   "length",
		},
		{
			name:      "missing start",
			text:      `[{"name":"id","start":0,"length":3},{"name":"x","length":3}]`,
			wantIndex: 1,
			wantKey:   "start",
		},
		{
			name:      "missing name",
			text:      `[{"start":0,"length":3}]`,
			wantIndex: 0,
			wantKey:   "name",
		},
		{
			name:      "null name",
			text:      `[{"name":null,"start":0,"length":3}]`,
			wantIndex: 0,
			wantKey:   "name",
		},
		{
			name:      "non-numeric start",
			text:      `[{"name":"id","start":"zero","length":3}]`,
			wantIndex: 0,
			wantKey:   "start",
		},
		{
			name:      "numeric string start",
			text:      `[{"name":"id","start":"0","length":3}]`,
			wantIndex: 0,
			wantKey:   "start",
		},
		{
			name:      "fractional length",
			text:      `[{"name":"id","start":0,"length":2.5}]`,
			wantIndex: 0,
			wantKey:   "length",
		},
		{
			name:      "boolean length",
			text:      `[{"name":"id","start":0,"length":true}]`,
			wantIndex: 0,
			wantKey:   "length",
		},
		{
			name:      "numeric name",
			text:      `[{"name":5,"start":0,"length":3}]`,
			wantIndex: 0,
			wantKey:   "name",
		},
		{
			name:      "unknown key",
			text:      `[{"name":"id","start":0,"length":3,"width":3}]`,
			wantIndex: 0,
			wantKey:   "width",
		},
		{
			name:      "negative start",
			text:      `[{"name":"id","start":-1,"length":3}]`,
			wantIndex: 0,
			wantKey:   "start",
		},
		{
			name:      "zero length",
			text:      `[{"name":"id","start":0,"length":0}]`,
			wantIndex: 0,
			wantKey:   "length",
		},
		{
			name:      "start beyond int64",
			text:      `[{"name":"id","start":99999999999999999999,"length":3}]`,
			wantIndex: 0,
			wantKey:   "start",
		},
		{
			name:      "end overflows",
			text:      `[{"name":"id","start":9223372036854775807,"length":3}]`,
			wantIndex: 0,
			wantKey:   "length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.text)
			if err == nil {
				t.Fatalf("Compile() = %v, want error", s)
			}
			if s != nil {
				t.Errorf("Compile() returned schema alongside error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("errors.Is(err, ErrInvalid) = false for %v", err)
			}

			var se *Error
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *Error", err)
			}
			if se.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d (%v)", se.Index, tt.wantIndex, err)
			}
			if tt.wantKey != "" && se.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q (%v)", se.Key, tt.wantKey, err)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	_, err := Compile(`[{"name":"id","start":0}]`)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "field 0") || !strings.Contains(msg, `"length"`) {
		t.Errorf("Error() = %q, want field index and key", msg)
	}
}

func TestSchema_Header(t *testing.T) {
	s, err := Compile(phoneLayout)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	tests := []struct {
		delimiter string
		want      string
	}{
		{",", "id,name,phone"},
		{"|", "id|name|phone"},
		{"::", "id::name::phone"},
		{"\t", "id\tname\tphone"},
	}
	for _, tt := range tests {
		if got := s.Header(tt.delimiter); got != tt.want {
			t.Errorf("Header(%q) = %q, want %q", tt.delimiter, got, tt.want)
		}
	}
}

func TestSchema_HeaderNamesNotEscaped(t *testing.T) {
	s, err := New(Field{Name: `a,"b"`, Start: 0, Length: 1}, Field{Name: "c", Start: 1, Length: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := s.Header(","); got != `a,"b",c` {
		t.Errorf("Header() = %q, want names joined verbatim", got)
	}
}

func TestSchema_FieldsIsACopy(t *testing.T) {
	s, err := Compile(phoneLayout)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	fields := s.Fields()
	fields[0].Name = "mutated"
	fields[0].Start = 99

	if s.Field(0).Name != "id" || s.Field(0).Start != 0 {
		t.Errorf("schema changed through Fields() copy: %+v", s.Field(0))
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := []Field{{Name: "a", Start: 0, Length: 1}}
	s, err := New(in...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	in[0].Name = "b"
	if s.Field(0).Name != "a" {
		t.Errorf("schema changed through caller slice")
	}
}

func TestSchema_Info(t *testing.T) {
	s, err := Compile(phoneLayout)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	infos := s.Info()
	if len(infos) != 3 {
		t.Fatalf("Info() returned %d rows, want 3", len(infos))
	}
	if infos[2] != (FieldInfo{Name: "phone", Start: 13, Length: 10, End: 23}) {
		t.Errorf("Info()[2] = %+v", infos[2])
	}
}

func TestCompileTOML(t *testing.T) {
	s, err := CompileTOML(`
[[field]]
name = "id"
start = 0
length = 3

[[field]]
name = "name"
start = 3
length = 10
`)
	if err != nil {
		t.Fatalf("CompileTOML() error = %v", err)
	}
	if got := s.Header(","); got != "id,name" {
		t.Errorf("Header() = %q, want %q", got, "id,name")
	}
}

func TestCompileTOML_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "malformed", text: "[[field]\nname = 1"},
		{name: "missing length", text: "[[field]]\nname = \"id\"\nstart = 0\n"},
		{name: "missing name", text: "[[field]]\nstart = 0\nlength = 1\n"},
		{name: "wrong type", text: "[[field]]\nname = \"id\"\nstart = \"zero\"\nlength = 1\n"},
		{name: "unknown key", text: "[[field]]\nname = \"id\"\nstart = 0\nlength = 1\nwidth = 2\n"},
		{name: "zero length", text: "[[field]]\nname = \"id\"\nstart = 0\nlength = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileTOML(tt.text)
			if err == nil {
				t.Fatal("CompileTOML() expected error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("errors.Is(err, ErrInvalid) = false for %v", err)
			}
		})
	}
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "layout.json")
	if err := os.WriteFile(jsonPath, []byte(phoneLayout), 0o644); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}
	tomlPath := filepath.Join(dir, "layout.toml")
	if err := os.WriteFile(tomlPath, []byte("[[field]]\nname = \"id\"\nstart = 0\nlength = 3\n"), 0o644); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}

	s, err := CompileFile(jsonPath)
	if err != nil {
		t.Fatalf("CompileFile(json) error = %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("json layout Len() = %d, want 3", s.Len())
	}

	s, err = CompileFile(tomlPath)
	if err != nil {
		t.Fatalf("CompileFile(toml) error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("toml layout Len() = %d, want 1", s.Len())
	}

	_, err = CompileFile(filepath.Join(dir, "missing.json"))
	if err == nil {
		t.Fatal("CompileFile(missing) expected error")
	}
	if errors.Is(err, ErrInvalid) {
		t.Errorf("read failure should not match ErrInvalid")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("read failure should wrap os.ErrNotExist, got %v", err)
	}
}
