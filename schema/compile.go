package schema

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/segmentio/encoding/json"
)

const (
	keyName   = "name"
	keyStart  = "start"
	keyLength = "length"
)

var knownKeys = []string{keyName, keyStart, keyLength}

// Compile parses a JSON layout into a Schema.
//
// The returned error, if any, is an *Error.
func Compile(text string) (*Schema, error) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, layoutError(errNotArray)
	}
	if data[0] != '[' {
		return nil, layoutError(errNotArray)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, layoutError(fmt.Errorf("malformed layout: %w", err))
	}

	fields := make([]Field, 0, len(raws))
	for i, raw := range raws {
		f, err := decodeField(i, raw)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return New(fields...)
}

// CompileFile reads a layout from path. Files ending in .toml are decoded
// with CompileTOML, everything else with Compile.
func CompileFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return CompileTOML(string(data))
	}
	return Compile(string(data))
}

func decodeField(index int, raw json.RawMessage) (Field, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return Field{}, fieldError(index, "", errNotObject)
	}

	var props map[string]json.RawMessage
	if err := json.Unmarshal(raw, &props); err != nil {
		return Field{}, fieldError(index, "", fmt.Errorf("%w: %v", errNotObject, err))
	}

	unknown := make([]string, 0)
	for key := range props {
		if !slices.Contains(knownKeys, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return Field{}, fieldError(index, unknown[0], errUnknown)
	}

	var f Field
	var err error

	nameRaw, ok := present(props, keyName)
	if !ok {
		return Field{}, fieldError(index, keyName, errMissing)
	}
	if nameRaw[0] != '"' {
		return Field{}, fieldError(index, keyName, fmt.Errorf("expected string, got %s", nameRaw))
	}
	if err := json.Unmarshal(nameRaw, &f.Name); err != nil {
		return Field{}, fieldError(index, keyName, err)
	}

	if f.Start, err = decodeInt(index, props, keyStart); err != nil {
		return Field{}, err
	}
	if f.Length, err = decodeInt(index, props, keyLength); err != nil {
		return Field{}, err
	}
	return f, nil
}

// present returns the trimmed raw value of key, treating null as absent.
func present(props map[string]json.RawMessage, key string) ([]byte, bool) {
	raw, ok := props[key]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

func decodeInt(index int, props map[string]json.RawMessage, key string) (int, error) {
	raw, ok := present(props, key)
	if !ok {
		return 0, fieldError(index, key, errMissing)
	}
	if !isIntegerLiteral(raw) {
		return 0, fieldError(index, key, fmt.Errorf("expected integer, got %s", raw))
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fieldError(index, key, errOverflow)
	}
	n, err := safecast.Conv[int](v)
	if err != nil {
		return 0, fieldError(index, key, errOverflow)
	}
	return n, nil
}

func isIntegerLiteral(raw []byte) bool {
	if len(raw) > 0 && raw[0] == '-' {
		raw = raw[1:]
	}
	if len(raw) == 0 {
		return false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
