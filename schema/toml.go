package schema

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
)

type tomlLayout struct {
	Field []tomlField `toml:"field"`
}

type tomlField struct {
	Name   *string `toml:"name"`
	Start  *int64  `toml:"start"`
	Length *int64  `toml:"length"`
}

// CompileTOML parses a layout written as [[field]] tables.
//
// The returned error, if any, is an *Error.
func CompileTOML(text string) (*Schema, error) {
	var layout tomlLayout
	meta, err := toml.Decode(text, &layout)
	if err != nil {
		return nil, layoutError(fmt.Errorf("malformed layout: %w", err))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		key := undecoded[0]
		if len(key) > 0 && key[0] == "field" {
			return nil, &Error{Index: -1, Key: key.String(), Err: errUnknown}
		}
		return nil, layoutError(fmt.Errorf("%w %q", errUnknown, key.String()))
	}
	if !meta.IsDefined("field") {
		return nil, layoutError(errNotArray)
	}

	fields := make([]Field, len(layout.Field))
	for i, tf := range layout.Field {
		if tf.Name == nil {
			return nil, fieldError(i, keyName, errMissing)
		}
		if tf.Start == nil {
			return nil, fieldError(i, keyStart, errMissing)
		}
		if tf.Length == nil {
			return nil, fieldError(i, keyLength, errMissing)
		}
		start, err := safecast.Conv[int](*tf.Start)
		if err != nil {
			return nil, fieldError(i, keyStart, errOverflow)
		}
		length, err := safecast.Conv[int](*tf.Length)
		if err != nil {
			return nil, fieldError(i, keyLength, errOverflow)
		}
		fields[i] = Field{Name: *tf.Name, Start: start, Length: length}
	}
	return New(fields...)
}
