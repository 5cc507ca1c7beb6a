package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/fixcat/transcode"
)

// JSONFormatter outputs records as JSON Lines format. Keys follow schema
// order and every value is a string.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per input line
func (j *JSONFormatter) Format(t transcode.Transcoder, lines []string) error {
	keys, err := encodeKeys(t.Schema.Names())
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(j.writer)
	var buf []byte
	for n, line := range lines {
		buf, err = appendObject(buf[:0], keys, t.Extract(line))
		if err != nil {
			return fmt.Errorf("failed to encode line %d: %w", n+1, err)
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush JSON writer: %w", err)
	}
	return nil
}

// encodeKeys pre-encodes the field names as JSON strings.
func encodeKeys(names []string) ([][]byte, error) {
	keys := make([][]byte, len(names))
	for i, name := range names {
		b, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field name %q: %w", name, err)
		}
		keys[i] = b
	}
	return keys, nil
}

func appendObject(buf []byte, keys [][]byte, values []string) ([]byte, error) {
	buf = append(buf, '{')
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, keys[i]...)
		buf = append(buf, ':')
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	return append(buf, '}', '\n'), nil
}
