package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Options controls how bytes are decoded into lines.
type Options struct {
	// Encoding is a WHATWG charset label such as "latin1", "windows-1252"
	// or "utf-16le". Empty means the input is already UTF-8.
	Encoding string
}

// LineReader yields newline-stripped lines from a byte stream.
//
// Lines end at "\n", "\r" or "\r\n".
// A final line without a terminator is still returned, and an empty input
// yields no lines.
type LineReader struct {
	br   *bufio.Reader
	done bool
}

// NewLineReader wraps r, decoding it with the configured encoding.
func NewLineReader(r io.Reader, opts Options) (*LineReader, error) {
	decoded, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return &LineReader{br: bufio.NewReader(decoded)}, nil
}

// Next returns the next line. ok is false once the input is exhausted.
func (l *LineReader) Next() (string, bool, error) {
	if l.done {
		return "", false, nil
	}

	var b strings.Builder
	for {
		c, err := l.br.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", false, fmt.Errorf("failed to read line: %w", err)
			}
			l.done = true
			if b.Len() == 0 {
				return "", false, nil
			}
			return b.String(), true, nil
		}

		switch c {
		case '\n':
			return b.String(), true, nil
		case '\r':
			if next, err := l.br.Peek(1); err == nil && next[0] == '\n' {
				_, _ = l.br.ReadByte()
			}
			return b.String(), true, nil
		default:
			b.WriteByte(c)
		}
	}
}

// ReadLines decodes all lines of r.
func ReadLines(r io.Reader, opts Options) ([]string, error) {
	lr, err := NewLineReader(r, opts)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0)
	for {
		line, ok, err := lr.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// Reader reads lines from a file on disk.
//
// It keeps the OS file handle so Close can release it.
type Reader struct {
	file  *os.File
	lines *LineReader
}

// NewReader opens path for line reading.
//
// Example:
//
//	r, err := reader.NewReader("records.txt", reader.Options{Encoding: "latin1"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewReader(path string, opts Options) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	lines, err := NewLineReader(file, opts)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return &Reader{
		file:  file,
		lines: lines,
	}, nil
}

// Next returns the next line of the file.
func (r *Reader) Next() (string, bool, error) {
	return r.lines.Next()
}

// ReadAll reads the remaining lines into memory.
func (r *Reader) ReadAll() ([]string, error) {
	lines := make([]string, 0)
	for {
		line, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// Close releases the file handle. It is safe to call Close more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func decode(r io.Reader, label string) (io.Reader, error) {
	if strings.TrimSpace(label) == "" {
		return r, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
