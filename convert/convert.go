package convert

import (
	"fmt"

	"github.com/vegasq/fixcat/schema"
	"github.com/vegasq/fixcat/transcode"
)

// LineSource yields input lines without their terminators. Next returns
// ok == false once the input is exhausted.
type LineSource interface {
	Next() (line string, ok bool, err error)
}

// LineSink receives output lines without terminators.
type LineSink interface {
	WriteLine(line string) error
}

// Lines compiles layout and converts lines with delimiter.
//
// On a layout error the result is nil and the error is the *schema.Error.
func Lines(layout, delimiter string, lines []string) ([]string, error) {
	s, err := schema.Compile(layout)
	if err != nil {
		return nil, err
	}
	return Transcode(transcode.New(s, delimiter), lines), nil
}

// Transcode converts lines with an already compiled transcoder. The header
// is always the first element.
func Transcode(t transcode.Transcoder, lines []string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, t.Header())
	for _, line := range lines {
		out = append(out, t.Line(line))
	}
	return out
}

// Stream writes the header and every transcoded line from src to dst and
// returns the number of data lines written. Only src and dst can fail.
func Stream(t transcode.Transcoder, src LineSource, dst LineSink) (int, error) {
	if err := dst.WriteLine(t.Header()); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	n := 0
	for {
		line, ok, err := src.Next()
		if err != nil {
			return n, fmt.Errorf("failed to read line %d: %w", n+1, err)
		}
		if !ok {
			return n, nil
		}
		if err := dst.WriteLine(t.Line(line)); err != nil {
			return n, fmt.Errorf("failed to write line %d: %w", n+1, err)
		}
		n++
	}
}

// SliceSource adapts a slice of lines to LineSource.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource returns a LineSource over lines.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

// Next returns the next line.
func (s *SliceSource) Next() (string, bool, error) {
	if s.pos >= len(s.lines) {
		return "", false, nil
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true, nil
}

// SliceSink collects lines in memory.
type SliceSink struct {
	Lines []string
}

// WriteLine appends line.
func (s *SliceSink) WriteLine(line string) error {
	s.Lines = append(s.Lines, line)
	return nil
}
