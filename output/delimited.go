package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vegasq/fixcat/convert"
	"github.com/vegasq/fixcat/transcode"
)

// DelimitedFormatter writes the header line followed by one transcoded line
// per record, each terminated by "\n". The delimiter and quoting come from
// the Transcoder.
type DelimitedFormatter struct {
	writer io.Writer
}

// NewDelimitedFormatter creates a new delimited formatter
func NewDelimitedFormatter(w io.Writer) *DelimitedFormatter {
	return &DelimitedFormatter{writer: w}
}

// SetOutput sets the output writer
func (d *DelimitedFormatter) SetOutput(w io.Writer) {
	d.writer = w
}

// Format writes the header and all transcoded lines
func (d *DelimitedFormatter) Format(t transcode.Transcoder, lines []string) error {
	bw := bufio.NewWriter(d.writer)
	if _, err := convert.Stream(t, convert.NewSliceSource(lines), lineWriter{bw}); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush delimited writer: %w", err)
	}
	return nil
}

// lineWriter terminates every line with "\n".
type lineWriter struct {
	w *bufio.Writer
}

func (l lineWriter) WriteLine(line string) error {
	if _, err := l.w.WriteString(line); err != nil {
		return err
	}
	return l.w.WriteByte('\n')
}
