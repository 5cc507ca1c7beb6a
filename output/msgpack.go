package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vegasq/fixcat/transcode"
)

// MsgpackFormatter outputs one MessagePack map per record. Maps are written
// key by key so field order matches the schema.
type MsgpackFormatter struct {
	writer io.Writer
}

// NewMsgpackFormatter creates a new MessagePack formatter
func NewMsgpackFormatter(w io.Writer) *MsgpackFormatter {
	return &MsgpackFormatter{writer: w}
}

// SetOutput sets the output writer
func (m *MsgpackFormatter) SetOutput(w io.Writer) {
	m.writer = w
}

// Format writes a stream of maps, one per input line
func (m *MsgpackFormatter) Format(t transcode.Transcoder, lines []string) error {
	bw := bufio.NewWriter(m.writer)
	enc := msgpack.NewEncoder(bw)
	names := t.Schema.Names()

	for n, line := range lines {
		if err := encodeRecord(enc, names, t.Extract(line)); err != nil {
			return fmt.Errorf("failed to encode line %d: %w", n+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush msgpack writer: %w", err)
	}
	return nil
}

func encodeRecord(enc *msgpack.Encoder, names, values []string) error {
	if err := enc.EncodeMapLen(len(names)); err != nil {
		return err
	}
	for i, name := range names {
		if err := enc.EncodeString(name); err != nil {
			return err
		}
		if err := enc.EncodeString(values[i]); err != nil {
			return err
		}
	}
	return nil
}
