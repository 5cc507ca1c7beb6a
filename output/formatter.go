package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/fixcat/transcode"
)

// Format names accepted by New.
const (
	FormatCSV     = "csv"
	FormatJSONL   = "jsonl"
	FormatMsgpack = "msgpack"
	FormatParquet = "parquet"
	FormatTable   = "table"
)

// Formats lists the supported format names.
var Formats = []string{FormatCSV, FormatJSONL, FormatMsgpack, FormatParquet, FormatTable}

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write converted records in the
// target format and SetOutput to change the output destination.
type Formatter interface {
	// Format transcodes lines with t and writes them in the formatter's format
	Format(t transcode.Transcoder, lines []string) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Options carries format-specific settings.
type Options struct {
	// ParquetCodec names the parquet page codec. Empty means snappy.
	ParquetCodec string
}

// New returns the formatter for format writing to w.
func New(format string, w io.Writer, opts Options) (Formatter, error) {
	switch normalizeFormat(format) {
	case FormatCSV:
		return NewDelimitedFormatter(w), nil
	case FormatJSONL:
		return NewJSONFormatter(w), nil
	case FormatMsgpack:
		return NewMsgpackFormatter(w), nil
	case FormatParquet:
		return NewParquetFormatter(w, opts.ParquetCodec)
	case FormatTable:
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format '%s' (supported formats: %s)", format, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension, dot included, for format.
func Extension(format string) string {
	switch normalizeFormat(format) {
	case FormatJSONL:
		return ".jsonl"
	case FormatMsgpack:
		return ".msgpack"
	case FormatParquet:
		return ".parquet"
	case FormatTable:
		return ".txt"
	default:
		return ".csv"
	}
}

func normalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "json":
		return FormatJSONL
	case "delimited", "":
		return FormatCSV
	default:
		return f
	}
}
