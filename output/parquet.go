package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/parquet-go"
	"github.com/segmentio/parquet-go/compress"

	"github.com/vegasq/fixcat/transcode"
)

// ParquetCodecs lists the page codec names accepted by NewParquetFormatter.
var ParquetCodecs = []string{"snappy", "gzip", "zstd", "lz4", "brotli", "none"}

// ParquetFormatter writes records as a parquet file with one string column
// per schema field. Field names must be unique.
type ParquetFormatter struct {
	writer io.Writer
	codec  compress.Codec
}

// NewParquetFormatter creates a parquet formatter using the named page
// codec. An empty name selects snappy.
func NewParquetFormatter(w io.Writer, codec string) (*ParquetFormatter, error) {
	c, err := parquetCodec(codec)
	if err != nil {
		return nil, err
	}
	return &ParquetFormatter{writer: w, codec: c}, nil
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes a complete parquet file containing every input line
func (p *ParquetFormatter) Format(t transcode.Transcoder, lines []string) error {
	names := t.Schema.Names()
	if len(names) == 0 {
		return fmt.Errorf("parquet output requires at least one field")
	}

	group := make(parquet.Group, len(names))
	for _, name := range names {
		if _, dup := group[name]; dup {
			return fmt.Errorf("parquet output requires unique field names: %q appears more than once", name)
		}
		group[name] = parquet.String()
	}
	sch := parquet.NewSchema("record", group)

	// Leaf columns are ordered by name, not by schema position.
	column := make(map[string]int, len(names))
	for i, f := range sch.Fields() {
		column[f.Name()] = i
	}
	order := make([]int, len(names))
	for i, name := range names {
		order[i] = column[name]
	}

	w := parquet.NewWriter(p.writer, sch, parquet.Compression(p.codec))
	rows := make([]parquet.Row, 0, len(lines))
	for _, line := range lines {
		values := t.Extract(line)
		row := make(parquet.Row, len(values))
		for i, v := range values {
			row[order[i]] = parquet.ByteArrayValue([]byte(v)).Level(0, 0, order[i])
		}
		rows = append(rows, row)
	}

	if _, err := w.WriteRows(rows); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func parquetCodec(name string) (compress.Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snappy":
		return &parquet.Snappy, nil
	case "gzip":
		return &parquet.Gzip, nil
	case "zstd":
		return &parquet.Zstd, nil
	case "lz4", "lz4raw":
		return &parquet.Lz4Raw, nil
	case "brotli":
		return &parquet.Brotli, nil
	case "none", "uncompressed":
		return &parquet.Uncompressed, nil
	default:
		return nil, fmt.Errorf("unsupported parquet codec '%s' (supported codecs: %s)", name, strings.Join(ParquetCodecs, ", "))
	}
}
