// Package output provides formatters for writing converted fixed-width
// records in various output formats.
//
// This package defines the Formatter interface and provides implementations
// for delimited text, JSON Lines, MessagePack, Parquet and aligned text
// tables. Every formatter receives the raw input lines together with a
// transcode.Transcoder and extracts the field values itself, so all formats
// agree on offsets, trimming and Unicode handling.
//
// # Supported Formats
//
//   - csv: header row of raw field names, then one escaped row per line
//   - jsonl: one JSON object per line, keys in schema order
//   - msgpack: one MessagePack map per record, keys in schema order
//   - parquet: one required string column per field
//   - table: aligned preview for terminals
//
// # Basic Usage
//
//	formatter, err := output.New("csv", os.Stdout, output.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(tr, lines); err != nil {
//	    log.Fatal(err)
//	}
//
// # Compression
//
// Compress wraps any writer with gzip, zstd, lz4 or brotli. The caller must
// close the returned writer to flush the stream:
//
//	cw, err := output.Compress(file, "zstd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cw.Close()
//	formatter.SetOutput(cw)
//
// # Plain Records
//
// WriteRecords renders already extracted string rows as csv, jsonl or table.
// It backs schema inspection, where the rows are field descriptions rather
// than converted data.
package output
