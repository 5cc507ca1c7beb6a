package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vegasq/fixcat/schema"
)

// WriteRecords writes header and rows as csv, jsonl or table. Rows must have
// the same width as header.
func WriteRecords(w io.Writer, format string, header []string, rows [][]string) error {
	switch normalizeFormat(format) {
	case FormatCSV:
		return writeCSV(w, header, rows)
	case FormatJSONL:
		keys, err := encodeKeys(header)
		if err != nil {
			return err
		}
		var buf []byte
		for _, row := range rows {
			buf, err = appendObject(buf[:0], keys, row)
			if err != nil {
				return err
			}
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		renderTable(w, header, rows)
		return nil
	default:
		return fmt.Errorf("unsupported format '%s' (supported formats: csv, jsonl, table)", format)
	}
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// FieldRows renders schema field descriptions as string rows.
func FieldRows(fields []schema.FieldInfo) (header []string, rows [][]string) {
	header = []string{"#", "name", "start", "length", "end"}
	rows = make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{
			strconv.Itoa(i),
			f.Name,
			strconv.Itoa(f.Start),
			strconv.Itoa(f.Length),
			strconv.Itoa(f.End),
		}
	}
	return header, rows
}
