package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/fixcat/transcode"
)

// TableFormatter renders records as an aligned text table. Values are shown
// unescaped.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (tf *TableFormatter) SetOutput(w io.Writer) {
	tf.writer = w
}

// Format renders the header and one table row per input line
func (tf *TableFormatter) Format(t transcode.Transcoder, lines []string) error {
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = t.Extract(line)
	}
	renderTable(tf.writer, t.Schema.Names(), rows)
	return nil
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
