// Package transcode turns fixed-width record lines into delimited rows.
//
// For each field of a compiled schema the transcoder slices the field's
// range out of the line, trims surrounding whitespace and applies
// delimiter-aware CSV quoting. Values are joined with the delimiter in
// schema order, without a trailing delimiter.
//
// # Basic Usage
//
//	s, _ := schema.Compile(layout)
//	fmt.Println(transcode.Header(s, ","))
//	for _, line := range lines {
//	    fmt.Println(transcode.Transcode(line, s, ","))
//	}
//
// # Short Lines
//
// A line shorter than a field's start yields an empty value for that
// field, and a line that ends inside a field yields the available prefix.
// Transcoding never fails.
//
// # Quoting
//
// Quotes inside a value are doubled. A value that then contains the
// delimiter or a quote is wrapped in quotes; anything else is emitted
// bare. Multi-character delimiters are matched as substrings.
//
// # Offset Units
//
// Offsets count Unicode code points by default. A Transcoder can instead
// count raw bytes (Bytes) or terminal display columns (Columns), where
// East Asian wide characters occupy two columns.
//
// All functions are pure and safe for concurrent use.
package transcode
