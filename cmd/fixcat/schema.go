package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vegasq/fixcat/internal/config"
	"github.com/vegasq/fixcat/output"
	"github.com/vegasq/fixcat/reader"
	"github.com/vegasq/fixcat/schema"
	"github.com/vegasq/fixcat/transcode"
)

type schemaOptions struct {
	configPath string
	schema     string
	schemaFile string
	format     string
	sample     string
	lines      int
	encoding   string
	unit       string
}

func newSchemaCmd() *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema [flags]",
		Short: "Show a compiled layout",
		Long: `Compile a layout and print its fields with their offsets.

With --sample, the first lines of a fixed-width file are also shown as they
would be converted.`,
		Example: `  fixcat schema --schema-file layout.json
  fixcat schema --schema-file layout.toml -f csv
  fixcat schema --schema-file layout.json --sample data.txt -n 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "TOML config file")
	f.StringVar(&opts.schema, "schema", "", "layout as JSON text")
	f.StringVar(&opts.schemaFile, "schema-file", "", "layout file (.json or .toml)")
	f.StringVarP(&opts.format, "format", "f", "table", "listing format (table|csv|jsonl)")
	f.StringVar(&opts.sample, "sample", "", "fixed-width file to preview")
	f.IntVarP(&opts.lines, "lines", "n", 10, "number of sample lines to preview")
	f.StringVar(&opts.encoding, "encoding", "", "sample charset (default utf-8)")
	f.StringVar(&opts.unit, "unit", "runes", "offset unit (runes|bytes|columns)")

	return cmd
}

func runSchema(cmd *cobra.Command, opts *schemaOptions) error {
	if opts.lines < 0 {
		return fmt.Errorf("--lines must be non-negative, got %d", opts.lines)
	}

	sc := config.SchemaConfig{Inline: opts.schema, File: opts.schemaFile}
	if opts.configPath != "" && !cmd.Flags().Changed("schema") && !cmd.Flags().Changed("schema-file") {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		sc = cfg.Schema
	}
	if sc.File != "" && sc.Inline != "" {
		return fmt.Errorf("--schema and --schema-file cannot be used together")
	}

	text, isTOML, err := readSchema(sc)
	if err != nil {
		return err
	}
	var s *schema.Schema
	if isTOML {
		s, err = schema.CompileTOML(text)
	} else {
		s, err = schema.Compile(text)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	header, rows := output.FieldRows(s.Info())
	if err := output.WriteRecords(out, opts.format, header, rows); err != nil {
		return err
	}

	if opts.sample == "" {
		return nil
	}
	unit, err := transcode.ParseUnit(opts.unit)
	if err != nil {
		return err
	}
	return previewSample(out, transcode.Transcoder{Schema: s, Delimiter: ",", Unit: unit}, opts)
}

// previewSample renders up to opts.lines lines of the sample as a table.
func previewSample(w io.Writer, t transcode.Transcoder, opts *schemaOptions) error {
	r, err := reader.NewReader(opts.sample, reader.Options{Encoding: opts.encoding})
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	var lines []string
	for len(lines) < opts.lines {
		line, ok, err := r.Next()
		if err != nil {
			return fmt.Errorf("failed to read sample: %w", err)
		}
		if !ok {
			break
		}
		lines = append(lines, line)
	}

	fmt.Fprintf(w, "\n# Sample: %s (%d lines)\n", opts.sample, len(lines))
	return output.NewTableFormatter(w).Format(t, lines)
}
