package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vegasq/fixcat/internal/config"
	"github.com/vegasq/fixcat/internal/diag"
	"github.com/vegasq/fixcat/output"
	"github.com/vegasq/fixcat/processor"
	"github.com/vegasq/fixcat/reader"
	"github.com/vegasq/fixcat/transcode"
)

type convertOptions struct {
	configPath   string
	schema       string
	schemaFile   string
	delimiter    string
	format       string
	unit         string
	nfc          bool
	encoding     string
	compress     string
	parquetCodec string
	outDir       string
	failureDir   string
	jobs         int
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [flags] [file|glob]...",
		Short: "Convert fixed-width files",
		Long: `Convert fixed-width files to delimited records.

Each input file is converted as a whole: the output starts with a header of
field names followed by one record per input line. A file that cannot be
converted is reported and, with --failure-dir, copied there unchanged.
With no arguments the input is read from stdin.`,
		Example: `  fixcat convert --schema-file layout.json data.txt
  fixcat convert --schema '[{"name":"id","start":0,"length":3}]' -d ';' < data.txt
  fixcat convert --schema-file layout.toml -f parquet -o out/ 'in/*.txt'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "TOML config file")
	f.StringVar(&opts.schema, "schema", "", "layout as JSON text")
	f.StringVar(&opts.schemaFile, "schema-file", "", "layout file (.json or .toml)")
	f.StringVarP(&opts.delimiter, "delimiter", "d", ",", "output delimiter")
	f.StringVarP(&opts.format, "format", "f", "csv", "output format: "+strings.Join(output.Formats, ", "))
	f.StringVar(&opts.unit, "unit", "runes", "offset unit (runes|bytes|columns)")
	f.BoolVar(&opts.nfc, "nfc", false, "normalize input lines to Unicode NFC")
	f.StringVar(&opts.encoding, "encoding", "", "input charset (default utf-8)")
	f.StringVar(&opts.compress, "compress", "none", "output compression: "+strings.Join(output.Codecs, ", "))
	f.StringVar(&opts.parquetCodec, "parquet-codec", "snappy", "parquet page codec: "+strings.Join(output.ParquetCodecs, ", "))
	f.StringVarP(&opts.outDir, "out-dir", "o", "", "write converted files to this directory")
	f.StringVar(&opts.failureDir, "failure-dir", "", "copy files that fail to convert to this directory")
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "files converted in parallel (0 = one per CPU)")

	return cmd
}

// loadConvertConfig reads the optional config file and lays explicitly set
// flags over it.
func loadConvertConfig(flags *pflag.FlagSet, opts *convertOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	if flags.Changed("schema") && flags.Changed("schema-file") {
		return config.Config{}, errors.New("--schema and --schema-file cannot be used together")
	}

	c := &cfg.Convert
	if flags.Changed("schema") {
		cfg.Schema = config.SchemaConfig{Inline: opts.schema}
	}
	if flags.Changed("schema-file") {
		cfg.Schema = config.SchemaConfig{File: opts.schemaFile}
	}
	if flags.Changed("delimiter") {
		c.Delimiter = opts.delimiter
	}
	if flags.Changed("format") {
		c.Format = opts.format
	}
	if flags.Changed("unit") {
		c.Unit = opts.unit
	}
	if flags.Changed("nfc") {
		c.NFC = opts.nfc
	}
	if flags.Changed("encoding") {
		c.Encoding = opts.encoding
	}
	if flags.Changed("compress") {
		c.Compress = opts.compress
	}
	if flags.Changed("parquet-codec") {
		c.ParquetCodec = opts.parquetCodec
	}
	if flags.Changed("out-dir") {
		c.OutDir = opts.outDir
	}
	if flags.Changed("failure-dir") {
		c.FailureDir = opts.failureDir
	}
	if flags.Changed("jobs") {
		c.Jobs = int64(opts.jobs)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, opts *convertOptions, args []string) error {
	cfg, err := loadConvertConfig(cmd.Flags(), opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd, logSettings{level: cfg.Log.Level, format: cfg.Log.Format, color: cfg.Log.Color})
	if err != nil {
		return err
	}

	layout, isTOML, err := readSchema(cfg.Schema)
	if err != nil {
		return err
	}
	unit, err := transcode.ParseUnit(cfg.Convert.Unit)
	if err != nil {
		return err
	}
	jobs, err := cfg.JobCount()
	if err != nil {
		return err
	}

	p, err := processor.New(processor.Config{
		Schema:    layout,
		TOML:      isTOML,
		Delimiter: cfg.Convert.Delimiter,
		Unit:      unit,
		Normalize: cfg.Convert.NFC,
		Encoding:  cfg.Convert.Encoding,
		Format:    cfg.Convert.Format,
		Output:    output.Options{ParquetCodec: cfg.Convert.ParquetCodec},
		Compress:  cfg.Convert.Compress,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	files, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if len(files) > 1 && cfg.Convert.OutDir == "" {
		return fmt.Errorf("%d input files require --out-dir", len(files))
	}

	outcomes, err := p.ProcessAll(cmd.Context(), files, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, out := range outcomes {
		if out.Relationship == processor.Failure {
			failed++
			if err := routeFailure(cfg.Convert.FailureDir, out.FlowFile); err != nil {
				return err
			}
			continue
		}
		dest, err := routeSuccess(cmd.OutOrStdout(), cfg.Convert, out.FlowFile)
		if err != nil {
			return err
		}
		logger.Info("convert", "converted", diag.KV{
			"file":    out.FlowFile.ID,
			"output":  dest,
			"records": strconv.Itoa(out.Records),
		})
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(outcomes))
	}
	return nil
}

// readSchema returns the layout text and whether it is TOML.
func readSchema(sc config.SchemaConfig) (string, bool, error) {
	switch {
	case sc.File != "":
		data, err := os.ReadFile(sc.File)
		if err != nil {
			return "", false, fmt.Errorf("failed to read schema file: %w", err)
		}
		return string(data), strings.EqualFold(filepath.Ext(sc.File), ".toml"), nil
	case strings.TrimSpace(sc.Inline) != "":
		return sc.Inline, false, nil
	default:
		return "", false, errors.New("a layout is required (--schema, --schema-file or [schema] in --config)")
	}
}

// readInputs loads every file matched by args, or stdin when args is empty.
func readInputs(stdin io.Reader, args []string) ([]processor.FlowFile, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []processor.FlowFile{{ID: "stdin", Content: data}}, nil
	}

	var files []processor.FlowFile
	for _, arg := range args {
		matched, err := reader.ReadMultipleFiles(arg)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("file '%s' not found", arg)
			}
			return nil, err
		}
		for _, f := range matched {
			files = append(files, processor.FlowFile{ID: f.Path, Content: f.Content})
		}
	}
	return files, nil
}

// routeSuccess writes converted content to stdout or, with an output
// directory, to a file named after the input. It returns the destination.
func routeSuccess(stdout io.Writer, c config.ConvertConfig, ff processor.FlowFile) (string, error) {
	if c.OutDir == "" {
		if _, err := stdout.Write(ff.Content); err != nil {
			return "", fmt.Errorf("failed to write output: %w", err)
		}
		return "stdout", nil
	}

	name := strings.TrimSuffix(filepath.Base(ff.ID), filepath.Ext(ff.ID))
	dest := filepath.Join(c.OutDir, name+output.Extension(c.Format)+output.CodecExtension(c.Compress))
	if err := writeFile(dest, ff.Content); err != nil {
		return "", err
	}
	return dest, nil
}

// routeFailure copies the untouched input into dir, if set.
func routeFailure(dir string, ff processor.FlowFile) error {
	if dir == "" {
		return nil
	}
	return writeFile(filepath.Join(dir, filepath.Base(ff.ID)), ff.Content)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
