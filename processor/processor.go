package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vegasq/fixcat/internal/diag"
	"github.com/vegasq/fixcat/output"
	"github.com/vegasq/fixcat/reader"
	"github.com/vegasq/fixcat/schema"
	"github.com/vegasq/fixcat/transcode"
)

const component = "processor"

// Relationship names the route an Outcome takes.
type Relationship string

const (
	Success Relationship = "success"
	Failure Relationship = "failure"
)

// FlowFile is one unit of input.
type FlowFile struct {
	ID      string
	Content []byte
}

// Outcome is the result of processing one FlowFile. On Failure, FlowFile
// carries the original content and Err the cause.
type Outcome struct {
	Relationship Relationship
	FlowFile     FlowFile
	Records      int
	Err          error
}

// Config holds the processor settings.
type Config struct {
	// Schema is the layout text, JSON unless TOML is set.
	Schema string
	TOML   bool

	Delimiter string
	Unit      transcode.Unit
	Normalize bool

	// Encoding is the charset of the input, empty for UTF-8.
	Encoding string

	// Format is the output format name, empty for csv.
	Format string
	Output output.Options

	// Compress names the stream codec applied to successful output.
	Compress string

	Logger *diag.Logger
}

// Processor converts FlowFiles according to a Config.
type Processor struct {
	cfg Config

	once   sync.Once
	schema *schema.Schema
	err    error
}

// New validates cfg and returns a Processor. The schema itself is not
// compiled until the first call to Process.
func New(cfg Config) (*Processor, error) {
	if cfg.Delimiter == "" {
		return nil, errors.New("delimiter must not be empty")
	}
	if strings.TrimSpace(cfg.Schema) == "" {
		return nil, errors.New("schema must not be empty")
	}
	if _, err := output.New(cfg.Format, io.Discard, cfg.Output); err != nil {
		return nil, err
	}
	cw, err := output.Compress(io.Discard, cfg.Compress)
	if err != nil {
		return nil, err
	}
	_ = cw.Close()

	return &Processor{cfg: cfg}, nil
}

// Schema returns the compiled schema, compiling it on first use.
func (p *Processor) Schema() (*schema.Schema, error) {
	p.once.Do(func() {
		if p.cfg.TOML {
			p.schema, p.err = schema.CompileTOML(p.cfg.Schema)
		} else {
			p.schema, p.err = schema.Compile(p.cfg.Schema)
		}
	})
	return p.schema, p.err
}

// Process converts ff. It never panics on bad input: every error routes
// the original FlowFile to Failure.
func (p *Processor) Process(ctx context.Context, ff FlowFile) Outcome {
	if err := ctx.Err(); err != nil {
		return p.fail(ff, err)
	}

	s, err := p.Schema()
	if err != nil {
		return p.fail(ff, err)
	}

	lines, err := reader.ReadLines(bytes.NewReader(ff.Content), reader.Options{Encoding: p.cfg.Encoding})
	if err != nil {
		return p.fail(ff, err)
	}

	content, err := p.render(s, lines)
	if err != nil {
		return p.fail(ff, err)
	}

	p.cfg.Logger.Debug(component, "converted", diag.KV{
		"flowfile": ff.ID,
		"records":  strconv.Itoa(len(lines)),
	})
	return Outcome{
		Relationship: Success,
		FlowFile:     FlowFile{ID: ff.ID, Content: content},
		Records:      len(lines),
	}
}

func (p *Processor) render(s *schema.Schema, lines []string) ([]byte, error) {
	t := transcode.Transcoder{
		Schema:    s,
		Delimiter: p.cfg.Delimiter,
		Unit:      p.cfg.Unit,
		Normalize: p.cfg.Normalize,
	}

	var buf bytes.Buffer
	cw, err := output.Compress(&buf, p.cfg.Compress)
	if err != nil {
		return nil, err
	}
	formatter, err := output.New(p.cfg.Format, cw, p.cfg.Output)
	if err != nil {
		return nil, err
	}
	if err := formatter.Format(t, lines); err != nil {
		_ = cw.Close()
		return nil, err
	}
	if err := cw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish compressed output: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Processor) fail(ff FlowFile, err error) Outcome {
	p.cfg.Logger.Error(component, "failed to process fixed-width file", diag.KV{
		"flowfile": ff.ID,
		"error":    err.Error(),
	})
	return Outcome{
		Relationship: Failure,
		FlowFile:     ff,
		Err:          err,
	}
}

// ProcessAll processes files with at most jobs concurrent workers and
// returns one Outcome per file in input order. jobs <= 0 means GOMAXPROCS.
//
// Once ctx is cancelled the remaining files fail with the context error,
// which is also returned.
func (p *Processor) ProcessAll(ctx context.Context, files []FlowFile, jobs int) ([]Outcome, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, ff := range files {
		i, ff := i, ff
		g.Go(func() error {
			outcomes[i] = p.Process(ctx, ff)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, ctx.Err()
}
