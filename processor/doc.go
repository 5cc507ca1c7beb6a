// Package processor routes whole input records through the converter.
//
// A Processor takes one FlowFile at a time, the unit a host pipeline hands
// over (a whole file in the command line tool), and produces an Outcome on
// one of two relationships:
//
//   - success: the content is replaced by the converted output
//   - failure: the original content is passed through untouched and the
//     cause is logged
//
// # Basic Usage
//
//	p, err := processor.New(processor.Config{
//	    Schema:    `[{"name":"id","start":0,"length":3}]`,
//	    Delimiter: ",",
//	    Logger:    logger,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := p.Process(ctx, processor.FlowFile{ID: "in.txt", Content: data})
//	if out.Relationship == processor.Failure {
//	    // out.FlowFile.Content is data, out.Err is the cause
//	}
//
// # Schema Compilation
//
// The schema text is compiled once, on first use, and the result (or the
// error) is shared by every later call. A schema that fails to compile
// sends every record to failure.
//
// # Parallel Processing
//
// ProcessAll converts independent flow files on a bounded worker pool and
// returns outcomes in input order. A Processor holds no per-record state,
// so a single instance is safe for concurrent use.
package processor
