// Package reader provides line input for fixed-width record files.
//
// It decodes bytes into lines with their terminators removed, which is the
// form the transcoder expects, and resolves file arguments that may be
// glob patterns.
//
// # Basic Usage
//
// Reading a single file line by line:
//
//	r, err := reader.NewReader("records.txt", reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for {
//	    line, ok, err := r.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(line)
//	}
//
// Decoding an in-memory payload:
//
//	lines, err := reader.ReadLines(bytes.NewReader(payload), reader.Options{})
//
// # Character Sets
//
// Input is UTF-8 unless Options.Encoding names another charset. Labels
// follow the WHATWG encoding registry, for example "latin1",
// "windows-1252", "shift_jis" or "utf-16le".
//
// # Multi-file Operations
//
// Loading every file that matches a glob pattern:
//
//	files, err := reader.ReadMultipleFiles("incoming/*.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range files {
//	    fmt.Printf("%s: %d bytes\n", f.Path, len(f.Content))
//	}
//
// A single pattern may match at most MaxFiles files.
//
// # Resource Management
//
// Always call Close() on a Reader when done to release the file handle.
package reader
