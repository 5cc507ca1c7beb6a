// Package schema compiles fixed-width record layouts.
//
// A layout is an ordered list of field definitions, each naming a column
// and the character range it occupies in a record line. The canonical form
// is a JSON array:
//
//	[
//	  {"name": "id",    "start": 0,  "length": 3},
//	  {"name": "name",  "start": 3,  "length": 10},
//	  {"name": "phone", "start": 13, "length": 10}
//	]
//
// # Basic Usage
//
// Compile a layout once per run and share the result:
//
//	s, err := schema.Compile(layoutJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(s.Header(","))
//
// The returned Schema is immutable and safe for concurrent use.
//
// # TOML Layouts
//
// The same structure can be written as TOML field tables:
//
//	[[field]]
//	name = "id"
//	start = 0
//	length = 3
//
// Use CompileTOML for TOML text, or CompileFile to pick the decoder from
// the file extension.
//
// # Error Handling
//
// Every compile failure is reported as *Error and matches ErrInvalid:
//   - Malformed syntax or a top level that is not an array
//   - Elements that are not objects
//   - Missing "name", "start" or "length"
//   - Wrong value types (non-integral offsets, non-string names)
//   - Unknown keys
//   - Negative start or non-positive length
//
// Overlapping fields and gaps between fields are accepted as written. The
// layout author is trusted with the physical record shape.
//
// # Header Names
//
// Header joins field names with the delimiter without escaping them. A
// name that contains the delimiter or a quote produces a header that
// does not split back into the same columns.
package schema
