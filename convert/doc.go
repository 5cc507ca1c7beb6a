// Package convert orchestrates whole-stream conversion: one header line
// followed by one transcoded line per input line, in input order.
//
// Conversion is all-or-nothing. A layout that fails to compile produces no
// output at all; once the layout compiles, individual lines cannot fail.
// I/O lives behind the LineSource and LineSink interfaces so the
// orchestration can be exercised without files.
package convert
