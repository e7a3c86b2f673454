// Package dsv parses delimiter-separated text (CSV, TSV, pipe-separated and
// so on) into a [table.Table] of string cells.
//
// Parsing is a single forward pass over an in-memory string. Each line
// becomes a row and each delimiter-separated field becomes a cell:
//
//   - an empty field is Nil
//   - a field that reads as a number is Num
//   - anything else is an Obj holding a substring of the input
//
// A delimiter directly before a line ending or the end of input does not
// start another field.
//
// Obj cells share memory with the input, so the parsed table keeps the
// whole input alive. Use [Owned] to detach it.
//
// # Quoting
//
// A field whose first non-blank byte is a double quote is quoted: the
// delimiter and newlines are ordinary text until the next double quote.
// There is no escaping by doubling quotes. One leading and one trailing
// quote are removed from the field text.
//
// Lines take priority over malformed quoting. When a quote is never
// closed, the quote is read as literal text and the line ends at the next
// newline as usual. Malformed input is never an error.
package dsv
