package dsv

import (
	"strings"
	"unicode"

	"github.com/JonMunkholm/table/table"
)

const quote = '"'

// Parse splits text into rows on newlines ("\n" or "\r\n") and into cells
// on delimiter. Rows are padded with Nil to the widest row; the returned
// table has its header flag set.
//
// Parse panics with a [table.ContractViolation] wrapping
// [table.ErrInvalidDelimiter] when delimiter is not an ASCII character.
func Parse(delimiter rune, text string) *table.Table[string] {
	if delimiter < 0 || delimiter > unicode.MaxASCII {
		table.Violate("dsv.Parse", table.ErrInvalidDelimiter, "got %q", delimiter)
	}

	s := newScanner(byte(delimiter), text)
	var rows [][]table.Cell[string]
	for !s.done() {
		rows = append(rows, s.line())
	}

	t := table.New[string]()
	t.AddRows(rows)
	return t
}

// Owned returns a copy of t whose Obj cells no longer share memory with
// the text t was parsed from.
func Owned(t *table.Table[string]) *table.Table[string] {
	return table.MapObj(t, func(s string) table.Cell[string] {
		return table.Obj(strings.Clone(s))
	})
}

// scanner walks text one line at a time. pos always sits at the start of a
// line between calls to line.
type scanner struct {
	text  string
	pos   int
	delim byte
	stops string // bytes ending an unquoted cell
	width int    // widest row so far, a capacity hint
}

func newScanner(delim byte, text string) *scanner {
	return &scanner{
		text:  text,
		delim: delim,
		stops: string([]byte{delim, '\n'}),
	}
}

func (s *scanner) done() bool {
	return s.pos >= len(s.text)
}

// line scans one row and consumes its line ending. An empty line gives an
// empty row. A delimiter directly before the line ending adds no cell;
// blanks after it still make a trailing Nil.
func (s *scanner) line() []table.Cell[string] {
	if s.newline() {
		return nil
	}

	row := make([]table.Cell[string], 0, s.width)
	for {
		row = append(row, classify(s.cell()))
		if s.done() || s.text[s.pos] != s.delim {
			break
		}
		s.pos++
		if s.atLineEnd() {
			break
		}
	}
	s.newline()
	s.width = max(s.width, len(row))
	return row
}

// atLineEnd reports whether pos is at the end of text or of a line.
func (s *scanner) atLineEnd() bool {
	rest := s.text[s.pos:]
	return rest == "" || rest[0] == '\n' || strings.HasPrefix(rest, "\r\n")
}

// newline consumes "\n" or "\r\n" at pos and reports whether it did.
func (s *scanner) newline() bool {
	rest := s.text[s.pos:]
	switch {
	case strings.HasPrefix(rest, "\n"):
		s.pos++
	case strings.HasPrefix(rest, "\r\n"):
		s.pos += 2
	default:
		return false
	}
	return true
}

// cell scans one raw cell starting at pos and leaves pos on the delimiter,
// the line ending or the end of text that stopped it. The returned slice
// still carries trailing blanks and quotes.
func (s *scanner) cell() string {
	start := s.pos
	for start < len(s.text) && s.isBlank(s.text[start]) {
		start++
	}

	// An unclosed quote is literal text; scanning resumes right after it.
	from := start
	if start < len(s.text) && s.text[start] == quote {
		from = start + 1
		if end := strings.IndexByte(s.text[from:], quote); end >= 0 {
			from += end + 1
		}
	}

	end := len(s.text)
	if i := strings.IndexAny(s.text[from:], s.stops); i >= 0 {
		end = from + i
	}
	s.pos = end

	raw := s.text[start:end]
	if end < len(s.text) && s.text[end] == '\n' && strings.HasSuffix(raw, "\r") {
		// leave the "\r\n" for newline
		raw = raw[:len(raw)-1]
		s.pos--
	}
	return raw
}

// classify trims a raw cell and decides its variant.
func classify(raw string) table.Cell[string] {
	v := strings.TrimRightFunc(raw, unicode.IsSpace)
	v = strings.TrimPrefix(v, `"`)
	v = strings.TrimSuffix(v, `"`)
	if v == "" {
		return table.Nil[string]()
	}
	if n, err := table.ParseNumber(v); err == nil {
		return table.Num[string](n)
	}
	return table.Obj(v)
}

// isBlank reports the bytes skipped before a cell: ASCII whitespace other
// than line endings and the delimiter itself.
func (s *scanner) isBlank(b byte) bool {
	return b != s.delim && (b == ' ' || b == '\t' || b == '\f')
}
