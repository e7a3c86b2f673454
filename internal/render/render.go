// Package render writes a parsed table to an output stream as aligned
// text, CSV, JSON or YAML.
package render

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/table/table"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is column-aligned text for terminals (default).
	FormatText Format = "text"
	// FormatCSV is comma-separated values with RFC 4180 quoting.
	FormatCSV Format = "csv"
	// FormatJSON is pretty-printed JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// columnGap separates aligned text columns.
const columnGap = "   "

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --format (expected text|csv|json|yaml)")
	}
}

// Printer writes tables in one format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a new Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// Print writes t in the configured format.
func (p *Printer) Print(t *table.Table[string]) error {
	switch p.format {
	case FormatText, "":
		return p.printText(t)
	case FormatCSV:
		return p.printCSV(t)
	case FormatJSON:
		return p.printJSON(t)
	case FormatYAML:
		return p.printYAML(t)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printText aligns columns by padding each cell to its column's widest
// value. With the header flag set, row 0 is underlined with dashes.
func (p *Printer) printText(t *table.Table[string]) error {
	rows := textRows(t)
	widths := make([]int, t.ColsLen())
	for _, row := range rows {
		for j, s := range row {
			widths[j] = max(widths[j], utf8.RuneCountInString(s))
		}
	}

	var b strings.Builder
	fields := make([]string, len(widths))
	writeLine := func() {
		b.WriteString(strings.TrimRight(strings.Join(fields, columnGap), " "))
		b.WriteByte('\n')
	}
	for i, row := range rows {
		for j, s := range row {
			fields[j] = s + strings.Repeat(" ", widths[j]-utf8.RuneCountInString(s))
		}
		writeLine()
		if i == 0 && t.Header() {
			for j := range fields {
				fields[j] = strings.Repeat("-", widths[j])
			}
			writeLine()
		}
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

var lineBreaks = strings.NewReplacer("\r", `\r`, "\n", `\n`)

func textRows(t *table.Table[string]) [][]string {
	rows := make([][]string, 0, t.RowsLen())
	for row := range t.Rows() {
		out := make([]string, 0, t.ColsLen())
		for c := range row {
			out = append(out, lineBreaks.Replace(c.String()))
		}
		rows = append(rows, out)
	}
	return rows
}

// printCSV writes every row, header included, with Nil as an empty field.
func (p *Printer) printCSV(t *table.Table[string]) error {
	w := csv.NewWriter(p.w)
	record := make([]string, t.ColsLen())
	for row := range t.Rows() {
		j := 0
		for c := range row {
			record[j] = ""
			if !c.IsNil() {
				record[j] = c.String()
			}
			j++
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// document is the shape of JSON and YAML output. Columns holds the header
// row when the header flag is set.
type document struct {
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

func newDocument(t *table.Table[string], value func(table.Cell[string]) any) document {
	doc := document{Rows: make([][]any, 0, t.RowsLen())}
	first := true
	for row := range t.Rows() {
		if first && t.Header() {
			first = false
			doc.Columns = make([]string, 0, t.ColsLen())
			for c := range row {
				name := ""
				if !c.IsNil() {
					name = c.String()
				}
				doc.Columns = append(doc.Columns, name)
			}
			continue
		}
		first = false
		out := make([]any, 0, t.ColsLen())
		for c := range row {
			out = append(out, value(c))
		}
		doc.Rows = append(doc.Rows, out)
	}
	return doc
}

func (p *Printer) printJSON(t *table.Table[string]) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(t, jsonValue))
}

func (p *Printer) printYAML(t *table.Table[string]) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(newDocument(t, yamlValue))
}

// jsonValue keeps numbers as JSON numbers, except the non-finite floats JSON
// cannot represent, which are written as strings.
func jsonValue(c table.Cell[string]) any {
	if n, ok := c.Num(); ok {
		if f := n.Float64(); n.IsFloat() && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return n.String()
		}
		return json.Number(n.String())
	}
	return plainValue(c)
}

func yamlValue(c table.Cell[string]) any {
	if n, ok := c.Num(); ok {
		if i, ok := n.Int64(); ok {
			return i
		}
		if u, ok := n.Uint64(); ok {
			return u
		}
		return n.Float64()
	}
	return plainValue(c)
}

func plainValue(c table.Cell[string]) any {
	if s, ok := c.Obj(); ok {
		return s
	}
	return nil
}
