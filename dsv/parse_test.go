package dsv

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/table/table"
)

type cell = table.Cell[string]

var nilCell = table.Nil[string]()

func o(s string) cell    { return table.Obj(s) }
func num(i int64) cell   { return table.Num[string](table.Int(i)) }
func flt(f float64) cell { return table.Num[string](table.Float(f)) }

func objRows(rows ...[]string) *table.Table[string] {
	t := table.New[string]()
	for _, r := range rows {
		row := make([]cell, len(r))
		for i, s := range r {
			row[i] = o(s)
		}
		t.AddRow(row)
	}
	return t
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		delim rune
		input string
		want  [][]cell
	}{
		{
			name:  "empty input",
			delim: ',',
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace lines",
			delim: ',',
			input: "   \t    \t    \n       ",
			want:  [][]cell{{nilCell}, {nilCell}},
		},
		{
			name:  "numbers",
			delim: ',',
			input: " 1 ,  -2   \n   3.14e7   , -1.1  ",
			want: [][]cell{
				{num(1), num(-2)},
				{flt(3.14e7), flt(-1.1)},
			},
		},
		{
			name:  "blank lines each make a row",
			delim: ',',
			input: "Hello,,world\n\n        whats,,up\n\n        ",
			want: [][]cell{
				{o("Hello"), nilCell, o("world")},
				{},
				{o("whats"), nilCell, o("up")},
				{},
				{},
			},
		},
		{
			name:  "complex",
			delim: ',',
			input: "\"Hello, world!\", 101, , \"Nested \" Quote\"\n        1,2\n        ,,,     \"last\"",
			want: [][]cell{
				{o("Hello, world!"), num(101), nilCell, o(`Nested " Quote`)},
				{num(1), num(2)},
				{nilCell, nilCell, nilCell, o("last")},
			},
		},
		{
			name:  "leading blanks",
			delim: ',',
			input: ",Missing,Heading\n,One,\nTwo,Three,Four",
			want: [][]cell{
				{nilCell, o("Missing"), o("Heading")},
				{nilCell, o("One"), nilCell},
				{o("Two"), o("Three"), o("Four")},
			},
		},
		{
			name:  "quoted newline",
			delim: ',',
			input: "\"Hello\nworld\",Yo",
			want:  [][]cell{{o("Hello\nworld"), o("Yo")}},
		},
		{
			name:  "quoted crlf",
			delim: ',',
			input: "\"Hello\r\nworld\",Yo",
			want:  [][]cell{{o("Hello\r\nworld"), o("Yo")}},
		},
		{
			name:  "quote containment",
			delim: ',',
			input: `"Hello, world!"`,
			want:  [][]cell{{o("Hello, world!")}},
		},
		{
			name:  "unterminated quote keeps line priority",
			delim: ',',
			input: "\"abc,def\nx,y",
			want: [][]cell{
				{o("abc"), o("def")},
				{o("x"), o("y")},
			},
		},
		{
			name:  "crlf line endings",
			delim: ',',
			input: "a,b\r\nc,d\r\n",
			want:  [][]cell{{o("a"), o("b")}, {o("c"), o("d")}},
		},
		{
			name:  "lone carriage return is content",
			delim: ',',
			input: "a\rb,c",
			want:  [][]cell{{o("a\rb"), o("c")}},
		},
		{
			name:  "trailing delimiter adds no cell",
			delim: ',',
			input: "a,b,\nc,d",
			want:  [][]cell{{o("a"), o("b")}, {o("c"), o("d")}},
		},
		{
			name:  "trailing delimiter before crlf and end of input",
			delim: ',',
			input: "a,b,\r\nc,d,",
			want:  [][]cell{{o("a"), o("b")}, {o("c"), o("d")}},
		},
		{
			name:  "blanks after trailing delimiter make a nil",
			delim: ',',
			input: "a, \nb,c,d",
			want: [][]cell{
				{o("a"), nilCell, nilCell},
				{o("b"), o("c"), o("d")},
			},
		},
		{
			name:  "blank line ending in delimiter",
			delim: ',',
			input: "   ,",
			want:  [][]cell{{nilCell}},
		},
		{
			name:  "space delimiter with trailing space",
			delim: ' ',
			input: "dog cat mouse \nlion hyena elephant",
			want: [][]cell{
				{o("dog"), o("cat"), o("mouse")},
				{o("lion"), o("hyena"), o("elephant")},
			},
		},
		{
			name:  "consecutive delimiters",
			delim: '|',
			input: "a|||b",
			want:  [][]cell{{o("a"), nilCell, nilCell, o("b")}},
		},
		{
			name:  "consecutive tabs",
			delim: '\t',
			input: "a\t\tb\n\t c",
			want: [][]cell{
				{o("a"), nilCell, o("b")},
				{nilCell, o("c")},
			},
		},
		{
			name:  "quote inside cell is literal",
			delim: ',',
			input: `say "hi",x`,
			want:  [][]cell{{o(`say "hi`), o("x")}},
		},
		{
			name:  "quoted blanks are kept",
			delim: ',',
			input: `" padded ",x`,
			want:  [][]cell{{o(" padded "), o("x")}},
		},
		{
			name:  "special float words",
			delim: '\t',
			input: "inf\tNaN\tinfinite",
			want: [][]cell{{
				flt(math.Inf(1)), flt(math.NaN()), o("infinite"),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.delim, tt.input)
			want := table.FromRows(tt.want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_ScenarioA(t *testing.T) {
	want := objRows(
		[]string{"dog", "cat", "mouse"},
		[]string{"lion", "hyena", "elephant"},
	)

	tests := []struct {
		delim rune
		input string
	}{
		{',', "dog,cat,mouse\nlion,hyena,elephant"},
		{'|', "dog|cat|mouse\nlion|hyena|elephant"},
		{' ', "dog cat mouse\nlion hyena elephant"},
	}
	for _, tt := range tests {
		got := Parse(tt.delim, tt.input)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.delim, diff)
		}
	}
}

func TestParse_ScenarioB(t *testing.T) {
	got := Parse(',', " 1 ,  -2   \n   3.14e7   , -1.1  ")

	if got.RowsLen() != 2 || got.ColsLen() != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", got.RowsLen(), got.ColsLen())
	}
	for row := range got.Rows() {
		for c := range row {
			if !c.IsNum() {
				t.Errorf("cell %v is %v, want num", c, c.Kind())
			}
		}
	}
	if !got.Header() {
		t.Error("parsed table should have the header flag set")
	}
}

func TestParse_InvalidDelimiter(t *testing.T) {
	for _, d := range []rune{'é', '→', -1} {
		func() {
			defer func() {
				r := recover()
				cv, ok := r.(*table.ContractViolation)
				if !ok {
					t.Fatalf("Parse(%q) recovered %v, want *table.ContractViolation", d, r)
				}
				if !errors.Is(cv, table.ErrInvalidDelimiter) {
					t.Errorf("violation = %v, want ErrInvalidDelimiter", cv)
				}
			}()
			Parse(d, "a,b")
		}()
	}
}

func TestParse_ZeroCopy(t *testing.T) {
	input := strings.Repeat("alpha,beta\n", 3)
	got := Parse(',', input)

	c, _ := got.At(2, 1)
	s, ok := c.Obj()
	if !ok || s != "beta" {
		t.Fatalf("At(2, 1) = %v, want beta", c)
	}
	if !sharesMemory(input, s) {
		t.Error("Obj cell does not point into the input")
	}

	owned := Owned(got)
	if diff := cmp.Diff(got, owned); diff != "" {
		t.Errorf("Owned changed contents (-parsed +owned):\n%s", diff)
	}
	c, _ = owned.At(2, 1)
	s, _ = c.Obj()
	if sharesMemory(input, s) {
		t.Error("Owned cell still points into the input")
	}
}

func TestParse_Rectangular(t *testing.T) {
	got := Parse(',', "a\nb,c,d\n\ne,f")
	for row := range got.Rows() {
		n := 0
		for range row {
			n++
		}
		if n != got.ColsLen() {
			t.Errorf("row has %d cells, ColsLen() = %d", n, got.ColsLen())
		}
	}
	if got.RowsLen() != 4 {
		t.Errorf("RowsLen() = %d, want 4", got.RowsLen())
	}
}

// sharesMemory reports whether sub lies inside s's backing bytes.
func sharesMemory(s, sub string) bool {
	if len(sub) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(unsafe.StringData(s)))
	p := uintptr(unsafe.Pointer(unsafe.StringData(sub)))
	return p >= base && p < base+uintptr(len(s))
}
