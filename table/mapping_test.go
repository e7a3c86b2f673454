package table

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mixedTable(rows, cols int) *Table[string] {
	tb := New[string]()
	data := make([][]Cell[string], rows)
	for i := range data {
		// ragged widths so padding is exercised too
		w := cols - i%3
		row := make([]Cell[string], w)
		for j := range row {
			switch (i + j) % 3 {
			case 0:
				row[j] = Nil[string]()
			case 1:
				row[j] = Num[string](Int(int64(i*cols + j)))
			default:
				row[j] = Obj(fmt.Sprintf("r%dc%d", i, j))
			}
		}
		data[i] = row
	}
	tb.AddRows(data)
	return tb
}

func TestMap(t *testing.T) {
	tb := FromRows([][]Cell[string]{
		{Obj("a"), sNum(1)},
		{Nil[string]()},
	})
	tb.SetHeader(false)

	got := Map(tb, func(c Cell[string]) Cell[int] {
		return Obj(len(c.String()))
	})

	want := FromRows([][]Cell[int]{
		{Obj(1), Obj(1)},
		{Obj(1), Obj(1)},
	})
	want.SetHeader(false)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMapObj(t *testing.T) {
	tb := FromRows([][]Cell[string]{
		{Obj("abc"), Num[string](Float(2.5)), Nil[string]()},
	})

	got := MapObj(tb, func(s string) Cell[int] { return Obj(len(s)) })

	want := FromRows([][]Cell[int]{
		{Obj(3), Num[int](Float(2.5)), Nil[int]()},
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !got.Header() {
		t.Error("header flag not carried over")
	}
}

func TestMap_EmptyAndZeroWidth(t *testing.T) {
	empty := Map(New[string](), func(c Cell[string]) Cell[string] { return c })
	if !empty.IsEmpty() || empty.ColsLen() != 0 {
		t.Errorf("shape = %dx%d, want 0x0", empty.RowsLen(), empty.ColsLen())
	}

	narrow := FromRows([][]Cell[string]{{}, {}})
	got := Map(narrow, func(c Cell[string]) Cell[string] { return c })
	if got.RowsLen() != 2 || got.ColsLen() != 0 {
		t.Errorf("shape = %dx%d, want 2x0", got.RowsLen(), got.ColsLen())
	}
}

func TestMap_ResultIsIndependent(t *testing.T) {
	tb := FromRows([][]Cell[string]{{Obj("a")}, {Obj("b")}})
	out := Map(tb, func(c Cell[string]) Cell[string] { return c })

	// widening one row of the result must not bleed into its neighbour
	out.AddRow([]Cell[string]{Obj("x"), Obj("y")})
	second, _ := out.At(1, 0)
	if !EqualText(second, "b") {
		t.Errorf("At(1, 0) = %v, want b", second)
	}
	assertRectangular(t, out)
}

func TestParMap_MatchesMap(t *testing.T) {
	tb := mixedTable(1000, 7)
	fn := func(c Cell[string]) Cell[string] {
		if s, ok := c.Obj(); ok {
			return Obj(strings.ToUpper(s))
		}
		return c
	}

	want := Map(tb, fn)
	tests := []struct {
		name string
		opts ParOptions
	}{
		{"defaults", ParOptions{}},
		{"single worker", ParOptions{Workers: 1}},
		{"small chunks", ParOptions{Workers: 4, ChunkRows: 3}},
		{"chunk larger than table", ParOptions{Workers: 8, ChunkRows: 5000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParMap(tb, fn, tt.opts)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ParMap differs from Map (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParMapObj_MatchesMapObj(t *testing.T) {
	tb := mixedTable(300, 4)
	fn := func(s string) Cell[int] { return Obj(len(s)) }

	want := MapObj(tb, fn)
	got := ParMapObj(tb, fn, ParOptions{Workers: 3, ChunkRows: 16})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParMapObj differs from MapObj (-want +got):\n%s", diff)
	}
}
