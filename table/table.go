package table

import (
	"slices"
)

// Table is a mutable, rectangular grid of cells. Every row holds exactly
// ColsLen cells; operations that widen or lengthen the table pad with Nil.
//
// The zero value is an empty table whose header flag is set. A Table is
// not safe for concurrent mutation.
type Table[T any] struct {
	data     [][]Cell[T]
	cols     int
	noHeader bool

	// version counts structural changes so views can detect them.
	version uint64
}

// New returns an empty table with the header flag set.
func New[T any]() *Table[T] {
	return &Table[T]{}
}

// FromRows builds a table from rows of cells. The width is the longest
// row; shorter rows are padded with Nil. The rows are copied.
func FromRows[T any](rows [][]Cell[T]) *Table[T] {
	t := New[T]()
	t.AddRows(rows)
	return t
}

// Header reports whether row 0 is treated as a header.
func (t *Table[T]) Header() bool {
	return !t.noHeader
}

// SetHeader marks whether row 0 is a header. It never touches stored cells.
func (t *Table[T]) SetHeader(header bool) {
	t.noHeader = !header
}

// IsEmpty reports whether the table has no rows.
func (t *Table[T]) IsEmpty() bool {
	return len(t.data) == 0
}

// IsDataEmpty reports whether no rows remain once the header row (if the
// header flag is set) is excluded.
func (t *Table[T]) IsDataEmpty() bool {
	n := len(t.data)
	if t.Header() && n > 0 {
		n--
	}
	return n == 0
}

// RowsLen returns the number of rows, header included.
func (t *Table[T]) RowsLen() int { return len(t.data) }

// ColsLen returns the width shared by every row.
func (t *Table[T]) ColsLen() int { return t.cols }

// At returns the cell at row r, column c.
func (t *Table[T]) At(r, c int) (Cell[T], bool) {
	if r < 0 || r >= len(t.data) || c < 0 || c >= t.cols {
		return Cell[T]{}, false
	}
	return t.data[r][c], true
}

// AddRow appends a row. A row wider than the table widens every existing
// row; a narrower row is padded to the current width.
func (t *Table[T]) AddRow(row []Cell[T]) {
	t.widen(len(row))
	t.data = append(t.data, t.ownRow(row))
	t.version++
}

// AddRows appends many rows at once. The widest incoming row is found
// first, so existing rows are repadded at most once for the whole batch
// and the new rows share a single allocation.
func (t *Table[T]) AddRows(rows [][]Cell[T]) {
	if len(rows) == 0 {
		return
	}
	width := t.cols
	for _, r := range rows {
		width = max(width, len(r))
	}
	t.widen(width)

	block := make([]Cell[T], len(rows)*width)
	t.data = slices.Grow(t.data, len(rows))
	for i, r := range rows {
		dst := block[i*width : (i+1)*width : (i+1)*width]
		copy(dst, r)
		t.data = append(t.data, dst)
	}
	t.version++
}

// AddCol appends a column on the right. A column taller than the table
// adds Nil-filled rows; a shorter one is padded with Nil at the bottom.
func (t *Table[T]) AddCol(col []Cell[T]) {
	t.AddCols([][]Cell[T]{col})
}

// AddCols appends many columns at once, growing the row count and each
// row's width a single time for the whole batch.
func (t *Table[T]) AddCols(cols [][]Cell[T]) {
	if len(cols) == 0 {
		return
	}
	height := len(t.data)
	for _, c := range cols {
		height = max(height, len(c))
	}
	t.lengthen(height)

	width := t.cols + len(cols)
	for i, row := range t.data {
		row = padRow(row, width)
		for j, c := range cols {
			if i < len(c) {
				row[t.cols+j] = c[i]
			}
		}
		t.data[i] = row
	}
	t.cols = width
	t.version++
}

// InsertRow inserts row before index i, shifting later rows down. i may
// equal RowsLen to append. Width is reconciled as in AddRow.
func (t *Table[T]) InsertRow(i int, row []Cell[T]) {
	if i < 0 || i > len(t.data) {
		Violate("InsertRow", ErrIndexOutOfRange, "index %d, rows %d", i, len(t.data))
	}
	t.widen(len(row))
	t.data = slices.Insert(t.data, i, t.ownRow(row))
	t.version++
}

// InsertCol inserts col before column i, shifting later columns right. i
// may equal ColsLen to append. Height is reconciled as in AddCol.
func (t *Table[T]) InsertCol(i int, col []Cell[T]) {
	if i < 0 || i > t.cols {
		Violate("InsertCol", ErrIndexOutOfRange, "index %d, cols %d", i, t.cols)
	}
	t.lengthen(len(col))
	for r, row := range t.data {
		var c Cell[T]
		if r < len(col) {
			c = col[r]
		}
		t.data[r] = slices.Insert(row, i, c)
	}
	t.cols++
	t.version++
}

// RemoveRow deletes row i. The column count is unchanged.
func (t *Table[T]) RemoveRow(i int) {
	if i < 0 || i >= len(t.data) {
		Violate("RemoveRow", ErrIndexOutOfRange, "index %d, rows %d", i, len(t.data))
	}
	t.data = slices.Delete(t.data, i, i+1)
	t.version++
}

// RemoveCol deletes column i from every row.
func (t *Table[T]) RemoveCol(i int) {
	if i < 0 || i >= t.cols {
		Violate("RemoveCol", ErrIndexOutOfRange, "index %d, cols %d", i, t.cols)
	}
	for r, row := range t.data {
		t.data[r] = slices.Delete(row, i, i+1)
	}
	t.cols--
	t.version++
}

// Clone returns a deep copy of the table's shape and cells. Payloads are
// copied by value.
func (t *Table[T]) Clone() *Table[T] {
	out := &Table[T]{noHeader: t.noHeader}
	out.AddRows(t.data)
	out.cols = t.cols
	return out
}

// Equal reports whether both tables have the same header flag, shape and
// cells.
func (t *Table[T]) Equal(o *Table[T]) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.noHeader != o.noHeader || t.cols != o.cols || len(t.data) != len(o.data) {
		return false
	}
	for i, row := range t.data {
		for j, c := range row {
			if !c.Equal(o.data[i][j]) {
				return false
			}
		}
	}
	return true
}

// widen pads every row to width when width exceeds the current one.
func (t *Table[T]) widen(width int) {
	if width <= t.cols {
		return
	}
	for i, row := range t.data {
		t.data[i] = padRow(row, width)
	}
	t.cols = width
}

// lengthen appends Nil rows until the table has height rows.
func (t *Table[T]) lengthen(height int) {
	if height <= len(t.data) {
		return
	}
	n := height - len(t.data)
	block := make([]Cell[T], n*t.cols)
	t.data = slices.Grow(t.data, n)
	for i := range n {
		t.data = append(t.data, block[i*t.cols:(i+1)*t.cols:(i+1)*t.cols])
	}
}

// ownRow copies src into a fresh row of the table's width.
func (t *Table[T]) ownRow(src []Cell[T]) []Cell[T] {
	row := make([]Cell[T], t.cols)
	copy(row, src)
	return row
}

func padRow[T any](row []Cell[T], width int) []Cell[T] {
	n := len(row)
	if n >= width {
		return row
	}
	row = slices.Grow(row, width-n)[:width]
	clear(row[n:])
	return row
}
