package table

import "iter"

// Views are lazy, read-only sequences over a table's cells. Each one
// remembers the table's structural version when it was created; using it
// after the table has been reshaped panics with ErrViewInvalidated. Views
// can be ranged over any number of times while the table is unchanged.

// Row returns a view of row i, or false if i is out of range.
func (t *Table[T]) Row(i int) (iter.Seq[Cell[T]], bool) {
	if i < 0 || i >= len(t.data) {
		return nil, false
	}
	return t.rowView(i, t.version), true
}

// Col returns a view of column i, or false if i is out of range.
func (t *Table[T]) Col(i int) (iter.Seq[Cell[T]], bool) {
	if i < 0 || i >= t.cols {
		return nil, false
	}
	return t.colView(i, t.version), true
}

// Rows returns a view over every row, top to bottom.
func (t *Table[T]) Rows() iter.Seq[iter.Seq[Cell[T]]] {
	v := t.version
	return func(yield func(iter.Seq[Cell[T]]) bool) {
		for i := 0; ; i++ {
			t.checkView("Rows", v)
			if i >= len(t.data) || !yield(t.rowView(i, v)) {
				return
			}
		}
	}
}

// Cols returns a view over every column, left to right.
func (t *Table[T]) Cols() iter.Seq[iter.Seq[Cell[T]]] {
	v := t.version
	return func(yield func(iter.Seq[Cell[T]]) bool) {
		for i := 0; ; i++ {
			t.checkView("Cols", v)
			if i >= t.cols || !yield(t.colView(i, v)) {
				return
			}
		}
	}
}

func (t *Table[T]) rowView(i int, v uint64) iter.Seq[Cell[T]] {
	return func(yield func(Cell[T]) bool) {
		for j := 0; ; j++ {
			t.checkView("Row", v)
			if j >= t.cols || !yield(t.data[i][j]) {
				return
			}
		}
	}
}

func (t *Table[T]) colView(i int, v uint64) iter.Seq[Cell[T]] {
	return func(yield func(Cell[T]) bool) {
		for r := 0; ; r++ {
			t.checkView("Col", v)
			if r >= len(t.data) || !yield(t.data[r][i]) {
				return
			}
		}
	}
}

func (t *Table[T]) checkView(op string, v uint64) {
	if t.version != v {
		Violate(op, ErrViewInvalidated, "view version %d, table version %d", v, t.version)
	}
}
