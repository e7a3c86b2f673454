package table

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkRows is the number of rows handed to one worker by ParMap
// when ParOptions.ChunkRows is unset.
const DefaultChunkRows = 256

// ParOptions bounds the worker pool used by ParMap and ParMapObj.
type ParOptions struct {
	// Workers is the maximum number of concurrent workers (default GOMAXPROCS).
	Workers int
	// ChunkRows is the number of rows per unit of work (default DefaultChunkRows).
	ChunkRows int
}

// Map returns a new table of the same shape and header flag with fn
// applied to every cell.
func Map[T, U any](t *Table[T], fn func(Cell[T]) Cell[U]) *Table[U] {
	out := shapedLike[T, U](t)
	mapRows(t.data, out.data, fn)
	return out
}

// MapObj is Map restricted to Obj payloads; Nil and Num cells are carried
// over unchanged.
func MapObj[T, U any](t *Table[T], fn func(T) Cell[U]) *Table[U] {
	return Map(t, objMapper[T, U](fn))
}

// ParMap is Map with the rows split into fixed-size chunks and mapped by a
// bounded pool of goroutines. Results land in their original positions, so
// the output equals Map's. fn must be safe for concurrent use.
func ParMap[T, U any](t *Table[T], fn func(Cell[T]) Cell[U], opts ParOptions) *Table[U] {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := opts.ChunkRows
	if chunk <= 0 {
		chunk = DefaultChunkRows
	}

	out := shapedLike[T, U](t)
	if workers == 1 || len(t.data) <= chunk {
		mapRows(t.data, out.data, fn)
		return out
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < len(t.data); lo += chunk {
		hi := min(lo+chunk, len(t.data))
		g.Go(func() error {
			mapRows(t.data[lo:hi], out.data[lo:hi], fn)
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return out
}

// ParMapObj is MapObj run through ParMap.
func ParMapObj[T, U any](t *Table[T], fn func(T) Cell[U], opts ParOptions) *Table[U] {
	return ParMap(t, objMapper[T, U](fn), opts)
}

func objMapper[T, U any](fn func(T) Cell[U]) func(Cell[T]) Cell[U] {
	return func(c Cell[T]) Cell[U] {
		switch c.kind {
		case KindNum:
			return Num[U](c.num)
		case KindObj:
			return fn(c.obj)
		default:
			return Nil[U]()
		}
	}
}

// shapedLike allocates a table with t's shape and header flag. Rows share
// one backing block and are capped so later widening reallocates them.
func shapedLike[T, U any](t *Table[T]) *Table[U] {
	out := &Table[U]{
		data:     make([][]Cell[U], len(t.data)),
		cols:     t.cols,
		noHeader: t.noHeader,
	}
	block := make([]Cell[U], len(t.data)*t.cols)
	for i := range out.data {
		out.data[i] = block[i*t.cols : (i+1)*t.cols : (i+1)*t.cols]
	}
	return out
}

func mapRows[T, U any](src [][]Cell[T], dst [][]Cell[U], fn func(Cell[T]) Cell[U]) {
	for i, row := range src {
		out := dst[i]
		for j, c := range row {
			out[j] = fn(c)
		}
	}
}
