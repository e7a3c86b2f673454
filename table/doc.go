// Package table provides a generic in-memory rectangular table.
//
// A [Table] is a grid of [Cell] values. Each cell is one of three variants:
//
//   - Nil: an empty position
//   - Num: a [Number], compared by value across integers and floats
//   - Obj: an arbitrary payload of type T
//
// # Shape
//
// Every row always has exactly [Table.ColsLen] cells. Adding a wider row
// pads the existing rows with Nil; adding a taller column pads the other
// columns at the bottom. The batch forms [Table.AddRows] and
// [Table.AddCols] work out the final width or height once, so building a
// table in one batch never repads a row more than once.
//
// # Contract violations
//
// Out-of-range indices passed to the insert and remove operations are
// caller bugs, not data errors. They panic with a [*ContractViolation]
// before any state changes:
//
//	t := table.New[string]()
//	t.RemoveRow(0) // panics: RemoveRow: index out of range
//
// # Views
//
// [Table.Row], [Table.Col], [Table.Rows] and [Table.Cols] return lazy
// iter.Seq views over the stored cells. A view used after the table has
// been reshaped panics with [ErrViewInvalidated].
//
// # Mapping
//
// [Map] and [MapObj] transform every cell into a new table of the same
// shape. Cells do not depend on each other, so [ParMap] and [ParMapObj]
// spread rows over a bounded worker pool and return the same result.
package table
