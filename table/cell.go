package table

import (
	"cmp"
	"fmt"
	"reflect"
)

// Kind tags which variant a Cell holds.
type Kind uint8

const (
	KindNil Kind = iota
	KindNum
	KindObj
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNum:
		return "num"
	case KindObj:
		return "obj"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Cell is one table position: empty (Nil), numeric (Num) or an object of
// type T (Obj). The zero value is Nil.
type Cell[T any] struct {
	kind Kind
	num  Number
	obj  T
}

// Nil returns an empty cell.
func Nil[T any]() Cell[T] {
	return Cell[T]{}
}

// Num returns a numeric cell.
func Num[T any](n Number) Cell[T] {
	return Cell[T]{kind: KindNum, num: n}
}

// Obj returns an object cell holding v.
func Obj[T any](v T) Cell[T] {
	return Cell[T]{kind: KindObj, obj: v}
}

func (c Cell[T]) Kind() Kind  { return c.kind }
func (c Cell[T]) IsNil() bool { return c.kind == KindNil }
func (c Cell[T]) IsNum() bool { return c.kind == KindNum }
func (c Cell[T]) IsObj() bool { return c.kind == KindObj }

// Num returns the number held by a Num cell.
func (c Cell[T]) Num() (Number, bool) {
	if c.kind != KindNum {
		return Number{}, false
	}
	return c.num, true
}

// Obj returns the payload held by an Obj cell.
func (c Cell[T]) Obj() (T, bool) {
	if c.kind != KindObj {
		var zero T
		return zero, false
	}
	return c.obj, true
}

// String renders the cell: "-" for Nil, the formatted number for Num and
// the payload's default formatting for Obj.
func (c Cell[T]) String() string {
	switch c.kind {
	case KindNum:
		return c.num.String()
	case KindObj:
		if s, ok := any(c.obj).(string); ok {
			return s
		}
		return fmt.Sprint(c.obj)
	default:
		return "-"
	}
}

// AsString views a text cell as a string. Obj cells return their payload
// unchanged, Nil returns "-", and Num formats the number (the only case
// that allocates).
func AsString[T ~string](c Cell[T]) string {
	switch c.kind {
	case KindNum:
		return c.num.String()
	case KindObj:
		return string(c.obj)
	default:
		return "-"
	}
}

// EqualText reports whether c is an Obj cell whose text is s.
func EqualText[T ~string](c Cell[T], s string) bool {
	return c.kind == KindObj && string(c.obj) == s
}

// Equal reports structural equality: same variant, numerically equal
// numbers, equal payloads.
func (c Cell[T]) Equal(o Cell[T]) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNum:
		return c.num.Equal(o.num)
	case KindObj:
		return equalObj(c.obj, o.obj)
	default:
		return true
	}
}

func equalObj[T any](a, b T) bool {
	if as, ok := any(a).(string); ok {
		return as == any(b).(string)
	}
	return reflect.DeepEqual(a, b)
}

// Compare orders two cells of the same variant. ok is false when the
// variants differ, in which case there is no order.
func Compare[T cmp.Ordered](a, b Cell[T]) (c int, ok bool) {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is Compare with a caller-supplied payload ordering.
func CompareFunc[T any](a, b Cell[T], cmpObj func(T, T) int) (c int, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindNum:
		return CompareNumbers(a.num, b.num), true
	case KindObj:
		return cmpObj(a.obj, b.obj), true
	default:
		return 0, true
	}
}
