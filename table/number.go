package table

// number.go holds the numeric value stored in Num cells.
//
// A Number keeps integers as integers and floats as floats, but compares
// them by value: Int(1) equals Float(1.0), and the ordering is total (NaN
// equals NaN and sorts above everything else). Text produced by String
// always parses back to an equal Number.

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex is the accepted numeric grammar: integers, decimals and
// scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

type numKind uint8

const (
	numInt numKind = iota
	numUint
	numFloat
)

// Number is a numeric cell value. The zero value is Int(0).
type Number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

// Int returns a signed integer Number.
func Int(i int64) Number {
	return Number{kind: numInt, i: i}
}

// Uint returns an unsigned integer Number. Values that fit in an int64 are
// stored in signed form so equal integers are also == in Go.
func Uint(u uint64) Number {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return Number{kind: numUint, u: u}
}

// Float returns a floating point Number.
func Float(f float64) Number {
	return Number{kind: numFloat, f: f}
}

// NumberError reports text that is not a number.
type NumberError struct {
	Text string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("invalid number %q", e.Text)
}

// ParseNumber parses s as a Number. Plain integers become Int (or Uint
// above MaxInt64); anything with a fraction or exponent becomes Float.
// The words inf and infinity (optionally signed) and nan, in any case, are
// accepted so that every formatted Number parses back.
func ParseNumber(s string) (Number, error) {
	if !numericRegex.MatchString(s) {
		if isFloatWord(s) {
			f, err := strconv.ParseFloat(s, 64)
			if err == nil {
				return Float(f), nil
			}
		}
		return Number{}, &NumberError{Text: s}
	}

	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
		if s[0] != '-' {
			if u, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64); err == nil {
				return Uint(u), nil
			}
		}
	}

	// Overflow gives ±Inf with ErrRange, which is still the value written.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		return Number{}, &NumberError{Text: s}
	}
	return Float(f), nil
}

func isFloatWord(s string) bool {
	w := strings.ToLower(strings.TrimLeft(s, "+-"))
	if len(s)-len(w) > 1 {
		return false
	}
	return w == "inf" || w == "infinity" || w == "nan"
}

func isRangeErr(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// IsInt reports whether n holds an integer representation.
func (n Number) IsInt() bool {
	return n.kind != numFloat
}

// IsFloat reports whether n holds a float representation.
func (n Number) IsFloat() bool {
	return n.kind == numFloat
}

// Int64 returns n as an int64 when it is an integer that fits.
func (n Number) Int64() (int64, bool) {
	if n.kind == numInt {
		return n.i, true
	}
	return 0, false
}

// Uint64 returns n as a uint64 when it is a non-negative integer.
func (n Number) Uint64() (uint64, bool) {
	switch {
	case n.kind == numUint:
		return n.u, true
	case n.kind == numInt && n.i >= 0:
		return uint64(n.i), true
	default:
		return 0, false
	}
}

// Float64 returns n converted to float64 (possibly rounding large integers).
func (n Number) Float64() float64 {
	switch n.kind {
	case numInt:
		return float64(n.i)
	case numUint:
		return float64(n.u)
	default:
		return n.f
	}
}

// BigFloat returns n as an exact big.Float. NaN has no big.Float form and
// yields nil.
func (n Number) BigFloat() *big.Float {
	switch n.kind {
	case numInt:
		return new(big.Float).SetInt64(n.i)
	case numUint:
		return new(big.Float).SetUint64(n.u)
	default:
		if math.IsNaN(n.f) {
			return nil
		}
		return big.NewFloat(n.f)
	}
}

// String formats n with the fewest digits that parse back to the same value.
func (n Number) String() string {
	switch n.kind {
	case numInt:
		return strconv.FormatInt(n.i, 10)
	case numUint:
		return strconv.FormatUint(n.u, 10)
	default:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
}

// Equal reports whether n and o hold the same value.
func (n Number) Equal(o Number) bool {
	return CompareNumbers(n, o) == 0
}

// CompareNumbers returns -1, 0 or +1 ordering a against b by value.
func CompareNumbers(a, b Number) int {
	switch {
	case a.kind == numFloat && b.kind == numFloat:
		return cmpFloat(a.f, b.f)
	case a.kind == numFloat:
		return -cmpIntFloat(b, a.f)
	case b.kind == numFloat:
		return cmpIntFloat(a, b.f)
	}

	// Both integers; uint values are always above MaxInt64.
	switch {
	case a.kind == numInt && b.kind == numInt:
		return cmpOrdered(a.i, b.i)
	case a.kind == numUint && b.kind == numUint:
		return cmpOrdered(a.u, b.u)
	case a.kind == numInt:
		return -1
	default:
		return 1
	}
}

func cmpOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	return cmpOrdered(a, b)
}

// cmpIntFloat compares an integer Number against f without rounding the
// integer through float64.
func cmpIntFloat(n Number, f float64) int {
	if math.IsNaN(f) {
		return -1
	}
	if n.kind == numUint {
		if f >= 1<<64 {
			return -1
		}
		if f < 1<<63 {
			return 1
		}
		return cmpTrunc(cmpOrdered(n.u, uint64(math.Trunc(f))), f)
	}
	if f >= 1<<63 {
		return -1
	}
	if f < -(1 << 63) {
		return 1
	}
	return cmpTrunc(cmpOrdered(n.i, int64(math.Trunc(f))), f)
}

// cmpTrunc settles a comparison whose integer parts were equal by looking
// at the fractional part of f.
func cmpTrunc(c int, f float64) int {
	if c != 0 {
		return c
	}
	t := math.Trunc(f)
	switch {
	case f > t:
		return -1
	case f < t:
		return 1
	default:
		return 0
	}
}
