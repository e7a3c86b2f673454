package table

import (
	"math/big"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// FromCty converts a semi-structured cty value into a text cell.
//
// Null and unknown values become Nil, numbers become Num, strings become an
// Obj holding a copy of the string, and every other value (bools, lists,
// objects, ...) becomes an Obj holding its JSON rendering.
func FromCty(v cty.Value) Cell[string] {
	v, _ = v.UnmarkDeep()
	if v.IsNull() || !v.IsKnown() {
		return Nil[string]()
	}

	switch ty := v.Type(); {
	case ty == cty.Number:
		return Num[string](numberFromBig(v.AsBigFloat()))
	case ty == cty.String:
		return Obj(strings.Clone(v.AsString()))
	default:
		return Obj(renderCty(v))
	}
}

// ToCty converts a text cell back into a cty value. Nil becomes a null of
// dynamic type; NaN, which cty cannot represent, becomes its string form.
func ToCty(c Cell[string]) cty.Value {
	switch c.kind {
	case KindNum:
		bf := c.num.BigFloat()
		if bf == nil {
			return cty.StringVal(c.num.String())
		}
		return cty.NumberVal(bf)
	case KindObj:
		return cty.StringVal(c.obj)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

func numberFromBig(bf *big.Float) Number {
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return Int(i)
		}
		if u, acc := bf.Uint64(); acc == big.Exact {
			return Uint(u)
		}
	}
	f, _ := bf.Float64()
	return Float(f)
}

func renderCty(v cty.Value) string {
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(b)
}
