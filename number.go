package schemastream

import (
	"math"
	"math/big"
	"strconv"
)

// Number is a tagged numeric value used for every compiled bound
// (minimum, maximum, multipleOf, ...) so that integer and floating-point
// instances can be compared under one total ordering, adapted from the
// teacher's Rat wrapper around math/big but specialised to the int64/
// float64 pair the original engine works with.
type Number struct {
	isInt bool
	i     int64
	f     float64
}

func IntNumber(v int64) Number { return Number{isInt: true, i: v} }

func FloatNumber(v float64) Number { return Number{isInt: false, f: v} }

// NumberFromJSON converts a decoded JSON number (float64, as goccy/go-json
// hands back by default) into a Number, preferring the integer
// representation when the value has no fractional part so that
// multiple-of checks stay exact for the common case.
func NumberFromJSON(v float64) Number {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && v >= math.MinInt64 && v <= math.MaxInt64 {
		return IntNumber(int64(v))
	}
	return FloatNumber(v)
}

func (n Number) Float64() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// IsInteger reports whether n represents a mathematically whole number,
// regardless of which branch of the union it was constructed from.
func (n Number) IsInteger() bool {
	if n.isInt {
		return true
	}
	return n.f == math.Trunc(n.f)
}

func (n Number) Less(o Number) bool {
	if n.isInt && o.isInt {
		return n.i < o.i
	}
	return n.Float64() < o.Float64()
}

func (n Number) LessOrEqual(o Number) bool {
	if n.isInt && o.isInt {
		return n.i <= o.i
	}
	return n.Float64() <= o.Float64()
}

func (n Number) Equal(o Number) bool {
	if n.isInt && o.isInt {
		return n.i == o.i
	}
	return n.Float64() == o.Float64()
}

// IsMultipleOf reports whether n is an integer multiple of step, per
// spec §4.9's "v mod k == 0" rule generalised to mixed int/float
// representations (draft 4/6 multipleOf applies to both integer and
// number schemas). The non-integer case goes through big.Rat, as the
// teacher's evaluateMultipleOf does, rather than float64 division:
// quotients like 0.3/0.1 round to 2.9999999999999996 in float64 and
// would wrongly fail math.Trunc equality.
func (n Number) IsMultipleOf(step Number) bool {
	if step.Float64() == 0 {
		return false
	}
	if n.isInt && step.isInt && step.i != 0 {
		return n.i%step.i == 0
	}
	quotient := new(big.Rat).Quo(n.rat(), step.rat())
	return quotient.IsInt()
}

// rat converts n to an exact big.Rat for IsMultipleOf's division. For the
// float branch this goes through the shortest round-tripping decimal
// string (strconv.FormatFloat with precision -1) and big.Rat.SetString,
// exactly as teacher rat.go's convertToBigRat does via fmt.Sprint +
// SetString: big.Rat.SetFloat64 would instead capture the float64's own
// binary rounding error, so 19.89 and 0.01 would carry unrelated rounding
// noise and their quotient would almost never land on an exact integer.
func (n Number) rat() *big.Rat {
	if n.isInt {
		return new(big.Rat).SetInt64(n.i)
	}
	r := new(big.Rat)
	r.SetString(strconv.FormatFloat(n.f, 'g', -1, 64))
	return r
}

func (n Number) IsPositive() bool {
	return n.Float64() > 0
}
