package schemastream

import "testing"

func TestNumberIsMultipleOfIntegerFastPath(t *testing.T) {
	if !IntNumber(9).IsMultipleOf(IntNumber(3)) {
		t.Error("9 should be a multiple of 3")
	}
	if IntNumber(10).IsMultipleOf(IntNumber(3)) {
		t.Error("10 should not be a multiple of 3")
	}
}

func TestNumberIsMultipleOfFloatPrecision(t *testing.T) {
	// 0.3 / 0.1 rounds to 2.9999999999999996 under plain float64 division;
	// a big.Rat quotient must still classify this as an exact multiple.
	if !FloatNumber(0.3).IsMultipleOf(FloatNumber(0.1)) {
		t.Error("0.3 should be a multiple of 0.1 despite float64 rounding")
	}
	if !FloatNumber(19.89).IsMultipleOf(FloatNumber(0.01)) {
		t.Error("19.89 should be a multiple of 0.01")
	}
	if FloatNumber(0.35).IsMultipleOf(FloatNumber(0.1)) {
		t.Error("0.35 should not be a multiple of 0.1")
	}
}

func TestNumberIsMultipleOfZeroStep(t *testing.T) {
	if IntNumber(5).IsMultipleOf(IntNumber(0)) {
		t.Error("nothing is a multiple of 0")
	}
}

func TestNumberComparisons(t *testing.T) {
	a := IntNumber(3)
	b := FloatNumber(3.5)

	if !a.Less(b) {
		t.Error("3 should be less than 3.5")
	}
	if !a.LessOrEqual(a) {
		t.Error("3 should be less-or-equal to itself")
	}
	if a.Equal(b) {
		t.Error("3 should not equal 3.5")
	}
	if !IntNumber(3).Equal(FloatNumber(3.0)) {
		t.Error("int 3 should equal float 3.0")
	}
}
