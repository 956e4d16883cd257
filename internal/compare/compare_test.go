package compare

import (
	"math"
	"testing"
)

func TestApproxEqual_Relative(t *testing.T) {
	opts := Options{Mode: ModeRelative, Precision: 1e-9}

	if !ApproxEqual(1.0, 1.0+1e-12, opts) {
		t.Error("expected 1.0 ~= 1.0+1e-12 at precision 1e-9")
	}

	opts.Precision = 1e-15
	if ApproxEqual(1.0, 1.0+1e-12, opts) {
		t.Error("expected 1.0 !~= 1.0+1e-12 at precision 1e-15")
	}
}

func TestApproxEqual_RelativeZeroMagnitude(t *testing.T) {
	opts := Options{Mode: ModeRelative, Precision: 1e-6}

	if !ApproxEqual(0, 0, opts) {
		t.Error("expected 0 ~= 0")
	}
	if !ApproxEqual(0, 1e-9, opts) {
		t.Error("expected 0 ~= 1e-9 within tolerance")
	}
	if ApproxEqual(0, 1, opts) {
		t.Error("expected 0 !~= 1")
	}
}

func TestApproxEqual_Absolute(t *testing.T) {
	opts := Options{Mode: ModeAbsolute, Precision: 0.5}

	if !ApproxEqual(10, 10.4, opts) {
		t.Error("expected 10 ~= 10.4 within absolute 0.5")
	}
	if ApproxEqual(10, 10.6, opts) {
		t.Error("expected 10 !~= 10.6 within absolute 0.5")
	}
}

func TestApproxEqual_ULP(t *testing.T) {
	a := 1.0
	b := math.Nextafter(a, 2)

	opts := Options{Mode: ModeULP, Precision: 1}
	if !ApproxEqual(a, b, opts) {
		t.Error("expected adjacent floats to be within 1 ULP")
	}

	c := math.Nextafter(b, 2)
	opts.Precision = 1
	if ApproxEqual(a, c, opts) {
		t.Error("expected floats 2 ULPs apart to fail at ULP tolerance 1")
	}
}

func TestApproxEqual_NaN(t *testing.T) {
	nan := math.NaN()

	if !ApproxEqual(nan, nan, Options{Mode: ModeRelative, NaNEqualsNaN: true}) {
		t.Error("expected NaN ~= NaN when NaNEqualsNaN is true")
	}
	if ApproxEqual(nan, nan, Options{Mode: ModeRelative, NaNEqualsNaN: false}) {
		t.Error("expected NaN !~= NaN when NaNEqualsNaN is false")
	}
	if ApproxEqual(nan, 1.0, Options{Mode: ModeRelative, NaNEqualsNaN: true}) {
		t.Error("expected NaN !~= finite value")
	}
}

func TestApproxEqual_Infinity(t *testing.T) {
	inf := math.Inf(1)
	negInf := math.Inf(-1)

	if !ApproxEqual(inf, inf, Options{Mode: ModeRelative}) {
		t.Error("expected +Inf ~= +Inf")
	}
	if !ApproxEqual(negInf, negInf, Options{Mode: ModeRelative}) {
		t.Error("expected -Inf ~= -Inf")
	}
	if ApproxEqual(inf, negInf, Options{Mode: ModeRelative}) {
		t.Error("expected +Inf !~= -Inf")
	}
	if ApproxEqual(inf, 1e300, Options{Mode: ModeRelative, Precision: 1e-6}) {
		t.Error("expected +Inf !~= finite value")
	}
}
