package mathx

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want float32 }{
		{0.5, 0, 1, 0.5},
		{-3, 0, 1, 0},
		{7, 0, 1, 1},
		{7, 1, 0, 1}, // swapped bounds
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestBetween(t *testing.T) {
	if !Between(2, 2, 400) || !Between(400, 2, 400) {
		t.Fatalf("Between must be inclusive at both ends")
	}
	if Between(1.99, 2.0, 400.0) || Between(400.01, 2.0, 400.0) {
		t.Fatalf("Between accepted an out-of-range value")
	}
	nan := float32(math.NaN())
	if Between(nan, 0, 1) {
		t.Fatalf("Between(NaN) = true")
	}
}

func TestIsFinite(t *testing.T) {
	for _, v := range []float64{0, -1, 1e30} {
		if !IsFinite(v) {
			t.Fatalf("IsFinite(%v) = false", v)
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Fatalf("IsFinite(%v) = true", v)
		}
	}
}
