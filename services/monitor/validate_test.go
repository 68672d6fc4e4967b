package monitor

import (
	"math"
	"testing"
)

func TestValidateReturnsRawOrFallback(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	cases := []struct {
		raw  float32
		want float32
		ok   bool
	}{
		{2, 2, true},
		{400, 400, true},
		{123.5, 123.5, true},
		{1.999, 400, false},
		{400.001, 400, false},
		{-1, 400, false},
		{nan, 400, false},
		{inf, 400, false},
		{-inf, 400, false},
	}
	for _, c := range cases {
		got, ok := Validate(c.raw, 2, 400, 400)
		if got != c.want || ok != c.ok {
			t.Fatalf("Validate(%v) = %v,%v want %v,%v", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeKnownPoints(t *testing.T) {
	if got := NormalizeLux(50); got != 0.5 {
		t.Fatalf("NormalizeLux(50) = %v", got)
	}
	if got := NormalizeDistance(100); got != 0.8 {
		t.Fatalf("NormalizeDistance(100) = %v", got)
	}
	if got := NormalizeLux(0); got != 1 {
		t.Fatalf("NormalizeLux(0) = %v", got)
	}
	if got := NormalizeDistance(400); math.Abs(float64(got)-0.2) > 1e-6 {
		t.Fatalf("NormalizeDistance(400) = %v", got)
	}
}

func TestNormalizeMonotonicAndBounded(t *testing.T) {
	inputs := []float32{
		float32(math.Inf(-1)), -1e30, -1e6, -500, -1, 0, 0.5, 1, 2, 49.9, 50, 99, 100, 101,
		250, 300, 399, 400, 499, 500, 501, 1e5, 1e30, float32(math.Inf(1)),
	}
	prevLux, prevDist := float32(2), float32(2)
	for i, v := range inputs {
		l, d := NormalizeLux(v), NormalizeDistance(v)
		if l < 0 || l > 1 || d < 0 || d > 1 {
			t.Fatalf("out of [0,1] at %v: lux=%v dist=%v", v, l, d)
		}
		if i > 0 && (l > prevLux || d > prevDist) {
			t.Fatalf("not monotonic at %v: lux %v->%v dist %v->%v", v, prevLux, l, prevDist, d)
		}
		prevLux, prevDist = l, d
	}
	nan := float32(math.NaN())
	if NormalizeLux(nan) != 0 || NormalizeDistance(nan) != 0 {
		t.Fatalf("NaN did not normalize to 0")
	}
}

func TestSanitizeSubstitutesPerField(t *testing.T) {
	cfg := DefaultConfig()
	v := cfg.Sanitize(RawReading{Lux: 200000, DistanceCM: 150})
	if v.Lux != 0 || v.LuxOK {
		t.Fatalf("lux = %v ok=%v", v.Lux, v.LuxOK)
	}
	if v.DistanceCM != 150 || !v.DistanceOK {
		t.Fatalf("distance = %v ok=%v", v.DistanceCM, v.DistanceOK)
	}
	in := Normalize(v)
	if in.NormLux != 1 || math.Abs(float64(in.NormDist)-0.7) > 1e-6 {
		t.Fatalf("Normalize = %+v", in)
	}
}

func TestConfigDefaultsFillZeroValue(t *testing.T) {
	got := Config{}.withDefaults()
	if got != DefaultConfig() {
		t.Fatalf("withDefaults = %+v", got)
	}
	custom := Config{LuxMin: 0, LuxMax: 10, DistMin: 1, DistMax: 2, DistFallback: 2}.withDefaults()
	if custom.LuxMax != 10 || custom.DistMax != 2 {
		t.Fatalf("custom ranges overwritten: %+v", custom)
	}
}
