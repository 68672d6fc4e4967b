package monitor

import (
	"math"

	"envmon-go/x/mathx"
)

// RawReading is one cycle's sensor output. DistanceCM is hcsr04.Invalid when
// every ping timed out; Lux is NaN when the light sensor read failed.
type RawReading struct {
	DistanceCM float32
	Lux        float32
}

// ValidatedReading has both fields inside their accepted ranges.
type ValidatedReading struct {
	DistanceCM float32
	Lux        float32

	LuxOK, DistanceOK bool // false when the fallback was substituted
}

// ModelInput is the pair fed to the model, each in [0,1].
type ModelInput struct {
	NormLux  float32
	NormDist float32
}

// Validate returns raw when it lies in [min, max] and fallback otherwise. NaN
// is never in range.
func Validate(raw, min, max, fallback float32) (float32, bool) {
	if mathx.Between(raw, min, max) {
		return raw, true
	}
	return fallback, false
}

// NormalizeLux maps lux onto [0,1], darker giving the larger value.
func NormalizeLux(lux float32) float32 {
	return unit((100 - lux) / 100)
}

// NormalizeDistance maps a distance in cm onto [0,1], closer giving the
// larger value.
func NormalizeDistance(cm float32) float32 {
	return unit((500 - cm) / 500)
}

func unit(v float32) float32 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	return mathx.Clamp(v, 0, 1)
}

// Sanitize applies the configured ranges and fallbacks to r.
func (c Config) Sanitize(r RawReading) ValidatedReading {
	var v ValidatedReading
	v.Lux, v.LuxOK = Validate(r.Lux, c.LuxMin, c.LuxMax, c.LuxFallback)
	v.DistanceCM, v.DistanceOK = Validate(r.DistanceCM, c.DistMin, c.DistMax, c.DistFallback)
	return v
}

// Normalize maps a validated reading into model input space.
func Normalize(v ValidatedReading) ModelInput {
	return ModelInput{
		NormLux:  NormalizeLux(v.Lux),
		NormDist: NormalizeDistance(v.DistanceCM),
	}
}
