package models

// Feature vector positions, in the order the classifier was fitted with.
const (
	FeatureR = iota
	FeatureG
	FeatureB
	FeatureTemperature
	FeatureHumidity

	FeatureCount
)

// Features is the fixed-order vector [R, G, B, temperature, humidity].
type Features [FeatureCount]float64

// Float32 returns the vector as float32 values for tensor input.
func (f Features) Float32() []float32 {
	out := make([]float32, len(f))
	for i, v := range f {
		out[i] = float32(v)
	}
	return out
}
