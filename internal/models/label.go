package models

// Label is the maturity class reported to callers.
type Label string

const (
	LabelMature   Label = "Mature"
	LabelImmature Label = "Immature"
)

// matureClass is the class code the classifier emits for mature kernels.
const matureClass = 1

// LabelFor maps a raw class code to a Label: 1 is Mature, anything else Immature.
func LabelFor(raw float64) Label {
	if raw == matureClass {
		return LabelMature
	}
	return LabelImmature
}

// PredictionResult is the outcome of one classifier invocation.
type PredictionResult struct {
	Label Label
	Raw   float64 // class code as emitted by the classifier
}
