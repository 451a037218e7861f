package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"maize_maturity/internal/models"

	"github.com/spf13/cast"
)

// Request field names, in feature-vector order.
const (
	FieldR           = "R"
	FieldG           = "G"
	FieldB           = "B"
	FieldTemperature = "temperature"
	FieldHumidity    = "humidity"
)

const (
	reasonMissingFields  = "missing required fields"
	reasonInvalidNumeric = "invalid numeric values"
)

// ValidationError carries the reason a request was rejected.
type ValidationError struct {
	Field  string // empty unless a single field is at fault
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

type fieldRange struct {
	name     string
	min, max float64
}

// requiredFields lists the inputs in check order together with their valid ranges.
var requiredFields = [models.FeatureCount]fieldRange{
	{FieldR, 0, 255},
	{FieldG, 0, 255},
	{FieldB, 0, 255},
	{FieldTemperature, 15, 45},
	{FieldHumidity, 0, 100},
}

// ValidateInput turns a decoded JSON object into a feature vector.
// Checks run presence, then numeric coercion, then ranges in the order
// R, G, B, temperature, humidity; the first failure is returned.
func ValidateInput(data map[string]any) (models.Features, error) {
	for _, f := range requiredFields {
		if _, ok := data[f.name]; !ok {
			return models.Features{}, &ValidationError{Reason: reasonMissingFields}
		}
	}

	var out models.Features
	for i, f := range requiredFields {
		v, err := toNumber(data[f.name])
		if err != nil {
			return models.Features{}, &ValidationError{Field: f.name, Reason: reasonInvalidNumeric}
		}
		out[i] = v
	}

	for i, f := range requiredFields {
		// written so that NaN fails as well
		if !(out[i] >= f.min && out[i] <= f.max) {
			return models.Features{}, &ValidationError{
				Field:  f.name,
				Reason: fmt.Sprintf("%s must be between %g and %g", f.name, f.min, f.max),
			}
		}
	}
	return out, nil
}

// toNumber accepts JSON numbers, numeric strings (surrounding spaces allowed)
// and booleans. null, objects and arrays are rejected.
func toNumber(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("null value")
	case string:
		return parseDecimal(strings.TrimSpace(t))
	case json.Number:
		return parseDecimal(t.String())
	case map[string]any, []any:
		return 0, fmt.Errorf("unexpected %T", v)
	default:
		return cast.ToFloat64E(v)
	}
}

// parseDecimal parses a decimal float. Hex literals are rejected; values out
// of float64 range become ±Inf and are left to the range check.
func parseDecimal(s string) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, fmt.Errorf("hex literal %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}
