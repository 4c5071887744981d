package ml

import "math"

// Standardize rescales the numeric values of a single submission to zero
// mean and unit population standard deviation, computed across the supplied
// values only. The scaler is fit anew on every call and keeps no state; this
// normalizes the fields of one submission against each other rather than
// against any historical population, matching the original pipeline the
// model was deployed with. If all values are equal the standard deviation is
// zero and every output is 0.0, never NaN.
func Standardize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	scaled := make([]float64, len(values))
	if variance == 0 {
		return scaled
	}

	std := math.Sqrt(variance)
	for i, v := range values {
		scaled[i] = (v - mean) / std
	}
	return scaled
}
