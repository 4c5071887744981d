package ml

import (
	"strings"

	"empowerpredict/vocab"
)

// Numeric feature names, in the fixed order they occupy in the vector.
const (
	FieldBusinessOwnership = "Business Ownership"
	FieldEmploymentRates   = "Employment Rates"
	FieldWomenInLeadership = "Women in Leadership"
	FieldTariffRates       = "Tariff Rates"
)

// NumericFields returns the numeric feature names in vector order.
func NumericFields() []string {
	return []string{
		FieldBusinessOwnership,
		FieldEmploymentRates,
		FieldWomenInLeadership,
		FieldTariffRates,
	}
}

// Request is one form submission: four numeric indicators plus one value per
// categorical feature. Numeric fields are pointers so a blank form field is
// distinguishable from an explicit zero. A Request is transient: it is
// consumed by one prediction and never persisted.
type Request struct {
	BusinessOwnership *float64          `json:"business_ownership"`
	EmploymentRates   *float64          `json:"employment_rates"`
	WomenInLeadership *float64          `json:"women_in_leadership"`
	TariffRates       *float64          `json:"tariff_rates"`
	Categorical       map[string]string `json:"categorical"`
}

// Validate checks the submission for completeness and range before any
// encoding is attempted. Missing fields are reported together in a single
// IncompleteInputError.
func (r *Request) Validate(v *vocab.Vocabulary) error {
	var missing []string
	numeric := map[string]*float64{
		FieldBusinessOwnership: r.BusinessOwnership,
		FieldEmploymentRates:   r.EmploymentRates,
		FieldWomenInLeadership: r.WomenInLeadership,
		FieldTariffRates:       r.TariffRates,
	}
	for _, name := range NumericFields() {
		if numeric[name] == nil {
			missing = append(missing, name)
		}
	}
	for _, feature := range v.Features() {
		if strings.TrimSpace(r.Categorical[feature]) == "" {
			missing = append(missing, feature)
		}
	}
	if len(missing) > 0 {
		return &IncompleteInputError{Fields: missing}
	}

	if *r.BusinessOwnership < 0 {
		return &InvalidValueError{Field: FieldBusinessOwnership, Reason: "must not be negative"}
	}
	if *r.EmploymentRates < 0 || *r.EmploymentRates > 100 {
		return &InvalidValueError{Field: FieldEmploymentRates, Reason: "must be a percentage between 0 and 100"}
	}
	if *r.WomenInLeadership < 0 {
		return &InvalidValueError{Field: FieldWomenInLeadership, Reason: "must not be negative"}
	}
	if *r.TariffRates < 0 || *r.TariffRates > 100 {
		return &InvalidValueError{Field: FieldTariffRates, Reason: "must be a percentage between 0 and 100"}
	}
	return nil
}

// NumericValues returns the numeric field values in vector order. Validate
// must have succeeded first.
func (r *Request) NumericValues() []float64 {
	return []float64{
		*r.BusinessOwnership,
		*r.EmploymentRates,
		*r.WomenInLeadership,
		*r.TariffRates,
	}
}

// Assemble concatenates the scaled numeric values followed by the encoded
// categorical codes into one feature vector. Both groups keep their declared
// field order; nothing is reordered, filtered, or validated here. Arity
// checking is left to the model.
func Assemble(scaled []float64, encoded []int) []float64 {
	vector := make([]float64, 0, len(scaled)+len(encoded))
	vector = append(vector, scaled...)
	for _, code := range encoded {
		vector = append(vector, float64(code))
	}
	return vector
}
