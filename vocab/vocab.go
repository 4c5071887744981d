// Package vocab manages the fixed vocabularies of the categorical form fields.
package vocab

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrVocabularyLoad marks a fatal failure to load the vocabulary document.
var ErrVocabularyLoad = errors.New("vocabulary load failed")

// Vocabulary maps each categorical feature to its ordered list of allowed
// values. Feature order and value order are both significant: value order
// determines integer codes, feature order determines the position of each
// encoded categorical in the assembled vector.
type Vocabulary struct {
	features []string
	values   map[string][]string
}

// New builds a Vocabulary from an ordered feature list and a value map.
func New(features []string, values map[string][]string) *Vocabulary {
	v := &Vocabulary{
		features: append([]string(nil), features...),
		values:   make(map[string][]string, len(values)),
	}
	for name, options := range values {
		v.values[name] = append([]string(nil), options...)
	}
	return v
}

// Features returns the feature names in declared order.
func (v *Vocabulary) Features() []string {
	return append([]string(nil), v.features...)
}

// Values returns the allowed values for a feature in declared order.
func (v *Vocabulary) Values(feature string) ([]string, bool) {
	options, ok := v.values[feature]
	if !ok {
		return nil, false
	}
	return append([]string(nil), options...), true
}

// Len returns the number of categorical features.
func (v *Vocabulary) Len() int {
	return len(v.features)
}

// LoadFile reads a vocabulary from a JSON document of shape
// {"<feature>": ["<value>", ...], ...}. The document's key order is
// preserved, which is why this does not unmarshal into a plain map.
func LoadFile(path string) (*Vocabulary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVocabularyLoad, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVocabularyLoad, err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrVocabularyLoad)
	}

	var features []string
	values := make(map[string][]string)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrVocabularyLoad, err)
		}
		name, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrVocabularyLoad, token)
		}
		var options []string
		if err := decoder.Decode(&options); err != nil {
			return nil, fmt.Errorf("%w: feature %q: %v", ErrVocabularyLoad, name, err)
		}
		if _, exists := values[name]; exists {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrVocabularyLoad, name)
		}
		features = append(features, name)
		values[name] = options
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVocabularyLoad, err)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: document has no features", ErrVocabularyLoad)
	}

	return &Vocabulary{features: features, values: values}, nil
}

// Default returns the built-in vocabulary used when no external document is
// configured.
func Default() *Vocabulary {
	features := []string{
		"Trade Flows",
		"Access to Finances",
		"Farming Type",
		"Education and Skills",
		"Changes in Women's Income",
		"Clear Decision Points",
		"Policy Changes",
		"Complex Interactions",
		"Feedback Loops",
		"Intra-African Mobility",
		"Legal Frameworks",
		"Social Norms and Gender Roles",
		"Access to Childcare",
		"Impact on Women",
		"Value Chain Participation",
		"Health and Well-being",
	}
	values := map[string][]string{
		"Trade Flows":                   {"Increasing", "Stable", "Decreasing"},
		"Access to Finances":            {"High", "Moderate", "Low"},
		"Farming Type":                  {"Communal", "Single-household", "Mixed"},
		"Education and Skills":          {"Advanced", "Basic", "Intermediate"},
		"Changes in Women's Income":     {"Rising", "Falling", "Stable"},
		"Clear Decision Points":         {"Yes", "No", "Partial"},
		"Policy Changes":                {"Significant", "Minor", "None"},
		"Complex Interactions":          {"High", "Medium", "Low"},
		"Feedback Loops":                {"Present", "Absent", "Weak"},
		"Intra-African Mobility":        {"Increasing", "Decreasing", "Stable"},
		"Legal Frameworks":              {"Supportive", "Neutral", "Restrictive"},
		"Social Norms and Gender Roles": {"Progressive", "Traditional", "Mixed"},
		"Access to Childcare":           {"Good", "Limited", "None"},
		"Impact on Women":               {"Positive", "Negative", "Neutral"},
		"Value Chain Participation":     {"High", "Moderate", "Low"},
		"Health and Well-being":         {"Improved", "Declining", "Stable"},
	}
	return New(features, values)
}
