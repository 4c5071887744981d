package ml

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"empowerpredict/vocab"
)

// EncoderTable holds the value→code mapping for one categorical feature.
// Codes follow vocabulary insertion order: the first declared value maps to
// 0, the second to 1, and so on. Tables are immutable after construction.
type EncoderTable struct {
	feature string
	codes   map[string]int
}

// BuildEncoders derives one encoder table per categorical feature from the
// vocabulary. The same vocabulary always yields the same mapping.
func BuildEncoders(v *vocab.Vocabulary) (map[string]*EncoderTable, error) {
	if v == nil || v.Len() == 0 {
		return nil, errors.New("vocabulary is empty")
	}

	tables := make(map[string]*EncoderTable, v.Len())
	for _, feature := range v.Features() {
		values, _ := v.Values(feature)
		if len(values) == 0 {
			return nil, fmt.Errorf("vocabulary entry %q is empty", feature)
		}
		codes := make(map[string]int, len(values))
		for i, value := range values {
			key := canonicalValue(value)
			if _, exists := codes[key]; exists {
				return nil, fmt.Errorf("vocabulary entry %q has duplicate value %q", feature, value)
			}
			codes[key] = i
		}
		tables[feature] = &EncoderTable{feature: feature, codes: codes}
	}
	return tables, nil
}

// Encode maps a submitted value to its integer code.
func (t *EncoderTable) Encode(value string) (int, error) {
	code, ok := t.codes[canonicalValue(value)]
	if !ok {
		return 0, &UnknownCategoryError{Feature: t.feature, Value: value}
	}
	return code, nil
}

// Feature returns the name of the feature this table encodes.
func (t *EncoderTable) Feature() string {
	return t.feature
}

// canonicalValue trims surrounding whitespace and applies Unicode NFC so
// form input in a different normal form still matches its vocabulary entry.
func canonicalValue(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}
