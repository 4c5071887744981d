package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFilePreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	document := `{
		"Trade Flows": ["Increasing", "Stable", "Decreasing"],
		"Access to Finances": ["High", "Moderate", "Low"],
		"Feedback Loops": ["Present", "Absent", "Weak"]
	}`
	if err := os.WriteFile(path, []byte(document), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vocabulary, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	features := vocabulary.Features()
	want := []string{"Trade Flows", "Access to Finances", "Feedback Loops"}
	if len(features) != len(want) {
		t.Fatalf("expected %d features, got %d", len(want), len(features))
	}
	for i, name := range want {
		if features[i] != name {
			t.Fatalf("expected feature %d to be %q, got %q", i, name, features[i])
		}
	}

	values, ok := vocabulary.Values("Trade Flows")
	if !ok {
		t.Fatal("expected Trade Flows values")
	}
	if values[0] != "Increasing" || values[1] != "Stable" || values[2] != "Decreasing" {
		t.Fatalf("unexpected value order: %v", values)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrVocabularyLoad) {
		t.Fatalf("expected ErrVocabularyLoad, got %v", err)
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte(`{"Trade Flows": [`), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrVocabularyLoad) {
		t.Fatalf("expected ErrVocabularyLoad, got %v", err)
	}
}

func TestLoadFileNotAnObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte(`["Increasing"]`), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrVocabularyLoad) {
		t.Fatalf("expected ErrVocabularyLoad, got %v", err)
	}
}

func TestDefaultVocabulary(t *testing.T) {
	vocabulary := Default()
	if vocabulary.Len() != 16 {
		t.Fatalf("expected 16 features, got %d", vocabulary.Len())
	}
	if vocabulary.Features()[0] != "Trade Flows" {
		t.Fatalf("unexpected first feature: %q", vocabulary.Features()[0])
	}
	for _, feature := range vocabulary.Features() {
		values, ok := vocabulary.Values(feature)
		if !ok || len(values) == 0 {
			t.Fatalf("feature %q has no values", feature)
		}
	}
	if _, ok := vocabulary.Values("No Such Feature"); ok {
		t.Fatal("expected lookup miss for unknown feature")
	}
}
