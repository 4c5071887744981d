package ml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func sampleTree() *DecisionTree {
	// Root splits on feature 0 at 0.5: left leaf scores 0.2, right 0.9.
	return &DecisionTree{
		featureCount: 2,
		nodes: []TreeNode{
			{FeatureIdx: 0, Threshold: 0.5, LeftChild: 1, RightChild: 2},
			{FeatureIdx: -1, Score: 0.2, IsLeaf: true},
			{FeatureIdx: -1, Score: 0.9, IsLeaf: true},
		},
	}
}

func TestDecisionTreePredict(t *testing.T) {
	tree := sampleTree()

	score, err := tree.Predict([]float64{0.3, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.2 {
		t.Fatalf("expected score 0.2, got %f", score)
	}

	score, err = tree.Predict([]float64{0.8, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.9 {
		t.Fatalf("expected score 0.9, got %f", score)
	}
}

func TestDecisionTreeArityMismatch(t *testing.T) {
	tree := sampleTree()

	_, err := tree.Predict([]float64{0.3})
	var inference *InferenceError
	if !errors.As(err, &inference) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
	if inference.Want != 2 || inference.Got != 1 {
		t.Fatalf("unexpected error detail: %+v", inference)
	}
}

func TestDecisionTreeSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.model")
	tree := sampleTree()
	if err := tree.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded := &DecisionTree{}
	if err := loaded.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.FeatureCount() != tree.FeatureCount() {
		t.Fatalf("expected feature count %d, got %d", tree.FeatureCount(), loaded.FeatureCount())
	}

	score, err := loaded.Predict([]float64{0.8, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.9 {
		t.Fatalf("expected score 0.9, got %f", score)
	}
}

func TestDecisionTreeLoadRejectsBadArtifacts(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		payload string
	}{
		{"not json", "not json"},
		{"no nodes", `{"feature_count": 2, "nodes": []}`},
		{"no feature count", `{"nodes": [{"is_leaf": true, "score": 0.5}]}`},
		{"score out of range", `{"feature_count": 1, "nodes": [{"is_leaf": true, "score": 1.5}]}`},
		{"child out of range", `{"feature_count": 1, "nodes": [{"feature_idx": 0, "left_child": 5, "right_child": 6}]}`},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name+".model")
		if err := os.WriteFile(path, []byte(tc.payload), 0o600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tree := &DecisionTree{}
		if err := tree.Load(path); err == nil {
			t.Fatalf("%s: expected load error", tc.name)
		}
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel("decision_tree", filepath.Join(t.TempDir(), "missing.model"))
	if !errors.Is(err, ErrModelLoad) {
		t.Fatalf("expected ErrModelLoad, got %v", err)
	}
}

func TestLoadModelUnsupportedType(t *testing.T) {
	_, err := LoadModel("neural_net", "whatever.model")
	if !errors.Is(err, ErrModelLoad) {
		t.Fatalf("expected ErrModelLoad, got %v", err)
	}
}

func TestLoadModelRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.model")
	if err := sampleTree().Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	model, err := LoadModel("decision_tree", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	score, err := model.Predict([]float64{0.1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0.2 {
		t.Fatalf("expected score 0.2, got %f", score)
	}
}
