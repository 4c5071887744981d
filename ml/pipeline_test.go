package ml

import (
	"errors"
	"testing"

	"empowerpredict/vocab"
)

type stubModel struct {
	score float64
	err   error
	calls int
}

func (m *stubModel) Predict(features []float64) (float64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.score, nil
}

func newTestPipeline(t *testing.T, model Model) *Pipeline {
	t.Helper()
	pipeline, err := NewPipeline(vocab.Default(), model, NewLabelPolicy(PolicyThreshold, 0.75), 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return pipeline
}

func TestPipelinePredictLabels(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.8, LabelEmpowered},
		{0.5, LabelNotEmpowered},
	}
	for _, tc := range cases {
		pipeline := newTestPipeline(t, &stubModel{score: tc.score})
		prediction, err := pipeline.Predict(completeRequest(pipeline.Vocabulary()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prediction.Label != tc.want {
			t.Fatalf("score %f: expected %q, got %q", tc.score, tc.want, prediction.Label)
		}
		if prediction.Score != tc.score {
			t.Fatalf("expected score %f, got %f", tc.score, prediction.Score)
		}
	}
}

func TestPipelineIncompleteInputSkipsModel(t *testing.T) {
	model := &stubModel{score: 0.8}
	pipeline := newTestPipeline(t, model)

	req := completeRequest(pipeline.Vocabulary())
	req.TariffRates = nil

	_, err := pipeline.Predict(req)
	var incomplete *IncompleteInputError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteInputError, got %v", err)
	}
	if model.calls != 0 {
		t.Fatalf("expected model not to be called, got %d calls", model.calls)
	}
}

func TestPipelineUnknownCategorySkipsModel(t *testing.T) {
	model := &stubModel{score: 0.8}
	pipeline := newTestPipeline(t, model)

	req := completeRequest(pipeline.Vocabulary())
	req.Categorical["Trade Flows"] = "Sideways"

	_, err := pipeline.Predict(req)
	var unknown *UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
	if model.calls != 0 {
		t.Fatalf("expected model not to be called, got %d calls", model.calls)
	}
}

func TestPipelineMemoizesResults(t *testing.T) {
	model := &stubModel{score: 0.8}
	pipeline := newTestPipeline(t, model)

	first, err := pipeline.Predict(completeRequest(pipeline.Vocabulary()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached {
		t.Fatal("first prediction should not be cached")
	}

	second, err := pipeline.Predict(completeRequest(pipeline.Vocabulary()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Fatal("second prediction should be cached")
	}
	if second.Label != first.Label || second.Score != first.Score {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
	if model.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", model.calls)
	}
}

func TestPipelinePropagatesInferenceError(t *testing.T) {
	pipeline := newTestPipeline(t, &stubModel{err: &InferenceError{Want: 20, Got: 5}})

	_, err := pipeline.Predict(completeRequest(pipeline.Vocabulary()))
	var inference *InferenceError
	if !errors.As(err, &inference) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
}

func TestPipelineEndToEndWithTree(t *testing.T) {
	// With all four numeric fields equal the scaled block is all zeros, so a
	// root split on feature 0 at threshold 0 sends the vector left.
	v := vocab.Default()
	tree := &DecisionTree{
		featureCount: 4 + v.Len(),
		nodes: []TreeNode{
			{FeatureIdx: 0, Threshold: 0, LeftChild: 1, RightChild: 2},
			{FeatureIdx: -1, Score: 0.9, IsLeaf: true},
			{FeatureIdx: -1, Score: 0.1, IsLeaf: true},
		},
	}
	pipeline, err := NewPipeline(v, tree, NewLabelPolicy(PolicyThreshold, 0.75), 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := completeRequest(v)
	req.BusinessOwnership = floatPtr(10)
	req.EmploymentRates = floatPtr(10)
	req.WomenInLeadership = floatPtr(10)
	req.TariffRates = floatPtr(10)

	prediction, err := pipeline.Predict(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prediction.Label != LabelEmpowered {
		t.Fatalf("expected %q, got %q", LabelEmpowered, prediction.Label)
	}
}

func TestNewPipelineRequiresModel(t *testing.T) {
	if _, err := NewPipeline(vocab.Default(), nil, NewLabelPolicy(PolicyThreshold, 0.75), 16); err == nil {
		t.Fatal("expected error for nil model")
	}
}
