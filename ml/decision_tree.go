package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DecisionTree is the concrete pre-trained artifact: a flat node array
// serialized as JSON by the training pipeline, plus the input arity the tree
// was fitted on. Leaves carry the score in [0,1] that the training run
// assigned to them (the fraction of positive samples in the leaf).
type DecisionTree struct {
	featureCount int
	nodes        []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Score      float64 `json:"score"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeArtifact struct {
	FeatureCount int        `json:"feature_count"`
	Nodes        []TreeNode `json:"nodes"`
}

// Predict walks the tree for one feature vector and returns the score of the
// leaf it lands in. A vector whose length does not match the arity the tree
// was fitted on is rejected with an InferenceError.
func (dt *DecisionTree) Predict(features []float64) (float64, error) {
	if len(dt.nodes) == 0 {
		return 0, errors.New("model is empty")
	}
	if len(features) != dt.featureCount {
		return 0, &InferenceError{Want: dt.featureCount, Got: len(features)}
	}

	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.Score, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

// FeatureCount returns the input arity the tree was fitted on.
func (dt *DecisionTree) FeatureCount() int {
	return dt.featureCount
}

// Save writes the tree artifact to disk.
func (dt *DecisionTree) Save(path string) error {
	if len(dt.nodes) == 0 {
		return errors.New("model is empty")
	}
	payload, err := json.Marshal(treeArtifact{FeatureCount: dt.featureCount, Nodes: dt.nodes})
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

// Load reads a tree artifact from disk.
func (dt *DecisionTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var artifact treeArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return err
	}
	if artifact.FeatureCount <= 0 {
		return errors.New("artifact missing feature count")
	}
	if len(artifact.Nodes) == 0 {
		return errors.New("artifact has no nodes")
	}
	for i, node := range artifact.Nodes {
		if node.IsLeaf {
			if node.Score < 0 || node.Score > 1 {
				return fmt.Errorf("node %d has score %f outside [0,1]", i, node.Score)
			}
			continue
		}
		if node.LeftChild < 0 || node.LeftChild >= len(artifact.Nodes) ||
			node.RightChild < 0 || node.RightChild >= len(artifact.Nodes) {
			return fmt.Errorf("node %d has child index out of range", i)
		}
	}
	dt.featureCount = artifact.FeatureCount
	dt.nodes = artifact.Nodes
	return nil
}
