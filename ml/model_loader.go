package ml

import "fmt"

// LoadModel reads a pre-trained artifact from disk. Loading happens once at
// startup; a missing or corrupt artifact is fatal and wraps ErrModelLoad.
func LoadModel(modelType, path string) (Model, error) {
	switch modelType {
	case "decision_tree":
		model := &DecisionTree{}
		if err := model.Load(path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: unsupported model type %q", ErrModelLoad, modelType)
	}
}
