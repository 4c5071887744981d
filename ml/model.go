package ml

// Model is the single capability the service needs from the pre-trained
// artifact: score one feature vector. The artifact is loaded once at startup
// and treated as a black box; it is never mutated after load.
type Model interface {
	Predict(features []float64) (float64, error)
}

// Labels surfaced to the submitter.
const (
	LabelEmpowered    = "Empowered"
	LabelNotEmpowered = "Not Empowered"
)

// Label policy modes. Threshold mode labels a submission Empowered when the
// model's score reaches the cutoff; exact mode only when the score is
// exactly 1. The deployed policy is an explicit configuration choice.
const (
	PolicyThreshold = "threshold"
	PolicyExact     = "exact"
)

// DefaultCutoff is the threshold-mode cutoff used when none is configured.
const DefaultCutoff = 0.75

// LabelPolicy maps a model's raw score to a discrete label.
type LabelPolicy struct {
	Mode   string
	Cutoff float64
}

// NewLabelPolicy normalizes an incoming policy, defaulting to threshold mode
// with the default cutoff.
func NewLabelPolicy(mode string, cutoff float64) LabelPolicy {
	if mode != PolicyExact {
		mode = PolicyThreshold
	}
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultCutoff
	}
	return LabelPolicy{Mode: mode, Cutoff: cutoff}
}

// Label applies the policy to a raw model score.
func (p LabelPolicy) Label(score float64) string {
	switch p.Mode {
	case PolicyExact:
		if score == 1 {
			return LabelEmpowered
		}
	default:
		if score >= p.Cutoff {
			return LabelEmpowered
		}
	}
	return LabelNotEmpowered
}
