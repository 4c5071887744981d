package ml

import (
	"errors"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"empowerpredict/vocab"
)

// DefaultCacheSize bounds the memoization cache when no size is configured.
const DefaultCacheSize = 128

// Prediction is the outcome of scoring one submission.
type Prediction struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Cached bool    `json:"cached"`
}

// Pipeline owns everything a prediction needs: the vocabulary, the encoder
// tables derived from it, the pre-loaded model, and the label policy. All of
// it is immutable after construction, so concurrent submissions need no
// locking. The LRU cache memoizes results of the deterministic pipeline; it
// is bounded, in-memory only, and internally synchronized.
type Pipeline struct {
	vocabulary *vocab.Vocabulary
	encoders   map[string]*EncoderTable
	model      Model
	policy     LabelPolicy
	cache      *lru.Cache[string, Prediction]
}

// NewPipeline wires the encoding, scaling, and inference steps together.
func NewPipeline(v *vocab.Vocabulary, model Model, policy LabelPolicy, cacheSize int) (*Pipeline, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	encoders, err := BuildEncoders(v)
	if err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, Prediction](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		vocabulary: v,
		encoders:   encoders,
		model:      model,
		policy:     policy,
		cache:      cache,
	}, nil
}

// Vocabulary returns the vocabulary the pipeline was built with.
func (p *Pipeline) Vocabulary() *vocab.Vocabulary {
	return p.vocabulary
}

// Policy returns the label policy in effect.
func (p *Pipeline) Policy() LabelPolicy {
	return p.policy
}

// Predict validates one submission, encodes and scales it, assembles the
// feature vector, and scores it. Validation failures are returned before the
// model is ever consulted.
func (p *Pipeline) Predict(req *Request) (Prediction, error) {
	if err := req.Validate(p.vocabulary); err != nil {
		return Prediction{}, err
	}

	encoded := make([]int, 0, p.vocabulary.Len())
	for _, feature := range p.vocabulary.Features() {
		code, err := p.encoders[feature].Encode(req.Categorical[feature])
		if err != nil {
			return Prediction{}, err
		}
		encoded = append(encoded, code)
	}

	key := cacheKey(req.NumericValues(), encoded)
	if hit, ok := p.cache.Get(key); ok {
		hit.Cached = true
		return hit, nil
	}

	scaled := Standardize(req.NumericValues())
	vector := Assemble(scaled, encoded)

	score, err := p.model.Predict(vector)
	if err != nil {
		return Prediction{}, err
	}

	result := Prediction{Label: p.policy.Label(score), Score: score}
	p.cache.Add(key, result)
	return result, nil
}

// cacheKey builds a canonical key from the already-validated inputs. Encoded
// codes stand in for the categorical strings, so spelling variants that
// canonicalize to the same value share an entry.
func cacheKey(numeric []float64, encoded []int) string {
	var b strings.Builder
	for _, v := range numeric {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('|')
	}
	for _, code := range encoded {
		b.WriteString(strconv.Itoa(code))
		b.WriteByte('|')
	}
	return b.String()
}
