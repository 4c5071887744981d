package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"empowerpredict/ml"
	"empowerpredict/monitoring"
)

var (
	pipeline    *ml.Pipeline
	activityHub *monitoring.Hub
	logger      = zap.NewNop()
)

// SetPipeline installs the prediction pipeline used by the handlers.
func SetPipeline(p *ml.Pipeline) {
	pipeline = p
}

// SetActivityHub installs the WebSocket activity feed.
func SetActivityHub(h *monitoring.Hub) {
	activityHub = h
}

// SetLogger installs the handler logger.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// RegisterHandlers wires all routes onto the mux.
func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleForm)
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/categories", handleCategories)
	mux.HandleFunc("POST /api/predict", handlePredict)
	mux.HandleFunc("GET /api/ws/activity", handleActivityFeed)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleCategories(w http.ResponseWriter, r *http.Request) {
	if pipeline == nil {
		respondError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	vocabulary := pipeline.Vocabulary()
	features := vocabulary.Features()
	categories := make([]map[string]interface{}, 0, len(features))
	for _, feature := range features {
		values, _ := vocabulary.Values(feature)
		categories = append(categories, map[string]interface{}{
			"name":   feature,
			"values": values,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"numeric_fields": ml.NumericFields(),
		"categories":     categories,
	})
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	if pipeline == nil {
		respondError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	var req ml.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prediction, err := pipeline.Predict(&req)
	if err != nil {
		var incomplete *ml.IncompleteInputError
		var unknown *ml.UnknownCategoryError
		var invalid *ml.InvalidValueError
		var inference *ml.InferenceError
		switch {
		case errors.As(err, &incomplete), errors.As(err, &unknown), errors.As(err, &invalid):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &inference):
			logger.Error("inference rejected vector", zap.Error(err))
			respondError(w, http.StatusInternalServerError, err.Error())
		default:
			logger.Error("prediction failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "prediction failed")
		}
		return
	}

	if activityHub != nil {
		activityHub.PublishPrediction(prediction.Label, prediction.Score, prediction.Cached)
	}

	respondJSON(w, http.StatusOK, prediction)
}

func handleActivityFeed(w http.ResponseWriter, r *http.Request) {
	if activityHub == nil {
		respondError(w, http.StatusServiceUnavailable, "activity feed not initialized")
		return
	}
	activityHub.HandleWebSocket(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
