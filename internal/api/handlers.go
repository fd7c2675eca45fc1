// Package api exposes the prediction service over HTTP: predict and batch
// predict, fitted vocabularies, model metadata, and health probes.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"sleepsense/internal/features"
	"sleepsense/internal/logging"
	"sleepsense/internal/predictor"
)

const maxBatchSize = 100

type Handler struct {
	predictor *predictor.Predictor
	startTime time.Time
}

func NewHandler(p *predictor.Predictor) *Handler {
	return &Handler{
		predictor: p,
		startTime: time.Now(),
	}
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req features.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	pred, err := h.predictor.Predict(req)
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			logging.Error().Err(err).Msg("Prediction failed")
		} else {
			logging.Debug().Err(err).Msg("Rejected prediction request")
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, &PredictResponse{
		Quality: pred.Quality,
		Tips:    pred.Tips,
	})
}

// BatchResult carries either a prediction or that row's error, never both.
type BatchResult struct {
	Quality string   `json:"quality,omitempty"`
	Tips    []string `json:"tips,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type batchResponse struct {
	Results []BatchResult `json:"results"`
}

func (h *Handler) PredictBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []features.Request
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if len(reqs) == 0 {
		respondError(w, http.StatusBadRequest, "empty batch")
		return
	}
	if len(reqs) > maxBatchSize {
		respondError(w, http.StatusBadRequest, "batch too large")
		return
	}

	items := h.predictor.PredictBatch(reqs)

	results := make([]BatchResult, len(items))
	for i, item := range items {
		if item.Err != nil {
			results[i] = BatchResult{Error: item.Err.Error()}
			continue
		}
		results[i] = BatchResult{
			Quality: item.Prediction.Quality,
			Tips:    item.Prediction.Tips,
		}
	}

	respondJSON(w, http.StatusOK, &batchResponse{Results: results})
}

func (h *Handler) Vocabularies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.predictor.Vocabularies())
}

type modelInfoResponse struct {
	Algorithm string   `json:"algorithm"`
	Accuracy  float64  `json:"accuracy"`
	F1Score   float64  `json:"f1_score"`
	Samples   int      `json:"samples"`
	Features  []string `json:"features"`
	Classes   []string `json:"classes"`
}

func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	meta := h.predictor.Metadata()
	respondJSON(w, http.StatusOK, &modelInfoResponse{
		Algorithm: meta.Algorithm,
		Accuracy:  meta.Accuracy,
		F1Score:   meta.F1Score,
		Samples:   meta.Samples,
		Features:  meta.Features,
		Classes:   meta.Classes,
	})
}

type healthResponse struct {
	Status string  `json:"status"`
	Model  string  `json:"model"`
	Uptime float64 `json:"uptime"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &healthResponse{
		Status: "healthy",
		Model:  h.predictor.Metadata().Algorithm,
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"alive": true})
}

// HealthReady reports ready: the predictor is constructed before the router,
// so a running server always has its artifacts loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"ready": true})
}
