package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"tierprice/inference"
)

// Predictor scores validated feature matrices.
type Predictor interface {
	NFeatures() int
	PredictProba(features inference.FeatureMatrix) ([]float64, error)
}

type featuresRequest struct {
	Features json.RawMessage `json:"features"`
}

type predictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// RegisterPredictHandlers 注册预测服务路由
func RegisterPredictHandlers(mux *http.ServeMux, predictor Predictor) {
	mux.Handle("POST /predict_proba", &predictHandler{predictor: predictor})
}

type predictHandler struct {
	predictor Predictor
}

func (h *predictHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req featuresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := bodyStatus(err)
		if status == http.StatusBadRequest {
			writeError(w, status, inference.ErrMissingFeatures.Error())
			return
		}
		writeError(w, status, err.Error())
		return
	}

	features, err := inference.ParseFeatures(req.Features, h.predictor.NFeatures())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	probabilities, err := h.predictor.PredictProba(features)
	if err != nil {
		var verr *inference.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, predictResponse{Probabilities: probabilities})
}
