// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/verifund/aiscore/internal/domain/model"
)

// ScoreHandler handles success-score requests.
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandlePostScore handles POST /score requests.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var record model.CreatorRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(record); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", WrapKind(op, ErrValidation, err))
		return
	}

	score, reasons, err := h.deps.Score(r.Context(), record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "prediction_failed", err)
		return
	}

	if reasons == nil {
		reasons = []model.Contribution{}
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		ProjectSuccessScore: math.Round(score*100) / 100,
		Reasons:             reasons,
	})
}
