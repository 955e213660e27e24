// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/verifund/aiscore/internal/domain/model"
)

// PriceHandler handles pricing recommendation requests.
type PriceHandler struct {
	deps Dependencies
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(deps Dependencies) *PriceHandler {
	return &PriceHandler{deps: deps}
}

// HandlePostPrice handles POST /suggest-price requests.
func (h *PriceHandler) HandlePostPrice(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_suggest_price"
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

	quote, err := h.deps.SuggestPrice(r.Context(), record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "prediction_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, priceResponse{
		SuggestedPrice: quote.Suggested,
		PriceRange:     [2]int{quote.Lower, quote.Upper},
	})
}
