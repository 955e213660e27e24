// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/verifund/aiscore/internal/domain/model"
)

// WebhookHandler handles inbound GitHub push webhooks.
type WebhookHandler struct {
	deps Dependencies
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(deps Dependencies) *WebhookHandler {
	return &WebhookHandler{deps: deps}
}

// webhookRequest mirrors the GitHub push payload fields the classifier
// needs. Everything else in the payload is ignored.
type webhookRequest struct {
	Ref        string `json:"ref"`
	HeadCommit *struct {
		Message string `json:"message"`
	} `json:"head_commit"`
	Repository struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// HandlePostWebhook handles POST /webhook/github/{project_id} requests.
// The response always carries the classification outcome; downstream
// delivery is asynchronous and its failure never surfaces here.
func (h *WebhookHandler) HandlePostWebhook(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_webhook"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	projectID := strings.TrimPrefix(r.URL.Path, "/webhook/github/")
	if projectID == "" || strings.Contains(projectID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Pushes without a head commit (tag pushes, branch deletions) carry
	// nothing to classify; they are non-meaningful events, not errors.
	var message string
	if req.HeadCommit != nil {
		message = req.HeadCommit.Message
	}

	delta, meaningful := h.deps.ProcessCommit(r.Context(), model.CommitEvent{
		ProjectID: projectID,
		Ref:       req.Ref,
		Message:   message,
		RepoName:  req.Repository.FullName,
	})

	resp := webhookResponse{
		ProjectID:     delta.ProjectID,
		ScoreIncrease: delta.Delta,
		CommitMessage: delta.CommitMessage,
	}
	if meaningful {
		resp.Message = fmt.Sprintf("Meaningful commit detected; score increased by %.2f points", delta.Delta)
	} else {
		resp.Message = "Commit not meaningful; no score change"
	}
	writeJSON(w, http.StatusOK, resp)
}
