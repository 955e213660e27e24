// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/verifund/aiscore/internal/domain/model"
	"github.com/verifund/aiscore/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Score predicts the success score for a validated record and explains
	// it with ranked contributions.
	Score(ctx context.Context, record model.CreatorRecord) (float64, []model.Contribution, error)

	// SuggestPrice predicts a clamped price quote for a validated record.
	SuggestPrice(ctx context.Context, record model.CreatorRecord) (scoring.Quote, error)

	// ProcessCommit classifies a commit event and schedules delivery of a
	// meaningful delta. Always returns once classification completes.
	ProcessCommit(ctx context.Context, event model.CommitEvent) (model.ScoreDelta, bool)

	// Started reports whether the model pair is loaded.
	Started() bool
}

// validate checks Creator Record field ranges and the category enum before
// anything reaches the feature reconciler.
var validate = validator.New() //nolint:gochecknoglobals // validator instances cache struct metadata and are safe for concurrent use

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler    *RootHandler
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	scoreHandler   *ScoreHandler
	priceHandler   *PriceHandler
	webhookHandler *WebhookHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		rootHandler:    NewRootHandler(),
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		scoreHandler:   NewScoreHandler(deps),
		priceHandler:   NewPriceHandler(deps),
		webhookHandler: NewWebhookHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/suggest-price", MetricsMiddleware(s.priceHandler.HandlePostPrice, "suggest_price"))
	mux.HandleFunc("/webhook/github/", MetricsMiddleware(s.webhookHandler.HandlePostWebhook, "webhook"))
	mux.HandleFunc("/", s.rootHandler.HandleRoot)
}

// scoreResponse mirrors the documented shape for POST /score.
type scoreResponse struct {
	ProjectSuccessScore float64              `json:"projectSuccessScore"`
	Reasons             []model.Contribution `json:"reasons"`
}

// priceResponse mirrors the documented shape for POST /suggest-price.
type priceResponse struct {
	SuggestedPrice int    `json:"suggested_price"`
	PriceRange     [2]int `json:"price_range"`
}

// webhookResponse is returned unconditionally once classification
// completes, whatever the downstream delivery outcome.
type webhookResponse struct {
	ProjectID     string  `json:"projectId"`
	ScoreIncrease float64 `json:"scoreIncrease"`
	CommitMessage string  `json:"commitMessage"`
	Message       string  `json:"message"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
