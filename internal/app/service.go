// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	deltaqueue "github.com/verifund/aiscore/internal/adapters/mq/queue"
	workerpool "github.com/verifund/aiscore/internal/adapters/mq/worker"
	"github.com/verifund/aiscore/internal/adapters/notify"
	"github.com/verifund/aiscore/internal/adapters/regressor"
	"github.com/verifund/aiscore/internal/domain/classify"
	"github.com/verifund/aiscore/internal/domain/explain"
	"github.com/verifund/aiscore/internal/domain/features"
	"github.com/verifund/aiscore/internal/domain/model"
	"github.com/verifund/aiscore/internal/domain/scoring"
	"github.com/verifund/aiscore/pkg/logger"
	"github.com/verifund/aiscore/pkg/metrics"
)

// Service wires the scoring engine, the explainability ranker, the commit
// classifier, and the delivery pipeline together behind the API surface.
type Service struct {
	mu sync.RWMutex

	// Core components, read-only after Start.
	engine     *scoring.Engine
	attributor explain.Attributor
	classifier *classify.Classifier
	deltaQueue deltaqueue.Queue
	notifier   notify.Notifier
	pool       *workerpool.Pool

	// Configuration.
	scoreModelPath string
	priceModelPath string
	ledgerURL      string
	notifyTimeout  time.Duration
	queueSize      int
	workerCount    int
	classifierSeed int64

	// State.
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithModelPaths sets the score and price artifact paths. Empty paths fall
// back to the bundled models.
func WithModelPaths(scorePath, pricePath string) Option {
	return func(s *Service) {
		s.scoreModelPath = scorePath
		s.priceModelPath = pricePath
	}
}

// WithLedgerURL sets the downstream ledger endpoint.
func WithLedgerURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.ledgerURL = url
		}
	}
}

// WithNotifyTimeout bounds one ledger delivery attempt.
func WithNotifyTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.notifyTimeout = timeout
		}
	}
}

// WithQueueSize sets the delivery queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of delivery workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithClassifierSeed seeds the classifier's delta RNG. Zero keeps the
// time-based seed.
func WithClassifierSeed(seed int64) Option {
	return func(s *Service) {
		s.classifierSeed = seed
	}
}

// WithNotifier replaces the ledger notifier. Used by tests.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		ledgerURL:     "http://localhost:5000/api/integrations/score-update",
		notifyTimeout: 5 * time.Second,
		queueSize:     10000,
		workerCount:   4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the model pair and starts the delivery pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scoring service...")

	scoreModel, err := s.loadModel(s.scoreModelPath, regressor.DefaultScore)
	if err != nil {
		return err
	}
	priceModel, err := s.loadModel(s.priceModelPath, regressor.DefaultPrice)
	if err != nil {
		return err
	}

	// Each model carries its own training schema; the engine never assumes
	// the pair shares one.
	s.engine = scoring.NewEngine(scoreModel, scoreModel.Schema(), priceModel, priceModel.Schema())
	s.attributor = scoreModel

	classifierOpts := []classify.Option{}
	if s.classifierSeed != 0 {
		classifierOpts = append(classifierOpts, classify.WithSeed(s.classifierSeed))
	}
	s.classifier = classify.New(classifierOpts...)

	s.deltaQueue = deltaqueue.NewInMemoryQueue(
		deltaqueue.WithCapacity(s.queueSize),
	)
	if s.notifier == nil {
		s.notifier = notify.NewLedgerNotifier(
			s.ledgerURL,
			notify.WithTimeout(s.notifyTimeout),
			notify.WithLogger(s.logger.Named("notify")),
		)
	}
	s.pool = workerpool.NewPool(s.workerCount, s.deltaQueue, s.notifier)
	s.pool.Start(ctx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "scoring service started",
		logger.String("scoreModel", scoreModel.Name()),
		logger.String("priceModel", priceModel.Name()),
		logger.Int("scoreFeatures", scoreModel.Schema().Len()),
		logger.Int("priceFeatures", priceModel.Schema().Len()),
		logger.Int("deliveryWorkers", s.workerCount),
		logger.Int("deliveryQueueSize", s.queueSize),
	)
	return nil
}

func (s *Service) loadModel(path string, fallback func() *regressor.Model) (*regressor.Model, error) {
	if path == "" {
		return fallback(), nil
	}
	return regressor.Load(path)
}

// Stop gracefully shuts down the delivery pipeline.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping scoring service...")

	if s.deltaQueue != nil {
		_ = s.deltaQueue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "scoring service stopped")
}

// Score reconciles a validated record against the success-score schema,
// predicts, and produces the ranked top reasons.
func (s *Service) Score(ctx context.Context, record model.CreatorRecord) (float64, []model.Contribution, error) {
	start := time.Now()
	vector := features.Reconcile(record, s.engine.ScoreSchema())

	score, err := s.engine.Score(ctx, vector)
	if err != nil {
		metrics.RecordPredictionError(scoring.ModelScore)
		return 0, nil, err
	}

	reasons, err := explain.Rank(ctx, vector, s.attributor, s.engine.ScoreSchema())
	if err != nil {
		metrics.RecordPredictionError(scoring.ModelScore)
		return 0, nil, err
	}

	metrics.RecordPrediction(scoring.ModelScore)
	metrics.RecordPredictionLatency(scoring.ModelScore, float64(time.Since(start).Milliseconds()))
	s.logger.Debug(ctx, "scored creator",
		logger.String("category", record.ProjectCategory),
		logger.Float64("score", score),
		logger.Int("reasons", len(reasons)),
	)
	return score, reasons, nil
}

// SuggestPrice reconciles a validated record against the pricing schema and
// returns the clamped quote.
func (s *Service) SuggestPrice(ctx context.Context, record model.CreatorRecord) (scoring.Quote, error) {
	start := time.Now()
	vector := features.Reconcile(record, s.engine.PriceSchema())

	quote, err := s.engine.Price(ctx, vector)
	if err != nil {
		metrics.RecordPredictionError(scoring.ModelPrice)
		return scoring.Quote{}, err
	}

	metrics.RecordPrediction(scoring.ModelPrice)
	metrics.RecordPredictionLatency(scoring.ModelPrice, float64(time.Since(start).Milliseconds()))
	s.logger.Debug(ctx, "suggested price",
		logger.String("category", record.ProjectCategory),
		logger.Int("suggested", quote.Suggested),
	)
	return quote, nil
}

// ProcessCommit classifies a commit event and, when meaningful, hands the
// delta to the delivery pipeline. The returned delta is reported to the
// webhook caller unconditionally; delivery happens asynchronously and its
// outcome never reaches the caller.
func (s *Service) ProcessCommit(ctx context.Context, event model.CommitEvent) (model.ScoreDelta, bool) {
	metrics.RecordWebhookEvent()

	result := s.classifier.Classify(event.Message)
	delta := model.ScoreDelta{
		ProjectID:     event.ProjectID,
		Delta:         result.Delta,
		CommitMessage: event.Message,
	}
	if !result.Meaningful {
		s.logger.Debug(ctx, "commit not meaningful",
			logger.String("projectID", event.ProjectID),
		)
		return delta, false
	}

	metrics.RecordMeaningfulCommit(result.Delta)
	if !s.deltaQueue.Enqueue(ctx, delta) {
		// Fire-and-forget: a full or closed queue drops the delta. The
		// caller still gets the classification result.
		s.logger.Warn(ctx, "delivery queue rejected delta; dropping",
			logger.String("projectID", event.ProjectID),
			logger.Float64("delta", result.Delta),
		)
	}

	s.logger.Info(ctx, "meaningful commit classified",
		logger.String("projectID", event.ProjectID),
		logger.String("keyword", result.Keyword),
		logger.Float64("delta", result.Delta),
	)
	return delta, true
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}
	if s.started {
		queueLen := s.deltaQueue.Len(context.Background())
		stats["queueLength"] = queueLen
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())
		stats["scoreFeatures"] = s.engine.ScoreSchema().Len()
		stats["priceFeatures"] = s.engine.PriceSchema().Len()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}
	return stats
}

// Started reports whether the model pair is loaded and the pipeline is
// running.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
