// Package notify delivers classified score deltas to the external ledger
// service.
//
// Delivery is best-effort: the outcome is captured into a value and logged,
// never surfaced to the inbound webhook caller, and never retried. The
// durability gap this implies (a crash or failure loses the delta) is a
// documented property of the pipeline, not an accident.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/verifund/aiscore/internal/domain/model"
	"github.com/verifund/aiscore/pkg/logger"
	"github.com/verifund/aiscore/pkg/metrics"
)

// defaultTimeout bounds one delivery attempt.
const defaultTimeout = 5 * time.Second

// Outcome records the result of one delivery attempt.
type Outcome struct {
	DeliveryID string
	Delivered  bool
	StatusCode int
	Err        error
}

// Notifier delivers a score delta downstream.
type Notifier interface {
	Notify(ctx context.Context, delta model.ScoreDelta) Outcome
}

// LedgerNotifier POSTs score deltas to the ledger endpoint.
type LedgerNotifier struct {
	url     string
	timeout time.Duration
	client  *http.Client
	logger  logger.Logger
}

// Option applies a configuration option to the LedgerNotifier.
type Option func(*LedgerNotifier)

// WithTimeout bounds each delivery attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(n *LedgerNotifier) {
		if timeout > 0 {
			n.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(n *LedgerNotifier) {
		if client != nil {
			n.client = client
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(n *LedgerNotifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewLedgerNotifier creates a notifier targeting url.
func NewLedgerNotifier(url string, opts ...Option) *LedgerNotifier {
	n := &LedgerNotifier{
		url:     url,
		timeout: defaultTimeout,
		client:  &http.Client{},
		logger:  logger.Get().Named("notify"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify attempts one delivery. Timeout, connection errors, and non-2xx
// responses all produce an undelivered Outcome; the failure is logged with
// the originating project id and swallowed.
func (n *LedgerNotifier) Notify(ctx context.Context, delta model.ScoreDelta) Outcome {
	out := Outcome{DeliveryID: uuid.NewString()}
	start := time.Now()
	metrics.RecordDeliveryAttempt()
	defer func() {
		metrics.RecordDeliveryLatency(float64(time.Since(start).Milliseconds()))
	}()

	body, err := json.Marshal(delta)
	if err != nil {
		return n.failed(ctx, out, delta, err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return n.failed(ctx, out, delta, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return n.failed(ctx, out, delta, err)
	}
	defer resp.Body.Close()

	out.StatusCode = resp.StatusCode
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		out.Err = newStatusError(resp.StatusCode)
		metrics.RecordDeliveryFailure()
		n.logger.Warn(ctx, "ledger rejected score delta",
			logger.String("deliveryID", out.DeliveryID),
			logger.String("projectID", delta.ProjectID),
			logger.Int("status", resp.StatusCode),
		)
		return out
	}

	out.Delivered = true
	n.logger.Info(ctx, "score delta delivered",
		logger.String("deliveryID", out.DeliveryID),
		logger.String("projectID", delta.ProjectID),
		logger.Float64("delta", delta.Delta),
	)
	return out
}

func (n *LedgerNotifier) failed(ctx context.Context, out Outcome, delta model.ScoreDelta, err error) Outcome {
	out.Err = err
	metrics.RecordDeliveryFailure()
	metrics.RecordErrorByComponent("notify", "delivery_error")
	n.logger.Warn(ctx, "ledger delivery failed",
		logger.String("deliveryID", out.DeliveryID),
		logger.String("projectID", delta.ProjectID),
		logger.Error(err),
	)
	return out
}
