package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// probeScoring submits each record to both scoring endpoints concurrently
// and verifies the response invariants.
func probeScoring(ctx context.Context, config *Config, records []Record, stats *Stats) error {
	log.Printf("📤 Probing %d records with %d workers...", len(records), config.Workers)

	client := newHTTPClient(config.Timeout)
	scoreURL := config.BaseURL + "/score"
	priceURL := config.BaseURL + "/suggest-price"

	// Counters for statistics
	var (
		scoreOK    int64
		scoreFail  int64
		priceOK    int64
		priceFail  int64
		violations int64
	)

	// Create worker pool
	recordChan := make(chan Record, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for record := range recordChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if n, err := probeScore(ctx, client, scoreURL, record, config.Verbose); err != nil {
					atomic.AddInt64(&scoreFail, 1)
					if config.Verbose {
						log.Printf("⚠️  score request failed: %v", err)
					}
				} else {
					atomic.AddInt64(&scoreOK, 1)
					atomic.AddInt64(&violations, int64(n))
				}

				if n, err := probePrice(ctx, client, priceURL, record, config.Verbose); err != nil {
					atomic.AddInt64(&priceFail, 1)
					if config.Verbose {
						log.Printf("⚠️  price request failed: %v", err)
					}
				} else {
					atomic.AddInt64(&priceOK, 1)
					atomic.AddInt64(&violations, int64(n))
				}
			}
		}()
	}

	// Feed records to workers
	for _, record := range records {
		select {
		case <-ctx.Done():
			close(recordChan)
			wg.Wait()
			return ctx.Err()
		case recordChan <- record:
		}
	}
	close(recordChan)
	wg.Wait()

	stats.ScoreSuccessful = int(scoreOK)
	stats.ScoreFailed = int(scoreFail)
	stats.PriceSuccessful = int(priceOK)
	stats.PriceFailed = int(priceFail)
	stats.Violations += int(violations)

	log.Printf("✅ Scoring probe complete: %d/%d score, %d/%d price",
		scoreOK, len(records), priceOK, len(records))
	return nil
}

// probeScore sends one record to the score endpoint and returns the number
// of invariant violations found in the response.
func probeScore(ctx context.Context, client *HTTPClient, url string, record Record, verbose bool) (int, error) {
	resp, err := client.Post(ctx, url, record)
	if err != nil {
		return 0, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ScoreResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse score response: %w", err)
	}

	violations := verifyScoreResponse(&parsed, verbose)
	return violations, nil
}

// probePrice sends one record to the price endpoint and returns the number
// of invariant violations found in the response.
func probePrice(ctx context.Context, client *HTTPClient, url string, record Record, verbose bool) (int, error) {
	resp, err := client.Post(ctx, url, record)
	if err != nil {
		return 0, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed PriceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse price response: %w", err)
	}

	violations := verifyPriceResponse(&parsed, verbose)
	return violations, nil
}

// probeWebhooks sends the fixed commit scenarios to the webhook endpoint.
func probeWebhooks(ctx context.Context, config *Config, stats *Stats) error {
	cases := webhookCases()
	log.Printf("📤 Sending %d webhook cases...", len(cases))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/webhook/github/" + config.ProjectID

	stats.WebhookCases = len(cases)
	for _, tc := range cases {
		payload := map[string]interface{}{
			"ref": "refs/heads/main",
			"head_commit": map[string]interface{}{
				"message": tc.CommitMessage,
			},
			"repository": map[string]interface{}{
				"full_name": "verifund/" + config.ProjectID,
			},
		}

		resp, err := client.Post(ctx, url, payload)
		if err != nil {
			stats.WebhookFailed++
			log.Printf("⚠️  webhook case %q failed: %v", tc.Name, err)
			continue
		}

		body, err := readResponseBody(resp)
		if err != nil {
			stats.WebhookFailed++
			log.Printf("⚠️  webhook case %q: failed to read body: %v", tc.Name, err)
			continue
		}
		if resp.StatusCode != StatusOK {
			stats.WebhookFailed++
			log.Printf("⚠️  webhook case %q: unexpected status %d: %s", tc.Name, resp.StatusCode, string(body))
			continue
		}

		var parsed WebhookResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			stats.WebhookFailed++
			log.Printf("⚠️  webhook case %q: failed to parse response: %v", tc.Name, err)
			continue
		}

		if violations := verifyWebhookResponse(&tc, &parsed, config.ProjectID); violations > 0 {
			stats.WebhookFailed++
			stats.Violations += violations
			continue
		}

		stats.WebhookPassed++
		log.Printf("✅ Webhook case %q: scoreIncrease=%.2f message=%q",
			tc.Name, parsed.ScoreIncrease, parsed.Message)
	}

	return nil
}
