package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/verifund/aiscore/pkg/logger"
)

// File permission constants.
const (
	directoryPermission  = 0750
	outputFilePermission = 0600
)

// Run executes the complete scoring probe.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting scoring probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("projectID", config.ProjectID),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate creator records
	records, err := generateRecords(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("record generation failed: %w", err)
	}

	// Step 3: Probe scoring endpoints concurrently
	if err := probeScoring(ctx, config, records, stats); err != nil {
		return fmt.Errorf("scoring probe failed: %w", err)
	}

	// Step 4: Send webhook cases
	if err := probeWebhooks(ctx, config, stats); err != nil {
		return fmt.Errorf("webhook probe failed: %w", err)
	}

	// Step 5: Save records to file
	if err := saveRecordsToFile(ctx, config, records); err != nil {
		logger.Get().Warn(ctx, "failed to save records to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.Violations > 0 || stats.WebhookFailed > 0 {
		return fmt.Errorf("probe found %d invariant violations and %d failed webhook cases",
			stats.Violations, stats.WebhookFailed)
	}

	logger.Get().Info(ctx, "probe completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveRecordsToFile saves the generated records to a JSON file.
func saveRecordsToFile(ctx context.Context, config *Config, records []Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "probe_records_" + timestamp + ".json"
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(filename, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}

	logger.Get().Info(ctx, "records saved",
		logger.String("file", filename),
		logger.Int("count", len(records)))
	return nil
}

// displayFinalStats prints a summary of the probe run.
func displayFinalStats(stats *Stats) {
	log.Println("📊 Probe Statistics")
	log.Println("===================")
	log.Printf("Records generated:  %d", stats.RecordsGenerated)
	log.Printf("Score requests:     %d ok, %d failed", stats.ScoreSuccessful, stats.ScoreFailed)
	log.Printf("Price requests:     %d ok, %d failed", stats.PriceSuccessful, stats.PriceFailed)
	log.Printf("Webhook cases:      %d passed, %d failed (of %d)",
		stats.WebhookPassed, stats.WebhookFailed, stats.WebhookCases)
	log.Printf("Invariant checks:   %d violations", stats.Violations)
	log.Printf("Duration:           %s", stats.Duration.Round(time.Millisecond))

	total := stats.ScoreSuccessful + stats.ScoreFailed
	if total > 0 {
		rate := float64(stats.ScoreSuccessful) / float64(total) * PercentageMultiplier
		log.Printf("Score success rate: %.1f%%", rate)
	}
}
