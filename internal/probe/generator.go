package probe

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"

	"github.com/verifund/aiscore/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	categoryDivisor    = 4
)

// Valid field ranges for generated records. These match the ranges the
// service accepts at its validation boundary.
const (
	projectsMin       = 5
	projectsRange     = 45
	tenureMin         = 6
	tenureRange       = 54
	portfolioMin      = 0.5
	portfolioRange    = 0.5
	onTimeMin         = 0.7
	onTimeRange       = 0.3
	ratingMin         = 3.5
	ratingRange       = 1.5
	trajectoryMin     = -0.2
	trajectoryRange   = 0.5
	disputeRateMax    = 0.15
	fieldRoundingUnit = 100
)

var categories = []string{
	"Graphic Design",
	"Mobile Development",
	"UI/UX Design",
	"Web Development",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int64) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return int(n.Int64())
}

// round2 rounds to two decimal places so generated payloads look like the
// training data.
func round2(v float64) float64 {
	return math.Round(v*fieldRoundingUnit) / fieldRoundingUnit
}

// generateRecords generates valid creator records covering all categories.
func generateRecords(ctx context.Context, config *Config, stats *Stats) ([]Record, error) {
	logger.Get().Info(ctx, "generating creator records", logger.Int("count", config.NumRequests))

	records := make([]Record, 0, config.NumRequests)
	for i := 0; i < config.NumRequests; i++ {
		records = append(records, Record{
			ProjectsCompleted: projectsMin + getRandomInt(projectsRange+1),
			TenureMonths:      tenureMin + getRandomInt(tenureRange+1),
			PortfolioStrength: round2(portfolioMin + getRandomFloat()*portfolioRange),
			OnTimeDeliveryPct: round2(onTimeMin + getRandomFloat()*onTimeRange),
			AvgClientRating:   round2(ratingMin + getRandomFloat()*ratingRange),
			RatingTrajectory:  round2(trajectoryMin + getRandomFloat()*trajectoryRange),
			DisputeRate:       round2(getRandomFloat() * disputeRateMax),
			ProjectCategory:   categories[i%categoryDivisor],
		})
	}

	stats.RecordsGenerated = len(records)
	logger.Get().Info(ctx, "records generated", logger.Int("count", len(records)))
	return records, nil
}

// webhookCases returns the fixed commit scenarios sent to the webhook
// endpoint: a feature addition, a bug fix, and a non-meaningful commit.
func webhookCases() []WebhookCase {
	return []WebhookCase{
		{Name: "feature addition", CommitMessage: "feat: add milestone payout schedule", WantMeaningful: true},
		{Name: "bug fix", CommitMessage: "fix: correct escrow release rounding", WantMeaningful: true},
		{Name: "non-meaningful commit", CommitMessage: "update readme", WantMeaningful: false},
	}
}
