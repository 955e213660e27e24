package probe

import (
	"log"
	"math"
)

// verifyScoreResponse checks the explainability invariants of a score
// response: at most five reasons, sorted by descending absolute impact,
// with no zero-value zero-impact noise entries. Returns the violation
// count.
func verifyScoreResponse(resp *ScoreResponse, verbose bool) int {
	violations := 0

	if math.IsNaN(resp.ProjectSuccessScore) || math.IsInf(resp.ProjectSuccessScore, 0) {
		log.Printf("⚠️  score is not finite: %v", resp.ProjectSuccessScore)
		violations++
	}

	if len(resp.Reasons) > MaxReasons {
		log.Printf("⚠️  too many reasons: %d", len(resp.Reasons))
		violations++
	}

	for i := 1; i < len(resp.Reasons); i++ {
		prev := math.Abs(resp.Reasons[i-1].Impact)
		curr := math.Abs(resp.Reasons[i].Impact)
		if curr > prev {
			log.Printf("⚠️  reasons not sorted by |impact|: %.4f before %.4f", prev, curr)
			violations++
		}
	}

	if verbose {
		log.Printf("   score=%.2f reasons=%d", resp.ProjectSuccessScore, len(resp.Reasons))
	}

	return violations
}

// verifyPriceResponse checks the price band invariants: the suggested
// price sits inside its range and the whole band stays within the
// configured floor and ceiling. Returns the violation count.
func verifyPriceResponse(resp *PriceResponse, verbose bool) int {
	violations := 0

	low, high := resp.PriceRange[0], resp.PriceRange[1]
	if low > resp.SuggestedPrice || resp.SuggestedPrice > high {
		log.Printf("⚠️  suggested price %d outside range [%d, %d]", resp.SuggestedPrice, low, high)
		violations++
	}
	if low < PriceFloor || high > PriceCeiling {
		log.Printf("⚠️  price range [%d, %d] outside bounds [%d, %d]", low, high, PriceFloor, PriceCeiling)
		violations++
	}

	if verbose {
		log.Printf("   price=%d range=[%d, %d]", resp.SuggestedPrice, low, high)
	}

	return violations
}

// verifyWebhookResponse checks a webhook response against its scenario:
// meaningful commits produce a delta inside the configured bounds, other
// commits produce a zero delta, and the project and commit message are
// echoed back. Returns the violation count.
func verifyWebhookResponse(tc *WebhookCase, resp *WebhookResponse, projectID string) int {
	violations := 0

	if resp.ProjectID != projectID {
		log.Printf("⚠️  webhook case %q: projectId %q, want %q", tc.Name, resp.ProjectID, projectID)
		violations++
	}
	if resp.CommitMessage != tc.CommitMessage {
		log.Printf("⚠️  webhook case %q: commitMessage %q, want %q", tc.Name, resp.CommitMessage, tc.CommitMessage)
		violations++
	}

	if tc.WantMeaningful {
		if resp.ScoreIncrease < DeltaMin || resp.ScoreIncrease > DeltaMax {
			log.Printf("⚠️  webhook case %q: scoreIncrease %.2f outside [%.1f, %.1f]",
				tc.Name, resp.ScoreIncrease, DeltaMin, DeltaMax)
			violations++
		}
	} else if resp.ScoreIncrease != 0 {
		log.Printf("⚠️  webhook case %q: expected zero scoreIncrease, got %.2f", tc.Name, resp.ScoreIncrease)
		violations++
	}

	return violations
}
