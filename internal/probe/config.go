package probe

import "time"

// Config holds configuration for the scoring probe.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of score/price requests to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	ProjectID   string        // Project identifier used for webhook cases
	OutputFile  string        // Output file for generated records
	LogFile     string        // Log file for probe output
	Verbose     bool          // Enable verbose logging
}

// Record mirrors the creator payload accepted by the scoring endpoints.
type Record struct {
	ProjectsCompleted int     `json:"projects_completed"`
	TenureMonths      int     `json:"tenure_months"`
	PortfolioStrength float64 `json:"portfolio_strength"`
	OnTimeDeliveryPct float64 `json:"on_time_delivery_percent"`
	AvgClientRating   float64 `json:"avg_client_rating"`
	RatingTrajectory  float64 `json:"rating_trajectory"`
	DisputeRate       float64 `json:"dispute_rate"`
	ProjectCategory   string  `json:"project_category"`
}

// Reason is a single ranked feature contribution.
type Reason struct {
	Feature string      `json:"feature"`
	Value   interface{} `json:"value"`
	Impact  float64     `json:"impact"`
}

// ScoreResponse is the response from the score endpoint.
type ScoreResponse struct {
	ProjectSuccessScore float64  `json:"projectSuccessScore"`
	Reasons             []Reason `json:"reasons"`
}

// PriceResponse is the response from the price suggestion endpoint.
type PriceResponse struct {
	SuggestedPrice int    `json:"suggested_price"`
	PriceRange     [2]int `json:"price_range"`
}

// WebhookResponse is the response from the commit webhook endpoint.
type WebhookResponse struct {
	ProjectID     string  `json:"projectId"`
	ScoreIncrease float64 `json:"scoreIncrease"`
	CommitMessage string  `json:"commitMessage"`
	Message       string  `json:"message"`
}

// WebhookCase is one fixed commit scenario sent to the webhook endpoint.
type WebhookCase struct {
	Name           string
	CommitMessage  string
	WantMeaningful bool
}

// Stats holds probe statistics.
type Stats struct {
	RecordsGenerated int
	ScoreSuccessful  int
	ScoreFailed      int
	PriceSuccessful  int
	PriceFailed      int
	WebhookCases     int
	WebhookPassed    int
	WebhookFailed    int
	Violations       int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
