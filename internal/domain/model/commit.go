package model

// CommitEvent is one inbound push event from a project repository. Events
// carry no persisted identity; each one is processed exactly once per call.
type CommitEvent struct {
	ProjectID string
	Ref       string
	Message   string
	RepoName  string
}

// ScoreDelta is the re-scoring outcome forwarded to the ledger for a
// meaningful commit.
type ScoreDelta struct {
	ProjectID     string  `json:"projectId"`
	Delta         float64 `json:"scoreIncrease"`
	CommitMessage string  `json:"commitMessage"`
}

// Contribution is one ranked per-feature explanation of a prediction.
// Value holds either the rounded numeric input or, for a collapsed
// categorical column, the active category's display name.
type Contribution struct {
	Feature string  `json:"feature"`
	Value   any     `json:"value"`
	Impact  float64 `json:"impact"`
}
