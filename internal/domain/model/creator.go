// Package model contains domain models passed between layers.
package model

// Known project categories. The set is fixed at training time; changing it
// requires retraining both models.
const (
	CategoryGraphicDesign     = "Graphic Design"
	CategoryMobileDevelopment = "Mobile Development"
	CategoryUIUXDesign        = "UI/UX Design"
	CategoryWebDevelopment    = "Web Development"
)

// Categories returns the known project categories in training order.
func Categories() []string {
	return []string{
		CategoryGraphicDesign,
		CategoryMobileDevelopment,
		CategoryUIUXDesign,
		CategoryWebDevelopment,
	}
}

// CreatorRecord is a validated creator performance record. Field ranges
// mirror the training data; validation happens at the HTTP boundary before
// a record reaches the feature reconciler.
type CreatorRecord struct {
	ProjectsCompleted     int     `json:"projects_completed" validate:"gte=5,lte=50"`
	TenureMonths          int     `json:"tenure_months" validate:"gte=6,lte=60"`
	PortfolioStrength     float64 `json:"portfolio_strength" validate:"gte=0.5,lte=1.0"`
	OnTimeDeliveryPercent float64 `json:"on_time_delivery_percent" validate:"gte=0.7,lte=1.0"`
	AvgClientRating       float64 `json:"avg_client_rating" validate:"gte=3.5,lte=5.0"`
	RatingTrajectory      float64 `json:"rating_trajectory" validate:"gte=-0.2,lte=0.3"`
	DisputeRate           float64 `json:"dispute_rate" validate:"gte=0,lte=0.15"`
	ProjectCategory       string  `json:"project_category" validate:"required,oneof='Graphic Design' 'Mobile Development' 'UI/UX Design' 'Web Development'"`
}

// CategoricalFields returns the record's categorical fields keyed by their
// training source-field names.
func (r CreatorRecord) CategoricalFields() map[string]string {
	return map[string]string{
		"project_category": r.ProjectCategory,
	}
}

// NumericFields returns the record's numeric fields keyed by their training
// column names. The categorical field is handled separately through the
// schema's expansion columns.
func (r CreatorRecord) NumericFields() map[string]float64 {
	return map[string]float64{
		"projects_completed":       float64(r.ProjectsCompleted),
		"tenure_months":            float64(r.TenureMonths),
		"portfolio_strength":       r.PortfolioStrength,
		"on_time_delivery_percent": r.OnTimeDeliveryPercent,
		"avg_client_rating":        r.AvgClientRating,
		"rating_trajectory":        r.RatingTrajectory,
		"dispute_rate":             r.DisputeRate,
	}
}
