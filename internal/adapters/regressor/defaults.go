package regressor

// trainingColumns is the exact column order both bundled models were trained
// on. Immutable for the lifetime of a deployed model pair; any change
// requires retraining.
var trainingColumns = []string{
	"projects_completed",
	"tenure_months",
	"portfolio_strength",
	"on_time_delivery_percent",
	"avg_client_rating",
	"rating_trajectory",
	"dispute_rate",
	"project_category_Graphic Design",
	"project_category_Mobile Development",
	"project_category_UI/UX Design",
	"project_category_Web Development",
}

// trainingBaselines are the training-set feature means used as the
// attribution reference point.
var trainingBaselines = []float64{
	27.5,   // projects_completed
	33,     // tenure_months
	0.75,   // portfolio_strength
	0.85,   // on_time_delivery_percent
	4.25,   // avg_client_rating
	0.05,   // rating_trajectory
	0.075,  // dispute_rate
	0.25,   // project_category_Graphic Design
	0.25,   // project_category_Mobile Development
	0.25,   // project_category_UI/UX Design
	0.25,   // project_category_Web Development
}

// DefaultScore returns the bundled success-score model, used when no
// artifact path is configured. Coefficients match the shipped training
// metadata for the 0-100 weighted success score.
func DefaultScore() *Model {
	m, err := FromArtifact(Artifact{
		Name:      "verifund_success_score",
		Columns:   trainingColumns,
		Intercept: -131.644444,
		Weights: []float64{
			0.222222,   // projects_completed
			0,          // tenure_months
			30,         // portfolio_strength
			100,        // on_time_delivery_percent
			16.666667,  // avg_client_rating
			24,         // rating_trajectory
			-53.333333, // dispute_rate
			-0.35,      // project_category_Graphic Design
			0.42,       // project_category_Mobile Development
			0.18,       // project_category_UI/UX Design
			0.27,       // project_category_Web Development
		},
		Baselines: trainingBaselines,
	})
	if err != nil {
		panic("bundled score model is malformed: " + err.Error())
	}
	return m
}

// DefaultPrice returns the bundled pricing model, in INR.
func DefaultPrice() *Model {
	m, err := FromArtifact(Artifact{
		Name:      "verifund_price",
		Columns:   trainingColumns,
		Intercept: -420000,
		Weights: []float64{
			4000,   // projects_completed
			0,      // tenure_months
			270000, // portfolio_strength
			0,      // on_time_delivery_percent
			90000,  // avg_client_rating
			0,      // rating_trajectory
			0,      // dispute_rate
			-1800,  // project_category_Graphic Design
			2400,   // project_category_Mobile Development
			1100,   // project_category_UI/UX Design
			1500,   // project_category_Web Development
		},
		Baselines: trainingBaselines,
	})
	if err != nil {
		panic("bundled price model is malformed: " + err.Error())
	}
	return m
}
