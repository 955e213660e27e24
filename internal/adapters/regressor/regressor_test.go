package regressor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	regressor "github.com/verifund/aiscore/internal/adapters/regressor"
	. "github.com/smartystreets/goconvey/convey"
)

// scenarioA is a strong Web Development creator used across the model
// tests.
var scenarioA = []float64{25, 36, 0.85, 0.95, 4.7, 0.15, 0.03, 0, 0, 0, 1}

func TestFromArtifact(t *testing.T) {
	Convey("Given model artifacts", t, func() {
		valid := regressor.Artifact{
			Name:      "toy",
			Columns:   []string{"a", "b", "project_category_X"},
			Intercept: 1.5,
			Weights:   []float64{2, 0, 10},
			Baselines: []float64{1, 1, 0.5},
		}

		Convey("When building from a valid artifact", func() {
			m, err := regressor.FromArtifact(valid)

			Convey("Then the model should carry its own schema", func() {
				So(err, ShouldBeNil)
				So(m.Name(), ShouldEqual, "toy")
				So(m.Schema().Len(), ShouldEqual, 3)

				e, ok := m.Schema().Expansion("project_category_X")
				So(ok, ShouldBeTrue)
				So(e.Category, ShouldEqual, "X")
			})
		})

		Convey("When the artifact has no columns", func() {
			bad := valid
			bad.Columns = nil
			_, err := regressor.FromArtifact(bad)

			So(err, ShouldWrap, regressor.ErrMalformed)
		})

		Convey("When weights do not match columns", func() {
			bad := valid
			bad.Weights = []float64{2}
			_, err := regressor.FromArtifact(bad)

			So(err, ShouldWrap, regressor.ErrMalformed)
		})

		Convey("When baselines do not match columns", func() {
			bad := valid
			bad.Baselines = []float64{1}
			_, err := regressor.FromArtifact(bad)

			So(err, ShouldWrap, regressor.ErrMalformed)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given model artifact files", t, func() {
		dir := t.TempDir()

		Convey("When loading a well-formed artifact", func() {
			path := filepath.Join(dir, "model.json")
			payload := `{
				"name": "disk",
				"columns": ["a", "b"],
				"intercept": 3,
				"weights": [1, 2],
				"baselines": [0, 0]
			}`
			So(os.WriteFile(path, []byte(payload), 0o600), ShouldBeNil)

			m, err := regressor.Load(path)

			Convey("Then the model should predict from the file's coefficients", func() {
				So(err, ShouldBeNil)
				So(m.Name(), ShouldEqual, "disk")

				out, perr := m.Predict(context.Background(), []float64{10, 1})
				So(perr, ShouldBeNil)
				So(out, ShouldEqual, 15)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := regressor.Load(filepath.Join(dir, "missing.json"))

			So(err, ShouldWrap, regressor.ErrLoad)
		})

		Convey("When the file is not valid JSON", func() {
			path := filepath.Join(dir, "broken.json")
			So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)

			_, err := regressor.Load(path)

			So(err, ShouldWrap, regressor.ErrLoad)
		})
	})
}

func TestBundledModels(t *testing.T) {
	Convey("Given the bundled score model", t, func() {
		m := regressor.DefaultScore()

		Convey("When predicting a strong Web Development creator", func() {
			score, err := m.Predict(context.Background(), scenarioA)

			Convey("Then the score should land in the expected range", func() {
				So(err, ShouldBeNil)
				So(score, ShouldAlmostEqual, 75.01, 0.01)
			})
		})

		Convey("When attributing the same vector", func() {
			impacts, err := m.Attribute(context.Background(), scenarioA)

			Convey("Then each impact should follow weight * (value - baseline)", func() {
				So(err, ShouldBeNil)
				So(impacts, ShouldHaveLength, m.Schema().Len())

				// tenure_months carries zero weight
				So(impacts[1], ShouldEqual, 0)
				// portfolio_strength: 30 * (0.85 - 0.75)
				So(impacts[2], ShouldAlmostEqual, 3.0, 1e-9)
				// dispute_rate improves the score when below baseline
				So(impacts[6], ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the vector shape is wrong", func() {
			_, err := m.Predict(context.Background(), []float64{1, 2})

			So(err, ShouldWrap, regressor.ErrShape)

			_, err = m.Attribute(context.Background(), []float64{1, 2})

			So(err, ShouldWrap, regressor.ErrShape)
		})
	})

	Convey("Given the bundled price model", t, func() {
		m := regressor.DefaultPrice()

		Convey("When predicting a strong Web Development creator", func() {
			price, err := m.Predict(context.Background(), scenarioA)

			Convey("Then the raw price should land in the realistic band", func() {
				So(err, ShouldBeNil)
				So(price, ShouldAlmostEqual, 334000, 1)
			})
		})

		Convey("Then both bundled models should share the training columns", func() {
			So(m.Schema().Columns(), ShouldResemble, regressor.DefaultScore().Schema().Columns())
		})
	})
}
