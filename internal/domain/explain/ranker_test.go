package explain_test

import (
	"context"
	"errors"
	"math"
	"testing"

	explain "github.com/verifund/aiscore/internal/domain/explain"
	schema "github.com/verifund/aiscore/internal/domain/schema"
	. "github.com/smartystreets/goconvey/convey"
)

// stubAttributor returns fixed per-column impacts.
type stubAttributor struct {
	impacts []float64
	err     error
}

func (a *stubAttributor) Attribute(_ context.Context, _ []float64) ([]float64, error) {
	return a.impacts, a.err
}

func rankerSchema() *schema.Schema {
	s, err := schema.New([]string{
		"projects_completed",
		"avg_client_rating",
		"dispute_rate",
		"project_category_Graphic Design",
		"project_category_Web Development",
	}, schema.WithCategoricalField("project_category"))
	if err != nil {
		panic(err)
	}
	return s
}

func TestRank(t *testing.T) {
	Convey("Given a schema with numeric and one-hot columns", t, func() {
		s := rankerSchema()

		Convey("When ranking a vector with an active category", func() {
			vector := []float64{25, 4.714, 0.03, 0, 1}
			attributor := &stubAttributor{impacts: []float64{1.2, 7.518, -3.4, 0.002, 0.27}}

			reasons, err := explain.Rank(context.Background(), vector, attributor, s)

			Convey("Then ranking should succeed", func() {
				So(err, ShouldBeNil)
				So(len(reasons), ShouldBeLessThanOrEqualTo, explain.TopReasons)
			})

			Convey("Then reasons should be sorted by descending absolute impact", func() {
				So(err, ShouldBeNil)
				for i := 1; i < len(reasons); i++ {
					So(math.Abs(reasons[i].Impact), ShouldBeLessThanOrEqualTo, math.Abs(reasons[i-1].Impact))
				}
				So(reasons[0].Feature, ShouldEqual, "avg_client_rating")
			})

			Convey("Then the inactive one-hot column should be dropped", func() {
				So(err, ShouldBeNil)
				for _, r := range reasons {
					So(r.Value, ShouldNotEqual, "Graphic Design")
				}
			})

			Convey("Then the active one-hot column should collapse to the source field", func() {
				So(err, ShouldBeNil)
				found := false
				for _, r := range reasons {
					if r.Feature == "project_category" {
						found = true
						So(r.Value, ShouldEqual, "Web Development")
						So(r.Impact, ShouldEqual, 0.27)
					}
				}
				So(found, ShouldBeTrue)
			})

			Convey("Then values and impacts should be rounded to two decimals", func() {
				So(err, ShouldBeNil)
				So(reasons[0].Value, ShouldEqual, 4.71)
				So(reasons[0].Impact, ShouldEqual, 7.52)
			})
		})

		Convey("When a zero-valued column has negligible impact", func() {
			vector := []float64{0, 4.7, 0.03, 0, 1}
			attributor := &stubAttributor{impacts: []float64{0.005, 7.5, -3.4, 0, 0.27}}

			reasons, err := explain.Rank(context.Background(), vector, attributor, s)

			Convey("Then the column should be filtered out", func() {
				So(err, ShouldBeNil)
				for _, r := range reasons {
					So(r.Feature, ShouldNotEqual, "projects_completed")
				}
			})
		})

		Convey("When a zero-valued column still carries notable impact", func() {
			vector := []float64{0, 4.7, 0.03, 0, 1}
			attributor := &stubAttributor{impacts: []float64{-2.1, 7.5, -3.4, 0, 0.27}}

			reasons, err := explain.Rank(context.Background(), vector, attributor, s)

			Convey("Then the column should survive the filter", func() {
				So(err, ShouldBeNil)
				found := false
				for _, r := range reasons {
					if r.Feature == "projects_completed" {
						found = true
						So(r.Impact, ShouldEqual, -2.1)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When more columns survive than the reason cap", func() {
			wide, err := schema.New([]string{"a", "b", "c", "d", "e", "f", "g"})
			So(err, ShouldBeNil)

			vector := []float64{1, 2, 3, 4, 5, 6, 7}
			attributor := &stubAttributor{impacts: []float64{0.1, 0.7, 0.3, 0.9, 0.5, 0.2, 0.8}}

			reasons, rerr := explain.Rank(context.Background(), vector, attributor, wide)

			Convey("Then only the strongest reasons should remain", func() {
				So(rerr, ShouldBeNil)
				So(reasons, ShouldHaveLength, explain.TopReasons)
				So(reasons[0].Feature, ShouldEqual, "d")
				So(reasons[1].Feature, ShouldEqual, "g")
				So(reasons[4].Feature, ShouldEqual, "c")
			})
		})

		Convey("When the vector length disagrees with the schema", func() {
			_, err := explain.Rank(context.Background(), []float64{1, 2}, &stubAttributor{}, s)

			Convey("Then it should return a vector length error", func() {
				So(err, ShouldWrap, explain.ErrVectorLength)
			})
		})

		Convey("When the attributor fails", func() {
			attributor := &stubAttributor{err: errors.New("no baseline")}
			_, err := explain.Rank(context.Background(), []float64{25, 4.7, 0.03, 0, 1}, attributor, s)

			Convey("Then it should return an attribution error", func() {
				So(err, ShouldWrap, explain.ErrAttribution)
			})
		})

		Convey("When the attributor returns the wrong number of impacts", func() {
			attributor := &stubAttributor{impacts: []float64{1, 2}}
			_, err := explain.Rank(context.Background(), []float64{25, 4.7, 0.03, 0, 1}, attributor, s)

			Convey("Then it should return a vector length error", func() {
				So(err, ShouldWrap, explain.ErrVectorLength)
			})
		})
	})
}
